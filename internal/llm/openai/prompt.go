package openai

import (
	"resume-builder/internal/llm"
	"resume-builder/resume/model"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildSummaryPrompt creates the chat messages for a summary rewrite.
// Reasoning models do not accept a developer role, so their
// instructions are folded into the system message.
func BuildSummaryPrompt(record model.CandidateRecord, modelName string) []Message {
	if isGPT5(modelName) {
		return []Message{
			{Role: "system", Content: llm.SystemPrompt + "\n\n" + llm.SummaryInstructions()},
			{Role: "user", Content: llm.SummaryUserPrompt(record)},
		}
	}
	return []Message{
		{Role: "system", Content: llm.SystemPrompt},
		{Role: "developer", Content: llm.SummaryInstructions()},
		{Role: "user", Content: llm.SummaryUserPrompt(record)},
	}
}
