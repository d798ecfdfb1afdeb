package render

import (
	"errors"
	"fmt"
)

// Stage names the step of the output pipeline that failed.
type Stage string

const (
	StageTarget Stage = "target"
	StageEncode Stage = "encode"
	StageWrite  Stage = "write"
	StageCommit Stage = "commit"
)

// FaultKind separates write-target problems from internal formatting faults.
type FaultKind string

const (
	FaultTarget FaultKind = "target"
	FaultFormat FaultKind = "format"
)

var errEmptyPath = errors.New("target path is empty")

// RenderError represents a failure while serializing or persisting a
// document. No file is left at Path when it is returned.
type RenderError struct {
	Stage Stage
	Kind  FaultKind
	Path  string
	Cause error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("render error: %s", e.Stage)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

func targetError(stage Stage, path string, cause error) *RenderError {
	return &RenderError{Stage: stage, Kind: FaultTarget, Path: path, Cause: cause}
}

func formatError(cause error) *RenderError {
	return &RenderError{Stage: StageEncode, Kind: FaultFormat, Cause: cause}
}
