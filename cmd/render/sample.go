package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-builder/resume/model"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample candidate JSON file",
	RunE:  runSample,
}

var sampleOut string

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "./out/sample_candidate.json", "Output path for the sample record")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	payload, err := json.MarshalIndent(sampleCandidate(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(sampleOut), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(sampleOut, payload, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: wrote %s\n", sampleOut)
	return nil
}

func sampleCandidate() model.CandidateRecord {
	return model.CandidateRecord{
		Name: "Jordan Lee",
		Contact: model.Contact{
			Email:    model.Some("jordan.lee@example.com"),
			Phone:    model.Some("+61 412 345 678"),
			Location: model.Some("Melbourne, VIC"),
		},
		ProfessionalSummary: model.Some("Backend engineer with 8+ years of experience building resilient APIs and data services."),
		KeySkills:           []string{"Go", "PostgreSQL", "AWS", "Kubernetes"},
		Experience: []model.ExperienceEntry{
			{
				Title:    "Senior Backend Engineer",
				Company:  "Acme Logistics",
				Location: model.Some("Melbourne, VIC"),
				Dates:    model.Some("2021 - Present"),
				Bullets: []string{
					"Designed a routing service that reduced shipment latency by 18%.",
					"Implemented distributed tracing to cut incident triage time by 35%.",
				},
			},
			{
				Title:   "Backend Engineer",
				Company: "Blue Harbor Systems",
				Dates:   model.Some("2018 - 2021"),
				Bullets: []string{"Built event-driven ingestion pipelines for compliance data feeds."},
			},
		},
		Education: []model.EducationEntry{
			{Degree: "Bachelor of Computer Science", Institution: "Monash University", GraduationYear: model.Some("2017")},
		},
		Certifications:  []string{"AWS Certified Solutions Architect"},
		TechnicalSkills: []string{"Gin", "Terraform", "GitHub Actions"},
	}.Canonical()
}
