// Package main provides the resume-builder command line renderer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "resume-builder",
	Short:        "Render candidate records into DOCX resumes",
	Long:         "resume-builder normalizes candidate JSON records, optionally enriches the professional summary, and writes formatted DOCX resumes.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
