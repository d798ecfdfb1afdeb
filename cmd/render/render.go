package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/llm"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render candidate JSON files to DOCX",
	Long:  "Reads one or more candidate record JSON files and writes one DOCX per input into the output directory. Inputs are rendered concurrently.",
	RunE:  runRender,
}

var (
	renderInputs      []string
	renderOutDir      string
	renderEnhance     bool
	renderConcurrency int
)

func init() {
	renderCmd.Flags().StringSliceVarP(&renderInputs, "in", "i", nil, "Candidate JSON files, comma separated (required)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "./out", "Output directory")
	renderCmd.Flags().BoolVar(&renderEnhance, "enhance", false, "Rewrite the professional summary with the configured LLM provider")
	renderCmd.Flags().IntVar(&renderConcurrency, "concurrency", 4, "Maximum renders in flight")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

type renderJob struct {
	Input    string
	OutDir   string
	Enricher llm.Enricher
}

type renderResult struct {
	Input    string
	Output   string
	Warnings []render.ContentOverflowWarning
}

func runRender(cmd *cobra.Command, _ []string) error {
	var enricher llm.Enricher
	if renderEnhance {
		cfg := config.Load()
		e, err := bootstrap.BuildEnricher(cfg)
		if err != nil {
			return fmt.Errorf("configure enrichment: %w", err)
		}
		if e == nil {
			e = llm.PlaceholderEnricher{}
		}
		enricher = e
	}

	results, err := renderAll(cmd.Context(), renderInputs, renderOutDir, enricher, renderConcurrency)
	for _, res := range results {
		reportResult(cmd.OutOrStdout(), res)
	}
	return err
}

// renderAll renders every input to its own file under outDir. Results keep
// input order; the first failure cancels inputs that have not started.
func renderAll(ctx context.Context, inputs []string, outDir string, enricher llm.Enricher, limit int) ([]renderResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := checkDistinctOutputs(inputs); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1
	}

	results := make([]renderResult, len(inputs))
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, input := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := renderOne(gCtx, renderJob{Input: input, OutDir: outDir, Enricher: enricher})
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	done := make([]renderResult, 0, len(results))
	for _, res := range results {
		if res.Output != "" {
			done = append(done, res)
		}
	}
	return done, err
}

func renderOne(ctx context.Context, job renderJob) (renderResult, error) {
	raw, err := readCandidate(job.Input)
	if err != nil {
		return renderResult{}, err
	}
	record, err := model.Normalize(raw)
	if err != nil {
		return renderResult{}, err
	}
	if job.Enricher != nil {
		record, err = llm.Apply(ctx, job.Enricher, record)
		if err != nil {
			return renderResult{}, err
		}
	}

	warnings := render.CheckOverflow(record)
	for _, w := range warnings {
		telemetry.Warn("render.content_overflow", map[string]any{"input": job.Input, "field": w.Field, "message": w.Message})
	}

	out, err := render.RenderToFile(record, filepath.Join(job.OutDir, outputName(job.Input)))
	if err != nil {
		return renderResult{}, err
	}
	return renderResult{Input: job.Input, Output: out, Warnings: warnings}, nil
}

func readCandidate(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate file: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse candidate JSON: %w", err)
	}
	if raw == nil {
		return nil, errors.New("candidate JSON must be an object")
	}
	return raw, nil
}

func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".docx"
}

func checkDistinctOutputs(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		name := outputName(input)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("inputs %s and %s would both write %s", prev, input, name)
		}
		seen[name] = input
	}
	return nil
}

func reportResult(w io.Writer, res renderResult) {
	fmt.Fprintf(w, "OK: %s -> %s\n", res.Input, res.Output)
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning.Message)
	}
}
