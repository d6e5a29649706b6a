package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"patentscope/internal/model"
	"patentscope/internal/worker"
)

var (
	batchOutJSON     string
	batchTimeout     time.Duration
	batchConcurrency int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <inventions-file>",
	Short: "Evaluate multiple inventions concurrently",
	Long: `Batch reads a YAML file containing multiple invention documents
(separated by ---) and evaluates them through a worker pool.

Example:
  patentscope batch ideas.yaml --concurrency 4 --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutJSON, "json", "", "output JSON path (default: stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "overall batch timeout")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent evaluations (0 uses config)")
}

// batchEntry is one element of the batch output
type batchEntry struct {
	IdeaID string                  `json:"idea_id"`
	Result *model.EvaluationResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	inventions, err := readInventions(args[0])
	if err != nil {
		return err
	}
	if len(inventions) == 0 {
		return fmt.Errorf("no invention documents in %s", args[0])
	}

	cfg := buildConfig()
	if batchConcurrency > 0 {
		cfg.Concurrency.BatchWorkers = batchConcurrency
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating %d inventions with %d workers\n", len(inventions), cfg.Concurrency.BatchWorkers)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results := processor.Process(ctx, inventions)

	entries := make([]batchEntry, 0, len(results))
	failed := 0
	for _, r := range results {
		entry := batchEntry{IdeaID: r.IdeaID, Result: r.Result}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			failed++
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if batchOutJSON == "" {
		fmt.Println(string(data))
	} else if err := os.WriteFile(batchOutJSON, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d evaluations failed", failed, len(results))
	}
	return nil
}

// readInventions loads a multi-document YAML file of inventions
func readInventions(path string) ([]*model.InventionInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventions file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var inventions []*model.InventionInput
	dec := yaml.NewDecoder(f)
	for {
		var invention model.InventionInput
		if err := dec.Decode(&invention); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse inventions file: %w", err)
		}
		inventions = append(inventions, &invention)
	}

	return inventions, nil
}
