package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"patentscope/internal/llm"
	"patentscope/internal/model"
	"patentscope/internal/pipeline"
)

var (
	outJSON        string
	evalTimeout    time.Duration
	llmProvider    string
	llmModel       string
	maxRetries     int
	guardrailScope string
	noHooks        bool
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <invention-file>",
	Short: "Evaluate a single invention and produce a relevance score",
	Long: `Evaluate reads an invention document (YAML or JSON), runs the full
scoring pipeline, and writes the evaluation result as JSON.

The invention document must contain:
  idea_id:             unique identifier
  title:               at least 5 characters
  description:         at least 20 characters
  technical_domain:    optional
  application_domains: optional list

Example:
  patentscope evaluate idea.yaml
  patentscope evaluate idea.json --json result.json
  patentscope evaluate idea.yaml --provider ollama --model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", 3*time.Minute, "overall evaluation timeout")
	evaluateCmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	evaluateCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name")
	evaluateCmd.Flags().IntVar(&maxRetries, "max-retries", -1, "retries on transport failures (-1 uses config)")
	evaluateCmd.Flags().StringVar(&guardrailScope, "guardrail", "", `guardrail scope: "all" or "legacy"`)
	evaluateCmd.Flags().BoolVar(&noHooks, "no-hooks", false, "disable observability output")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	invention, err := readInvention(args[0])
	if err != nil {
		return err
	}

	cfg := buildConfig()
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s\n", invention.IdeaID)
	}

	result, err := p.Evaluate(ctx, invention)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", invention.IdeaID, err)
	}

	return writeResult(result, outJSON)
}

// readInvention loads an invention document from a YAML or JSON file
func readInvention(path string) (*model.InventionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read invention file: %w", err)
	}

	var invention model.InventionInput
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &invention); err != nil {
			return nil, fmt.Errorf("parse invention JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &invention); err != nil {
			return nil, fmt.Errorf("parse invention YAML: %w", err)
		}
	}

	return &invention, nil
}

// buildConfig merges defaults, config file, env vars, and flags
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if v := viper.GetInt("concurrency.batch_workers"); v > 0 {
		cfg.Concurrency.BatchWorkers = v
	}
	if v := viper.GetString("guardrail.scope"); v != "" {
		cfg.Guardrail.Scope = model.GuardrailScope(v)
	}

	// Flags take priority over config file and env
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if maxRetries >= 0 {
		cfg.LLM.MaxRetries = maxRetries
	}
	if guardrailScope != "" {
		cfg.Guardrail.Scope = model.GuardrailScope(guardrailScope)
	}

	// API keys come from the environment, never from flags
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg
}

// newPipeline wires the provider stack and hooks into a pipeline
func newPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	provider, err := llm.NewStack(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	var hooks pipeline.Hooks
	if !noHooks {
		hooks = pipeline.NewLogHooks(os.Stderr)
	}

	return pipeline.New(cfg, provider, hooks)
}

// writeResult renders the evaluation result as indented JSON
func writeResult(result *model.EvaluationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote result: %s\n", path)
	}
	return nil
}
