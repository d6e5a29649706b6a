package worker

import (
	"context"

	"patentscope/internal/model"
)

// Evaluator defines the interface for evaluating a single invention
type Evaluator interface {
	Evaluate(ctx context.Context, in *model.InventionInput) (*model.EvaluationResult, error)
}

// EvaluateJob evaluates one invention
type EvaluateJob struct {
	Invention *model.InventionInput
	Evaluator Evaluator
}

// Execute runs the evaluation
func (j *EvaluateJob) Execute(ctx context.Context) Result {
	result, err := j.Evaluator.Evaluate(ctx, j.Invention)
	return &EvaluateResult{
		IdeaID: j.Invention.IdeaID,
		Result: result,
		Err:    err,
	}
}

// EvaluateResult is the outcome of one batch evaluation
type EvaluateResult struct {
	IdeaID string
	Result *model.EvaluationResult
	Err    error
}

// GetError returns the evaluation error, if any
func (r *EvaluateResult) GetError() error { return r.Err }

// BatchProcessor evaluates multiple inventions concurrently
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(evaluator Evaluator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// Process evaluates all inventions through the worker pool
func (b *BatchProcessor) Process(ctx context.Context, inventions []*model.InventionInput) []*EvaluateResult {
	if len(inventions) == 0 {
		return []*EvaluateResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, in := range inventions {
		pool.Submit(&EvaluateJob{Invention: in, Evaluator: b.evaluator})
	}

	results := pool.Wait()

	out := make([]*EvaluateResult, len(results))
	for i, r := range results {
		out[i] = r.(*EvaluateResult)
	}

	return out
}
