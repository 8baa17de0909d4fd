// Package udf adapts scalar-function invocations from the host engine onto
// the schema extractor and the generation service.
package udf

import (
	"context"
	"errors"
	"fmt"

	"github.com/duckassist/duckassist/internal/assistant"
	"github.com/duckassist/duckassist/internal/schemactx"
)

// FunctionName is the scalar function exposed to SQL.
const FunctionName = "query_assistant"

var ErrPromptNotConstant = errors.New("query_assistant prompt must be a constant string")

// Arg describes one argument of an unbound query_assistant call as seen by
// the host's binding phase.
type Arg struct {
	// Constant reports whether the value is known at plan time.
	Constant bool
	Value    string
}

// Generator is the slice of the generation service the adapter needs.
type Generator interface {
	Generate(ctx context.Context, prompt, schemaContext string) (string, error)
}

// Adapter bridges per-invocation scalar calls to the shared generation
// service. One adapter serves a single database handle.
type Adapter struct {
	db      schemactx.Querier
	resolve func() (Generator, error)
}

// NewAdapter builds an adapter over the active database. The generation
// service is resolved lazily through the process-wide singleton.
func NewAdapter(db schemactx.Querier) *Adapter {
	return &Adapter{
		db: db,
		resolve: func() (Generator, error) {
			return assistant.Instance()
		},
	}
}

// Bind validates the unbound call: exactly one argument, and the prompt must
// be a plan-time constant since it is checked once per query plan, not per
// row. Binding also forces the generation service to exist so that engine
// construction failures surface before execution starts.
func (a *Adapter) Bind(args []Arg) error {
	if len(args) != 1 {
		return fmt.Errorf("query_assistant expects exactly 1 argument, got %d", len(args))
	}
	if !args[0].Constant {
		return ErrPromptNotConstant
	}
	if _, err := a.resolve(); err != nil {
		return fmt.Errorf("bind query_assistant: %w", err)
	}
	return nil
}

// ExecuteBatch evaluates one batch of prompts, producing exactly one output
// per input in matching order. The schema context is extracted fresh for each
// row. Any row failure aborts the whole batch.
func (a *Adapter) ExecuteBatch(ctx context.Context, prompts []string) ([]string, error) {
	service, err := a.resolve()
	if err != nil {
		return nil, fmt.Errorf("generation service unavailable: %w", err)
	}

	outputs := make([]string, len(prompts))
	for i, prompt := range prompts {
		schemaContext, err := schemactx.Extract(ctx, a.db)
		if err != nil {
			return nil, fmt.Errorf("extract schema context for row %d: %w", i, err)
		}
		sqlText, err := service.Generate(ctx, prompt, schemaContext)
		if err != nil {
			return nil, fmt.Errorf("generate sql for row %d: %w", i, err)
		}
		outputs[i] = sqlText
	}
	return outputs, nil
}
