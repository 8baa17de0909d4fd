// Package genai defines the boundary to the SQL generation engine. Engines
// are constructed once and consumed through a single Generate operation.
package genai

import (
	"context"
	"sync"
)

// Engine turns a natural-language prompt and a schema context into SQL text.
// The returned string is owned by the caller; implementations must not hand
// out views into internal buffers. Engine output is returned verbatim with no
// post-processing.
type Engine interface {
	Generate(ctx context.Context, prompt, schemaContext string) (string, error)
}

// SerialEngine serializes Generate calls for engines that do not tolerate
// concurrent use. The lock is held only for the duration of a single call and
// released on every exit path.
type SerialEngine struct {
	mu     sync.Mutex
	engine Engine
}

func NewSerialEngine(engine Engine) *SerialEngine {
	return &SerialEngine{engine: engine}
}

func (s *SerialEngine) Generate(ctx context.Context, prompt, schemaContext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Generate(ctx, prompt, schemaContext)
}
