// Package assistant hosts the process-wide SQL generation service. The
// service owns the generation engine for the lifetime of the process and is
// the only component allowed to touch it.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/duckassist/duckassist/internal/config"
	"github.com/duckassist/duckassist/internal/genai"
	"github.com/duckassist/duckassist/internal/observability"
)

// Service wraps the generation engine. After construction it holds no mutable
// state of its own, so it is safe to share across execution threads.
type Service struct {
	engine genai.Engine
	logger *slog.Logger
}

// lazyService builds a Service exactly once. A construction failure is
// sticky: every later access observes the same error until process restart.
type lazyService struct {
	once    sync.Once
	build   func() (*Service, error)
	service *Service
	err     error
}

func (l *lazyService) get() (*Service, error) {
	l.once.Do(func() {
		l.service, l.err = l.build()
	})
	return l.service, l.err
}

var shared = &lazyService{build: newFromEnv}

// Instance returns the process-wide generation service, constructing the
// engine on first access. Concurrent first accesses observe exactly one
// construction.
func Instance() (*Service, error) {
	return shared.get()
}

func newFromEnv() (*Service, error) {
	cfg, err := config.LoadFromEnv("duckassist")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return New(cfg, observability.NewLogger(cfg, os.Stderr))
}

// New constructs a service around an engine chosen by config. Exposed for
// wiring in binaries; production call sites go through Instance.
func New(cfg config.Config, logger *slog.Logger) (*Service, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("construct generation engine: %w", err)
	}
	return NewWithEngine(engine, logger), nil
}

// NewWithEngine hands ownership of an already-built engine to a new service.
func NewWithEngine(engine genai.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	observability.SetEngineInitialized()
	return &Service{engine: engine, logger: logger}
}

func newEngine(cfg config.Config) (genai.Engine, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		return genai.NewOpenAIEngine(genai.OpenAIConfig{
			BaseURL:     cfg.AI.BaseURL,
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
	case config.ProviderGemini:
		return genai.NewGeminiEngine(context.Background(), genai.GeminiConfig{
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.AI.Provider)
	}
}

// Generate asks the engine for SQL text. The inputs are only read for the
// duration of the call; the returned string is owned by the caller.
func (s *Service) Generate(ctx context.Context, prompt, schemaContext string) (string, error) {
	start := time.Now()
	text, err := s.engine.Generate(ctx, prompt, schemaContext)
	observability.ObserveGeneration(time.Since(start), err)
	if err != nil {
		s.logger.Error("sql generation failed", slog.Any("error", err))
		return "", fmt.Errorf("generate sql: %w", err)
	}
	s.logger.Debug("sql generated",
		slog.Int("prompt_len", len(prompt)),
		slog.Int("context_len", len(schemaContext)),
		slog.Duration("duration", time.Since(start)),
	)
	return text, nil
}
