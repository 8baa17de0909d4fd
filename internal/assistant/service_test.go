package assistant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/duckassist/duckassist/internal/config"
)

func configForProvider(provider string) (config.Config, error) {
	return config.Load("duckassist", func(key string) (string, bool) {
		if key == "QUERY_ASSISTANT_AI_PROVIDER" {
			return provider, true
		}
		return "", false
	})
}

type fakeEngine struct {
	result string
	err    error

	lastPrompt  string
	lastContext string
}

func (f *fakeEngine) Generate(ctx context.Context, prompt, schemaContext string) (string, error) {
	f.lastPrompt = prompt
	f.lastContext = schemaContext
	return f.result, f.err
}

func TestLazyServiceConstructsOnce(t *testing.T) {
	var builds atomic.Int32
	lazy := &lazyService{build: func() (*Service, error) {
		builds.Add(1)
		return NewWithEngine(&fakeEngine{result: "SELECT 1;"}, nil), nil
	}}

	const accessors = 32
	services := make([]*Service, accessors)
	var wg sync.WaitGroup
	for i := 0; i < accessors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			service, err := lazy.get()
			if err != nil {
				t.Errorf("get() error = %v", err)
				return
			}
			services[i] = service
		}(i)
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("build count = %d, want 1", got)
	}
	for i := 1; i < accessors; i++ {
		if services[i] != services[0] {
			t.Fatalf("accessor %d observed a different service identity", i)
		}
	}
}

func TestLazyServiceConstructionErrorIsSticky(t *testing.T) {
	var builds atomic.Int32
	wantErr := errors.New("hardware acceleration backend unavailable")
	lazy := &lazyService{build: func() (*Service, error) {
		builds.Add(1)
		return nil, wantErr
	}}

	for i := 0; i < 3; i++ {
		if _, err := lazy.get(); !errors.Is(err, wantErr) {
			t.Fatalf("get() error = %v, want %v", err, wantErr)
		}
	}
	if got := builds.Load(); got != 1 {
		t.Fatalf("build count = %d, want 1 (no retry)", got)
	}
}

func TestGenerateReturnsEngineOutputVerbatim(t *testing.T) {
	engine := &fakeEngine{result: "```sql\nSELECT 1;\n```"}
	service := NewWithEngine(engine, nil)

	got, err := service.Generate(context.Background(), "count things", "CREATE TABLE t(a INTEGER);")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "```sql\nSELECT 1;\n```" {
		t.Fatalf("Generate() = %q, engine output must not be post-processed", got)
	}
	if engine.lastPrompt != "count things" {
		t.Fatalf("engine prompt = %q", engine.lastPrompt)
	}
	if engine.lastContext != "CREATE TABLE t(a INTEGER);" {
		t.Fatalf("engine context = %q", engine.lastContext)
	}
}

func TestGenerateWrapsEngineFailure(t *testing.T) {
	wantErr := errors.New("inference failed")
	service := NewWithEngine(&fakeEngine{err: wantErr}, nil)

	got, err := service.Generate(context.Background(), "p", "c")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Generate() error = %v, want wrapped %v", err, wantErr)
	}
	if got != "" {
		t.Fatalf("Generate() = %q, want no partial output on failure", got)
	}
}

func TestNewEngineRejectsUnknownProvider(t *testing.T) {
	cfg, err := configForProvider("openai")
	if err != nil {
		t.Fatalf("configForProvider() error = %v", err)
	}
	cfg.AI.Provider = "unknown"
	if _, err := newEngine(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewEngineOpenAIRequiresKey(t *testing.T) {
	cfg, err := configForProvider("openai")
	if err != nil {
		t.Fatalf("configForProvider() error = %v", err)
	}
	if _, err := newEngine(cfg); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
