package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mathplace/internal/store"
)

func TestWithLogging_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"answer":"4"}`), Usage: newUsage(12, 3)},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, ProviderMock, s.EventRepo(), zap.New(core))

	ctx := WithPurpose(context.Background(), PurposeQuestion)
	req := UserPrompt("be brief", "2+2?")
	req.Schema = testSchema()

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error")
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage != "boom" {
		t.Errorf("failed event = %+v", failed)
	}
	if !ok.Success || ok.InputTokens != 12 || ok.Purpose != PurposeQuestion || ok.ResponseBody != `{"answer":"4"}` {
		t.Errorf("ok event = %+v", ok)
	}
	for _, want := range []string{"[system]\nbe brief", "[user]\n2+2?", "[schema: test-object]"} {
		if !strings.Contains(ok.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ok.RequestBody)
		}
	}

	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Errorf("expected one warning log, got %v", logs.All())
	}
}

func TestWithLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != ProviderMock {
		t.Errorf("model = %q", p.ModelID())
	}

	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected missing key error")
	}
}
