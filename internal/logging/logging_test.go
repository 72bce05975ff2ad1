package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/gofmi/internal/fmi"
)

func TestCallbackLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cb := Callback(zap.New(core), "decay1")

	cb(fmi.StatusOK, fmi.CategoryTrace, "fine")
	cb(fmi.StatusWarning, fmi.CategoryLogAll, "careful")
	cb(fmi.StatusError, fmi.CategoryLogAll, "broken")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantLevels := []string{"debug", "warn", "error"}
	for i, e := range entries {
		if got := e.Level.String(); got != wantLevels[i] {
			t.Errorf("entry %d: expected level %s, got %s", i, wantLevels[i], got)
		}
	}
	if entries[2].Message != "broken" {
		t.Errorf("unexpected message: %s", entries[2].Message)
	}
}

func TestLoggerDefaultsToNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("expected a logger, got nil")
	}
}
