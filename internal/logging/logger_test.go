package logging

import "testing"

func TestGetBeforeInitializeIsNop(t *testing.T) {
	l := Get(CategoryStore)
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	// Must not panic even though Initialize was never called.
	l.Debugw("noop", "k", "v")
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	err := Initialize(Options{Level: "loud"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestCategoryToggle(t *testing.T) {
	err := Initialize(Options{
		Level:      "debug",
		Enabled:    true,
		Categories: map[string]bool{"query": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if Get(CategoryQuery) == Get(CategoryStore) {
		t.Error("expected distinct loggers per category")
	}
	// Disabled category must still be usable.
	Get(CategoryQuery).Infow("suppressed")
	Get(CategoryStore).Infow("visible")
}
