// Package logging provides categorized logging for solohub on top of zap.
// Each subsystem logs through its own named logger so categories can be
// enabled or silenced independently from config. Before Initialize is called
// every category logs to a no-op core, which keeps library embedding quiet.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies a logging subsystem.
type Category string

const (
	CategoryStore  Category = "store"  // Entity stores, persistence backends
	CategoryQuery  Category = "query"  // Filter/search evaluation
	CategoryAuth   Category = "auth"   // Permission decisions
	CategoryCenter Category = "center" // Domain facades
	CategoryAIHub  Category = "aihub"  // Conversation engine, provider calls
	CategoryConfig Category = "config" // Config load/save
	CategoryCLI    Category = "cli"    // Command-line frontend
)

// Options controls Initialize.
type Options struct {
	// Level is one of debug/info/warn/error. Empty means info.
	Level string

	// Categories enables or disables individual categories. Categories not
	// present default to Enabled.
	Categories map[string]bool

	// Enabled is the default for categories missing from Categories.
	Enabled bool

	// Development switches to zap's console encoding with colors.
	Development bool
}

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	opts    = Options{Enabled: false}
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Initialize builds the root logger. Safe to call more than once; later calls
// replace the cores of all category loggers.
func Initialize(o Options) error {
	level := zapcore.InfoLevel
	if o.Level != "" {
		if err := level.Set(o.Level); err != nil {
			return fmt.Errorf("parse log level %q: %w", o.Level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if o.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	root = logger
	opts = o
	loggers = make(map[Category]*zap.SugaredLogger)
	return nil
}

// Get returns the sugared logger for a category. Disabled categories get a
// no-op logger.
func Get(cat Category) *zap.SugaredLogger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	l := build(cat)
	loggers[cat] = l
	return l
}

func build(cat Category) *zap.SugaredLogger {
	enabled := opts.Enabled
	if v, ok := opts.Categories[string(cat)]; ok {
		enabled = v
	}
	if !enabled {
		return zap.NewNop().Sugar()
	}
	return root.Named(string(cat)).Sugar()
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
