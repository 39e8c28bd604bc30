// Package observability builds the structured loggers shared by the engine,
// the dice roller and the simulator.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/melee/internal/config"
)

// Loggers is the set of named loggers a simulator run hands to its components.
type Loggers struct {
	// Root is the unnamed logger for the command itself.
	Root *zap.Logger
	// Engine receives exchange warnings and encounter events.
	Engine *zap.Logger
	// Dice receives one debug entry per draw when dice tracing is on, and is
	// a no-op logger otherwise.
	Dice *zap.Logger
	// Scripts receives Lua load and runtime messages.
	Scripts *zap.Logger
}

// NewLoggers builds the root logger from cfg and derives the named component
// loggers from it.
//
// Precondition: cfg must pass config.LoggingConfig.Validate.
// Postcondition: Returns Loggers with every field non-nil, or an error.
func NewLoggers(cfg config.LoggingConfig) (Loggers, error) {
	root, err := NewLogger(cfg)
	if err != nil {
		return Loggers{}, err
	}
	dice := zap.NewNop()
	if cfg.DiceTrace {
		// Draws are logged at debug, so they only show with level "debug".
		dice = root.Named("dice")
	}
	return Loggers{
		Root:    root,
		Engine:  root.Named("engine"),
		Dice:    dice,
		Scripts: root.Named("scripting"),
	}, nil
}

// NewLogger creates a structured logger from the given logging configuration.
// The console format is human-oriented and omits stack traces below error.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	case "console":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
