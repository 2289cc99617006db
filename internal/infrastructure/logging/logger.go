package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production environments get the JSON production
// preset, everything else the development preset; level and encoding are then
// overridden from configuration.
func New(environment, level, format string, outputPaths ...string) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == "production" || environment == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	switch format {
	case "json", "console":
		cfg.Encoding = format
	case "":
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
		cfg.ErrorOutputPaths = outputPaths
	}

	return cfg.Build()
}
