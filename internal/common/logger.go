// Package common holds shared infrastructure for the CLI binary.
package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pasteworks/clipstream/internal/config"
)

// NewLogger builds a zap logger from the daemon configuration.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoding := cfg.Format
	if encoding != "json" {
		encoding = "console"
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if encoding == "console" {
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zapCfg.Build()
}
