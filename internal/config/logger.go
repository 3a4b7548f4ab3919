package config

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/duelbot/internal/log"
)

// NewLogger builds the process logger. It always writes to stderr because
// stdout carries the referee protocol.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// TraceLogger returns the planner event logger for the config: a text
// logger on w when tracing is on, otherwise one that drops events.
func TraceLogger(cfg LogConfig, w io.Writer) log.EventLogger {
	if cfg.Trace {
		return log.NewTextLogger(w)
	}
	return log.NopLogger{}
}
