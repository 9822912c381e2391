// Package logging is a thin encapsulation of go.uber.org/zap, the same
// role korthochain's pkg/logger plays there. Kiba runs as a single-node
// foreground server under a process supervisor, so unlike that package
// it writes JSON to stdout rather than to a lumberjack-rotated file —
// rotation is the supervisor's job here, not the server's.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger at the given level ("debug", "info", "warn",
// or "error"; defaults to "info" on a bad value).
func New(levelName string) *zap.Logger {
	level := zapcore.InfoLevel
	_ = level.UnmarshalText([]byte(levelName))

	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewJSONEncoder(encodeConfig)
	writer := zapcore.Lock(zapcore.AddSync(os.Stdout))

	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core, zap.AddCaller())
}
