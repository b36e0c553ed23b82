package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON production logger. Unknown levels fall back to info.
func New(logLevel string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoder(func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	})
	config.Level.SetLevel(parseLevel(logLevel))

	return config.Build()
}

func parseLevel(logLevel string) zapcore.Level {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return zap.InfoLevel
	}
	return level
}
