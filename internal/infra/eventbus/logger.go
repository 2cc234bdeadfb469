package eventbus

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-kratos/kratos/v2/log"
)

// KratosLoggerAdapter exposes a kratos logger behind Watermill's
// LoggerAdapter interface. Fields attached through With are carried into
// every emitted entry.
type KratosLoggerAdapter struct {
	logger log.Logger
	fields watermill.LogFields
}

// NewKratosLoggerAdapter creates a new Watermill logger adapter.
func NewKratosLoggerAdapter(logger log.Logger) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{logger: logger}
}

func (l *KratosLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	if err != nil {
		fields = fields.Add(watermill.LogFields{"error": err})
	}
	l.emit(log.LevelError, msg, fields)
}

func (l *KratosLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.emit(log.LevelInfo, msg, fields)
}

func (l *KratosLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.emit(log.LevelDebug, msg, fields)
}

func (l *KratosLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	// Kratos has no trace level; debug is the closest
	l.emit(log.LevelDebug, msg, fields)
}

func (l *KratosLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &KratosLoggerAdapter{
		logger: l.logger,
		fields: l.fields.Add(fields),
	}
}

func (l *KratosLoggerAdapter) emit(level log.Level, msg string, fields watermill.LogFields) {
	merged := l.fields.Add(fields)
	keyvals := make([]any, 0, 2*len(merged)+2)
	keyvals = append(keyvals, "msg", msg)
	for k, v := range merged {
		keyvals = append(keyvals, k, v)
	}
	_ = l.logger.Log(level, keyvals...)
}
