package yoga

import (
	"log/slog"
)

type slogAdapter struct {
	l *slog.Logger
}

// NewSlogLogger adapts a slog.Logger. Call sites pass a message followed
// by key value pairs, which slog renders as attributes.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogAdapter{l: l}
}

func (s slogAdapter) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogAdapter) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogAdapter) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s slogAdapter) Error(msg string, args ...any) { s.l.Error(msg, args...) }
