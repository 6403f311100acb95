package slogx

import (
	"log/slog"

	"github.com/samber/oops"
)

// Error logs err at error level. Structured oops errors contribute their code
// and context as separate attributes.
func Error(logger *slog.Logger, msg string, err error, attrs ...any) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.Error(msg, append(attrs, slog.Any("error", err))...)
		return
	}

	attrs = append(attrs, slog.String("error", oopsErr.Error()))
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, slog.Any("code", code))
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, slog.Any("context", ctx))
	}
	logger.Error(msg, attrs...)
}
