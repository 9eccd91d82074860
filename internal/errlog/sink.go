// Package errlog records structured failure events. The sink never
// fails its caller: a broken logging path must not abort a
// user-facing submission, so write errors only reach the local
// diagnostic stream.
package errlog

import (
	"context"
	"log/slog"

	"github.com/petchan-dev/petchan/internal/domain"
)

const (
	maxMessageLen     = 2000
	maxStackLen       = 4000
	maxRequestDataLen = 2000
)

// Writer persists one entry. Implemented by the pg storage via the
// log_error procedure.
type Writer interface {
	LogError(ctx context.Context, entry domain.ErrorLogEntry) (string, error)
}

type Sink struct {
	writer      Writer
	environment string
}

func NewSink(writer Writer, environment string) *Sink {
	return &Sink{writer: writer, environment: environment}
}

// Log redacts and persists the entry, returning the log id or an
// empty string. It never returns an error.
func (s *Sink) Log(ctx context.Context, entry domain.ErrorLogEntry) string {
	if entry.Severity == "" {
		entry.Severity = domain.SeverityError
	}
	entry.Environment = s.environment
	entry.Message = truncate(entry.Message, maxMessageLen)
	entry.Stack = truncate(entry.Stack, maxStackLen)
	entry.RequestData = truncate(entry.RequestData, maxRequestDataLen)

	logId, err := s.writer.LogError(ctx, entry)
	if err != nil {
		slog.Error("failed to persist error log entry", "error", err, "message", entry.Message)
		return ""
	}
	return logId
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// cut on a rune boundary
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
