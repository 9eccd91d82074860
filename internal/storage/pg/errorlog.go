package pg

import (
	"context"
	"fmt"

	"github.com/petchan-dev/petchan/internal/domain"
)

// LogError calls the log_error procedure and returns the created log
// id. Errors bubble up to the sink, which swallows them.
func (s *Storage) LogError(ctx context.Context, entry domain.ErrorLogEntry) (string, error) {
	var logId string
	err := s.db.QueryRowContext(ctx,
		`SELECT log_error($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.Message,
		nullString(entry.Stack),
		nullString(entry.Kind),
		nullString(entry.FunctionName),
		nullString(entry.Endpoint),
		nullString(entry.UserAction),
		nullString(entry.ClientIP),
		nullString(entry.UserAgent),
		nullString(entry.RequestData),
		entry.Severity,
		entry.Environment,
	).Scan(&logId)
	if err != nil {
		return "", fmt.Errorf("log_error: %w", err)
	}
	return logId, nil
}
