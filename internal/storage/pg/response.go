package pg

import (
	"context"

	"github.com/lib/pq"

	"github.com/petchan-dev/petchan/internal/domain"
)

// CreateResponse calls the create_response procedure. Same cadence
// convention as create_thread; anchor validity (same-thread, exists)
// is enforced inside the procedure, not here.
func (s *Storage) CreateResponse(ctx context.Context, data domain.ResponseCreationData) (domain.Created, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT create_response($1, $2, $3, $4, $5)`,
		data.ThreadId, data.Content, pq.StringArray(data.ImageUrls),
		nullString(data.AnchorTo), nullString(data.ClientIP),
	).Scan(&id)
	if err != nil {
		return domain.Created{}, mapPostingError("create_response", err)
	}

	return domain.Created{Id: id}, nil
}
