package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusHistoryQueryHandler reads the status trail straight from the
// history table. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the query.
// Returns the rows oldest first; an order without history yields an empty
// slice, not an error.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetStatusHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			from_status,
			to_status,
			changed_by,
			changed_at,
			notes
		FROM order_status_history
		WHERE tenant_id = ? AND order_id = ?
		ORDER BY changed_at, id
	`, query.TenantID().Bytes(), query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetStatusHistoryQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&entry.From,
			&entry.To,
			&entry.ChangedBy,
			&entry.ChangedAt,
			&entry.Notes,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
