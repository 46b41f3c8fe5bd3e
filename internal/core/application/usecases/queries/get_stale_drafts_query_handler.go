package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleDraftsQueryHandler lists quick-drop drafts older than a cutoff
// across all tenants. The expiry job is the only consumer.
type GetStaleDraftsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleDraftsQueryHandler creates a handler for stale-draft queries.
func NewGetStaleDraftsQueryHandler(db *gorm.DB) GetStaleDraftsQueryHandler {
	return GetStaleDraftsQueryHandler{db: db}
}

// Handle executes the query, oldest drafts first.
func (h GetStaleDraftsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleDraftsQuery,
) ([]GetStaleDraftsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drafts := make([]GetStaleDraftsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT tenant_id, id, number
		FROM orders
		WHERE status = 'draft' AND is_quick_drop AND created_at < ?
		ORDER BY created_at
	`, query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tenantID, orderID uuid.UUID
		var number string

		if err = rows.Scan(&tenantID, &orderID, &number); err != nil {
			return nil, err
		}

		tenant, idErr := kernel.UUIDFromBytes(tenantID[:])
		if idErr != nil {
			return nil, idErr
		}
		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		drafts = append(drafts, GetStaleDraftsQueryResponse{
			TenantID: tenant,
			OrderID:  id,
			Number:   number,
		})
	}

	return drafts, rows.Err()
}
