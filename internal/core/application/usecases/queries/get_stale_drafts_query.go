package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrGetStaleDraftsQueryIsNotConstructed = errors.New(
		"GetStaleDraftsQuery must be created via NewGetStaleDraftsQuery constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff time is required")
)

// GetStaleDraftsQuery finds quick-drop orders that were never itemized:
// drafts created before the cutoff. The expiry job cancels them tenant by
// tenant.
type GetStaleDraftsQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleDraftsQuery creates a query for drafts older than the cutoff.
func NewGetStaleDraftsQuery(cutoff time.Time) (GetStaleDraftsQuery, error) {
	if cutoff.IsZero() {
		return GetStaleDraftsQuery{}, ErrCutoffIsRequired
	}

	return GetStaleDraftsQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleDraftsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleDraftsQueryIsNotConstructed)
}

// Cutoff returns the age threshold.
func (q GetStaleDraftsQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStaleDraftsQueryResponse identifies one expired draft and its tenant.
type GetStaleDraftsQueryResponse struct {
	TenantID kernel.UUID
	OrderID  kernel.UUID
	Number   string
}
