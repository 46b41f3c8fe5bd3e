package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their items, pieces, and status history.
//
// Every read and write is scoped by tenant: a lookup with the wrong tenant is
// indistinguishable from a missing row (ObjectNotFound), so existence never
// leaks across tenants.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and pieces.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// item/piece inserts, updates, reassignments, and removals.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatusGuarded persists the aggregate's status change with a
	// conditional write guarded on the expected previous status. When the row
	// no longer matches, because a concurrent transition won, it fails with
	// ConcurrentModification and writes nothing.
	UpdateStatusGuarded(ctx context.Context, aggregate *order.Order, expectedFrom order.Status) error

	// Get retrieves the full order aggregate by tenant and id.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetByPieceCode retrieves the order owning the piece with the given
	// barcode within the tenant. Used by scan stations that only know the code.
	GetByPieceCode(ctx context.Context, tenantID kernel.UUID, code string) (*order.Order, error)

	// AppendHistory appends one immutable status-history row.
	AppendHistory(ctx context.Context, entry order.HistoryEntry) error

	// Delete removes an order with its items, pieces, and history. This is
	// the compensating rollback for an order that failed right after
	// creation; callers verify the order never left its initial status.
	Delete(ctx context.Context, tenantID, id kernel.UUID) error
}
