package order

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// ErrChangedByIsRequired is returned when a history entry has no author.
var ErrChangedByIsRequired = errs.NewValueIsRequiredError("changedBy")

// HistoryEntry is one append-only audit row for an order's status changes.
// Exactly one entry exists per accepted transition; rejected or blocked
// attempts never produce one. Entries are never updated or deleted.
//
// Split audit notes reuse the same shape with from == to, so one trail
// carries the order's full workflow story.
type HistoryEntry struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	orderID   kernel.UUID
	from      Status
	to        Status
	changedBy string
	changedAt time.Time
	notes     string
}

// NewHistoryEntry creates an audit entry for an accepted status change.
func NewHistoryEntry(
	tenantID, orderID kernel.UUID,
	from, to Status,
	changedBy string,
	changedAt time.Time,
	notes string,
) (HistoryEntry, error) {
	if err := errors.Join(
		tenantID.Validate(),
		orderID.Validate(),
		from.Validate(),
		to.Validate(),
	); err != nil {
		return HistoryEntry{}, err
	}
	if changedBy == "" {
		return HistoryEntry{}, ErrChangedByIsRequired
	}

	return HistoryEntry{
		id:        kernel.NewUUID(),
		tenantID:  tenantID,
		orderID:   orderID,
		from:      from,
		to:        to,
		changedBy: changedBy,
		changedAt: changedAt,
		notes:     notes,
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistent storage.
func RestoreHistoryEntry(
	id, tenantID, orderID kernel.UUID,
	from, to Status,
	changedBy string,
	changedAt time.Time,
	notes string,
) (HistoryEntry, error) {
	entry, err := NewHistoryEntry(tenantID, orderID, from, to, changedBy, changedAt, notes)
	if err != nil {
		return HistoryEntry{}, err
	}
	if err = id.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	entry.id = id
	return entry, nil
}

// ID returns the entry identifier.
func (h HistoryEntry) ID() kernel.UUID {
	return h.id
}

// TenantID returns the owning tenant.
func (h HistoryEntry) TenantID() kernel.UUID {
	return h.tenantID
}

// OrderID returns the order the entry belongs to.
func (h HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// From returns the status the order left.
func (h HistoryEntry) From() Status {
	return h.from
}

// To returns the status the order entered.
func (h HistoryEntry) To() Status {
	return h.to
}

// ChangedBy returns the display name of the actor who made the change.
func (h HistoryEntry) ChangedBy() string {
	return h.changedBy
}

// ChangedAt returns when the change was committed.
func (h HistoryEntry) ChangedAt() time.Time {
	return h.changedAt
}

// Notes returns the optional free-form note attached to the change.
func (h HistoryEntry) Notes() string {
	return h.notes
}
