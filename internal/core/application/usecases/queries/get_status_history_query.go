// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
	"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
)

// GetStatusHistoryQuery retrieves the immutable status trail of one order,
// oldest first. Split audit rows appear with equal from and to statuses.
type GetStatusHistoryQuery struct {
	tenantID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStatusHistoryQuery creates a query for an order's status history.
func NewGetStatusHistoryQuery(tenantID, orderID kernel.UUID) (GetStatusHistoryQuery, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	return GetStatusHistoryQuery{
		tenantID: tenantID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetStatusHistoryQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// OrderID returns the order whose history is requested.
func (q GetStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetStatusHistoryQueryResponse is one row of the status trail.
type GetStatusHistoryQueryResponse struct {
	ID        kernel.UUID
	From      string
	To        string
	ChangedBy string
	ChangedAt time.Time
	Notes     string
}
