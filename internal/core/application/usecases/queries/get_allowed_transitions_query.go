package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetAllowedTransitionsQueryIsNotConstructed = errors.New(
	"GetAllowedTransitionsQuery must be created via NewGetAllowedTransitionsQuery constructor",
)

// GetAllowedTransitionsQuery asks which statuses an order may move to next
// under the tenant's effective transition policy. Used by clients to render
// only the buttons that can succeed.
type GetAllowedTransitionsQuery struct {
	tenantID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAllowedTransitionsQuery creates a query for an order's allowed transitions.
func NewGetAllowedTransitionsQuery(tenantID, orderID kernel.UUID) (GetAllowedTransitionsQuery, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return GetAllowedTransitionsQuery{}, err
	}

	return GetAllowedTransitionsQuery{
		tenantID: tenantID,
		orderID:  orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllowedTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedTransitionsQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q GetAllowedTransitionsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// OrderID returns the order in question.
func (q GetAllowedTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetAllowedTransitionsQueryResponse lists the reachable target statuses.
// Gated maps each target that carries quality gate rules to those rule
// names, so clients can hint that the move may still be blocked.
type GetAllowedTransitionsQueryResponse struct {
	Current      string
	PolicySource string
	Allowed      []string
	Gated        map[string][]string
}
