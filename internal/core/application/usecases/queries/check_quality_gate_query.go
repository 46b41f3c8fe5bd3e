package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrCheckQualityGateQueryIsNotConstructed = errors.New(
	"CheckQualityGateQuery must be created via NewCheckQualityGateQuery constructor",
)

// CheckQualityGateQuery evaluates the quality gate for a prospective
// transition without performing it. Assembly screens poll this to show what
// still blocks an order from going ready.
type CheckQualityGateQuery struct {
	tenantID kernel.UUID
	orderID  kernel.UUID
	target   order.Status

	guard guard.ConstructorGuard
}

// NewCheckQualityGateQuery creates a query for a dry-run gate evaluation.
func NewCheckQualityGateQuery(tenantID, orderID kernel.UUID, target order.Status) (CheckQualityGateQuery, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return CheckQualityGateQuery{}, err
	}

	return CheckQualityGateQuery{
		tenantID: tenantID,
		orderID:  orderID,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckQualityGateQuery) Validate() error {
	return q.guard.Validate(ErrCheckQualityGateQueryIsNotConstructed)
}

// TenantID returns the requesting tenant.
func (q CheckQualityGateQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// OrderID returns the order in question.
func (q CheckQualityGateQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Target returns the prospective target status.
func (q CheckQualityGateQuery) Target() order.Status {
	return q.target
}

// CheckQualityGateQueryResponse reports the dry-run outcome. Blockers is
// empty when the gate would allow the transition.
type CheckQualityGateQueryResponse struct {
	Target   string
	Allowed  bool
	Blockers []string
}
