package queries

import (
	"context"
	"database/sql"
	"errors"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAllowedTransitionsQueryHandler computes the reachable next statuses for
// one order. The order row is read with direct SQL; the policy evaluation
// itself stays in the domain so the answer always matches what a transition
// command would decide.
type GetAllowedTransitionsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllowedTransitionsQueryHandler creates a handler for allowed-transition queries.
func NewGetAllowedTransitionsQueryHandler(db *gorm.DB) GetAllowedTransitionsQueryHandler {
	return GetAllowedTransitionsQueryHandler{db: db}
}

// Handle executes the query.
// A terminal status yields an empty allowed set. A tenant-defined status
// missing from the policy propagates as ErrInvalidState.
func (h GetAllowedTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetAllowedTransitionsQuery,
) (GetAllowedTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT status, service_category
		FROM orders
		WHERE tenant_id = ? AND id = ?
	`, query.TenantID().Bytes(), query.OrderID().Bytes()).Row()

	var status, serviceCategory string
	err := row.Scan(&status, &serviceCategory)
	if errors.Is(err, sql.ErrNoRows) {
		return GetAllowedTransitionsQueryResponse{},
			errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	resolver := workflow.NewResolver(newSQLSettingsSource(h.db))
	policy, err := resolver.Resolve(ctx, query.TenantID(), serviceCategory)
	if err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	allowed, err := policy.AllowedTransitions(order.Status(status))
	if err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	gated := make(map[string][]string)
	for _, target := range allowed {
		rules := policy.GateRules(target)
		if len(rules) == 0 {
			continue
		}
		names := make([]string, 0, len(rules))
		for _, rule := range rules {
			names = append(names, string(rule))
		}
		gated[string(target)] = names
	}

	return GetAllowedTransitionsQueryResponse{
		Current:      status,
		PolicySource: policy.Source(),
		Allowed:      workflow.AllowedStrings(allowed),
		Gated:        gated,
	}, nil
}
