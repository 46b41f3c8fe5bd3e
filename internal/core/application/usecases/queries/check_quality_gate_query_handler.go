package queries

import (
	"context"

	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// CheckQualityGateQueryHandler runs the gate evaluation against the live
// aggregate without writing anything. It loads the order through the same
// repository the commands use so the dry run and the real transition can
// never disagree on the rules.
type CheckQualityGateQueryHandler struct {
	orders    ports.OrderRepository
	settings  workflow.SettingsSource
	evaluator services.GateEvaluator
}

// NewCheckQualityGateQueryHandler creates a handler for gate dry runs.
func NewCheckQualityGateQueryHandler(
	orders ports.OrderRepository,
	settings workflow.SettingsSource,
) CheckQualityGateQueryHandler {
	return CheckQualityGateQueryHandler{
		orders:    orders,
		settings:  settings,
		evaluator: services.NewGateEvaluator(),
	}
}

// Handle executes the dry-run evaluation.
func (h CheckQualityGateQueryHandler) Handle(
	ctx context.Context,
	query CheckQualityGateQuery,
) (CheckQualityGateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckQualityGateQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.TenantID(), query.OrderID())
	if err != nil {
		return CheckQualityGateQueryResponse{}, err
	}

	policy, err := workflow.NewResolver(h.settings).Resolve(ctx, query.TenantID(), aggregate.ServiceCategory())
	if err != nil {
		return CheckQualityGateQueryResponse{}, err
	}

	result := h.evaluator.Evaluate(aggregate, query.Target(), policy.GateRules(query.Target()))

	return CheckQualityGateQueryResponse{
		Target:   string(query.Target()),
		Allowed:  result.Allowed,
		Blockers: result.Blockers,
	}, nil
}
