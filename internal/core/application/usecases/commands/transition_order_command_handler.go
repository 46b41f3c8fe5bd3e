package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
)

// TransitionResult carries the order after a successful transition together
// with the history entry recorded for it.
type TransitionResult struct {
	Order   *order.Order
	History order.HistoryEntry
}

// TransitionOrderCommandHandler moves an order to a new status. It resolves
// the tenant's transition policy, checks the target against the allowed set,
// evaluates the quality gate rules attached to the target, and persists the
// status change with a guarded update so a concurrent writer cannot be
// silently overwritten.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory)
//	cmd, _ := NewTransitionOrderCommand(orderID, actor, order.StatusReady, "")
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrIllegalTransition):
//	    log.Println("Target not reachable from the current status")
//	case errors.Is(err, errs.ErrGateBlocked):
//	    log.Println("Quality gate rejected the transition")
//	case err != nil:
//	    log.Printf("Transition failed: %v", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	evaluator  services.GateEvaluator
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// Requires a UoWFactory so policy resolution and the guarded status write
// observe the same transactional snapshot.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		evaluator:  services.NewGateEvaluator(),
	}
}

// Handle processes the transition command.
// Loads the order by tenant and id, resolves the effective policy, validates
// the transition and its gate rules, then applies the change and appends a
// history row in one transaction. When the guarded update detects that a
// concurrent writer won, the whole validation is re-run once against the
// winner's status before giving up with ErrConcurrentModification.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context, command TransitionOrderCommand,
) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	resolver := workflow.NewResolver(uow.WorkflowSettingsRepository())

	var result TransitionResult
	for attempt := 0; ; attempt++ {
		aggregate, err := ordersRepo.Get(ctx, command.Actor().TenantID(), command.OrderID())
		if err != nil {
			return TransitionResult{}, err
		}

		policy, err := resolver.Resolve(ctx, command.Actor().TenantID(), aggregate.ServiceCategory())
		if err != nil {
			return TransitionResult{}, fmt.Errorf("resolve transition policy: %w", err)
		}

		from := aggregate.Status()
		allowed, err := policy.AllowedTransitions(from)
		if err != nil {
			return TransitionResult{}, err
		}
		if !statusIn(command.ToStatus(), allowed) {
			return TransitionResult{}, errs.NewIllegalTransitionError(
				string(from), string(command.ToStatus()), workflow.AllowedStrings(allowed))
		}

		gate := h.evaluator.Evaluate(aggregate, command.ToStatus(), policy.GateRules(command.ToStatus()))
		if !gate.Allowed {
			return TransitionResult{}, errs.NewGateBlockedError(string(command.ToStatus()), gate.Blockers)
		}

		changedAt := time.Now().UTC()
		if _, err = aggregate.EnterStatus(command.ToStatus(), changedAt); err != nil {
			return TransitionResult{}, err
		}

		err = ordersRepo.UpdateStatusGuarded(ctx, aggregate, from)
		if errors.Is(err, errs.ErrConcurrentModification) && attempt == 0 {
			// Someone else moved the order first. Re-read and validate the
			// requested target against the status they left behind.
			continue
		}
		if err != nil {
			return TransitionResult{}, err
		}

		entry, err := order.NewHistoryEntry(
			command.Actor().TenantID(), aggregate.ID(), from, command.ToStatus(),
			command.Actor().UserName(), changedAt, command.Notes())
		if err != nil {
			return TransitionResult{}, err
		}
		if err = ordersRepo.AppendHistory(ctx, entry); err != nil {
			return TransitionResult{}, err
		}

		result = TransitionResult{Order: aggregate, History: entry}
		break
	}

	if err := uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return result, nil
}

func statusIn(status order.Status, set []order.Status) bool {
	for _, candidate := range set {
		if candidate == status {
			return true
		}
	}
	return false
}
