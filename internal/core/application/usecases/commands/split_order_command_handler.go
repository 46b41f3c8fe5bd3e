package commands

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// SplitResult carries both sides of a completed split.
type SplitResult struct {
	Parent *order.Order
	Child  *order.Order
}

// SplitOrderCommandHandler carves a child order out of an existing one.
// The child inherits customer and service category from the parent, starts
// its own lifecycle in the initial status, receives the selected items or
// pieces, and both sides get an audit history row naming the counterpart.
// Parent and child are persisted in the same transaction so totals and piece
// counts never diverge.
type SplitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSplitOrderCommandHandler creates a handler for order splits.
func NewSplitOrderCommandHandler(uowFactory OrderUoWFactory) SplitOrderCommandHandler {
	return SplitOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the split command.
// Returns ErrEmptySplit when the selection would leave either side empty and
// ErrObjectNotFound when a selected id does not belong to the order.
func (h SplitOrderCommandHandler) Handle(ctx context.Context, cmd SplitOrderCommand) (SplitResult, error) {
	if err := cmd.Validate(); err != nil {
		return SplitResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SplitResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	parent, err := ordersRepo.Get(ctx, cmd.Actor().TenantID(), cmd.OrderID())
	if err != nil {
		return SplitResult{}, err
	}

	childID := kernel.NewUUID()
	childNumber := fmt.Sprintf("%s-S%.4s", parent.Number(), childID.String())

	child, err := parent.Split(childID, childNumber, order.SplitSelection{
		ItemIDs:  cmd.ItemIDs(),
		PieceIDs: cmd.PieceIDs(),
	})
	if err != nil {
		return SplitResult{}, err
	}

	if err = ordersRepo.Add(ctx, child); err != nil {
		return SplitResult{}, err
	}
	if err = ordersRepo.Update(ctx, parent); err != nil {
		return SplitResult{}, err
	}

	changedAt := time.Now().UTC()
	for _, side := range []struct {
		subject     *order.Order
		counterpart *order.Order
	}{
		{parent, child},
		{child, parent},
	} {
		entry, entryErr := order.NewHistoryEntry(
			cmd.Actor().TenantID(), side.subject.ID(),
			side.subject.Status(), side.subject.Status(),
			cmd.Actor().UserName(), changedAt,
			order.SplitAuditNote(cmd.Reason(), side.counterpart))
		if entryErr != nil {
			return SplitResult{}, entryErr
		}
		if err = ordersRepo.AppendHistory(ctx, entry); err != nil {
			return SplitResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return SplitResult{}, err
	}

	return SplitResult{Parent: parent, Child: child}, nil
}
