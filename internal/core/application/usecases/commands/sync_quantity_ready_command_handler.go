package commands

import (
	"context"
)

// SyncQuantityReadyCommandHandler recounts every item's ready quantity from
// the piece ledger. Counters are recomputed, never incremented, so a resync
// converges regardless of how the ledger got into its current shape.
type SyncQuantityReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSyncQuantityReadyCommandHandler creates a handler for ready-counter resyncs.
func NewSyncQuantityReadyCommandHandler(uowFactory OrderUoWFactory) SyncQuantityReadyCommandHandler {
	return SyncQuantityReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resync command.
func (h SyncQuantityReadyCommandHandler) Handle(ctx context.Context, cmd SyncQuantityReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, cmd.Actor().TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	aggregate.SyncAllQuantityReady()

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
