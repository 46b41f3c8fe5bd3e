package commands

import (
	"context"

	"laundry/internal/pkg/errs"
)

// RollbackOrderCommandHandler erases an order that was created by mistake.
// The compensating delete is only permitted while the order still sits in
// its initial status (draft or intake); after the first transition the
// trail belongs to the audit history and cancellation is the way out.
type RollbackOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRollbackOrderCommandHandler creates a handler for order rollbacks.
func NewRollbackOrderCommandHandler(uowFactory OrderUoWFactory) RollbackOrderCommandHandler {
	return RollbackOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rollback command.
// Returns ErrInvalidState when the order has already progressed past its
// initial status.
func (h RollbackOrderCommandHandler) Handle(ctx context.Context, cmd RollbackOrderCommand) error {
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

	if !aggregate.Status().IsInitial() {
		return errs.NewInvalidStateError(string(aggregate.Status()))
	}

	if err = ordersRepo.Delete(ctx, cmd.Actor().TenantID(), cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
