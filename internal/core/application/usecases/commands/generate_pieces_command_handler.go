package commands

import (
	"context"

	"laundry/internal/pkg/errs"
)

// GeneratePiecesCommandHandler creates or adjusts the tagged piece records
// for one order item inside a tenant-scoped transaction.
type GeneratePiecesCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewGeneratePiecesCommandHandler creates a handler for piece generation.
func NewGeneratePiecesCommandHandler(uowFactory OrderUoWFactory) GeneratePiecesCommandHandler {
	return GeneratePiecesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the generation command.
func (h GeneratePiecesCommandHandler) Handle(ctx context.Context, cmd GeneratePiecesCommand) error {
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
	if !aggregate.TenantID().IsEqual(cmd.Actor().TenantID()) {
		return errs.NewForbiddenError("orderId", cmd.OrderID().String())
	}

	if err = aggregate.GeneratePieces(cmd.ItemID(), cmd.Count()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
