package commands

import (
	"context"
	"time"

	"laundry/internal/pkg/errs"
)

// RejectPieceCommandHandler marks a piece as rejected and flags the owning
// order as having an open issue. The rejected piece stops counting toward
// assembly and quality gates until the issue is resolved.
type RejectPieceCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRejectPieceCommandHandler creates a handler for piece rejections.
func NewRejectPieceCommandHandler(uowFactory OrderUoWFactory) RejectPieceCommandHandler {
	return RejectPieceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command.
func (h RejectPieceCommandHandler) Handle(ctx context.Context, cmd RejectPieceCommand) error {
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

	if err = aggregate.MarkPieceRejected(
		cmd.PieceID(), cmd.IssueID(), cmd.Actor().UserName(), time.Now().UTC()); err != nil {
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
