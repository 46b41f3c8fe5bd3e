package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// RecordScanCommandHandler records a barcode scan against the piece ledger.
// The order aggregate is located by the scanned piece code, the scan is
// applied, and the item's ready counter is resynced from its pieces before
// the aggregate is saved.
type RecordScanCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordScanCommandHandler creates a handler for scan events.
func NewRecordScanCommandHandler(uowFactory OrderUoWFactory) RecordScanCommandHandler {
	return RecordScanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scan command.
// Returns ErrObjectNotFound when no piece in the tenant carries the code.
// Re-scanning a piece with the same state and stage is a no-op.
func (h RecordScanCommandHandler) Handle(ctx context.Context, cmd RecordScanCommand) (*order.Piece, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.GetByPieceCode(ctx, cmd.Actor().TenantID(), cmd.PieceCode())
	if err != nil {
		return nil, err
	}
	if !aggregate.TenantID().IsEqual(cmd.Actor().TenantID()) {
		return nil, errs.NewForbiddenError("pieceCode", cmd.PieceCode())
	}

	piece, err := aggregate.RecordScan(
		cmd.PieceCode(), cmd.ScanState(), cmd.Stage(),
		cmd.Actor().UserName(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = aggregate.SyncQuantityReady(piece.ItemID()); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return piece, nil
}
