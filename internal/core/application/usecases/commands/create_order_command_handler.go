package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the aggregate with its items, generates tagged pieces for lines
// that request tracking, and persists everything in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Quick-drop orders start in draft, everything else in intake. Each line
// with TrackPieces set gets one piece per quantity unit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.Actor().TenantID(), cmd.CustomerID(),
		cmd.Number(), cmd.ServiceCategory(), cmd.QuickDrop())
	if err != nil {
		return err
	}

	for _, line := range cmd.Items() {
		item, err := order.NewItem(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
		if err != nil {
			return err
		}
		item.SetCondition(line.HasStain, line.HasDamage, line.Notes)

		if err = aggregate.AddItem(item); err != nil {
			return err
		}

		if line.TrackPieces {
			if err = aggregate.GeneratePieces(item.ID(), line.Quantity); err != nil {
				return err
			}
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
