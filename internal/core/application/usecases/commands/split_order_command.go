package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

// ErrSplitOrderCommandIsNotConstructed is returned when a SplitOrderCommand
// bypassed its constructor.
var ErrSplitOrderCommandIsNotConstructed = errors.New(
	"SplitOrderCommand must be created via NewSplitOrderCommand constructor",
)

// SplitOrderCommand represents a request to carve a child order out of an
// existing one. The selection names either whole items or individual pieces,
// never both; the domain rejects mixed selections.
type SplitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    kernel.Actor
	itemIDs  []kernel.UUID
	pieceIDs []kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewSplitOrderCommand creates a command to split an order.
// Each selected id must be a valid UUID; whether the ids belong to the order
// and whether the selection leaves both sides non-empty is decided by the
// aggregate.
func NewSplitOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	itemIDs, pieceIDs []kernel.UUID,
	reason string,
) (SplitOrderCommand, error) {
	cmd := SplitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setSelection(itemIDs, pieceIDs),
	); err != nil {
		return SplitOrderCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderCommandIsNotConstructed)
}

// OrderID returns the order to split.
func (c SplitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requests the split.
func (c SplitOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// ItemIDs returns the whole items selected for the child order.
func (c SplitOrderCommand) ItemIDs() []kernel.UUID {
	return c.itemIDs
}

// PieceIDs returns the individual pieces selected for the child order.
func (c SplitOrderCommand) PieceIDs() []kernel.UUID {
	return c.pieceIDs
}

// Reason returns the operator-provided reason recorded in the audit trail.
func (c SplitOrderCommand) Reason() string {
	return c.reason
}

func (c *SplitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SplitOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *SplitOrderCommand) setSelection(itemIDs, pieceIDs []kernel.UUID) error {
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	for _, id := range pieceIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.itemIDs = itemIDs
	c.pieceIDs = pieceIDs
	return nil
}
