package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrGeneratePiecesCommandIsNotConstructed = errors.New(
		"GeneratePiecesCommand must be created via NewGeneratePiecesCommand constructor",
	)
	ErrPieceCountIsInvalid = errors.New("piece count must be greater than 0")
)

// GeneratePiecesCommand represents a request to create tagged piece records
// for one order item. Regenerating with a different count adjusts the piece
// set instead of duplicating it.
type GeneratePiecesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	actor   kernel.Actor
	count   int

	guard guard.ConstructorGuard
}

// NewGeneratePiecesCommand creates a command to generate pieces for an item.
func NewGeneratePiecesCommand(
	orderID, itemID kernel.UUID,
	actor kernel.Actor,
	count int,
) (GeneratePiecesCommand, error) {
	cmd := GeneratePiecesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setActor(actor),
		cmd.setCount(count),
	); err != nil {
		return GeneratePiecesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GeneratePiecesCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePiecesCommandIsNotConstructed)
}

// OrderID returns the owning order.
func (c GeneratePiecesCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the item to generate pieces for.
func (c GeneratePiecesCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Actor returns who requests the generation.
func (c GeneratePiecesCommand) Actor() kernel.Actor {
	return c.actor
}

// Count returns the desired number of pieces.
func (c GeneratePiecesCommand) Count() int {
	return c.count
}

func (c *GeneratePiecesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *GeneratePiecesCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *GeneratePiecesCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *GeneratePiecesCommand) setCount(count int) error {
	if count <= 0 {
		return ErrPieceCountIsInvalid
	}
	c.count = count
	return nil
}
