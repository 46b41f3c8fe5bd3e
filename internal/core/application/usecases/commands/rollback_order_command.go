package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

// ErrRollbackOrderCommandIsNotConstructed is returned when a
// RollbackOrderCommand bypassed its constructor.
var ErrRollbackOrderCommandIsNotConstructed = errors.New(
	"RollbackOrderCommand must be created via NewRollbackOrderCommand constructor",
)

// RollbackOrderCommand represents a request to erase an order that was
// created by mistake. Only orders that never left their initial status can
// be rolled back.
type RollbackOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewRollbackOrderCommand creates a command to roll back an order creation.
func NewRollbackOrderCommand(orderID kernel.UUID, actor kernel.Actor) (RollbackOrderCommand, error) {
	cmd := RollbackOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return RollbackOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RollbackOrderCommand) Validate() error {
	return c.guard.Validate(ErrRollbackOrderCommandIsNotConstructed)
}

// OrderID returns the order to erase.
func (c RollbackOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requests the rollback.
func (c RollbackOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RollbackOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RollbackOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
