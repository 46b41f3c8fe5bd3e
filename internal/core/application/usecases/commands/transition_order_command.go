package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

// ErrTransitionOrderCommandIsNotConstructed is returned when a
// TransitionOrderCommand bypassed its constructor.
var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move one order to a new
// status on behalf of an actor. Notes are optional and end up on the history
// row when the transition is accepted.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    kernel.Actor
	toStatus order.Status
	notes    string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Validates the order id, the actor identity, and that a target status is
// named; whether the transition is legal is decided later by the handler
// against the resolved policy.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	toStatus order.Status,
	notes string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setToStatus(toStatus),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requests the transition.
func (c TransitionOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// ToStatus returns the target status.
func (c TransitionOrderCommand) ToStatus() order.Status {
	return c.toStatus
}

// Notes returns the optional note for the history row.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setToStatus(toStatus order.Status) error {
	if err := toStatus.Validate(); err != nil {
		return err
	}
	c.toStatus = toStatus
	return nil
}
