package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

// ErrSyncQuantityReadyCommandIsNotConstructed is returned when a
// SyncQuantityReadyCommand bypassed its constructor.
var ErrSyncQuantityReadyCommandIsNotConstructed = errors.New(
	"SyncQuantityReadyCommand must be created via NewSyncQuantityReadyCommand constructor",
)

// SyncQuantityReadyCommand represents a request to recount an order's ready
// quantities from the piece ledger. Used after manual corrections or imports
// that bypassed the scan path.
type SyncQuantityReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewSyncQuantityReadyCommand creates a command to resync ready counters.
func NewSyncQuantityReadyCommand(orderID kernel.UUID, actor kernel.Actor) (SyncQuantityReadyCommand, error) {
	cmd := SyncQuantityReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SyncQuantityReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncQuantityReadyCommand) Validate() error {
	return c.guard.Validate(ErrSyncQuantityReadyCommandIsNotConstructed)
}

// OrderID returns the order to resync.
func (c SyncQuantityReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requests the resync.
func (c SyncQuantityReadyCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *SyncQuantityReadyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SyncQuantityReadyCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
