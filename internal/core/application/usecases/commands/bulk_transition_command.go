package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var (
	ErrBulkTransitionCommandIsNotConstructed = errors.New(
		"BulkTransitionCommand must be created via NewBulkTransitionCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// BulkTransitionCommand represents a request to move a batch of orders to
// the same target status on behalf of one actor.
type BulkTransitionCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	actor    kernel.Actor
	toStatus order.Status
	notes    string

	guard guard.ConstructorGuard
}

// NewBulkTransitionCommand creates a command to transition a batch of orders.
// The batch size cap is enforced by the handler, not here, so the limit can
// be configured per deployment.
func NewBulkTransitionCommand(
	orderIDs []kernel.UUID,
	actor kernel.Actor,
	toStatus order.Status,
	notes string,
) (BulkTransitionCommand, error) {
	cmd := BulkTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setActor(actor),
		cmd.setToStatus(toStatus),
	); err != nil {
		return BulkTransitionCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkTransitionCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionCommandIsNotConstructed)
}

// OrderIDs returns the batch in request order.
func (c BulkTransitionCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// Actor returns who requests the batch.
func (c BulkTransitionCommand) Actor() kernel.Actor {
	return c.actor
}

// ToStatus returns the shared target status.
func (c BulkTransitionCommand) ToStatus() order.Status {
	return c.toStatus
}

// Notes returns the optional note stamped on every history row.
func (c BulkTransitionCommand) Notes() string {
	return c.notes
}

func (c *BulkTransitionCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *BulkTransitionCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *BulkTransitionCommand) setToStatus(toStatus order.Status) error {
	if err := toStatus.Validate(); err != nil {
		return err
	}
	c.toStatus = toStatus
	return nil
}
