package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired     = errors.New("order number is required")
	ErrServiceCategoryIsRequired = errors.New("service category is required")
	ErrItemsAreRequired          = errors.New("at least one item is required unless the order is a quick drop")
)

// ItemLine describes one order line in a creation request. TrackPieces asks
// for one tagged piece per quantity unit to be generated immediately.
type ItemLine struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	HasStain    bool
	HasDamage   bool
	Notes       string
	TrackPieces bool
}

// CreateOrderCommand represents a request to register a new laundry order.
// Quick-drop orders may be created without items; they stay in draft until
// the contents are itemized.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, actor, customerID,
//	    "2026-0042", "wash_fold", false, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	actor           kernel.Actor
	customerID      kernel.UUID
	number          string
	serviceCategory string
	quickDrop       bool
	items           []ItemLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identities and that non-quick-drop orders carry at least one
// item; per-line values are validated by the item constructor in the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	customerID kernel.UUID,
	number, serviceCategory string,
	quickDrop bool,
	items []ItemLine,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setActor(actor),
		orderCommand.setCustomerID(customerID),
		orderCommand.setNumber(number),
		orderCommand.setServiceCategory(serviceCategory),
		orderCommand.setItems(quickDrop, items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.quickDrop = quickDrop
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who creates the order.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// CustomerID returns the owning customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Number returns the human-readable order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// ServiceCategory returns the service category the order belongs to.
func (c CreateOrderCommand) ServiceCategory() string {
	return c.serviceCategory
}

// QuickDrop reports whether the order was handed in without itemization.
func (c CreateOrderCommand) QuickDrop() bool {
	return c.quickDrop
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemLine {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return ErrOrderNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setServiceCategory(serviceCategory string) error {
	if serviceCategory == "" {
		return ErrServiceCategoryIsRequired
	}

	c.serviceCategory = serviceCategory
	return nil
}

func (c *CreateOrderCommand) setItems(quickDrop bool, items []ItemLine) error {
	if !quickDrop && len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
