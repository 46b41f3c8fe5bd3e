package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

// ErrRejectPieceCommandIsNotConstructed is returned when a
// RejectPieceCommand bypassed its constructor.
var ErrRejectPieceCommandIsNotConstructed = errors.New(
	"RejectPieceCommand must be created via NewRejectPieceCommand constructor",
)

// RejectPieceCommand represents a quality rejection of one piece, linking it
// to the issue that documents the defect.
type RejectPieceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	pieceID kernel.UUID
	issueID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewRejectPieceCommand creates a command to reject a piece.
func NewRejectPieceCommand(
	orderID, pieceID, issueID kernel.UUID,
	actor kernel.Actor,
) (RejectPieceCommand, error) {
	cmd := RejectPieceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPieceID(pieceID),
		cmd.setIssueID(issueID),
		cmd.setActor(actor),
	); err != nil {
		return RejectPieceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectPieceCommand) Validate() error {
	return c.guard.Validate(ErrRejectPieceCommandIsNotConstructed)
}

// OrderID returns the owning order.
func (c RejectPieceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PieceID returns the piece to reject.
func (c RejectPieceCommand) PieceID() kernel.UUID {
	return c.pieceID
}

// IssueID returns the issue documenting the defect.
func (c RejectPieceCommand) IssueID() kernel.UUID {
	return c.issueID
}

// Actor returns who rejected the piece.
func (c RejectPieceCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RejectPieceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RejectPieceCommand) setPieceID(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}
	c.pieceID = pieceID
	return nil
}

func (c *RejectPieceCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}
	c.issueID = issueID
	return nil
}

func (c *RejectPieceCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
