package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var (
	ErrRecordScanCommandIsNotConstructed = errors.New(
		"RecordScanCommand must be created via NewRecordScanCommand constructor",
	)
	ErrPieceCodeIsRequired = errors.New("piece code is required")
)

// RecordScanCommand represents one barcode scan event at a processing
// station. The piece is located by its printed code; the order is implied.
// Stage is optional: an empty stage records the scan without moving the
// piece through the pipeline.
type RecordScanCommand struct { //nolint:recvcheck //using for validation
	pieceCode string
	actor     kernel.Actor
	scanState order.ScanState
	stage     order.PieceStatus

	guard guard.ConstructorGuard
}

// NewRecordScanCommand creates a command to record a piece scan.
func NewRecordScanCommand(
	pieceCode string,
	actor kernel.Actor,
	scanState order.ScanState,
	stage order.PieceStatus,
) (RecordScanCommand, error) {
	cmd := RecordScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPieceCode(pieceCode),
		cmd.setActor(actor),
		cmd.setScanState(scanState),
		cmd.setStage(stage),
	); err != nil {
		return RecordScanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordScanCommand) Validate() error {
	return c.guard.Validate(ErrRecordScanCommandIsNotConstructed)
}

// PieceCode returns the scanned barcode.
func (c RecordScanCommand) PieceCode() string {
	return c.pieceCode
}

// Actor returns who performed the scan.
func (c RecordScanCommand) Actor() kernel.Actor {
	return c.actor
}

// ScanState returns the observed state of the piece.
func (c RecordScanCommand) ScanState() order.ScanState {
	return c.scanState
}

// Stage returns the pipeline stage the piece moved into, empty for none.
func (c RecordScanCommand) Stage() order.PieceStatus {
	return c.stage
}

func (c *RecordScanCommand) setPieceCode(pieceCode string) error {
	if pieceCode == "" {
		return ErrPieceCodeIsRequired
	}
	c.pieceCode = pieceCode
	return nil
}

func (c *RecordScanCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RecordScanCommand) setScanState(scanState order.ScanState) error {
	if err := scanState.Validate(); err != nil {
		return err
	}
	c.scanState = scanState
	return nil
}

func (c *RecordScanCommand) setStage(stage order.PieceStatus) error {
	if stage == "" {
		return nil
	}
	if err := stage.Validate(); err != nil {
		return err
	}
	c.stage = stage
	return nil
}
