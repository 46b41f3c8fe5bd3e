package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// ScanState records whether a physical piece has been located and verified.
// It is distinct from PieceStatus: a piece can be deep in processing while its
// last physical verification is still pending.
type ScanState string

const (
	// ScanStateExpected means the piece exists on paper but has not been scanned yet.
	ScanStateExpected ScanState = "expected"
	// ScanStateScanned means the piece's barcode was verified.
	ScanStateScanned ScanState = "scanned"
	// ScanStateMissing means the piece could not be located at a step.
	ScanStateMissing ScanState = "missing"
	// ScanStateWrong means a scan matched a barcode that does not belong here.
	ScanStateWrong ScanState = "wrong"
)

// Validate checks the scan state against the known set.
func (s ScanState) Validate() error {
	switch s {
	case ScanStateExpected, ScanStateScanned, ScanStateMissing, ScanStateWrong:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("scanState", fmt.Errorf("%q is not a valid scan state", string(s)))
}

// PieceStatus is the processing stage of an individual piece. Unlike order
// Status the piece stage set is fixed: pieces only ever move through intake,
// processing, qa, and ready.
type PieceStatus string

const (
	PieceStatusIntake     PieceStatus = "intake"
	PieceStatusProcessing PieceStatus = "processing"
	PieceStatusQA         PieceStatus = "qa"
	PieceStatusReady      PieceStatus = "ready"
)

// Validate checks the piece status against the known set.
func (s PieceStatus) Validate() error {
	switch s {
	case PieceStatusIntake, PieceStatusProcessing, PieceStatusQA, PieceStatusReady:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("pieceStatus", fmt.Errorf("%q is not a valid piece status", string(s)))
}

// Piece is one physical unit (e.g. one shirt) tracked inside an order item.
// A piece belongs to exactly one item, and transitively to exactly one order,
// at any instant. Splits reassign pieces; they never duplicate them.
//
// Pieces are created through the owning Item and mutated only through the
// Order aggregate, which keeps sequence density and the item's ready counter
// in sync.
type Piece struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	orderID      kernel.UUID
	itemID       kernel.UUID
	sequence     int
	code         string
	scanState    ScanState
	status       PieceStatus
	isRejected   bool
	issueID      *kernel.UUID
	rackLocation *string
	lastStep     string
	lastStepAt   *time.Time
	lastActor    string
}

func newPiece(tenantID, orderID, itemID kernel.UUID, sequence int, code string) *Piece {
	return &Piece{
		id:        kernel.NewUUID(),
		tenantID:  tenantID,
		orderID:   orderID,
		itemID:    itemID,
		sequence:  sequence,
		code:      code,
		scanState: ScanStateExpected,
		status:    PieceStatusIntake,
	}
}

// RestorePiece reconstructs a Piece from persistent storage.
func RestorePiece(
	id, tenantID, orderID, itemID kernel.UUID,
	sequence int,
	code string,
	scanState ScanState,
	status PieceStatus,
	isRejected bool,
	issueID *kernel.UUID,
	rackLocation *string,
	lastStep string,
	lastStepAt *time.Time,
	lastActor string,
) (*Piece, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		scanState.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if sequence < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}

	return &Piece{
		id:           id,
		tenantID:     tenantID,
		orderID:      orderID,
		itemID:       itemID,
		sequence:     sequence,
		code:         code,
		scanState:    scanState,
		status:       status,
		isRejected:   isRejected,
		issueID:      issueID,
		rackLocation: rackLocation,
		lastStep:     lastStep,
		lastStepAt:   lastStepAt,
		lastActor:    lastActor,
	}, nil
}

// ID returns the piece identifier.
func (p *Piece) ID() kernel.UUID {
	return p.id
}

// TenantID returns the owning tenant.
func (p *Piece) TenantID() kernel.UUID {
	return p.tenantID
}

// OrderID returns the order the piece currently belongs to.
func (p *Piece) OrderID() kernel.UUID {
	return p.orderID
}

// ItemID returns the item the piece currently belongs to.
func (p *Piece) ItemID() kernel.UUID {
	return p.itemID
}

// Sequence returns the piece's position within its item. Sequences are dense
// and contiguous (1..n) within an item.
func (p *Piece) Sequence() int {
	return p.sequence
}

// Code returns the piece's barcode.
func (p *Piece) Code() string {
	return p.code
}

// ScanState returns the piece's physical verification state.
func (p *Piece) ScanState() ScanState {
	return p.scanState
}

// Status returns the piece's processing stage.
func (p *Piece) Status() PieceStatus {
	return p.status
}

// IsRejected reports whether the piece was rejected during quality control.
func (p *Piece) IsRejected() bool {
	return p.isRejected
}

// IssueID returns the linked issue, or nil when none was recorded.
func (p *Piece) IssueID() *kernel.UUID {
	return p.issueID
}

// RackLocation returns the piece's storage rack, or nil when unracked.
func (p *Piece) RackLocation() *string {
	return p.rackLocation
}

// LastStep returns the name of the last processing step applied to the piece.
func (p *Piece) LastStep() string {
	return p.lastStep
}

// LastStepAt returns when the last processing step happened.
func (p *Piece) LastStepAt() *time.Time {
	return p.lastStepAt
}

// LastActor returns who performed the last processing step.
func (p *Piece) LastActor() string {
	return p.lastActor
}

// IsReady reports whether the piece counts toward the item's ready aggregate.
// Rejected pieces never count, whatever their stage.
func (p *Piece) IsReady() bool {
	return p.status == PieceStatusReady && !p.isRejected
}

// recordScan applies a scan to the piece. Re-scanning with the same state is
// a no-op beyond refreshing the step metadata. An empty stage leaves the
// piece's processing stage unchanged.
func (p *Piece) recordScan(state ScanState, stage PieceStatus, actorName string, at time.Time) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if stage != "" {
		if err := stage.Validate(); err != nil {
			return err
		}
		p.status = stage
	}

	p.scanState = state
	p.lastStep = fmt.Sprintf("scan:%s", state)
	p.lastStepAt = &at
	p.lastActor = actorName
	return nil
}

// markRejected flags the piece as rejected and links the triggering issue.
// The piece stays attached to its item: rejection and splitting are
// independent operations.
func (p *Piece) markRejected(issueID kernel.UUID, actorName string, at time.Time) error {
	if err := issueID.Validate(); err != nil {
		return err
	}

	p.isRejected = true
	p.issueID = &issueID
	p.lastStep = "rejected"
	p.lastStepAt = &at
	p.lastActor = actorName
	return nil
}

// reassign moves the piece under a different order/item, keeping its identity.
func (p *Piece) reassign(orderID, itemID kernel.UUID, sequence int) {
	p.orderID = orderID
	p.itemID = itemID
	p.sequence = sequence
}
