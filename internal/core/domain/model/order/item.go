package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// Domain errors for item operations.
var (
	// ErrQuantityIsInvalid is returned when an item quantity is not positive.
	ErrQuantityIsInvalid = errs.NewValueIsInvalidError("quantity must be greater than 0")
	// ErrProductNameIsRequired is returned when an item has no product name.
	ErrProductNameIsRequired = errs.NewValueIsRequiredError("productName")
)

// Item is one service line under an order: a product, a quantity, and the
// pieces tracked beneath it when per-piece tracking is enabled.
//
// Invariants:
//   - quantityReady never exceeds quantity
//   - with piece tracking on, quantityReady always equals the count of ready,
//     non-rejected pieces (kept true by syncQuantityReady, which recomputes
//     rather than increments)
//   - piece sequences stay dense (1..n) across any removal or split
type Item struct {
	id            kernel.UUID
	orderID       kernel.UUID
	productID     kernel.UUID
	productName   string
	quantity      int
	quantityReady int
	unitPrice     int64
	lineTotal     int64
	hasStain      bool
	hasDamage     bool
	notes         string
	pieces        []*Piece
}

// NewItem creates a line item for the given product. Prices are in cents;
// the line total is derived from unit price and quantity.
func NewItem(productID kernel.UUID, productName string, quantity int, unitPrice int64) (*Item, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if productName == "" {
		return nil, ErrProductNameIsRequired
	}
	if quantity <= 0 {
		return nil, ErrQuantityIsInvalid
	}

	return &Item{
		id:          kernel.NewUUID(),
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		lineTotal:   unitPrice * int64(quantity),
	}, nil
}

// RestoreItem reconstructs an Item from persistent storage, including its pieces.
func RestoreItem(
	id, orderID, productID kernel.UUID,
	productName string,
	quantity, quantityReady int,
	unitPrice, lineTotal int64,
	hasStain, hasDamage bool,
	notes string,
	pieces []*Piece,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		productID.Validate(),
	); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrQuantityIsInvalid
	}
	if quantityReady < 0 || quantityReady > quantity {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantityReady",
			fmt.Errorf("%d is outside [0, %d]", quantityReady, quantity))
	}

	return &Item{
		id:            id,
		orderID:       orderID,
		productID:     productID,
		productName:   productName,
		quantity:      quantity,
		quantityReady: quantityReady,
		unitPrice:     unitPrice,
		lineTotal:     lineTotal,
		hasStain:      hasStain,
		hasDamage:     hasDamage,
		notes:         notes,
		pieces:        pieces,
	}, nil
}

// ID returns the item identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the order this item belongs to.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// ProductID returns the product this line refers to.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the display name captured at intake.
func (i *Item) ProductName() string {
	return i.productName
}

// Quantity returns the number of physical units on this line.
func (i *Item) Quantity() int {
	return i.quantity
}

// QuantityReady returns the persisted ready counter. With piece tracking
// enabled it equals the count of ready, non-rejected pieces after every sync.
func (i *Item) QuantityReady() int {
	return i.quantityReady
}

// UnitPrice returns the per-unit price in cents.
func (i *Item) UnitPrice() int64 {
	return i.unitPrice
}

// LineTotal returns the line total in cents.
func (i *Item) LineTotal() int64 {
	return i.lineTotal
}

// HasStain reports a stain condition recorded at intake.
func (i *Item) HasStain() bool {
	return i.hasStain
}

// HasDamage reports a damage condition recorded at intake.
func (i *Item) HasDamage() bool {
	return i.hasDamage
}

// Notes returns free-form intake notes.
func (i *Item) Notes() string {
	return i.notes
}

// Pieces returns the tracked pieces in sequence order.
func (i *Item) Pieces() []*Piece {
	return i.pieces
}

// HasPieceTracking reports whether per-piece tracking is enabled for this line.
func (i *Item) HasPieceTracking() bool {
	return len(i.pieces) > 0
}

// SetCondition records stain/damage flags and notes.
func (i *Item) SetCondition(hasStain, hasDamage bool, notes string) {
	i.hasStain = hasStain
	i.hasDamage = hasDamage
	i.notes = notes
}

// FindPiece returns the piece with the given id, or nil.
func (i *Item) FindPiece(pieceID kernel.UUID) *Piece {
	for _, p := range i.pieces {
		if p.ID().IsEqual(pieceID) {
			return p
		}
	}
	return nil
}

// generatePieces brings the tracked piece set to exactly n pieces with dense
// sequences 1..n. Idempotent: re-running with the same n changes nothing,
// a larger n appends only the delta, a smaller n removes the highest
// sequences. The item's quantity and line total follow the new piece count.
func (i *Item) generatePieces(tenantID kernel.UUID, n int) error {
	if n <= 0 {
		return ErrQuantityIsInvalid
	}

	switch {
	case len(i.pieces) > n:
		i.pieces = i.pieces[:n]
	case len(i.pieces) < n:
		for seq := len(i.pieces) + 1; seq <= n; seq++ {
			code := fmt.Sprintf("%.8s-%03d", i.id.String(), seq)
			i.pieces = append(i.pieces, newPiece(tenantID, i.orderID, i.id, seq, code))
		}
	}

	i.resequencePieces()
	i.quantity = n
	i.lineTotal = i.unitPrice * int64(n)
	i.syncQuantityReady()
	return nil
}

// syncQuantityReady recomputes the ready counter from the full current piece
// set. A recomputation always reflects some consistent snapshot, so retried
// or out-of-order piece updates can never double-count. Items without piece
// tracking keep their counter untouched.
func (i *Item) syncQuantityReady() {
	if !i.HasPieceTracking() {
		return
	}

	ready := 0
	for _, p := range i.pieces {
		if p.IsReady() {
			ready++
		}
	}
	i.quantityReady = ready
}

// resequencePieces restores dense sequences 1..n after a removal or split.
func (i *Item) resequencePieces() {
	for idx, p := range i.pieces {
		p.reassign(i.orderID, i.id, idx+1)
	}
}

// takePieces detaches the given pieces from the item, resequences the
// remainder, and shrinks quantity to the remaining piece count. Callers have
// already validated membership.
func (i *Item) takePieces(pieceIDs map[kernel.UUID]bool) []*Piece {
	taken := make([]*Piece, 0, len(pieceIDs))
	kept := make([]*Piece, 0, len(i.pieces))
	for _, p := range i.pieces {
		if pieceIDs[p.ID()] {
			taken = append(taken, p)
		} else {
			kept = append(kept, p)
		}
	}

	i.pieces = kept
	i.resequencePieces()
	i.quantity = len(kept)
	i.lineTotal = i.unitPrice * int64(len(kept))
	i.syncQuantityReady()
	return taken
}

// adoptPieces attaches pieces moved from another item, appending them after
// any existing pieces and resequencing. Quantity follows the new piece count.
func (i *Item) adoptPieces(pieces []*Piece) {
	i.pieces = append(i.pieces, pieces...)
	i.resequencePieces()
	i.quantity = len(i.pieces)
	i.lineTotal = i.unitPrice * int64(len(i.pieces))
	i.syncQuantityReady()
}

// cloneForSplit creates an empty copy of the item under a new order, keeping
// product, pricing, and condition context. Pieces are attached afterwards via
// adoptPieces.
func (i *Item) cloneForSplit(orderID kernel.UUID) *Item {
	return &Item{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		productID:   i.productID,
		productName: i.productName,
		unitPrice:   i.unitPrice,
		hasStain:    i.hasStain,
		hasDamage:   i.hasDamage,
		notes:       i.notes,
	}
}

// attach binds the item (and its pieces) to an order. Used when an item is
// added to an order or moved wholesale during a split.
func (i *Item) attach(orderID kernel.UUID) {
	i.orderID = orderID
	i.resequencePieces()
}

// recordScanByCode finds a piece by barcode and applies the scan. Returns nil
// when no piece under this item carries the code.
func (i *Item) recordScanByCode(code string, state ScanState, stage PieceStatus, actorName string, at time.Time) (*Piece, error) {
	for _, p := range i.pieces {
		if p.Code() == code {
			if err := p.recordScan(state, stage, actorName, at); err != nil {
				return nil, err
			}
			i.syncQuantityReady()
			return p, nil
		}
	}
	return nil, nil
}
