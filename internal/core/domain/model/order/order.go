package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrNumberIsRequired is returned when an order has no human-readable number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
	// ErrItemsLocked is returned when items are added or removed after the
	// preparation phase; once processing has started the line set is frozen
	// and may only change through a split.
	ErrItemsLocked = errors.New("items can only change before processing starts")
	// ErrAmbiguousSelection is returned when a split names both items and pieces.
	ErrAmbiguousSelection = errs.NewValueIsInvalidError("split selection must name items or pieces, not both")
)

// Order is the aggregate root for one laundry job of one customer within one
// tenant. It owns the line items and every piece beneath them, and is the only
// path through which any of them change.
//
// Invariants:
//   - exactly one current status at any time; mutation happens only through
//     EnterStatus after the caller validated the transition against policy
//   - the tenant never changes after creation
//   - every item and piece below the order carries the order's tenant
//   - piece sequences stay dense within each item across scans and splits
type Order struct {
	id              kernel.UUID
	tenantID        kernel.UUID
	customerID      kernel.UUID
	number          string
	status          Status
	serviceCategory string
	hasSplit        bool
	hasIssue        bool
	isRejected      bool
	isQuickDrop     bool
	rackLocation    *string
	readyBy         *time.Time
	totalAmount     int64
	parentOrderID   *kernel.UUID
	items           []*Item

	guard guard.ConstructorGuard
}

// NewOrder creates an order at the start of its lifecycle. Quick-drop orders
// begin in draft (contents not itemized yet); everything else begins in
// intake. The order number is the human-readable, tenant+day unique handle
// assigned by the caller.
func NewOrder(
	id, tenantID, customerID kernel.UUID,
	number, serviceCategory string,
	quickDrop bool,
) (*Order, error) {
	status := StatusIntake
	if quickDrop {
		status = StatusDraft
	}

	o := &Order{
		status:      status,
		isQuickDrop: quickDrop,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerID(customerID),
		o.setNumber(number),
	); err != nil {
		return nil, err
	}

	o.serviceCategory = serviceCategory
	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// including its items and their pieces.
func RestoreOrder(
	id, tenantID, customerID kernel.UUID,
	number string,
	status Status,
	serviceCategory string,
	hasSplit, hasIssue, isRejected, isQuickDrop bool,
	rackLocation *string,
	readyBy *time.Time,
	totalAmount int64,
	parentOrderID *kernel.UUID,
	items []*Item,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerID(customerID),
		o.setNumber(number),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.serviceCategory = serviceCategory
	o.hasSplit = hasSplit
	o.hasIssue = hasIssue
	o.isRejected = isRejected
	o.isQuickDrop = isQuickDrop
	o.rackLocation = rackLocation
	o.readyBy = readyBy
	o.totalAmount = totalAmount
	o.parentOrderID = parentOrderID
	o.items = items
	return o, nil
}

// Validate ensures the order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant. It never changes after creation.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// CustomerID returns the customer the order belongs to.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// Status returns the order's single current status.
func (o *Order) Status() Status {
	return o.status
}

// ServiceCategory returns the workflow category (e.g. dry-clean, wash-fold)
// used to resolve tenant transition settings.
func (o *Order) ServiceCategory() string {
	return o.serviceCategory
}

// HasSplit reports whether a sub-order was ever split off this order.
func (o *Order) HasSplit() bool {
	return o.hasSplit
}

// HasIssue reports whether any open issue is attached to the order.
func (o *Order) HasIssue() bool {
	return o.hasIssue
}

// IsRejected reports whether the order as a whole was rejected.
func (o *Order) IsRejected() bool {
	return o.isRejected
}

// IsQuickDrop reports whether the order entered as an unitemized quick drop.
func (o *Order) IsQuickDrop() bool {
	return o.isQuickDrop
}

// RackLocation returns the storage rack, or nil when unracked.
func (o *Order) RackLocation() *string {
	return o.rackLocation
}

// ReadyBy returns the promised/actual ready timestamp, or nil.
func (o *Order) ReadyBy() *time.Time {
	return o.readyBy
}

// TotalAmount returns the order total in cents.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// ParentOrderID returns the order this one was split off, or nil.
func (o *Order) ParentOrderID() *kernel.UUID {
	return o.parentOrderID
}

// Items returns the order's line items.
func (o *Order) Items() []*Item {
	return o.items
}

// FindItem returns the item with the given id, or nil.
func (o *Order) FindItem(itemID kernel.UUID) *Item {
	for _, it := range o.items {
		if it.ID().IsEqual(itemID) {
			return it
		}
	}
	return nil
}

// InPreparation reports whether the order is still in a phase where its line
// set may change directly (before processing starts).
func (o *Order) InPreparation() bool {
	return o.status == StatusDraft || o.status == StatusIntake || o.status == StatusPreparing
}

// AddItem appends a line item. Only allowed while the order is in
// preparation; later the line set changes only through Split.
func (o *Order) AddItem(item *Item) error {
	if !o.InPreparation() {
		return ErrItemsLocked
	}

	item.attach(o.id)
	o.items = append(o.items, item)
	o.recalculateTotal()
	return nil
}

// RemoveItem deletes a line item and its pieces. Only allowed while the order
// is in preparation.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if !o.InPreparation() {
		return ErrItemsLocked
	}

	for idx, it := range o.items {
		if it.ID().IsEqual(itemID) {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.recalculateTotal()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("itemId", itemID.String())
}

// SetRackLocation records where the order is stored.
func (o *Order) SetRackLocation(location string) {
	o.rackLocation = &location
}

// SetReadyBy records the promised ready timestamp.
func (o *Order) SetReadyBy(at time.Time) {
	o.readyBy = &at
}

// EnterStatus applies a status change that the caller already validated
// against the transition policy and quality gate, and runs the status-entry
// side effects. Returns the status the order left so the caller can append
// the matching history entry.
//
// Side effects on entry:
//   - ready: stamps readyBy when not already set
//   - cancelled on a quick drop: marks the order rejected for reporting
func (o *Order) EnterStatus(to Status, at time.Time) (Status, error) {
	if err := to.Validate(); err != nil {
		return "", err
	}

	from := o.status
	o.status = to

	switch to {
	case StatusReady:
		if o.readyBy == nil {
			o.readyBy = &at
		}
	case StatusCancelled:
		if o.isQuickDrop {
			o.isRejected = true
		}
	}

	return from, nil
}

// GeneratePieces brings the given item's tracked piece set to exactly n
// pieces with dense sequences 1..n. Idempotent against double invocation.
func (o *Order) GeneratePieces(itemID kernel.UUID, n int) error {
	item := o.FindItem(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("itemId", itemID.String())
	}

	if err := item.generatePieces(o.tenantID, n); err != nil {
		return err
	}
	o.recalculateTotal()
	return nil
}

// RecordScan finds the piece carrying the given barcode anywhere under the
// order and applies the scan. An empty stage leaves the piece's processing
// stage unchanged. Fails with ObjectNotFound when no piece matches, so a scan
// of a foreign barcode is indistinguishable from a missing one.
func (o *Order) RecordScan(code string, state ScanState, stage PieceStatus, actorName string, at time.Time) (*Piece, error) {
	for _, item := range o.items {
		piece, err := item.recordScanByCode(code, state, stage, actorName, at)
		if err != nil {
			return nil, err
		}
		if piece != nil {
			return piece, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("pieceCode", code)
}

// MarkPieceRejected flags a piece as rejected, links the tracker issue, and
// resyncs the owning item's ready counter. The piece stays attached to its
// item; splitting it out is a separate decision.
func (o *Order) MarkPieceRejected(pieceID, issueID kernel.UUID, actorName string, at time.Time) error {
	for _, item := range o.items {
		piece := item.FindPiece(pieceID)
		if piece == nil {
			continue
		}

		if err := piece.markRejected(issueID, actorName, at); err != nil {
			return err
		}
		item.syncQuantityReady()
		o.hasIssue = true
		return nil
	}
	return errs.NewObjectNotFoundError("pieceId", pieceID.String())
}

// SyncQuantityReady recomputes one item's ready counter from its full current
// piece set. Every piece-mutating path calls this rather than incrementing,
// so drift cannot accumulate.
func (o *Order) SyncQuantityReady(itemID kernel.UUID) error {
	item := o.FindItem(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("itemId", itemID.String())
	}

	item.syncQuantityReady()
	return nil
}

// SyncAllQuantityReady recomputes the ready counter of every item.
func (o *Order) SyncAllQuantityReady() {
	for _, item := range o.items {
		item.syncQuantityReady()
	}
}

// recalculateTotal re-derives the order total from line totals.
func (o *Order) recalculateTotal() {
	var total int64
	for _, item := range o.items {
		total += item.LineTotal()
	}
	o.totalAmount = total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

// SplitSelection names what moves to the sub-order: whole items or individual
// pieces, never both in one call.
type SplitSelection struct {
	ItemIDs  []kernel.UUID
	PieceIDs []kernel.UUID
}

// Split moves the selected items or pieces into a newly created sub-order and
// returns it. Pieces keep their identity across the move; they are reassigned,
// never duplicated, so each piece still belongs to exactly one order.
//
// The whole selection is validated before anything mutates: one foreign id
// fails the split with ObjectNotFound and no partial move, and a selection
// that would leave either side empty fails with EmptySplit.
func (o *Order) Split(childID kernel.UUID, childNumber string, sel SplitSelection) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	hasItems := len(sel.ItemIDs) > 0
	hasPieces := len(sel.PieceIDs) > 0
	switch {
	case hasItems && hasPieces:
		return nil, ErrAmbiguousSelection
	case !hasItems && !hasPieces:
		return nil, errs.NewEmptySplitError("no items or pieces selected")
	}

	child, err := NewOrder(childID, o.tenantID, o.customerID, childNumber, o.serviceCategory, false)
	if err != nil {
		return nil, err
	}
	child.parentOrderID = &o.id

	if hasItems {
		err = o.splitItems(child, sel.ItemIDs)
	} else {
		err = o.splitPieces(child, sel.PieceIDs)
	}
	if err != nil {
		return nil, err
	}

	o.hasSplit = true
	o.recalculateTotal()
	child.recalculateTotal()
	return child, nil
}

// splitItems moves whole items (and all their pieces) to the child order.
func (o *Order) splitItems(child *Order, itemIDs []kernel.UUID) error {
	selected := make(map[kernel.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		if o.FindItem(id) == nil {
			return errs.NewObjectNotFoundError("itemId", id.String())
		}
		selected[id] = true
	}
	if len(selected) == len(o.items) {
		return errs.NewEmptySplitError("split would leave the order without items")
	}

	kept := make([]*Item, 0, len(o.items)-len(selected))
	for _, item := range o.items {
		if selected[item.ID()] {
			item.attach(child.id)
			child.items = append(child.items, item)
		} else {
			kept = append(kept, item)
		}
	}
	o.items = kept
	return nil
}

// splitPieces moves individual pieces. An item whose pieces all move is
// reassigned wholesale; otherwise the item is cloned into the child with only
// the moved pieces attached, and the original keeps the remainder with a
// reduced quantity. Both sides are resequenced and resynced.
func (o *Order) splitPieces(child *Order, pieceIDs []kernel.UUID) error {
	selected := make(map[kernel.UUID]bool, len(pieceIDs))
	byItem := make(map[kernel.UUID][]kernel.UUID)
	for _, id := range pieceIDs {
		if selected[id] {
			continue
		}
		found := false
		for _, item := range o.items {
			if item.FindPiece(id) != nil {
				byItem[item.ID()] = append(byItem[item.ID()], id)
				found = true
				break
			}
		}
		if !found {
			return errs.NewObjectNotFoundError("pieceId", id.String())
		}
		selected[id] = true
	}

	// Reject a move that would empty the parent before touching anything.
	remaining := 0
	for _, item := range o.items {
		remaining += len(item.Pieces()) - len(byItem[item.ID()])
	}
	if remaining == 0 {
		return errs.NewEmptySplitError("split would leave the order without pieces")
	}

	kept := make([]*Item, 0, len(o.items))
	for _, item := range o.items {
		moved := byItem[item.ID()]
		switch {
		case len(moved) == 0:
			kept = append(kept, item)
		case len(moved) == len(item.Pieces()):
			item.attach(child.id)
			child.items = append(child.items, item)
		default:
			clone := item.cloneForSplit(child.id)
			clone.adoptPieces(item.takePieces(selected))
			child.items = append(child.items, clone)
			kept = append(kept, item)
		}
	}
	o.items = kept
	return nil
}

// SplitAuditNote renders the audit note recorded on both sides of a split.
func SplitAuditNote(reason string, counterpart *Order) string {
	return fmt.Sprintf("split: %s (related order %s)", reason, counterpart.Number())
}
