package http

import (
	"time"

	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemLineRequest describes one order line in a create request.
type ItemLineRequest struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	HasStain    bool      `json:"hasStain"`
	HasDamage   bool      `json:"hasDamage"`
	Notes       string    `json:"notes"`
	TrackPieces bool      `json:"trackPieces"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID      uuid.UUID         `json:"customerId"`
	Number          string            `json:"number"`
	ServiceCategory string            `json:"serviceCategory"`
	QuickDrop       bool              `json:"quickDrop"`
	Items           []ItemLineRequest `json:"items"`
}

// CreateOrderResponse returns the id assigned to the new order.
type CreateOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

// TransitionRequest is the body of POST /api/v1/orders/{orderId}/transition.
type TransitionRequest struct {
	ToStatus string `json:"toStatus"`
	Notes    string `json:"notes"`
}

// BulkTransitionRequest is the body of POST /api/v1/orders/transitions.
type BulkTransitionRequest struct {
	OrderIDs []uuid.UUID `json:"orderIds"`
	ToStatus string      `json:"toStatus"`
	Notes    string      `json:"notes"`
}

// BulkOutcomeResponse reports one order's result within a batch.
type BulkOutcomeResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// BulkResultResponse wraps the ordered per-order outcomes with their tallies.
type BulkResultResponse struct {
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Outcomes  []BulkOutcomeResponse `json:"outcomes"`
}

// SplitRequest is the body of POST /api/v1/orders/{orderId}/split.
type SplitRequest struct {
	ItemIDs  []uuid.UUID `json:"itemIds"`
	PieceIDs []uuid.UUID `json:"pieceIds"`
	Reason   string      `json:"reason"`
}

// SplitResponse returns both sides of a completed split.
type SplitResponse struct {
	Parent OrderResponse `json:"parent"`
	Child  OrderResponse `json:"child"`
}

// GeneratePiecesRequest is the body of POST .../items/{itemId}/pieces.
type GeneratePiecesRequest struct {
	Count int `json:"count"`
}

// RecordScanRequest is the body of POST /api/v1/scans.
type RecordScanRequest struct {
	PieceCode string `json:"pieceCode"`
	ScanState string `json:"scanState"`
	Stage     string `json:"stage"`
}

// RejectPieceRequest is the body of POST .../pieces/{pieceId}/reject.
type RejectPieceRequest struct {
	IssueID uuid.UUID `json:"issueId"`
}

// PieceResponse describes one tracked piece.
type PieceResponse struct {
	ID         uuid.UUID  `json:"id"`
	ItemID     uuid.UUID  `json:"itemId"`
	Sequence   int        `json:"sequence"`
	Code       string     `json:"code"`
	ScanState  string     `json:"scanState"`
	Status     string     `json:"status"`
	Rejected   bool       `json:"rejected"`
	IssueID    *uuid.UUID `json:"issueId,omitempty"`
	LastStep   string     `json:"lastStep,omitempty"`
	LastStepAt *time.Time `json:"lastStepAt,omitempty"`
	LastActor  string     `json:"lastActor,omitempty"`
}

// ItemResponse describes one order line.
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	QuantityReady int             `json:"quantityReady"`
	UnitPrice     int64           `json:"unitPrice"`
	LineTotal     int64           `json:"lineTotal"`
	HasStain      bool            `json:"hasStain"`
	HasDamage     bool            `json:"hasDamage"`
	Notes         string          `json:"notes,omitempty"`
	Pieces        []PieceResponse `json:"pieces,omitempty"`
}

// OrderResponse describes one order aggregate.
type OrderResponse struct {
	ID              uuid.UUID      `json:"id"`
	CustomerID      uuid.UUID      `json:"customerId"`
	Number          string         `json:"number"`
	Status          string         `json:"status"`
	ServiceCategory string         `json:"serviceCategory"`
	HasSplit        bool           `json:"hasSplit"`
	HasIssue        bool           `json:"hasIssue"`
	Rejected        bool           `json:"rejected"`
	QuickDrop       bool           `json:"quickDrop"`
	RackLocation    *string        `json:"rackLocation,omitempty"`
	ReadyBy         *time.Time     `json:"readyBy,omitempty"`
	TotalAmount     int64          `json:"totalAmount"`
	ParentOrderID   *uuid.UUID     `json:"parentOrderId,omitempty"`
	Items           []ItemResponse `json:"items"`
}

// TransitionResponse returns the order after a transition and the audit row
// it produced.
type TransitionResponse struct {
	Order   OrderResponse   `json:"order"`
	History HistoryResponse `json:"history"`
}

// HistoryResponse describes one status-history row.
type HistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Notes     string    `json:"notes,omitempty"`
}

// AllowedTransitionsResponse lists where an order may go next.
type AllowedTransitionsResponse struct {
	Current      string              `json:"current"`
	PolicySource string              `json:"policySource"`
	Allowed      []string            `json:"allowed"`
	Gated        map[string][]string `json:"gated,omitempty"`
}

// GateCheckResponse reports a dry-run gate evaluation.
type GateCheckResponse struct {
	Target   string   `json:"target"`
	Allowed  bool     `json:"allowed"`
	Blockers []string `json:"blockers,omitempty"`
}

func orderToResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = itemToResponse(item)
	}

	resp := OrderResponse{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		Number:          o.Number(),
		Status:          string(o.Status()),
		ServiceCategory: o.ServiceCategory(),
		HasSplit:        o.HasSplit(),
		HasIssue:        o.HasIssue(),
		Rejected:        o.IsRejected(),
		QuickDrop:       o.IsQuickDrop(),
		RackLocation:    o.RackLocation(),
		ReadyBy:         o.ReadyBy(),
		TotalAmount:     o.TotalAmount(),
		Items:           items,
	}
	if parentID := o.ParentOrderID(); parentID != nil {
		id := parentID.Bytes()
		resp.ParentOrderID = &id
	}
	return resp
}

func itemToResponse(item *order.Item) ItemResponse {
	pieces := make([]PieceResponse, len(item.Pieces()))
	for i, piece := range item.Pieces() {
		pieces[i] = pieceToResponse(piece)
	}

	return ItemResponse{
		ID:            item.ID().Bytes(),
		ProductID:     item.ProductID().Bytes(),
		ProductName:   item.ProductName(),
		Quantity:      item.Quantity(),
		QuantityReady: item.QuantityReady(),
		UnitPrice:     item.UnitPrice(),
		LineTotal:     item.LineTotal(),
		HasStain:      item.HasStain(),
		HasDamage:     item.HasDamage(),
		Notes:         item.Notes(),
		Pieces:        pieces,
	}
}

func pieceToResponse(piece *order.Piece) PieceResponse {
	resp := PieceResponse{
		ID:         piece.ID().Bytes(),
		ItemID:     piece.ItemID().Bytes(),
		Sequence:   piece.Sequence(),
		Code:       piece.Code(),
		ScanState:  string(piece.ScanState()),
		Status:     string(piece.Status()),
		Rejected:   piece.IsRejected(),
		LastStep:   piece.LastStep(),
		LastStepAt: piece.LastStepAt(),
		LastActor:  piece.LastActor(),
	}
	if issueID := piece.IssueID(); issueID != nil {
		id := issueID.Bytes()
		resp.IssueID = &id
	}
	return resp
}

func historyToResponse(entry order.HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:        entry.ID().Bytes(),
		From:      string(entry.From()),
		To:        string(entry.To()),
		ChangedBy: entry.ChangedBy(),
		ChangedAt: entry.ChangedAt(),
		Notes:     entry.Notes(),
	}
}
