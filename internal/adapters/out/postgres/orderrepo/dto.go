// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Every table in the aggregate carries tenant_id so reads can be scoped in a
// single predicate. The (tenant_id, number) pair is unique: the number is the
// human-readable handle printed on tickets.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_number;index"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Number          string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_tenant_number"`
	Status          string     `gorm:"type:varchar(64);not null;index"`
	ServiceCategory string     `gorm:"type:varchar(64)"`
	HasSplit        bool       `gorm:"not null"`
	HasIssue        bool       `gorm:"not null"`
	IsRejected      bool       `gorm:"not null"`
	IsQuickDrop     bool       `gorm:"not null"`
	RackLocation    *string    `gorm:"type:varchar(64)"`
	ReadyBy         *time.Time
	TotalAmount     int64      `gorm:"not null"`
	ParentOrderID   *uuid.UUID `gorm:"type:uuid;index"`
	Items           []ItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the database.
type ItemDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null"`
	ProductName   string     `gorm:"type:varchar(255);not null"`
	Quantity      int        `gorm:"type:int;not null"`
	QuantityReady int        `gorm:"type:int;not null"`
	UnitPrice     int64      `gorm:"not null"`
	LineTotal     int64      `gorm:"not null"`
	HasStain      bool       `gorm:"not null"`
	HasDamage     bool       `gorm:"not null"`
	Notes         string     `gorm:"type:text"`
	Pieces        []PieceDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PieceDTO represents one tagged physical piece in the database. The piece
// code is unique per tenant so a scan resolves without an order id.
type PieceDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_pieces_tenant_code"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Sequence     int        `gorm:"type:int;not null"`
	Code         string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_pieces_tenant_code"`
	ScanState    string     `gorm:"type:varchar(32);not null"`
	Status       string     `gorm:"type:varchar(32);not null"`
	IsRejected   bool       `gorm:"not null"`
	IssueID      *uuid.UUID `gorm:"type:uuid"`
	RackLocation *string    `gorm:"type:varchar(64)"`
	LastStep     string     `gorm:"type:varchar(64)"`
	LastStepAt   *time.Time
	LastActor    string     `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for piece entities.
func (PieceDTO) TableName() string {
	return "order_pieces"
}

// HistoryDTO represents one immutable status-history row. Rows are only ever
// inserted; corrections happen through new transitions, never edits.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index:idx_history_tenant_order"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index:idx_history_tenant_order"`
	FromStatus string    `gorm:"type:varchar(64);not null"`
	ToStatus   string    `gorm:"type:varchar(64);not null"`
	ChangedBy  string    `gorm:"type:varchar(255);not null"`
	ChangedAt  time.Time `gorm:"not null"`
	Notes      string    `gorm:"type:text"`
}

// TableName specifies the database table name for history entities.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	tenantID := aggregate.TenantID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(tenantID, orderID, item))
	}

	var parentOrderID *uuid.UUID
	if id := aggregate.ParentOrderID(); id != nil {
		raw := id.Bytes()
		parentOrderID = &raw
	}

	return OrderDTO{
		ID:              orderID,
		TenantID:        tenantID,
		CustomerID:      aggregate.CustomerID().Bytes(),
		Number:          aggregate.Number(),
		Status:          string(aggregate.Status()),
		ServiceCategory: aggregate.ServiceCategory(),
		HasSplit:        aggregate.HasSplit(),
		HasIssue:        aggregate.HasIssue(),
		IsRejected:      aggregate.IsRejected(),
		IsQuickDrop:     aggregate.IsQuickDrop(),
		RackLocation:    aggregate.RackLocation(),
		ReadyBy:         aggregate.ReadyBy(),
		TotalAmount:     aggregate.TotalAmount(),
		ParentOrderID:   parentOrderID,
		Items:           items,
	}
}

func itemFromDomain(tenantID, orderID uuid.UUID, item *order.Item) ItemDTO {
	itemID := item.ID().Bytes()

	pieces := make([]PieceDTO, 0, len(item.Pieces()))
	for _, piece := range item.Pieces() {
		pieces = append(pieces, pieceFromDomain(tenantID, orderID, itemID, piece))
	}

	return ItemDTO{
		ID:            itemID,
		OrderID:       orderID,
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

func pieceFromDomain(tenantID, orderID, itemID uuid.UUID, piece *order.Piece) PieceDTO {
	var issueID *uuid.UUID
	if id := piece.IssueID(); id != nil {
		raw := id.Bytes()
		issueID = &raw
	}

	return PieceDTO{
		ID:           piece.ID().Bytes(),
		TenantID:     tenantID,
		OrderID:      orderID,
		ItemID:       itemID,
		Sequence:     piece.Sequence(),
		Code:         piece.Code(),
		ScanState:    string(piece.ScanState()),
		Status:       string(piece.Status()),
		IsRejected:   piece.IsRejected(),
		IssueID:      issueID,
		RackLocation: piece.RackLocation(),
		LastStep:     piece.LastStep(),
		LastStepAt:   piece.LastStepAt(),
		LastActor:    piece.LastActor(),
	}
}

func historyFromDomain(entry order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:         entry.ID().Bytes(),
		TenantID:   entry.TenantID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: string(entry.From()),
		ToStatus:   string(entry.To()),
		ChangedBy:  entry.ChangedBy(),
		ChangedAt:  entry.ChangedAt(),
		Notes:      entry.Notes(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items and pieces using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var parentOrderID *kernel.UUID
	if dto.ParentOrderID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentOrderID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentOrderID = &pID
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, tenantID, customerID,
		dto.Number,
		order.Status(dto.Status),
		dto.ServiceCategory,
		dto.HasSplit, dto.HasIssue, dto.IsRejected, dto.IsQuickDrop,
		dto.RackLocation,
		dto.ReadyBy,
		dto.TotalAmount,
		parentOrderID,
		items,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	pieces := make([]*order.Piece, 0, len(dto.Pieces))
	for _, pieceDTO := range dto.Pieces {
		piece, pieceErr := pieceToDomain(pieceDTO)
		if pieceErr != nil {
			return nil, pieceErr
		}
		pieces = append(pieces, piece)
	}

	return order.RestoreItem(
		id, orderID, productID,
		dto.ProductName,
		dto.Quantity, dto.QuantityReady,
		dto.UnitPrice, dto.LineTotal,
		dto.HasStain, dto.HasDamage,
		dto.Notes,
		pieces,
	)
}

func pieceToDomain(dto PieceDTO) (*order.Piece, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	var issueID *kernel.UUID
	if dto.IssueID != nil {
		iID, issueErr := kernel.UUIDFromBytes((*dto.IssueID)[:])
		if issueErr != nil {
			return nil, issueErr
		}
		issueID = &iID
	}

	return order.RestorePiece(
		id, tenantID, orderID, itemID,
		dto.Sequence,
		dto.Code,
		order.ScanState(dto.ScanState),
		order.PieceStatus(dto.Status),
		dto.IsRejected,
		issueID,
		dto.RackLocation,
		dto.LastStep,
		dto.LastStepAt,
		dto.LastActor,
	)
}
