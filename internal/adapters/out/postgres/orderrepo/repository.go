package orderrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

var itemUpsertColumns = []string{
	"order_id", "product_id", "product_name", "quantity", "quantity_ready",
	"unit_price", "line_total", "has_stain", "has_damage", "notes", "updated_at",
}

var pieceUpsertColumns = []string{
	"order_id", "item_id", "sequence", "scan_state", "status", "is_rejected",
	"issue_id", "rack_location", "last_step", "last_step_at", "last_actor", "updated_at",
}

// Add saves a new order to the database.
// Item and piece rows are upserted rather than inserted: a split child
// arrives with piece rows that already exist under the parent, and the
// upsert moves them over instead of colliding on the primary key.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.saveChildren(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database, including item and piece
// churn. Rows that left the aggregate (removed items, pieces reassigned to a
// split child) are pruned; rows reassigned INTO this order are claimed by
// the upsert.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select(
			"customer_id", "number", "status", "service_category",
			"has_split", "has_issue", "is_rejected", "is_quick_drop",
			"rack_location", "ready_by", "total_amount", "parent_order_id",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
	}

	if err := r.saveChildren(ctx, dto); err != nil {
		return err
	}
	if err := r.pruneOrphans(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatusGuarded persists a status change with a conditional write.
// The row must still carry the status the caller read; otherwise a
// concurrent transition won and nothing is written. Status side effects
// (ready-by stamp, rejection on cancel) ride along in the same statement.
func (r *GormOrderRepository) UpdateStatusGuarded(
	ctx context.Context, aggregate *order.Order, expectedFrom order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ? AND status = ?",
			aggregate.ID().Bytes(), aggregate.TenantID().Bytes(), string(expectedFrom)).
		Updates(map[string]any{
			"status":      string(aggregate.Status()),
			"ready_by":    aggregate.ReadyBy(),
			"is_rejected": aggregate.IsRejected(),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ? AND tenant_id = ?", aggregate.ID().Bytes(), aggregate.TenantID().Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("orderID", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order aggregate by tenant and id, with items and pieces
// in stable order.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at, order_items.id")
		}).
		Preload("Items.Pieces", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_pieces.sequence")
		}).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPieceCode retrieves the order owning the piece with the given barcode
// within the tenant.
func (r *GormOrderRepository) GetByPieceCode(
	ctx context.Context, tenantID kernel.UUID, code string,
) (*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var piece PieceDTO
	err := r.db.WithContext(ctx).
		First(&piece, "tenant_id = ? AND code = ?", tenantID.Bytes(), code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pieceCode", code)
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(piece.OrderID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, tenantID, orderID)
}

// AppendHistory appends one immutable status-history row.
func (r *GormOrderRepository) AppendHistory(ctx context.Context, entry order.HistoryEntry) error {
	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Delete removes an order with its items, pieces, and history. Used only as
// the compensating rollback for a misbegotten creation.
func (r *GormOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&PieceDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Delete(&HistoryDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderID", id.String())
	}

	return nil
}

// saveChildren upserts the aggregate's item and piece rows. Pieces are saved
// separately from their items so reassignments update item_id instead of
// hitting the association insert's do-nothing conflict behavior.
func (r *GormOrderRepository) saveChildren(ctx context.Context, dto OrderDTO) error {
	if len(dto.Items) == 0 {
		return nil
	}

	items := make([]ItemDTO, 0, len(dto.Items))
	pieces := make([]PieceDTO, 0)
	for _, item := range dto.Items {
		pieces = append(pieces, item.Pieces...)
		item.Pieces = nil
		items = append(items, item)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(itemUpsertColumns),
		}).
		Omit(clause.Associations).
		Create(&items).Error
	if err != nil {
		return err
	}

	if len(pieces) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(pieceUpsertColumns),
		}).
		Create(&pieces).Error
}

// pruneOrphans removes item and piece rows that still point at this order
// but are no longer part of the aggregate. Rows moved to a split child
// already point elsewhere and are untouched.
func (r *GormOrderRepository) pruneOrphans(ctx context.Context, dto OrderDTO) error {
	itemIDs := make([]uuid.UUID, 0, len(dto.Items))
	pieceIDs := make([]uuid.UUID, 0)
	for _, item := range dto.Items {
		itemIDs = append(itemIDs, item.ID)
		for _, piece := range item.Pieces {
			pieceIDs = append(pieceIDs, piece.ID)
		}
	}

	db := r.db.WithContext(ctx)

	pieceScope := db.Where("order_id = ?", dto.ID)
	if len(pieceIDs) > 0 {
		pieceScope = pieceScope.Where("id NOT IN ?", pieceIDs)
	}
	if err := pieceScope.Delete(&PieceDTO{}).Error; err != nil {
		return err
	}

	itemScope := db.Where("order_id = ?", dto.ID)
	if len(itemIDs) > 0 {
		itemScope = itemScope.Where("id NOT IN ?", itemIDs)
	}
	return itemScope.Delete(&ItemDTO{}).Error
}
