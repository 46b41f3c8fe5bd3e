package workflowrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkflowSettingsRepository implements WorkflowSettingsRepository using GORM.
type GormWorkflowSettingsRepository struct {
	db *gorm.DB
}

// NewGormWorkflowSettingsRepository creates a new GORM workflow settings repository.
func NewGormWorkflowSettingsRepository(db *gorm.DB) *GormWorkflowSettingsRepository {
	return &GormWorkflowSettingsRepository{db: db}
}

// GetActive retrieves the active settings row for the tenant and service
// category. A nil category requests the tenant-wide default row. Absence is
// reported as ObjectNotFound so the policy resolver can fall through.
func (r *GormWorkflowSettingsRepository) GetActive(
	ctx context.Context, tenantID kernel.UUID, serviceCategory *string,
) (*workflow.Settings, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("tenant_id = ? AND active", tenantID.Bytes())
	if serviceCategory != nil {
		query = query.Where("service_category = ?", *serviceCategory)
	} else {
		query = query.Where("service_category IS NULL")
	}

	var dto SettingsDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("workflowSettings", tenantID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add persists a new settings row. The partial unique index created by
// EnsureIndexes rejects a second active row for the same pair.
func (r *GormWorkflowSettingsRepository) Add(ctx context.Context, settings *workflow.Settings) error {
	dto, err := fromDomain(settings)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// EnsureIndexes creates the partial unique index guarding the single active
// settings row per (tenant, category) pair. AutoMigrate cannot express a
// partial index, so it is created explicitly after the table migration. Rows
// with a NULL category collapse onto the empty string for uniqueness.
func EnsureIndexes(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_workflow_settings_one_active
		 ON workflow_settings (tenant_id, COALESCE(service_category, ''))
		 WHERE active`,
	).Error
}
