package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workflow"
)

// WorkflowSettingsRepository defines the persistence contract for tenant
// workflow settings rows. It satisfies workflow.SettingsSource so the policy
// resolver can read through it directly.
type WorkflowSettingsRepository interface {
	// GetActive retrieves the active settings row for the tenant and service
	// category; a nil category requests the tenant-wide default row. Absence
	// is reported as ObjectNotFound.
	GetActive(ctx context.Context, tenantID kernel.UUID, serviceCategory *string) (*workflow.Settings, error)

	// Add persists a new settings row. Storage enforces at most one active
	// row per (tenant, category) pair.
	Add(ctx context.Context, settings *workflow.Settings) error
}
