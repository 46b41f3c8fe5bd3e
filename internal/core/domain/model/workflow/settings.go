package workflow

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// ErrTransitionsAreRequired is returned when a settings row carries no
// transition map at all. An empty map would silently make every transition
// illegal, which is never what a tenant intended.
var ErrTransitionsAreRequired = errs.NewValueIsRequiredError("transitions")

// Settings is one tenant's workflow override: a transition map and quality
// gate rules, optionally scoped to a service category. A nil category means
// the row is the tenant-wide default. At most one active row exists per
// (tenant, category) pair; absence falls back per the Resolver's order.
type Settings struct {
	id              kernel.UUID
	tenantID        kernel.UUID
	serviceCategory *string
	transitions     map[order.Status][]order.Status
	gateRules       map[order.Status][]GateRule
	active          bool
}

// NewSettings creates a settings row for a tenant. gateRules may be nil when
// the tenant configures no gates; every status without rules is
// unconditionally allowed.
func NewSettings(
	id, tenantID kernel.UUID,
	serviceCategory *string,
	transitions map[order.Status][]order.Status,
	gateRules map[order.Status][]GateRule,
) (*Settings, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
	); err != nil {
		return nil, err
	}
	if len(transitions) == 0 {
		return nil, ErrTransitionsAreRequired
	}

	if gateRules == nil {
		gateRules = map[order.Status][]GateRule{}
	}

	return &Settings{
		id:              id,
		tenantID:        tenantID,
		serviceCategory: serviceCategory,
		transitions:     transitions,
		gateRules:       gateRules,
		active:          true,
	}, nil
}

// RestoreSettings reconstructs a settings row from persistent storage.
func RestoreSettings(
	id, tenantID kernel.UUID,
	serviceCategory *string,
	transitions map[order.Status][]order.Status,
	gateRules map[order.Status][]GateRule,
	active bool,
) (*Settings, error) {
	s, err := NewSettings(id, tenantID, serviceCategory, transitions, gateRules)
	if err != nil {
		return nil, err
	}

	s.active = active
	return s, nil
}

// ID returns the settings row identifier.
func (s *Settings) ID() kernel.UUID {
	return s.id
}

// TenantID returns the owning tenant.
func (s *Settings) TenantID() kernel.UUID {
	return s.tenantID
}

// ServiceCategory returns the category the row applies to, or nil for the
// tenant-wide default.
func (s *Settings) ServiceCategory() *string {
	return s.serviceCategory
}

// Transitions returns the configured from -> allowed-to map.
func (s *Settings) Transitions() map[order.Status][]order.Status {
	return s.transitions
}

// GateRules returns the configured target-status -> rules map.
func (s *Settings) GateRules() map[order.Status][]GateRule {
	return s.gateRules
}

// IsActive reports whether the row currently applies.
func (s *Settings) IsActive() bool {
	return s.active
}

// SettingsSource loads the active settings row for a (tenant, category)
// pair. A nil category requests the tenant-wide default row. Absence is
// reported as ObjectNotFound, which the Resolver treats as fall-through.
type SettingsSource interface {
	GetActive(ctx context.Context, tenantID kernel.UUID, serviceCategory *string) (*Settings, error)
}

// Resolver turns (tenant, category) into the one policy that governs an
// order. Resolution order: active row for (tenant, category), then active row
// for (tenant, nil) as the tenant default, then the compiled-in default
// matrix. The first source found wins entirely; sources are never merged.
type Resolver struct {
	src SettingsSource
}

// NewResolver creates a policy resolver over the given settings source.
func NewResolver(src SettingsSource) Resolver {
	return Resolver{src: src}
}

// Resolve returns the governing policy for the tenant and service category.
// Only ObjectNotFound falls through to the next source; any other settings
// load failure propagates.
func (r Resolver) Resolve(ctx context.Context, tenantID kernel.UUID, serviceCategory string) (*Policy, error) {
	if serviceCategory != "" {
		settings, err := r.src.GetActive(ctx, tenantID, &serviceCategory)
		if err == nil {
			return PolicyFromSettings(settings), nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	settings, err := r.src.GetActive(ctx, tenantID, nil)
	if err == nil {
		return PolicyFromSettings(settings), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	return DefaultPolicy(), nil
}
