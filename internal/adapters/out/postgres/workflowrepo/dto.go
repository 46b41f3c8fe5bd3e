// Package workflowrepo provides data transfer objects and mapping functions
// for tenant workflow settings persistence. Transition maps and gate rules
// are stored as jsonb documents: tenants change them at runtime and the
// shapes are read whole, never queried by key.
package workflowrepo

import (
	"encoding/json"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// SettingsDTO represents the database structure for persisting workflow
// settings. At most one active row exists per (tenant, category) pair,
// enforced by the partial unique index from EnsureIndexes.
type SettingsDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index:idx_workflow_settings_tenant"`
	ServiceCategory *string   `gorm:"type:varchar(64)"`
	Transitions     []byte    `gorm:"type:jsonb;not null"`
	GateRules       []byte    `gorm:"type:jsonb"`
	Active          bool      `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for workflow settings entities.
func (SettingsDTO) TableName() string {
	return "workflow_settings"
}

// fromDomain converts a settings row to its database representation.
func fromDomain(settings *workflow.Settings) (SettingsDTO, error) {
	transitions, err := json.Marshal(encodeTransitions(settings.Transitions()))
	if err != nil {
		return SettingsDTO{}, err
	}

	gateRules, err := json.Marshal(encodeGateRules(settings.GateRules()))
	if err != nil {
		return SettingsDTO{}, err
	}

	return SettingsDTO{
		ID:              settings.ID().Bytes(),
		TenantID:        settings.TenantID().Bytes(),
		ServiceCategory: settings.ServiceCategory(),
		Transitions:     transitions,
		GateRules:       gateRules,
		Active:          settings.IsActive(),
	}, nil
}

// toDomain converts a database DTO to a settings domain object.
func toDomain(dto SettingsDTO) (*workflow.Settings, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var plainTransitions map[string][]string
	if err = json.Unmarshal(dto.Transitions, &plainTransitions); err != nil {
		return nil, err
	}

	var plainGateRules map[string][]string
	if len(dto.GateRules) > 0 {
		if err = json.Unmarshal(dto.GateRules, &plainGateRules); err != nil {
			return nil, err
		}
	}

	return workflow.RestoreSettings(
		id, tenantID,
		dto.ServiceCategory,
		decodeTransitions(plainTransitions),
		decodeGateRules(plainGateRules),
		dto.Active,
	)
}

func encodeTransitions(transitions map[order.Status][]order.Status) map[string][]string {
	plain := make(map[string][]string, len(transitions))
	for from, targets := range transitions {
		set := make([]string, 0, len(targets))
		for _, to := range targets {
			set = append(set, string(to))
		}
		plain[string(from)] = set
	}
	return plain
}

func decodeTransitions(plain map[string][]string) map[order.Status][]order.Status {
	transitions := make(map[order.Status][]order.Status, len(plain))
	for from, targets := range plain {
		set := make([]order.Status, 0, len(targets))
		for _, to := range targets {
			set = append(set, order.Status(to))
		}
		transitions[order.Status(from)] = set
	}
	return transitions
}

func encodeGateRules(gateRules map[order.Status][]workflow.GateRule) map[string][]string {
	plain := make(map[string][]string, len(gateRules))
	for target, rules := range gateRules {
		set := make([]string, 0, len(rules))
		for _, rule := range rules {
			set = append(set, string(rule))
		}
		plain[string(target)] = set
	}
	return plain
}

func decodeGateRules(plain map[string][]string) map[order.Status][]workflow.GateRule {
	if plain == nil {
		return nil
	}

	gateRules := make(map[order.Status][]workflow.GateRule, len(plain))
	for target, rules := range plain {
		set := make([]workflow.GateRule, 0, len(rules))
		for _, rule := range rules {
			set = append(set, workflow.GateRule(rule))
		}
		gateRules[order.Status(target)] = set
	}
	return gateRules
}
