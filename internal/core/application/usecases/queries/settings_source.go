package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sqlSettingsSource reads active workflow settings rows with direct SQL so
// query handlers can resolve policies without opening a unit of work.
type sqlSettingsSource struct {
	db *gorm.DB
}

func newSQLSettingsSource(db *gorm.DB) sqlSettingsSource {
	return sqlSettingsSource{db: db}
}

func (s sqlSettingsSource) GetActive(
	ctx context.Context, tenantID kernel.UUID, serviceCategory *string,
) (*workflow.Settings, error) {
	q := s.db.WithContext(ctx)

	var row *sql.Row
	if serviceCategory != nil {
		row = q.Raw(`
			SELECT id, service_category, transitions, gate_rules, active
			FROM workflow_settings
			WHERE tenant_id = ? AND service_category = ? AND active
			LIMIT 1
		`, tenantID.Bytes(), *serviceCategory).Row()
	} else {
		row = q.Raw(`
			SELECT id, service_category, transitions, gate_rules, active
			FROM workflow_settings
			WHERE tenant_id = ? AND service_category IS NULL AND active
			LIMIT 1
		`, tenantID.Bytes()).Row()
	}

	var id uuid.UUID
	var category sql.NullString
	var transitionsJSON, gateRulesJSON []byte
	var active bool

	err := row.Scan(&id, &category, &transitionsJSON, &gateRulesJSON, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("workflowSettings", tenantID.String())
	}
	if err != nil {
		return nil, err
	}

	settingsID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	transitions, err := decodeTransitions(transitionsJSON)
	if err != nil {
		return nil, err
	}
	gateRules, err := decodeGateRules(gateRulesJSON)
	if err != nil {
		return nil, err
	}

	var categoryPtr *string
	if category.Valid {
		categoryPtr = &category.String
	}

	return workflow.RestoreSettings(settingsID, tenantID, categoryPtr, transitions, gateRules, active)
}

func decodeTransitions(raw []byte) (map[order.Status][]order.Status, error) {
	var plain map[string][]string
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("decode transitions: %w", err)
	}

	transitions := make(map[order.Status][]order.Status, len(plain))
	for from, targets := range plain {
		set := make([]order.Status, 0, len(targets))
		for _, to := range targets {
			set = append(set, order.Status(to))
		}
		transitions[order.Status(from)] = set
	}
	return transitions, nil
}

func decodeGateRules(raw []byte) (map[order.Status][]workflow.GateRule, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var plain map[string][]string
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("decode gate rules: %w", err)
	}

	gateRules := make(map[order.Status][]workflow.GateRule, len(plain))
	for target, rules := range plain {
		set := make([]workflow.GateRule, 0, len(rules))
		for _, rule := range rules {
			set = append(set, workflow.GateRule(rule))
		}
		gateRules[order.Status(target)] = set
	}
	return gateRules, nil
}
