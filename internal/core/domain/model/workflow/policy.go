package workflow

import (
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// GateRule is one declarative quality-gate predicate attached to a target
// status. Rules are evaluated independently against current order state; all
// failing rules are reported together, never just the first.
type GateRule string

const (
	// RuleAllItemsAssembled requires every tracked, non-rejected piece to be
	// physically scanned.
	RuleAllItemsAssembled GateRule = "requireAllItemsAssembled"
	// RuleQAPassed requires every tracked, non-rejected piece to have reached
	// at least the qa stage.
	RuleQAPassed GateRule = "requireQAPassed"
	// RuleNoUnresolvedIssues requires the order to carry no open issue.
	RuleNoUnresolvedIssues GateRule = "requireNoUnresolvedIssues"
	// RuleRackLocationPresent requires a rack location on the order.
	RuleRackLocationPresent GateRule = "requireRackLocation"
)

// Validate checks the rule against the known predicate set.
func (r GateRule) Validate() error {
	switch r {
	case RuleAllItemsAssembled, RuleQAPassed, RuleNoUnresolvedIssues, RuleRackLocationPresent:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("gateRule", fmt.Errorf("%q is not a known gate rule", string(r)))
}

// Policy answers which status transitions are legal and which gate rules
// guard each target status, for one resolved source: either a tenant settings
// row or the compiled-in default matrix. Sources are never merged; the first
// source found wins entirely, so a tenant can never silently inherit
// transitions it did not configure.
//
// Policy is a pure lookup: calling it twice with identical inputs and no
// settings change in between yields identical results.
type Policy struct {
	source      string
	transitions map[order.Status][]order.Status
	gates       map[order.Status][]GateRule
	known       map[order.Status]bool
}

// DefaultPolicy returns the compiled-in system default matrix. It is used
// whenever a tenant has no active settings row for the category or as a
// tenant-wide default.
//
// The default graph allows the forward path draft -> intake -> preparing ->
// processing -> qa -> ready -> out_for_delivery -> delivered -> closed, the
// qa -> processing rework edge, a ready bounce from out_for_delivery, and
// cancellation from every pre-delivery status. By default entering ready is
// gated on assembly and the absence of open issues.
func DefaultPolicy() *Policy {
	transitions := map[order.Status][]order.Status{
		order.StatusDraft:          {order.StatusIntake, order.StatusCancelled},
		order.StatusIntake:         {order.StatusPreparing, order.StatusCancelled},
		order.StatusPreparing:      {order.StatusProcessing, order.StatusCancelled},
		order.StatusProcessing:     {order.StatusQA, order.StatusCancelled},
		order.StatusQA:             {order.StatusReady, order.StatusProcessing, order.StatusCancelled},
		order.StatusReady:          {order.StatusOutForDelivery, order.StatusDelivered, order.StatusCancelled},
		order.StatusOutForDelivery: {order.StatusDelivered, order.StatusReady},
		order.StatusDelivered:      {order.StatusClosed},
	}
	gates := map[order.Status][]GateRule{
		order.StatusReady: {RuleAllItemsAssembled, RuleNoUnresolvedIssues},
	}

	known := make(map[order.Status]bool)
	for _, s := range order.BuiltinStatuses() {
		known[s] = true
	}

	return &Policy{
		source:      "default",
		transitions: transitions,
		gates:       gates,
		known:       known,
	}
}

// PolicyFromSettings builds a policy from one active tenant settings row.
// Statuses appearing anywhere in the configured transition map are treated as
// known alongside the built-in set, so tenants may extend the status enum.
func PolicyFromSettings(s *Settings) *Policy {
	known := make(map[order.Status]bool)
	for _, st := range order.BuiltinStatuses() {
		known[st] = true
	}
	for from, tos := range s.Transitions() {
		known[from] = true
		for _, to := range tos {
			known[to] = true
		}
	}

	return &Policy{
		source:      fmt.Sprintf("settings:%s", s.ID()),
		transitions: s.Transitions(),
		gates:       s.GateRules(),
		known:       known,
	}
}

// Source identifies where the policy was resolved from, for logging.
func (p *Policy) Source() string {
	return p.source
}

// AllowedTransitions returns the set of statuses legally reachable from the
// given status. Terminal statuses always resolve to an empty set. An unknown
// from-status fails with InvalidState rather than an empty set, so callers
// can distinguish "no transitions left" from "corrupt state".
func (p *Policy) AllowedTransitions(from order.Status) ([]order.Status, error) {
	if !p.known[from] {
		return nil, errs.NewInvalidStateError(string(from))
	}
	if from.IsTerminal() {
		return []order.Status{}, nil
	}

	allowed := p.transitions[from]
	out := make([]order.Status, len(allowed))
	copy(out, allowed)
	return out, nil
}

// IsTransitionAllowed reports whether from -> to is legal under this policy.
func (p *Policy) IsTransitionAllowed(from, to order.Status) (bool, error) {
	allowed, err := p.AllowedTransitions(from)
	if err != nil {
		return false, err
	}

	for _, s := range allowed {
		if s == to {
			return true, nil
		}
	}
	return false, nil
}

// GateRules returns the quality-gate predicates guarding entry to the target
// status. A status with no configured rules returns an empty set, which the
// evaluator treats as unconditionally allowed.
func (p *Policy) GateRules(target order.Status) []GateRule {
	rules := p.gates[target]
	out := make([]GateRule, len(rules))
	copy(out, rules)
	return out
}

// AllowedStrings renders an allowed set for error payloads.
func AllowedStrings(allowed []order.Status) []string {
	out := make([]string, len(allowed))
	for i, s := range allowed {
		out[i] = string(s)
	}
	return out
}
