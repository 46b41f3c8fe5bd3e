package services

import (
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
)

// GateResult is the outcome of evaluating a quality gate. When Allowed is
// false, Blockers lists every failing predicate in human-readable form so a
// caller can report every missing requirement in one round trip.
type GateResult struct {
	Allowed  bool
	Blockers []string
}

// GateEvaluator is a domain service that checks an order against the
// quality-gate rules guarding a target status.
//
// Evaluation is side-effect-free and safe to run speculatively, e.g. to
// render an "allowed next steps" list without committing anything. Every rule
// is evaluated independently; failures are collected, not short-circuited.
// An empty rule set allows unconditionally.
type GateEvaluator struct{}

// NewGateEvaluator creates a GateEvaluator instance.
func NewGateEvaluator() GateEvaluator {
	return GateEvaluator{}
}

// Evaluate checks the order against the given rules for the target status.
func (GateEvaluator) Evaluate(o *order.Order, target order.Status, rules []workflow.GateRule) GateResult {
	blockers := make([]string, 0)

	for _, rule := range rules {
		switch rule {
		case workflow.RuleAllItemsAssembled:
			if n := countUnassembled(o); n > 0 {
				blockers = append(blockers, fmt.Sprintf("%d piece(s) not assembled yet", n))
			}
		case workflow.RuleQAPassed:
			if n := countPendingQA(o); n > 0 {
				blockers = append(blockers, fmt.Sprintf("%d piece(s) have not passed quality check", n))
			}
		case workflow.RuleNoUnresolvedIssues:
			if hasOpenIssue(o) {
				blockers = append(blockers, "unresolved issue present")
			}
		case workflow.RuleRackLocationPresent:
			if o.RackLocation() == nil {
				blockers = append(blockers, "rack location missing")
			}
		default:
			// An unknown configured rule blocks rather than silently passing:
			// a typo in tenant settings must not open a gate.
			blockers = append(blockers, fmt.Sprintf("unknown gate rule %q", string(rule)))
		}
	}

	return GateResult{
		Allowed:  len(blockers) == 0,
		Blockers: blockers,
	}
}

// countUnassembled counts tracked, non-rejected pieces not yet scanned.
func countUnassembled(o *order.Order) int {
	n := 0
	for _, item := range o.Items() {
		for _, p := range item.Pieces() {
			if p.IsRejected() {
				continue
			}
			if p.ScanState() != order.ScanStateScanned {
				n++
			}
		}
	}
	return n
}

// countPendingQA counts tracked, non-rejected pieces before the qa stage.
func countPendingQA(o *order.Order) int {
	n := 0
	for _, item := range o.Items() {
		for _, p := range item.Pieces() {
			if p.IsRejected() {
				continue
			}
			if p.Status() != order.PieceStatusQA && p.Status() != order.PieceStatusReady {
				n++
			}
		}
	}
	return n
}

// hasOpenIssue reports an order-level issue flag or any piece with a linked issue.
func hasOpenIssue(o *order.Order) bool {
	if o.HasIssue() {
		return true
	}
	for _, item := range o.Items() {
		for _, p := range item.Pieces() {
			if p.IssueID() != nil {
				return true
			}
		}
	}
	return false
}
