// Package services contains stateless domain services that coordinate logic
// across aggregates and value objects without owning state of their own.
//
// GateEvaluator checks an order against the quality-gate rules of a resolved
// workflow policy; it is pure and safe to call speculatively.
package services
