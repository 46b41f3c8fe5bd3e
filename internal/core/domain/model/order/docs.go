// Package order contains the order aggregate: the laundry job itself, its
// line items, the individual pieces tracked beneath them, and the append-only
// status history.
//
// The aggregate root enforces the engine's structural invariants: one current
// status, piece-to-order exclusivity, dense piece sequences, recomputed (never
// incremented) ready counters. Transition legality and quality gating
// live in the workflow package and are consulted by the application layer
// before EnterStatus is called.
package order
