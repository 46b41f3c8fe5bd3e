// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WorkflowRepoFactory provides access to the workflow settings repository
	// within a transaction.
	WorkflowRepoFactory interface {
		WorkflowSettingsRepository() ports.WorkflowSettingsRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only touch order aggregates (piece ledger, split).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that read workflow settings alongside order
	// mutations. The state machine uses it so policy resolution and the
	// guarded status write observe the same snapshot.
	UoW interface {
		TxManager
		OrderRepoFactory
		WorkflowRepoFactory
	}

	// UoWFactory creates new unit of work instances for workflow-aware operations.
	UoWFactory interface {
		Create() UoW
	}
)
