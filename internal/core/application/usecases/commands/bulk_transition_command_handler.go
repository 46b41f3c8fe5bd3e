package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// DefaultBulkBatchCap bounds a bulk transition request when no explicit cap
// is configured.
const DefaultBulkBatchCap = 100

// BulkOutcome reports what happened to one order in a bulk transition.
// Failed entries carry the per-order error; the rest of the batch is
// unaffected by them.
type BulkOutcome struct {
	OrderID kernel.UUID
	Err     error
}

// Succeeded reports whether this order reached the target status.
func (o BulkOutcome) Succeeded() bool {
	return o.Err == nil
}

// BulkResult aggregates a completed batch: per-order outcomes in request
// order plus success and failure tallies.
type BulkResult struct {
	Succeeded int
	Failed    int
	Outcomes  []BulkOutcome
}

// BulkTransitionCommandHandler applies the same transition to a batch of
// orders. Every order runs in its own transaction through the single-order
// handler, so one blocked gate or concurrent writer never poisons the rest
// of the batch. Outcomes come back in request order.
type BulkTransitionCommandHandler struct {
	transitions TransitionOrderCommandHandler
	batchCap    int
	logger      *slog.Logger
}

// NewBulkTransitionCommandHandler creates a handler for bulk transitions.
// A non-positive batchCap falls back to DefaultBulkBatchCap.
func NewBulkTransitionCommandHandler(
	transitions TransitionOrderCommandHandler,
	batchCap int,
	logger *slog.Logger,
) BulkTransitionCommandHandler {
	if batchCap <= 0 {
		batchCap = DefaultBulkBatchCap
	}
	if logger == nil {
		logger = slog.Default()
	}

	return BulkTransitionCommandHandler{
		transitions: transitions,
		batchCap:    batchCap,
		logger:      logger,
	}
}

// Handle processes the batch.
// Rejects oversized batches with ErrBatchTooLarge before touching any order.
// When the context expires mid-batch the remaining orders are marked with
// the context error and left untouched.
func (h BulkTransitionCommandHandler) Handle(
	ctx context.Context, cmd BulkTransitionCommand,
) (BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkResult{}, err
	}

	if len(cmd.OrderIDs()) > h.batchCap {
		return BulkResult{}, errs.NewBatchTooLargeError(len(cmd.OrderIDs()), h.batchCap)
	}

	result := BulkResult{Outcomes: make([]BulkOutcome, 0, len(cmd.OrderIDs()))}
	for _, orderID := range cmd.OrderIDs() {
		outcome := BulkOutcome{OrderID: orderID}
		if ctxErr := ctx.Err(); ctxErr != nil {
			outcome.Err = ctxErr
		} else {
			outcome.Err = h.transitionOne(ctx, cmd, orderID)
		}

		if outcome.Succeeded() {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func (h BulkTransitionCommandHandler) transitionOne(
	ctx context.Context, cmd BulkTransitionCommand, orderID kernel.UUID,
) error {
	single, err := NewTransitionOrderCommand(orderID, cmd.Actor(), cmd.ToStatus(), cmd.Notes())
	if err != nil {
		return err
	}

	if _, err = h.transitions.Handle(ctx, single); err != nil {
		h.logger.Warn("bulk transition: order skipped",
			"orderId", orderID.String(),
			"toStatus", string(cmd.ToStatus()),
			"error", err)
		return err
	}

	return nil
}
