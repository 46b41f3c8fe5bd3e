package services_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackedOrder(t *testing.T, pieceCount int) (*order.Order, *order.Item) {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"2026-0001", "wash_fold", false)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), "Dress Shirt", pieceCount, 500)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))
	require.NoError(t, o.GeneratePieces(item.ID(), pieceCount))
	return o, item
}

func scanAll(t *testing.T, o *order.Order, item *order.Item, stage order.PieceStatus) {
	t.Helper()
	for _, p := range item.Pieces() {
		_, err := o.RecordScan(p.Code(), order.ScanStateScanned, stage, "Dana", time.Now().UTC())
		require.NoError(t, err)
	}
}

func TestGateEvaluator_Evaluate(t *testing.T) {
	evaluator := services.NewGateEvaluator()

	t.Run("should allow unconditionally with no rules", func(t *testing.T) {
		o, _ := trackedOrder(t, 2)

		result := evaluator.Evaluate(o, order.StatusReady, nil)

		assert.True(t, result.Allowed)
		assert.Empty(t, result.Blockers)
	})

	t.Run("should block on unscanned pieces", func(t *testing.T) {
		o, item := trackedOrder(t, 3)
		_, err := o.RecordScan(item.Pieces()[0].Code(), order.ScanStateScanned, "", "Dana", time.Now().UTC())
		require.NoError(t, err)

		result := evaluator.Evaluate(o, order.StatusReady,
			[]workflow.GateRule{workflow.RuleAllItemsAssembled})

		assert.False(t, result.Allowed)
		require.Len(t, result.Blockers, 1)
		assert.Contains(t, result.Blockers[0], "2 piece(s) not assembled")
	})

	t.Run("should allow once every piece is scanned", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		scanAll(t, o, item, "")

		result := evaluator.Evaluate(o, order.StatusReady,
			[]workflow.GateRule{workflow.RuleAllItemsAssembled})

		assert.True(t, result.Allowed)
	})

	t.Run("should ignore rejected pieces for assembly and qa", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		scanAll(t, o, item, order.PieceStatusQA)
		require.NoError(t, o.MarkPieceRejected(
			item.Pieces()[1].ID(), kernel.NewUUID(), "Dana", time.Now().UTC()))

		result := evaluator.Evaluate(o, order.StatusReady, []workflow.GateRule{
			workflow.RuleAllItemsAssembled,
			workflow.RuleQAPassed,
		})

		assert.True(t, result.Allowed)
	})

	t.Run("should block on pieces before the qa stage", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		scanAll(t, o, item, order.PieceStatusProcessing)

		result := evaluator.Evaluate(o, order.StatusReady,
			[]workflow.GateRule{workflow.RuleQAPassed})

		assert.False(t, result.Allowed)
		require.Len(t, result.Blockers, 1)
		assert.Contains(t, result.Blockers[0], "not passed quality check")
	})

	t.Run("should block on an open issue", func(t *testing.T) {
		o, item := trackedOrder(t, 1)
		scanAll(t, o, item, order.PieceStatusReady)
		require.NoError(t, o.MarkPieceRejected(
			item.Pieces()[0].ID(), kernel.NewUUID(), "Dana", time.Now().UTC()))

		result := evaluator.Evaluate(o, order.StatusReady,
			[]workflow.GateRule{workflow.RuleNoUnresolvedIssues})

		assert.False(t, result.Allowed)
		assert.Contains(t, result.Blockers, "unresolved issue present")
	})

	t.Run("should block on a missing rack location", func(t *testing.T) {
		o, _ := trackedOrder(t, 1)

		result := evaluator.Evaluate(o, order.StatusOutForDelivery,
			[]workflow.GateRule{workflow.RuleRackLocationPresent})

		assert.False(t, result.Allowed)
		assert.Contains(t, result.Blockers, "rack location missing")
	})

	t.Run("should allow with a rack location set", func(t *testing.T) {
		o, _ := trackedOrder(t, 1)
		o.SetRackLocation("R4-12")

		result := evaluator.Evaluate(o, order.StatusOutForDelivery,
			[]workflow.GateRule{workflow.RuleRackLocationPresent})

		assert.True(t, result.Allowed)
	})

	t.Run("should collect every failing rule", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		require.NoError(t, o.MarkPieceRejected(
			item.Pieces()[0].ID(), kernel.NewUUID(), "Dana", time.Now().UTC()))

		result := evaluator.Evaluate(o, order.StatusReady, []workflow.GateRule{
			workflow.RuleAllItemsAssembled,
			workflow.RuleNoUnresolvedIssues,
			workflow.RuleRackLocationPresent,
		})

		assert.False(t, result.Allowed)
		assert.Len(t, result.Blockers, 3)
	})

	t.Run("should block on an unknown configured rule", func(t *testing.T) {
		o, item := trackedOrder(t, 1)
		scanAll(t, o, item, order.PieceStatusReady)

		result := evaluator.Evaluate(o, order.StatusReady,
			[]workflow.GateRule{workflow.GateRule("requirePerfume")})

		assert.False(t, result.Allowed)
		require.Len(t, result.Blockers, 1)
		assert.Contains(t, result.Blockers[0], "unknown gate rule")
	})
}
