package order_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"2026-0001", "wash_fold", false)
	require.NoError(t, err)
	return o
}

func validItem(t *testing.T, quantity int, unitPrice int64) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Dress Shirt", quantity, unitPrice)
	require.NoError(t, err)
	return item
}

func trackedOrder(t *testing.T, pieceCount int) (*order.Order, *order.Item) {
	t.Helper()
	o := validOrder(t)
	item := validItem(t, pieceCount, 500)
	require.NoError(t, o.AddItem(item))
	require.NoError(t, o.GeneratePieces(item.ID(), pieceCount))
	return o, item
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in intake status", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"2026-0001", "dry_clean", false)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusIntake, o.Status())
		assert.Equal(t, "2026-0001", o.Number())
		assert.Equal(t, "dry_clean", o.ServiceCategory())
		assert.False(t, o.IsQuickDrop())
		assert.Empty(t, o.Items())
	})

	t.Run("should create quick-drop order in draft status", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"2026-0002", "wash_fold", true)

		require.NoError(t, err)
		assert.Equal(t, order.StatusDraft, o.Status())
		assert.True(t, o.IsQuickDrop())
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, invalidID, invalidID, "2026-0003", "wash_fold", false)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should fail with empty number", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "wash_fold", false)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should add item and recalculate total", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.AddItem(validItem(t, 3, 900)))
		require.NoError(t, o.AddItem(validItem(t, 2, 1500)))

		assert.Len(t, o.Items(), 2)
		assert.Equal(t, int64(3*900+2*1500), o.TotalAmount())
		assert.True(t, o.Items()[0].OrderID().IsEqual(o.ID()))
	})

	t.Run("should reject items once processing started", func(t *testing.T) {
		o := validOrder(t)
		_, err := o.EnterStatus(order.StatusProcessing, time.Now().UTC())
		require.NoError(t, err)

		err = o.AddItem(validItem(t, 1, 500))

		require.ErrorIs(t, err, order.ErrItemsLocked)
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	t.Run("should remove item and recalculate total", func(t *testing.T) {
		o := validOrder(t)
		item := validItem(t, 2, 700)
		require.NoError(t, o.AddItem(item))
		require.NoError(t, o.AddItem(validItem(t, 1, 300)))

		require.NoError(t, o.RemoveItem(item.ID()))

		assert.Len(t, o.Items(), 1)
		assert.Equal(t, int64(300), o.TotalAmount())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := validOrder(t)

		err := o.RemoveItem(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject removal once processing started", func(t *testing.T) {
		o := validOrder(t)
		item := validItem(t, 1, 500)
		require.NoError(t, o.AddItem(item))
		_, err := o.EnterStatus(order.StatusProcessing, time.Now().UTC())
		require.NoError(t, err)

		err = o.RemoveItem(item.ID())

		require.ErrorIs(t, err, order.ErrItemsLocked)
	})
}

func TestOrder_EnterStatus(t *testing.T) {
	t.Run("should return the status the order left", func(t *testing.T) {
		o := validOrder(t)

		from, err := o.EnterStatus(order.StatusPreparing, time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, order.StatusIntake, from)
		assert.Equal(t, order.StatusPreparing, o.Status())
	})

	t.Run("should stamp readyBy on entering ready", func(t *testing.T) {
		o := validOrder(t)
		at := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

		_, err := o.EnterStatus(order.StatusReady, at)

		require.NoError(t, err)
		require.NotNil(t, o.ReadyBy())
		assert.Equal(t, at, *o.ReadyBy())
	})

	t.Run("should keep an existing readyBy on entering ready", func(t *testing.T) {
		o := validOrder(t)
		promised := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)
		o.SetReadyBy(promised)

		_, err := o.EnterStatus(order.StatusReady, time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, promised, *o.ReadyBy())
	})

	t.Run("should mark a cancelled quick drop as rejected", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"2026-0009", "wash_fold", true)
		require.NoError(t, err)

		_, err = o.EnterStatus(order.StatusCancelled, time.Now().UTC())

		require.NoError(t, err)
		assert.True(t, o.IsRejected())
	})

	t.Run("should not mark a cancelled regular order as rejected", func(t *testing.T) {
		o := validOrder(t)

		_, err := o.EnterStatus(order.StatusCancelled, time.Now().UTC())

		require.NoError(t, err)
		assert.False(t, o.IsRejected())
	})

	t.Run("should fail with empty status", func(t *testing.T) {
		o := validOrder(t)

		_, err := o.EnterStatus("", time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, order.StatusIntake, o.Status())
	})
}

func TestOrder_GeneratePieces(t *testing.T) {
	t.Run("should generate dense sequences with codes", func(t *testing.T) {
		o := validOrder(t)
		item := validItem(t, 3, 500)
		require.NoError(t, o.AddItem(item))

		require.NoError(t, o.GeneratePieces(item.ID(), 3))

		pieces := item.Pieces()
		require.Len(t, pieces, 3)
		for idx, p := range pieces {
			assert.Equal(t, idx+1, p.Sequence())
			assert.NotEmpty(t, p.Code())
			assert.Equal(t, order.ScanStateExpected, p.ScanState())
			assert.Equal(t, order.PieceStatusIntake, p.Status())
			assert.True(t, p.TenantID().IsEqual(o.TenantID()))
		}
	})

	t.Run("should be idempotent for the same count", func(t *testing.T) {
		o, item := trackedOrder(t, 3)
		before := make([]kernel.UUID, 0, 3)
		for _, p := range item.Pieces() {
			before = append(before, p.ID())
		}

		require.NoError(t, o.GeneratePieces(item.ID(), 3))

		require.Len(t, item.Pieces(), 3)
		for idx, p := range item.Pieces() {
			assert.True(t, p.ID().IsEqual(before[idx]))
		}
	})

	t.Run("should append only the delta for a larger count", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		first := item.Pieces()[0].ID()

		require.NoError(t, o.GeneratePieces(item.ID(), 4))

		require.Len(t, item.Pieces(), 4)
		assert.True(t, item.Pieces()[0].ID().IsEqual(first))
		assert.Equal(t, 4, item.Quantity())
		assert.Equal(t, int64(4*500), o.TotalAmount())
	})

	t.Run("should drop the highest sequences for a smaller count", func(t *testing.T) {
		o, item := trackedOrder(t, 4)

		require.NoError(t, o.GeneratePieces(item.ID(), 2))

		require.Len(t, item.Pieces(), 2)
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, 1, item.Pieces()[0].Sequence())
		assert.Equal(t, 2, item.Pieces()[1].Sequence())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := validOrder(t)

		err := o.GeneratePieces(kernel.NewUUID(), 2)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail for non-positive count", func(t *testing.T) {
		o, item := trackedOrder(t, 2)

		err := o.GeneratePieces(item.ID(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_RecordScan(t *testing.T) {
	t.Run("should apply scan and sync ready counter", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		code := item.Pieces()[0].Code()
		at := time.Now().UTC()

		piece, err := o.RecordScan(code, order.ScanStateScanned, order.PieceStatusReady, "Dana", at)

		require.NoError(t, err)
		assert.Equal(t, order.ScanStateScanned, piece.ScanState())
		assert.Equal(t, order.PieceStatusReady, piece.Status())
		assert.Equal(t, "scan:scanned", piece.LastStep())
		assert.Equal(t, "Dana", piece.LastActor())
		assert.Equal(t, 1, item.QuantityReady())
	})

	t.Run("should leave stage unchanged for empty stage", func(t *testing.T) {
		o, item := trackedOrder(t, 1)

		piece, err := o.RecordScan(item.Pieces()[0].Code(), order.ScanStateScanned, "", "Dana", time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, order.PieceStatusIntake, piece.Status())
	})

	t.Run("should fail for unknown barcode", func(t *testing.T) {
		o, _ := trackedOrder(t, 1)

		_, err := o.RecordScan("nope-001", order.ScanStateScanned, "", "Dana", time.Now().UTC())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail for invalid scan state", func(t *testing.T) {
		o, item := trackedOrder(t, 1)

		_, err := o.RecordScan(item.Pieces()[0].Code(), "teleported", "", "Dana", time.Now().UTC())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_MarkPieceRejected(t *testing.T) {
	t.Run("should flag piece and order issue and resync counter", func(t *testing.T) {
		o, item := trackedOrder(t, 2)
		_, err := o.RecordScan(item.Pieces()[0].Code(), order.ScanStateScanned, order.PieceStatusReady, "Dana", time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, 1, item.QuantityReady())
		issueID := kernel.NewUUID()

		err = o.MarkPieceRejected(item.Pieces()[0].ID(), issueID, "Dana", time.Now().UTC())

		require.NoError(t, err)
		piece := item.Pieces()[0]
		assert.True(t, piece.IsRejected())
		require.NotNil(t, piece.IssueID())
		assert.True(t, piece.IssueID().IsEqual(issueID))
		assert.True(t, o.HasIssue())
		assert.Equal(t, 0, item.QuantityReady())
	})

	t.Run("should fail for unknown piece", func(t *testing.T) {
		o, _ := trackedOrder(t, 1)

		err := o.MarkPieceRejected(kernel.NewUUID(), kernel.NewUUID(), "Dana", time.Now().UTC())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_Split(t *testing.T) {
	t.Run("should move whole items to the child", func(t *testing.T) {
		o := validOrder(t)
		keep := validItem(t, 2, 900)
		move := validItem(t, 3, 400)
		require.NoError(t, o.AddItem(keep))
		require.NoError(t, o.AddItem(move))
		_, err := o.EnterStatus(order.StatusProcessing, time.Now().UTC())
		require.NoError(t, err)

		child, err := o.Split(kernel.NewUUID(), "2026-0001-S1", order.SplitSelection{
			ItemIDs: []kernel.UUID{move.ID()},
		})

		require.NoError(t, err)
		assert.True(t, o.HasSplit())
		require.NotNil(t, child.ParentOrderID())
		assert.True(t, child.ParentOrderID().IsEqual(o.ID()))
		// The child starts its own lifecycle regardless of where the parent is.
		assert.Equal(t, order.StatusProcessing, o.Status())
		assert.Equal(t, order.StatusIntake, child.Status())
		assert.Len(t, o.Items(), 1)
		assert.Len(t, child.Items(), 1)
		assert.Equal(t, int64(2*900), o.TotalAmount())
		assert.Equal(t, int64(3*400), child.TotalAmount())
		assert.True(t, child.Items()[0].OrderID().IsEqual(child.ID()))
	})

	t.Run("should move selected pieces and conserve the total piece count", func(t *testing.T) {
		o, item := trackedOrder(t, 4)
		moved := []kernel.UUID{item.Pieces()[1].ID(), item.Pieces()[3].ID()}

		child, err := o.Split(kernel.NewUUID(), "2026-0001-S2", order.SplitSelection{
			PieceIDs: moved,
		})

		require.NoError(t, err)
		require.Len(t, o.Items(), 1)
		require.Len(t, child.Items(), 1)
		parentPieces := o.Items()[0].Pieces()
		childPieces := child.Items()[0].Pieces()
		require.Len(t, parentPieces, 2)
		require.Len(t, childPieces, 2)

		// Both sides resequence densely from 1.
		for idx, p := range parentPieces {
			assert.Equal(t, idx+1, p.Sequence())
			assert.True(t, p.OrderID().IsEqual(o.ID()))
		}
		for idx, p := range childPieces {
			assert.Equal(t, idx+1, p.Sequence())
			assert.True(t, p.OrderID().IsEqual(child.ID()))
		}

		// Moved pieces keep their identity.
		assert.True(t, childPieces[0].ID().IsEqual(moved[0]))
		assert.True(t, childPieces[1].ID().IsEqual(moved[1]))
		assert.Equal(t, 2, o.Items()[0].Quantity())
		assert.Equal(t, 2, child.Items()[0].Quantity())
	})

	t.Run("should reassign the item wholesale when all its pieces move", func(t *testing.T) {
		o := validOrder(t)
		whole := validItem(t, 2, 500)
		rest := validItem(t, 1, 300)
		require.NoError(t, o.AddItem(whole))
		require.NoError(t, o.AddItem(rest))
		require.NoError(t, o.GeneratePieces(whole.ID(), 2))
		require.NoError(t, o.GeneratePieces(rest.ID(), 1))

		child, err := o.Split(kernel.NewUUID(), "2026-0001-S3", order.SplitSelection{
			PieceIDs: []kernel.UUID{whole.Pieces()[0].ID(), whole.Pieces()[1].ID()},
		})

		require.NoError(t, err)
		require.Len(t, child.Items(), 1)
		assert.True(t, child.Items()[0].ID().IsEqual(whole.ID()))
		require.Len(t, o.Items(), 1)
		assert.True(t, o.Items()[0].ID().IsEqual(rest.ID()))
	})

	t.Run("should fail for empty selection", func(t *testing.T) {
		o, _ := trackedOrder(t, 2)

		_, err := o.Split(kernel.NewUUID(), "2026-0001-S4", order.SplitSelection{})

		require.ErrorIs(t, err, errs.ErrEmptySplit)
		assert.False(t, o.HasSplit())
	})

	t.Run("should fail when items and pieces are both named", func(t *testing.T) {
		o, item := trackedOrder(t, 2)

		_, err := o.Split(kernel.NewUUID(), "2026-0001-S5", order.SplitSelection{
			ItemIDs:  []kernel.UUID{item.ID()},
			PieceIDs: []kernel.UUID{item.Pieces()[0].ID()},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail without partial move for a foreign piece id", func(t *testing.T) {
		o, item := trackedOrder(t, 2)

		_, err := o.Split(kernel.NewUUID(), "2026-0001-S6", order.SplitSelection{
			PieceIDs: []kernel.UUID{item.Pieces()[0].ID(), kernel.NewUUID()},
		})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Len(t, item.Pieces(), 2)
		assert.False(t, o.HasSplit())
	})

	t.Run("should fail when the split would empty the parent", func(t *testing.T) {
		o, item := trackedOrder(t, 2)

		_, err := o.Split(kernel.NewUUID(), "2026-0001-S7", order.SplitSelection{
			PieceIDs: []kernel.UUID{item.Pieces()[0].ID(), item.Pieces()[1].ID()},
		})

		require.ErrorIs(t, err, errs.ErrEmptySplit)
	})

	t.Run("should fail when all items are selected", func(t *testing.T) {
		o := validOrder(t)
		item := validItem(t, 1, 500)
		require.NoError(t, o.AddItem(item))

		_, err := o.Split(kernel.NewUUID(), "2026-0001-S8", order.SplitSelection{
			ItemIDs: []kernel.UUID{item.ID()},
		})

		require.ErrorIs(t, err, errs.ErrEmptySplit)
	})
}

func TestSplitAuditNote(t *testing.T) {
	o := validOrder(t)

	note := order.SplitAuditNote("stain treatment", o)

	assert.Equal(t, "split: stain treatment (related order 2026-0001)", note)
}
