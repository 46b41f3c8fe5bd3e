package commands_test

import (
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	// Arrange
	actor := testActor(t)
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	lines := []commands.ItemLine{
		{ProductID: kernel.NewUUID(), ProductName: "Dress Shirt", Quantity: 2, UnitPrice: 900},
	}

	// Act
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor, customerID, "2026-0001", "wash_fold", false, lines)

	// Assert
	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.CustomerID().IsEqual(customerID))
	assert.Equal(t, "2026-0001", cmd.Number())
	assert.Equal(t, "wash_fold", cmd.ServiceCategory())
	assert.False(t, cmd.QuickDrop())
	assert.Len(t, cmd.Items(), 1)
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_QuickDropWithoutItems(t *testing.T) {
	// Act
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), testActor(t), kernel.NewUUID(), "2026-0002", "wash_fold", true, nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, cmd.QuickDrop())
	assert.Empty(t, cmd.Items())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	actor := testActor(t)
	lines := []commands.ItemLine{
		{ProductID: kernel.NewUUID(), ProductName: "Dress Shirt", Quantity: 2, UnitPrice: 900},
	}

	t.Run("empty number", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), actor, kernel.NewUUID(), "", "wash_fold", false, lines)
		require.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
	})

	t.Run("empty service category", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), actor, kernel.NewUUID(), "2026-0003", "", false, lines)
		require.ErrorIs(t, err, commands.ErrServiceCategoryIsRequired)
	})

	t.Run("no items without quick drop", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), actor, kernel.NewUUID(), "2026-0004", "wash_fold", false, nil)
		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("empty order id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, actor, kernel.NewUUID(), "2026-0005", "wash_fold", false, lines)
		require.Error(t, err)
	})
}

func TestCreateOrderCommand_DefaultIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
