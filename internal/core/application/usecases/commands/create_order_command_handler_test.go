package commands_test

import (
	"context"
	"errors"
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	lines := []commands.ItemLine{
		{ProductID: kernel.NewUUID(), ProductName: "Dress Shirt", Quantity: 3, UnitPrice: 900, TrackPieces: true},
		{ProductID: kernel.NewUUID(), ProductName: "Bed Sheet", Quantity: 2, UnitPrice: 1500},
	}
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actor, kernel.NewUUID(), "2026-0010", "wash_fold", false, lines)
	require.NoError(t, err)

	var persisted *order.Order
	ordersRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		ordersRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*order.Order)
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order.StatusIntake, persisted.Status())
	assert.Equal(t, int64(3*900+2*1500), persisted.TotalAmount())
	require.Len(t, persisted.Items(), 2)
	assert.Len(t, persisted.Items()[0].Pieces(), 3)
	assert.Empty(t, persisted.Items()[1].Pieces())
	ordersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_QuickDropStartsInDraft(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actor, kernel.NewUUID(), "2026-0011", "wash_fold", true, nil)
	require.NoError(t, err)

	var persisted *order.Order
	ordersRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	ordersRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*order.Order)
		}).
		Return(nil).Once()

	// Act
	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order.StatusDraft, persisted.Status())
	assert.True(t, persisted.IsQuickDrop())
	assert.Empty(t, persisted.Items())
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	lines := []commands.ItemLine{
		{ProductID: kernel.NewUUID(), ProductName: "Jacket", Quantity: 1, UnitPrice: 2500},
	}
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actor, kernel.NewUUID(), "2026-0012", "dry_clean", false, lines)
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	ordersRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Return(errors.New("add error")).Once()

	// Act
	handler := commands.NewCreateOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	ordersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)

	// Act
	err := handler.Handle(ctx, commands.CreateOrderCommand{})

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
