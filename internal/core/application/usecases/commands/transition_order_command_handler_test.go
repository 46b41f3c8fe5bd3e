package commands_test

import (
	"context"
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusGuarded(
	ctx context.Context, aggregate *order.Order, expectedFrom order.Status,
) error {
	args := m.Called(ctx, aggregate, expectedFrom)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPieceCode(
	ctx context.Context, tenantID kernel.UUID, code string,
) (*order.Order, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AppendHistory(ctx context.Context, entry order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockWorkflowSettingsRepository struct{ mock.Mock }

func (m *MockWorkflowSettingsRepository) GetActive(
	ctx context.Context, tenantID kernel.UUID, serviceCategory *string,
) (*workflow.Settings, error) {
	args := m.Called(ctx, tenantID, serviceCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Settings), args.Error(1)
}

func (m *MockWorkflowSettingsRepository) Add(ctx context.Context, settings *workflow.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WorkflowSettingsRepository() ports.WorkflowSettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkflowSettingsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func testActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.NewUUID(), "Test Operator")
	require.NoError(t, err)
	return actor
}

func intakeOrder(t *testing.T, actor kernel.Actor) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), actor.TenantID(), kernel.NewUUID(),
		"2026-0001", "wash_fold", false)
	require.NoError(t, err)
	return aggregate
}

// expectDefaultPolicy wires the settings repo so the resolver falls through
// to the built-in policy for both lookup levels.
func expectDefaultPolicy(settingsRepo *MockWorkflowSettingsRepository, tenantID kernel.UUID) {
	settingsRepo.On("GetActive", mock.Anything, tenantID, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("workflowSettings", tenantID)).Twice()
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	aggregate := intakeOrder(t, actor)

	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), actor, order.StatusPreparing, "started prep")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	settingsRepo := new(MockWorkflowSettingsRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	expectDefaultPolicy(settingsRepo, actor.TenantID())
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("WorkflowSettingsRepository").Return(settingsRepo).Once(),
		ordersRepo.On("Get", mock.Anything, actor.TenantID(), aggregate.ID()).Return(aggregate, nil).Once(),
		ordersRepo.On("UpdateStatusGuarded", mock.Anything, aggregate, order.StatusIntake).Return(nil).Once(),
		ordersRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	handler := commands.NewTransitionOrderCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, result.Order.Status())
	assert.Equal(t, order.StatusIntake, result.History.From())
	assert.Equal(t, order.StatusPreparing, result.History.To())
	assert.Equal(t, "started prep", result.History.Notes())
	assert.Equal(t, actor.UserName(), result.History.ChangedBy())
	ordersRepo.AssertExpectations(t)
	settingsRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_IllegalTransition(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	aggregate := intakeOrder(t, actor)

	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), actor, order.StatusDelivered, "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	settingsRepo := new(MockWorkflowSettingsRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	expectDefaultPolicy(settingsRepo, actor.TenantID())
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("WorkflowSettingsRepository").Return(settingsRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	ordersRepo.On("Get", mock.Anything, actor.TenantID(), aggregate.ID()).Return(aggregate, nil).Once()

	// Act
	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	var illegal *errs.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "intake", illegal.From)
	assert.Equal(t, "delivered", illegal.To)
	assert.Contains(t, illegal.Allowed, "preparing")
	assert.Contains(t, illegal.Allowed, "cancelled")
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_GateBlocked(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)

	item, err := order.NewItem(kernel.NewUUID(), "Dress Shirt", 2, 900)
	require.NoError(t, err)
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), actor.TenantID(), kernel.NewUUID(),
		"2026-0002", order.StatusQA, "dry_clean",
		false, false, false, false,
		nil, nil, 1800, nil,
		[]*order.Item{item})
	require.NoError(t, err)
	require.NoError(t, aggregate.GeneratePieces(item.ID(), 2))

	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), actor, order.StatusReady, "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	settingsRepo := new(MockWorkflowSettingsRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	expectDefaultPolicy(settingsRepo, actor.TenantID())
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("WorkflowSettingsRepository").Return(settingsRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	ordersRepo.On("Get", mock.Anything, actor.TenantID(), aggregate.ID()).Return(aggregate, nil).Once()

	// Act
	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrGateBlocked)

	var blocked *errs.GateBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "ready", blocked.Target)
	assert.NotEmpty(t, blocked.Blockers)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_RetriesOnceOnConcurrentModification(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	first := intakeOrder(t, actor)
	second := intakeOrder(t, actor)

	cmd, err := commands.NewTransitionOrderCommand(first.ID(), actor, order.StatusPreparing, "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	settingsRepo := new(MockWorkflowSettingsRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	settingsRepo.On("GetActive", mock.Anything, actor.TenantID(), mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("workflowSettings", actor.TenantID())).Times(4)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("WorkflowSettingsRepository").Return(settingsRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	ordersRepo.On("Get", mock.Anything, actor.TenantID(), first.ID()).Return(first, nil).Once()
	ordersRepo.On("UpdateStatusGuarded", mock.Anything, first, order.StatusIntake).
		Return(errs.NewConcurrentModificationError("order", first.ID())).Once()
	ordersRepo.On("Get", mock.Anything, actor.TenantID(), first.ID()).Return(second, nil).Once()
	ordersRepo.On("UpdateStatusGuarded", mock.Anything, second, order.StatusIntake).Return(nil).Once()
	ordersRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once()

	// Act
	handler := commands.NewTransitionOrderCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, result.Order.Status())
	ordersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SecondConflictFails(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	first := intakeOrder(t, actor)
	second := intakeOrder(t, actor)

	cmd, err := commands.NewTransitionOrderCommand(first.ID(), actor, order.StatusPreparing, "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	settingsRepo := new(MockWorkflowSettingsRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	settingsRepo.On("GetActive", mock.Anything, actor.TenantID(), mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("workflowSettings", actor.TenantID())).Times(4)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("WorkflowSettingsRepository").Return(settingsRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	ordersRepo.On("Get", mock.Anything, actor.TenantID(), first.ID()).Return(first, nil).Once()
	ordersRepo.On("UpdateStatusGuarded", mock.Anything, first, order.StatusIntake).
		Return(errs.NewConcurrentModificationError("order", first.ID())).Once()
	ordersRepo.On("Get", mock.Anything, actor.TenantID(), first.ID()).Return(second, nil).Once()
	ordersRepo.On("UpdateStatusGuarded", mock.Anything, second, order.StatusIntake).
		Return(errs.NewConcurrentModificationError("order", first.ID())).Once()

	// Act
	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	ordersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	actor := testActor(t)
	orderID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, order.StatusPreparing, "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	settingsRepo := new(MockWorkflowSettingsRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("WorkflowSettingsRepository").Return(settingsRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	ordersRepo.On("Get", mock.Anything, actor.TenantID(), orderID).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()

	// Act
	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	factory := new(MockUoWFactory)
	handler := commands.NewTransitionOrderCommandHandler(factory)

	// Act
	_, err := handler.Handle(ctx, commands.TransitionOrderCommand{})

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
}
