package workflow_test

import (
	"context"
	"errors"
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettingsSource struct {
	mock.Mock
}

func (m *MockSettingsSource) GetActive(
	ctx context.Context, tenantID kernel.UUID, serviceCategory *string,
) (*workflow.Settings, error) {
	args := m.Called(ctx, tenantID, serviceCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Settings), args.Error(1)
}

func categorySettings(t *testing.T, tenantID kernel.UUID, category *string) *workflow.Settings {
	t.Helper()
	s, err := workflow.NewSettings(kernel.NewUUID(), tenantID, category,
		map[order.Status][]order.Status{
			order.StatusIntake: {order.StatusReady},
		}, nil)
	require.NoError(t, err)
	return s
}

func TestResolver_Resolve(t *testing.T) {
	tenantID := kernel.NewUUID()
	notFound := errs.NewObjectNotFoundError("workflowSettings", "none")

	t.Run("should prefer the category row", func(t *testing.T) {
		category := "dry_clean"
		src := &MockSettingsSource{}
		src.On("GetActive", mock.Anything, tenantID, &category).
			Return(categorySettings(t, tenantID, &category), nil).Once()
		resolver := workflow.NewResolver(src)

		policy, err := resolver.Resolve(t.Context(), tenantID, category)

		require.NoError(t, err)
		assert.Contains(t, policy.Source(), "settings:")
		src.AssertExpectations(t)
		src.AssertNotCalled(t, "GetActive", mock.Anything, tenantID, (*string)(nil))
	})

	t.Run("should fall back to the tenant-wide row", func(t *testing.T) {
		category := "dry_clean"
		src := &MockSettingsSource{}
		src.On("GetActive", mock.Anything, tenantID, &category).
			Return(nil, notFound).Once()
		src.On("GetActive", mock.Anything, tenantID, (*string)(nil)).
			Return(categorySettings(t, tenantID, nil), nil).Once()
		resolver := workflow.NewResolver(src)

		policy, err := resolver.Resolve(t.Context(), tenantID, category)

		require.NoError(t, err)
		assert.Contains(t, policy.Source(), "settings:")
		src.AssertExpectations(t)
	})

	t.Run("should fall back to the default policy", func(t *testing.T) {
		category := "dry_clean"
		src := &MockSettingsSource{}
		src.On("GetActive", mock.Anything, tenantID, &category).
			Return(nil, notFound).Once()
		src.On("GetActive", mock.Anything, tenantID, (*string)(nil)).
			Return(nil, notFound).Once()
		resolver := workflow.NewResolver(src)

		policy, err := resolver.Resolve(t.Context(), tenantID, category)

		require.NoError(t, err)
		assert.Equal(t, "default", policy.Source())
		src.AssertExpectations(t)
	})

	t.Run("should skip the category lookup without a category", func(t *testing.T) {
		src := &MockSettingsSource{}
		src.On("GetActive", mock.Anything, tenantID, (*string)(nil)).
			Return(nil, notFound).Once()
		resolver := workflow.NewResolver(src)

		policy, err := resolver.Resolve(t.Context(), tenantID, "")

		require.NoError(t, err)
		assert.Equal(t, "default", policy.Source())
		src.AssertExpectations(t)
	})

	t.Run("should propagate non-NotFound source errors", func(t *testing.T) {
		category := "dry_clean"
		srcErr := errors.New("connection reset")
		src := &MockSettingsSource{}
		src.On("GetActive", mock.Anything, tenantID, &category).
			Return(nil, srcErr).Once()
		resolver := workflow.NewResolver(src)

		_, err := resolver.Resolve(t.Context(), tenantID, category)

		require.ErrorIs(t, err, srcErr)
		src.AssertNotCalled(t, "GetActive", mock.Anything, tenantID, (*string)(nil))
	})
}
