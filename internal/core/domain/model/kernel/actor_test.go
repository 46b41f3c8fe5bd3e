package kernel_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	tenantID := kernel.NewUUID()
	userID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		actor, err := kernel.NewActor(tenantID, userID, "front-desk")
		require.NoError(t, err)

		assert.True(t, actor.TenantID().IsEqual(tenantID))
		assert.True(t, actor.UserID().IsEqual(userID))
		assert.Equal(t, "front-desk", actor.UserName())
		require.NoError(t, actor.Validate())
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, userID, "front-desk")
		require.Error(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := kernel.NewActor(tenantID, kernel.UUID{}, "front-desk")
		require.Error(t, err)
	})

	t.Run("missing user name", func(t *testing.T) {
		_, err := kernel.NewActor(tenantID, userID, "")
		require.ErrorIs(t, err, kernel.ErrUserNameIsRequired.Unwrap())
	})
}

func TestActor_ZeroValueIsInvalid(t *testing.T) {
	var actor kernel.Actor

	require.Error(t, actor.Validate())
}
