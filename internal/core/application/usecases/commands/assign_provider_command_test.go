package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignProviderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewAssignProviderCommand(orderID, providerID, actorID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.ProviderID().IsEqual(providerID))
		assert.True(t, cmd.ActorID().IsEqual(actorID))
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewAssignProviderCommand(invalid, providerID, actorID)

		require.Error(t, err)
	})

	t.Run("should fail with invalid provider id", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewAssignProviderCommand(orderID, invalid, actorID)

		require.Error(t, err)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var cmd commands.AssignProviderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrAssignProviderCommandIsNotConstructed)
	})
}
