package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevHubFusionX/food-delivery-backend/internal/core/application/usecases/commands"
	"github.com/DevHubFusionX/food-delivery-backend/internal/pkg/errs"
)

func TestNewCompleteDeliveredOrdersCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCompleteDeliveredOrdersCommand(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cmd.Grace())
}

func TestNewCompleteDeliveredOrdersCommand_NonPositiveGrace(t *testing.T) {
	_, err := commands.NewCompleteDeliveredOrdersCommand(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCompleteDeliveredOrdersCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CompleteDeliveredOrdersCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCompleteDeliveredOrdersCommandIsNotConstructed)
}
