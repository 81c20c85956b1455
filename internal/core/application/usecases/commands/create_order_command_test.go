package commands_test

import (
	"testing"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	tenantID := kernel.NewUUID()
	actor := newActor(t, tenantID, kernel.RoleSalesRep)
	price := decimal.RequireFromString("12.50")
	item := newTestItem(t, kernel.NewUUID(), price, 2)
	amounts := newTestAmounts(t, decimal.RequireFromString("25.00"))

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			actor, kernel.NewUUID(), nil, []*order.Item{item}, amounts, "note", nil,
		)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, actor.UserID(), cmd.SalesRepID(), "sales rep defaults to the acting user")
	})

	t.Run("explicit sales rep", func(t *testing.T) {
		repID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(
			actor, kernel.NewUUID(), &repID, []*order.Item{item}, amounts, "", nil,
		)
		require.NoError(t, err)
		assert.Equal(t, repID, cmd.SalesRepID())
	})

	t.Run("no items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(actor, kernel.NewUUID(), nil, nil, amounts, "", nil)
		require.ErrorIs(t, err, order.ErrItemsAreRequired)
	})

	t.Run("zero actor", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.Actor{}, kernel.NewUUID(), nil, []*order.Item{item}, amounts, "", nil,
		)
		require.Error(t, err)
	})

	t.Run("not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
