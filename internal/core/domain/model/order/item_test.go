package order_test

import (
	"testing"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates item with quoted price and line total", func(t *testing.T) {
		id := kernel.NewUUID()
		productID := kernel.NewUUID()

		item, err := order.NewItem(id, productID, decimal.RequireFromString("12.50"), 4, decimal.RequireFromString("50.00"))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(id))
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.True(t, item.UnitPrice().Equal(decimal.RequireFromString("12.50")))
		assert.Equal(t, 4, item.QtyOrdered())
		assert.Equal(t, 0, item.QtyPicked())
		assert.Equal(t, 0, item.QtyDelivered())
		assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(10), 0, decimal.Zero)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(10), -3, decimal.Zero)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(-1), 1, decimal.Zero)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unitPrice")
	})

	t.Run("rejects zero product ID", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.UUID{}, decimal.NewFromInt(10), 1, decimal.NewFromInt(10))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreItem(t *testing.T) {
	t.Run("restores fulfillment progress", func(t *testing.T) {
		item, err := order.RestoreItem(
			kernel.NewUUID(),
			kernel.NewUUID(),
			decimal.RequireFromString("7.25"),
			10, 8, 6,
			decimal.RequireFromString("72.50"),
		)

		require.NoError(t, err)
		assert.Equal(t, 10, item.QtyOrdered())
		assert.Equal(t, 8, item.QtyPicked())
		assert.Equal(t, 6, item.QtyDelivered())
	})

	t.Run("rejects negative picked quantity", func(t *testing.T) {
		_, err := order.RestoreItem(
			kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(1),
			1, -1, 0,
			decimal.NewFromInt(1),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "qtyPicked")
	})

	t.Run("rejects negative delivered quantity", func(t *testing.T) {
		_, err := order.RestoreItem(
			kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(1),
			1, 0, -2,
			decimal.NewFromInt(1),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "qtyDelivered")
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}
