package order_test

import (
	"testing"

	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmounts(t *testing.T) {
	t.Run("creates amounts with valid values", func(t *testing.T) {
		amounts, err := order.NewAmounts(
			decimal.RequireFromString("100.00"),
			decimal.RequireFromString("10.00"),
			decimal.RequireFromString("9.00"),
			decimal.RequireFromString("99.00"),
		)

		require.NoError(t, err)
		require.NoError(t, amounts.Validate())
		assert.True(t, amounts.Subtotal().Equal(decimal.RequireFromString("100.00")))
		assert.True(t, amounts.Discount().Equal(decimal.RequireFromString("10.00")))
		assert.True(t, amounts.Tax().Equal(decimal.RequireFromString("9.00")))
		assert.True(t, amounts.Total().Equal(decimal.RequireFromString("99.00")))
	})

	t.Run("allows zero values", func(t *testing.T) {
		amounts, err := order.NewAmounts(
			decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.NoError(t, err)
		require.NoError(t, amounts.Validate())
	})

	t.Run("total is stored as given, not recomputed", func(t *testing.T) {
		// Discounts and taxes are resolved by the caller; a total that does
		// not equal subtotal-discount+tax is still accepted.
		amounts, err := order.NewAmounts(
			decimal.NewFromInt(100),
			decimal.Zero,
			decimal.Zero,
			decimal.NewFromInt(85),
		)

		require.NoError(t, err)
		assert.True(t, amounts.Total().Equal(decimal.NewFromInt(85)))
	})

	t.Run("rejects negative subtotal", func(t *testing.T) {
		_, err := order.NewAmounts(
			decimal.NewFromInt(-1), decimal.Zero, decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "subtotal")
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := order.NewAmounts(
			decimal.Zero, decimal.NewFromInt(-5), decimal.Zero, decimal.Zero,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "discountAmount")
	})

	t.Run("rejects negative total", func(t *testing.T) {
		_, err := order.NewAmounts(
			decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(-10),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("aggregates every negative field in one error", func(t *testing.T) {
		_, err := order.NewAmounts(
			decimal.NewFromInt(-1),
			decimal.NewFromInt(-1),
			decimal.NewFromInt(-1),
			decimal.NewFromInt(-1),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtotal")
		assert.Contains(t, err.Error(), "discountAmount")
		assert.Contains(t, err.Error(), "taxAmount")
		assert.Contains(t, err.Error(), "total")
	})
}

func TestAmounts_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var amounts order.Amounts
		require.ErrorIs(t, amounts.Validate(), order.ErrAmountsAreNotConstructed)
	})
}
