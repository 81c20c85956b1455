package services_test

import (
	"testing"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/tenant"
	"distribution/internal/core/domain/services"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberTenant(t *testing.T, prefix, timezone string) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(kernel.NewUUID(), "Distribusi Makmur", prefix, timezone)
	require.NoError(t, err)
	return tn
}

func TestOrderNumberGenerator_Generate(t *testing.T) {
	generator := services.NewOrderNumberGenerator()

	t.Run("third order of the day at 14:30", func(t *testing.T) {
		tn := numberTenant(t, "ORD-", "UTC")
		now := time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC)

		number, err := generator.Generate(tn, 2, now)

		require.NoError(t, err)
		assert.Equal(t, "ORD-031430", number)
	})

	t.Run("first order of the day", func(t *testing.T) {
		tn := numberTenant(t, "ORD-", "UTC")
		now := time.Date(2025, 3, 14, 8, 5, 0, 0, time.UTC)

		number, err := generator.Generate(tn, 0, now)

		require.NoError(t, err)
		assert.Equal(t, "ORD-010805", number)
	})

	t.Run("wall clock is resolved in the tenant timezone", func(t *testing.T) {
		tn := numberTenant(t, "DM-", "Asia/Jakarta")
		// 07:30 UTC is 14:30 in Jakarta (UTC+7).
		now := time.Date(2025, 3, 14, 7, 30, 0, 0, time.UTC)

		number, err := generator.Generate(tn, 0, now)

		require.NoError(t, err)
		assert.Equal(t, "DM-011430", number)
	})

	t.Run("sequence widens past two digits", func(t *testing.T) {
		tn := numberTenant(t, "ORD-", "UTC")
		now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)

		number, err := generator.Generate(tn, 121, now)

		require.NoError(t, err)
		assert.Equal(t, "ORD-1222359", number)
	})

	t.Run("rejects negative prior count", func(t *testing.T) {
		tn := numberTenant(t, "ORD-", "UTC")

		_, err := generator.Generate(tn, -1, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unconstructed tenant", func(t *testing.T) {
		_, err := generator.Generate(&tenant.Tenant{}, 0, time.Now())

		require.ErrorIs(t, err, tenant.ErrTenantIsNotConstructed)
	})
}

func TestOrderNumberGenerator_StartOfDay(t *testing.T) {
	generator := services.NewOrderNumberGenerator()

	t.Run("resolves local midnight in the tenant timezone", func(t *testing.T) {
		tn := numberTenant(t, "ORD-", "Asia/Jakarta")
		// 20:00 UTC on March 13 is already 03:00 March 14 in Jakarta.
		now := time.Date(2025, 3, 13, 20, 0, 0, 0, time.UTC)

		start, err := generator.StartOfDay(tn, now)

		require.NoError(t, err)
		// Jakarta midnight of March 14 is 17:00 UTC on March 13.
		assert.Equal(t, time.Date(2025, 3, 13, 17, 0, 0, 0, time.UTC), start.UTC())
	})

	t.Run("UTC tenant day starts at UTC midnight", func(t *testing.T) {
		tn := numberTenant(t, "ORD-", "UTC")
		now := time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC)

		start, err := generator.StartOfDay(tn, now)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), start)
	})
}
