package tenant_test

import (
	"testing"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/tenant"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates tenant with explicit prefix and timezone", func(t *testing.T) {
		id := kernel.NewUUID()

		tn, err := tenant.NewTenant(id, "Distribusi Makmur", "DM-", "Asia/Jakarta")

		require.NoError(t, err)
		require.NoError(t, tn.Validate())
		assert.True(t, tn.ID().IsEqual(id))
		assert.Equal(t, "Distribusi Makmur", tn.Name())
		assert.Equal(t, "DM-", tn.OrderPrefix())
		assert.Equal(t, "Asia/Jakarta", tn.Timezone())
		require.NotNil(t, tn.Location())
		assert.Equal(t, "Asia/Jakarta", tn.Location().String())
	})

	t.Run("defaults prefix and timezone when empty", func(t *testing.T) {
		tn, err := tenant.NewTenant(kernel.NewUUID(), "Distribusi Makmur", "", "")

		require.NoError(t, err)
		assert.Equal(t, "ORD-", tn.OrderPrefix())
		assert.Equal(t, "UTC", tn.Timezone())
		assert.Equal(t, time.UTC, tn.Location())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := tenant.NewTenant(kernel.NewUUID(), "", "ORD-", "UTC")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		_, err := tenant.NewTenant(kernel.NewUUID(), "Distribusi Makmur", "ORD-", "Mars/Olympus")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "timezone")
	})

	t.Run("rejects zero ID", func(t *testing.T) {
		_, err := tenant.NewTenant(kernel.UUID{}, "Distribusi Makmur", "ORD-", "UTC")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestTenant_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var tn tenant.Tenant
		require.ErrorIs(t, tn.Validate(), tenant.ErrTenantIsNotConstructed)
	})

	t.Run("nil tenant fails validation", func(t *testing.T) {
		var tn *tenant.Tenant
		require.ErrorIs(t, tn.Validate(), tenant.ErrTenantIsNotConstructed)
	})
}
