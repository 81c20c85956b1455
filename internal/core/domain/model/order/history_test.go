package order_test

import (
	"testing"
	"time"

	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryEntry(t *testing.T) {
	occurredAt := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	t.Run("creates transition entry", func(t *testing.T) {
		from := order.StatusPending
		changedBy := kernel.NewUUID()

		entry, err := order.NewHistoryEntry(kernel.NewUUID(), &from, order.StatusConfirmed, changedBy, "approved by phone", occurredAt)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		require.NotNil(t, entry.FromStatus())
		assert.Equal(t, order.StatusPending, *entry.FromStatus())
		assert.Equal(t, order.StatusConfirmed, entry.ToStatus())
		assert.True(t, entry.ChangedBy().IsEqual(changedBy))
		assert.Equal(t, "approved by phone", entry.Notes())
		assert.Equal(t, occurredAt, entry.OccurredAt())
	})

	t.Run("creates creation entry with nil from status", func(t *testing.T) {
		entry, err := order.NewHistoryEntry(kernel.NewUUID(), nil, order.StatusPending, kernel.NewUUID(), "", occurredAt)

		require.NoError(t, err)
		assert.Nil(t, entry.FromStatus())
		assert.Equal(t, order.StatusPending, entry.ToStatus())
	})

	t.Run("copies the from status", func(t *testing.T) {
		from := order.StatusPending

		entry, err := order.NewHistoryEntry(kernel.NewUUID(), &from, order.StatusConfirmed, kernel.NewUUID(), "", occurredAt)
		require.NoError(t, err)

		from = order.StatusDelivered

		assert.Equal(t, order.StatusPending, *entry.FromStatus())
	})

	t.Run("rejects invalid target status", func(t *testing.T) {
		_, err := order.NewHistoryEntry(kernel.NewUUID(), nil, order.Status("shipped"), kernel.NewUUID(), "", occurredAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects invalid from status", func(t *testing.T) {
		from := order.Status("shipped")

		_, err := order.NewHistoryEntry(kernel.NewUUID(), &from, order.StatusConfirmed, kernel.NewUUID(), "", occurredAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects zero occurrence time", func(t *testing.T) {
		_, err := order.NewHistoryEntry(kernel.NewUUID(), nil, order.StatusPending, kernel.NewUUID(), "", time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "occurredAt")
	})

	t.Run("rejects zero changedBy", func(t *testing.T) {
		_, err := order.NewHistoryEntry(kernel.NewUUID(), nil, order.StatusPending, kernel.UUID{}, "", occurredAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestHistoryEntry_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var entry order.HistoryEntry
		require.ErrorIs(t, entry.Validate(), order.ErrHistoryEntryIsNotConstructed)
	})
}
