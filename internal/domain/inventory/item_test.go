package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

func TestNewInventoryItem(t *testing.T) {
	locationID := uuid.New()

	t.Run("creates valid item", func(t *testing.T) {
		item, err := NewInventoryItem("SKU-1", "Widget", locationID, decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.Equal(t, "SKU-1", item.SKU)
		assert.Equal(t, "pcs", item.Unit)
		assert.True(t, item.IsActive)
		assert.True(t, item.CurrentStock.IsZero())
	})

	t.Run("rejects empty sku", func(t *testing.T) {
		_, err := NewInventoryItem("", "Widget", locationID, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects non-positive selling price", func(t *testing.T) {
		_, err := NewInventoryItem("SKU-1", "Widget", locationID, decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestApplyStockDelta(t *testing.T) {
	locationID := uuid.New()

	t.Run("rejects going negative when disallowed", func(t *testing.T) {
		item, err := NewInventoryItem("SKU-1", "Widget", locationID, decimal.NewFromInt(100))
		require.NoError(t, err)
		item.CurrentStock = decimal.NewFromInt(5)

		before, after, err := item.ApplyStockDelta(decimal.NewFromInt(-10))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, before.Equal(decimal.NewFromInt(5)))
		assert.True(t, after.Equal(decimal.NewFromInt(5)))
		assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(5)), "item must be untouched on rejection")
	})

	t.Run("allows going negative when flagged", func(t *testing.T) {
		item, err := NewInventoryItem("SKU-2", "Widget", locationID, decimal.NewFromInt(100))
		require.NoError(t, err)
		item.CurrentStock = decimal.NewFromInt(5)
		item.AllowNegativeStock = true

		before, after, err := item.ApplyStockDelta(decimal.NewFromInt(-10))
		require.NoError(t, err)
		assert.True(t, before.Equal(decimal.NewFromInt(5)))
		assert.True(t, after.Equal(decimal.NewFromInt(-5)))
		assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(-5)))
	})

	t.Run("increase always succeeds", func(t *testing.T) {
		item, err := NewInventoryItem("SKU-3", "Widget", locationID, decimal.NewFromInt(100))
		require.NoError(t, err)

		_, after, err := item.ApplyStockDelta(decimal.NewFromInt(7))
		require.NoError(t, err)
		assert.True(t, after.Equal(decimal.NewFromInt(7)))
	})
}

func TestAvailableStock(t *testing.T) {
	item, err := NewInventoryItem("SKU-1", "Widget", uuid.New(), decimal.NewFromInt(100))
	require.NoError(t, err)
	item.CurrentStock = decimal.NewFromInt(10)
	item.ReservedStock = decimal.NewFromInt(3)
	assert.True(t, item.AvailableStock().Equal(decimal.NewFromInt(7)))
}

func TestIsLowStock(t *testing.T) {
	item, err := NewInventoryItem("SKU-1", "Widget", uuid.New(), decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.False(t, item.IsLowStock(), "no minimum configured")

	min := decimal.NewFromInt(10)
	item.MinStockLevel = &min
	item.CurrentStock = decimal.NewFromInt(10)
	assert.True(t, item.IsLowStock())

	item.CurrentStock = decimal.NewFromInt(11)
	assert.False(t, item.IsLowStock())
}
