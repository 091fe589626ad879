package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

func TestNewStockMovement(t *testing.T) {
	itemID := uuid.New()

	t.Run("enforces balance invariant", func(t *testing.T) {
		_, err := NewStockMovement(itemID, MovementTypeSale,
			decimal.NewFromInt(-10), decimal.NewFromInt(100), decimal.NewFromInt(80))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("creates consistent movement", func(t *testing.T) {
		m, err := NewStockMovement(itemID, MovementTypeSale,
			decimal.NewFromInt(-10), decimal.NewFromInt(100), decimal.NewFromInt(90))
		require.NoError(t, err)
		assert.False(t, m.IsInbound())
		assert.True(t, m.StockAfter.Equal(m.StockBefore.Add(m.Quantity)))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockMovement(itemID, MovementTypeAdjustment,
			decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(5))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewStockMovement(itemID, MovementType("teleport"),
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestMovementTypeIsValid(t *testing.T) {
	valid := []MovementType{
		MovementTypePurchase, MovementTypeSale, MovementTypeReturnIn,
		MovementTypeReturnOut, MovementTypeAdjustment, MovementTypeTransferIn,
		MovementTypeTransferOut, MovementTypeDamage, MovementTypeExpired,
		MovementTypeCount,
	}
	for _, mt := range valid {
		assert.True(t, mt.IsValid(), mt.String())
	}
	assert.False(t, MovementType("").IsValid())
	assert.False(t, MovementType("restock").IsValid())
}
