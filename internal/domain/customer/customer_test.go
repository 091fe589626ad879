package customer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

func TestTierForPoints(t *testing.T) {
	cases := []struct {
		points int
		tier   LoyaltyTier
	}{
		{0, TierBronze},
		{999, TierBronze},
		{1000, TierSilver},
		{4999, TierSilver},
		{5000, TierGold},
		{14999, TierGold},
		{15000, TierPlatinum},
		{49999, TierPlatinum},
		{50000, TierDiamond},
		{120000, TierDiamond},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestAddPoints(t *testing.T) {
	account := &CustomerAccount{BaseEntity: shared.NewBaseEntity(), LoyaltyTier: TierBronze}
	account.AddPoints(1200)
	assert.Equal(t, 1200, account.LoyaltyPoints)
	assert.Equal(t, 1200, account.LifetimePoints)
	assert.Equal(t, TierSilver, account.LoyaltyTier)

	// Awards of zero or less are ignored.
	account.AddPoints(0)
	account.AddPoints(-5)
	assert.Equal(t, 1200, account.LoyaltyPoints)
}

func TestRedeemPoints(t *testing.T) {
	account := &CustomerAccount{BaseEntity: shared.NewBaseEntity(), LoyaltyTier: TierBronze}
	account.AddPoints(1500)

	assert.NoError(t, account.RedeemPoints(500))
	assert.Equal(t, 1000, account.LoyaltyPoints)
	assert.Equal(t, 1500, account.LifetimePoints, "spend never reduces lifetime points")
	assert.Equal(t, TierSilver, account.LoyaltyTier, "spend never demotes the tier")

	err := account.RedeemPoints(2000)
	assert.ErrorIs(t, err, shared.ErrInsufficientPoints)
	assert.Equal(t, 1000, account.LoyaltyPoints)
}

func TestReversePoints(t *testing.T) {
	t.Run("reverses and re-derives tier", func(t *testing.T) {
		account := &CustomerAccount{BaseEntity: shared.NewBaseEntity(), LoyaltyTier: TierBronze}
		account.AddPoints(1200)

		clamped := account.ReversePoints(300)
		assert.False(t, clamped)
		assert.Equal(t, 900, account.LoyaltyPoints)
		assert.Equal(t, 900, account.LifetimePoints)
		assert.Equal(t, TierBronze, account.LoyaltyTier)
	})

	t.Run("clamps at zero instead of failing", func(t *testing.T) {
		account := &CustomerAccount{BaseEntity: shared.NewBaseEntity(), LoyaltyTier: TierBronze}
		account.AddPoints(100)
		account.LoyaltyPoints = 50 // part already spent

		clamped := account.ReversePoints(100)
		assert.True(t, clamped)
		assert.Equal(t, 0, account.LoyaltyPoints)
		assert.Equal(t, 0, account.LifetimePoints)
	})
}

func TestRecordPurchase(t *testing.T) {
	account := &CustomerAccount{BaseEntity: shared.NewBaseEntity(), LoyaltyTier: TierBronze}
	now := time.Now()

	account.RecordPurchase(decimal.NewFromInt(100), now)
	account.RecordPurchase(decimal.NewFromInt(200), now)

	assert.Equal(t, 2, account.TotalPurchases)
	assert.True(t, account.TotalSpent.Equal(decimal.NewFromInt(300)))
	assert.True(t, account.AverageOrderValue.Equal(decimal.NewFromInt(150)))
	assert.NotNil(t, account.LastPurchaseDate)
}
