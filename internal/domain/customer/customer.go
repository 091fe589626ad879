package customer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// LoyaltyTier represents a customer loyalty tier
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"   // 1000+ lifetime points
	TierGold     LoyaltyTier = "gold"     // 5000+ lifetime points
	TierPlatinum LoyaltyTier = "platinum" // 15000+ lifetime points
	TierDiamond  LoyaltyTier = "diamond"  // 50000+ lifetime points
)

// TierForPoints returns the tier earned by a lifetime point total.
// The tier is a pure function of lifetime points, which only ever grow
// on award - spending points never demotes a customer.
func TierForPoints(lifetimePoints int) LoyaltyTier {
	switch {
	case lifetimePoints >= 50000:
		return TierDiamond
	case lifetimePoints >= 15000:
		return TierPlatinum
	case lifetimePoints >= 5000:
		return TierGold
	case lifetimePoints >= 1000:
		return TierSilver
	default:
		return TierBronze
	}
}

// CustomerAccount holds the loyalty balance and purchase aggregates for
// one customer profile. Profile CRUD lives outside the core; the sale
// processor is the only writer of the loyalty fields.
type CustomerAccount struct {
	shared.BaseEntity
	FirstName string `gorm:"type:varchar(50);not null"`
	LastName  string `gorm:"type:varchar(50);not null"`
	Phone     string `gorm:"type:varchar(20);uniqueIndex"`

	LoyaltyTier    LoyaltyTier `gorm:"type:varchar(20);not null;default:'bronze'"`
	LoyaltyPoints  int         `gorm:"not null;default:0"`
	LifetimePoints int         `gorm:"not null;default:0"`

	TotalPurchases    int             `gorm:"not null;default:0"`
	TotalSpent        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	AverageOrderValue decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LastPurchaseDate  *time.Time

	IsActive bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerAccount) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *CustomerAccount) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AddPoints awards loyalty points and re-derives the tier
func (c *CustomerAccount) AddPoints(points int) {
	if points <= 0 {
		return
	}
	c.LoyaltyPoints += points
	c.LifetimePoints += points
	c.LoyaltyTier = TierForPoints(c.LifetimePoints)
	c.Touch()
}

// RedeemPoints spends loyalty points. Lifetime points and tier are
// untouched by redemption.
func (c *CustomerAccount) RedeemPoints(points int) error {
	if points <= 0 {
		return nil
	}
	if points > c.LoyaltyPoints {
		return shared.NewDomainErrorf("INSUFFICIENT_POINTS",
			"insufficient loyalty points: balance %d, requested %d", c.LoyaltyPoints, points)
	}
	c.LoyaltyPoints -= points
	c.Touch()
	return nil
}

// ReversePoints takes back points earned on a voided sale. Balances are
// clamped at zero instead of failing, so a void always succeeds; the
// return value reports whether clamping occurred.
func (c *CustomerAccount) ReversePoints(points int) (clamped bool) {
	if points <= 0 {
		return false
	}
	c.LoyaltyPoints -= points
	c.LifetimePoints -= points
	if c.LoyaltyPoints < 0 {
		c.LoyaltyPoints = 0
		clamped = true
	}
	if c.LifetimePoints < 0 {
		c.LifetimePoints = 0
		clamped = true
	}
	c.LoyaltyTier = TierForPoints(c.LifetimePoints)
	c.Touch()
	return clamped
}

// RecordPurchase updates the running purchase aggregates for a sale
func (c *CustomerAccount) RecordPurchase(total decimal.Decimal, at time.Time) {
	c.TotalPurchases++
	c.TotalSpent = c.TotalSpent.Add(total)
	c.AverageOrderValue = c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalPurchases))).Round(2)
	c.LastPurchaseDate = &at
	c.Touch()
}
