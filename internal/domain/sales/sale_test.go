package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

func TestMarkVoid(t *testing.T) {
	sale := &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: "RCP-MAIN-20260830120000-A1B2",
		Status:        SaleStatusCompleted,
	}

	require.NoError(t, sale.MarkVoid())
	assert.Equal(t, SaleStatusVoid, sale.Status)

	err := sale.MarkVoid()
	assert.ErrorIs(t, err, ErrAlreadyVoided)
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{
		PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer,
		PaymentMethodMobile, PaymentMethodCredit, PaymentMethodSplit,
	} {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, PaymentMethod("barter").IsValid())
}
