package purchasing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

func newTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("PO-20260830-AB12", uuid.New())
	require.NoError(t, err)
	return order
}

func TestAddItem(t *testing.T) {
	order := newTestOrder(t)

	_, err := order.AddItem(uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(5))
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), decimal.NewFromInt(2), decimal.NewFromInt(25))
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(100)))

	_, err = order.AddItem(uuid.New(), decimal.Zero, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestChangeStatus(t *testing.T) {
	t.Run("moves freely between non-terminal states", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusOrdered))
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled))
		require.NoError(t, order.ChangeStatus(OrderStatusPartial))
	})

	t.Run("received is terminal", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusReceived))

		err := order.ChangeStatus(OrderStatusPending)
		assert.ErrorIs(t, err, ErrOrderAlreadyReceived)
		err = order.ChangeStatus(OrderStatusReceived)
		assert.ErrorIs(t, err, ErrOrderAlreadyReceived)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.ChangeStatus(OrderStatus("shipped"))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestMarkReceived(t *testing.T) {
	order := newTestOrder(t)
	_, err := order.AddItem(uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(5))
	require.NoError(t, err)

	now := time.Now()
	order.MarkReceived(now)

	require.NotNil(t, order.ReceivedDate)
	for _, line := range order.Items {
		assert.True(t, line.ReceivedQuantity.Equal(line.Quantity))
	}
}

func TestIsDeletable(t *testing.T) {
	order := newTestOrder(t)
	assert.True(t, order.IsDeletable())

	require.NoError(t, order.ChangeStatus(OrderStatusCancelled))
	assert.True(t, order.IsDeletable())

	require.NoError(t, order.ChangeStatus(OrderStatusOrdered))
	assert.False(t, order.IsDeletable())

	require.NoError(t, order.ChangeStatus(OrderStatusReceived))
	assert.False(t, order.IsDeletable())
}
