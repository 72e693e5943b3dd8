package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tokoku/internal/models"
	"github.com/Skotchmaster/tokoku/internal/transport"
)

func validCheckout() transport.CheckoutRequest {
	return transport.CheckoutRequest{
		UserID:        1,
		SelectedItems: []transport.CheckoutItem{{ProductName: "A", TotalPrice: 10}},
		TotalBayar:    10,
		Address:       "X",
	}
}

func TestOrderService_Checkout(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	svc := &OrderService{Repo: r, Events: pub}
	ctx := context.Background()

	order, err := svc.Checkout(ctx, validCheckout())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPacked, order.Status)
	require.Len(t, order.Items, 1)
	assert.EqualValues(t, 1, order.Items[0].Quantity)
	assert.Equal(t, float64(10), order.Items[0].ProductPrice)

	var orders, items int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 1, items)
	assert.Equal(t, []string{"order_created"}, pub.types())
}

func TestOrderService_Checkout_Validation(t *testing.T) {
	svc := &OrderService{Repo: newTestRepo(t)}

	tests := []struct {
		name   string
		mutate func(*transport.CheckoutRequest)
	}{
		{name: "no user", mutate: func(r *transport.CheckoutRequest) { r.UserID = 0 }},
		{name: "no items", mutate: func(r *transport.CheckoutRequest) { r.SelectedItems = nil }},
		{name: "no total", mutate: func(r *transport.CheckoutRequest) { r.TotalBayar = 0 }},
		{name: "no address", mutate: func(r *transport.CheckoutRequest) { r.Address = " " }},
		{name: "item without name", mutate: func(r *transport.CheckoutRequest) { r.SelectedItems[0].ProductName = "" }},
		{name: "negative price", mutate: func(r *transport.CheckoutRequest) { r.SelectedItems[0].TotalPrice = -1 }},
		{name: "negative quantity", mutate: func(r *transport.CheckoutRequest) { r.SelectedItems[0].Quantity = intPtr(-2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckout()
			tt.mutate(&req)
			_, err := svc.Checkout(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOrderService_AdvanceStatus(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	order, err := svc.Checkout(ctx, validCheckout())
	require.NoError(t, err)

	_, err = svc.AdvanceStatus(ctx, order.ID, "delivered")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AdvanceStatus(ctx, order.ID, "lost")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.AdvanceStatus(ctx, order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	got, err = svc.AdvanceStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	_, err = svc.AdvanceStatus(ctx, order.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AdvanceStatus(ctx, order.ID+1, "")
	assert.ErrorIs(t, err, ErrNotFound)

	feed, err := svc.Notifications(ctx, 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.OrderStatusDelivered, feed[0].Status)
}
