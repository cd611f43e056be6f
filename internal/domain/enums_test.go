package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  nil,
		OrderStatusCancelled:  nil,
	}
	all := []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}

	for from, targets := range allowed {
		for _, to := range all {
			want := false
			for _, target := range targets {
				if target == to {
					want = true
				}
			}
			require.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_Examples(t *testing.T) {
	require.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	require.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusProcessing))
	require.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	require.True(t, OrderStatusCancelled.IsTerminal())
	require.False(t, OrderStatus("refunded").IsValid())
}
