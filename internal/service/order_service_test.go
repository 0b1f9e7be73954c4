package service

import (
	"testing"

	"shoestore/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed},
		{models.OrderStatusConfirmed, models.OrderStatusPreparing},
		{models.OrderStatusPreparing, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled},
		{models.OrderStatusPreparing, models.OrderStatusCancelled},
		{models.OrderStatusConfirmed, models.OrderStatusRefunded},
		{models.OrderStatusDelivered, models.OrderStatusRefunded},
	}
	for _, tc := range allowed {
		if !transitionAllowed(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusConfirmed, models.OrderStatusPending},
		{models.OrderStatusPending, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusCancelled},
		{models.OrderStatusDelivered, models.OrderStatusCancelled},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed},
		{models.OrderStatusRefunded, models.OrderStatusPending},
		{models.OrderStatusPending, models.OrderStatusPending},
	}
	for _, tc := range denied {
		if transitionAllowed(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}
