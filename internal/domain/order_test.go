package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderValidTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusProvisioning, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusActive, false},
		{OrderStatusProvisioning, OrderStatusActive, true},
		{OrderStatusProvisioning, OrderStatusCancelled, true},
		{OrderStatusProvisioning, OrderStatusPending, false},
		{OrderStatusActive, OrderStatusCancelled, true},
		{OrderStatusActive, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusActive, false},
	}
	for _, tt := range tests {
		order := &Order{Status: tt.from}
		assert.Equal(t, tt.want, order.ValidTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
