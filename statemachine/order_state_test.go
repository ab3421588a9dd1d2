package statemachine

import (
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		allowed bool
	}{
		{"customer pays in full", models.StatusPending, models.StatusPaid, "customer", true},
		{"customer opens split bill", models.StatusPending, models.StatusPartiallyPaid, "customer", true},
		{"system settles split", models.StatusPartiallyPaid, models.StatusPaid, "system", true},
		{"admin delivers pending", models.StatusPending, models.StatusDelivered, "admin", true},
		{"admin delivers paid", models.StatusPaid, models.StatusDelivered, "admin", true},
		{"admin cancels partially paid", models.StatusPartiallyPaid, models.StatusCancelled, "admin", true},
		{"customer cannot deliver", models.StatusPaid, models.StatusDelivered, "customer", false},
		{"customer cannot settle a split", models.StatusPartiallyPaid, models.StatusPaid, "customer", false},
		{"system cannot pay a pending order", models.StatusPending, models.StatusPaid, "system", false},
		{"delivered is terminal", models.StatusDelivered, models.StatusCancelled, "admin", false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusPaid, "system", false},
		{"no skipping back to pending", models.StatusPaid, models.StatusPending, "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{
			models.StatusPaid,
			models.StatusPartiallyPaid,
			models.StatusDelivered,
			models.StatusCancelled,
		},
		ValidTransitionsFrom(models.StatusPending),
	)

	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusPartiallyPaid, models.StatusPaid,
		models.StatusDelivered, models.StatusCancelled,
	} {
		assert.True(t, IsValidStatus(s), string(s))
	}
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
}
