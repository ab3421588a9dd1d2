package dispatch

import (
	"errors"
	"strings"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

var (
	// ErrAgentUnavailable means the explicitly requested agent does not
	// exist or is currently assigned to another order.
	ErrAgentUnavailable = errors.New("selected agent is not available")
	// ErrNoAgentAvailable means no agent at all is free to take the order.
	ErrNoAgentAvailable = errors.New("no delivery agent available")
)

// AreaFragment extracts the area portion of a street address: the second
// comma-delimited segment, trimmed. Returns "" when the address has no
// such segment. This is a weak proxy for "same neighbourhood" and is a
// placeholder policy, not a guarantee.
func AreaFragment(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SelectAgent picks the delivery agent for a new order. An explicit id
// must name a currently available agent. Otherwise agents located near
// the restaurant (location text containing the address's area fragment)
// are preferred, falling back to any available agent.
//
// Callers must run this inside the same transaction that flips the
// chosen agent's availability, so concurrent orders cannot double-assign.
func SelectAgent(tx *gorm.DB, restaurantAddress string, explicitID *uint) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent

	if explicitID != nil {
		err := tx.Where("id = ? AND is_available = ?", *explicitID, true).First(&agent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentUnavailable
		}
		if err != nil {
			return nil, err
		}
		return &agent, nil
	}

	if fragment := AreaFragment(restaurantAddress); fragment != "" {
		err := tx.Where("is_available = ? AND current_location LIKE ?", true, "%"+fragment+"%").
			First(&agent).Error
		if err == nil {
			return &agent, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := tx.Where("is_available = ?", true).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoAgentAvailable
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}
