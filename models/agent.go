package models

import "time"

// DeliveryAgent is available XOR assigned to an undelivered order.
// The flag is flipped inside the same transaction that creates or
// delivers an order, never on its own.
type DeliveryAgent struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Phone           string    `json:"phone"`
	CurrentLocation string    `json:"current_location"`
	IsAvailable     bool      `json:"is_available" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
