package models

import "time"

// Review holds a 1-5 rating for a restaurant, optionally tied to a
// specific order. At most one review exists per (user, order); a
// repeat submission updates the existing row.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	OrderID      *uint     `json:"order_id"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	ReviewDate   time.Time `json:"review_date"`
}
