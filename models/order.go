package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending       OrderStatus = "pending"
	StatusPartiallyPaid OrderStatus = "partially paid"
	StatusPaid          OrderStatus = "paid"
	StatusDelivered     OrderStatus = "delivered"
	StatusCancelled     OrderStatus = "cancelled"
)

type Order struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"not null"`
	User            User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID    uint           `json:"restaurant_id" gorm:"not null"`
	Restaurant      Restaurant     `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	AgentID         *uint          `json:"agent_id"`
	Agent           *DeliveryAgent `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
	OrderDate       time.Time      `json:"order_date"`
	TotalAmount     float64        `json:"total_amount"`
	Status          OrderStatus    `json:"status" gorm:"not null;default:'pending'"`
	DeliveryAddress string         `json:"delivery_address"`
	DeliveryNotes   string         `json:"delivery_notes"`
	Details         []OrderDetail  `json:"details,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type OrderDetail struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	OrderID  uint     `json:"order_id" gorm:"not null"`
	ItemID   uint     `json:"item_id" gorm:"not null"`
	MenuItem MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity int      `json:"quantity" gorm:"not null"`
}
