package models

import "time"

// SplitStatus tracks an individual invitee's share of a split bill
type SplitStatus string

const (
	SplitPending SplitStatus = "pending"
	SplitPaid    SplitStatus = "paid"
)

type PaymentMethod struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	Provider   string    `json:"provider" gorm:"not null"`
	CardNumber string    `json:"-"` // bcrypt hash, never the raw number
	CardLast4  string    `json:"-"`
	ExpiryDate string    `json:"expiry_date"`
	CardHolder string    `json:"card_holder"`
	IsDefault  bool      `json:"is_default" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MaskedCardNumber renders the stored last four digits in the
// XXXX-XXXX-XXXX-1234 form shown to the owner.
func (m PaymentMethod) MaskedCardNumber() string {
	return "XXXX-XXXX-XXXX-" + m.CardLast4
}

type Payment struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderID         uint           `json:"order_id" gorm:"not null"`
	PaymentMethodID uint           `json:"payment_method_id"`
	Amount          float64        `json:"amount"`
	PaymentDate     time.Time      `json:"payment_date"`
	Status          string         `json:"status"`
	TransactionID   string         `json:"transaction_id"`
	IdempotencyKey  *string        `json:"-" gorm:"uniqueIndex"`
	Splits          []SplitPayment `json:"splits,omitempty" gorm:"foreignKey:PaymentID"`
}

type SplitPayment struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	PaymentID      uint        `json:"payment_id" gorm:"not null"`
	Email          string      `json:"email" gorm:"not null"`
	Amount         float64     `json:"amount"`
	Status         SplitStatus `json:"status" gorm:"not null;default:'pending'"`
	InvitationDate time.Time   `json:"invitation_date"`
	PaymentDate    *time.Time  `json:"payment_date"`
}
