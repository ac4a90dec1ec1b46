package domain

import "time"

// CashPaymentRequest is a user's pending out-of-band payment, one per user.
type CashPaymentRequest struct {
	UserID      string    `gorm:"primaryKey;type:varchar(64)" json:"userId"`
	RequestDate time.Time `gorm:"autoCreateTime" json:"requestDate"`
	Paid        bool      `gorm:"not null;default:false" json:"paid"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
