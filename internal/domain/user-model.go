package domain

import "time"

type UserStatus int

const (
	UserStatusBase     UserStatus = 0
	UserStatusAdvanced UserStatus = 1
	UserStatusPro      UserStatus = 2
)

func (s UserStatus) Valid() bool {
	return s >= UserStatusBase && s <= UserStatusPro
}

func (s UserStatus) String() string {
	switch s {
	case UserStatusBase:
		return "BASE"
	case UserStatusAdvanced:
		return "ADVANCED"
	case UserStatusPro:
		return "PRO"
	}
	return "UNKNOWN"
}

// User is keyed by the identity subject id.
type User struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	Name       string `gorm:"not null" json:"name"`
	Surname    string `gorm:"not null" json:"surname"`
	BirthYear  int    `json:"birthYear,omitempty"`
	PostalCode string `gorm:"type:varchar(5)" json:"postalCode,omitempty"`
	Phone      string `gorm:"type:varchar(16)" json:"phone"`
	Telegram   string `json:"telegram"`
	Team       string `json:"team"`

	ReferralCode string  `gorm:"uniqueIndex;not null" json:"referralCode"`
	ReferredBy   *string `gorm:"index" json:"referredBy"` // a referral code, not a user id

	Points int `gorm:"not null;default:0;check:points >= 0" json:"points"`
	Coins  int `gorm:"not null;default:0;check:coins >= 0" json:"coins"`

	IsAdmin  bool       `gorm:"not null;default:false" json:"isAdmin"`
	Status   UserStatus `gorm:"not null;default:0" json:"status"`
	Verified bool       `gorm:"not null;default:false" json:"verified"`
	Paid     bool       `gorm:"not null;default:false" json:"paid"`

	PaymentID   *string    `json:"paymentId"`
	PaymentDate *time.Time `json:"paymentDate"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
