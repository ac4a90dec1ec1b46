package domain

import "time"

// ReferralReward records one credited registration. A user can only be
// referred once, so ReferredUserID doubles as the idempotency key.
type ReferralReward struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ReferrerID     string    `gorm:"type:varchar(64);not null;index" json:"referrerId"`
	ReferredUserID string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"referredUserId"`
	ReferralCode   string    `gorm:"not null" json:"referralCode"`
	Points         int       `gorm:"not null" json:"points"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
