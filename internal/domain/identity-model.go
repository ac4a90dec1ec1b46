package domain

import "time"

// IdentityAccount is the credential record behind a subject id. Users are
// created against an existing account; the account outlives a failed
// registration until it is deleted explicitly.
type IdentityAccount struct {
	ID            string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	EmailVerified bool   `gorm:"not null;default:false" json:"emailVerified"`

	VerificationToken          string     `gorm:"index" json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
