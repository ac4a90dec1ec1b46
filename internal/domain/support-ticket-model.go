package domain

import "time"

type SupportMode string

const (
	SupportModeEmail    SupportMode = "EMAIL"
	SupportModeTelegram SupportMode = "TELEGRAM"
)

func (m SupportMode) Valid() bool {
	return m == SupportModeEmail || m == SupportModeTelegram
}

type SupportTicket struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SupportMode SupportMode `gorm:"type:varchar(10);not null" json:"supportMode"`
	Name        string      `json:"name,omitempty"`
	Email       *string     `json:"email,omitempty"`
	Telegram    *string     `json:"telegram,omitempty"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Solved      bool        `gorm:"not null;default:false;index" json:"solved"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}
