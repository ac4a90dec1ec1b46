package dto

import "github.com/SundayYogurt/league_service/internal/domain"

// UpdateUserProfile is a self-service patch. The privileged fields are decoded
// only so that attempts to set them can be rejected.
type UpdateUserProfile struct {
	Username   *string `json:"username,omitempty"`
	Name       *string `json:"name,omitempty"`
	Surname    *string `json:"surname,omitempty"`
	BirthYear  *int    `json:"birthYear,omitempty" validate:"omitempty,birthyear"`
	PostalCode *string `json:"postalCode,omitempty" validate:"omitempty,postalcode"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Telegram   *string `json:"telegram,omitempty"`
	Team       *string `json:"team,omitempty"`

	Email        *string `json:"email,omitempty"`
	Points       *int    `json:"points,omitempty"`
	Coins        *int    `json:"coins,omitempty"`
	IsAdmin      *bool   `json:"isAdmin,omitempty"`
	Status       *int    `json:"status,omitempty"`
	Verified     *bool   `json:"verified,omitempty"`
	Paid         *bool   `json:"paid,omitempty"`
	PaymentID    *string `json:"paymentId,omitempty"`
	ReferralCode *string `json:"referralCode,omitempty"`
}

// PrivilegedFields lists the json names of fields only an admin may change.
func (p UpdateUserProfile) PrivilegedFields() []string {
	var out []string
	if p.Email != nil {
		out = append(out, "email")
	}
	if p.Points != nil {
		out = append(out, "points")
	}
	if p.Coins != nil {
		out = append(out, "coins")
	}
	if p.IsAdmin != nil {
		out = append(out, "isAdmin")
	}
	if p.Status != nil {
		out = append(out, "status")
	}
	if p.Verified != nil {
		out = append(out, "verified")
	}
	if p.Paid != nil {
		out = append(out, "paid")
	}
	if p.PaymentID != nil {
		out = append(out, "paymentId")
	}
	if p.ReferralCode != nil {
		out = append(out, "referralCode")
	}
	return out
}

type AdminEditUser struct {
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Name       *string `json:"name,omitempty"`
	Surname    *string `json:"surname,omitempty"`
	BirthYear  *int    `json:"birthYear,omitempty" validate:"omitempty,birthyear"`
	PostalCode *string `json:"postalCode,omitempty" validate:"omitempty,postalcode"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Telegram   *string `json:"telegram,omitempty"`
	Team       *string `json:"team,omitempty"`

	Points   *int  `json:"points,omitempty" validate:"omitempty,min=0"`
	Coins    *int  `json:"coins,omitempty" validate:"omitempty,min=0"`
	Status   *int  `json:"status,omitempty" validate:"omitempty,min=0,max=2"`
	IsAdmin  *bool `json:"isAdmin,omitempty"`
	Verified *bool `json:"verified,omitempty"`
	Paid     *bool `json:"paid,omitempty"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
}

// AdminEditRequest names the target user; the editor comes from the token.
type AdminEditRequest struct {
	UserID string `json:"userId"`
	AdminEditUser
}
