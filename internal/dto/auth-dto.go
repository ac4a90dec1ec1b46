package dto

type IdentitySignup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token         string `json:"token"`
	UID           string `json:"uid"`
	EmailVerified bool   `json:"emailVerified"`
}

// AuthResponse is the verified token content placed in fiber locals.
type AuthResponse struct {
	SubjectID     string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Iat           int64  `json:"iat"`
	Expiry        int64  `json:"exp"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" query:"token"`
}

// RegisterRequest is the second step of sign-up: the profile for an
// identity account created by IdentitySignup.
type RegisterRequest struct {
	UID        string `json:"uid" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	BirthYear  int    `json:"birthYear" validate:"omitempty,birthyear"`
	PostalCode string `json:"postalCode" validate:"omitempty,postalcode"`
	Phone      string `json:"phone" validate:"required,phone"`
	Telegram   string `json:"telegram" validate:"required"`
	Team       string `json:"team" validate:"required"`
	ReferredBy string `json:"referredBy"`
}

type RegisterResponse struct {
	UserID       string `json:"userId"`
	ReferralCode string `json:"referralCode"`
}
