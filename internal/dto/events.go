package dto

// Message keys on the mail topic.
const (
	EventVerifyEmail   = "user.verify_email"
	EventWelcome       = "user.welcome"
	EventCashApproved  = "payment.cash_approved"
	EventCardConfirmed = "payment.card_confirmed"
	EventSupportTicket = "support.ticket_created"
)

type VerifyEmailEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type WelcomeEvent struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	ReferralCode string `json:"referral_code"`
}

type PaymentConfirmedEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Method string `json:"method"` // cash | card
	PaidAt string `json:"paid_at"`
}

type SupportTicketEvent struct {
	TicketID    string `json:"ticket_id"`
	SupportMode string `json:"support_mode"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
}
