package dto

import "github.com/SundayYogurt/league_service/internal/domain"

type SupportTicketRequest struct {
	SupportMode string `json:"supportMode" validate:"required,oneof=EMAIL TELEGRAM"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Telegram    string `json:"telegram"`
	Description string `json:"description" validate:"required,max=4000"`
}

type SolveTicketRequest struct {
	TicketID string `json:"ticketId" validate:"required"`
	Solved   bool   `json:"solved"`
}

type SupportTicketListResponse struct {
	Tickets []domain.SupportTicket `json:"tickets"`
}
