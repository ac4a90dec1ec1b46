package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/mail-svc/internal/services"
	"github.com/SundayYogurt/league_service/pkg/logger"
)

type MailHandler struct {
	MailService *services.MailService
	log         *logger.Logger
}

func NewMailHandler(ms *services.MailService, log *logger.Logger) *MailHandler {
	return &MailHandler{MailService: ms, log: log}
}

// HandleMessage routes a topic message by its key. Unknown keys are skipped.
func (h *MailHandler) HandleMessage(key, value []byte) error {
	switch string(key) {
	case dto.EventVerifyEmail:
		var e dto.VerifyEmailEvent
		if err := decode(value, &e); err != nil {
			return err
		}
		h.log.WithField("user_id", e.UserID).Info("verify email event received")
		return h.MailService.SendVerifyEmail(e)

	case dto.EventWelcome:
		var e dto.WelcomeEvent
		if err := decode(value, &e); err != nil {
			return err
		}
		h.log.WithField("user_id", e.UserID).Info("welcome event received")
		return h.MailService.SendWelcome(e)

	case dto.EventCashApproved, dto.EventCardConfirmed:
		var e dto.PaymentConfirmedEvent
		if err := decode(value, &e); err != nil {
			return err
		}
		h.log.WithField("user_id", e.UserID).Info("payment event received")
		return h.MailService.SendPaymentConfirmed(e)

	case dto.EventSupportTicket:
		var e dto.SupportTicketEvent
		if err := decode(value, &e); err != nil {
			return err
		}
		h.log.WithField("ticket_id", e.TicketID).Info("support ticket event received")
		return h.MailService.SendSupportTicket(e)
	}

	h.log.WithField("key", string(key)).Warn("unhandled event key")
	return nil
}

func decode(value []byte, out any) error {
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}
	return nil
}
