package services

import (
	"context"
	"strings"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/internal/repository"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/google/uuid"
)

type SupportService interface {
	Create(ctx context.Context, input dto.SupportTicketRequest) (*domain.SupportTicket, error)
	List(ctx context.Context, adminID string, solved *bool) ([]domain.SupportTicket, error)
	SetSolved(ctx context.Context, adminID, ticketID string, solved bool) error
}

type supportService struct {
	repo repository.SupportTicketRepository
	gate UserService

	notify notifier
	log    *logger.Logger
}

func NewSupportService(
	repo repository.SupportTicketRepository,
	gate UserService,
	producer interfaces.ProducerHandler,
	log *logger.Logger,
) SupportService {
	return &supportService{
		repo:   repo,
		gate:   gate,
		notify: notifier{producer: producer, log: log},
		log:    log,
	}
}

func (s *supportService) Create(ctx context.Context, input dto.SupportTicketRequest) (*domain.SupportTicket, error) {
	input.SupportMode = strings.ToUpper(strings.TrimSpace(input.SupportMode))
	input.Email = helper.NormalizeEmail(input.Email)
	input.Telegram = strings.TrimSpace(input.Telegram)
	input.Description = strings.TrimSpace(input.Description)
	if err := helper.ValidateStruct(input); err != nil {
		return nil, err
	}

	ticket := &domain.SupportTicket{
		ID:          uuid.NewString(),
		SupportMode: domain.SupportMode(input.SupportMode),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}

	var contact string
	switch ticket.SupportMode {
	case domain.SupportModeEmail:
		if err := helper.Validator().Var(input.Email, "required,email"); err != nil {
			return nil, domain.ErrValidation.WithFields("email")
		}
		ticket.Email = &input.Email
		contact = input.Email
	case domain.SupportModeTelegram:
		if input.Telegram == "" {
			return nil, domain.ErrValidation.WithFields("telegram")
		}
		ticket.Telegram = &input.Telegram
		contact = input.Telegram
	}

	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.notify.publish(dto.EventSupportTicket, dto.SupportTicketEvent{
		TicketID:    ticket.ID,
		SupportMode: string(ticket.SupportMode),
		Contact:     contact,
		Description: ticket.Description,
	})
	return ticket, nil
}

func (s *supportService) List(ctx context.Context, adminID string, solved *bool) ([]domain.SupportTicket, error) {
	if _, err := s.gate.AdminGate(ctx, adminID); err != nil {
		return nil, err
	}
	return s.repo.ListTickets(ctx, solved)
}

func (s *supportService) SetSolved(ctx context.Context, adminID, ticketID string, solved bool) error {
	if _, err := s.gate.AdminGate(ctx, adminID); err != nil {
		return err
	}
	if strings.TrimSpace(ticketID) == "" {
		return domain.ErrMissingParams.WithFields("ticketId")
	}
	return s.repo.SetTicketSolved(ctx, ticketID, solved)
}
