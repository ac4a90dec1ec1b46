package repository

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/domain"
	"gorm.io/gorm"
)

type SupportTicketRepository interface {
	CreateTicket(ctx context.Context, ticket *domain.SupportTicket) error
	FindTicketByID(ctx context.Context, id string) (*domain.SupportTicket, error)
	ListTickets(ctx context.Context, solved *bool) ([]domain.SupportTicket, error)
	SetTicketSolved(ctx context.Context, id string, solved bool) error
}

type supportTicketRepository struct {
	db *gorm.DB
}

func NewSupportTicketRepository(db *gorm.DB) SupportTicketRepository {
	return &supportTicketRepository{db: db}
}

func (s *supportTicketRepository) CreateTicket(ctx context.Context, ticket *domain.SupportTicket) error {
	if err := conn(ctx, s.db).Create(ticket).Error; err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (s *supportTicketRepository) FindTicketByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	var ticket domain.SupportTicket
	if err := conn(ctx, s.db).Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, notFound(err, "support ticket")
	}
	return &ticket, nil
}

// ListTickets returns every ticket, or only those matching solved when set.
func (s *supportTicketRepository) ListTickets(ctx context.Context, solved *bool) ([]domain.SupportTicket, error) {
	var tickets []domain.SupportTicket

	q := conn(ctx, s.db).Order("created_at DESC")
	if solved != nil {
		q = q.Where("solved = ?", *solved)
	}
	if err := q.Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (s *supportTicketRepository) SetTicketSolved(ctx context.Context, id string, solved bool) error {
	res := conn(ctx, s.db).Model(&domain.SupportTicket{}).
		Where("id = ?", id).
		Updates(map[string]any{"solved": solved})
	if res.Error != nil {
		return fmt.Errorf("update ticket: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound.WithMessage("support ticket not found")
	}
	return nil
}
