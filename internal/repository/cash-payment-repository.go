package repository

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/domain"
	"gorm.io/gorm"
)

type CashPaymentRepository interface {
	CreateCashPayment(ctx context.Context, req *domain.CashPaymentRequest) error
	FindCashPaymentByUserID(ctx context.Context, userID string) (*domain.CashPaymentRequest, error)
	DeleteCashPayment(ctx context.Context, userID string) error
	SetCashPaymentPaid(ctx context.Context, userID string, paid bool) error
	ListCashPayments(ctx context.Context) ([]domain.CashPaymentRequest, error)
}

type cashPaymentRepository struct {
	db *gorm.DB
}

func NewCashPaymentRepository(db *gorm.DB) CashPaymentRepository {
	return &cashPaymentRepository{db: db}
}

func (c *cashPaymentRepository) CreateCashPayment(ctx context.Context, req *domain.CashPaymentRequest) error {
	if err := conn(ctx, c.db).Create(req).Error; err != nil {
		return fmt.Errorf("create cash payment: %w", err)
	}
	return nil
}

func (c *cashPaymentRepository) FindCashPaymentByUserID(ctx context.Context, userID string) (*domain.CashPaymentRequest, error) {
	var req domain.CashPaymentRequest
	if err := conn(ctx, c.db).Where("user_id = ?", userID).First(&req).Error; err != nil {
		return nil, notFound(err, "cash payment request")
	}
	return &req, nil
}

func (c *cashPaymentRepository) DeleteCashPayment(ctx context.Context, userID string) error {
	res := conn(ctx, c.db).Where("user_id = ?", userID).Delete(&domain.CashPaymentRequest{})
	if res.Error != nil {
		return fmt.Errorf("delete cash payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound.WithMessage("cash payment request not found")
	}
	return nil
}

func (c *cashPaymentRepository) SetCashPaymentPaid(ctx context.Context, userID string, paid bool) error {
	res := conn(ctx, c.db).Model(&domain.CashPaymentRequest{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"paid": paid})
	if res.Error != nil {
		return fmt.Errorf("update cash payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound.WithMessage("cash payment request not found")
	}
	return nil
}

func (c *cashPaymentRepository) ListCashPayments(ctx context.Context) ([]domain.CashPaymentRequest, error) {
	var reqs []domain.CashPaymentRequest
	if err := conn(ctx, c.db).Order("request_date ASC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("list cash payments: %w", err)
	}
	return reqs, nil
}
