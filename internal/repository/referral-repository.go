package repository

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/domain"
	"gorm.io/gorm"
)

type ReferralRepository interface {
	CreateReward(ctx context.Context, reward *domain.ReferralReward) error
	ListRewardsByReferrer(ctx context.Context, referrerID string) ([]domain.ReferralReward, error)
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) CreateReward(ctx context.Context, reward *domain.ReferralReward) error {
	if err := conn(ctx, r.db).Create(reward).Error; err != nil {
		return fmt.Errorf("create referral reward: %w", err)
	}
	return nil
}

func (r *referralRepository) ListRewardsByReferrer(ctx context.Context, referrerID string) ([]domain.ReferralReward, error) {
	var rewards []domain.ReferralReward
	err := conn(ctx, r.db).Where("referrer_id = ?", referrerID).Order("created_at DESC").Find(&rewards).Error
	if err != nil {
		return nil, fmt.Errorf("list referral rewards: %w", err)
	}
	return rewards, nil
}
