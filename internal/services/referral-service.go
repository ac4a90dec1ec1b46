package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/repository"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReferralPoints is credited to the referrer per registration.
const ReferralPoints = 1

type ReferralService interface {
	Allocate(ctx context.Context, seed string) (string, error)
	Release(code string)

	ValidateAndReward(ctx context.Context, code, newUserID string) (*domain.User, error)
	Lookup(ctx context.Context, code string) (*dto.ReferralUserResponse, error)
	ListRewards(ctx context.Context, subjectID string) ([]dto.ReferralRewardResponse, error)
}

type referralService struct {
	users     repository.UserRepository
	rewards   repository.ReferralRepository
	allocator *CodeAllocator
	log       *logger.Logger
}

func NewReferralService(
	users repository.UserRepository,
	rewards repository.ReferralRepository,
	allocator *CodeAllocator,
	log *logger.Logger,
) ReferralService {
	return &referralService{
		users:     users,
		rewards:   rewards,
		allocator: allocator,
		log:       log,
	}
}

func (s *referralService) Allocate(ctx context.Context, seed string) (string, error) {
	return s.allocator.Allocate(ctx, seed)
}

func (s *referralService) Release(code string) {
	s.allocator.Release(code)
}

// ValidateAndReward credits the owner of code for newUserID's registration
// and returns the referrer. Call it inside the registration transaction.
func (s *referralService) ValidateAndReward(ctx context.Context, code, newUserID string) (*domain.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidReferral
	}

	referrer, err := s.users.IncrementPoints(ctx, code, ReferralPoints)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidReferral
		}
		return nil, err
	}

	reward := &domain.ReferralReward{
		ID:             uuid.NewString(),
		ReferrerID:     referrer.ID,
		ReferredUserID: newUserID,
		ReferralCode:   code,
		Points:         ReferralPoints,
	}
	if err := s.rewards.CreateReward(ctx, reward); err != nil {
		if helper.ConstraintOn(err, "referred_user_id") {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"referrer": referrer.ID,
		"referred": newUserID,
	}).Info("referral credited")

	return referrer, nil
}

func (s *referralService) Lookup(ctx context.Context, code string) (*dto.ReferralUserResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrMissingParams.WithFields("referralCode")
	}

	user, err := s.users.FindUserByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidReferral
		}
		return nil, err
	}

	return &dto.ReferralUserResponse{
		Username: user.Username,
		Name:     user.Name,
		Surname:  user.Surname,
		Team:     user.Team,
	}, nil
}

func (s *referralService) ListRewards(ctx context.Context, subjectID string) ([]dto.ReferralRewardResponse, error) {
	rewards, err := s.rewards.ListRewardsByReferrer(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReferralRewardResponse, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, dto.ReferralRewardResponse{
			ReferredUserID: r.ReferredUserID,
			Points:         r.Points,
			CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
