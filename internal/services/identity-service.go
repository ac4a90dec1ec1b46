package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/internal/repository"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/google/uuid"
)

const verificationTokenTTL = 24 * time.Hour

type IdentityService interface {
	CreateAccount(ctx context.Context, input dto.IdentitySignup) (string, error)
	SignIn(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error)
	VerifyToken(ctx context.Context, bearer string) (dto.AuthResponse, error)
	CheckPassword(ctx context.Context, subjectID, password string) (*domain.IdentityAccount, error)
	VerifyEmail(ctx context.Context, token string) error
	DeleteAccount(ctx context.Context, subjectID string) error
	DeleteOrphan(ctx context.Context, subjectID string) error
}

type identityService struct {
	accounts repository.IdentityRepository
	users    repository.UserRepository
	auth     helper.Auth
	notify   notifier
	log      *logger.Logger
}

func NewIdentityService(
	accounts repository.IdentityRepository,
	users repository.UserRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
	log *logger.Logger,
) IdentityService {
	return &identityService{
		accounts: accounts,
		users:    users,
		auth:     auth,
		notify:   notifier{producer: producer, log: log},
		log:      log,
	}
}

func (s *identityService) CreateAccount(ctx context.Context, input dto.IdentitySignup) (string, error) {
	input.Email = helper.NormalizeEmail(input.Email)
	if err := helper.ValidateStruct(input); err != nil {
		return "", err
	}

	if _, err := s.accounts.FindAccountByEmail(ctx, input.Email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hash, err := s.auth.HashPassword(input.Password)
	if errors.Is(err, domain.ErrValidation) {
		return "", err
	}
	if err != nil {
		return "", domain.ErrInternal.Wrap(err)
	}

	plainToken, err := utils.RandomToken(32)
	if err != nil {
		return "", domain.ErrInternal.Wrap(err)
	}
	expires := time.Now().Add(verificationTokenTTL)

	account := &domain.IdentityAccount{
		ID:                         uuid.NewString(),
		Email:                      input.Email,
		PasswordHash:               hash,
		VerificationToken:          utils.Sha256Hex(plainToken),
		VerificationTokenExpiresAt: &expires,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if helper.ConstraintOn(err, "email") {
			return "", domain.ErrEmailTaken
		}
		return "", err
	}

	s.notify.publish(dto.EventVerifyEmail, dto.VerifyEmailEvent{
		UserID:    account.ID,
		Email:     account.Email,
		Token:     plainToken,
		ExpiresAt: expires.Format(time.RFC3339),
	})
	s.log.WithField("uid", account.ID).Info("identity account created")

	return account.ID, nil
}

func (s *identityService) SignIn(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error) {
	input.Email = helper.NormalizeEmail(input.Email)
	if input.Email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domain.ErrMissingParams.WithFields("email", "password")
	}

	account, err := s.accounts.FindAccountByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredential.WithMessage("invalid email or password")
		}
		return nil, err
	}
	if err := s.auth.VerifyPassword(input.Password, account.PasswordHash); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(account.ID, account.Email, account.EmailVerified)
	if err != nil {
		return nil, domain.ErrInternal.Wrap(err)
	}

	return &dto.LoginResponse{
		Token:         token,
		UID:           account.ID,
		EmailVerified: account.EmailVerified,
	}, nil
}

// VerifyToken checks the signature and expiry, then that the subject still
// has an account. A deleted account revokes its outstanding tokens.
func (s *identityService) VerifyToken(ctx context.Context, bearer string) (dto.AuthResponse, error) {
	claims, err := s.auth.VerifyToken(bearer)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	if _, err := s.accounts.FindAccountByID(ctx, claims.SubjectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return dto.AuthResponse{}, domain.ErrInvalidCredential.WithMessage("credential revoked")
		}
		return dto.AuthResponse{}, err
	}
	return claims, nil
}

func (s *identityService) CheckPassword(ctx context.Context, subjectID, password string) (*domain.IdentityAccount, error) {
	account, err := s.accounts.FindAccountByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.auth.VerifyPassword(password, account.PasswordHash); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *identityService) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingParams.WithFields("token")
	}

	account, err := s.accounts.FindAccountByVerificationTokenHash(ctx, utils.Sha256Hex(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrValidation.WithMessage("invalid token")
		}
		return err
	}
	if account.VerificationTokenExpiresAt == nil || time.Now().After(*account.VerificationTokenExpiresAt) {
		return domain.ErrValidation.WithMessage("token expired")
	}

	account.EmailVerified = true
	account.VerificationToken = ""
	account.VerificationTokenExpiresAt = nil
	if err := s.accounts.SaveAccount(ctx, account); err != nil {
		return err
	}

	err = s.users.UpdateUserFields(ctx, account.ID, map[string]any{"verified": true})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *identityService) DeleteAccount(ctx context.Context, subjectID string) error {
	if strings.TrimSpace(subjectID) == "" {
		return domain.ErrMissingParams.WithFields("uid")
	}
	return s.accounts.DeleteAccount(ctx, subjectID)
}

// DeleteOrphan removes an account that never completed registration.
func (s *identityService) DeleteOrphan(ctx context.Context, subjectID string) error {
	_, err := s.users.FindUserByID(ctx, subjectID)
	if err == nil {
		return domain.ErrConflict.WithMessage("account has a registered user")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return s.DeleteAccount(ctx, subjectID)
}
