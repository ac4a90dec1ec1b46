package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/dto"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/internal/repository"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const registerGuardTTL = 30 * time.Second

type UserService interface {
	// Registration
	Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error)
	SeedAdmin(ctx context.Context, email, password, username string) (*domain.User, error)

	// Profile
	GetUser(ctx context.Context, subjectID, targetID string) (*domain.User, error)
	EditSelf(ctx context.Context, subjectID, targetID string, input dto.UpdateUserProfile) (*domain.User, error)
	IsPaid(ctx context.Context, subjectID string) (bool, error)

	// Admin
	AdminGate(ctx context.Context, subjectID string) (*domain.User, error)
	AdminEdit(ctx context.Context, editorID, targetID string, input dto.AdminEditUser) (*domain.User, error)
	Delete(ctx context.Context, editorID, targetID string) error
	ListUsers(ctx context.Context, editorID string, limit, offset int) ([]domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	cashRepo repository.CashPaymentRepository
	accounts repository.IdentityRepository
	tx       repository.TxManager

	identity IdentityService
	referral ReferralService
	guard    interfaces.SubmissionGuard
	auth     helper.Auth

	notify notifier
	log    *logger.Logger
}

func NewUserService(
	repo repository.UserRepository,
	cashRepo repository.CashPaymentRepository,
	accounts repository.IdentityRepository,
	tx repository.TxManager,
	identity IdentityService,
	referral ReferralService,
	guard interfaces.SubmissionGuard,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
	log *logger.Logger,
) UserService {
	return &userService{
		repo:     repo,
		cashRepo: cashRepo,
		accounts: accounts,
		tx:       tx,
		identity: identity,
		referral: referral,
		guard:    guard,
		auth:     auth,
		notify:   notifier{producer: producer, log: log},
		log:      log,
	}
}

// REGISTRATION

func (u *userService) Register(ctx context.Context, input dto.RegisterRequest) (*domain.User, error) {
	input = trimRegister(input)
	if err := helper.ValidateStruct(input); err != nil {
		return nil, err
	}

	if u.guard != nil {
		key := "register:" + input.UID
		ok, err := u.guard.Acquire(ctx, key, registerGuardTTL)
		if err != nil {
			u.log.WithError(err).Warn("submission guard unavailable")
		} else if !ok {
			return nil, domain.ErrConflict.WithMessage("registration already in progress")
		} else {
			defer func() {
				if err := u.guard.Release(context.WithoutCancel(ctx), key); err != nil {
					u.log.WithError(err).Warn("release submission guard")
				}
			}()
		}
	}

	account, err := u.identity.CheckPassword(ctx, input.UID, input.Password)
	if err != nil {
		return nil, err
	}
	if account.Email != input.Email {
		return nil, domain.ErrInvalidCredential.WithMessage("email does not match the account")
	}

	if err := u.ensureAvailable(ctx, input); err != nil {
		return nil, err
	}

	// registration is invite-only
	if input.ReferredBy == "" {
		return nil, domain.ErrInvalidReferral
	}

	seed := input.Name
	if NormalizeSeed(seed) == "" {
		seed = input.Username
	}
	code, err := u.referral.Allocate(ctx, seed)
	if err != nil {
		return nil, err
	}
	defer u.referral.Release(code)

	user := &domain.User{
		ID:           input.UID,
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		Surname:      input.Surname,
		BirthYear:    input.BirthYear,
		PostalCode:   input.PostalCode,
		Phone:        input.Phone,
		Telegram:     input.Telegram,
		Team:         input.Team,
		ReferralCode: code,
		Status:       domain.UserStatusBase,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		referrer, err := u.referral.ValidateAndReward(ctx, input.ReferredBy, user.ID)
		if err != nil {
			return err
		}
		user.ReferredBy = &referrer.ReferralCode

		if err := u.repo.CreateUser(ctx, user); err != nil {
			return userConflict(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify.publish(dto.EventWelcome, dto.WelcomeEvent{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		ReferralCode: user.ReferralCode,
	})
	u.log.WithField("uid", user.ID).Info("user registered")

	return user, nil
}

func trimRegister(in dto.RegisterRequest) dto.RegisterRequest {
	in.UID = strings.TrimSpace(in.UID)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = helper.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Telegram = strings.TrimSpace(in.Telegram)
	in.Team = strings.TrimSpace(in.Team)
	in.ReferredBy = strings.TrimSpace(in.ReferredBy)
	return in
}

func (u *userService) ensureAvailable(ctx context.Context, input dto.RegisterRequest) error {
	if _, err := u.repo.FindUserByID(ctx, input.UID); err == nil {
		return domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if _, err := u.repo.FindUserByEmail(ctx, input.Email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if _, err := u.repo.FindUserByUsername(ctx, input.Username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// userConflict maps unique index violations on users to domain errors.
func userConflict(err error) error {
	switch {
	case helper.ConstraintOn(err, "id"):
		return domain.ErrAlreadyRegistered
	case helper.ConstraintOn(err, "email"):
		return domain.ErrEmailTaken
	case helper.ConstraintOn(err, "username"):
		return domain.ErrUsernameTaken
	case helper.ConstraintOn(err, "referral_code"):
		return domain.ErrConflict.WithMessage("referral code already allocated")
	}
	return err
}

// SeedAdmin makes sure the bootstrap admin exists. It is safe to run on
// every start.
func (u *userService) SeedAdmin(ctx context.Context, email, password, username string) (*domain.User, error) {
	email = helper.NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || password == "" || username == "" {
		return nil, domain.ErrMissingParams.WithFields("email", "password", "username")
	}

	if existing, err := u.repo.FindUserByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	code, err := u.referral.Allocate(ctx, username)
	if err != nil {
		return nil, err
	}
	defer u.referral.Release(code)

	var admin *domain.User
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		account, err := u.accounts.FindAccountByEmail(ctx, email)
		if errors.Is(err, domain.ErrNotFound) {
			hash, herr := u.auth.HashPassword(password)
			if herr != nil {
				return domain.ErrInternal.Wrap(herr)
			}
			account = &domain.IdentityAccount{
				ID:            uuid.NewString(),
				Email:         email,
				PasswordHash:  hash,
				EmailVerified: true,
			}
			err = u.accounts.CreateAccount(ctx, account)
		}
		if err != nil {
			return err
		}

		now := time.Now()
		admin = &domain.User{
			ID:           account.ID,
			Email:        email,
			Username:     username,
			Name:         username,
			Surname:      username,
			ReferralCode: code,
			IsAdmin:      true,
			Status:       domain.UserStatusPro,
			Verified:     true,
			Paid:         true,
			PaymentDate:  &now,
		}
		if err := u.repo.CreateUser(ctx, admin); err != nil {
			return userConflict(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"uid":  admin.ID,
		"code": admin.ReferralCode,
	}).Info("bootstrap admin created")
	return admin, nil
}

// PROFILE

func (u *userService) GetUser(ctx context.Context, subjectID, targetID string) (*domain.User, error) {
	if strings.TrimSpace(targetID) == "" {
		return nil, domain.ErrMissingParams.WithFields("uuid")
	}
	if subjectID != targetID {
		if _, err := u.AdminGate(ctx, subjectID); err != nil {
			return nil, err
		}
	}
	return u.repo.FindUserByID(ctx, targetID)
}

func (u *userService) EditSelf(ctx context.Context, subjectID, targetID string, input dto.UpdateUserProfile) (*domain.User, error) {
	if subjectID == "" || subjectID != targetID {
		return nil, domain.ErrForbidden.WithMessage("only the owner may edit this profile")
	}
	if privileged := input.PrivilegedFields(); len(privileged) > 0 {
		return nil, domain.ErrValidation.WithMessage("fields cannot be changed").WithFields(privileged...)
	}
	if err := helper.ValidateStruct(input); err != nil {
		return nil, err
	}

	user, err := u.repo.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, domain.ErrValidation.WithFields("username")
		}
		if username != user.Username {
			if err := u.usernameFree(ctx, username, user.ID); err != nil {
				return nil, err
			}
			fields["username"] = username
		}
	}
	setProfileFields(fields, input.Name, input.Surname, input.BirthYear, input.PostalCode, input.Phone, input.Telegram, input.Team)
	if len(fields) == 0 {
		return user, nil
	}

	if err := u.repo.UpdateUserFields(ctx, user.ID, fields); err != nil {
		return nil, userConflict(err)
	}
	return u.repo.FindUserByID(ctx, user.ID)
}

func setProfileFields(fields map[string]any, name, surname *string, birthYear *int, postalCode, phone, telegram, team *string) {
	if name != nil && strings.TrimSpace(*name) != "" {
		fields["name"] = strings.TrimSpace(*name)
	}
	if surname != nil && strings.TrimSpace(*surname) != "" {
		fields["surname"] = strings.TrimSpace(*surname)
	}
	if birthYear != nil {
		fields["birth_year"] = *birthYear
	}
	if postalCode != nil {
		fields["postal_code"] = strings.TrimSpace(*postalCode)
	}
	if phone != nil {
		fields["phone"] = strings.TrimSpace(*phone)
	}
	if telegram != nil {
		fields["telegram"] = strings.TrimSpace(*telegram)
	}
	if team != nil {
		fields["team"] = strings.TrimSpace(*team)
	}
}

func (u *userService) usernameFree(ctx context.Context, username, selfID string) error {
	other, err := u.repo.FindUserByUsername(ctx, username)
	if err == nil && other.ID != selfID {
		return domain.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// IsPaid reports whether the subject may see paid content. Admins always may.
func (u *userService) IsPaid(ctx context.Context, subjectID string) (bool, error) {
	user, err := u.repo.FindUserByID(ctx, subjectID)
	if err != nil {
		return false, err
	}
	return user.Paid || user.IsAdmin, nil
}

// ADMIN

func (u *userService) AdminGate(ctx context.Context, subjectID string) (*domain.User, error) {
	if strings.TrimSpace(subjectID) == "" {
		return nil, domain.ErrForbidden
	}
	user, err := u.repo.FindUserByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if !user.IsAdmin {
		return nil, domain.ErrForbidden.WithMessage("admin only")
	}
	return user, nil
}

func (u *userService) AdminEdit(ctx context.Context, editorID, targetID string, input dto.AdminEditUser) (*domain.User, error) {
	if _, err := u.AdminGate(ctx, editorID); err != nil {
		return nil, err
	}
	if err := helper.ValidateStruct(input); err != nil {
		return nil, err
	}

	user, err := u.repo.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, domain.ErrValidation.WithFields("username")
		}
		if username != user.Username {
			if err := u.usernameFree(ctx, username, user.ID); err != nil {
				return nil, err
			}
			fields["username"] = username
		}
	}
	if input.Email != nil {
		fields["email"] = helper.NormalizeEmail(*input.Email)
	}
	setProfileFields(fields, input.Name, input.Surname, input.BirthYear, input.PostalCode, input.Phone, input.Telegram, input.Team)
	if input.Points != nil {
		fields["points"] = *input.Points
	}
	if input.Coins != nil {
		fields["coins"] = *input.Coins
	}
	if input.Status != nil {
		fields["status"] = domain.UserStatus(*input.Status)
	}
	if input.IsAdmin != nil {
		fields["is_admin"] = *input.IsAdmin
	}
	if input.Verified != nil {
		fields["verified"] = *input.Verified
	}
	if input.Paid != nil {
		fields["paid"] = *input.Paid
		if *input.Paid && user.PaymentDate == nil {
			fields["payment_date"] = time.Now()
		}
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := u.repo.UpdateUserFields(ctx, user.ID, fields); err != nil {
		return nil, userConflict(err)
	}
	u.log.WithFields(logrus.Fields{"admin": editorID, "uid": user.ID}).Info("user edited by admin")
	return u.repo.FindUserByID(ctx, user.ID)
}

// Delete removes the user together with its cash request and identity account.
func (u *userService) Delete(ctx context.Context, editorID, targetID string) error {
	if _, err := u.AdminGate(ctx, editorID); err != nil {
		return err
	}
	if strings.TrimSpace(targetID) == "" {
		return domain.ErrMissingParams.WithFields("targetId")
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.cashRepo.DeleteCashPayment(ctx, targetID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := u.repo.DeleteUser(ctx, targetID); err != nil {
			return err
		}
		if err := u.accounts.DeleteAccount(ctx, targetID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.log.WithFields(logrus.Fields{"admin": editorID, "uid": targetID}).Info("user deleted")
	return nil
}

func (u *userService) ListUsers(ctx context.Context, editorID string, limit, offset int) ([]domain.User, error) {
	if _, err := u.AdminGate(ctx, editorID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return u.repo.ListUsers(ctx, limit, offset)
}
