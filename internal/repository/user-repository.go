package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByReferralCode(ctx context.Context, code string) (*domain.User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	IncrementPoints(ctx context.Context, referralCode string, delta int) (*domain.User, error)
	UpdateUserFields(ctx context.Context, id string, fields map[string]any) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) FindUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, "referral_code = ?", code)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	if err := conn(ctx, r.db).Where(query, arg).First(user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (r *userRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&domain.User{}).Where("referral_code = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count referral code: %w", err)
	}
	return count > 0, nil
}

// IncrementPoints credits the owner of referralCode in a single UPDATE.
func (r *userRepository) IncrementPoints(ctx context.Context, referralCode string, delta int) (*domain.User, error) {
	db := conn(ctx, r.db)

	res := db.Model(&domain.User{}).
		Where("referral_code = ?", referralCode).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return nil, fmt.Errorf("increment points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound.WithMessage("referral code not found")
	}

	return r.FindUserByReferralCode(ctx, referralCode)
}

func (r *userRepository) UpdateUserFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := conn(ctx, r.db).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

func (r *userRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := conn(ctx, r.db).Order("created_at ASC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
