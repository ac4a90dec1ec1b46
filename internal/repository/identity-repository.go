package repository

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/domain"
	"gorm.io/gorm"
)

type IdentityRepository interface {
	CreateAccount(ctx context.Context, account *domain.IdentityAccount) error
	FindAccountByID(ctx context.Context, id string) (*domain.IdentityAccount, error)
	FindAccountByEmail(ctx context.Context, email string) (*domain.IdentityAccount, error)
	FindAccountByVerificationTokenHash(ctx context.Context, hash string) (*domain.IdentityAccount, error)
	SaveAccount(ctx context.Context, account *domain.IdentityAccount) error
	DeleteAccount(ctx context.Context, id string) error
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) CreateAccount(ctx context.Context, account *domain.IdentityAccount) error {
	if err := conn(ctx, r.db).Create(account).Error; err != nil {
		return fmt.Errorf("create identity account: %w", err)
	}
	return nil
}

func (r *identityRepository) FindAccountByID(ctx context.Context, id string) (*domain.IdentityAccount, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *identityRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.IdentityAccount, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *identityRepository) FindAccountByVerificationTokenHash(ctx context.Context, hash string) (*domain.IdentityAccount, error) {
	return r.findOne(ctx, "verification_token = ?", hash)
}

func (r *identityRepository) findOne(ctx context.Context, query string, arg any) (*domain.IdentityAccount, error) {
	account := &domain.IdentityAccount{}
	if err := conn(ctx, r.db).Where(query, arg).First(account).Error; err != nil {
		return nil, notFound(err, "identity account")
	}
	return account, nil
}

func (r *identityRepository) SaveAccount(ctx context.Context, account *domain.IdentityAccount) error {
	if err := conn(ctx, r.db).Save(account).Error; err != nil {
		return fmt.Errorf("save identity account: %w", err)
	}
	return nil
}

func (r *identityRepository) DeleteAccount(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&domain.IdentityAccount{})
	if res.Error != nil {
		return fmt.Errorf("delete identity account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound.WithMessage("identity account not found")
	}
	return nil
}
