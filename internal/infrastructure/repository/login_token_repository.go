package repository

import (
	"context"
	"strings"
	"time"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	domainRepo "github.com/dkimathi/invoicer-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type loginTokenRepository struct {
	db *gorm.DB
}

// NewLoginTokenRepository creates a new login token repository
func NewLoginTokenRepository(db *gorm.DB) domainRepo.LoginTokenRepository {
	return &loginTokenRepository{db: db}
}

func (r *loginTokenRepository) Create(ctx context.Context, token *entity.LoginToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *loginTokenRepository) GetActiveByEmail(ctx context.Context, email string) ([]entity.LoginToken, error) {
	var tokens []entity.LoginToken
	err := r.db.WithContext(ctx).
		Where("email = ? AND used = ? AND expires_at > ?", strings.ToLower(email), false, time.Now()).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}

func (r *loginTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.LoginToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}

func (r *loginTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.LoginToken{}).Error
}
