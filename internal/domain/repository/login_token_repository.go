package repository

import (
	"context"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/google/uuid"
)

// LoginTokenRepository defines the interface for magic-link token storage
type LoginTokenRepository interface {
	Create(ctx context.Context, token *entity.LoginToken) error
	// GetActiveByEmail returns unused, unexpired tokens for the address,
	// newest first.
	GetActiveByEmail(ctx context.Context, email string) ([]entity.LoginToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}
