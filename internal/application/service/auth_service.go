package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/domain/repository"
	"github.com/dkimathi/invoicer-api/pkg/apperror"
	"github.com/dkimathi/invoicer-api/pkg/utils"
	"github.com/google/uuid"
)

// loginTokenTTL is how long a magic link stays valid.
const loginTokenTTL = 15 * time.Minute

// LoginLinkSender delivers one-time sign-in links to an address.
type LoginLinkSender interface {
	SendLoginLinkEmail(toEmail, token string) error
}

// AuthService handles passwordless authentication. Sign-in is a two-step
// flow: request a one-time link by email, then exchange the link's token for
// a JWT session.
type AuthService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.LoginTokenRepository
	jwtManager   *utils.JWTManager
	emailService LoginLinkSender
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.LoginTokenRepository,
	jwtManager *utils.JWTManager,
	emailService LoginLinkSender,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtManager:   jwtManager,
		emailService: emailService,
	}
}

// SessionOutput represents an established session
type SessionOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RequestLoginLink mints a one-time login token for the address and emails
// the link. The account is created lazily on first request. The caller gets
// the same success either way, so the endpoint does not leak which addresses
// have accounts.
func (s *AuthService) RequestLoginLink(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "email", Message: "Email is required"},
		})
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		user = &entity.User{Email: emailAddr}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
	}

	rawToken, err := utils.GenerateLoginToken()
	if err != nil {
		return err
	}
	tokenHash, err := utils.HashToken(rawToken)
	if err != nil {
		return err
	}

	loginToken := &entity.LoginToken{
		Email:     emailAddr,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(loginTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, loginToken); err != nil {
		return err
	}

	// Housekeeping; a failure here never blocks the login flow.
	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("Warning: failed to prune expired login tokens: %v", err)
	}

	return s.emailService.SendLoginLinkEmail(emailAddr, rawToken)
}

// VerifyLoginLink exchanges a magic-link token for a session. The token is
// single-use: it is marked used before the session is issued.
func (s *AuthService) VerifyLoginLink(ctx context.Context, emailAddr, token string) (*SessionOutput, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" || token == "" {
		return nil, apperror.ErrInvalidToken
	}

	tokens, err := s.tokenRepo.GetActiveByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	var matched *entity.LoginToken
	for i := range tokens {
		if utils.CheckTokenHash(token, tokens[i].TokenHash) {
			matched = &tokens[i]
			break
		}
	}
	if matched == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !matched.IsValid() {
		return nil, apperror.ErrTokenExpired
	}

	if err := s.tokenRepo.MarkUsed(ctx, matched.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("Warning: failed to record login time for %s: %v", user.ID, err)
	}

	return s.issueSession(user)
}

// Refresh exchanges a refresh token for a new session
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*SessionOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	return s.issueSession(user)
}

// CurrentUser returns the account behind an established session
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) issueSession(user *entity.User) (*SessionOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
