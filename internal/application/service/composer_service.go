package service

import (
	"context"
	"sync"

	"github.com/dkimathi/invoicer-api/internal/application/composer"
	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/domain/repository"
	"github.com/google/uuid"
)

// ComposerService owns one draft session per user. Sessions live in memory:
// a draft is working state, not a record, and is lost on restart by design.
type ComposerService struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*composer.Session
	invoiceRepo repository.InvoiceRepository
}

// NewComposerService creates a new composer service
func NewComposerService(invoiceRepo repository.InvoiceRepository) *ComposerService {
	return &ComposerService{
		sessions:    make(map[uuid.UUID]*composer.Session),
		invoiceRepo: invoiceRepo,
	}
}

// Session returns the user's draft session, creating a fresh one on first use
func (s *ComposerService) Session(userID uuid.UUID) *composer.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = composer.NewSession()
		s.sessions[userID] = sess
	}
	return sess
}

// staticIdentity satisfies the composer's identity collaborator with an
// identity already established by the HTTP auth layer.
type staticIdentity struct {
	userID uuid.UUID
	ok     bool
}

func (i staticIdentity) CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	return i.userID, i.ok
}

// Identity adapts an authenticated user ID (or its absence) to the
// composer's identity collaborator.
func Identity(userID *uuid.UUID) composer.IdentityProvider {
	if userID == nil {
		return staticIdentity{}
	}
	return staticIdentity{userID: *userID, ok: true}
}

// Submit runs the user's draft through submission against the invoice store
func (s *ComposerService) Submit(ctx context.Context, userID *uuid.UUID) (*entity.Invoice, error) {
	var sessionKey uuid.UUID
	if userID != nil {
		sessionKey = *userID
	}
	sess := s.Session(sessionKey)
	return sess.Submit(ctx, Identity(userID), s.invoiceRepo)
}
