package composer

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/domain/enum"
	"github.com/dkimathi/invoicer-api/pkg/apperror"
	"github.com/google/uuid"
)

// State is the draft lifecycle state. A draft accepts mutations while
// Editing and rejects everything while a submission is in flight.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
)

// Item field names accepted by UpdateItem.
const (
	FieldDescription = "description"
	FieldPrice       = "price"
)

// DraftItem is one editable line of the draft. Price keeps the raw textual
// input verbatim; it is coerced to a number only at computation time.
type DraftItem struct {
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Draft is a read-only snapshot of a session's state.
type Draft struct {
	ClientName string               `json:"client_name"`
	Sender     entity.SenderProfile `json:"sender"`
	Items      []DraftItem          `json:"items"`
	Total      float64              `json:"total"`
	State      State                `json:"state"`
}

// IdentityProvider is the identity collaborator consulted at submit time.
type IdentityProvider interface {
	// CurrentUserID returns the authenticated user, or false when no
	// session exists.
	CurrentUserID(ctx context.Context) (uuid.UUID, bool)
}

// InvoiceStore is the data-store collaborator the composer persists through.
type InvoiceStore interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
}

// defaultSender seeds a fresh draft's issuer fields.
var defaultSender = entity.SenderProfile{
	Name:    "My Tech Startup",
	Address: "123 Code Lane",
	City:    "San Francisco, CA",
}

// Session owns one in-progress invoice draft. All state is in memory and
// scoped to the session; nothing is shared. A session always holds at least
// one line item.
type Session struct {
	mu         sync.Mutex
	state      State
	clientName string
	sender     entity.SenderProfile
	items      []DraftItem
}

// NewSession creates a session holding a fresh empty draft: one blank line
// item and the default sender values.
func NewSession() *Session {
	s := &Session{}
	s.reset()
	return s
}

// reset returns the draft to its initial empty state. Caller holds the lock
// (or owns the session exclusively, as in NewSession).
func (s *Session) reset() {
	s.state = StateEditing
	s.clientName = ""
	s.sender = defaultSender
	s.items = []DraftItem{{Description: "", Price: ""}}
}

// guardEditing rejects mutations while a submission is in flight. Caller
// holds the lock.
func (s *Session) guardEditing() error {
	if s.state != StateEditing {
		return apperror.ErrSubmitInFlight
	}
	return nil
}

// AddItem appends a blank line item to the draft.
func (s *Session) AddItem() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardEditing(); err != nil {
		return err
	}
	s.items = append(s.items, DraftItem{})
	return nil
}

// RemoveItem removes the item at index. Removing the last remaining item is
// a no-op: the draft invariant is at least one line item at all times. An
// out-of-range index is likewise a no-op.
func (s *Session) RemoveItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardEditing(); err != nil {
		return err
	}
	if len(s.items) <= 1 || index < 0 || index >= len(s.items) {
		return nil
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// UpdateItem sets a field on the item at index. Price values are stored
// verbatim; invalid numbers surface as zero at computation time instead of
// failing here.
func (s *Session) UpdateItem(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardEditing(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.items) {
		return apperror.NewBadRequestError("Item index out of range")
	}
	switch field {
	case FieldDescription:
		s.items[index].Description = value
	case FieldPrice:
		s.items[index].Price = value
	default:
		return apperror.NewBadRequestError("Unknown item field: " + field)
	}
	return nil
}

// SetClientName sets the draft's client name.
func (s *Session) SetClientName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardEditing(); err != nil {
		return err
	}
	s.clientName = name
	return nil
}

// SetSender sets the draft's sender profile.
func (s *Session) SetSender(sender entity.SenderProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardEditing(); err != nil {
		return err
	}
	s.sender = sender
	return nil
}

// Total computes the draft's running total with the shared summation rule.
func (s *Session) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.ComputeTotal(s.lineItems())
}

// lineItems converts the raw draft items into coerced line items. Caller
// holds the lock.
func (s *Session) lineItems() []entity.LineItem {
	items := make([]entity.LineItem, len(s.items))
	for i, item := range s.items {
		items[i] = entity.LineItem{
			Description: item.Description,
			UnitPrice:   entity.Amount(entity.CoerceAmount(item.Price)),
		}
	}
	return items
}

// Snapshot returns a copy of the draft for display.
func (s *Session) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]DraftItem, len(s.items))
	copy(items, s.items)
	return Draft{
		ClientName: s.clientName,
		Sender:     s.sender,
		Items:      items,
		Total:      entity.ComputeTotal(s.lineItems()),
		State:      s.state,
	}
}

// validate checks the submit preconditions without contacting any
// collaborator. Caller holds the lock.
func (s *Session) validate() []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(s.clientName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "client_name",
			Message: "Client name is required",
		})
	}
	for i, item := range s.items {
		if strings.TrimSpace(item.Description) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "items[" + strconv.Itoa(i) + "].description",
				Message: "Item description is required",
			})
		}
	}
	return fieldErrors
}

// Submit packages the draft into an invoice record and persists it.
//
// Order of checks: validation first (no collaborator contacted), then the
// identity guard, then the single insert. While the insert is in flight the
// session is Submitting and rejects any concurrent mutation or submit. On
// persistence failure the draft is left intact for a manual retry; on
// success the draft resets to its initial empty state and the created record
// is returned.
func (s *Session) Submit(ctx context.Context, identity IdentityProvider, store InvoiceStore) (*entity.Invoice, error) {
	s.mu.Lock()
	if s.state != StateEditing {
		s.mu.Unlock()
		return nil, apperror.ErrSubmitInFlight
	}

	if fieldErrors := s.validate(); len(fieldErrors) > 0 {
		s.mu.Unlock()
		return nil, apperror.NewValidationError(fieldErrors)
	}

	userID, ok := identity.CurrentUserID(ctx)
	if !ok {
		s.mu.Unlock()
		return nil, apperror.ErrUnauthorized
	}

	items := s.lineItems()
	sender := s.sender
	invoice := &entity.Invoice{
		UserID:      userID,
		ClientName:  s.clientName,
		Amount:      entity.ComputeTotal(items),
		Items:       items,
		CompanyInfo: &sender,
		Status:      enum.InvoiceStatusPending,
	}

	s.state = StateSubmitting
	s.mu.Unlock()

	err := store.Create(ctx, invoice)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Draft preserved so the user can retry manually.
		s.state = StateEditing
		return nil, apperror.NewPersistenceError("Failed to save invoice: " + err.Error())
	}

	s.reset()
	return invoice, nil
}
