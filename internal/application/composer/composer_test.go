package composer

import (
	"context"
	"errors"
	"testing"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/domain/enum"
	"github.com/dkimathi/invoicer-api/pkg/apperror"
	"github.com/google/uuid"
)

type stubIdentity struct {
	id uuid.UUID
	ok bool
}

func (s stubIdentity) CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	return s.id, s.ok
}

type stubStore struct {
	err     error
	created []*entity.Invoice

	// When set, Create signals started and waits for release before
	// returning. Used to hold a submission in flight.
	started chan struct{}
	release chan struct{}
}

func (s *stubStore) Create(ctx context.Context, invoice *entity.Invoice) error {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, invoice)
	return nil
}

func validSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if err := s.SetClientName("Acme Corp"); err != nil {
		t.Fatalf("SetClientName: %v", err)
	}
	if err := s.UpdateItem(0, FieldDescription, "Web design"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if err := s.UpdateItem(0, FieldPrice, "250"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	return s
}

func TestNewSessionStartsWithOneBlankItem(t *testing.T) {
	s := NewSession()
	draft := s.Snapshot()

	if draft.State != StateEditing {
		t.Errorf("state = %v, want %v", draft.State, StateEditing)
	}
	if len(draft.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(draft.Items))
	}
	if draft.Items[0].Description != "" || draft.Items[0].Price != "" {
		t.Errorf("initial item not blank: %+v", draft.Items[0])
	}
	if draft.Sender.Name != "My Tech Startup" {
		t.Errorf("sender name = %q, want default", draft.Sender.Name)
	}
	if draft.Total != 0 {
		t.Errorf("total = %v, want 0", draft.Total)
	}
}

func TestRemoveItemKeepsAtLeastOne(t *testing.T) {
	s := NewSession()

	if err := s.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := len(s.Snapshot().Items); got != 1 {
		t.Errorf("removing the only item left %d items, want 1", got)
	}

	if err := s.AddItem(); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.RemoveItem(5); err != nil {
		t.Fatalf("RemoveItem out of range: %v", err)
	}
	if got := len(s.Snapshot().Items); got != 2 {
		t.Errorf("out-of-range removal changed item count to %d, want 2", got)
	}

	if err := s.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if got := len(s.Snapshot().Items); got != 1 {
		t.Errorf("expected 1 item after removal, got %d", got)
	}
}

func TestRemoveItemDropsTheRightOne(t *testing.T) {
	s := NewSession()
	s.UpdateItem(0, FieldDescription, "first")
	s.AddItem()
	s.UpdateItem(1, FieldDescription, "second")
	s.AddItem()
	s.UpdateItem(2, FieldDescription, "third")

	if err := s.RemoveItem(1); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	draft := s.Snapshot()
	if len(draft.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(draft.Items))
	}
	if draft.Items[0].Description != "first" || draft.Items[1].Description != "third" {
		t.Errorf("wrong items survived: %+v", draft.Items)
	}
}

func TestUpdateItemStoresPriceVerbatim(t *testing.T) {
	s := NewSession()
	if err := s.UpdateItem(0, FieldPrice, "12.5x"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	draft := s.Snapshot()
	if draft.Items[0].Price != "12.5x" {
		t.Errorf("price = %q, want raw input preserved", draft.Items[0].Price)
	}
	if draft.Total != 0 {
		t.Errorf("total = %v, want 0 for non-numeric price", draft.Total)
	}
}

func TestUpdateItemRejectsBadInput(t *testing.T) {
	s := NewSession()

	if err := s.UpdateItem(3, FieldPrice, "10"); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := s.UpdateItem(0, "quantity", "2"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestTotalCoercesInvalidPricesToZero(t *testing.T) {
	s := NewSession()
	s.UpdateItem(0, FieldPrice, "abc")
	s.AddItem()
	s.UpdateItem(1, FieldPrice, "5")

	if got := s.Total(); got != 5 {
		t.Errorf("Total() = %v, want 5", got)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*Session)
		wantFields []string
	}{
		{
			name:       "missing client name",
			setup:      func(s *Session) { s.UpdateItem(0, FieldDescription, "Work") },
			wantFields: []string{"client_name"},
		},
		{
			name:       "missing item description",
			setup:      func(s *Session) { s.SetClientName("Acme Corp") },
			wantFields: []string{"items[0].description"},
		},
		{
			name: "whitespace only counts as missing",
			setup: func(s *Session) {
				s.SetClientName("   ")
				s.UpdateItem(0, FieldDescription, "\t")
			},
			wantFields: []string{"client_name", "items[0].description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			tt.setup(s)

			store := &stubStore{}
			_, err := s.Submit(context.Background(), stubIdentity{id: uuid.New(), ok: true}, store)
			if err == nil {
				t.Fatal("expected validation error")
			}

			appErr := apperror.GetAppError(err)
			if appErr.Code != 422 {
				t.Fatalf("code = %d, want 422", appErr.Code)
			}
			if len(appErr.Errors) != len(tt.wantFields) {
				t.Fatalf("got %d field errors, want %d: %+v",
					len(appErr.Errors), len(tt.wantFields), appErr.Errors)
			}
			for i, want := range tt.wantFields {
				if appErr.Errors[i].Field != want {
					t.Errorf("field[%d] = %q, want %q", i, appErr.Errors[i].Field, want)
				}
			}
			if len(store.created) != 0 {
				t.Error("store contacted despite validation failure")
			}
		})
	}
}

func TestSubmitValidationRunsBeforeIdentity(t *testing.T) {
	s := NewSession() // invalid draft, no identity either
	_, err := s.Submit(context.Background(), stubIdentity{}, &stubStore{})

	if apperror.GetAppError(err).Code != 422 {
		t.Errorf("expected validation error before identity check, got %v", err)
	}
}

func TestSubmitRequiresIdentity(t *testing.T) {
	s := validSession(t)
	_, err := s.Submit(context.Background(), stubIdentity{}, &stubStore{})

	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if s.Snapshot().State != StateEditing {
		t.Error("session should stay editable after identity failure")
	}
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	s := validSession(t)
	s.AddItem()
	s.UpdateItem(1, FieldDescription, "Hosting")
	s.UpdateItem(1, FieldPrice, "49.50")

	userID := uuid.New()
	store := &stubStore{}
	invoice, err := s.Submit(context.Background(), stubIdentity{id: userID, ok: true}, store)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if invoice.UserID != userID {
		t.Errorf("invoice user = %v, want %v", invoice.UserID, userID)
	}
	if invoice.ClientName != "Acme Corp" {
		t.Errorf("client name = %q", invoice.ClientName)
	}
	if invoice.Status != enum.InvoiceStatusPending {
		t.Errorf("status = %q, want %q", invoice.Status, enum.InvoiceStatusPending)
	}
	if invoice.Amount != 299.50 {
		t.Errorf("amount = %v, want 299.50", invoice.Amount)
	}
	if len(invoice.Items) != 2 {
		t.Errorf("item snapshot has %d items, want 2", len(invoice.Items))
	}
	if invoice.CompanyInfo == nil || invoice.CompanyInfo.Name != "My Tech Startup" {
		t.Errorf("company info not captured: %+v", invoice.CompanyInfo)
	}
	if len(store.created) != 1 {
		t.Fatalf("store received %d creates, want 1", len(store.created))
	}

	draft := s.Snapshot()
	if draft.ClientName != "" || len(draft.Items) != 1 || draft.Items[0].Description != "" {
		t.Errorf("draft not reset after submit: %+v", draft)
	}
	if draft.State != StateEditing {
		t.Errorf("state = %v, want %v", draft.State, StateEditing)
	}
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	s := validSession(t)
	store := &stubStore{err: errors.New("connection refused")}

	_, err := s.Submit(context.Background(), stubIdentity{id: uuid.New(), ok: true}, store)
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if apperror.GetAppError(err).Code != 500 {
		t.Errorf("code = %d, want 500", apperror.GetAppError(err).Code)
	}

	draft := s.Snapshot()
	if draft.ClientName != "Acme Corp" {
		t.Error("draft lost after failed submit")
	}
	if draft.State != StateEditing {
		t.Errorf("state = %v, want %v for manual retry", draft.State, StateEditing)
	}

	// The retry goes through.
	if _, err := s.Submit(context.Background(), stubIdentity{id: uuid.New(), ok: true}, &stubStore{}); err != nil {
		t.Errorf("retry after failure: %v", err)
	}
}

func TestSubmitRejectsConcurrentMutations(t *testing.T) {
	s := validSession(t)
	store := &stubStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), stubIdentity{id: uuid.New(), ok: true}, store)
		done <- err
	}()

	<-store.started

	if err := s.SetClientName("Other Corp"); !errors.Is(err, apperror.ErrSubmitInFlight) {
		t.Errorf("mutation during submit: got %v, want ErrSubmitInFlight", err)
	}
	if err := s.AddItem(); !errors.Is(err, apperror.ErrSubmitInFlight) {
		t.Errorf("AddItem during submit: got %v, want ErrSubmitInFlight", err)
	}
	if _, err := s.Submit(context.Background(), stubIdentity{id: uuid.New(), ok: true}, store); !errors.Is(err, apperror.ErrSubmitInFlight) {
		t.Errorf("second submit: got %v, want ErrSubmitInFlight", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("original submit failed: %v", err)
	}

	if s.Snapshot().State != StateEditing {
		t.Error("session not editable after submit completed")
	}
}
