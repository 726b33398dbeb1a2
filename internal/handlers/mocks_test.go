package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/templhub/internal/models"
	"github.com/example/templhub/internal/services"
	"github.com/example/templhub/internal/store"
)

// fakePurchaseStore is a map-backed PurchaseStore with the same conditional
// terminal-write behavior as the GORM implementation.
type fakePurchaseStore struct {
	rows      map[uuid.UUID]*models.Purchase
	terminals int
}

var _ store.PurchaseStore = (*fakePurchaseStore)(nil)

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{rows: make(map[uuid.UUID]*models.Purchase)}
}

func (s *fakePurchaseStore) add(p *models.Purchase) *models.Purchase {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.rows[p.ID] = p
	return p
}

func (s *fakePurchaseStore) Create(ctx context.Context, p *models.Purchase) error {
	s.add(p)
	return nil
}

func (s *fakePurchaseStore) FindByUserAndTemplate(ctx context.Context, userID, templateID uuid.UUID) (*models.Purchase, error) {
	for _, p := range s.rows {
		if p.UserID == userID && p.TemplateID == templateID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakePurchaseStore) FindByMemo(ctx context.Context, memo string) (*models.Purchase, error) {
	for _, p := range s.rows {
		if p.Memo == memo {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakePurchaseStore) FindByMemoForUser(ctx context.Context, memo string, userID uuid.UUID) (*models.Purchase, error) {
	for _, p := range s.rows {
		if p.Memo == memo && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakePurchaseStore) Reissue(ctx context.Context, id uuid.UUID, memo string, amount float64) error {
	p, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("no purchase %s", id)
	}
	p.Memo = memo
	p.PaymentStatus = models.PaymentPending
	p.Amount = amount
	p.TransactionID = nil
	return nil
}

func (s *fakePurchaseStore) MarkTerminal(ctx context.Context, id uuid.UUID, status string, transactionID *string) error {
	p, ok := s.rows[id]
	if !ok || p.PaymentStatus == models.PaymentCompleted {
		return nil
	}
	p.PaymentStatus = status
	p.TransactionID = transactionID
	s.terminals++
	return nil
}

func (s *fakePurchaseStore) ListCompletedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	var out []models.Purchase
	for _, p := range s.rows {
		if p.UserID == userID && p.PaymentStatus == models.PaymentCompleted {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

// fakeTemplateStore serves a fixed set of templates.
type fakeTemplateStore struct {
	rows map[uuid.UUID]*models.Template
}

var _ store.TemplateStore = (*fakeTemplateStore)(nil)

func newFakeTemplateStore(templates ...*models.Template) *fakeTemplateStore {
	s := &fakeTemplateStore{rows: make(map[uuid.UUID]*models.Template)}
	for _, t := range templates {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		s.rows[t.ID] = t
	}
	return s
}

func (s *fakeTemplateStore) Create(ctx context.Context, t *models.Template) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.rows[t.ID] = t
	return nil
}

func (s *fakeTemplateStore) Update(ctx context.Context, t *models.Template) error {
	s.rows[t.ID] = t
	return nil
}

func (s *fakeTemplateStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func (s *fakeTemplateStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	return s.rows[id], nil
}

func (s *fakeTemplateStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	t := s.rows[id]
	if t == nil || !t.IsActive {
		return nil, nil
	}
	return t, nil
}

func (s *fakeTemplateStore) FindActiveBySlug(ctx context.Context, slug string) (*models.Template, error) {
	for _, t := range s.rows {
		if t.Slug == slug && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (s *fakeTemplateStore) ListActive(ctx context.Context, category string, limit, offset int) ([]models.Template, int64, error) {
	var out []models.Template
	for _, t := range s.rows {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

// stubGateway satisfies services.Gateway without any network calls.
type stubGateway struct {
	lookupFunc func(ctx context.Context, memo string) (*services.PaymentRecord, error)
}

var _ services.Gateway = (*stubGateway)(nil)

func (g *stubGateway) PaymentURL(itemID string, amount float64, memo string) string {
	return fmt.Sprintf("https://pay.test/payment?item_id=%s&amount=%v&memo=%s", itemID, amount, memo)
}

func (g *stubGateway) LookupPayment(ctx context.Context, memo string) (*services.PaymentRecord, error) {
	if g.lookupFunc != nil {
		return g.lookupFunc(ctx, memo)
	}
	return nil, nil
}
