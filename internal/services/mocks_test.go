package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/example/templhub/internal/models"
	"github.com/example/templhub/internal/store"
)

// memPurchaseStore is an in-memory PurchaseStore mirroring the conditional
// terminal-write semantics of the GORM implementation.
type memPurchaseStore struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*models.Purchase
	creates   int
	reissues  int
	terminals int
}

var _ store.PurchaseStore = (*memPurchaseStore)(nil)

func newMemPurchaseStore() *memPurchaseStore {
	return &memPurchaseStore{rows: make(map[uuid.UUID]*models.Purchase)}
}

func (s *memPurchaseStore) add(p *models.Purchase) *models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.rows[p.ID] = p
	return p
}

func (s *memPurchaseStore) Create(ctx context.Context, p *models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.rows[p.ID] = p
	s.creates++
	return nil
}

func (s *memPurchaseStore) FindByUserAndTemplate(ctx context.Context, userID, templateID uuid.UUID) (*models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.UserID == userID && p.TemplateID == templateID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *memPurchaseStore) FindByMemo(ctx context.Context, memo string) (*models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.Memo == memo {
			return p, nil
		}
	}
	return nil, nil
}

func (s *memPurchaseStore) FindByMemoForUser(ctx context.Context, memo string, userID uuid.UUID) (*models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.Memo == memo && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *memPurchaseStore) Reissue(ctx context.Context, id uuid.UUID, memo string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("no purchase %s", id)
	}
	p.Memo = memo
	p.PaymentStatus = models.PaymentPending
	p.Amount = amount
	p.TransactionID = nil
	s.reissues++
	return nil
}

func (s *memPurchaseStore) MarkTerminal(ctx context.Context, id uuid.UUID, status string, transactionID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok || p.PaymentStatus == models.PaymentCompleted {
		return nil
	}
	p.PaymentStatus = status
	p.TransactionID = transactionID
	s.terminals++
	return nil
}

func (s *memPurchaseStore) ListCompletedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Purchase
	for _, p := range s.rows {
		if p.UserID == userID && p.PaymentStatus == models.PaymentCompleted {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

// memTemplateStore is an in-memory TemplateStore.
type memTemplateStore struct {
	rows map[uuid.UUID]*models.Template
}

var _ store.TemplateStore = (*memTemplateStore)(nil)

func newMemTemplateStore(templates ...*models.Template) *memTemplateStore {
	s := &memTemplateStore{rows: make(map[uuid.UUID]*models.Template)}
	for _, t := range templates {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		s.rows[t.ID] = t
	}
	return s
}

func (s *memTemplateStore) Create(ctx context.Context, t *models.Template) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.rows[t.ID] = t
	return nil
}

func (s *memTemplateStore) Update(ctx context.Context, t *models.Template) error {
	s.rows[t.ID] = t
	return nil
}

func (s *memTemplateStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func (s *memTemplateStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	return s.rows[id], nil
}

func (s *memTemplateStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	t := s.rows[id]
	if t == nil || !t.IsActive {
		return nil, nil
	}
	return t, nil
}

func (s *memTemplateStore) FindActiveBySlug(ctx context.Context, slug string) (*models.Template, error) {
	for _, t := range s.rows {
		if t.Slug == slug && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (s *memTemplateStore) ListActive(ctx context.Context, category string, limit, offset int) ([]models.Template, int64, error) {
	var out []models.Template
	for _, t := range s.rows {
		if t.IsActive && (category == "" || t.Category == category) {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

// mockGateway implements Gateway with injectable behavior.
type mockGateway struct {
	paymentURLFunc func(itemID string, amount float64, memo string) string
	lookupFunc     func(ctx context.Context, memo string) (*PaymentRecord, error)
	lookups        int
}

var _ Gateway = (*mockGateway)(nil)

func (g *mockGateway) PaymentURL(itemID string, amount float64, memo string) string {
	if g.paymentURLFunc != nil {
		return g.paymentURLFunc(itemID, amount, memo)
	}
	return fmt.Sprintf("https://pay.test/payment?item_id=%s&amount=%v&memo=%s", itemID, amount, memo)
}

func (g *mockGateway) LookupPayment(ctx context.Context, memo string) (*PaymentRecord, error) {
	g.lookups++
	if g.lookupFunc != nil {
		return g.lookupFunc(ctx, memo)
	}
	return nil, nil
}
