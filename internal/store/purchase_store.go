package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/templhub/internal/models"
)

// PurchaseStore is the persistence boundary for purchase records. Finders
// return (nil, nil) when no row matches.
type PurchaseStore interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByUserAndTemplate(ctx context.Context, userID, templateID uuid.UUID) (*models.Purchase, error)
	FindByMemo(ctx context.Context, memo string) (*models.Purchase, error)
	FindByMemoForUser(ctx context.Context, memo string, userID uuid.UUID) (*models.Purchase, error)
	Reissue(ctx context.Context, id uuid.UUID, memo string, amount float64) error
	MarkTerminal(ctx context.Context, id uuid.UUID, status string, transactionID *string) error
	ListCompletedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error)
}

type purchaseStore struct {
	db *gorm.DB
}

// NewPurchaseStore constructs a GORM-backed PurchaseStore.
func NewPurchaseStore(db *gorm.DB) PurchaseStore {
	return &purchaseStore{db: db}
}

func (s *purchaseStore) Create(ctx context.Context, purchase *models.Purchase) error {
	return s.db.WithContext(ctx).Create(purchase).Error
}

func (s *purchaseStore) FindByUserAndTemplate(ctx context.Context, userID, templateID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.WithContext(ctx).
		First(&purchase, "user_id = ? AND template_id = ?", userID, templateID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *purchaseStore) FindByMemo(ctx context.Context, memo string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.WithContext(ctx).Preload("Template").
		First(&purchase, "memo = ?", memo).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *purchaseStore) FindByMemoForUser(ctx context.Context, memo string, userID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.WithContext(ctx).Preload("Template").
		First(&purchase, "memo = ? AND user_id = ?", memo, userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Reissue resets a purchase back to pending with a fresh memo and a new
// amount snapshot, reusing the existing row.
func (s *purchaseStore) Reissue(ctx context.Context, id uuid.UUID, memo string, amount float64) error {
	return s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"memo":           memo,
			"payment_status": models.PaymentPending,
			"amount":         amount,
			"transaction_id": nil,
		}).Error
}

// MarkTerminal writes the terminal status and transaction reference. The
// update is conditional on the row not already being completed, so a
// duplicate apply is a no-op rather than an overwrite.
func (s *purchaseStore) MarkTerminal(ctx context.Context, id uuid.UUID, status string, transactionID *string) error {
	return s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentCompleted).
		Updates(map[string]interface{}{
			"payment_status": status,
			"transaction_id": transactionID,
		}).Error
}

func (s *purchaseStore) ListCompletedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ? AND payment_status = ?", userID, models.PaymentCompleted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []models.Purchase
	if err := query.Preload("Template").
		Order("purchased_at desc").
		Limit(limit).Offset(offset).
		Find(&purchases).Error; err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}
