package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/templhub/internal/models"
	"github.com/example/templhub/internal/store"
)

// CheckoutResult is what a purchase attempt hands back to the client: the
// order it belongs to, its gateway memo, and where to send the user.
type CheckoutResult struct {
	OrderID    uuid.UUID `json:"order_id"`
	Memo       string    `json:"memo"`
	PaymentURL string    `json:"payment_url"`
}

// CheckoutService creates or reuses purchase attempts and hands off to the
// payment gateway.
type CheckoutService struct {
	purchases store.PurchaseStore
	templates store.TemplateStore
	gateway   Gateway
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(purchases store.PurchaseStore, templates store.TemplateStore, gateway Gateway) *CheckoutService {
	return &CheckoutService{
		purchases: purchases,
		templates: templates,
		gateway:   gateway,
	}
}

// CreateOrGetOrder resolves a purchase attempt for (user, template). At most
// one purchase row ever exists per pair: a completed one blocks repurchase,
// a pending one is returned as-is with its existing memo, and a failed one
// is reissued under a fresh memo so the gateway never sees the same memo for
// two settlement attempts.
func (s *CheckoutService) CreateOrGetOrder(ctx context.Context, userID, templateID uuid.UUID) (*CheckoutResult, error) {
	template, err := s.templates.FindActiveByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	existing, err := s.purchases.FindByUserAndTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.PaymentStatus == models.PaymentCompleted {
			return nil, ErrAlreadyPurchased
		}

		// An in-flight attempt keeps its memo; issuing a new one would
		// orphan whatever the gateway already associated with the old one.
		if existing.PaymentStatus == models.PaymentPending && existing.Memo != "" {
			return &CheckoutResult{
				OrderID:    existing.ID,
				Memo:       existing.Memo,
				PaymentURL: s.gateway.PaymentURL(template.HotpayItemID, existing.Amount, existing.Memo),
			}, nil
		}

		memo := uuid.NewString()
		if err := s.purchases.Reissue(ctx, existing.ID, memo, template.Price); err != nil {
			return nil, err
		}

		return &CheckoutResult{
			OrderID:    existing.ID,
			Memo:       memo,
			PaymentURL: s.gateway.PaymentURL(template.HotpayItemID, template.Price, memo),
		}, nil
	}

	purchase := &models.Purchase{
		UserID:        userID,
		TemplateID:    template.ID,
		Memo:          uuid.NewString(),
		PaymentStatus: models.PaymentPending,
		Amount:        template.Price,
		Currency:      "USD",
		PurchasedAt:   time.Now(),
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:    purchase.ID,
		Memo:       purchase.Memo,
		PaymentURL: s.gateway.PaymentURL(template.HotpayItemID, purchase.Amount, purchase.Memo),
	}, nil
}
