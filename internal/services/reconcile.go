package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/example/templhub/internal/models"
	"github.com/example/templhub/internal/store"
)

// Gateway status vocabulary. Only the exact success token settles a
// purchase; everything else the webhook carries is treated as a failure so
// an unknown status can never leave an order pending forever.
const (
	gatewayStatusSuccess = "SUCCESS"
	gatewayStatusFailed  = "FAILED"
)

func mapGatewayStatus(status string) string {
	if status == gatewayStatusSuccess {
		return models.PaymentCompleted
	}
	return models.PaymentFailed
}

// VerifyResult is the outcome of a status check as presented to the client.
type VerifyResult struct {
	PaymentStatus string `json:"payment_status"`
	TemplateName  string `json:"template_name"`
}

// ReconcileService resolves pending purchases to a terminal state. Two paths
// feed it: the gateway's webhook push and the client's polling pull. Both
// may race; both guard on the already-completed check and write through the
// conditional terminal update, so applying the same transition twice is a
// no-op.
type ReconcileService struct {
	purchases store.PurchaseStore
	gateway   Gateway
	telegram  *TelegramService
}

// NewReconcileService constructs a ReconcileService.
func NewReconcileService(purchases store.PurchaseStore, gateway Gateway, telegram *TelegramService) *ReconcileService {
	return &ReconcileService{
		purchases: purchases,
		gateway:   gateway,
		telegram:  telegram,
	}
}

// ApplyWebhook handles a gateway callback carrying {memo, status, near_trx}.
// Replayed callbacks for a completed purchase return success without
// touching the row.
func (s *ReconcileService) ApplyWebhook(ctx context.Context, memo, status, transactionID string) (string, error) {
	purchase, err := s.purchases.FindByMemo(ctx, memo)
	if err != nil {
		return "", err
	}
	if purchase == nil {
		return "", ErrOrderNotFound
	}

	if purchase.PaymentStatus == models.PaymentCompleted {
		return models.PaymentCompleted, nil
	}

	newStatus := mapGatewayStatus(status)

	var trxPtr *string
	if transactionID != "" {
		trxPtr = &transactionID
	}

	if err := s.purchases.MarkTerminal(ctx, purchase.ID, newStatus, trxPtr); err != nil {
		return "", err
	}

	if newStatus == models.PaymentCompleted {
		s.notifyCompleted(purchase, transactionID)
	}

	return newStatus, nil
}

// VerifyOrder is the client-driven pull path. It returns the stored status
// for completed purchases without calling the gateway, and otherwise asks
// the gateway for the memo's latest processed payment. A lookup failure or
// an unknown gateway status is never treated as a negative result; the
// caller just keeps polling.
func (s *ReconcileService) VerifyOrder(ctx context.Context, userID uuid.UUID, memo string) (*VerifyResult, error) {
	purchase, err := s.purchases.FindByMemoForUser(ctx, memo, userID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrOrderNotFound
	}

	result := &VerifyResult{
		PaymentStatus: purchase.PaymentStatus,
		TemplateName:  templateName(purchase),
	}

	if purchase.PaymentStatus == models.PaymentCompleted {
		return result, nil
	}

	record, err := s.gateway.LookupPayment(ctx, memo)
	if err != nil {
		if err != ErrHotpayNotConfigured {
			log.Printf("[Reconcile] gateway lookup failed for memo %s: %v", memo, err)
		}
		return result, nil
	}
	if record == nil {
		return result, nil
	}

	switch record.Status {
	case gatewayStatusSuccess:
		var trxPtr *string
		if record.NearTrx != "" {
			trxPtr = &record.NearTrx
		}
		if err := s.purchases.MarkTerminal(ctx, purchase.ID, models.PaymentCompleted, trxPtr); err != nil {
			log.Printf("[Reconcile] failed to complete purchase %s: %v", purchase.ID, err)
			return result, nil
		}
		s.notifyCompleted(purchase, record.NearTrx)
		result.PaymentStatus = models.PaymentCompleted
		return result, nil
	case gatewayStatusFailed:
		var trxPtr *string
		if record.NearTrx != "" {
			trxPtr = &record.NearTrx
		}
		if err := s.purchases.MarkTerminal(ctx, purchase.ID, models.PaymentFailed, trxPtr); err != nil {
			log.Printf("[Reconcile] failed to mark purchase %s failed: %v", purchase.ID, err)
			return result, nil
		}
		result.PaymentStatus = models.PaymentFailed
		return result, nil
	default:
		return result, nil
	}
}

func (s *ReconcileService) notifyCompleted(purchase *models.Purchase, transactionID string) {
	if s.telegram == nil {
		return
	}

	notification := PurchaseNotification{
		OrderID:       purchase.ID.String(),
		TemplateName:  templateName(purchase),
		Amount:        purchase.Amount,
		Currency:      purchase.Currency,
		Memo:          purchase.Memo,
		TransactionID: transactionID,
	}

	go func() {
		if err := s.telegram.NotifyPurchase(notification); err != nil {
			log.Printf("[Reconcile] Telegram notification failed: %v", err)
		}
	}()
}

func templateName(purchase *models.Purchase) string {
	if purchase.Template == nil {
		return ""
	}
	return purchase.Template.Name
}
