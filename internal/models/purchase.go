package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses for a purchase. Completed and failed are terminal.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Purchase records a single purchase attempt of a template by a user.
// The memo is the only key the payment gateway uses to report back.
type Purchase struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_purchases_user_template" json:"user_id"`
	User          *User     `json:"user,omitempty"`
	TemplateID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_purchases_user_template" json:"template_id"`
	Template      *Template `json:"template,omitempty"`
	Memo          string    `gorm:"uniqueIndex" json:"memo"`
	PaymentStatus string    `gorm:"index" json:"payment_status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID *string   `json:"transaction_id"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// Terminal reports whether the purchase has reached a final payment state.
func (p *Purchase) Terminal() bool {
	return p.PaymentStatus == PaymentCompleted || p.PaymentStatus == PaymentFailed
}
