package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// Payment is the durable record of one attempted charge against a quote.
// StripeIntentID is the correlation key webhook deliveries resolve against.
type Payment struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID           uuid.UUID           `gorm:"column:quote_id;type:uuid;not null;index"`
	AmountCents       int64               `gorm:"column:amount_cents;not null"`
	Currency          string              `gorm:"column:currency;not null;default:'mxn'"`
	Status            enums.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:'pending'"`
	Method            enums.PaymentMethod `gorm:"column:method;type:payment_method;not null;default:'card'"`
	InstallmentMonths *int                `gorm:"column:installment_months"`
	StripeIntentID    string              `gorm:"column:stripe_intent_id;not null;uniqueIndex"`
	FailureReason     *string             `gorm:"column:failure_reason"`
	PaidAt            *time.Time          `gorm:"column:paid_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
