package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
	"github.com/luzfilms/luzfilms-backend/pkg/enums"
	pkgerrors "github.com/luzfilms/luzfilms-backend/pkg/errors"
)

// Service creates operational alerts for studio staff. All methods are
// append-only; callers on the payment cascade invoke them best-effort.
type Service interface {
	WithTx(tx *gorm.DB) Service
	PaymentConfirmed(ctx context.Context, quoteID uuid.UUID, payment *models.Payment) error
	DisputeOpened(ctx context.Context, quoteID uuid.UUID, intentID, reason string) error
}

type serviceImpl struct {
	repo Repository
}

// NewService builds the notifications service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifications repo required")
	}
	return &serviceImpl{repo: repo}, nil
}

func (s *serviceImpl) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &serviceImpl{repo: s.repo.WithTx(tx)}
}

func (s *serviceImpl) PaymentConfirmed(ctx context.Context, quoteID uuid.UUID, payment *models.Payment) error {
	if payment == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "payment required")
	}
	return s.repo.Create(ctx, &models.Notification{
		QuoteID: quoteID,
		Type:    enums.NotificationTypePayment,
		Title:   "Payment confirmed",
		Message: fmt.Sprintf("Quote %s paid: %s (%s)", quoteID, FormatAmount(payment.AmountCents, payment.Currency), methodLabel(payment)),
	})
}

func (s *serviceImpl) DisputeOpened(ctx context.Context, quoteID uuid.UUID, intentID, reason string) error {
	if reason == "" {
		reason = "unspecified"
	}
	return s.repo.Create(ctx, &models.Notification{
		QuoteID: quoteID,
		Type:    enums.NotificationTypeDispute,
		Title:   "Dispute opened",
		Message: fmt.Sprintf("Dispute opened for intent %s (reason: %s)", intentID, reason),
	})
}

// FormatAmount renders integer cents as a display amount, e.g. "$5000.00 MXN".
func FormatAmount(amountCents int64, currency string) string {
	amount := decimal.NewFromInt(amountCents).Div(decimal.NewFromInt(100))
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = "MXN"
	}
	return fmt.Sprintf("$%s %s", amount.StringFixed(2), cur)
}

func methodLabel(payment *models.Payment) string {
	switch payment.Method {
	case enums.PaymentMethodInstallments:
		if payment.InstallmentMonths != nil {
			return fmt.Sprintf("%d MSI", *payment.InstallmentMonths)
		}
		return "installments"
	case enums.PaymentMethodBankTransfer:
		return "SPEI transfer"
	default:
		return "card"
	}
}
