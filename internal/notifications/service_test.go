package notifications

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

type stubRepo struct {
	created []*models.Notification
	err     error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }
func (s *stubRepo) Create(ctx context.Context, n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, n)
	return nil
}
func (s *stubRepo) ListUnread(ctx context.Context, limit int) ([]models.Notification, error) {
	return nil, nil
}
func (s *stubRepo) MarkRead(ctx context.Context, id uuid.UUID) error { return nil }

func TestPaymentConfirmedMessage(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}

	months := 12
	payment := &models.Payment{
		AmountCents:       500000,
		Currency:          "mxn",
		Method:            enums.PaymentMethodInstallments,
		InstallmentMonths: &months,
	}
	quoteID := uuid.New()
	if err := svc.PaymentConfirmed(context.Background(), quoteID, payment); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one notification")
	}
	created := repo.created[0]
	if created.Type != enums.NotificationTypePayment {
		t.Fatalf("unexpected type %s", created.Type)
	}
	if !strings.Contains(created.Message, "$5000.00 MXN") {
		t.Fatalf("amount missing from message: %q", created.Message)
	}
	if !strings.Contains(created.Message, "12 MSI") {
		t.Fatalf("installment label missing: %q", created.Message)
	}
}

func TestDisputeOpenedDefaultsReason(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("setup service: %v", err)
	}
	if err := svc.DisputeOpened(context.Background(), uuid.New(), "pi_1", ""); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !strings.Contains(repo.created[0].Message, "unspecified") {
		t.Fatalf("expected default reason, got %q", repo.created[0].Message)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(123450, "mxn"); got != "$1234.50 MXN" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatAmount(100, ""); got != "$1.00 MXN" {
		t.Fatalf("unexpected default currency %q", got)
	}
}
