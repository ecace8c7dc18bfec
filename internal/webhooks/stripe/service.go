package stripewebhook

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/luzfilms/luzfilms-backend/internal/agenda"
	"github.com/luzfilms/luzfilms-backend/internal/events"
	"github.com/luzfilms/luzfilms-backend/internal/notifications"
	"github.com/luzfilms/luzfilms-backend/internal/payments"
	"github.com/luzfilms/luzfilms-backend/internal/quotes"
	"github.com/luzfilms/luzfilms-backend/pkg/db"
	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
	"github.com/luzfilms/luzfilms-backend/pkg/enums"
	pkgerrors "github.com/luzfilms/luzfilms-backend/pkg/errors"
	"github.com/luzfilms/luzfilms-backend/pkg/logger"
)

// EventTypeBalanceTransactionCreated signals a bank transfer (SPEI) settling
// on the Stripe balance. stripe-go does not export a constant for it.
const EventTypeBalanceTransactionCreated = stripe.EventType("balance_transaction.created")

// agendaActiveEntryConstraint is the partial unique index enforcing at most
// one live calendar entry per event.
const agendaActiveEntryConstraint = "agenda_entries_active_event"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stageResolver interface {
	ResolveContracted(ctx context.Context) (*uuid.UUID, error)
}

type notifier interface {
	PaymentConfirmed(ctx context.Context, quoteID uuid.UUID, payment *models.Payment) error
	DisputeOpened(ctx context.Context, quoteID uuid.UUID, intentID, reason string) error
}

type ServiceParams struct {
	PaymentRepo       payments.Repository
	QuoteRepo         quotes.Repository
	EventRepo         events.Repository
	AgendaRepo        agenda.Repository
	Notifier          notifier
	StageResolver     stageResolver
	TransactionRunner txRunner
	Logger            *logger.Logger
}

// Service reconciles Stripe webhook events against local payment state.
type Service struct {
	paymentRepo   payments.Repository
	quoteRepo     quotes.Repository
	eventRepo     events.Repository
	agendaRepo    agenda.Repository
	notifier      notifier
	stageResolver stageResolver
	txRunner      txRunner
	logg          *logger.Logger

	handlers map[stripe.EventType]func(ctx context.Context, event *stripe.Event) error
}

func NewService(params ServiceParams) (*Service, error) {
	if params.PaymentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment repo required")
	}
	if params.QuoteRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quote repo required")
	}
	if params.EventRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event repo required")
	}
	if params.AgendaRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "agenda repo required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifier required")
	}
	if params.StageResolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stage resolver required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}

	s := &Service{
		paymentRepo:   params.PaymentRepo,
		quoteRepo:     params.QuoteRepo,
		eventRepo:     params.EventRepo,
		agendaRepo:    params.AgendaRepo,
		notifier:      params.Notifier,
		stageResolver: params.StageResolver,
		txRunner:      params.TransactionRunner,
		logg:          params.Logger,
	}
	s.handlers = map[stripe.EventType]func(ctx context.Context, event *stripe.Event) error{
		stripe.EventTypePaymentIntentSucceeded:     s.handleIntentSucceeded,
		stripe.EventTypePaymentIntentPaymentFailed: s.handleIntentFailed,
		stripe.EventTypePaymentIntentCanceled:      s.handleIntentCanceled,
		stripe.EventTypePaymentIntentProcessing:    s.handleIntentProcessing,
		stripe.EventTypeChargeDisputeCreated:       s.handleDisputeCreated,
		stripe.EventTypeChargeSucceeded:            s.acknowledge,
		stripe.EventTypeChargeFailed:               s.acknowledge,
		EventTypeBalanceTransactionCreated:         s.acknowledge,
		stripe.EventTypeInvoicePaid:                s.acknowledge,
		stripe.EventTypeInvoicePaymentFailed:       s.acknowledge,
	}
	return s, nil
}

// HandleEvent routes a verified event to its handler. Unknown types are
// acknowledged without error so Stripe stops redelivering them.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}
	handler, ok := s.handlers[event.Type]
	if !ok {
		s.info(ctx, fmt.Sprintf("ignoring unhandled stripe event type %s", event.Type))
		return nil
	}
	return handler(ctx, event)
}

// acknowledge routes event types we want visible in logs but take no local
// action on.
func (s *Service) acknowledge(ctx context.Context, event *stripe.Event) error {
	s.info(ctx, fmt.Sprintf("acknowledged stripe event type %s", event.Type))
	return nil
}

func (s *Service) handleIntentSucceeded(ctx context.Context, event *stripe.Event) error {
	intent, err := decodeIntent(event.Data.Raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode payment intent event")
	}
	method, months := classifyMethod(intent.charge())

	var paid *models.Payment
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		payment, err := paymentRepo.FindByStripeIntentID(ctx, intent.ID)
		if err != nil {
			return err
		}
		if payment == nil {
			s.info(ctx, fmt.Sprintf("no payment for intent %s, skipping", intent.ID))
			return nil
		}
		if payment.Status == enums.PaymentStatusPaid {
			s.info(ctx, fmt.Sprintf("payment for intent %s already paid, skipping", intent.ID))
			return nil
		}

		now := time.Now().UTC()
		payment.Status = enums.PaymentStatusPaid
		payment.Method = method
		payment.InstallmentMonths = months
		payment.FailureReason = nil
		payment.PaidAt = &now
		if err := paymentRepo.Update(ctx, payment); err != nil {
			return err
		}
		if err := s.cascadePaid(ctx, tx, payment); err != nil {
			return err
		}
		paid = payment
		return nil
	})
	if err != nil {
		return err
	}

	// The notification rides outside the transaction; losing it must not
	// roll back or fail an otherwise reconciled payment.
	if paid != nil {
		if err := s.notifier.PaymentConfirmed(ctx, paid.QuoteID, paid); err != nil {
			s.warn(ctx, "payment confirmed notification failed", err)
		}
	}
	return nil
}

// cascadePaid moves the downstream records of a freshly paid payment:
// quote to approved, event to contracted (plus stage when one resolves), and
// the agenda entry created or confirmed.
func (s *Service) cascadePaid(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	quoteRepo := s.quoteRepo.WithTx(tx)
	quote, err := quoteRepo.FindByID(ctx, payment.QuoteID)
	if err != nil {
		return err
	}
	if quote == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("quote %s missing for payment %s", payment.QuoteID, payment.ID))
	}
	if quote.Status != enums.QuoteStatusApproved {
		quote.Status = enums.QuoteStatusApproved
		if err := quoteRepo.Update(ctx, quote); err != nil {
			return err
		}
	}

	eventRepo := s.eventRepo.WithTx(tx)
	evt, err := eventRepo.FindByID(ctx, quote.EventID)
	if err != nil {
		return err
	}
	if evt == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("event %s missing for quote %s", quote.EventID, quote.ID))
	}
	evt.Status = enums.EventStatusContracted
	stageID, err := s.stageResolver.ResolveContracted(ctx)
	if err != nil {
		s.warn(ctx, "contracted stage resolution failed", err)
	} else if stageID != nil {
		evt.StageID = stageID
	}
	if err := eventRepo.Update(ctx, evt); err != nil {
		return err
	}

	return s.upsertAgendaEntry(ctx, tx, evt, payment)
}

func (s *Service) upsertAgendaEntry(ctx context.Context, tx *gorm.DB, evt *models.Event, payment *models.Payment) error {
	agendaRepo := s.agendaRepo.WithTx(tx)
	summary := paymentSummary(payment)

	entry, err := agendaRepo.FindActiveByEventID(ctx, evt.ID)
	if err != nil {
		return err
	}
	if entry == nil {
		date := time.Now().UTC()
		if evt.Date != nil {
			date = *evt.Date
		}
		created := &models.AgendaEntry{
			EventID:     evt.ID,
			Date:        date,
			Status:      enums.AgendaStatusConfirmed,
			Description: summary,
		}
		err = agendaRepo.Create(ctx, created)
		if err == nil {
			return nil
		}
		if !db.IsUniqueViolation(err, agendaActiveEntryConstraint) {
			return err
		}
		// Lost a race with a concurrent insert; fall through and confirm
		// the winning row instead.
		entry, err = agendaRepo.FindActiveByEventID(ctx, evt.ID)
		if err != nil {
			return err
		}
		if entry == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("agenda entry for event %s vanished after conflict", evt.ID))
		}
	}

	entry.Status = enums.AgendaStatusConfirmed
	if entry.Description == "" {
		entry.Description = summary
	} else {
		entry.Description = entry.Description + "\n" + summary
	}
	return agendaRepo.Update(ctx, entry)
}

func (s *Service) handleIntentFailed(ctx context.Context, event *stripe.Event) error {
	intent, err := decodeIntent(event.Data.Raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode payment intent event")
	}
	return s.updatePayment(ctx, intent.ID, func(payment *models.Payment) bool {
		if payment.Status.IsTerminal() {
			s.info(ctx, fmt.Sprintf("payment for intent %s already terminal, ignoring failure", intent.ID))
			return false
		}
		payment.Status = enums.PaymentStatusFailed
		if reason := intent.failureReason(); reason != "" {
			payment.FailureReason = &reason
		}
		return true
	})
}

func (s *Service) handleIntentCanceled(ctx context.Context, event *stripe.Event) error {
	intent, err := decodeIntent(event.Data.Raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode payment intent event")
	}
	return s.updatePayment(ctx, intent.ID, func(payment *models.Payment) bool {
		if payment.Status.IsTerminal() {
			return false
		}
		payment.Status = enums.PaymentStatusCanceled
		return true
	})
}

func (s *Service) handleIntentProcessing(ctx context.Context, event *stripe.Event) error {
	intent, err := decodeIntent(event.Data.Raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode payment intent event")
	}
	return s.updatePayment(ctx, intent.ID, func(payment *models.Payment) bool {
		if payment.Status != enums.PaymentStatusPending {
			return false
		}
		payment.Status = enums.PaymentStatusProcessing
		return true
	})
}

// updatePayment loads the payment correlated to intentID and applies mutate,
// persisting only when mutate reports a change. Unknown intents are logged
// and acknowledged.
func (s *Service) updatePayment(ctx context.Context, intentID string, mutate func(*models.Payment) bool) error {
	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		payment, err := paymentRepo.FindByStripeIntentID(ctx, intentID)
		if err != nil {
			return err
		}
		if payment == nil {
			s.info(ctx, fmt.Sprintf("no payment for intent %s, skipping", intentID))
			return nil
		}
		if !mutate(payment) {
			return nil
		}
		return paymentRepo.Update(ctx, payment)
	})
}

func (s *Service) handleDisputeCreated(ctx context.Context, event *stripe.Event) error {
	var dispute disputePayload
	if err := decodeJSON(event.Data.Raw, &dispute); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode dispute event")
	}
	if dispute.PaymentIntent == "" {
		s.info(ctx, fmt.Sprintf("dispute %s carries no payment intent, skipping", dispute.ID))
		return nil
	}
	payment, err := s.paymentRepo.FindByStripeIntentID(ctx, dispute.PaymentIntent)
	if err != nil {
		return err
	}
	if payment == nil {
		s.info(ctx, fmt.Sprintf("no payment for disputed intent %s, skipping", dispute.PaymentIntent))
		return nil
	}
	if err := s.notifier.DisputeOpened(ctx, payment.QuoteID, dispute.PaymentIntent, dispute.Reason); err != nil {
		s.warn(ctx, "dispute notification failed", err)
	}
	return nil
}

func paymentSummary(payment *models.Payment) string {
	label := string(payment.Method)
	if payment.Method == enums.PaymentMethodInstallments && payment.InstallmentMonths != nil {
		label = fmt.Sprintf("%d msi", *payment.InstallmentMonths)
	}
	return fmt.Sprintf("Payment confirmed: %s (%s)", notifications.FormatAmount(payment.AmountCents, payment.Currency), label)
}

func (s *Service) info(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Info(ctx, msg)
	}
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}
