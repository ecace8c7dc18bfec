package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	"github.com/luzfilms/luzfilms-backend/internal/quotes"
	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
	"github.com/luzfilms/luzfilms-backend/pkg/enums"
	pkgerrors "github.com/luzfilms/luzfilms-backend/pkg/errors"
)

// MetadataQuoteID is the Stripe metadata key correlating intents back to quotes.
const MetadataQuoteID = "quote_id"

type ServiceParams struct {
	PaymentRepo Repository
	QuoteRepo   quotes.Repository
	Stripe      StripeIntentClient
}

// Service creates payment intents and the pending Payment rows that webhook
// deliveries later resolve against.
type Service struct {
	paymentRepo Repository
	quoteRepo   quotes.Repository
	stripe      StripeIntentClient
}

func NewService(params ServiceParams) (*Service, error) {
	if params.PaymentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment repo required")
	}
	if params.QuoteRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quote repo required")
	}
	if params.Stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stripe client required")
	}
	return &Service{
		paymentRepo: params.PaymentRepo,
		quoteRepo:   params.QuoteRepo,
		stripe:      params.Stripe,
	}, nil
}

type CreateIntentInput struct {
	QuoteID uuid.UUID
	Method  enums.PaymentMethod
}

type CreateIntentResult struct {
	PaymentID    uuid.UUID
	IntentID     string
	ClientSecret string
	AmountCents  int64
}

// CreateIntent prices the quote, registers the intent with Stripe, and
// persists the pending Payment carrying the correlation key.
func (s *Service) CreateIntent(ctx context.Context, input CreateIntentInput) (*CreateIntentResult, error) {
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	quote, err := s.quoteRepo.FindByID(ctx, input.QuoteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	if quote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	switch quote.Status {
	case enums.QuoteStatusCanceled:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote is canceled")
	case enums.QuoteStatusApproved:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote is already approved")
	}

	amountCents := quote.Total.Mul(decimal.NewFromInt(100)).IntPart()
	if amountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote total must be positive")
	}

	intent, err := s.stripe.CreateIntent(ctx, intentParams(quote, input.Method, amountCents))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stripe intent")
	}

	payment := &models.Payment{
		QuoteID:        quote.ID,
		AmountCents:    amountCents,
		Currency:       quote.Currency,
		Status:         enums.PaymentStatusPending,
		Method:         input.Method,
		StripeIntentID: intent.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist pending payment")
	}

	return &CreateIntentResult{
		PaymentID:    payment.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  amountCents,
	}, nil
}

func intentParams(quote *models.Quote, method enums.PaymentMethod, amountCents int64) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(quote.Currency),
	}
	params.AddMetadata(MetadataQuoteID, quote.ID.String())

	switch method {
	case enums.PaymentMethodBankTransfer:
		params.PaymentMethodTypes = stripe.StringSlice([]string{"customer_balance"})
	case enums.PaymentMethodInstallments:
		params.PaymentMethodTypes = stripe.StringSlice([]string{"card"})
		params.PaymentMethodOptions = &stripe.PaymentIntentPaymentMethodOptionsParams{
			Card: &stripe.PaymentIntentPaymentMethodOptionsCardParams{
				Installments: &stripe.PaymentIntentPaymentMethodOptionsCardInstallmentsParams{
					Enabled: stripe.Bool(true),
				},
			},
		}
	default:
		params.PaymentMethodTypes = stripe.StringSlice([]string{"card"})
	}
	return params
}
