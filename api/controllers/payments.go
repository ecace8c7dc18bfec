package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/api/responses"
	"github.com/luzfilms/luzfilms-backend/api/validators"
	"github.com/luzfilms/luzfilms-backend/internal/payments"
	"github.com/luzfilms/luzfilms-backend/pkg/enums"
	pkgerrors "github.com/luzfilms/luzfilms-backend/pkg/errors"
	"github.com/luzfilms/luzfilms-backend/pkg/logger"
)

type paymentIntentService interface {
	CreateIntent(ctx context.Context, input payments.CreateIntentInput) (*payments.CreateIntentResult, error)
}

type paymentIntentRequest struct {
	QuoteID string `json:"quote_id" validate:"required,uuid"`
	Method  string `json:"method" validate:"required,oneof=card installments bank_transfer"`
}

type paymentIntentResponse struct {
	PaymentID    string `json:"payment_id"`
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// PaymentIntentCreate registers a Stripe payment intent for a quote and hands
// the client secret back to the caller.
func PaymentIntentCreate(svc paymentIntentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var req paymentIntentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quoteID, err := uuid.Parse(req.QuoteID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id"))
			return
		}
		method, err := enums.ParsePaymentMethod(req.Method)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		if logg != nil {
			ctx = logg.WithQuoteID(ctx, quoteID.String())
		}

		result, err := svc.CreateIntent(ctx, payments.CreateIntentInput{QuoteID: quoteID, Method: method})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, paymentIntentResponse{
			PaymentID:    result.PaymentID.String(),
			IntentID:     result.IntentID,
			ClientSecret: result.ClientSecret,
			AmountCents:  result.AmountCents,
			Currency:     "mxn",
		})
	}
}
