package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/internal/payments"
	pkgerrors "github.com/luzfilms/luzfilms-backend/pkg/errors"
)

type fakeIntentService struct {
	input  payments.CreateIntentInput
	result *payments.CreateIntentResult
	err    error
}

func (f *fakeIntentService) CreateIntent(ctx context.Context, input payments.CreateIntentInput) (*payments.CreateIntentResult, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestPaymentIntentCreate(t *testing.T) {
	quoteID := uuid.New()
	svc := &fakeIntentService{
		result: &payments.CreateIntentResult{
			PaymentID:    uuid.New(),
			IntentID:     "pi_123",
			ClientSecret: "pi_123_secret",
			AmountCents:  500000,
		},
	}
	handler := PaymentIntentCreate(svc, nil)

	body := `{"quote_id": "` + quoteID.String() + `", "method": "installments"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.input.QuoteID != quoteID {
		t.Fatalf("quote id not forwarded")
	}
	var envelope struct {
		Data paymentIntentResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ClientSecret != "pi_123_secret" || envelope.Data.AmountCents != 500000 {
		t.Fatalf("unexpected response %+v", envelope.Data)
	}
}

func TestPaymentIntentCreateValidation(t *testing.T) {
	handler := PaymentIntentCreate(&fakeIntentService{}, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing quote", `{"method": "card"}`},
		{"bad quote id", `{"quote_id": "not-a-uuid", "method": "card"}`},
		{"bad method", `{"quote_id": "` + uuid.NewString() + `", "method": "cash"}`},
		{"unknown field", `{"quote_id": "` + uuid.NewString() + `", "method": "card", "amount": 1}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", tc.name, rec.Code, rec.Body.String())
		}
	}
}

func TestPaymentIntentCreateServiceError(t *testing.T) {
	svc := &fakeIntentService{err: pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")}
	handler := PaymentIntentCreate(svc, nil)

	body := `{"quote_id": "` + uuid.NewString() + `", "method": "card"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
