package stripewebhook

import (
	"encoding/json"

	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// intentPayload mirrors the slice of the payment_intent object the resolver
// needs. Decoding locally keeps us independent of which fields the stripe-go
// structs expand for a given API version.
type intentPayload struct {
	ID           string          `json:"id"`
	LatestCharge json.RawMessage `json:"latest_charge"`
	Charges      struct {
		Data []chargePayload `json:"data"`
	} `json:"charges"`
	LastPaymentError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_payment_error"`
	Metadata map[string]string `json:"metadata"`
}

type chargePayload struct {
	PaymentMethodDetails struct {
		Type string `json:"type"`
		Card struct {
			Installments struct {
				Plan struct {
					Count int64 `json:"count"`
				} `json:"plan"`
			} `json:"installments"`
		} `json:"card"`
	} `json:"payment_method_details"`
}

type disputePayload struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	Reason        string `json:"reason"`
}

func decodeJSON(raw json.RawMessage, v any) error {
	return json.Unmarshal(raw, v)
}

func decodeIntent(raw json.RawMessage) (*intentPayload, error) {
	var intent intentPayload
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// charge returns the charge the intent settled with. Older API versions embed
// a charges list; newer ones only carry latest_charge, which may arrive as an
// id string or an expanded object.
func (p *intentPayload) charge() *chargePayload {
	if len(p.Charges.Data) > 0 {
		return &p.Charges.Data[0]
	}
	if len(p.LatestCharge) > 0 && p.LatestCharge[0] == '{' {
		var charge chargePayload
		if err := json.Unmarshal(p.LatestCharge, &charge); err == nil {
			return &charge
		}
	}
	return nil
}

func (p *intentPayload) failureReason() string {
	if p.LastPaymentError == nil {
		return ""
	}
	if p.LastPaymentError.Message != "" {
		return p.LastPaymentError.Message
	}
	return p.LastPaymentError.Code
}

// classifyMethod derives how the customer actually paid from the charge's
// payment_method_details. The intent's requested method is not authoritative;
// a card intent settles as installments when the issuer approved an MSI plan.
func classifyMethod(charge *chargePayload) (enums.PaymentMethod, *int) {
	if charge == nil {
		return enums.PaymentMethodCard, nil
	}
	switch charge.PaymentMethodDetails.Type {
	case "spei", "customer_balance", "bank_transfer":
		return enums.PaymentMethodBankTransfer, nil
	}
	if count := charge.PaymentMethodDetails.Card.Installments.Plan.Count; count > 0 {
		months := int(count)
		return enums.PaymentMethodInstallments, &months
	}
	return enums.PaymentMethodCard, nil
}
