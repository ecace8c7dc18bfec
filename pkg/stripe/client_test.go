package stripe

import (
	"context"
	"testing"

	"github.com/luzfilms/luzfilms-backend/pkg/config"
)

func TestNewClientRejectsMismatchedKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.StripeConfig{
		APIKey: "sk_live_123",
		Secret: "whsec_x",
		Env:    "test",
	}, nil)
	if err == nil {
		t.Fatalf("expected error for live key in test env")
	}
}

func TestNewClientRequiresSecrets(t *testing.T) {
	if _, err := NewClient(context.Background(), config.StripeConfig{}, nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_1"}, nil); err == nil {
		t.Fatalf("expected error for missing webhook secret")
	}
}

func TestNewClientValid(t *testing.T) {
	client, err := NewClient(context.Background(), config.StripeConfig{
		APIKey: "sk_test_123",
		Secret: "whsec_123",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("unexpected env %q", client.Environment())
	}
	if client.SigningSecret() != "whsec_123" {
		t.Fatalf("unexpected signing secret")
	}
}
