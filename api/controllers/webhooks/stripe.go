package webhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"

	stripewebhook "github.com/ohmasense/storefront-backend/internal/webhooks/stripe"
	"github.com/ohmasense/storefront-backend/pkg/logger"
	"github.com/ohmasense/storefront-backend/pkg/metrics"
)

type StripeWebhookService interface {
	HandleEvent(ctx context.Context, event *stripe.Event) (stripewebhook.Outcome, error)
}

type stripeWebhookGuard interface {
	CheckAndMark(ctx context.Context, eventID string) (bool, error)
	Delete(ctx context.Context, eventID string) error
}

type stripeClient interface {
	SigningSecret() string
}

// StripeWebhook receives payment provider callbacks. Signature verification
// happens before any side effect; its failure answers 400 plain text, a
// processing failure answers 500 JSON, anything else acks {"received":true}.
// Both bodies predate the response envelope and stay as the provider
// integration was built against.
func StripeWebhook(svc StripeWebhookService, client stripeClient, guard stripeWebhookGuard, m *metrics.WebhookMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()

		writeProcessingError := func(err error) {
			if logg != nil {
				logg.Error(ctx, "stripe webhook processing failed", err)
			}
			// the detail stays in the log, the provider gets a fixed body
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Error processing webhook"})
		}
		writeReceived := func() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
		}

		if svc == nil || client == nil || guard == nil {
			writeProcessingError(fmt.Errorf("webhook dependencies unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			writeProcessingError(err)
			return
		}

		sigHeader := r.Header.Get("Stripe-Signature")
		event, err := webhook.ConstructEvent(payload, sigHeader, client.SigningSecret())
		if err != nil {
			if logg != nil {
				logg.Warn(ctx, "stripe webhook signature rejected")
			}
			m.IncFailure("signature")
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Webhook Error: %v", err)
			return
		}

		if logg != nil {
			ctx = logg.WithEventID(ctx, event.ID)
		}

		alreadySeen, err := guard.CheckAndMark(ctx, event.ID)
		if err != nil {
			m.IncFailure(string(event.Type))
			writeProcessingError(err)
			return
		}
		if alreadySeen {
			if logg != nil {
				logg.Info(ctx, "stripe event already processed, acking")
			}
			m.IncDuplicate(string(event.Type))
			writeReceived()
			return
		}

		outcome, err := svc.HandleEvent(ctx, &event)
		if err != nil {
			// release the claim so the provider's retry can land
			_ = guard.Delete(ctx, event.ID)
			m.IncFailure(string(event.Type))
			writeProcessingError(err)
			return
		}

		switch outcome {
		case stripewebhook.OutcomeDuplicate:
			m.IncDuplicate(string(event.Type))
		case stripewebhook.OutcomeIgnored:
			m.IncIgnored(string(event.Type))
		default:
			m.IncProcessed(string(event.Type))
		}
		m.ObserveDuration(string(event.Type), time.Since(start))

		if logg != nil {
			logg.Info(ctx, fmt.Sprintf("stripe event %s %s", event.ID, outcome))
		}
		writeReceived()
	}
}
