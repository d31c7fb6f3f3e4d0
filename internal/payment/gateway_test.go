package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayConfirmPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v1/intents/pi_ok/confirm":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"confirmed":true,"amount_cents":1500,"currency":"USD"}`))
		case "/v1/intents/pi_missing/confirm":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "sk_test")

	t.Run("confirmed intent", func(t *testing.T) {
		conf, err := g.ConfirmPayment(context.Background(), "pi_ok")
		require.NoError(t, err)
		assert.True(t, conf.Confirmed)
		assert.Equal(t, int64(1500), conf.AmountCents)
		assert.Equal(t, "USD", conf.Currency)
	})

	t.Run("unknown intent", func(t *testing.T) {
		_, err := g.ConfirmPayment(context.Background(), "pi_missing")
		assert.Equal(t, ErrIntentNotFound, err)
	})

	t.Run("provider error", func(t *testing.T) {
		_, err := g.ConfirmPayment(context.Background(), "pi_boom")
		assert.Error(t, err)
	})
}
