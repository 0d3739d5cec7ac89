package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nysc-services/internal/domain"
)

func chargeRequest() domain.ChargeRequest {
	return domain.ChargeRequest{
		Amount:        150000,
		Currency:      "NGN",
		CustomerEmail: "ada@example.com",
		CustomerName:  "Ada Obi",
		TxRef:         "nysc_user-1_1700000000",
	}
}

func newTestGateway(srv *httptest.Server) *flutterwaveGateway {
	return &flutterwaveGateway{
		secretKey: "sk_test",
		baseURL:   srv.URL,
		client:    &http.Client{Timeout: time.Second},
	}
}

func TestFlutterwaveGateway_Charge(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful charge", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"success","data":{"id":12345,"status":"successful"}}`))
		}))
		defer srv.Close()

		result, err := newTestGateway(srv).Charge(ctx, chargeRequest())

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "flw_12345", result.TransactionID)
	})

	t.Run("Declined charge carries the gateway reason", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"error","message":"insufficient funds","data":{}}`))
		}))
		defer srv.Close()

		result, err := newTestGateway(srv).Charge(ctx, chargeRequest())

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "insufficient funds", result.FailureReason)
	})

	t.Run("Server error is an error, not a decline", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}))
		defer srv.Close()

		result, err := newTestGateway(srv).Charge(ctx, chargeRequest())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.False(t, result.Success)
		assert.Empty(t, result.FailureReason)
	})
}
