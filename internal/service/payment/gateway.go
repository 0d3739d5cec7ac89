package payment

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nysc-services/internal/domain"
)

// Gateway is the synchronous card/USSD charge collaborator. The core depends
// on this contract only; a charge must resolve to a definite success or
// failure within the caller's deadline.
type Gateway interface {
	Charge(ctx context.Context, req domain.ChargeRequest) (domain.ChargeResult, error)
}

const flutterwaveBaseURL = "https://api.flutterwave.com/v3"

type flutterwaveGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewFlutterwaveGateway builds the production gateway client. The HTTP client
// carries its own timeout as a backstop; callers still pass a deadline ctx.
func NewFlutterwaveGateway(secretKey string, timeout time.Duration) Gateway {
	return &flutterwaveGateway{
		secretKey: secretKey,
		baseURL:   flutterwaveBaseURL,
		client:    &http.Client{Timeout: timeout},
	}
}

type flutterwaveChargeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID     int64  `json:"id"`
		TxRef  string `json:"tx_ref"`
		Status string `json:"status"`
	} `json:"data"`
}

func (g *flutterwaveGateway) Charge(ctx context.Context, req domain.ChargeRequest) (domain.ChargeResult, error) {
	payload := map[string]interface{}{
		"tx_ref":   req.TxRef,
		"amount":   req.Amount,
		"currency": req.Currency,
		"customer": map[string]string{
			"email":       req.CustomerEmail,
			"phonenumber": req.CustomerPhone,
			"name":        req.CustomerName,
		},
		"narration": req.Narrative,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ChargeResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges?type=card", bytes.NewReader(body))
	if err != nil {
		return domain.ChargeResult{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return domain.ChargeResult{}, err
	}
	defer resp.Body.Close()

	// A non-2xx answer is an indeterminate outcome, not a decline; only a
	// well-formed gateway verdict may fail the charge.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.ChargeResult{}, fmt.Errorf("gateway responded with status %d", resp.StatusCode)
	}

	var parsed flutterwaveChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.ChargeResult{}, err
	}

	if parsed.Status != "success" || parsed.Data.Status == "failed" {
		reason := parsed.Message
		if reason == "" {
			reason = "payment was declined"
		}
		return domain.ChargeResult{Success: false, FailureReason: reason}, nil
	}

	return domain.ChargeResult{
		Success:       true,
		TransactionID: fmt.Sprintf("flw_%d", parsed.Data.ID),
	}, nil
}

// stubGateway approves every charge with a synthetic transaction ID. It is
// wired when no gateway secret key is configured, keeping development and the
// test environment off the network.
type stubGateway struct{}

func NewStubGateway() Gateway {
	return &stubGateway{}
}

func (g *stubGateway) Charge(ctx context.Context, req domain.ChargeRequest) (domain.ChargeResult, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return domain.ChargeResult{}, err
	}
	return domain.ChargeResult{
		Success:       true,
		TransactionID: fmt.Sprintf("flw_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(suffix)),
	}, nil
}
