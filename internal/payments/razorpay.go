// Package payments holds the Razorpay REST client. The gateway is a
// black box: we create orders, verify callback signatures, and surface
// its error descriptions. Nothing here ever runs inside a database
// transaction.
package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
}

// GatewayError carries the provider's own description for re-surfacing.
type GatewayError struct {
	Status      int
	Description string
}

func (e *GatewayError) Error() string {
	if e.Description != "" {
		return "payment gateway error: " + e.Description
	}
	return fmt.Sprintf("payment gateway error: status %d", e.Status)
}

type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	HTTP      *http.Client
}

func NewClient(keyID, keySecret, baseURL string) *Client {
	return &Client{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   baseURL,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// CreateOrder registers a gateway order for the given amount in paise.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (GatewayOrder, error) {
	body, _ := json.Marshal(map[string]any{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return GatewayOrder{}, err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return GatewayOrder{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return GatewayOrder{}, &GatewayError{Status: resp.StatusCode, Description: e.Error.Description}
	}

	var out GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return GatewayOrder{}, fmt.Errorf("decode gateway order: %w", err)
	}
	return out, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "<gateway order id>|<payment id>" with the key secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.KeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
