package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(GatewayOrder{ID: "order_xyz", Amount: 95000, Currency: "INR"})
	}))
	defer srv.Close()

	c := NewClient("key_test", "secret_test", srv.URL)
	out, err := c.CreateOrder(context.Background(), 95000, "order_abc")
	require.NoError(t, err)
	assert.Equal(t, "order_xyz", out.ID)
	assert.Equal(t, int64(95000), out.Amount)
	assert.Equal(t, "INR", out.Currency)

	assert.Equal(t, float64(95000), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
	assert.Equal(t, "order_abc", gotBody["receipt"])
}

func TestCreateOrderSurfacesGatewayDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"description": "Amount exceeds maximum amount allowed."},
		})
	}))
	defer srv.Close()

	c := NewClient("key_test", "secret_test", srv.URL)
	_, err := c.CreateOrder(context.Background(), 1<<40, "order_abc")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.Status)
	assert.Equal(t, "Amount exceeds maximum amount allowed.", gwErr.Description)
	assert.Contains(t, gwErr.Error(), "Amount exceeds")
}

func TestCreateOrderErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad", "creds", srv.URL)
	_, err := c.CreateOrder(context.Background(), 100, "r1")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusUnauthorized, gwErr.Status)
	assert.Contains(t, gwErr.Error(), "status 401")
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("key_test", "secret_test", "")

	mac := hmac.New(sha256.New, []byte("secret_test"))
	mac.Write([]byte("order_xyz|pay_123"))
	good := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, c.VerifySignature("order_xyz", "pay_123", good))
	assert.False(t, c.VerifySignature("order_xyz", "pay_123", "deadbeef"))
	assert.False(t, c.VerifySignature("order_xyz", "pay_999", good))
	assert.False(t, c.VerifySignature("order_xyz", "pay_123", ""))
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewClient("k", "s", "").Configured())
	assert.False(t, NewClient("", "s", "").Configured())
	assert.False(t, NewClient("k", "", "").Configured())
}
