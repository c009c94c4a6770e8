package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCallsGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 99900, payload["amount"])
		assert.Equal(t, "INR", payload["currency"])

		_ = json.NewEncoder(w).Encode(Order{ID: "order_abc", Amount: 99900, Currency: "INR"})
	}))
	defer srv.Close()

	client := NewRazorpayClient("key_id", "key_secret")
	client.BaseURL = srv.URL

	order, err := client.CreateOrder(context.Background(), 99900, "INR")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(99900), order.Amount)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad auth"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewRazorpayClient("key_id", "wrong")
	client.BaseURL = srv.URL

	_, err := client.CreateOrder(context.Background(), 99900, "INR")
	require.Error(t, err)
}
