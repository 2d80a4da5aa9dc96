package razorpay

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

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewClient(t *testing.T) {
	t.Run("MissingCredentials", func(t *testing.T) {
		_, err := NewClient("", "secret")
		assert.ErrorIs(t, err, ErrNotConfigured)

		_, err = NewClient("key", "")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("Success", func(t *testing.T) {
		c, err := NewClient("rzp_test_key", "s3cret")
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestClient_CreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotBody map[string]interface{}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "s3cret", pass)

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Order{
				ID:       "order_ABC",
				Amount:   49900,
				Currency: "INR",
				Receipt:  "ORD-1",
				Notes:    map[string]string{"order_number": "ORD-1"},
				Status:   "created",
			})
		}))
		defer srv.Close()

		c, err := NewClient("rzp_test_key", "s3cret")
		require.NoError(t, err)
		c.baseURL = srv.URL

		order, err := c.CreateOrder(context.Background(), CreateOrderParams{
			Amount:  499,
			Receipt: "ORD-1",
			Notes:   map[string]string{"order_number": "ORD-1"},
		})
		require.NoError(t, err)

		// amount converted to paise, currency defaulted
		assert.Equal(t, float64(49900), gotBody["amount"])
		assert.Equal(t, "INR", gotBody["currency"])
		assert.Equal(t, float64(1), gotBody["payment_capture"])

		assert.Equal(t, "order_ABC", order.ID)
		assert.Equal(t, int64(49900), order.Amount)
		assert.Equal(t, "ORD-1", order.Receipt)
	})

	t.Run("AuthFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
		}))
		defer srv.Close()

		c, err := NewClient("bad_key", "bad_secret")
		require.NoError(t, err)
		c.baseURL = srv.URL

		_, err = c.CreateOrder(context.Background(), CreateOrderParams{Amount: 100})
		require.Error(t, err)

		var ge *GatewayError
		require.ErrorAs(t, err, &ge)
		assert.True(t, ge.IsAuthFailure())
		// message stays generic, provider details are log-only
		assert.NotContains(t, ge.Error(), "bad_secret")
	})

	t.Run("ProviderError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
		}))
		defer srv.Close()

		c, err := NewClient("rzp_test_key", "s3cret")
		require.NoError(t, err)
		c.baseURL = srv.URL

		_, err = c.CreateOrder(context.Background(), CreateOrderParams{Amount: 0})
		var ge *GatewayError
		require.ErrorAs(t, err, &ge)
		assert.False(t, ge.IsAuthFailure())
	})
}

func TestClient_VerifyPaymentSignature(t *testing.T) {
	c, err := NewClient("rzp_test_key", "s3cret")
	require.NoError(t, err)

	orderID := "order_ABC"
	paymentID := "pay_XYZ"
	valid := signPayload("s3cret", orderID, paymentID)

	t.Run("ValidSignature", func(t *testing.T) {
		assert.True(t, c.VerifyPaymentSignature(orderID, paymentID, valid))
	})

	t.Run("SingleCharacterMutation", func(t *testing.T) {
		for i := 0; i < len(valid); i++ {
			mutated := []byte(valid)
			if mutated[i] == 'a' {
				mutated[i] = 'b'
			} else {
				mutated[i] = 'a'
			}
			assert.False(t, c.VerifyPaymentSignature(orderID, paymentID, string(mutated)),
				"mutation at index %d must not verify", i)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := signPayload("wrong-secret", orderID, paymentID)
		assert.False(t, c.VerifyPaymentSignature(orderID, paymentID, other))
	})

	t.Run("SwappedIDs", func(t *testing.T) {
		assert.False(t, c.VerifyPaymentSignature(paymentID, orderID, valid))
	})

	t.Run("MalformedInputs", func(t *testing.T) {
		assert.False(t, c.VerifyPaymentSignature("", paymentID, valid))
		assert.False(t, c.VerifyPaymentSignature(orderID, "", valid))
		assert.False(t, c.VerifyPaymentSignature(orderID, paymentID, ""))
		assert.False(t, c.VerifyPaymentSignature(orderID, paymentID, "not-hex-!!"))
	})
}

func TestClient_FetchPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payments/pay_XYZ", r.URL.Path)
			_ = json.NewEncoder(w).Encode(Payment{
				ID:     "pay_XYZ",
				Amount: 1000,
				Status: StatusCaptured,
				Method: "card",
			})
		}))
		defer srv.Close()

		c, err := NewClient("rzp_test_key", "s3cret")
		require.NoError(t, err)
		c.baseURL = srv.URL

		p, err := c.FetchPayment(context.Background(), "pay_XYZ")
		require.NoError(t, err)
		assert.Equal(t, "pay_XYZ", p.ID)
		assert.True(t, p.Captured())
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"description":"payment not found"}}`))
		}))
		defer srv.Close()

		c, err := NewClient("rzp_test_key", "s3cret")
		require.NoError(t, err)
		c.baseURL = srv.URL

		_, err = c.FetchPayment(context.Background(), "pay_missing")
		var ge *GatewayError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, http.StatusNotFound, ge.StatusCode)
	})

	t.Run("NonCapturedStatus", func(t *testing.T) {
		p := &Payment{Status: "authorized"}
		assert.False(t, p.Captured())
	})
}
