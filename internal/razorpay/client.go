package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.razorpay.com/v1"

	// StatusCaptured is Razorpay's terminal "money received" payment state.
	StatusCaptured = "captured"
)

// ErrNotConfigured means the deploy has no Razorpay credentials. This is an
// operator problem, not a caller problem.
var ErrNotConfigured = errors.New("razorpay credentials not configured")

// GatewayError wraps a provider or network failure. The provider's raw
// response is logged but never carried in the message, so credential
// material cannot leak to API callers.
type GatewayError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("razorpay %s failed", e.Op)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsAuthFailure reports whether the provider rejected our API keys.
func (e *GatewayError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}

type Order struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Notes     map[string]string `json:"notes"`
	Status    string            `json:"status"`
	CreatedAt int64             `json:"created_at"`
}

type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
}

func (p *Payment) Captured() bool {
	return p.Status == StatusCaptured
}

// CreateOrderParams carries the checkout attempt. Amount is in the major
// currency unit (rupees); the provider API takes minor units.
type CreateOrderParams struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Gateway interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// Unconfigured is the Gateway used when the deploy has no credentials.
// Every call fails with ErrNotConfigured, so the rest of the store stays up
// while payment endpoints surface the configuration problem.
type Unconfigured struct{}

func (Unconfigured) CreateOrder(context.Context, CreateOrderParams) (*Order, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) VerifyPaymentSignature(string, string, string) bool {
	return false
}

func (Unconfigured) FetchPayment(context.Context, string) (*Payment, error) {
	return nil, ErrNotConfigured
}

// Client talks to the Razorpay REST API. It holds no request-scoped state
// and is safe to share across goroutines.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(keyID, keySecret string) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, ErrNotConfigured
	}

	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

func (c *Client) CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error) {
	currency := params.Currency
	if currency == "" {
		currency = "INR"
	}

	log := logger.FromCtx(ctx).With(
		zap.Int64("amount", params.Amount),
		zap.String("currency", currency),
		zap.String("receipt", params.Receipt),
	)

	body := map[string]interface{}{
		// Razorpay expects the amount in paise
		"amount":          params.Amount * 100,
		"currency":        currency,
		"payment_capture": 1,
	}
	if params.Receipt != "" {
		body["receipt"] = params.Receipt
	}
	if len(params.Notes) > 0 {
		body["notes"] = params.Notes
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("failed to marshal order request", zap.Error(err))
		return nil, &GatewayError{Op: "create order", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, &GatewayError{Op: "create order", Err: err}
	}

	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	log.Info("creating razorpay order")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("razorpay request failed", zap.Error(err))
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read razorpay response", zap.Error(err))
		return nil, &GatewayError{Op: "create order", Err: err}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{
			Op:         "create order",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var order Order
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		log.Error("failed decoding razorpay order", zap.Error(err))
		return nil, &GatewayError{Op: "create order", Err: err}
	}

	log.Info("razorpay order created",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
	)

	return &order, nil
}

// VerifyPaymentSignature checks the HMAC-SHA256 proof Razorpay hands to the
// client after checkout. The digest covers "{orderID}|{paymentID}" keyed by
// the API secret. Any malformed input yields false, never an error, so
// callers treat false strictly as "unverified".
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	// constant-time compare, signatures are attacker-supplied
	return hmac.Equal(expected, provided)
}

func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	log := logger.FromCtx(ctx).With(zap.String("payment_id", paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		log.Error("failed building request", zap.Error(err))
		return nil, &GatewayError{Op: "fetch payment", Err: err}
	}

	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("razorpay request failed", zap.Error(err))
		return nil, &GatewayError{Op: "fetch payment", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read razorpay response", zap.Error(err))
		return nil, &GatewayError{Op: "fetch payment", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{
			Op:         "fetch payment",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var payment Payment
	if err := json.Unmarshal(bodyBytes, &payment); err != nil {
		log.Error("failed decoding razorpay payment", zap.Error(err))
		return nil, &GatewayError{Op: "fetch payment", Err: err}
	}

	log.Info("razorpay payment fetched",
		zap.String("status", payment.Status),
		zap.Int64("amount", payment.Amount),
	)

	return &payment, nil
}
