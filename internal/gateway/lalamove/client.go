package lalamove

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/logger"
)

const providerName = "lalamove"

// Client is a REST adapter for the Lalamove delivery dispatch API.
// Every request is HMAC-signed with the shared API secret.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	market     string
	httpClient *http.Client
	validate   *validator.Validate
	maxRetries uint64
	now        func() time.Time
}

func NewClient(baseURL, apiKey, apiSecret, market string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		market:     market,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		validate:   validator.New(),
		maxRetries: 3,
		now:        time.Now,
	}
}

func (c *Client) GetQuotation(ctx context.Context, req *QuotationRequest) (*Quotation, error) {
	if err := c.validatePayload(req); err != nil {
		return nil, err
	}
	out := &Quotation{}
	if err := c.do(ctx, http.MethodPost, "/v3/quotations", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PlaceOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	if err := c.validatePayload(req); err != nil {
		return nil, err
	}
	out := &Order{}
	if err := c.do(ctx, http.MethodPost, "/v3/orders", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	out := &Order{}
	if err := c.do(ctx, http.MethodGet, "/v3/orders/"+orderID, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/v3/orders/"+orderID, nil, nil)
}

// Sign computes the request signature over timestamp, method, path and body
// using HMAC-SHA256 with the shared API secret
func Sign(secret, method, path, body string, timestampMillis int64) string {
	raw := fmt.Sprintf("%d\r\n%s\r\n%s\r\n\r\n%s", timestampMillis, method, path, body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks the signature on an inbound webhook delivery.
// The comparison is constant time.
func VerifyWebhookSignature(secret string, timestampMillis int64, body []byte, signature string) bool {
	expected := Sign(secret, http.MethodPost, "/webhooks/lalamove", string(body), timestampMillis)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) validatePayload(payload interface{}) error {
	err := c.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fields []domain.FieldError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, domain.FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed validation on '%s'", fe.Tag()),
			})
		}
	}
	return domain.NewValidationError("invalid dispatch payload", fields...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s payload: %w", method, path, err)
		}
	}

	operation := func() error {
		logger.ExternalServiceCall(providerName, method+" "+path)

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}

		ts := c.now().UnixMilli()
		signature := Sign(c.apiSecret, method, path, string(payload), ts)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("hmac %s:%d:%s", c.apiKey, ts, signature))
		req.Header.Set("Market", c.market)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("dispatch request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read dispatch response: %w", err)
		}

		if resp.StatusCode >= 500 {
			return domain.NewUpstreamError(providerName, resp.StatusCode, string(respBody))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(domain.NewUpstreamError(providerName, resp.StatusCode, string(respBody)))
		}

		if out != nil && len(respBody) > 0 {
			// The v3 API wraps responses in a data envelope
			var envelope struct {
				Data json.RawMessage `json:"data"`
			}
			target := respBody
			if err := json.Unmarshal(respBody, &envelope); err == nil && len(envelope.Data) > 0 {
				target = envelope.Data
			}
			if err := json.Unmarshal(target, out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode dispatch response: %w", err))
			}
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	err := backoff.Retry(operation, policy)
	logger.ExternalServiceResult(providerName, method+" "+path, err)
	return err
}
