package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/logger"
)

const providerName = "asaas"

// Client is a thin REST adapter for the Asaas payment gateway. Payloads are
// schema-validated before the remote call; transport failures and 5xx
// responses are retried with bounded exponential backoff.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
	maxRetries uint64
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		validate:   validator.New(),
		maxRetries: 3,
	}
}

func (c *Client) CreateCustomer(ctx context.Context, req *CustomerRequest) (*Customer, error) {
	if err := c.validatePayload(req); err != nil {
		return nil, err
	}
	out := &Customer{}
	if err := c.do(ctx, http.MethodPost, "/customers", req, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	out := &Customer{}
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCustomers(ctx context.Context, email, externalReference string, offset, limit int) (*CustomerList, error) {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	if externalReference != "" {
		q.Set("externalReference", externalReference)
	}
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("limit", fmt.Sprintf("%d", limit))
	out := &CustomerList{}
	if err := c.do(ctx, http.MethodGet, "/customers?"+q.Encode(), nil, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, req *CustomerRequest) (*Customer, error) {
	if err := c.validatePayload(req); err != nil {
		return nil, err
	}
	out := &Customer{}
	if err := c.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(id), req, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+url.PathEscape(id), nil, nil, nil)
}

// CreatePayment creates a charge. The idempotency key lets the gateway
// collapse retried creations into a single charge.
func (c *Client) CreatePayment(ctx context.Context, req *PaymentRequest, idempotencyKey string) (*Payment, error) {
	if err := c.validatePayload(req); err != nil {
		return nil, err
	}
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	out := &Payment{}
	if err := c.do(ctx, http.MethodPost, "/payments", req, out, headers); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	out := &Payment{}
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(id), nil, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPayments(ctx context.Context, customerID string, offset, limit int) (*PaymentList, error) {
	q := url.Values{}
	if customerID != "" {
		q.Set("customer", customerID)
	}
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("limit", fmt.Sprintf("%d", limit))
	out := &PaymentList{}
	if err := c.do(ctx, http.MethodGet, "/payments?"+q.Encode(), nil, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeletePayment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/payments/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) RefundPayment(ctx context.Context, id string, req *RefundRequest) (*Payment, error) {
	if req != nil {
		if err := c.validatePayload(req); err != nil {
			return nil, err
		}
	}
	out := &Payment{}
	if err := c.do(ctx, http.MethodPost, "/payments/"+url.PathEscape(id)+"/refund", req, out, nil); err != nil {
		return nil, err
	}
	return out, nil
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
	return domain.NewValidationError("invalid gateway payload", fields...)
}

// do performs one logical gateway call. Retries cover transport errors and
// 5xx responses only; 4xx responses are final and mapped to UpstreamError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, headers map[string]string) error {
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
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("access_token", c.apiKey)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("gateway request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read gateway response: %w", err)
		}

		if resp.StatusCode >= 500 {
			return domain.NewUpstreamError(providerName, resp.StatusCode, string(respBody))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(mapError(resp.StatusCode, respBody))
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode gateway response: %w", err))
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

// mapError translates a gateway error response into the internal taxonomy
func mapError(statusCode int, body []byte) error {
	msg := "gateway error"
	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		msg = parsed.Errors[0].Description
		if msg == "" {
			msg = parsed.Errors[0].Code
		}
	}

	switch statusCode {
	case http.StatusNotFound:
		return domain.NewNotFoundError("gateway resource", msg)
	case http.StatusConflict:
		return domain.NewConflictError(msg, "")
	default:
		return domain.NewUpstreamError(providerName, statusCode, msg)
	}
}
