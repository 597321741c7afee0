package asaas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"prorentals-backend/internal/domain"
)

func validPaymentRequest() *PaymentRequest {
	return &PaymentRequest{
		Customer:          "cus_1",
		BillingType:       "BOLETO",
		Value:             150.50,
		DueDate:           "2026-09-05",
		ExternalReference: "rpt-1",
	}
}

func TestClient_CreatePayment(t *testing.T) {
	t.Run("Sends the idempotency key and api key", func(t *testing.T) {
		var gotIdempotency, gotAPIKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotIdempotency = r.Header.Get("Idempotency-Key")
			gotAPIKey = r.Header.Get("access_token")
			w.Write([]byte(`{"id":"pay_1","status":"PENDING","value":150.5}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		payment, err := c.CreatePayment(context.Background(), validPaymentRequest(), "damage-report-rpt-1")
		assert.NoError(t, err)
		assert.Equal(t, "pay_1", payment.ID)
		assert.Equal(t, "damage-report-rpt-1", gotIdempotency)
		assert.Equal(t, "key-123", gotAPIKey)
	})

	t.Run("Invalid payload never reaches the wire", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		req := validPaymentRequest()
		req.BillingType = "CASH"
		_, err := c.CreatePayment(context.Background(), req, "")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Server errors are retried until success", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"id":"pay_1"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		payment, err := c.CreatePayment(context.Background(), validPaymentRequest(), "")
		assert.NoError(t, err)
		assert.Equal(t, "pay_1", payment.ID)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Run("404 maps to not found without retrying", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"code":"invalid_customer","description":"customer not found"}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		_, err := c.GetCustomer(context.Background(), "cus_missing")
		var nf *domain.NotFoundError
		assert.ErrorAs(t, err, &nf)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("409 maps to conflict", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"errors":[{"description":"duplicate charge"}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		_, err := c.CreatePayment(context.Background(), validPaymentRequest(), "")
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("Other 4xx carries the provider message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"errors":[{"code":"limit","description":"account limit reached"}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		_, err := c.CreatePayment(context.Background(), validPaymentRequest(), "")
		var uerr *domain.UpstreamError
		assert.ErrorAs(t, err, &uerr)
		assert.Equal(t, http.StatusPaymentRequired, uerr.StatusCode)
		assert.Contains(t, uerr.Message, "account limit reached")
	})
}

func TestClient_ListCustomers(t *testing.T) {
	t.Run("Filters by external reference", func(t *testing.T) {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"data":[{"id":"cus_1","name":"Renter"}],"totalCount":1}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "key-123")
		list, err := c.ListCustomers(context.Background(), "", "rental-1", 0, 1)
		assert.NoError(t, err)
		assert.Len(t, list.Data, 1)
		assert.Contains(t, gotQuery, "externalReference=rental-1")
		assert.NotContains(t, gotQuery, "email=")
	})
}

func TestMapPaymentStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentStatusConfirmed, MapPaymentStatus("CONFIRMED"))
	assert.Equal(t, domain.PaymentStatusReceived, MapPaymentStatus("RECEIVED_IN_CASH"))
	assert.Equal(t, domain.PaymentStatusUnknown, MapPaymentStatus("SOMETHING_NEW"))
}
