package lalamove

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"prorentals-backend/internal/domain"
)

func TestSign(t *testing.T) {
	t.Run("Deterministic for identical input", func(t *testing.T) {
		a := Sign("secret", http.MethodPost, "/v3/orders", `{"x":1}`, 1700000000000)
		b := Sign("secret", http.MethodPost, "/v3/orders", `{"x":1}`, 1700000000000)
		assert.Equal(t, a, b)
		assert.Len(t, a, 64) // hex-encoded SHA-256
	})

	t.Run("Sensitive to every component", func(t *testing.T) {
		base := Sign("secret", http.MethodPost, "/v3/orders", "{}", 1700000000000)
		assert.NotEqual(t, base, Sign("other", http.MethodPost, "/v3/orders", "{}", 1700000000000))
		assert.NotEqual(t, base, Sign("secret", http.MethodGet, "/v3/orders", "{}", 1700000000000))
		assert.NotEqual(t, base, Sign("secret", http.MethodPost, "/v3/quotations", "{}", 1700000000000))
		assert.NotEqual(t, base, Sign("secret", http.MethodPost, "/v3/orders", "{}", 1700000000001))
	})
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"eventId":"evt_1","eventType":"ORDER_STATUS_CHANGED"}`)
	ts := int64(1700000000000)

	t.Run("Accepts a signature made with the shared secret", func(t *testing.T) {
		sig := Sign("secret", http.MethodPost, "/webhooks/lalamove", string(body), ts)
		assert.True(t, VerifyWebhookSignature("secret", ts, body, sig))
	})

	t.Run("Rejects a signature made with another secret", func(t *testing.T) {
		sig := Sign("wrong", http.MethodPost, "/webhooks/lalamove", string(body), ts)
		assert.False(t, VerifyWebhookSignature("secret", ts, body, sig))
	})

	t.Run("Rejects a tampered body", func(t *testing.T) {
		sig := Sign("secret", http.MethodPost, "/webhooks/lalamove", string(body), ts)
		tampered := []byte(`{"eventId":"evt_2"}`)
		assert.False(t, VerifyWebhookSignature("secret", ts, tampered, sig))
	})
}

func TestClient_PlaceOrder(t *testing.T) {
	t.Run("Signs the request and unwraps the data envelope", func(t *testing.T) {
		var gotAuth, gotMarket string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotMarket = r.Header.Get("Market")
			w.Write([]byte(`{"data":{"orderId":"ord_1","status":"ASSIGNING_DRIVER"}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "api-key", "api-secret", "BR")
		c.now = func() time.Time { return time.UnixMilli(1700000000000) }

		order, err := c.PlaceOrder(context.Background(), &OrderRequest{
			QuotationID: "quo_1",
			Sender:      Contact{Name: "Warehouse", Phone: "+5511999990000"},
			Recipient:   Contact{Name: "Renter", Phone: "+5511999990001"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "ord_1", order.ID)
		assert.Equal(t, "BR", gotMarket)

		assert.True(t, strings.HasPrefix(gotAuth, "hmac api-key:1700000000000:"))
		sig := strings.TrimPrefix(gotAuth, "hmac api-key:1700000000000:")
		assert.Len(t, sig, 64)
	})

	t.Run("Quotation with one stop fails validation", func(t *testing.T) {
		c := NewClient("http://unused", "api-key", "api-secret", "BR")
		_, err := c.GetQuotation(context.Background(), &QuotationRequest{
			ServiceType: "MOTORCYCLE",
			Stops: []Stop{
				{Coordinates: Coordinates{Lat: "-23.5", Lng: "-46.6"}, Address: "Rua A, 1"},
			},
		})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Provider 4xx is final", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"quotation expired"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "api-key", "api-secret", "BR")
		_, err := c.GetOrder(context.Background(), "ord_1")
		var uerr *domain.UpstreamError
		assert.ErrorAs(t, err, &uerr)
		assert.Equal(t, http.StatusUnprocessableEntity, uerr.StatusCode)
		assert.Equal(t, 1, calls)
	})
}

func TestMapDeliveryStatus(t *testing.T) {
	assert.Equal(t, domain.DeliveryStatusPickedUp, MapDeliveryStatus("PICKED_UP"))
	assert.Equal(t, domain.DeliveryStatusCancelled, MapDeliveryStatus("CANCELED"))
	assert.Equal(t, domain.DeliveryStatusUnknown, MapDeliveryStatus("TELEPORTED"))
}
