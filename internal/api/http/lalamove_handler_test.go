package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"prorentals-backend/internal/gateway/lalamove"
)

func newLalamoveProxy(providerURL string) *mux.Router {
	h := NewLalamoveHandler(lalamove.NewClient(providerURL, "api-key", "api-secret", "BR"))
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/lalamove/quotations", h.CreateQuotation).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/lalamove/orders", h.CreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/lalamove/orders/{id}", h.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/lalamove/orders/{id}", h.CancelOrder).Methods(http.MethodDelete)
	return r
}

func TestLalamoveHandler(t *testing.T) {
	t.Run("GetOrder proxies the provider response", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/orders/ord_1", r.URL.Path)
			w.Write([]byte(`{"data":{"orderId":"ord_1","status":"ON_GOING"}}`))
		}))
		defer provider.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lalamove/orders/ord_1", nil)
		rec := httptest.NewRecorder()
		newLalamoveProxy(provider.URL).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"orderId":"ord_1"`)
	})

	t.Run("Invalid quotation payload is a bad request", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		defer provider.Close()

		body := `{"serviceType":"MOTORCYCLE","stops":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/lalamove/quotations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newLalamoveProxy(provider.URL).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("CancelOrder reports the cancellation", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer provider.Close()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/lalamove/orders/ord_1", nil)
		rec := httptest.NewRecorder()
		newLalamoveProxy(provider.URL).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cancelled":true`)
	})

	t.Run("Provider 4xx maps through the error taxonomy", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"order not cancellable"}`))
		}))
		defer provider.Close()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/lalamove/orders/ord_1", nil)
		rec := httptest.NewRecorder()
		newLalamoveProxy(provider.URL).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
