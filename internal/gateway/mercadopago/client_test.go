package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		AccessToken:     "test-token",
		BaseURL:         srv.URL,
		SuccessBackURL:  "https://ofiz.uy/pago/exito",
		FailureBackURL:  "https://ofiz.uy/pago/error",
		NotificationURL: "https://api.ofiz.uy/api/v1/payments/webhook",
	})
	require.NoError(t, err)
	return c
}

func TestCreatePreference(t *testing.T) {
	var got preferencePayload
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Preference{ID: "pref-123", InitPoint: "https://mp/init/123"})
	})

	pref, err := c.CreatePreference(context.Background(), PreferenceRequest{
		Title:       "Reserva #42",
		Description: "Limpieza profunda",
		Amount:      950,
		PayerEmail:  "cliente@example.com",
		ExternalRef: "ext-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-123", pref.ID)
	assert.Equal(t, "https://mp/init/123", pref.InitPoint)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 950.0, got.Items[0].UnitPrice)
	assert.Equal(t, "UYU", got.Items[0].CurrencyID)
	assert.Equal(t, "ext-42", got.ExternalReference)
	assert.Equal(t, "https://api.ofiz.uy/api/v1/payments/webhook", got.NotificationURL)
	assert.Equal(t, "cliente@example.com", got.Payer["email"])
}

func TestCreatePreference_GatewayError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid access token"}`))
	})

	_, err := c.CreatePreference(context.Background(), PreferenceRequest{Title: "x", Amount: 1})
	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Contains(t, gwErr.Body, "invalid access token")
}

func TestGetPayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/555", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Payment{
			ID:                555,
			Status:            "approved",
			StatusDetail:      "accredited",
			ExternalReference: "ext-42",
			TransactionAmount: 950,
		})
	})

	p, err := c.GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, "approved", p.Status)
	assert.Equal(t, "ext-42", p.ExternalReference)
}

func TestCreateCardPayment_SetsIdempotencyKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))
		var body cardPaymentPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1, body.Installments)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Payment{ID: 777, Status: "approved", StatusDetail: "accredited"})
	})

	p, err := c.CreateCardPayment(context.Background(), CardPaymentRequest{
		Token:           "card-token",
		Amount:          490,
		PaymentMethodID: "visa",
		PayerEmail:      "master@example.com",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 777, p.ID)
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
