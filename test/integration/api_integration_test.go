package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"kart-checkout/internal/checkout"
	"kart-checkout/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doAPI(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer integration-token")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func TestCheckoutAPI_HappyPath(t *testing.T) {
	fb := NewFakeBackend(t)
	api := SetupAPI(t, fb)

	// Initial load aggregates all three collections.
	resp, raw := doAPI(t, http.MethodGet, api+"/api/checkout?user_id=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view checkout.View
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, checkout.StateReady, view.State)
	assert.Len(t, view.Cart.Lines, 2)
	assert.Len(t, view.Shipping.Methods, 2)
	assert.Len(t, view.Payment.Methods, 1)
	assert.False(t, view.CanSubmit)

	// The bearer token travels through to the backend.
	assert.Equal(t, "Bearer integration-token", fb.Authorization())

	// Fill in the form.
	resp, _ = doAPI(t, http.MethodPut, api+"/api/checkout/address?user_id=u1", checkout.AddressForm{
		FullName:   "Jane Doe",
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doAPI(t, http.MethodPut, api+"/api/checkout/shipping-method?user_id=u1", map[string]string{"id": "sm-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doAPI(t, http.MethodPut, api+"/api/checkout/payment-method?user_id=u1", map[string]string{"id": "pm-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(raw, &view))
	assert.True(t, view.CanSubmit)
	assert.InDelta(t, 28.50, view.Totals.OrderTotal, 1e-9)
	assert.Equal(t, "28.50", view.DisplayTotal)

	// Submit and follow the redirect.
	resp, raw = doAPI(t, http.MethodPost, api+"/api/checkout/submit?user_id=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitResp struct {
		RedirectTo string `json:"redirectTo"`
	}
	require.NoError(t, json.Unmarshal(raw, &submitResp))
	assert.Equal(t, "/checkout/order-1", submitResp.RedirectTo)

	// The backend holds exactly what was submitted.
	order, ok := fb.Order("order-1")
	require.True(t, ok)
	assert.Equal(t, "u1", order.UserID)
	assert.InDelta(t, 28.50, order.OrderTotal, 1e-9)
	assert.Equal(t, "sm-1", order.ShippingMethodID)
	assert.Equal(t, "pm-1", order.PaymentMethodID)
	assert.Equal(t, 1, order.OrderStatusID)
	assert.Equal(t, "Jane Doe, 1 Main St, Springfield, 12345, US", order.ShippingAddress)
	require.Len(t, order.Lines, 2)

	// The confirmation page reads the order back by id.
	resp, raw = doAPI(t, http.MethodGet, api+"/api/checkout/confirmation/order-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var confirmed model.Order
	require.NoError(t, json.Unmarshal(raw, &confirmed))
	assert.Equal(t, "order-1", confirmed.ID)
	assert.InDelta(t, 28.50, confirmed.OrderTotal, 1e-9)
}

func TestCheckoutAPI_SubmitFailureKeepsFormState(t *testing.T) {
	fb := NewFakeBackend(t)
	api := SetupAPI(t, fb)

	doAPI(t, http.MethodGet, api+"/api/checkout?user_id=u1", nil)
	doAPI(t, http.MethodPut, api+"/api/checkout/address?user_id=u1", checkout.AddressForm{
		Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	})
	doAPI(t, http.MethodPut, api+"/api/checkout/shipping-method?user_id=u1", map[string]string{"id": "sm-2"})
	doAPI(t, http.MethodPut, api+"/api/checkout/payment-method?user_id=u1", map[string]string{"id": "pm-1"})

	fb.SetOrderFailure("out of stock")

	resp, raw := doAPI(t, http.MethodPost, api+"/api/checkout/submit?user_id=u1", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var view checkout.View
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, checkout.StateReady, view.State)
	assert.Equal(t, "out of stock", view.SubmitError)
	assert.Equal(t, "1 Main St", view.Address.Line1)
	assert.Equal(t, "sm-2", view.Shipping.SelectedID)
	assert.Equal(t, "pm-1", view.Payment.SelectedID)
	assert.True(t, view.CanSubmit)

	// Explicit user retry succeeds once the backend recovers.
	fb.SetOrderFailure("")

	resp, raw = doAPI(t, http.MethodPost, api+"/api/checkout/submit?user_id=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitResp struct {
		RedirectTo string `json:"redirectTo"`
	}
	require.NoError(t, json.Unmarshal(raw, &submitResp))
	assert.Equal(t, "/checkout/order-1", submitResp.RedirectTo)
}

func TestCheckoutAPI_AddPaymentMethodMidCheckout(t *testing.T) {
	fb := NewFakeBackend(t)
	api := SetupAPI(t, fb)

	doAPI(t, http.MethodGet, api+"/api/checkout?user_id=u1", nil)

	resp, raw := doAPI(t, http.MethodPost, api+"/api/checkout/payment-methods?user_id=u1", model.PaymentMethodRequest{
		Provider:   "mastercard",
		CardNumber: "5555555555554444",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.UserPaymentMethod
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "mastercard", created.Provider)
	assert.Equal(t, "**** 4444", created.MaskedNumber)

	// The side modal's success re-fetches the collection; the new
	// method is selectable immediately.
	resp, raw = doAPI(t, http.MethodPut, api+"/api/checkout/payment-method?user_id=u1", map[string]string{"id": created.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view checkout.View
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, created.ID, view.Payment.SelectedID)
	assert.Len(t, view.Payment.Methods, 2)
}

func TestCheckoutAPI_EmptyCartBlocksSubmission(t *testing.T) {
	fb := NewFakeBackend(t)
	api := SetupAPI(t, fb)

	// User u2 has no cart.
	resp, raw := doAPI(t, http.MethodGet, api+"/api/checkout?user_id=u2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view checkout.View
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Empty(t, view.Cart.Lines)
	assert.False(t, view.CanSubmit)

	resp, _ = doAPI(t, http.MethodPost, api+"/api/checkout/submit?user_id=u2", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, ok := fb.Order("order-1")
	assert.False(t, ok, "no order may be created for an empty cart")
}

func TestCheckoutAPI_RequiresBearerToken(t *testing.T) {
	fb := NewFakeBackend(t)
	api := SetupAPI(t, fb)

	resp, err := http.Get(api + "/api/checkout?user_id=u1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckoutAPI_HealthCheckSkipsAuth(t *testing.T) {
	fb := NewFakeBackend(t)
	api := SetupAPI(t, fb)

	resp, err := http.Get(api + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
