package router

import (
	"net/http"
	"strings"

	"kart-checkout/internal/handler"
	"kart-checkout/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(checkoutHandler *handler.CheckoutHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Checkout page aggregate (both with and without trailing slash)
	mux.HandleFunc("/api/checkout", checkoutHandler.Get)

	// Checkout sub-routes, dispatched on path and method
	mux.HandleFunc("/api/checkout/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/checkout/":
			checkoutHandler.Get(w, r)

		case r.URL.Path == "/api/checkout/address":
			checkoutHandler.UpdateAddress(w, r)

		case r.URL.Path == "/api/checkout/shipping-method":
			checkoutHandler.SelectShipping(w, r)

		case r.URL.Path == "/api/checkout/payment-method":
			checkoutHandler.SelectPayment(w, r)

		case r.URL.Path == "/api/checkout/payment-methods":
			checkoutHandler.CreatePaymentMethod(w, r)

		case r.URL.Path == "/api/checkout/submit":
			checkoutHandler.Submit(w, r)

		case strings.HasPrefix(r.URL.Path, "/api/checkout/confirmation/"):
			checkoutHandler.Confirmation(w, r)

		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> BearerAuth
	var h http.Handler = mux
	h = middleware.BearerAuth(logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
