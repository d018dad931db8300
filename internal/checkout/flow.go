package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"kart-checkout/internal/model"
	"kart-checkout/internal/pricing"
	"kart-checkout/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Flow is the page-level controller for one user's checkout. It joins
// the three independent stores, recomputes totals on every relevant
// change and owns the single create-order call. All durable state
// lives behind the stores; a Flow is cheap to discard.
type Flow struct {
	userID   string
	cart     store.CartStore
	shipping store.ShippingMethodStore
	payments store.PaymentMethodStore
	orders   store.OrderStore
	statusID int
	logger   zerolog.Logger

	mu               sync.Mutex
	state            State
	loaded           bool
	loading          bool
	address          AddressForm
	shippingMethodID string
	paymentMethodID  string
	submitting       bool
	submitErr        string
	redirectTo       string
}

// NewFlow creates a checkout flow for one user.
func NewFlow(
	userID string,
	cart store.CartStore,
	shipping store.ShippingMethodStore,
	payments store.PaymentMethodStore,
	orders store.OrderStore,
	statusID int,
	logger zerolog.Logger,
) *Flow {
	return &Flow{
		userID:   userID,
		cart:     cart,
		shipping: shipping,
		payments: payments,
		orders:   orders,
		statusID: statusID,
		logger:   logger.With().Str("flow", "checkout").Str("user_id", userID).Logger(),
		state:    StateLoading,
	}
}

// Load dispatches the three initial fetches concurrently and waits for
// all of them to resolve. Completion order is unconstrained and a
// failed section must not cancel its siblings, so each goroutine
// records its outcome in the store and returns nil. Calling Load again
// once loaded (or while another Load is in flight) is a no-op; the
// caller simply renders whatever has resolved so far.
func (f *Flow) Load(ctx context.Context) {
	f.mu.Lock()
	if f.loaded || f.loading {
		f.mu.Unlock()
		return
	}
	f.loading = true
	f.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_ = f.cart.Fetch(gctx, f.userID)
		return nil
	})
	g.Go(func() error {
		_ = f.shipping.Fetch(gctx)
		return nil
	})
	g.Go(func() error {
		_ = f.payments.Fetch(gctx, f.userID)
		return nil
	})
	_ = g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	f.loaded = true
	if f.state == StateLoading {
		f.state = StateReady
	}

	f.logger.Debug().Msg("initial checkout data resolved")
}

// Reload discards the loaded flag and fetches everything again. Used
// for explicit user-initiated retry after a section failed.
func (f *Flow) Reload(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return model.ErrSubmissionInFlight
	}
	if f.state.IsTerminal() {
		f.mu.Unlock()
		return model.ErrCheckoutComplete
	}
	f.loaded = false
	f.mu.Unlock()

	f.Load(ctx)
	return nil
}

// SetAddress replaces the address form with the user's latest edits.
func (f *Flow) SetAddress(form AddressForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}

	f.address = form
	return nil
}

// SelectShipping selects a shipping method by id. An empty id clears
// the selection.
func (f *Flow) SelectShipping(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}

	if id != "" {
		if _, ok := f.shipping.Get(id); !ok {
			return model.ErrUnknownShipping
		}
	}

	f.shippingMethodID = id
	return nil
}

// SelectPayment selects a payment method by id. An empty id clears the
// selection.
func (f *Flow) SelectPayment(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}

	if id != "" {
		if _, ok := f.payments.Get(id); !ok {
			return model.ErrUnknownPayment
		}
	}

	f.paymentMethodID = id
	return nil
}

// AddPaymentMethod routes the side-modal create through the payment
// store, which re-fetches the collection on success. The flow stays in
// Ready throughout.
func (f *Flow) AddPaymentMethod(ctx context.Context, req *model.PaymentMethodRequest) (*model.UserPaymentMethod, error) {
	f.mu.Lock()
	if err := f.editable(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()

	if req == nil {
		req = &model.PaymentMethodRequest{}
	}
	req.UserID = f.userID

	return f.payments.Create(ctx, req)
}

// Submit validates the form, assembles the order payload and issues
// the single create-order call. A second Submit while one is in flight
// is rejected without touching the backend. On failure the flow
// returns to Ready with an inline error and every field preserved
// exactly as entered.
func (f *Flow) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()

	if f.state.IsTerminal() {
		f.mu.Unlock()
		return "", model.ErrCheckoutComplete
	}
	if f.submitting {
		f.mu.Unlock()
		return "", model.ErrSubmissionInFlight
	}

	cartSnap := f.cart.Snapshot()
	if cartSnap.Cart.IsEmpty() {
		f.mu.Unlock()
		return "", model.ErrEmptyCart
	}
	if !f.address.Complete() {
		f.mu.Unlock()
		return "", model.ErrMissingAddress
	}
	if f.shippingMethodID == "" {
		f.mu.Unlock()
		return "", model.ErrMissingShipping
	}
	method, ok := f.shipping.Get(f.shippingMethodID)
	if !ok {
		f.mu.Unlock()
		return "", model.ErrUnknownShipping
	}
	if f.paymentMethodID == "" {
		f.mu.Unlock()
		return "", model.ErrMissingPayment
	}
	if _, ok := f.payments.Get(f.paymentMethodID); !ok {
		f.mu.Unlock()
		return "", model.ErrUnknownPayment
	}

	// Totals are derived here, at submission time, and nowhere else.
	totals := pricing.Derive(cartSnap.Cart.Lines, method)

	lines := make([]model.OrderLineRequest, len(cartSnap.Cart.Lines))
	for i, line := range cartSnap.Cart.Lines {
		lines[i] = model.OrderLineRequest{
			ProductItemID: line.ProductItemID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
		}
	}

	req := &model.OrderRequest{
		UserID:           f.userID,
		OrderDate:        time.Now().UTC(),
		PaymentMethodID:  f.paymentMethodID,
		ShippingAddress:  f.address.Flatten(),
		ShippingMethodID: f.shippingMethodID,
		OrderTotal:       totals.OrderTotal,
		OrderStatusID:    f.statusID,
		Lines:            lines,
	}

	f.submitting = true
	f.state = StateSubmitting
	f.submitErr = ""
	f.mu.Unlock()

	order, err := f.orders.Create(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.state = StateReady
		f.submitErr = submissionMessage(err)
		f.logger.Warn().
			Err(err).
			Float64("order_total", req.OrderTotal).
			Msg("order submission failed")
		return "", err
	}

	f.state = StateTerminal
	f.redirectTo = "/checkout/" + order.ID
	f.logger.Info().
		Str("order_id", order.ID).
		Float64("order_total", req.OrderTotal).
		Msg("checkout completed")

	return f.redirectTo, nil
}

// View assembles the aggregated page state from the store snapshots
// and the flow's own fields. Safe to call in any state, including
// while the initial fetches are still in flight.
func (f *Flow) View() View {
	cartSnap := f.cart.Snapshot()
	shippingSnap := f.shipping.Snapshot()
	paymentSnap := f.payments.Snapshot()

	f.mu.Lock()
	defer f.mu.Unlock()

	var lines []model.CartLine
	if cartSnap.Cart != nil {
		lines = cartSnap.Cart.Lines
	}

	var selected *model.ShippingMethod
	if f.shippingMethodID != "" {
		for i := range shippingSnap.Methods {
			if shippingSnap.Methods[i].ID == f.shippingMethodID {
				selected = &shippingSnap.Methods[i]
				break
			}
		}
	}

	totals := pricing.Derive(lines, selected)

	paymentSelected := false
	for i := range paymentSnap.Methods {
		if paymentSnap.Methods[i].ID == f.paymentMethodID {
			paymentSelected = true
			break
		}
	}

	canSubmit := f.state == StateReady &&
		!f.submitting &&
		len(lines) > 0 &&
		f.address.Complete() &&
		selected != nil &&
		f.paymentMethodID != "" &&
		paymentSelected

	return View{
		State:   f.state,
		Address: f.address,
		Cart: CartSection{
			Lines:   lines,
			Loading: cartSnap.Loading,
			Error:   cartSnap.Err,
		},
		Shipping: ShippingSection{
			Methods:    shippingSnap.Methods,
			SelectedID: f.shippingMethodID,
			Loading:    shippingSnap.Loading,
			Error:      shippingSnap.Err,
		},
		Payment: PaymentSection{
			Methods:    paymentSnap.Methods,
			SelectedID: f.paymentMethodID,
			Loading:    paymentSnap.Loading,
			Error:      paymentSnap.Err,
		},
		Totals:       totals,
		DisplayTotal: pricing.FormatAmount(totals.OrderTotal),
		CanSubmit:    canSubmit,
		SubmitError:  f.submitErr,
		RedirectTo:   f.redirectTo,
	}
}

// editable rejects edits outside the Ready window. Callers hold f.mu.
func (f *Flow) editable() error {
	if f.state.IsTerminal() {
		return model.ErrCheckoutComplete
	}
	if f.submitting {
		return model.ErrSubmissionInFlight
	}
	return nil
}

// submissionMessage extracts the user-facing banner text from a failed
// submission.
func submissionMessage(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
