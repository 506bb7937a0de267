// Package checkout orchestrates order submission: validate the form, build
// the payload from the cart and the applied coupon, issue exactly one
// order-creation call, and clear the cart only on success.
package checkout

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ZeyadMohamed5/Morph/internal/cart"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
	"github.com/ZeyadMohamed5/Morph/internal/pricing"
	apperrors "github.com/ZeyadMohamed5/Morph/pkg/errors"
	"github.com/ZeyadMohamed5/Morph/pkg/validator"
)

// State is the checkout flow's position.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Form holds the customer and shipping fields. Validation happens on
// trimmed values, so whitespace-only input counts as empty.
type Form struct {
	FirstName      string `validate:"required"`
	LastName       string `validate:"required"`
	Email          string `validate:"required,email"`
	Mobile         string `validate:"required"`
	Address        string `validate:"required"`
	AnotherMobile  string
	AnotherAddress string
	PaymentMethod  domain.PaymentMethod
}

// trimmed returns a copy with every field trimmed.
func (f Form) trimmed() Form {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Mobile = strings.TrimSpace(f.Mobile)
	f.Address = strings.TrimSpace(f.Address)
	f.AnotherMobile = strings.TrimSpace(f.AnotherMobile)
	f.AnotherAddress = strings.TrimSpace(f.AnotherAddress)
	return f
}

// OrderCreator issues the order-creation request.
type OrderCreator interface {
	CreateOrder(ctx context.Context, payload domain.OrderPayload) (*domain.OrderConfirmation, error)
}

// Flow runs the checkout state machine over one cart. Editing is the only
// state accepting input; Submit drives Validating and Submitting and lands
// in Succeeded or back in Editing (after Failed) with the form preserved.
type Flow struct {
	mu      sync.Mutex
	state   State
	store   *cart.Store
	session *pricing.Session
	creator OrderCreator
	logger  *slog.Logger
	lastErr error
}

// NewFlow creates a checkout flow in the Editing state. session may be nil
// when no coupon support is wired.
func NewFlow(store *cart.Store, session *pricing.Session, creator OrderCreator, logger *slog.Logger) *Flow {
	return &Flow{
		state:   StateEditing,
		store:   store,
		session: session,
		creator: creator,
		logger:  logger,
	}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the failure from the last submission attempt, nil after a
// success or before any attempt.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submit runs validation and, when it passes, issues exactly one
// order-creation request.
//
// A validation failure returns the flow to Editing without any network call
// and without touching the cart. A submission failure also returns to
// Editing, preserving the cart and surfacing the server's message; there is
// no automatic retry and no idempotency key, so calling Submit again is a
// brand-new order. Success clears the cart and moves to Succeeded.
func (f *Flow) Submit(ctx context.Context, form Form) (*domain.OrderConfirmation, error) {
	f.mu.Lock()
	if f.state != StateEditing {
		state := f.state
		f.mu.Unlock()
		return nil, apperrors.InvalidInput("checkout already " + string(state))
	}
	f.state = StateValidating
	f.mu.Unlock()

	trimmed := form.trimmed()
	if err := f.validate(trimmed); err != nil {
		f.fail(err)
		return nil, err
	}

	f.mu.Lock()
	f.state = StateSubmitting
	f.mu.Unlock()

	payload := f.buildPayload(trimmed)
	confirmation, err := f.creator.CreateOrder(ctx, payload)
	if err != nil {
		f.logger.WarnContext(ctx, "order submission failed",
			slog.String("error", err.Error()),
		)
		f.fail(err)
		return nil, err
	}

	f.store.Dispatch(ctx, cart.ClearCart{})

	f.mu.Lock()
	f.state = StateSucceeded
	f.lastErr = nil
	f.mu.Unlock()

	f.logger.InfoContext(ctx, "order submitted",
		slog.Int64("order_id", confirmation.OrderID),
	)
	return confirmation, nil
}

// Reset returns a finished flow to Editing for another attempt.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateEditing
	f.lastErr = nil
}

func (f *Flow) validate(form Form) error {
	if err := validator.Validate(form); err != nil {
		return err
	}
	if !form.PaymentMethod.Enabled() {
		return apperrors.InvalidInput("payment method not available")
	}
	if f.store.Len() == 0 {
		return apperrors.InvalidInput("cart is empty")
	}
	return nil
}

func (f *Flow) buildPayload(form Form) domain.OrderPayload {
	payload := domain.OrderPayload{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		CustomerEmail:  form.Email,
		MobileNumber:   form.Mobile,
		Address:        form.Address,
		AnotherMobile:  form.AnotherMobile,
		AnotherAddress: form.AnotherAddress,
		PaymentMethod:  form.PaymentMethod,
		Items:          pricing.OrderItems(f.store.Items()),
	}
	if f.session != nil {
		if applied := f.session.AppliedCoupon(); applied != nil {
			code := applied.CouponCode
			payload.CouponCode = &code
		}
	}
	return payload
}

// fail records the error and returns to Editing. Failure is a transit state:
// the form contents are the caller's and stay untouched, the cart is
// preserved, and the flow accepts another Submit immediately.
func (f *Flow) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateEditing
	f.lastErr = err
}
