package pricing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ZeyadMohamed5/Morph/internal/cart"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
)

// CouponApplier submits a coupon code with the cart contents and returns the
// server's authoritative discount computation.
type CouponApplier interface {
	ApplyCoupon(ctx context.Context, code string, items []domain.OrderItem) (*domain.AppliedCoupon, error)
}

// Session tracks the transiently applied coupon for the current cart. The
// applied result is never persisted, and any cart mutation after a
// successful application drops it: the discount was computed against a cart
// that no longer exists, so the user must re-apply.
type Session struct {
	mu          sync.Mutex
	store       *cart.Store
	applier     CouponApplier
	logger      *slog.Logger
	applied     *domain.AppliedCoupon
	unsubscribe func()
}

// NewSession creates a coupon session bound to the cart store. Close it to
// release the store subscription.
func NewSession(store *cart.Store, applier CouponApplier, logger *slog.Logger) *Session {
	s := &Session{store: store, applier: applier, logger: logger}
	s.unsubscribe = store.Subscribe(func([]cart.LineItem) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.applied != nil {
			s.logger.Debug("cart changed, applied coupon dropped",
				slog.String("code", s.applied.CouponCode),
			)
			s.applied = nil
		}
	})
	return s
}

// ApplyCoupon submits the code against the current cart. On success the
// result is kept until the cart changes or ClearCoupon is called; on failure
// the previous applied state is untouched and the server's rejection message
// travels up verbatim inside the error.
func (s *Session) ApplyCoupon(ctx context.Context, code string) (*domain.AppliedCoupon, error) {
	items := OrderItems(s.store.Items())

	applied, err := s.applier.ApplyCoupon(ctx, code, items)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.applied = applied
	s.mu.Unlock()
	return applied, nil
}

// AppliedCoupon returns the currently applied coupon, or nil.
func (s *Session) AppliedCoupon() *domain.AppliedCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// ClearCoupon drops the applied coupon.
func (s *Session) ClearCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
}

// Close releases the cart store subscription.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
