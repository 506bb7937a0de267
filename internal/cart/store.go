package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrNoSnapshot is returned by Snapshot.Load when no collection has been
// persisted yet.
var ErrNoSnapshot = errors.New("no cart snapshot")

// Action is a cart mutation applied through the store's reducer.
type Action interface {
	isAction()
}

// AddToCart merges the item into the cart: an existing row with the same
// identity key has its quantity increased; otherwise the item is appended.
type AddToCart struct {
	Item LineItem
}

// RemoveFromCart drops the row matching the key exactly. No-op if absent.
type RemoveFromCart struct {
	Key Key
}

// UpdateQuantity replaces the matching row's quantity verbatim. The reducer
// applies whatever value it is given; callers reject quantities below 1
// before dispatching.
type UpdateQuantity struct {
	Key      Key
	Quantity int
}

// ClearCart empties the collection unconditionally.
type ClearCart struct{}

func (AddToCart) isAction()      {}
func (RemoveFromCart) isAction() {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}

// reduce is the pure transition function over the line-item collection.
// It never mutates its input slice.
func reduce(state []LineItem, action Action) []LineItem {
	switch a := action.(type) {
	case AddToCart:
		for i, item := range state {
			if item.Key().Matches(a.Item.Key()) {
				next := make([]LineItem, len(state))
				copy(next, state)
				next[i].Quantity = item.Quantity + a.Item.Quantity
				return next
			}
		}
		next := make([]LineItem, len(state), len(state)+1)
		copy(next, state)
		return append(next, a.Item)

	case RemoveFromCart:
		next := make([]LineItem, 0, len(state))
		for _, item := range state {
			if !item.Key().Matches(a.Key) {
				next = append(next, item)
			}
		}
		return next

	case UpdateQuantity:
		next := make([]LineItem, len(state))
		copy(next, state)
		for i, item := range next {
			if item.Key().Matches(a.Key) {
				next[i].Quantity = a.Quantity
			}
		}
		return next

	case ClearCart:
		return []LineItem{}

	default:
		return state
	}
}

// Store holds the authoritative local cart state. It is the only writer of
// line items; readers subscribe or take copies. Every transition is written
// through the snapshot store so the cart survives restarts; a failed write
// is logged and otherwise swallowed, leaving the in-memory state
// authoritative for the current session.
type Store struct {
	mu     sync.Mutex
	items  []LineItem
	snap   Snapshot
	logger *slog.Logger
	subs   map[int]func([]LineItem)
	nextID int
}

// NewStore creates a store rehydrated from the snapshot. A missing or
// unreadable snapshot yields an empty cart.
func NewStore(ctx context.Context, snap Snapshot, logger *slog.Logger) *Store {
	s := &Store{
		items:  []LineItem{},
		snap:   snap,
		logger: logger,
		subs:   make(map[int]func([]LineItem)),
	}

	if snap == nil {
		return s
	}

	items, err := snap.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			logger.WarnContext(ctx, "cart snapshot unreadable, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return s
	}
	s.items = items
	return s
}

// Dispatch applies an action through the reducer and persists the result.
// Actions are applied strictly in the order issued.
func (s *Store) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	s.items = reduce(s.items, action)
	items := s.copyItems()
	subs := make([]func([]LineItem), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if s.snap != nil {
		if err := s.snap.Save(ctx, items); err != nil {
			// Accepted degradation: the cart will not survive a reload.
			s.logger.DebugContext(ctx, "cart snapshot write failed",
				slog.String("error", err.Error()),
			)
		}
	}

	for _, fn := range subs {
		fn(items)
	}
}

// Items returns a copy of the current line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ItemCount returns the total quantity across all line items (the header
// badge number).
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Subscribe registers fn to be called with a copy of the items after every
// dispatch. The returned function removes the subscription.
func (s *Store) Subscribe(fn func([]LineItem)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) copyItems() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}
