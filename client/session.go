package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
)

// Outcome is the terminal state of one two-phase toggle.
type Outcome string

const (
	OutcomePending    Outcome = "pending"
	OutcomeCommitted  Outcome = "committed"
	OutcomeRolledBack Outcome = "rolled_back"
)

// Session is a session-scoped optimistic mirror of one shopper's cart
// and wishlist. The mirror answers membership reads instantly; every
// mutation is flipped locally first and then committed to the
// authoritative store, rolling the flip back if the commit fails.
// Reconcile replaces the mirror wholesale with server state and always
// wins over optimistic flips.
//
// A Session is safe for concurrent use. Each browser tab or goroutine
// working on behalf of the same shopper shares one Session.
type Session struct {
	api    *API
	logger *slog.Logger

	mu       sync.Mutex
	started  bool
	cart     []string
	wishlist []string
}

// NewSession creates an unstarted session over the given API client.
func NewSession(api *API, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		api:      api,
		logger:   logger,
		cart:     []string{},
		wishlist: []string{},
	}
}

// Start fetches the authoritative snapshot and seeds the mirror.
func (s *Session) Start(ctx context.Context) error {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append([]string{}, profile.Cart...)
	s.wishlist = append([]string{}, profile.Wishlist...)
	s.started = true
	return nil
}

// Reset drops all mirrored state, returning the session to unstarted.
// Used on sign-out.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = []string{}
	s.wishlist = []string{}
	s.started = false
}

// Started reports whether the mirror has been seeded.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Cart returns a snapshot copy of the mirrored cart ids.
func (s *Session) Cart() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.cart...)
}

// Wishlist returns a snapshot copy of the mirrored wishlist ids.
func (s *Session) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.wishlist...)
}

// Contains answers a membership read from the mirror without touching
// the network.
func (s *Session) Contains(set domain.SetName, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(*s.mirror(set), productID)
}

// OptimisticToggle flips the product's membership in the mirror only
// and returns the new desired presence. The caller is responsible for
// following up with Commit or Reconcile.
func (s *Session) OptimisticToggle(set domain.SetName, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flip(set, productID)
}

// Commit pushes one flip to the authoritative store. On success the
// mirror is replaced with the returned authoritative record. On failure
// the optimistic flip is reverted and the error returned.
func (s *Session) Commit(ctx context.Context, set domain.SetName, productID string, present bool) error {
	m, err := s.api.Toggle(ctx, set, productID, present)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Revert only if the mirror still shows the optimistic state.
		if contains(*s.mirror(set), productID) == present {
			s.flip(set, productID)
		}
		s.logger.WarnContext(ctx, "membership commit failed, mirror rolled back",
			slog.String("set", string(set)),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("commit toggle: %w", err)
	}

	s.cart = append([]string{}, m.Cart...)
	s.wishlist = append([]string{}, m.Wishlist...)
	return nil
}

// Toggle runs the full two-phase mutation: optimistic flip, then
// commit. The returned outcome is OutcomeCommitted or
// OutcomeRolledBack; the presence flag reflects the mirror afterward.
func (s *Session) Toggle(ctx context.Context, set domain.SetName, productID string) (Outcome, bool, error) {
	present := s.OptimisticToggle(set, productID)

	if err := s.Commit(ctx, set, productID, present); err != nil {
		return OutcomeRolledBack, s.Contains(set, productID), err
	}

	return OutcomeCommitted, s.Contains(set, productID), nil
}

// Reconcile re-fetches both authoritative sets and replaces the mirror
// wholesale. Server state always wins; this is the recovery path after
// any failure or unknown commit outcome.
func (s *Session) Reconcile(ctx context.Context) error {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		return fmt.Errorf("reconcile session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append([]string{}, profile.Cart...)
	s.wishlist = append([]string{}, profile.Wishlist...)
	return nil
}

// mirror returns a pointer to the backing slice of the named set.
// Callers must hold s.mu.
func (s *Session) mirror(set domain.SetName) *[]string {
	if set == domain.SetCart {
		return &s.cart
	}
	return &s.wishlist
}

// flip toggles membership in the mirror and returns the new presence.
// Callers must hold s.mu.
func (s *Session) flip(set domain.SetName, productID string) bool {
	ids := s.mirror(set)
	if contains(*ids, productID) {
		*ids = remove(*ids, productID)
		return false
	}
	*ids = append(*ids, productID)
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
