package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/pkg/httpclient"
)

// fakeStore is an in-process stand-in for the storefront service. It
// applies real toggle semantics so session tests exercise the same
// add-if-absent / remove-if-present behavior the server implements.
type fakeStore struct {
	mu          sync.Mutex
	cart        []string
	wishlist    []string
	failToggles bool
	toggleCalls int
}

func (f *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, map[string]any{
			"identity":   "user-1",
			"first_name": "Asha",
			"cart":       f.cart,
			"wishlist":   f.wishlist,
		})
	})

	mux.HandleFunc("POST /api/v1/memberships/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.toggleCalls++

		if f.failToggles {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":"STORE_UNAVAILABLE","message":"store temporarily unavailable"}}`))
			return
		}

		parts := strings.Split(r.URL.Path, "/")
		set := parts[4]

		var req struct {
			ProductID string `json:"product_id"`
			Append    *bool  `json:"append"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil || req.Append == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		target := &f.cart
		if set == "wishlist" {
			target = &f.wishlist
		}

		if *req.Append {
			if !containsID(*target, req.ProductID) {
				*target = append(*target, req.ProductID)
			}
		} else {
			*target = removeID(*target, req.ProductID)
		}

		writeData(w, map[string]any{
			"identity": "user-1",
			"cart":     f.cart,
			"wishlist": f.wishlist,
		})
	})

	return mux
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := []string{}
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func newSessionFixture(t *testing.T) (*Session, *fakeStore) {
	t.Helper()

	store := &fakeStore{cart: []string{}, wishlist: []string{}}
	srv := httptest.NewServer(store.handler())
	t.Cleanup(srv.Close)

	api := NewAPI(APIConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		HTTP: httpclient.Config{
			Timeout:         2 * time.Second,
			MaxRetries:      0,
			RetryWaitMin:    time.Millisecond,
			RetryWaitMax:    time.Millisecond,
			MaxConnsPerHost: 10,
		},
		Breaker: httpclient.CircuitBreakerConfig{
			Name:         "session-test-" + t.Name(),
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			FailureRatio: 0.99,
			MinRequests:  100,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return NewSession(api, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func TestSession_StartSeedsMirror(t *testing.T) {
	session, store := newSessionFixture(t)
	store.cart = []string{"p1"}
	store.wishlist = []string{"p2", "p3"}

	require.NoError(t, session.Start(context.Background()))
	assert.True(t, session.Started())
	assert.Equal(t, []string{"p1"}, session.Cart())
	assert.Equal(t, []string{"p2", "p3"}, session.Wishlist())
}

func TestSession_FirstToggleCreatesMembership(t *testing.T) {
	session, store := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	outcome, present, err := session.Toggle(ctx, domain.SetCart, "p1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.True(t, present)

	assert.Equal(t, []string{"p1"}, session.Cart())
	assert.Equal(t, []string{"p1"}, store.cart)
	assert.Empty(t, session.Wishlist())
}

func TestSession_ToggleSymmetry(t *testing.T) {
	session, store := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	_, present, err := session.Toggle(ctx, domain.SetWishlist, "p1")
	require.NoError(t, err)
	assert.True(t, present)

	_, present, err = session.Toggle(ctx, domain.SetWishlist, "p1")
	require.NoError(t, err)
	assert.False(t, present)

	assert.Empty(t, session.Wishlist())
	assert.Empty(t, store.wishlist)
}

func TestSession_RemovalLeavesSiblingSet(t *testing.T) {
	session, store := newSessionFixture(t)
	store.cart = []string{"p1"}
	store.wishlist = []string{"p1"}
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	_, present, err := session.Toggle(ctx, domain.SetCart, "p1")
	require.NoError(t, err)
	assert.False(t, present)

	assert.Empty(t, session.Cart())
	assert.Equal(t, []string{"p1"}, session.Wishlist())
	assert.Equal(t, []string{"p1"}, store.wishlist)
}

func TestSession_OptimisticToggleIsLocalOnly(t *testing.T) {
	session, store := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))
	callsAfterStart := store.toggleCalls

	present := session.OptimisticToggle(domain.SetCart, "p1")
	assert.True(t, present)
	assert.True(t, session.Contains(domain.SetCart, "p1"))
	assert.Equal(t, callsAfterStart, store.toggleCalls)
	assert.Empty(t, store.cart)
}

func TestSession_FailedCommitRollsBackMirror(t *testing.T) {
	session, store := newSessionFixture(t)
	store.cart = []string{"p1"}
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	store.failToggles = true

	outcome, present, err := session.Toggle(ctx, domain.SetCart, "p2")
	require.Error(t, err)
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.False(t, present)

	// Mirror reverted to pre-toggle state.
	assert.Equal(t, []string{"p1"}, session.Cart())

	// Reconcile against the untouched server agrees with the mirror.
	store.failToggles = false
	require.NoError(t, session.Reconcile(ctx))
	assert.Equal(t, []string{"p1"}, session.Cart())
}

func TestSession_ReconcileWinsOverOptimisticState(t *testing.T) {
	session, store := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	// Local flip that was never committed.
	session.OptimisticToggle(domain.SetCart, "p9")
	assert.True(t, session.Contains(domain.SetCart, "p9"))

	// Another device changed the authoritative record meanwhile.
	store.mu.Lock()
	store.cart = []string{"p5"}
	store.mu.Unlock()

	require.NoError(t, session.Reconcile(ctx))
	assert.Equal(t, []string{"p5"}, session.Cart())
	assert.False(t, session.Contains(domain.SetCart, "p9"))
}

func TestSession_ResetClearsMirror(t *testing.T) {
	session, store := newSessionFixture(t)
	store.cart = []string{"p1"}
	require.NoError(t, session.Start(context.Background()))

	session.Reset()
	assert.False(t, session.Started())
	assert.Empty(t, session.Cart())
	assert.Empty(t, session.Wishlist())
}

func TestSession_NoDuplicatesAfterRepeatedAdds(t *testing.T) {
	session, _ := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	// Toggle on, off, on again; the mirror must hold the id once.
	for i := 0; i < 3; i++ {
		_, _, err := session.Toggle(ctx, domain.SetCart, "p1")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"p1"}, session.Cart())
}

func TestSession_ConcurrentTogglesStayConsistent(t *testing.T) {
	session, store := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx))

	ids := []string{"p1", "p2", "p3", "p4", "p5"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, err := session.Toggle(ctx, domain.SetCart, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	require.NoError(t, session.Reconcile(ctx))
	assert.ElementsMatch(t, ids, session.Cart())
	assert.ElementsMatch(t, ids, store.cart)
}
