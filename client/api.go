// Package client is the storefront's Go SDK: a thin authenticated API
// client plus a session-scoped optimistic mirror of the shopper's cart
// and wishlist.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/pkg/httpclient"
)

// API talks to the storefront service over HTTP with retries and a
// circuit breaker. All calls carry the session's bearer token.
type API struct {
	baseURL string
	token   string
	http    *httpclient.CircuitBreakerClient
}

// APIConfig configures the API client.
type APIConfig struct {
	BaseURL string
	Token   string
	HTTP    httpclient.Config
	Breaker httpclient.CircuitBreakerConfig
	Logger  *slog.Logger
}

// NewAPI creates an API client for one authenticated shopper session.
func NewAPI(cfg APIConfig) *API {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = httpclient.DefaultCircuitBreakerConfig("storefront-api")
	}

	return &API{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    httpclient.NewCircuitBreakerClient(httpclient.New(cfg.HTTP), cfg.Breaker, logger),
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Profile fetches the session snapshot: contact fields plus both
// authoritative membership sets.
func (a *API) Profile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := a.get(ctx, "/api/v1/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MembershipIDs fetches the raw id list of one set.
func (a *API) MembershipIDs(ctx context.Context, set domain.SetName) ([]string, error) {
	var ids []string
	if err := a.get(ctx, "/api/v1/memberships/"+string(set)+"/ids", &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// JoinedMembership fetches one set joined against the catalog.
func (a *API) JoinedMembership(ctx context.Context, set domain.SetName) ([]domain.Product, error) {
	var products []domain.Product
	if err := a.get(ctx, "/api/v1/memberships/"+string(set), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Toggle commits one membership flip to the authoritative store and
// returns the resulting record. The operation is idempotent, so a
// retried request that already landed is harmless.
func (a *API) Toggle(ctx context.Context, set domain.SetName, productID string, present bool) (*domain.Membership, error) {
	body, err := json.Marshal(map[string]any{
		"product_id": productID,
		"append":     present,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal toggle request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.baseURL+"/api/v1/memberships/"+string(set)+"/toggle", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build toggle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("toggle %s/%s: %w", set, productID, err)
	}
	defer resp.Body.Close()

	var m domain.Membership
	if err := decodeEnvelope(resp, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (a *API) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp, out)
}

func decodeEnvelope(resp *http.Response, out any) error {
	if resp.StatusCode >= http.StatusBadRequest {
		return httpclient.ParseResponseError(resp, "storefront")
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Error != nil {
		return fmt.Errorf("storefront error %s: %s", env.Error.Code, env.Error.Message)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
