package integration

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

const storefrontPort = 8080

// baseURL returns the base URL of the storefront service.
func baseURL() string {
	return fmt.Sprintf("http://localhost:%d", storefrontPort)
}

// uniqueIdentity generates a unique shopper identity to avoid test collisions.
func uniqueIdentity() string {
	return fmt.Sprintf("it-user-%d-%d", time.Now().UnixNano(), rand.Intn(100000))
}

// skipIfNotRunning performs a quick health check against the service.
// If it is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("storefront on port %d not reachable (Docker not running?): %v", storefrontPort, err)
	}
	resp.Body.Close()
}

// devToken mints an HS256 access token with the development secret,
// standing in for the external identity provider. Override the secret
// with JWT_SECRET when the stack runs with a non-default one.
func devToken(t *testing.T, identity string) string {
	t.Helper()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-this-to-a-secure-secret"
	}

	enc := func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal token segment: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}

	now := time.Now().Unix()
	header := enc(map[string]string{"alg": "HS256", "typ": "JWT"})
	claims := enc(map[string]any{
		"identity": identity,
		"email":    identity + "@test.example.com",
		"sub":      identity,
		"iat":      now,
		"exp":      now + 900,
		"iss":      "nuventa-identity",
	})

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(header + "." + claims))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return header + "." + claims + "." + sig
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body %q: %v", string(raw), err)
		}
	}
	return decoded
}

// httpGet performs a GET request, optionally authenticated.
func httpGet(t *testing.T, url, token string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("create GET request for %s: %v", url, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// httpSend performs a request with a JSON body.
func httpSend(t *testing.T, method, url, token string, body any) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("create %s request for %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d", want, got)
	}
}

// dataField extracts the "data" member of the standard envelope.
func dataField(body map[string]interface{}) interface{} {
	if body == nil {
		return nil
	}
	return body["data"]
}
