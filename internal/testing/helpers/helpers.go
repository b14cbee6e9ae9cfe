// Package helpers provides common test utilities for e2e testing.
//
// This package includes the full wired application server, signed
// launch-payload builders, and HTTP request helpers for exercising API
// endpoints end to end.
package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/playforge/miniapp-api/internal/handler"
	"github.com/playforge/miniapp-api/internal/middleware"
	"github.com/playforge/miniapp-api/internal/repository"
	"github.com/playforge/miniapp-api/internal/service"
	"github.com/playforge/miniapp-api/pkg/initdata"
)

// TestBotToken is the bot token the test server verifies payloads against.
const TestBotToken = "7000000001:TEST-e2e-bot-token"

// ============================================================================
// Application Server
// ============================================================================

// NewServer wires repositories, services, handlers and middleware over
// the given database, mirroring the production router.
func NewServer(t *testing.T, db *sqlx.DB) *httptest.Server {
	t.Helper()

	playerRepo := repository.NewPlayerRepository(db)
	playerService := service.NewPlayerService(playerRepo)
	playerHandler := handler.NewPlayerHandler(playerService, false)

	mux := http.NewServeMux()
	gate := middleware.InitData(TestBotToken)
	mux.Handle("POST /api/v1/players", gate(http.HandlerFunc(playerHandler.CreateOrGet)))
	mux.HandleFunc("GET /api/v1/players/{playerIds}", playerHandler.Get)
	mux.HandleFunc("GET /api/v1/players/username/{username}", playerHandler.Search)

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Recovery(false),
	)

	srv := httptest.NewServer(wrapped)
	t.Cleanup(srv.Close)
	return srv
}

// ============================================================================
// Launch Payload Helpers
// ============================================================================

// User is the identity a signed payload carries.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// SignedInitData builds a payload for the given user, signed with
// TestBotToken so the gate accepts it.
func SignedInitData(t *testing.T, user User) string {
	t.Helper()

	userJSON, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("helpers: marshaling user claim: %v", err)
	}

	claims := map[string]string{
		"auth_date": "1724900000",
		"user":      string(userJSON),
	}

	values := url.Values{}
	for k, v := range claims {
		values.Set(k, v)
	}
	values.Set("hash", initdata.Sign(claims, TestBotToken))
	return values.Encode()
}

// ============================================================================
// HTTP Helpers
// ============================================================================

// PostPlayers sends the gated create-or-get request carrying payload.
func PostPlayers(t *testing.T, srv *httptest.Server, payload string) (*http.Response, []byte) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"initData": payload})
	if err != nil {
		t.Fatalf("helpers: marshaling request body: %v", err)
	}
	return do(t, srv, http.MethodPost, "/api/v1/players", body)
}

// Get sends a GET request to the given path.
func Get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	return do(t, srv, http.MethodGet, path, nil)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body []byte) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("helpers: building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("helpers: %s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("helpers: reading response body: %v", err)
	}
	return resp, data
}

// DecodeResult unmarshals a single-resource envelope into out.
func DecodeResult(t *testing.T, data []byte, out interface{}) {
	t.Helper()

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("helpers: decoding result envelope %q: %v", data, err)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		t.Fatalf("helpers: decoding result: %v", err)
	}
}
