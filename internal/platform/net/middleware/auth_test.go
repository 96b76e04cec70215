package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "vidqa/internal/platform/net"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAPIKeyRejectsWrongKey(t *testing.T) {
	h := APIKey("secret", writeJSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAcceptsMatchAndTagsClient(t *testing.T) {
	var client string
	h := APIKey("secret", writeJSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client = pnet.APIClient(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if client != "ingest" {
		t.Fatalf("api client = %q, want ingest", client)
	}
}

func TestAPIKeyEmptyKeyDisablesCheck(t *testing.T) {
	h := APIKey("", writeJSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/ingest/run", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with no key configured", rec.Code)
	}
}
