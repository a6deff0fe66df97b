package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soundlink/core/auth"
)

func newTestHandler(repos Repos) *APIHandler {
	return NewAPIHandler(repos, nil, nil, nil, nil)
}

// decodeEnvelope parses a response body into the generic envelope map.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// withUser attaches authenticated-request context values the way
// AuthMiddleware does.
func withUser(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), "userID", userID)
	ctx = context.WithValue(ctx, "username", "tester")
	ctx = context.WithValue(ctx, "isAdmin", false)
	return r.WithContext(ctx)
}

func TestAuthMiddleware(t *testing.T) {
	auth.Configure("test-secret", time.Hour)
	h := newTestHandler(Repos{})

	var reachedUserID int64
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		reachedUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "NotBearer abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			protected(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			body := decodeEnvelope(t, rec)
			if body["success"] != false {
				t.Errorf("expected success=false envelope, got %v", body)
			}
		})
	}

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.GenerateToken(42, "tester", false)
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if reachedUserID != 42 {
			t.Errorf("handler saw userID %d, want 42", reachedUserID)
		}
	})
}

func TestAdminMiddleware(t *testing.T) {
	auth.Configure("test-secret", time.Hour)
	h := newTestHandler(Repos{})

	protected := h.AdminMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	regularToken, err := auth.GenerateToken(1, "user", false)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	adminToken, err := auth.GenerateToken(2, "admin", true)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+regularToken)
	rec := httptest.NewRecorder()
	protected(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("regular user: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	protected(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", rec.Code)
	}
}
