package home_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/tutorhub/internal/app/features/home"
	"github.com/dalemusser/tutorhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot(t *testing.T) {
	router := home.Routes(home.NewHandler(zap.NewNop()))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "TutorHub server is running" {
		t.Errorf("body: got %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type: got %q, want text/plain", ct)
	}
}

func TestServeRoot_PostNotAllowed(t *testing.T) {
	router := home.Routes(home.NewHandler(zap.NewNop()))

	req := httptest.NewRequest("POST", "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /: got %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestServeRoot_Direct(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "is running")
}
