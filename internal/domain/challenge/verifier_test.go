package challenge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/logging"
)

func testVerifier(t *testing.T, url string) *Verifier {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewVerifier(config.ChallengeConfig{
		Secret:    "shared-secret",
		VerifyURL: url,
		Timeout:   2 * time.Second,
	}, logger)
}

func TestVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostFormValue("secret") != "shared-secret" {
			t.Errorf("secret not forwarded, got %q", r.PostFormValue("secret"))
		}
		if r.PostFormValue("response") != "challenge-token" {
			t.Errorf("response not forwarded, got %q", r.PostFormValue("response"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	v := testVerifier(t, srv.URL)
	if !v.Verify(context.Background(), "challenge-token") {
		t.Fatal("expected verification to pass")
	}
}

func TestVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := testVerifier(t, srv.URL)
	if v.Verify(context.Background(), "bad-token") {
		t.Fatal("expected verification to fail")
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	v := testVerifier(t, srv.URL)
	if v.Verify(context.Background(), "") {
		t.Fatal("empty token must fail")
	}
	if called {
		t.Fatal("empty token must not hit the verification service")
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	// Service is unreachable.
	v := testVerifier(t, "http://127.0.0.1:1")
	if v.Verify(context.Background(), "challenge-token") {
		t.Fatal("unreachable service must fail closed")
	}

	// Service errors out.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v = testVerifier(t, srv.URL)
	if v.Verify(context.Background(), "challenge-token") {
		t.Fatal("5xx from the service must fail closed")
	}
}
