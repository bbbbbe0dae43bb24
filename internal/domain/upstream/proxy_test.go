package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/logging"
)

func testProxy(t *testing.T) *Proxy {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewProxy(config.UpstreamConfig{Timeout: 2 * time.Second}, logger)
}

func TestFetchJSONByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"ad": "Yusuf", "soyad": "Kaya"}`))
	}))
	defer srv.Close()

	res := testProxy(t).Fetch(context.Background(), srv.URL)
	if !res.OK || res.StatusCode != 200 {
		t.Fatalf("unexpected result: %+v", res)
	}
	obj, ok := res.JSON.(map[string]interface{})
	if !ok {
		t.Fatalf("expected decoded object, got %T", res.JSON)
	}
	if obj["ad"] != "Yusuf" {
		t.Fatalf("unexpected payload: %v", obj)
	}
	if res.Text != "" {
		t.Fatal("JSON result should not carry text")
	}
}

func TestFetchJSONBySniffing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Wrong content type, JSON body.
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`  [1, 2, 3]`))
	}))
	defer srv.Close()

	res := testProxy(t).Fetch(context.Background(), srv.URL)
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}
	arr, ok := res.JSON.([]interface{})
	if !ok || len(arr) != 3 {
		t.Fatalf("expected decoded array, got %#v", res.JSON)
	}
}

func TestFetchJSONContentTypeIgnoresCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Odd casing, bare JSON scalar that sniffing alone would miss.
		w.Header().Set("Content-Type", "Application/JSON")
		w.Write([]byte(`42`))
	}))
	defer srv.Close()

	res := testProxy(t).Fetch(context.Background(), srv.URL)
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}
	num, ok := res.JSON.(float64)
	if !ok || num != 42 {
		t.Fatalf("expected decoded number, got %#v", res.JSON)
	}
}

func TestFetchMalformedJSONFallsBackToText(t *testing.T) {
	body := `{"broken": `
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	res := testProxy(t).Fetch(context.Background(), srv.URL)
	if !res.OK {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.JSON != nil {
		t.Fatalf("malformed JSON should not decode, got %#v", res.JSON)
	}
	if res.Text != body {
		t.Fatalf("text = %q, want %q", res.Text, body)
	}
}

func TestFetchPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("kayit bulunamadi"))
	}))
	defer srv.Close()

	res := testProxy(t).Fetch(context.Background(), srv.URL)
	if !res.OK || res.Text != "kayit bulunamadi" || res.JSON != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestFetchRelaysUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	}))
	defer srv.Close()

	res := testProxy(t).Fetch(context.Background(), srv.URL)
	if !res.OK {
		t.Fatal("an HTTP error response is still a relayable result")
	}
	if res.StatusCode != 404 || res.Text != "not found" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	res := testProxy(t).Fetch(context.Background(), "http://127.0.0.1:1/nope")
	if res.OK {
		t.Fatal("transport failure must not be OK")
	}
	if res.StatusCode != 502 {
		t.Fatalf("status = %d, want 502", res.StatusCode)
	}
	if res.Err == "" {
		t.Fatal("transport failure should carry an error description")
	}
}
