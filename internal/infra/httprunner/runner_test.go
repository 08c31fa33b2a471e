package httprunner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/acuetara/humo/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestRunner_SnapshotsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Process-Time", "0.0023")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	r := New(srv.Client())
	check := domain.CheckSpec{
		Name:   "home",
		Method: domain.MethodGet,
		Path:   "/",
		Assert: domain.AssertionsSpec{Status: intPtr(200)},
	}

	res, err := r.Run(context.Background(), check, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Error != nil {
		t.Fatalf("unexpected run error: %+v", res.Error)
	}
	if res.StatusCode != 200 {
		t.Fatalf("status = %d", res.StatusCode)
	}
	got, ok := domain.HeaderValue(res.Response.Headers, "x-process-time")
	if !ok || got != "0.0023" {
		t.Fatalf("X-Process-Time = %q (found=%v)", got, ok)
	}
	if string(res.Response.Body) != "<html>ok</html>" {
		t.Fatalf("body = %q", res.Response.Body)
	}
	if res.LatencyMS < 0 {
		t.Fatalf("negative latency %d", res.LatencyMS)
	}
}

func TestRunner_ConnectionRefusedLandsInResult(t *testing.T) {
	// Closed server: the address is valid but nothing listens anymore.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	r := New(&http.Client{Timeout: 2 * time.Second})
	check := domain.CheckSpec{Name: "down", Method: domain.MethodGet, Path: "/"}

	res, err := r.Run(context.Background(), check, url, nil)
	if err != nil {
		t.Fatalf("transport failures must not surface as run errors: %v", err)
	}
	if res.Error == nil {
		t.Fatalf("expected a recorded run error")
	}
	if !strings.HasPrefix(res.Error.Message, "request error: ") {
		t.Fatalf("unexpected message %q", res.Error.Message)
	}
	if res.Error.Kind != domain.RunErrorConn {
		t.Fatalf("expected connection kind, got %q", res.Error.Kind)
	}
}

func TestRunner_TimeoutClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	r := New(&http.Client{Timeout: 50 * time.Millisecond})
	check := domain.CheckSpec{Name: "slow", Method: domain.MethodGet, Path: "/"}

	res, err := r.Run(context.Background(), check, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Error == nil || res.Error.Kind != domain.RunErrorTimeout {
		t.Fatalf("expected timeout classification, got %+v", res.Error)
	}
}

func TestRunner_TruncatesLargeBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	r := New(srv.Client(), WithMaxBodyBytes(16))
	res, err := r.Run(context.Background(), domain.CheckSpec{Name: "big", Path: "/"}, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Response.Truncated {
		t.Fatalf("expected truncation flag")
	}
	if len(res.Response.Body) != 16 {
		t.Fatalf("body length = %d", len(res.Response.Body))
	}
}

func TestRunner_ResolvesPathVars(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	r := New(srv.Client())
	check := domain.CheckSpec{Name: "chat", Method: domain.MethodGet, Path: "/apps/{{app}}"}

	res, err := r.Run(context.Background(), check, srv.URL, domain.Vars{"app": "chat"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Error != nil {
		t.Fatalf("unexpected run error: %+v", res.Error)
	}
	if gotPath != "/apps/chat" {
		t.Fatalf("server saw path %q", gotPath)
	}
}

func TestRunner_UnresolvableVarIsConfigError(t *testing.T) {
	r := New(&http.Client{})
	check := domain.CheckSpec{Name: "chat", Method: domain.MethodGet, Path: "/apps/{{app}}"}

	_, err := r.Run(context.Background(), check, "http://127.0.0.1:1", nil)
	if !domain.IsKind(err, domain.KindMissingVar) {
		t.Fatalf("expected missing_variable, got %v", err)
	}
}
