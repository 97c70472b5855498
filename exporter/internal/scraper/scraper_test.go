package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ncexporter/ncexporter/exporter/internal/config"
)

const statusXML = `<?xml version="1.0"?><ocs><meta><status>ok</status></meta></ocs>`

func TestFetch_BasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
		_, _ = w.Write([]byte(statusXML))
	}))
	defer srv.Close()

	t.Setenv("TEST_NC_PASSWORD", "s3cret")
	s := New(config.NextcloudConfig{
		URL:         srv.URL,
		Username:    "admin",
		PasswordEnv: "TEST_NC_PASSWORD",
		Timeout:     time.Second,
	})

	page, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(page.Body) != statusXML {
		t.Errorf("body = %q", page.Body)
	}
	if !page.CertNotAfter.IsZero() {
		t.Errorf("CertNotAfter = %v, want zero for plain http", page.CertNotAfter)
	}
	if !gotOK || gotUser != "admin" || gotPass != "s3cret" {
		t.Errorf("basic auth = (%q, %q, %v), want (admin, s3cret, true)", gotUser, gotPass, gotOK)
	}
}

func TestFetch_TLSCertExpiry(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(statusXML))
	}))
	defer srv.Close()

	s := New(config.NextcloudConfig{
		URL:     srv.URL,
		Timeout: time.Second,
		TLS:     config.TLSConfig{InsecureSkipVerify: true},
	})

	page, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if page.CertNotAfter.IsZero() {
		t.Error("CertNotAfter is zero, want the test server's certificate expiry")
	}
}

func TestFetch_NonOK(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte("nope"))
		}))

		s := New(config.NextcloudConfig{URL: srv.URL, Timeout: time.Second})
		if _, err := s.Fetch(context.Background()); err == nil {
			t.Errorf("status %d: Fetch() error = nil, want error", code)
		}
		srv.Close()
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := New(config.NextcloudConfig{URL: url, Timeout: time.Second})
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() error = nil, want connection error")
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := New(config.NextcloudConfig{URL: srv.URL, Timeout: 50 * time.Millisecond})
	start := time.Now()
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() error = nil, want timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Fetch() took %v, want it bounded by the client timeout", elapsed)
	}
}

func TestFetch_NoURL(t *testing.T) {
	s := New(config.NextcloudConfig{Timeout: time.Second})
	if _, err := s.Fetch(context.Background()); !errors.Is(err, ErrNoURL) {
		t.Errorf("Fetch() error = %v, want ErrNoURL", err)
	}
}
