package scraper

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ncexporter/ncexporter/exporter/internal/config"
)

// maxBodySize caps the status page read. Real pages are a few KiB.
const maxBodySize = 16 << 20

// ErrNoURL is returned by Fetch when no status page URL is configured.
var ErrNoURL = errors.New("no status page url configured")

// Page is one fetched status document.
type Page struct {
	Body []byte

	// CertNotAfter is the expiry of the server's leaf certificate; zero for
	// plain HTTP.
	CertNotAfter time.Time
}

// StatusScraper fetches the status page of one Nextcloud instance.
type StatusScraper struct {
	url    string
	client *http.Client
}

// New returns a StatusScraper for cfg. It builds the HTTP client once.
func New(cfg config.NextcloudConfig) *StatusScraper {
	return &StatusScraper{url: cfg.URL, client: buildHTTPClient(cfg)}
}

// basicAuthRoundTripper injects basic-auth credentials into every request.
type basicAuthRoundTripper struct {
	base     http.RoundTripper
	username string
	password string
}

func (t *basicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(req)
}

// buildHTTPClient constructs an http.Client for the instance's auth and TLS
// settings. The password is resolved once, at construction.
func buildHTTPClient(cfg config.NextcloudConfig) *http.Client {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: cfg.TLS.InsecureSkipVerify, //nolint:gosec // user-configured
	}
	transport := &basicAuthRoundTripper{
		base:     &http.Transport{TLSClientConfig: tlsCfg, Proxy: http.ProxyFromEnvironment},
		username: cfg.Username,
		password: cfg.Password(),
	}
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}

// Fetch performs an HTTP GET against the status page and returns its body.
// Any status other than 200 is an error.
func (s *StatusScraper) Fetch(ctx context.Context) (*Page, error) {
	if s.url == "" {
		return nil, ErrNoURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get %q: %w", s.url, err)
	}
	defer resp.Body.Close()

	slog.Debug("scraper: status page response", "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"))

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("body exceeds %d bytes", maxBodySize)
	}

	page := &Page{Body: body}
	if resp.TLS != nil && len(resp.TLS.PeerCertificates) > 0 {
		page.CertNotAfter = resp.TLS.PeerCertificates[0].NotAfter
	}
	return page, nil
}
