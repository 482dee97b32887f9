package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	return req
}

func TestNewProxyFuncNoExplicitProxies(t *testing.T) {
	fn := NewProxyFunc("", "", "")
	// Falls back to the environment resolver.
	if fn == nil {
		t.Fatal("nil proxy func")
	}
}

func TestNewProxyFuncSchemeRouting(t *testing.T) {
	fn := NewProxyFunc("http://proxy-http:8080", "http://proxy-https:8443", "")

	u, err := fn(newRequest(t, "https://example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "proxy-https:8443" {
		t.Errorf("https request routed to %v, want proxy-https:8443", u)
	}

	u, err = fn(newRequest(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "proxy-http:8080" {
		t.Errorf("http request routed to %v, want proxy-http:8080", u)
	}
}

func TestNewProxyFuncNoProxyBypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy:8080", "", "internal.example.com, localhost")

	u, err := fn(newRequest(t, "http://internal.example.com/api"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("bypassed host routed through proxy: %v", u)
	}

	// Subdomains of a bypass entry are also bypassed.
	u, err = fn(newRequest(t, "http://svc.internal.example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("bypassed subdomain routed through proxy: %v", u)
	}

	// Other hosts still use the proxy.
	u, err = fn(newRequest(t, "http://external.example.org/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "proxy:8080" {
		t.Errorf("external host routed to %v, want proxy:8080", u)
	}
}
