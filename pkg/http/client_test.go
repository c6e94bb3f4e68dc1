package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendAndParseGet(t *testing.T) {
	var gotMethod, gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query().Get("symbol")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"name": "test", "value": 7}`)
	}))
	defer srv.Close()

	c := NewClient()

	var out struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL,
		Headers:     map[string]string{"User-Agent": "calmtrader/1.0"},
		QueryParams: map[string][]string{"symbol": {"NVDA"}},
	}, &out)
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Fatalf("unexpected method %q", gotMethod)
	}
	if gotQuery != "NVDA" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if gotAgent != "calmtrader/1.0" {
		t.Fatalf("unexpected user agent %q", gotAgent)
	}
	if out.Name != "test" || out.Value != 7 {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestSendAndParseNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient()
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: MethodGet,
		URL:    srv.URL,
	}, nil)
	if err == nil {
		t.Fatalf("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("error should carry the status: %v", err)
	}
}
