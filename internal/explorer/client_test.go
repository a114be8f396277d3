package explorer

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
)

// newTestClient returns a client whose HTTP traffic goes to a mock
// transport.
func newTestClient(t *testing.T, cfg Config, opts ...Option) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	opts = append([]Option{
		WithHTTPClient(&http.Client{Transport: transport}),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithLogger(zerolog.Nop()),
	}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, transport
}

// counting wraps a responder and counts its calls.
func counting(n *int64, r httpmock.Responder) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		atomic.AddInt64(n, 1)
		return r(req)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New without URLs should fail")
	}
	if _, err := New(Config{URLs: []string{"http://a", ""}}); err == nil {
		t.Error("New with an empty URL should fail")
	}
	c, err := New(Config{URLs: []string{"http://a/"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.cfg.URLs[0] != "http://a" {
		t.Errorf("url = %q, want trailing slash trimmed", c.cfg.URLs[0])
	}
	if c.cfg.Timeout != DefaultTimeout || c.cfg.MaxAttempts != DefaultMaxAttempts || c.cfg.ResetInterval != DefaultResetInterval {
		t.Errorf("defaults not applied: %+v", c.cfg)
	}
}

func TestClient_Failover(t *testing.T) {
	c, transport := newTestClient(t, Config{URLs: []string{"http://a", "http://b"}})
	var aCalls, bCalls int64
	transport.RegisterResponder("GET", "http://a/explorer",
		counting(&aCalls, httpmock.NewStringResponder(503, "down")))
	transport.RegisterResponder("GET", "http://b/explorer",
		counting(&bCalls, httpmock.NewStringResponder(200, `{"height": 7}`)))

	for i := 0; i < 10; i++ {
		var facts BlockFacts
		if err := c.Get(context.Background(), "/explorer", &facts); err != nil {
			t.Fatalf("Get %d: %v", i, err)
		}
		if facts.Height != 7 {
			t.Fatalf("height = %d, want 7", facts.Height)
		}
	}
	if aCalls > 1 {
		t.Errorf("failed explorer called %d times, want at most 1", aCalls)
	}
	if bCalls != 10 {
		t.Errorf("healthy explorer called %d times, want 10", bCalls)
	}
}

func TestClient_Exhausted(t *testing.T) {
	c, transport := newTestClient(t, Config{URLs: []string{"http://a", "http://b"}})
	var calls int64
	transport.RegisterResponder("GET", "=~^http://[ab]/explorer",
		counting(&calls, httpmock.NewStringResponder(500, `{"message": "internal"}`)))

	err := c.Get(context.Background(), "/explorer", nil)
	if !errors.Is(err, ErrExplorerUnavailable) {
		t.Fatalf("err = %v, want ErrExplorerUnavailable", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 || apiErr.Message != "internal" {
		t.Errorf("last error = %v, want status 500 with message", err)
	}
	if calls != DefaultMaxAttempts {
		t.Errorf("attempts = %d, want %d", calls, DefaultMaxAttempts)
	}
}

func TestClient_NotRetried(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantUnrec bool
	}{
		{"unrecognized hash", 400, `{"message": "unrecognized hash used as input to /explorer/hashes"}`, true},
		{"bad request", 400, `{"message": "invalid input"}`, false},
		{"not found text", 404, "page not found", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, transport := newTestClient(t, Config{URLs: []string{"http://a", "http://b"}})
			var calls int64
			transport.RegisterResponder("GET", "=~^http://[ab]/explorer/hashes/",
				counting(&calls, httpmock.NewStringResponder(tt.status, tt.body)))

			err := c.Get(context.Background(), "/explorer/hashes/x", nil)
			if got := errors.Is(err, ErrUnrecognizedHash); got != tt.wantUnrec {
				t.Errorf("errors.Is(ErrUnrecognizedHash) = %v, want %v (err %v)", got, tt.wantUnrec, err)
			}
			if errors.Is(err, ErrExplorerUnavailable) {
				t.Errorf("err = %v, should not be retried to exhaustion", err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Status != tt.status {
				t.Errorf("err = %v, want *APIError with status %d", err, tt.status)
			}
			if calls != 1 {
				t.Errorf("calls = %d, want 1", calls)
			}
		})
	}
}

func TestClient_TimeoutRetried(t *testing.T) {
	c, transport := newTestClient(t, Config{URLs: []string{"http://slow", "http://fast"}, Timeout: 20 * time.Millisecond})
	transport.RegisterResponder("GET", "http://slow/explorer", func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})
	transport.RegisterResponder("GET", "http://fast/explorer", httpmock.NewStringResponder(200, `{"height": 3}`))

	for i := 0; i < 3; i++ {
		var facts BlockFacts
		if err := c.Get(context.Background(), "/explorer", &facts); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
}

func TestClient_NetworkErrorRetried(t *testing.T) {
	c, transport := newTestClient(t, Config{URLs: []string{"http://a", "http://b"}})
	transport.RegisterResponder("GET", "http://a/explorer", httpmock.NewErrorResponder(errors.New("connection refused")))
	transport.RegisterResponder("GET", "http://b/explorer", httpmock.NewStringResponder(200, `{}`))

	for i := 0; i < 5; i++ {
		if err := c.Get(context.Background(), "/explorer", nil); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	c, transport := newTestClient(t, Config{URLs: []string{"http://a"}})
	ctx, cancel := context.WithCancel(context.Background())
	transport.RegisterResponder("GET", "http://a/explorer", func(req *http.Request) (*http.Response, error) {
		cancel()
		return nil, context.Canceled
	})

	err := c.Get(ctx, "/explorer", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrExplorerUnavailable) {
		t.Errorf("cancelled request should not be retried")
	}
}

func TestClient_DecodeError(t *testing.T) {
	c, transport := newTestClient(t, Config{URLs: []string{"http://a"}})
	var calls int64
	transport.RegisterResponder("GET", "http://a/explorer", counting(&calls, httpmock.NewStringResponder(200, `not json`)))

	var facts BlockFacts
	if err := c.Get(context.Background(), "/explorer", &facts); err == nil {
		t.Fatal("expected decode error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
