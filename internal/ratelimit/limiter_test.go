package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/codr1/courtbook/internal/config"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheck_BurstThenRefill(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 3, Clock: clock})
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		if result := limiter.Check("203.0.113.1"); !result.Allowed {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	result := limiter.Check("203.0.113.1")
	if result.Allowed {
		t.Fatal("request over burst should be refused")
	}
	if result.RetryAfter != time.Second {
		t.Fatalf("RetryAfter = %v, want 1s", result.RetryAfter)
	}

	// A refused request must not eat into the next token.
	clock.Advance(time.Second)
	if result := limiter.Check("203.0.113.1"); !result.Allowed {
		t.Fatal("request after refill should be allowed")
	}
	if result := limiter.Check("203.0.113.1"); result.Allowed {
		t.Fatal("only one token should have been refilled")
	}
}

func TestCheck_KeysAreIndependent(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, Clock: clock})
	defer limiter.Close()

	if !limiter.Check("203.0.113.1").Allowed {
		t.Fatal("first key should be allowed")
	}
	if limiter.Check("203.0.113.1").Allowed {
		t.Fatal("first key should be exhausted")
	}
	if !limiter.Check("203.0.113.2").Allowed {
		t.Fatal("second key should have its own bucket")
	}
}

func TestCleanupDropsIdleVisitors(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, Clock: clock})
	defer limiter.Close()

	limiter.Check("203.0.113.1")
	clock.Advance(idleTTL + time.Second)
	limiter.Check("203.0.113.2")
	limiter.cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.visitors["203.0.113.1"]; ok {
		t.Fatal("idle visitor should have been removed")
	}
	if _, ok := limiter.visitors["203.0.113.2"]; !ok {
		t.Fatal("recent visitor should be kept")
	}
}

func TestMiddleware(t *testing.T) {
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 1, Clock: newMockClock()})
	defer limiter.Close()

	rejected := 0
	handler := limiter.Middleware(func(w http.ResponseWriter, r *http.Request, result LimitResult) {
		rejected++
		w.WriteHeader(http.StatusTooManyRequests)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i, want := range []int{http.StatusCreated, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d status = %d, want %d", i+1, rec.Code, want)
		}
	}
	if rejected != 1 {
		t.Fatalf("rejected = %d, want 1", rejected)
	}
}

func TestFromConfig_TrustProxyKeysForwardedClients(t *testing.T) {
	cfg := FromConfig(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1, TrustProxy: true})
	if !cfg.TrustProxy {
		t.Fatalf("TrustProxy not carried over: %+v", cfg)
	}
	cfg.Clock = newMockClock()
	limiter := New(cfg)
	defer limiter.Close()

	handler := limiter.Middleware(func(w http.ResponseWriter, r *http.Request, result LimitResult) {
		w.WriteHeader(http.StatusTooManyRequests)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("203.0.113.10"); got != http.StatusCreated {
		t.Fatalf("first client: %d", got)
	}
	if got := send("203.0.113.11"); got != http.StatusCreated {
		t.Fatalf("second client behind the same proxy: %d", got)
	}
	if got := send("203.0.113.10"); got != http.StatusTooManyRequests {
		t.Fatalf("first client again: %d", got)
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()
	if limiter.config.RequestsPerSecond != 1 || limiter.config.Burst != 5 {
		t.Fatalf("unexpected defaults: %+v", limiter.config)
	}
}

func TestConcurrentAccess(t *testing.T) {
	limiter := New(&Config{RequestsPerSecond: 1, Burst: 10, Clock: newMockClock()})
	defer limiter.Close()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Check("203.0.113.1").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 10 {
		t.Fatalf("allowed = %d, want exactly the burst of 10", allowed)
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50", // Rightmost non-private
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1", // Last one when all private
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100", // Uses RemoteAddr, ignores spoofed XFF
		},
		{
			name:       "TrustProxy=false, ignores X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "No headers, RemoteAddr only",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: true,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP_SpoofingPrevention(t *testing.T) {
	// Attacker sends fake X-Forwarded-For header
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4") // Attacker-supplied
	r.RemoteAddr = "192.168.1.100:54321"       // Real connection

	// With TrustProxy=false, the fake header is ignored
	got := GetClientIP(r, false)
	if got != "192.168.1.100" {
		t.Errorf("Should ignore X-Forwarded-For when TrustProxy=false, got %q", got)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		// IPv4 private ranges
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"192.168.255.255", true},
		{"127.0.0.1", true},
		// IPv6 private/reserved
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true}, // Link-local
		// IPv4-mapped IPv6 addresses (must match their IPv4 equivalents)
		{"::ffff:10.0.0.1", true},
		{"::ffff:192.168.1.1", true},
		{"::ffff:172.16.0.1", true},
		{"::ffff:127.0.0.1", true},
		{"::ffff:8.8.8.8", false}, // Public IP in IPv4-mapped format
		{"::ffff:1.1.1.1", false}, // Public IP in IPv4-mapped format
		// Public IPs
		{"203.0.113.50", false},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false}, // Google DNS IPv6
		// Invalid
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got := isPrivateIP(tt.ip)
			if got != tt.expected {
				t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
