package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestThrottle(t *testing.T, perMinute, burst, maxClients int) *Throttle {
	t.Helper()
	th, err := NewThrottle(perMinute, burst, maxClients)
	if err != nil {
		t.Fatalf("NewThrottle: %v", err)
	}
	return th
}

func Test_Throttle_AllowsBurstThenBlocks(t *testing.T) {
	th := newTestThrottle(t, 60, 3, 16)

	for i := 0; i < 3; i++ {
		if !th.allow("1.2.3.4") {
			t.Fatalf("request %d within burst should pass", i+1)
		}
	}
	if th.allow("1.2.3.4") {
		t.Fatalf("request over burst should be blocked")
	}
}

func Test_Throttle_RefillsOverTime(t *testing.T) {
	th := newTestThrottle(t, 60, 1, 16) // 1 token/second
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	if !th.allow("1.2.3.4") {
		t.Fatalf("first request should pass")
	}
	if th.allow("1.2.3.4") {
		t.Fatalf("bucket should be empty")
	}

	now = now.Add(1100 * time.Millisecond)
	if !th.allow("1.2.3.4") {
		t.Fatalf("bucket should have refilled one token")
	}
}

func Test_Throttle_ClientsAreIndependent(t *testing.T) {
	th := newTestThrottle(t, 60, 1, 16)

	if !th.allow("1.1.1.1") {
		t.Fatalf("client A should pass")
	}
	if !th.allow("2.2.2.2") {
		t.Fatalf("client B must not share client A's bucket")
	}
	if th.allow("1.1.1.1") {
		t.Fatalf("client A over burst should be blocked")
	}
}

func Test_Throttle_EvictionResetsOldClients(t *testing.T) {
	// capacity 2: adding a third client evicts the oldest bucket
	th := newTestThrottle(t, 60, 1, 2)

	th.allow("a")
	th.allow("b")
	th.allow("c") // evicts "a"

	// "a" starts over with a fresh bucket instead of being denied
	if !th.allow("a") {
		t.Fatalf("evicted client should get a fresh bucket")
	}
}

func Test_Throttle_Middleware429(t *testing.T) {
	th := newTestThrottle(t, 60, 1, 16)

	e := echo.New()
	e.Use(th.Middleware())
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}
	if rec := do(); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", rec.Code)
	}
}
