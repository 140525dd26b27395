package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func TestRateLimiter(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(2, time.Minute, clock)

	engine := gin.New()
	engine.POST("/import", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.DELETE("/data", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	if got := do(http.MethodPost, "/import").Code; got != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", got)
	}
	if got := do(http.MethodPost, "/import").Code; got != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", got)
	}

	clock.now = clock.now.Add(20 * time.Second)
	rec := do(http.MethodPost, "/import")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "40" {
		t.Errorf("expected Retry-After 40, got %q", got)
	}

	// Routes are counted separately.
	if got := do(http.MethodDelete, "/data").Code; got != http.StatusNoContent {
		t.Fatalf("other route: expected 204, got %d", got)
	}
	if got := rl.Tracked(); got != 2 {
		t.Errorf("expected 2 tracked windows, got %d", got)
	}

	clock.now = clock.now.Add(time.Minute)
	if got := rl.Tracked(); got != 0 {
		t.Errorf("expected expired windows to be dropped, got %d", got)
	}
	if got := do(http.MethodPost, "/import").Code; got != http.StatusOK {
		t.Fatalf("after the window: expected 200, got %d", got)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute, &stubClock{})
	engine := gin.New()
	engine.DELETE("/data", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/data", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, rec.Code)
		}
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (r *recordingObserver) ObserveRequest(_, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
	r.status = append(r.status, status)
}

func TestObserve(t *testing.T) {
	observer := &recordingObserver{}
	engine := gin.New()
	engine.Use(Observe(observer))
	engine.GET("/transactions/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/transactions/abc", "/nowhere"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(observer.routes) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observer.routes))
	}
	if observer.routes[0] != "/transactions/:id" || observer.status[0] != http.StatusNotFound {
		t.Errorf("unexpected first observation %s %d", observer.routes[0], observer.status[0])
	}
	if observer.routes[1] != "unmatched" || observer.status[1] != http.StatusNotFound {
		t.Errorf("unexpected second observation %s %d", observer.routes[1], observer.status[1])
	}
}
