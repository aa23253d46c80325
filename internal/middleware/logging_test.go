package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("no request id header set")
	}
	if _, err := ulid.Parse(id); err != nil {
		t.Errorf("request id %q is not a ULID: %v", id, err)
	}
	if w.Body.String() != id {
		t.Errorf("context id %q differs from header %q", w.Body.String(), id)
	}
}

func TestRequestIDHonorsInboundHeader(t *testing.T) {
	r := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "upstream-id" {
		t.Errorf("header = %q, want upstream-id", got)
	}
}

// ID generation is shared by every in-flight request, so it must hold up
// under concurrency: no duplicates, no corrupted values. Run with -race.
func TestRequestIDConcurrent(t *testing.T) {
	r := newRequestIDRouter()

	const goroutines = 50
	const perGoroutine = 100

	var mu sync.Mutex
	seen := make(map[string]struct{}, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				req := httptest.NewRequest(http.MethodGet, "/ping", nil)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				id := w.Header().Get(RequestIDHeader)
				if _, err := ulid.Parse(id); err != nil {
					t.Errorf("bad request id %q: %v", id, err)
					return
				}

				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("got %d unique ids, want %d", len(seen), goroutines*perGoroutine)
	}
}
