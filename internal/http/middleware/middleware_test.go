package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type observed struct {
	method, path, status string
}

type fakeObserver struct {
	calls []observed
}

func (f *fakeObserver) ObserveRequest(method, path, status string, _ time.Duration) {
	f.calls = append(f.calls, observed{method, path, status})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" || rec.Body.String() != generated {
		t.Errorf("Expected a generated request id echoed in body, got header %q body %q", generated, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected incoming id to be kept, got %q", got)
	}
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &fakeObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/orders/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/42", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if len(observer.calls) != 2 {
		t.Fatalf("Expected 2 observations, got %d", len(observer.calls))
	}
	if got := observer.calls[0]; got != (observed{"GET", "/orders/:id", "204"}) {
		t.Errorf("unexpected observation %+v", got)
	}
	if got := observer.calls[1]; got.path != "unmatched" || got.status != "404" {
		t.Errorf("unexpected observation %+v", got)
	}
}
