package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Now()
	rl.lastTime = now
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	// 多次小間隔的呼叫也要能累積令牌
	for i := 0; i < 4; i++ {
		now = now.Add(100 * time.Millisecond)
		rl.Allow()
	}
	now = now.Add(200 * time.Millisecond)
	assert.True(t, rl.Allow())
}

func TestRateLimit_Middleware(t *testing.T) {
	r := newEngine(RateLimit(1, time.Minute))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
}

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator(time.Second)
	defer d.Stop()
	now := time.Now()
	d.now = func() time.Time { return now }

	r := newEngine(d.Handler())
	post := func(body string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body)))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post(`{"a":1}`))
	assert.Equal(t, http.StatusTooManyRequests, post(`{"a":1}`))
	assert.Equal(t, http.StatusOK, post(`{"a":2}`))

	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, post(`{"a":1}`))

	// GET 不去重
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	now = now.Add(time.Minute)
	assert.Equal(t, 2, d.cleanup())
}

func TestDeduplicator_FingerprintIncludesClientAndUser(t *testing.T) {
	d := NewDeduplicator(time.Minute)
	defer d.Stop()

	r := gin.New()
	r.Use(d.Handler())
	r.POST("/users/:user_id/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	post := func(remoteAddr, path string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"a":1}`))
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1:1000", "/users/u1/echo"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1:2000", "/users/u1/echo"))
	// 不同客戶端或不同使用者不互相影響
	assert.Equal(t, http.StatusOK, post("10.0.0.2:1000", "/users/u1/echo"))
	assert.Equal(t, http.StatusOK, post("10.0.0.1:1000", "/users/u2/echo"))
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), ErrCodeRequestTooLarge)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deadline", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
