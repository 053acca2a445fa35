package cache

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devinsight/devinsight/internal/monitoring"
)

func TestCacheGetSet(t *testing.T) {
	c := New(time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("key", []byte("payload"), "application/json")
	item, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, []byte("payload"), item.Data)
	assert.Equal(t, "application/json", item.ContentType)
	assert.Equal(t, 1, c.Size())
}

func TestCacheExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("key", []byte("payload"), "text/plain")

	time.Sleep(20 * time.Millisecond)
	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheDelete(t *testing.T) {
	c := New(time.Minute)
	c.Set("key", []byte("payload"), "text/plain")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func newCachedRouter(c *Cache, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(c.Middleware(monitoring.NewMetrics()))
	router.GET("/api/profile/:username", func(ctx *gin.Context) {
		*hits++
		ctx.JSON(http.StatusOK, gin.H{"username": ctx.Param("username")})
	})
	router.GET("/health", func(ctx *gin.Context) {
		*hits++
		ctx.String(http.StatusOK, "ok")
	})
	return router
}

func TestMiddlewareServesSecondRequestFromCache(t *testing.T) {
	handlerHits := 0
	router := newCachedRouter(New(time.Minute), &handlerHits)

	var bodies []string
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/profile/octocat", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		bodies = append(bodies, w.Body.String())
	}

	assert.Equal(t, 1, handlerHits)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestMiddlewareSkipsNonProfilePaths(t *testing.T) {
	handlerHits := 0
	router := newCachedRouter(New(time.Minute), &handlerHits)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2, handlerHits)
}

func TestMiddlewareKeysIncludeQueryString(t *testing.T) {
	handlerHits := 0
	router := newCachedRouter(New(time.Minute), &handlerHits)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile/octocat", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profile/octocat?stored=true", nil))

	assert.Equal(t, 2, handlerHits)
}
