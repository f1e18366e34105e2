package middleware

import (
	"bytes"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

type cachedResponse struct {
	code      int
	body      []byte
	expiresAt time.Time
}

// IdempotencyCache remembers responses to keyed POST requests so retried
// checkouts do not record duplicate sales.
type IdempotencyCache struct {
	mu      sync.Mutex
	entries map[string]cachedResponse
}

// NewIdempotencyCache creates an empty cache and starts its expiry sweep
func NewIdempotencyCache() *IdempotencyCache {
	c := &IdempotencyCache{entries: make(map[string]cachedResponse)}
	go c.sweepLoop()
	return c
}

func (ic *IdempotencyCache) sweepLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		ic.mu.Lock()
		for key, entry := range ic.entries {
			if now.After(entry.expiresAt) {
				delete(ic.entries, key)
			}
		}
		ic.mu.Unlock()
	}
}

func (ic *IdempotencyCache) get(key string) (cachedResponse, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	entry, ok := ic.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return cachedResponse{}, false
	}
	return entry, true
}

func (ic *IdempotencyCache) put(key string, code int, body []byte) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.entries[key] = cachedResponse{
		code:      code,
		body:      body,
		expiresAt: time.Now().Add(IdempotencyKeyTTL),
	}
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key.
// Requests without the header proceed normally; only successful responses
// are cached.
func Idempotency(cache *IdempotencyCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		key = c.Request.Method + " " + c.FullPath() + " " + key

		if cached, ok := cache.get(key); ok {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(cached.code, "application/json", cached.body)
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			cache.put(key, c.Writer.Status(), blw.body.Bytes())
		}
	}
}
