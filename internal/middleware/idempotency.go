package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader names a client-chosen key making a write safe to retry.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// replayedHeaders are copied from the original response on replay.
var replayedHeaders = []string{"Content-Type", "Location"}

// StoredResponse is a completed write kept for replay.
type StoredResponse struct {
	Status      int
	Header      http.Header
	Body        []byte
	Fingerprint [sha256.Size]byte
}

// Idempotency replays the stored response for a repeated POST, PUT or PATCH
// carrying the same Idempotency-Key from the same caller. Only 2xx responses
// are stored. Reusing a key with a different body answers 422, and a retry
// racing the original answers 409. A nil store disables the middleware.
func Idempotency(store cache.Cache[*StoredResponse]) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu       sync.Mutex
		inFlight = make(map[string]struct{})
	)

	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" || !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			if body, err = io.ReadAll(c.Request.Body); err != nil {
				abortWithKey(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody)
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		key := storeKey(idempotencyKey, c.Request)
		fingerprint := sha256.Sum256(body)

		if stored, ok := store.Get(key); ok {
			answerStored(c, stored, fingerprint)
			return
		}

		mu.Lock()
		// The original may have finished between the lookup and the lock.
		if stored, ok := store.Get(key); ok {
			mu.Unlock()
			answerStored(c, stored, fingerprint)
			return
		}
		if _, busy := inFlight[key]; busy {
			mu.Unlock()
			abortWithKey(c, http.StatusConflict, dto.ErrCodeConflict, i18n.ErrKeyConflict)
			return
		}
		inFlight[key] = struct{}{}
		mu.Unlock()

		defer func() {
			mu.Lock()
			delete(inFlight, key)
			mu.Unlock()
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if status := recorder.Status(); status >= 200 && status < 300 {
			store.Set(key, &StoredResponse{
				Status:      status,
				Header:      recorder.Header().Clone(),
				Body:        recorder.body.Bytes(),
				Fingerprint: fingerprint,
			})
		}
	}
}

func isWrite(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// storeKey scopes the client key to the caller's credentials and the route.
func storeKey(idempotencyKey string, req *http.Request) string {
	h := sha256.New()
	for _, part := range []string{idempotencyKey, callerScope(req), req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// callerScope identifies the caller by the credentials it presented.
func callerScope(req *http.Request) string {
	if auth := req.Header.Get("Authorization"); auth != "" {
		return auth
	}
	return req.Header.Get(APIKeyHeader)
}

func answerStored(c *gin.Context, stored *StoredResponse, fingerprint [sha256.Size]byte) {
	if stored.Fingerprint != fingerprint {
		abortWithKey(c, http.StatusUnprocessableEntity, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest)
		return
	}
	replay(c, stored)
}

func replay(c *gin.Context, stored *StoredResponse) {
	for _, name := range replayedHeaders {
		if value := stored.Header.Get(name); value != "" {
			c.Header(name, value)
		}
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Status(stored.Status)
	_, _ = c.Writer.Write(stored.Body)
	c.Abort()
}

// bodyRecorder tees the response body into a buffer.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
