package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	nethttp "net/http"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/response"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyCtx  = "idempotency_key"
	IdempotencyHashCtx = "idempotency_hash"
)

// Idempotency captures an optional Idempotency-Key header along with a hash
// of the request body, letting the order path replay a previous response
// instead of reserving stock twice for a retried request.
func Idempotency() gin.HandlerFunc {
	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader("Idempotency-Key")
		if idempotencyKey == "" {
			idempotencyKey = c.GetHeader("X-Idempotency-Key")
		}

		if idempotencyKey != "" {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				response.RespondError(c, nethttp.StatusBadRequest, "invalid request body")
				c.Abort()
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
			sum := sha256.Sum256(body)
			c.Set(IdempotencyKeyCtx, idempotencyKey)
			c.Set(IdempotencyHashCtx, hex.EncodeToString(sum[:]))
		} else {
			c.Set(IdempotencyKeyCtx, "")
			c.Set(IdempotencyHashCtx, "")
		}

		c.Next()
	}
}
