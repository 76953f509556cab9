// README: Session auth middleware; resolves bearer tokens to a restaurant.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"oxa/internal/session"
	"oxa/internal/types"
)

const (
	ctxRestaurantID = "restaurantID"
	ctxSessionToken = "sessionToken"
)

// SessionResolver resolves a session token to the restaurant it belongs to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (types.ID, error)
}

// Auth requires a valid Bearer session token and stores the resolved
// restaurant id in the request context.
func Auth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			// EventSource cannot set headers, so SSE endpoints pass the
			// token as a query parameter instead.
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		id, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(ctxRestaurantID, id)
		c.Set(ctxSessionToken, token)
		c.Next()
	}
}

// RestaurantID returns the restaurant resolved by Auth for this request.
func RestaurantID(c *gin.Context) types.ID {
	if v, ok := c.Get(ctxRestaurantID); ok {
		if id, ok := v.(types.ID); ok {
			return id
		}
	}
	return ""
}

// SessionToken returns the raw token Auth accepted for this request.
func SessionToken(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionToken); ok {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
