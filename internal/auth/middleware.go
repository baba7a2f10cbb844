package auth

import (
	"net/http"
	"strings"
	"time"

	"fitness-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// Gate is the single global authorization gate. Install it with r.Use so it
// runs before every handler: routes are protected by default and only the
// closed public set bypasses verification. Handlers must only ever read the
// attached identity; they never re-verify credentials themselves.
func Gate(m *Manager, public PublicPaths) gin.HandlerFunc {
	return func(c *gin.Context) {
		if public.IsPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := m.Verify(tok, TokenTypeAccess, time.Now())
		if err != nil {
			// The kind stays in the logs; the client sees one generic
			// message for every rejection.
			logger.FromGin(c).Debug("credential rejected", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), Identity{
			Subject: claims.Subject,
			Email:   claims.Email,
			Role:    claims.Role,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
