package httpapi

import (
	"context"
	"net/http"
	"time"

	"blog-api/internal/auth"
	"blog-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: read identity from context, call collaborators, return JSON.
type Handlers struct {
	// Ready reports whether backing stores are reachable. Nil means always ready.
	Ready        func(ctx context.Context) error
	ReadyTimeout time.Duration
}

func (h Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}

func (h Handlers) Readiness(c *gin.Context) {
	if h.Ready != nil {
		timeout := h.ReadyTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := h.Ready(ctx); err != nil {
			logger.FromGin(c).Warn("readiness check failed", "err", err)
			fail(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ready"})
}

// Session reports whether the caller holds a valid session. It sits behind
// the optional guard so the client can ask without triggering a 401.
func (h Handlers) Session(c *gin.Context) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": true, "userId": id.SubjectID})
}

// Me echoes the authenticated subject. It must sit behind the session guard.
func (h Handlers) Me(c *gin.Context) {
	uid, err := auth.SubjectID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusUnauthorized, auth.MessageNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "userId": uid})
}

// NotFound keeps unknown routes on the same envelope the client parses.
func (h Handlers) NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, "Route not found.")
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
