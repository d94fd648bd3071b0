package auth

import (
	"errors"
	"net/http"

	"blog-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	MessageNotAuthenticated = "User is not authenticated."
	MessageInvalidToken     = "Invalid or expired token."
)

// ContextKeyUserID is the gin context key holding the authenticated subject.
const ContextKeyUserID = "user_id"

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Middleware rejects requests without a valid session cookie with 401 and
// aborts the chain. On success it injects the identity into the request
// context and calls the next handler without writing a response.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := g.Authenticate(c.Request)
		if !res.OK() {
			reason, message := "invalid_credential", MessageInvalidToken
			if errors.Is(res.Err, ErrMissingCredential) {
				reason, message = "missing_credential", MessageNotAuthenticated
			}
			logger.FromGin(c).Info("auth rejected", "reason", reason, "err", res.Err)

			c.AbortWithStatusJSON(http.StatusUnauthorized, failureResponse{Success: false, Message: message})
			return
		}

		attach(c, res.Identity)
		c.Next()
	}
}

// OptionalMiddleware attaches the identity when the session cookie verifies
// and lets the request through either way.
func (g *Guard) OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if res := g.Authenticate(c.Request); res.OK() {
			attach(c, res.Identity)
		} else if !errors.Is(res.Err, ErrMissingCredential) {
			logger.FromGin(c).Debug("optional auth ignored invalid credential", "err", res.Err)
		}
		c.Next()
	}
}

func attach(c *gin.Context, id Identity) {
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
	c.Set(ContextKeyUserID, id.SubjectID)
}
