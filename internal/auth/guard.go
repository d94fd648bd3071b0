package auth

import (
	"net/http"
	"time"
)

const DefaultCookieName = "token"

// Result is the outcome of authenticating one request.
// Exactly one of Identity (when Err is nil) or Err is meaningful.
type Result struct {
	Identity Identity
	Err      error
}

func (r Result) OK() bool { return r.Err == nil }

// Guard gates protected handlers on a valid session cookie.
// It keeps no per-request or cross-request state; every call re-verifies.
type Guard struct {
	verifier   *Verifier
	cookieName string
	now        func() time.Time
}

func NewGuard(v *Verifier, cookieName string) *Guard {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Guard{verifier: v, cookieName: cookieName, now: time.Now}
}

// Authenticate reads the session cookie from r and verifies it.
// The returned Result carries ErrMissingCredential when no cookie is present
// and an error wrapping ErrInvalidCredential when verification fails.
func (g *Guard) Authenticate(r *http.Request) Result {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return Result{Err: ErrMissingCredential}
	}

	claims, err := g.verifier.Verify(cookie.Value, g.now())
	if err != nil {
		return Result{Err: err}
	}
	return Result{Identity: Identity{SubjectID: claims.SubjectID()}}
}
