package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported session token claims shape.
// The issuing side writes the user identifier under "id"; "sub" is accepted
// as a fallback so standards-shaped tokens verify too.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"id,omitempty"`
}

// SubjectID returns the authenticated subject identifier carried by the token.
func (c Claims) SubjectID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}
