package auth

import (
	"errors"
	"fmt"
	"time"

	"blog-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCredential means the request carried no session cookie.
	ErrMissingCredential = errors.New("auth: no credential presented")
	// ErrInvalidCredential covers every verification failure: bad signature,
	// disallowed algorithm, expired, not yet valid, malformed or missing claims.
	ErrInvalidCredential = errors.New("auth: invalid credential")
)

// allowedMethods is the HMAC family usable with a single shared secret.
var allowedMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// Verifier checks session token signatures and time bounds.
// It holds only immutable state and is safe for concurrent use.
type Verifier struct {
	secret []byte
	leeway time.Duration
}

func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	secret := make([]byte, len(cfg.JWTSecret))
	copy(secret, cfg.JWTSecret)

	return &Verifier{
		secret: secret,
		leeway: cfg.ClockSkew,
	}, nil
}

// Verify parses tokenString, checks its signature against the configured
// secret and validates exp (required), iat and nbf against now.
// Every failure is returned wrapped in ErrInvalidCredential.
func (v *Verifier) Verify(tokenString string, now time.Time) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods(allowedMethods),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, v.keyFunc)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	if claims.SubjectID() == "" {
		return Claims{}, fmt.Errorf("%w: subject identifier missing", ErrInvalidCredential)
	}

	return claims, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return v.secret, nil
}
