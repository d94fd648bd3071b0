package httpapi

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets the listed browser origins make credentialed requests, which the
// client needs for the session cookie to be sent. Entries are exact origins
// or subdomain wildcards such as "https://*.example.com"; a wildcard matches
// any port. Requests from other origins are refused with 403.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	var exact, wildcards []string
	for _, o := range allowedOrigins {
		if strings.Contains(o, "://*.") {
			wildcards = append(wildcards, o)
			continue
		}
		exact = append(exact, o)
	}

	cfg := cors.Config{
		AllowOrigins:     exact,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}
	if len(wildcards) > 0 {
		cfg.AllowOriginFunc = func(origin string) bool {
			return matchesWildcard(origin, wildcards)
		}
	}
	return cors.New(cfg)
}

// matchesWildcard reports whether origin is a strict subdomain of one of the
// "scheme://*.domain" patterns, ignoring the origin's port.
func matchesWildcard(origin string, patterns []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())

	for _, p := range patterns {
		scheme, domain, ok := strings.Cut(p, "://*.")
		if !ok || !strings.EqualFold(scheme, u.Scheme) {
			continue
		}
		if strings.HasSuffix(host, "."+strings.ToLower(domain)) {
			return true
		}
	}
	return false
}
