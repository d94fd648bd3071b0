package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process.
// Values come from the environment, optionally seeded from a .env file.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	App   AppConfig
	Auth  AuthConfig
	Mongo MongoConfig
	CORS  CORSConfig
}

type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"local"`
	Port int    `env:"APP_PORT" envDefault:"8080"`
}

type AuthConfig struct {
	// JWTSecret verifies session token signatures. Never log it.
	JWTSecret string `env:"JWT_SECRET"`

	// CookieName is the cookie the client carries the session token in.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"token"`

	// ClockSkew is the tolerance applied to exp/iat/nbf checks.
	ClockSkew time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"0s"`
}

type MongoConfig struct {
	URL             string        `env:"MONGODB_URL"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"blog"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"0"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
}

type CORSConfig struct {
	// AllowedOrigins lists the browser origins allowed to send credentialed requests.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

const (
	maxClockSkew        = 5 * time.Minute
	minProductionSecret = 32
	cookieNameForbidden = " \t\r\n;,=\"\\()<>@:/[]?{}"
)

// Load reads configuration from the environment and validates it.
// A .env file in the working directory is applied first when present;
// variables already set in the environment take precedence. A missing
// .env file is fine, an unreadable or malformed one is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config .env: %w", err)
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalize() {
	c.App.Env = strings.TrimSpace(c.App.Env)
	c.Auth.CookieName = strings.TrimSpace(c.Auth.CookieName)
	c.Mongo.URL = strings.TrimSpace(c.Mongo.URL)
	c.Mongo.Database = strings.TrimSpace(c.Mongo.Database)

	origins := c.CORS.AllowedOrigins[:0]
	for _, o := range c.CORS.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}
	c.CORS.AllowedOrigins = origins
}

func (c Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && len(c.Auth.JWTSecret) < minProductionSecret {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecret))
	}
	if c.Auth.CookieName == "" {
		errs = append(errs, errors.New("AUTH_COOKIE_NAME is required"))
	} else if strings.ContainsAny(c.Auth.CookieName, cookieNameForbidden) {
		errs = append(errs, fmt.Errorf("AUTH_COOKIE_NAME is not a valid cookie name, got %q", c.Auth.CookieName))
	}
	if c.Auth.ClockSkew < 0 || c.Auth.ClockSkew > maxClockSkew {
		errs = append(errs, fmt.Errorf("AUTH_CLOCK_SKEW must be between 0 and %s, got %s", maxClockSkew, c.Auth.ClockSkew))
	}

	if c.Mongo.URL == "" {
		errs = append(errs, errors.New("MONGODB_URL is required"))
	} else if !strings.HasPrefix(c.Mongo.URL, "mongodb://") && !strings.HasPrefix(c.Mongo.URL, "mongodb+srv://") {
		errs = append(errs, errors.New("MONGODB_URL must use the mongodb:// or mongodb+srv:// scheme"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("MONGODB_DATABASE is required"))
	}
	if c.Mongo.MinPoolSize > c.Mongo.MaxPoolSize && c.Mongo.MaxPoolSize != 0 {
		errs = append(errs, errors.New("MONGODB_MIN_POOL_SIZE must not exceed MONGODB_MAX_POOL_SIZE"))
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}
	for _, o := range c.CORS.AllowedOrigins {
		if o == "*" {
			// Browsers refuse credentialed responses for a wildcard origin.
			errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list explicit origins, not *"))
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("CORS_ALLOWED_ORIGINS entry is not an http(s) origin: %q", o))
		}
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
