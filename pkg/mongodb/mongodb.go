package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrHealthcheckFailed = errors.New("mongo healthcheck failed")

// Config controls the client pool. Zero values fall back to conservative defaults.
type Config struct {
	URL             string
	ConnectTimeout  time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	PingTimeout     time.Duration
}

func (c Config) withDefaults() Config {
	out := c
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = 10 * time.Second
	}
	if out.MaxPoolSize == 0 {
		out.MaxPoolSize = 100
	}
	if out.MinPoolSize > out.MaxPoolSize {
		out.MinPoolSize = out.MaxPoolSize
	}
	if out.MaxConnIdleTime <= 0 {
		out.MaxConnIdleTime = 5 * time.Minute
	}
	if out.PingTimeout <= 0 {
		out.PingTimeout = 5 * time.Second
	}
	return out
}

func (c Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URL).
		SetConnectTimeout(c.ConnectTimeout).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetRetryReads(true).
		SetRetryWrites(true)
}

// Open connects to the document database and validates connectivity via ping.
// The URL carries credentials; do not log it.
func Open(ctx context.Context, cfg Config) (*mongo.Client, error) {
	cfg = cfg.withDefaults()
	if cfg.URL == "" {
		return nil, errors.New("mongo url is required")
	}

	client, err := mongo.Connect(cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := HealthCheck(ctx, client, cfg.PingTimeout); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// HealthCheck pings the primary with a timeout.
func HealthCheck(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	if client == nil {
		return errors.Join(ErrHealthcheckFailed, errors.New("client is nil"))
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// PingDatabase runs the ping command against db, so readiness reflects the
// database the handlers use rather than just the cluster.
func PingDatabase(ctx context.Context, db *mongo.Database, timeout time.Duration) error {
	if db == nil {
		return errors.Join(ErrHealthcheckFailed, errors.New("database is nil"))
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, fmt.Errorf("database %s: %w", db.Name(), err))
	}
	return nil
}

// Pinger adapts a database handle to a readiness check with a fixed timeout.
func Pinger(db *mongo.Database, timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		return PingDatabase(ctx, db, timeout)
	}
}
