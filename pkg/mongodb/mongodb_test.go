package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{URL: "mongodb://localhost:27017", MinPoolSize: 500}.withDefaults()

	assert.Equal(t, 10*time.Second, c.ConnectTimeout)
	assert.Equal(t, uint64(100), c.MaxPoolSize)
	assert.Equal(t, uint64(100), c.MinPoolSize)
	assert.Equal(t, 5*time.Minute, c.MaxConnIdleTime)
	assert.Equal(t, 5*time.Second, c.PingTimeout)
}

func TestConfig_KeepsExplicitValues(t *testing.T) {
	c := Config{ConnectTimeout: time.Second, MaxPoolSize: 7, MinPoolSize: 2}.withDefaults()

	assert.Equal(t, time.Second, c.ConnectTimeout)
	assert.Equal(t, uint64(7), c.MaxPoolSize)
	assert.Equal(t, uint64(2), c.MinPoolSize)
}

func TestOpen_RequiresURL(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
}

func TestHealthCheck_NilClient(t *testing.T) {
	err := HealthCheck(context.Background(), nil, time.Second)
	assert.ErrorIs(t, err, ErrHealthcheckFailed)
}

func TestPingDatabase_NilDatabase(t *testing.T) {
	err := PingDatabase(context.Background(), nil, time.Second)
	assert.ErrorIs(t, err, ErrHealthcheckFailed)

	assert.ErrorIs(t, Pinger(nil, time.Second)(context.Background()), ErrHealthcheckFailed)
}
