package redis

import (
	"testing"

	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKeyNamespaces(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "pc:rate_limit:login:ip:10.0.0.1", c.RateLimitKey("login:ip:10.0.0.1"))
	assert.Equal(t, "pc:session:access:abc", c.AccessSessionKey("abc"))
	assert.Equal(t, "pc:otp:resend:9876543210", c.OTPResendKey("9876543210"))
	assert.Equal(t, "pc:counter:orders", c.CounterKey("orders"))
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://:pass@localhost:6380/2",
		PoolSize: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5, opts.PoolSize)
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "localhost:6379",
		Password: "pass",
		DB:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)
	assert.Equal(t, "pass", opts.Password)
}
