package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysOnlySetVariables(t *testing.T) {
	t.Setenv("PITLANE_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("PITLANE_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("PITLANE_COOKIE_SECURE", "true")
	t.Setenv("PITLANE_LOGIN_RATE_BURST", "10")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, "127.0.0.1:9000", c.EndpointAddrHTTP)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.True(t, c.CookieSecure)
	assert.Equal(t, 10, c.LoginRateBurst)

	assert.Equal(t, ":50051", c.EndpointAddrGRPC, "unset variables keep defaults")
	assert.Equal(t, "secretKey", c.SecretKey)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("PITLANE_LOGIN_RATE_BURST", "many")

	c := &Config{}
	err := parseEnv(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
