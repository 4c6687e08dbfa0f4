package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("FLEXPAY_AUTHORIZATION_TOKEN", "secret-token")
	t.Setenv("FLEXPAY_BASE_URL", "https://sandbox.flexpay.io/v1")
	t.Setenv("FLEXPAY_GATEWAY_TOKEN", "gw-token")
	t.Setenv("FLEXPAY_DEBUG_OUTPUT", "true")
	t.Setenv("FLEXPAY_TIMEOUT", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.AuthorizationToken)
	assert.Equal(t, "https://sandbox.flexpay.io/v1", cfg.BaseURL)
	assert.Equal(t, "gw-token", cfg.GatewayToken)
	assert.True(t, cfg.DebugOutput)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("FLEXPAY_AUTHORIZATION_TOKEN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{
		AuthorizationToken: "secret-token",
		BaseURL:            "https://sandbox.flexpay.io/v1",
		Timeout:            5 * time.Second,
	}

	opts := cfg.ClientOptions()
	assert.Equal(t, "secret-token", opts.AuthorizationToken)
	assert.Equal(t, "https://sandbox.flexpay.io/v1", opts.BaseURL)
	require.NotNil(t, opts.HTTPClient)
	assert.Equal(t, 5*time.Second, opts.HTTPClient.Timeout)

	// No timeout keeps the client default.
	opts = (&Config{AuthorizationToken: "secret-token"}).ClientOptions()
	assert.Nil(t, opts.HTTPClient)
}
