package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, int64(20<<20), c.MaxUploadBytes)
	assert.Empty(t, c.SecretKey, "secret key must not have a default")
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("TOKEN_VALIDITY_HOURS", "48")

	c := &Config{}
	c.LoadDefaults()
	c.loadEnv()

	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, 48*time.Hour, c.TokenValidityDuration)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-a", ":9999", "-s", "flag-secret", "-t", "12"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 12*time.Hour, c.TokenValidityDuration)
}

func TestParseJson(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "conf*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{
		"endpoint_addr": ":7070",
		"secret_key": "json-secret",
		"token_validity_duration": "6h",
		"s3_bucket": "papers-test"
	}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", f.Name()}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 6*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "papers-test", c.S3Bucket)
	// untouched fields keep defaults
	assert.Equal(t, "us-east-1", c.S3Region)
}
