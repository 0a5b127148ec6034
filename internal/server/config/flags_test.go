package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name: "overrides server and token settings",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "postgres://u:p@h:5432/db", "-t", "30", "-r", "120"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "127.0.0.1:9090", c.EndpointAddr)
				assert.Equal(t, "postgres://u:p@h:5432/db", c.DatabaseDSN)
				assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
				assert.Equal(t, 2*time.Hour, c.RefreshTokenValidityDuration)
			},
		},
		{
			name: "overrides S3 and companion settings",
			args: []string{"cmd", "-u", "minio", "-p", "miniopass", "-b", "pins", "-e", "http://minio:9000/", "-o", "http://llm:8000/v1", "-m", "gpt-4o-mini"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "minio", c.S3RootUser)
				assert.Equal(t, "miniopass", c.S3RootPassword)
				assert.Equal(t, "pins", c.S3Bucket)
				assert.Equal(t, "http://minio:9000/", c.S3BaseEndpoint)
				assert.Equal(t, "http://llm:8000/v1", c.CompanionBaseURL)
				assert.Equal(t, "gpt-4o-mini", c.CompanionModel)
			},
		},
		{
			name:        "incorrect token validity",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"cmd", "-z", "value", "-a", ":9999"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":9999", c.EndpointAddr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			tt.check(t, config)
		})
	}
}
