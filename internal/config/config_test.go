package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FEEDPAD_SERVER_URL", "https://feeds.example.com")
	t.Setenv("FEEDPAD_FEED", "notes")
	t.Setenv("FEEDPAD_DB_PATH", "")
	t.Setenv("FEEDPAD_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "feedpad.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing server",
			cfg:     Config{Feed: "notes", DBPath: "x.db"},
			wantErr: "FEEDPAD_SERVER_URL",
		},
		{
			name:    "trailing slash",
			cfg:     Config{ServerURL: "https://x.example/", Feed: "notes", DBPath: "x.db"},
			wantErr: "must not end with",
		},
		{
			name:    "missing feed",
			cfg:     Config{ServerURL: "https://x.example", DBPath: "x.db"},
			wantErr: "FEEDPAD_FEED",
		},
		{
			name: "valid",
			cfg:  Config{ServerURL: "https://x.example", Feed: "notes", DBPath: "x.db"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseTarget_BareFeedName(t *testing.T) {
	target, err := ParseTarget("  notes  ")
	require.NoError(t, err)
	assert.Equal(t, Target{Feed: "notes"}, target)
}

func TestParseTarget_FullURLWithSecret(t *testing.T) {
	target, err := ParseTarget("https://feeds.example.com/my%20notes?secret=abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://feeds.example.com", target.ServerURL)
	assert.Equal(t, "my notes", target.Feed)
	assert.Equal(t, "abc123", target.Secret)
}

func TestParseTarget_URLWithoutSecret(t *testing.T) {
	target, err := ParseTarget("http://localhost:8080/notes")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", target.ServerURL)
	assert.Equal(t, "notes", target.Feed)
	assert.Empty(t, target.Secret)
}

func TestParseTarget_Errors(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"https://feeds.example.com/",
		"https://feeds.example.com/a/b",
	} {
		_, err := ParseTarget(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
