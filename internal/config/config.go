package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the client.
type Config struct {
	ServerURL string
	Feed      string
	DBPath    string
	LogLevel  string
}

// Target is the navigation target the client was launched with: a feed name
// or a full feed URL, possibly carrying a one-time secret parameter. The
// secret is redeemed once and then stripped so it never survives in
// history, logs, or status output.
type Target struct {
	ServerURL string
	Feed      string
	Secret    string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServerURL: os.Getenv("FEEDPAD_SERVER_URL"),
		Feed:      os.Getenv("FEEDPAD_FEED"),
		DBPath:    os.Getenv("FEEDPAD_DB_PATH"),
		LogLevel:  os.Getenv("FEEDPAD_LOG_LEVEL"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "feedpad.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("FEEDPAD_SERVER_URL is required")
	}
	if strings.HasSuffix(c.ServerURL, "/") {
		return fmt.Errorf("FEEDPAD_SERVER_URL must not end with '/': %s", c.ServerURL)
	}
	if c.Feed == "" {
		return errors.New("FEEDPAD_FEED is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	return nil
}

// ParseTarget interprets a launch argument. A bare word is a feed name; an
// http(s) URL is split into server, feed, and the optional secret parameter.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, errors.New("empty feed target")
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return Target{Feed: raw}, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parse feed url: %w", err)
	}
	if parsed.Host == "" {
		return Target{}, fmt.Errorf("feed url has no host: %s", raw)
	}

	feed := strings.Trim(parsed.Path, "/")
	if feed == "" || strings.Contains(feed, "/") {
		return Target{}, fmt.Errorf("feed url path must name exactly one feed: %s", raw)
	}

	decoded, err := url.PathUnescape(feed)
	if err != nil {
		decoded = feed
	}

	return Target{
		ServerURL: parsed.Scheme + "://" + parsed.Host,
		Feed:      decoded,
		Secret:    parsed.Query().Get("secret"),
	}, nil
}
