package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"feedpad/internal/api"
	"feedpad/internal/clipboard"
	"feedpad/internal/config"
	"feedpad/internal/feedsync"
	"feedpad/internal/session"
	"feedpad/internal/store"
	"feedpad/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// A launch argument overrides the environment: `feedpad myfeed` or a full
	// feed URL, possibly with a one-time ?secret= parameter.
	navSecret := ""
	if len(os.Args) > 1 {
		target, err := config.ParseTarget(os.Args[1])
		if err != nil {
			log.Fatalf("bad feed target: %v", err)
		}
		if target.ServerURL != "" {
			cfg.ServerURL = target.ServerURL
		}
		cfg.Feed = target.Feed
		navSecret = target.Secret
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	credStore, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer credStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := credStore.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}

	storedSecret, _, err := credStore.LoadCredential(ctx, cfg.Feed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load stored credential (%v), continuing without it\n", err)
	}

	client := api.NewClient(cfg.ServerURL, nil)
	client.SetSecret(storedSecret)

	sess := session.New(cfg.Feed)
	if storedSecret != "" {
		sess.RestoreSecret(storedSecret)
	}

	model := tui.NewModel(tui.Options{
		Transport: client,
		Session:   sess,
		Sync:      feedsync.New(cfg.Feed),
		Clipboard: clipboard.New(logger),
		Log:       logger,
		ServerURL: cfg.ServerURL,
		NavSecret: navSecret,
		SaveCredential: func(feed, secret, pushKey string) error {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer saveCancel()
			return credStore.SaveCredential(saveCtx, feed, secret, pushKey)
		},
		Stream: func(ctx context.Context, feed, secret string, events chan<- api.Event) error {
			return api.NewSubscriber(cfg.ServerURL, feed, secret, logger).Run(ctx, events)
		},
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(parsed).
		With().Timestamp().Logger()
}
