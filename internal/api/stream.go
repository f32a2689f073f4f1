package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const reconnectDelay = 5 * time.Second

// EventAction names a change the server pushed for a feed.
type EventAction string

const (
	EventAdd    EventAction = "add"
	EventRemove EventAction = "remove"
	EventRename EventAction = "rename"
)

// Event is one change notification from the feed's real-time channel.
// Events are applied idempotently: re-adding a known item replaces it and
// removing an unknown one is a no-op.
type Event struct {
	Action  EventAction `json:"action"`
	Item    *Item       `json:"item,omitempty"`
	OldName string      `json:"oldName,omitempty"`
}

// Subscriber keeps a websocket connection to the feed's change channel. The
// channel does not carry the authentication cookie, so the feed secret is
// passed as a query parameter instead.
type Subscriber struct {
	baseURL string
	feed    string
	secret  string
	log     zerolog.Logger
}

func NewSubscriber(baseURL, feed, secret string, log zerolog.Logger) *Subscriber {
	return &Subscriber{
		baseURL: strings.TrimRight(baseURL, "/"),
		feed:    feed,
		secret:  secret,
		log:     log,
	}
}

func (s *Subscriber) Feed() string {
	return s.feed
}

// Run connects and delivers events until the context is cancelled,
// reconnecting after transient errors. Cancellation stops delivery; a read
// already in flight may still complete and its event is dropped.
func (s *Subscriber) Run(ctx context.Context, events chan<- Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx, events); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.log.Warn().Err(err).Str("feed", s.feed).Msg("feed stream disconnected, reconnecting")
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
				}
			}
		}
	}
}

func (s *Subscriber) subscribe(ctx context.Context, events chan<- Event) error {
	wsURL, err := s.streamURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial feed stream: %w", err)
	}
	defer conn.Close()

	// Unblock the read below when the caller goes away.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	s.log.Debug().Str("feed", s.feed).Msg("feed stream connected")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read stream message: %w", err)
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			s.log.Error().Err(err).Msg("malformed stream event")
			continue
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Subscriber) streamURL() (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse stream base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws/" + url.PathEscape(s.feed)
	q := u.Query()
	if s.secret != "" {
		q.Set("secret", s.secret)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
