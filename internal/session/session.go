package session

import (
	"errors"

	"feedpad/internal/api"
)

// State is the authentication state of one feed view.
type State int

const (
	Unauthenticated State = iota
	PinRequired
	Authenticated
	Fatal
)

func (s State) String() string {
	switch s {
	case PinRequired:
		return "pin-required"
	case Authenticated:
		return "authenticated"
	case Fatal:
		return "fatal"
	}
	return "unauthenticated"
}

// Session owns the authentication state for a single feed view. It is
// written only by the view that created it: network calls run elsewhere, but
// their results come back through the Begin/Complete pairs below, so
// transitions stay serialized. A Begin call returning false means the
// operation must not be issued.
type Session struct {
	feedName string
	secret   string
	pushKey  string
	state    State
	fatalMsg string

	// redemption attempts already made, keyed by secret value
	attempted map[string]bool
	inFlight  bool
}

func New(feedName string) *Session {
	return &Session{
		feedName:  feedName,
		attempted: make(map[string]bool),
	}
}

func (s *Session) FeedName() string     { return s.feedName }
func (s *Session) State() State         { return s.state }
func (s *Session) Secret() string       { return s.secret }
func (s *Session) PushKey() string      { return s.pushKey }
func (s *Session) FatalMessage() string { return s.fatalMsg }

// RestoreSecret seeds a secret persisted by an earlier run. The session stays
// Unauthenticated until the server confirms the secret is still valid.
func (s *Session) RestoreSecret(secret string) {
	if s.state != Unauthenticated || secret == "" {
		return
	}
	s.secret = secret
}

// BeginRedemption reserves a redemption attempt for a secret found in the
// navigation target. Each distinct secret value is attempted at most once.
func (s *Session) BeginRedemption(secret string) bool {
	if secret == "" || s.state == Fatal || s.state == Authenticated {
		return false
	}
	if s.inFlight || s.attempted[secret] {
		return false
	}
	s.attempted[secret] = true
	s.inFlight = true
	return true
}

// CompleteRedemption applies the result of a redemption attempt. On success
// the session becomes authenticated and the caller must strip the secret
// from the navigation target; on failure the session stays unauthenticated
// and the ambient metadata fetch takes over.
func (s *Session) CompleteRedemption(secret string, err error) {
	s.inFlight = false
	if s.state == Fatal || err != nil {
		return
	}
	s.secret = secret
	s.state = Authenticated
}

// BeginMetadataFetch reserves the ambient-credential metadata query. It only
// runs while no secret is known and nothing else is outstanding.
func (s *Session) BeginMetadataFetch() bool {
	if s.state == Fatal || s.state == Authenticated || s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// ApplyMetadata applies the metadata response: a feed carrying its secret
// authenticates the session, an unauthorized answer demands a PIN, and any
// other failure is terminal.
func (s *Session) ApplyMetadata(feed api.Feed, err error) {
	s.inFlight = false
	if s.state == Fatal {
		return
	}
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.state = PinRequired
			return
		}
		s.state = Fatal
		s.fatalMsg = err.Error()
		return
	}
	if feed.Secret == "" {
		return
	}
	s.secret = feed.Secret
	s.pushKey = feed.VapidPublicKey
	s.state = Authenticated
}

// BeginPINExchange reserves a PIN submission. PINs are only exchanged from
// PinRequired and never while another authentication call is outstanding.
func (s *Session) BeginPINExchange() bool {
	if s.state != PinRequired || s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// CompletePINExchange applies a PIN exchange result. Failure keeps the
// session in PinRequired so the user can retry.
func (s *Session) CompletePINExchange(secret string, err error) {
	s.inFlight = false
	if s.state == Fatal || err != nil {
		return
	}
	s.secret = secret
	s.state = Authenticated
}
