package content

import (
	"encoding/json"
	"mime"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Kind is the render classification of a text payload.
type Kind int

const (
	KindPlain Kind = iota
	KindURL
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindJSON:
		return "json"
	}
	return "plain"
}

// Payload is an item's text as handed over by the transport layer.
// Structured is non-nil when the response body decoded as JSON; Raw always
// holds the original bytes as text. The split is decided once at ingestion,
// never re-guessed downstream.
type Payload struct {
	Raw        string
	Structured any
}

func RawPayload(text string) Payload {
	return Payload{Raw: text}
}

func StructuredPayload(raw string, value any) Payload {
	return Payload{Raw: raw, Structured: value}
}

// FromResponse builds a payload from an item response body. Bodies declared
// as JSON are decoded into a structured value; anything else, including JSON
// that fails to parse, stays raw text.
func FromResponse(data []byte, contentType string) Payload {
	raw := string(data)
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !isJSONMediaType(mediaType) {
		return RawPayload(raw)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return RawPayload(raw)
	}
	return StructuredPayload(raw, value)
}

// Classify maps a payload onto exactly one render kind and the text to
// render. Structured values win and are serialized with tab indentation; a
// failed serialization falls back to the raw payload and is only logged.
func Classify(p Payload, log zerolog.Logger) (Kind, string) {
	if p.Structured != nil {
		serialized, err := json.MarshalIndent(p.Structured, "", "\t")
		if err != nil {
			log.Error().Err(err).Msg("serialize structured payload")
			return KindPlain, p.Raw
		}
		return KindJSON, string(serialized)
	}
	if IsFeedURL(p.Raw) {
		return KindURL, p.Raw
	}
	return KindPlain, p.Raw
}

// IsFeedURL reports whether the whole trimmed string is an absolute http or
// https URL with a host.
func IsFeedURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
