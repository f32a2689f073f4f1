package content

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromResponse_JSONContentType(t *testing.T) {
	p := FromResponse([]byte(`{"a":1}`), "application/json; charset=utf-8")
	if p.Structured == nil {
		t.Fatal("expected structured payload for application/json body")
	}
	if p.Raw != `{"a":1}` {
		t.Fatalf("raw text should be preserved, got %q", p.Raw)
	}
}

func TestFromResponse_JSONSuffixContentType(t *testing.T) {
	p := FromResponse([]byte(`{"items":[]}`), "application/problem+json")
	if p.Structured == nil {
		t.Fatal("expected structured payload for +json media type")
	}
}

func TestFromResponse_InvalidJSONStaysRaw(t *testing.T) {
	p := FromResponse([]byte(`{"a":`), "application/json")
	if p.Structured != nil {
		t.Fatal("unparseable body must stay raw")
	}
	if p.Raw != `{"a":` {
		t.Fatalf("raw text lost: %q", p.Raw)
	}
}

func TestFromResponse_PlainText(t *testing.T) {
	p := FromResponse([]byte(`{"a":1}`), "text/plain")
	if p.Structured != nil {
		t.Fatal("text/plain body must not be decoded even if it looks like JSON")
	}
}

func TestClassify_StructuredWinsAndSerializesWithTabs(t *testing.T) {
	p := FromResponse([]byte(`{"a":1,"b":true}`), "application/json")
	kind, text := Classify(p, zerolog.Nop())
	if kind != KindJSON {
		t.Fatalf("expected KindJSON, got %v", kind)
	}
	if !strings.Contains(text, "\t\"a\": 1") {
		t.Fatalf("expected tab-indented serialization, got %q", text)
	}
}

func TestClassify_StructuredBeatsURLShape(t *testing.T) {
	p := FromResponse([]byte(`"https://example.com"`), "application/json")
	kind, _ := Classify(p, zerolog.Nop())
	if kind != KindJSON {
		t.Fatalf("structured payload must classify as JSON, got %v", kind)
	}
}

func TestClassify_URL(t *testing.T) {
	kind, text := Classify(RawPayload("  https://example.com/page?x=1 \n"), zerolog.Nop())
	if kind != KindURL {
		t.Fatalf("expected KindURL, got %v", kind)
	}
	if text != "  https://example.com/page?x=1 \n" {
		t.Fatalf("classification must not rewrite the text, got %q", text)
	}
}

func TestClassify_Plain(t *testing.T) {
	kind, _ := Classify(RawPayload("just a note"), zerolog.Nop())
	if kind != KindPlain {
		t.Fatalf("expected KindPlain, got %v", kind)
	}
}

func TestIsFeedURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1#f", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"https://", false},
		{"example.com", false},
		{"visit https://example.com today", false},
		{"https://example.com and more", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := IsFeedURL(tc.in); got != tc.want {
			t.Fatalf("IsFeedURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindPlain.String() != "plain" || KindURL.String() != "url" || KindJSON.String() != "json" {
		t.Fatal("unexpected kind names")
	}
}
