package render

import (
	"regexp"
	"strings"

	"feedpad/internal/content"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// reJSONToken tokenizes escaped JSON text in a single pass: quoted strings
// (keys when a colon follows), the bare literals, and numeric literals with
// optional sign and exponent. Structural characters are left untouched.
var reJSONToken = regexp.MustCompile(`"(?:\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(?:\s*:)?|\b(?:true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?`)

// Escape neutralizes markup in raw text. Every render branch starts here.
func Escape(raw string) string {
	return htmlEscaper.Replace(raw)
}

// Render converts classified item text into a trusted, escaped HTML
// fragment. It is pure: same text and kind always produce the same bytes,
// and it never touches a live document.
func Render(text string, kind content.Kind) string {
	switch kind {
	case content.KindJSON:
		return Linkify(highlightJSON(Escape(text)))
	case content.KindURL:
		return wholeAnchor(text)
	default:
		return Linkify(HighlightAuto(text))
	}
}

func highlightJSON(escaped string) string {
	return reJSONToken.ReplaceAllStringFunc(escaped, func(match string) string {
		cls := "number"
		switch {
		case strings.HasPrefix(match, `"`):
			if strings.HasSuffix(match, ":") {
				cls = "key"
			} else {
				cls = "string"
			}
		case match == "true" || match == "false":
			cls = "boolean"
		case match == "null":
			cls = "null"
		}
		return `<span class="` + cls + `">` + match + `</span>`
	})
}

func wholeAnchor(raw string) string {
	escaped := Escape(raw)
	return `<a href="` + attrEscape(raw) + `" target="_blank">` + escaped + `</a>`
}

func attrEscape(raw string) string {
	return strings.ReplaceAll(Escape(raw), `"`, "&#34;")
}
