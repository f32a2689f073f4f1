package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// HighlightAuto runs plain text through chroma's language detection and
// emits class-tagged spans over escaped text. Unrecognized input comes back
// as plain escaped text.
func HighlightAuto(raw string) string {
	lexer := lexers.Analyse(raw)
	if lexer == nil {
		return Escape(raw)
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, raw)
	if err != nil {
		return Escape(raw)
	}

	var b strings.Builder
	b.Grow(len(raw) + len(raw)/2)
	for token := iterator(); token != chroma.EOF; token = iterator() {
		cls := tokenClass(token.Type)
		if cls == "" {
			b.WriteString(Escape(token.Value))
			continue
		}
		b.WriteString(`<span class="` + cls + `">`)
		b.WriteString(Escape(token.Value))
		b.WriteString(`</span>`)
	}
	return b.String()
}

func tokenClass(t chroma.TokenType) string {
	if cls, ok := chroma.StandardTypes[t]; ok {
		return cls
	}
	if cls, ok := chroma.StandardTypes[t.SubCategory()]; ok {
		return cls
	}
	return chroma.StandardTypes[t.Category()]
}
