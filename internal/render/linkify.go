package render

import (
	"regexp"
	"strings"
)

var reBareURL = regexp.MustCompile(`https?://[^\s)"]+`)

// Linkify wraps bare URLs found in the text segments of an escaped fragment
// with anchors. Markup passes through untouched and text already inside an
// anchor is never wrapped a second time.
func Linkify(fragment string) string {
	var b strings.Builder
	b.Grow(len(fragment))

	anchorDepth := 0
	for i := 0; i < len(fragment); {
		if fragment[i] == '<' {
			end := strings.IndexByte(fragment[i:], '>')
			if end < 0 {
				b.WriteString(fragment[i:])
				break
			}
			tag := fragment[i : i+end+1]
			switch {
			case tag == "<a>" || strings.HasPrefix(tag, "<a "):
				anchorDepth++
			case strings.HasPrefix(tag, "</a"):
				if anchorDepth > 0 {
					anchorDepth--
				}
			}
			b.WriteString(tag)
			i += end + 1
			continue
		}

		next := strings.IndexByte(fragment[i:], '<')
		var text string
		if next < 0 {
			text = fragment[i:]
			i = len(fragment)
		} else {
			text = fragment[i : i+next]
			i += next
		}

		if anchorDepth > 0 {
			b.WriteString(text)
			continue
		}
		b.WriteString(reBareURL.ReplaceAllStringFunc(text, func(match string) string {
			return `<a href="` + match + `" target="_blank">` + match + `</a>`
		}))
	}

	return b.String()
}
