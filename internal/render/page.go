package render

import "strings"

const pageStyle = `body { background: #0d1117; color: #e6edf3; font-family: ui-monospace, monospace; margin: 2em; }
pre { white-space: break-spaces; word-wrap: break-word; font-size: 0.9em; }
a { color: #58a6ff; }
.key { color: #7ee787; }
.string { color: #a5d6ff; }
.number { color: #ffa657; }
.boolean { color: #d2a8ff; }
.null { color: #8b949e; }
.k, .kd, .kn { color: #ff7b72; }
.s, .s1, .s2 { color: #a5d6ff; }
.m, .mi, .mf { color: #ffa657; }
.c, .c1, .cm { color: #8b949e; }
.nf, .nc { color: #d2a8ff; }`

// Page wraps a rendered fragment into a standalone HTML document, for
// handing to a browser. The fragment is trusted output of Render; the title
// is escaped here.
func Page(title, fragment string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(Escape(title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(pageStyle)
	b.WriteString("\n</style>\n</head>\n<body>\n<pre>")
	b.WriteString(fragment)
	b.WriteString("</pre>\n</body>\n</html>\n")
	return b.String()
}
