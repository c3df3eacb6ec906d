package render

import (
	"bytes"
	"fmt"
)

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>body { margin: 1em; font-family: sans-serif; }</style>
</head>
<body>
`

// WrapHTML embeds SVG bytes in a minimal standalone HTML document so the
// result can be opened directly in a browser or displayed inline by
// notebook-style hosts. The SVG is inlined as-is, not referenced.
func WrapHTML(svg []byte, title string) []byte {
	if title == "" {
		title = "dagviz"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlHeader, title)
	buf.Write(svg)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
