package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const strokeWidth = 2.0

// palette is the fixed metro line palette. Lines cycle through it by lane
// index, so the same plot always gets the same colors.
var palette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#9a6324", // brown
}

// Metro is the default style: filled circles on a vertical trunk with
// colored subway-line tracks, serialized as SVG.
//
// The zero value uses DefaultMetrics. Construct with custom metrics to
// tune the layout:
//
//	s := styles.NewMetro(styles.Metrics{RowHeight: 40, ...})
type Metro struct {
	metrics Metrics
}

// DefaultMetrics returns the metric set used by the zero-value Metro style.
func DefaultMetrics() Metrics {
	return Metrics{
		RowHeight:   32,
		LaneWidth:   14,
		TrunkOffset: 20,
		NodeRadius:  6,
		FontSize:    14,
		LabelGap:    12,
		Padding:     10,
	}
}

// NewMetro creates a metro style with custom metrics. The metrics are not
// validated here - the renderer validates them before first use so that a
// broken style fails fast with a diagnostic instead of drawing garbage.
func NewMetro(m Metrics) Metro {
	return Metro{metrics: m}
}

// Metrics returns the style's layout constants, falling back to
// DefaultMetrics for the zero value.
func (s Metro) Metrics() Metrics {
	if s.metrics == (Metrics{}) {
		return DefaultMetrics()
	}
	return s.metrics
}

// LineColor returns the palette color for a lane index.
func LineColor(lane int) string {
	if lane < 0 {
		lane = 0
	}
	return palette[lane%len(palette)]
}

// RenderNode writes the node marker as a stroked circle.
func (s Metro) RenderNode(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="white" stroke="#333" stroke-width="%.1f"/>`+"\n",
		n.Center.X, n.Center.Y, n.Radius, strokeWidth)
}

// RenderLabel writes the label text anchored left of its baseline point,
// vertically centered on the row.
func (s Metro) RenderLabel(buf *bytes.Buffer, l Label) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" dominant-baseline="middle">%s</text>`+"\n",
		l.Anchor.X, l.Anchor.Y, l.Size, EscapeXML(l.Text))
}

// RenderSegment writes a straight track piece in the lane's line color.
func (s Metro) RenderSegment(buf *bytes.Buffer, seg Segment) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, LineColor(seg.Lane), strokeWidth)
}

// RenderCurve writes a cubic Bézier bend with vertical tangents at both
// ends, which is what gives merges and splits the metro-map look.
func (s Metro) RenderCurve(buf *bytes.Buffer, c Curve) {
	midY := (c.From.Y + c.To.Y) / 2
	fmt.Fprintf(buf, `  <path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		c.From.X, c.From.Y,
		c.From.X, midY,
		c.To.X, midY,
		c.To.X, c.To.Y,
		LineColor(c.Lane), strokeWidth)
}

// Serialize wraps the accumulated fragments into a complete SVG document.
func (s Metro) Serialize(buf *bytes.Buffer, width, height float64) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	out.Write(buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

// EscapeXML escapes text for safe embedding in SVG markup.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
