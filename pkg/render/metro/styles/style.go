package styles

import (
	"bytes"

	"github.com/slavekjurkowski2/dagviz/pkg/errors"
)

// Style defines the visual capability consumed by the metro renderer.
// Implementations supply the pixel metrics and turn abstract drawing
// primitives into concrete vector-image fragments in an accumulating
// buffer, which Serialize finally wraps into the complete image text.
//
// The renderer never hardcodes a metric or an output format: everything
// visual flows through this interface.
type Style interface {
	// Metrics returns the pixel layout constants. The renderer validates
	// them before emitting anything and aborts on the first missing one.
	Metrics() Metrics
	// RenderNode writes the marker for a node placed on the trunk.
	RenderNode(buf *bytes.Buffer, n Node)
	// RenderLabel writes a node's label text.
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderSegment writes a straight track segment.
	RenderSegment(buf *bytes.Buffer, s Segment)
	// RenderCurve writes a merge/split bend between two points.
	RenderCurve(buf *bytes.Buffer, c Curve)
	// Serialize wraps the accumulated fragments into the final vector
	// image text for a canvas of the given size.
	Serialize(buf *bytes.Buffer, width, height float64) []byte
}

// Metrics holds the pixel layout constants a style supplies to the
// renderer. All values must be positive; Validate reports the first one
// that is not.
type Metrics struct {
	RowHeight   float64 // vertical distance between consecutive rows
	LaneWidth   float64 // horizontal distance between adjacent lanes
	TrunkOffset float64 // x position of the node trunk
	NodeRadius  float64 // radius of the node marker
	FontSize    float64 // label font size
	LabelGap    float64 // gap between the routing corridor and labels
	Padding     float64 // outer canvas padding
}

// Validate checks that every metric is positive. Visual correctness
// depends on each value being intentional, so a missing (zero or
// negative) metric is fatal rather than silently defaulted.
func (m Metrics) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"RowHeight", m.RowHeight},
		{"LaneWidth", m.LaneWidth},
		{"TrunkOffset", m.TrunkOffset},
		{"NodeRadius", m.NodeRadius},
		{"FontSize", m.FontSize},
		{"LabelGap", m.LabelGap},
		{"Padding", m.Padding},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return errors.New(errors.ErrCodeInvalidStyle, "style metric %s must be positive, got %v", c.name, c.value)
		}
	}
	return nil
}

// Point is a 2-D pixel coordinate. The origin is the top-left corner,
// with y increasing downward (SVG convention).
type Point struct {
	X, Y float64
}

// Node contains the data needed to draw a single node marker.
type Node struct {
	ID     string  // Node identifier
	Center Point   // Marker center on the trunk
	Radius float64 // Marker radius
}

// Label contains the data needed to draw a node's label text.
type Label struct {
	Text   string  // Display text
	Anchor Point   // Left edge of the text baseline anchor
	Size   float64 // Font size
}

// Segment is a straight track piece, typically a vertical lane run or a
// trunk connection between consecutive nodes.
type Segment struct {
	From, To Point
	Lane     int // Lane index, used by styles to pick a line color
}

// Curve is a merge/split bend connecting a node to a lane (or back).
// Styles are free to choose the curve shape; the metro style draws a
// cubic Bézier with vertical tangents at both ends.
type Curve struct {
	From, To Point
	Lane     int // Lane index, used by styles to pick a line color
}
