package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestMetricsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Metrics)
		wantErr string
	}{
		{name: "defaults are valid"},
		{
			name:    "zero row height",
			mutate:  func(m *Metrics) { m.RowHeight = 0 },
			wantErr: "RowHeight",
		},
		{
			name:    "negative lane width",
			mutate:  func(m *Metrics) { m.LaneWidth = -3 },
			wantErr: "LaneWidth",
		},
		{
			name:    "zero font size",
			mutate:  func(m *Metrics) { m.FontSize = 0 },
			wantErr: "FontSize",
		},
		{
			name:    "zero padding",
			mutate:  func(m *Metrics) { m.Padding = 0 },
			wantErr: "Padding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMetrics()
			if tt.mutate != nil {
				tt.mutate(&m)
			}
			err := m.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, should name %s", err, tt.wantErr)
			}
		})
	}
}

func TestLineColor(t *testing.T) {
	if LineColor(0) == LineColor(1) {
		t.Error("adjacent lanes should get different colors")
	}
	if LineColor(0) != LineColor(len(palette)) {
		t.Error("palette should cycle by lane index")
	}
	if LineColor(-1) != LineColor(0) {
		t.Error("negative lanes should clamp to the first color")
	}
}

func TestMetroSerialize(t *testing.T) {
	var buf bytes.Buffer
	s := Metro{}
	s.RenderNode(&buf, Node{ID: "n", Center: Point{X: 20, Y: 26}, Radius: 6})

	out := string(s.Serialize(&buf, 100, 50))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.0 50.0"`) {
		t.Errorf("unexpected document header: %s", out)
	}
	if !strings.Contains(out, "<circle") {
		t.Error("serialized document should include buffered fragments")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document should be closed")
	}
}

func TestMetroZeroValueMetrics(t *testing.T) {
	var s Metro
	if s.Metrics() != DefaultMetrics() {
		t.Error("zero-value style should fall back to DefaultMetrics")
	}

	custom := DefaultMetrics()
	custom.RowHeight = 64
	if NewMetro(custom).Metrics().RowHeight != 64 {
		t.Error("NewMetro should keep custom metrics")
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a < b", "a &lt; b"},
		{"x & y", "x &amp; y"},
		{`quote "here"`, "quote &#34;here&#34;"},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderCurveShape(t *testing.T) {
	var buf bytes.Buffer
	Metro{}.RenderCurve(&buf, Curve{From: Point{X: 20, Y: 26}, To: Point{X: 34, Y: 42}, Lane: 0})

	out := buf.String()
	// Vertical tangents: both control points sit at the vertical midpoint.
	if !strings.Contains(out, "C 20.0 34.0, 34.0 34.0, 34.0 42.0") {
		t.Errorf("unexpected curve path: %s", out)
	}
	if !strings.Contains(out, LineColor(0)) {
		t.Errorf("curve should use lane 0 color: %s", out)
	}
}
