package styles

import (
	"github.com/BurntSushi/toml"

	"github.com/slavekjurkowski2/dagviz/pkg/errors"
)

// metricsFile mirrors the TOML schema for a metrics configuration file:
//
//	row_height   = 32.0
//	lane_width   = 14.0
//	trunk_offset = 20.0
//	node_radius  = 6.0
//	font_size    = 14.0
//	label_gap    = 12.0
//	padding      = 10.0
//
// Omitted keys keep their default value.
type metricsFile struct {
	RowHeight   *float64 `toml:"row_height"`
	LaneWidth   *float64 `toml:"lane_width"`
	TrunkOffset *float64 `toml:"trunk_offset"`
	NodeRadius  *float64 `toml:"node_radius"`
	FontSize    *float64 `toml:"font_size"`
	LabelGap    *float64 `toml:"label_gap"`
	Padding     *float64 `toml:"padding"`
}

// LoadMetrics reads a TOML metrics file, overlaying its values on
// DefaultMetrics. Keys absent from the file keep their defaults, so a
// file tuning a single constant stays minimal.
//
// The result is not validated here; the renderer validates metrics at
// first use, so an intentionally broken file surfaces as an
// INVALID_STYLE error at render time.
func LoadMetrics(path string) (Metrics, error) {
	var f metricsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Metrics{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to load metrics file %s", path)
	}

	m := DefaultMetrics()
	overlay := []struct {
		src *float64
		dst *float64
	}{
		{f.RowHeight, &m.RowHeight},
		{f.LaneWidth, &m.LaneWidth},
		{f.TrunkOffset, &m.TrunkOffset},
		{f.NodeRadius, &m.NodeRadius},
		{f.FontSize, &m.FontSize},
		{f.LabelGap, &m.LabelGap},
		{f.Padding, &m.Padding},
	}
	for _, o := range overlay {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	return m, nil
}
