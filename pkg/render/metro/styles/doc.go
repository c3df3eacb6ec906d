// Package styles defines the pluggable visual capability for metro
// rendering, plus the default [Metro] implementation.
//
// A [Style] supplies pixel metrics and converts abstract primitives
// (nodes, labels, segments, curves) into vector-image fragments, then
// serializes the accumulated buffer into the final image text. The
// renderer itself is format-agnostic: swapping a style changes both the
// look and the output format without touching layout code.
package styles
