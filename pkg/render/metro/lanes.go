package metro

import (
	"fmt"
	"slices"

	"github.com/slavekjurkowski2/dagviz/pkg/errors"
	"github.com/slavekjurkowski2/dagviz/pkg/plot"
)

// edge identifies an in-flight edge by its source and destination row
// indices. Rows are unique per node, so this key is unambiguous.
type edge struct {
	src, dst int
}

// laneAssignment is the result of the lane allocation pass: every edge's
// lane index plus the peak number of simultaneously occupied lanes, which
// determines the width of the routing corridor.
type laneAssignment struct {
	lanes    map[edge]int
	maxLanes int
}

// assignLanes walks the rows top to bottom and greedily assigns each edge
// the lowest-numbered free lane at its source row, releasing it at its
// destination row. Through traffic keeps its lane unchanged.
//
// Tie-breaks are deterministic: edges terminating at a row are processed
// in ascending source-row order, edges originating at a row in ascending
// destination-row order. Lane indices are therefore a pure function of
// the plot.
//
// Returns a DANGLING_EDGE error when the plot's rows disagree about an
// edge's endpoints or when an edge is still live after the last row.
func assignLanes(p *plot.AbstractPlot) (laneAssignment, error) {
	rows := p.Rows()
	lanes := make(map[edge]int)
	live := make(map[edge]int)
	var occupied []bool
	maxLanes := 0

	for i, row := range rows {
		// Terminating edges release their lanes first so the slots can be
		// reused by edges originating at this same row.
		for _, pred := range row.Inputs {
			src, ok := p.RowIndex(pred)
			if !ok {
				return laneAssignment{}, errors.New(errors.ErrCodeDanglingEdge,
					"row %d lists input %s which has no row", i, pred)
			}
			e := edge{src: src, dst: i}
			lane, ok := live[e]
			if !ok {
				return laneAssignment{}, errors.New(errors.ErrCodeDanglingEdge,
					"edge %d->%d terminates at row %d but never originated", e.src, e.dst, i)
			}
			occupied[lane] = false
			delete(live, e)
		}

		// Everything still live is through traffic at this row; its lanes
		// carry over untouched.

		for _, dst := range row.Outputs {
			if dst <= i {
				return laneAssignment{}, errors.New(errors.ErrCodeInvalidInput,
					"edge %d->%d does not point downward", i, dst)
			}
			e := edge{src: i, dst: dst}
			lane := claimLane(&occupied)
			lanes[e] = lane
			live[e] = lane
			if n := liveCount(occupied); n > maxLanes {
				maxLanes = n
			}
		}
	}

	if len(live) > 0 {
		dangling := make([]edge, 0, len(live))
		for e := range live {
			dangling = append(dangling, e)
		}
		slices.SortFunc(dangling, func(a, b edge) int {
			if a.src != b.src {
				return a.src - b.src
			}
			return a.dst - b.dst
		})
		return laneAssignment{}, errors.New(errors.ErrCodeDanglingEdge,
			"plot traversal finished with live edges: %s", formatEdges(dangling))
	}

	return laneAssignment{lanes: lanes, maxLanes: maxLanes}, nil
}

// claimLane returns the lowest free lane index, growing the occupancy
// slice when all current lanes are taken.
func claimLane(occupied *[]bool) int {
	for i, taken := range *occupied {
		if !taken {
			(*occupied)[i] = true
			return i
		}
	}
	*occupied = append(*occupied, true)
	return len(*occupied) - 1
}

func liveCount(occupied []bool) int {
	n := 0
	for _, taken := range occupied {
		if taken {
			n++
		}
	}
	return n
}

func formatEdges(edges []edge) string {
	s := ""
	for i, e := range edges {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d->%d", e.src, e.dst)
	}
	return s
}
