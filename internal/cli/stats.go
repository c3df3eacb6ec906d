package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
	dagio "github.com/slavekjurkowski2/dagviz/pkg/io"
	"github.com/slavekjurkowski2/dagviz/pkg/plot"
)

// newStatsCmd creates the stats command, which prints a summary of a graph
// file without rendering it.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print a summary of a DAG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), args[0])
		},
	}
}

// runStats loads the graph, builds its abstract plot, and prints node, edge,
// source, and sink counts together with the lane corridor width.
func runStats(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Reading %s", input)

	g, err := dagio.ImportJSON(input)
	if err != nil {
		return err
	}

	p, err := plot.Build(g)
	if err != nil {
		return err
	}

	printTitle(input)
	printKeyValue("nodes", fmt.Sprintf("%d", g.NodeCount()))
	printKeyValue("edges", fmt.Sprintf("%d", g.EdgeCount()))
	printKeyValue("sources", strings.Join(nodeIDs(g.Sources()), ", "))
	printKeyValue("sinks", strings.Join(nodeIDs(g.Sinks()), ", "))
	printKeyValue("rows", fmt.Sprintf("%d", p.RowCount()))
	return nil
}

// nodeIDs extracts the IDs from a slice of nodes.
func nodeIDs(nodes []*dag.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
