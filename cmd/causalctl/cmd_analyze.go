package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"causalmap/application/services"
	"causalmap/domain/analysis"
	"causalmap/domain/config"
)

type analyzeOptions struct {
	file        string
	output      string
	environment string
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Detect loops, leverage points and options in a model file",
		Long: `Analyze reads a YAML causal loop model and prints its feedback loops,
leverage points and strategic options.

Usage:
  causalctl analyze -f model.yaml
  causalctl analyze -f model.yaml -o json
  cat model.yaml | causalctl analyze -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Model file (YAML), - for stdin")
	f.StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	f.StringVar(&opts.environment, "environment", "development", "Limit profile: development, staging or production")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", opts.output)
	}

	var in io.Reader = cmd.InOrStdin()
	if opts.file != "-" {
		f, err := os.Open(opts.file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	m, err := loadModel(in)
	if err != nil {
		return err
	}
	graph, err := m.build(config.LoadDomainConfig(opts.environment))
	if err != nil {
		return err
	}

	snapshot := services.NewAnalysisService(nil, nil, nil, nil, nil, nil).Run(graph)

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	names := make(map[string]string, graph.NodeCount())
	for _, n := range graph.Nodes() {
		names[n.ID().String()] = n.Label().Summary(labelWidth)
	}
	return printSnapshot(out, snapshot, names)
}

// labelWidth caps node labels in the text tables.
const labelWidth = 24

func printSnapshot(w io.Writer, s *analysis.Snapshot, names map[string]string) error {
	name := func(id string) string {
		if l, ok := names[id]; ok {
			return l
		}
		return id
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Nodes: %d\tEdges: %d\tDelayed: %d\tFactors: %d\n",
		s.Summary.Nodes, s.Summary.Edges, s.Summary.DelayedEdges, s.Summary.Factors)

	fmt.Fprintf(tw, "\nLOOPS (%d reinforcing, %d balancing)\n", s.Summary.Loops.Reinforcing, s.Summary.Loops.Balancing)
	for _, l := range s.Loops {
		path := make([]string, 0, len(l.Nodes)+1)
		for _, id := range l.Nodes {
			path = append(path, name(id.String()))
		}
		if len(l.Nodes) > 0 {
			path = append(path, name(l.Nodes[0].String()))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.Type, strings.Join(path, " -> "))
	}

	fmt.Fprintf(tw, "\nLEVERAGE POINTS (%d)\n", len(s.LeveragePoints))
	for _, p := range s.LeveragePoints {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Type, p.Impact, name(p.NodeID.String()))
	}

	fmt.Fprintf(tw, "\nSTRATEGIC OPTIONS (%d)\n", len(s.Options))
	for _, o := range s.Options {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.Feasibility, o.Title, strings.Join(o.LeveragePoints, ","))
	}
	return tw.Flush()
}
