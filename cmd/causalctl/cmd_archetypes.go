package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"causalmap/domain/archetypes"
)

func newArchetypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archetypes",
		Short: "Browse the system archetype catalogue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the available archetypes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogue, err := archetypes.DefaultCatalogue()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tNODES\tLINKS")
			for _, a := range catalogue.List() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", a.ID, a.Name, len(a.Nodes), len(a.Links))
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print one archetype as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue, err := archetypes.DefaultCatalogue()
			if err != nil {
				return err
			}
			a, err := catalogue.Get(args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	return cmd
}
