package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/graph"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/report"
)

var designerJSON bool

var designerCmd = &cobra.Command{
	Use:   "designer <name>",
	Short: "Build a designer's pattern-to-yarn network and rank their most-recommended yarns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := OpenIndex()
		if err != nil {
			return err
		}

		net, err := graph.BuildYarnNetwork(cmd.Context(), ix, args[0])
		if err != nil {
			return fmt.Errorf("building yarn network: %w", err)
		}

		if designerJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(net)
		}
		fmt.Print(report.YarnNetwork(net))
		return nil
	},
}

func init() {
	designerCmd.Flags().BoolVar(&designerJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(designerCmd)
}
