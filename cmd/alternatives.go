package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/graph"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/report"
)

var alternativesJSON bool

var alternativesCmd = &cobra.Command{
	Use:   "alternatives <pattern-name-or-id>",
	Short: "Find yarns from the same designer's other patterns that could substitute for a pattern's recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := OpenIndex()
		if err != nil {
			return err
		}

		p, err := ix.FindPattern(parseSelector(args[0]))
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Printf("No pattern matching %q.\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}

		alts, err := graph.FindAlternatives(cmd.Context(), ix, p)
		if err != nil {
			return fmt.Errorf("finding alternatives: %w", err)
		}

		if alternativesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(alts)
		}
		fmt.Print(report.Alternatives(alts))
		return nil
	},
}

func init() {
	alternativesCmd.Flags().BoolVar(&alternativesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(alternativesCmd)
}
