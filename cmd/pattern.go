package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/report"
)

var patternJSON bool

var patternCmd = &cobra.Command{
	Use:   "pattern <name-or-id>",
	Short: "Show one pattern: price, categories, recommended yarns",
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
		if err := ix.HydratePattern(cmd.Context(), p); err != nil {
			return fmt.Errorf("fetching pattern details: %w", err)
		}

		if patternJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}

		var labels []string
		for _, id := range p.RecommendedYarnIDs {
			y, err := ix.FindYarn(catalog.Selector{ID: id})
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			labels = append(labels, y.Label())
		}
		fmt.Print(report.Pattern(p, labels))
		return nil
	},
}

func init() {
	patternCmd.Flags().BoolVar(&patternJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(patternCmd)
}
