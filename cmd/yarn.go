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

var yarnJSON bool

var yarnCmd = &cobra.Command{
	Use:   "yarn <name-or-id>",
	Short: "Show one yarn: weight, fiber content, dominant fiber",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := OpenIndex()
		if err != nil {
			return err
		}

		y, err := ix.FindYarn(parseSelector(args[0]))
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Printf("No yarn matching %q.\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		if err := ix.HydrateYarn(cmd.Context(), y); err != nil {
			return fmt.Errorf("fetching yarn details: %w", err)
		}

		if yarnJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(y)
		}
		fmt.Print(report.Yarn(y))
		return nil
	},
}

func init() {
	yarnCmd.Flags().BoolVar(&yarnJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(yarnCmd)
}
