package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/report"
)

var shopsJSON bool

var shopsCmd = &cobra.Command{
	Use:   "shops <city>",
	Short: "List shops in a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := OpenIndex()
		if err != nil {
			return err
		}

		city := catalog.NormalizeName(args[0])
		shops := ix.ShopsInCity(city)

		if shopsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(shops)
		}
		os.Stdout.WriteString(report.Shops(city, shops))
		return nil
	},
}

func init() {
	shopsCmd.Flags().BoolVar(&shopsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(shopsCmd)
}
