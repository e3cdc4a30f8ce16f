package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/graph"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/report"
)

var (
	shopnetJSON   bool
	shopnetRadius float64
	shopnetTopN   int
)

var shopnetCmd = &cobra.Command{
	Use:   "shopnet <city>",
	Short: "Build the shop proximity network around a city and rank the most central shops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := OpenIndex()
		if err != nil {
			return err
		}

		center, err := newGeocoder().Locate(cmd.Context(), args[0])
		if errors.Is(err, geo.ErrNoMatch) {
			fmt.Printf("No location found for %q.\n", args[0])
			return nil
		}
		if err != nil {
			return fmt.Errorf("geocoding %q: %w", args[0], err)
		}

		net := graph.BuildShopNetwork(ix, center, shopnetRadius, shopnetTopN)

		if shopnetJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(net)
		}
		fmt.Print(report.ShopNetwork(args[0], net))
		return nil
	},
}

func init() {
	shopnetCmd.Flags().BoolVar(&shopnetJSON, "json", false, "Output as JSON")
	shopnetCmd.Flags().Float64Var(&shopnetRadius, "radius", graph.DefaultRadiusMiles, "Radius in miles around the city center")
	shopnetCmd.Flags().IntVar(&shopnetTopN, "top", graph.TopShopCount, "Number of shops to rank")
	rootCmd.AddCommand(shopnetCmd)
}
