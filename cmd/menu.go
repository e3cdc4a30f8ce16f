package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := OpenIndex()
		if err != nil {
			return err
		}
		return tui.Run(tui.Deps{
			Index:        ix,
			Source:       newSource(),
			Geocoder:     newGeocoder(),
			SnapshotPath: snapshotWritePath(),
			Log:          log,
		})
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
