package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the pattern, shop, and yarn listings and snapshot them locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix := catalog.NewIndex(newSource(), log)
		if err := ix.Load(cmd.Context()); err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}

		path := snapshotWritePath()
		snap := ix.Snapshot()
		if err := snap.WriteFile(path); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}

		fmt.Printf("Fetched %d patterns, %d shops, %d yarns to %s\n",
			len(snap.Patterns), len(snap.Shops), len(snap.Yarns), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
