package cmd

import (
	"fmt"
	"os"

	"fitctl/pkg/config"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrape courses and specializations into the local cache",
	Long: `Download the course listing and the study program's specializations and
store them as snapshots. Existing snapshots are reused unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if force {
			coursesPath, specsPath, err := snapshotPaths(cfg)
			if err != nil {
				return err
			}
			for _, path := range []string{coursesPath, specsPath} {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to remove old snapshot: %w", err)
				}
			}
		}

		store, err := loadStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Cached %d courses and %d specializations\n", len(store.CourseKeys()), len(store.SpecializationKeys()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolP("force", "f", false, "Discard existing snapshots and scrape again")
}
