package cmd

import (
	"os"

	"fitctl/pkg/config"
	"fitctl/pkg/plan"
	"fitctl/pkg/render"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show every specialization with its required courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := loadStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		reports, err := plan.Overview(store)
		if err != nil {
			return err
		}

		render.NewPrinter(os.Stdout, formatter(cmd, cfg), store).Overview(reports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().Bool("plain", false, "Disable colors")
}
