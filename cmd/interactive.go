package cmd

import (
	"fitctl/pkg/catalog"
	"fitctl/pkg/config"
	"fitctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to pick a specialization, choose courses per semester and review the plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(func() (*catalog.Store, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return loadStore(cmd.Context(), cfg)
		})
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
