package cmd

import (
	"fmt"
	"os"

	"fitctl/pkg/config"
	"fitctl/pkg/exporter"
	"fitctl/pkg/plan"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a study plan to an ICS calendar",
	Long:  `Write one all-day event per planned semester, with its courses and credits, to an ICS file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		year, _ := cmd.Flags().GetInt("year")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if year == 0 {
			year = cfg.ScraperOptions().Year
		}

		sel, err := resolveSelection(cmd, cfg)
		if err != nil {
			return err
		}

		store, err := loadStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		spec, err := store.Specialization(sel.Spec)
		if err != nil {
			return err
		}

		r, err := plan.Evaluate(store, spec, sel)
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(r, store, year, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %s plan starting %d/%d to %s\n", spec.Abbrv, year, year+1, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "plan.ics", "Output file path")
	exportCmd.Flags().Int("year", 0, "Year the first winter semester starts (defaults to the listing year)")
}
