package cmd

import (
	"fmt"
	"os"

	"fitctl/pkg/catalog"
	"fitctl/pkg/config"
	"fitctl/pkg/exporter"

	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Export which specialization requires which course",
	Long: `Write a CSV table with one row per specialization and one column per
required course, 1 where the specialization requires the course.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := loadStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		m := catalog.BuildMatrix(store.Specializations())

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.WriteMatrixCSV(m, file); err != nil {
			return fmt.Errorf("failed to write matrix: %w", err)
		}
		fmt.Printf("Successfully exported %d specializations x %d courses to %s\n", len(m.Specs), len(m.Courses), output)

		if xlsxPath != "" {
			if err := exporter.WriteMatrixXLSX(m, xlsxPath); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}
			fmt.Printf("Successfully exported workbook to %s\n", xlsxPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)

	matrixCmd.Flags().StringP("output", "o", "matrix.csv", "Output file path")
	matrixCmd.Flags().String("xlsx", "", "Also write the matrix to this .xlsx workbook")
}
