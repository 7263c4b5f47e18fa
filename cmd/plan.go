package cmd

import (
	"os"

	"fitctl/pkg/config"
	"fitctl/pkg/plan"
	"fitctl/pkg/render"

	"github.com/spf13/cobra"
)

// formatter picks lipgloss colors unless --plain is set
func formatter(cmd *cobra.Command, cfg *config.AppConfig) render.Formatter {
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return render.Plain{}
	}
	return render.NewStyled(cfg.AccentColor)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Check a study plan against a specialization",
	Long: `Evaluate the selected courses of each semester: credits per semester,
courses placed in the wrong semester, required courses still missing and
the credits of the elective pools that would cover them.`,
	Example: `  fitctl plan --spec NVIZ -s FCE,PP1 -s VYF,KNN
  fitctl plan --plan plan.yaml --detail --legend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
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

		detail, _ := cmd.Flags().GetBool("detail")
		legend, _ := cmd.Flags().GetBool("legend")
		decide, _ := cmd.Flags().GetBool("decide")
		p := render.NewPrinter(os.Stdout, formatter(cmd, cfg), store)

		if decide {
			d, err := plan.Decide(store, spec, sel)
			if err != nil {
				return err
			}
			p.Decision(d, detail, legend)
			return nil
		}

		r, err := plan.Evaluate(store, spec, sel)
		if err != nil {
			return err
		}
		p.SpecHeader(spec)
		p.Report(r, detail)
		if legend {
			p.Legend(r)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	addSelectionFlags(planCmd)
	planCmd.Flags().BoolP("detail", "d", false, "Show points and hours per course")
	planCmd.Flags().BoolP("legend", "l", false, "List the full names of the planned courses")
	planCmd.Flags().Bool("decide", false, "Compare the required-only plan with the plan merged with the required courses")
	planCmd.Flags().Bool("plain", false, "Disable colors")
}
