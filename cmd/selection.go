package cmd

import (
	"fmt"
	"strings"

	"fitctl/pkg/catalog"
	"fitctl/pkg/config"
	"fitctl/pkg/plan"

	"github.com/spf13/cobra"
)

func addSelectionFlags(c *cobra.Command) {
	c.Flags().String("spec", "", "Specialization code, e.g. NVIZ")
	c.Flags().StringP("plan", "p", "", "YAML plan file")
	c.Flags().StringArrayP("semester", "s", nil, "Comma separated course codes of one semester, repeat in order (W, S, W, S)")
	c.Flags().Int("extra", 0, "Credits earned outside the course listing")
}

// parseSemesters turns one comma list per semester into plan slots
func parseSemesters(values []string) ([catalog.SlotCount][]string, error) {
	var slots [catalog.SlotCount][]string
	if len(values) > catalog.SlotCount {
		return slots, fmt.Errorf("got %d semesters, at most %d are supported", len(values), catalog.SlotCount)
	}
	for i, v := range values {
		slots[i] = []string{}
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				slots[i] = append(slots[i], key)
			}
		}
	}
	return slots, nil
}

// resolveSelection builds the selection from --semester, or else from the
// plan file given by --plan or the config. --spec and --extra override the
// plan's values.
func resolveSelection(cmd *cobra.Command, cfg *config.AppConfig) (plan.Selection, error) {
	var sel plan.Selection

	semesters, _ := cmd.Flags().GetStringArray("semester")
	planFile, _ := cmd.Flags().GetString("plan")
	if planFile == "" && len(semesters) == 0 {
		planFile = cfg.PlanFile
	}

	if len(semesters) > 0 {
		slots, err := parseSemesters(semesters)
		if err != nil {
			return sel, err
		}
		sel.Semesters = slots
	} else if planFile != "" {
		loaded, err := plan.LoadSelection(planFile)
		if err != nil {
			return sel, err
		}
		sel = *loaded
	}

	if spec, _ := cmd.Flags().GetString("spec"); spec != "" {
		sel.Spec = spec
	}
	if sel.Spec == "" {
		sel.Spec = cfg.DefaultSpec
	}
	if sel.Spec == "" {
		return sel, fmt.Errorf("no specialization given, use --spec or set a default with `fitctl config --spec`")
	}

	if cmd.Flags().Changed("extra") {
		extra, _ := cmd.Flags().GetInt("extra")
		if extra < 0 {
			return sel, fmt.Errorf("extra credits cannot be negative")
		}
		sel.ExtraCredits = extra
	}

	return sel, nil
}
