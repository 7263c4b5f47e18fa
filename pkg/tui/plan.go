package tui

import (
	"fmt"
	"os"
	"strconv"

	"fitctl/pkg/catalog"
	"fitctl/pkg/config"
	"fitctl/pkg/plan"
	"fitctl/pkg/render"

	"github.com/charmbracelet/huh"
)

// RunPlanTUI walks the student through picking a specialization and the
// courses of each semester, then prints the evaluated plan.
func RunPlanTUI(load StoreLoader) error {
	fmt.Println(accentStyle.Render("Welcome to the fitctl Study Planner!"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := load()
	if err != nil {
		return err
	}

	specs := store.Specializations()
	if len(specs) == 0 {
		fmt.Println(errorStyle.Render("No specializations found in the cache!"))
		return nil
	}

	specKey := cfg.DefaultSpec
	var specOptions []huh.Option[string]
	for _, sp := range specs {
		specOptions = append(specOptions, huh.NewOption(fmt.Sprintf("%s - %s", sp.Abbrv, sp.Name), sp.Abbrv))
	}

	specForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your specialization").
				Options(specOptions...).
				Value(&specKey).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := specForm.Run(); err != nil {
		return err
	}

	spec, err := store.Specialization(specKey)
	if err != nil {
		return err
	}

	// Start from the saved plan when it is for the same specialization
	start := plan.RequiredSelection(spec)
	if cfg.PlanFile != "" {
		if saved, err := plan.LoadSelection(cfg.PlanFile); err == nil && saved.Spec == spec.Abbrv {
			start = *saved
		}
	}

	var sel plan.Selection
	sel.Spec = spec.Abbrv

	var groups []*huh.Group
	for i := range sel.Semesters {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Year %d, %s semester", i/2+1, catalog.SlotSemester(i).Name())).
				Description("Space = toggle, Enter = confirm. Start typing to filter.").
				Options(courseOptions(store, spec, i, start.Semesters[i])...).
				Value(&sel.Semesters[i]).
				Filterable(true).
				Height(12),
		))
	}

	extra := strconv.Itoa(start.ExtraCredits)
	save := cfg.PlanFile != ""
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Extra credits").
			Description("Credits earned outside the course listing").
			Value(&extra).
			Validate(func(str string) error {
				n, err := strconv.Atoi(str)
				if err != nil || n < 0 {
					return fmt.Errorf("must be a non-negative number")
				}
				return nil
			}),
		huh.NewConfirm().
			Title("Save this plan?").
			Value(&save),
	))

	if err := huh.NewForm(groups...).WithTheme(GetTheme()).Run(); err != nil {
		return err
	}
	sel.ExtraCredits, _ = strconv.Atoi(extra)

	if save {
		if err := savePlan(cfg, &sel); err != nil {
			return err
		}
	}

	d, err := plan.Decide(store, spec, sel)
	if err != nil {
		return err
	}

	render.NewPrinter(os.Stdout, render.NewStyled(cfg.AccentColor), store).Decision(d, true, true)
	return nil
}

// courseOptions lists the courses taught in the slot's semester, preselecting
// the given keys
func courseOptions(store *catalog.Store, spec catalog.Specialization, slot int, preselected []string) []huh.Option[string] {
	pre := make(map[string]bool, len(preselected))
	for _, k := range preselected {
		pre[k] = true
	}

	var options []huh.Option[string]
	for _, key := range store.CoursesIn(catalog.SlotSemester(slot)) {
		c, err := store.Course(key)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%s  %s (%d cr.)", key, c.Name, c.Credits)
		if spec.Requires(key) {
			label += " *"
		}
		options = append(options, huh.NewOption(label, key).Selected(pre[key]))
	}
	return options
}

func savePlan(cfg *config.AppConfig, sel *plan.Selection) error {
	path := cfg.PlanFile
	if path == "" {
		path = "plan.yaml"
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Where should the plan be saved?").
					Value(&path),
			),
		).WithTheme(GetTheme())
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := sel.Save(path); err != nil {
		return err
	}

	cfg.PlanFile = path
	cfg.DefaultSpec = sel.Spec
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Plan saved to %s\n", path)))
	return nil
}
