package tui

import (
	"fmt"
	"strconv"
	"strings"

	"fitctl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Course Listing (Year, Program)", "listing"),
						huh.NewOption("Set Default Specialization", "spec"),
						huh.NewOption("Set Plan File", "plan"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "listing":
			err = runSetListingTUI(cfg)
		case "spec":
			err = runSetTextTUI(cfg, "Default specialization code", "e.g. NVIZ", &cfg.DefaultSpec)
		case "plan":
			err = runSetTextTUI(cfg, "Path of the saved study plan", "e.g. plan.yaml", &cfg.PlanFile)
		case "view":
			printConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(cfg *config.AppConfig) {
	opts := cfg.ScraperOptions()
	orUnset := func(s string) string {
		if s == "" {
			return "Not set"
		}
		return s
	}

	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.fitctl.json) ---"))
	fmt.Printf("Listing: %s %s %d (program %d)\n", opts.BaseURL, opts.StudyType, opts.Year, opts.ProgramID)
	fmt.Printf("Concurrency: %d\n", opts.Concurrency)
	fmt.Printf("Cache Dir: %s\n", orUnset(cfg.CacheDir))
	fmt.Printf("Default Spec: %s\n", orUnset(cfg.DefaultSpec))
	fmt.Printf("Plan File: %s\n", orUnset(cfg.PlanFile))
	fmt.Printf("Accent Color: %s\n", orUnset(cfg.AccentColor))
	fmt.Println()
}

func runSetTextTUI(cfg *config.AppConfig, title, placeholder string, field *string) error {
	input := *field

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	*field = strings.TrimSpace(input)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Saved.\n"))
	return nil
}

func validNumber(str string) error {
	if str == "" {
		return nil
	}
	if n, err := strconv.Atoi(str); err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func runSetListingTUI(cfg *config.AppConfig) error {
	opts := cfg.ScraperOptions()
	year := strconv.Itoa(opts.Year)
	program := strconv.Itoa(opts.ProgramID)
	studyType := opts.StudyType

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Academic year of the course listing").
				Value(&year).
				Validate(validNumber),
			huh.NewSelect[string]().
				Title("Study type").
				Options(
					huh.NewOption("Master's (NMgr)", "NMgr"),
					huh.NewOption("Bachelor's (BIT)", "BIT"),
				).
				Value(&studyType),
			huh.NewInput().
				Title("Study program ID").
				Description("The number in the program's URL on the faculty website").
				Value(&program).
				Validate(validNumber),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Year, _ = strconv.Atoi(year)
	cfg.ProgramID, _ = strconv.Atoi(program)
	cfg.StudyType = studyType
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Listing saved. Run `fitctl fetch --force` to refresh the cache.\n"))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for fitctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Charm Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(ValidateHex),
			),
		).WithTheme(GetCustomTheme("99"))

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Beautiful! The theme color is now saved.\n"))
	return nil
}

// ValidateHex accepts "#RRGGBB"
func ValidateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(str[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
