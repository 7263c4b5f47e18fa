package cmd

import (
	"fmt"
	"strings"

	"fitctl/pkg/config"
	"fitctl/pkg/tui"

	"github.com/spf13/cobra"
)

var settingFlags = []string{"year", "study-type", "program", "concurrency", "spec", "plan-file", "cache-dir", "base-url", "accent"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fitctl configuration",
	Long:  "View or edit your local configuration settings (listing year, default specialization, plan file, theme).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		changed := false
		for _, name := range settingFlags {
			changed = changed || flags.Changed(name)
		}
		if !changed {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if flags.Changed("year") {
			cfg.Year, _ = flags.GetInt("year")
		}
		if flags.Changed("study-type") {
			cfg.StudyType, _ = flags.GetString("study-type")
		}
		if flags.Changed("program") {
			cfg.ProgramID, _ = flags.GetInt("program")
		}
		if flags.Changed("concurrency") {
			cfg.Concurrency, _ = flags.GetInt("concurrency")
		}
		if flags.Changed("spec") {
			cfg.DefaultSpec, _ = flags.GetString("spec")
		}
		if flags.Changed("plan-file") {
			cfg.PlanFile, _ = flags.GetString("plan-file")
		}
		if flags.Changed("cache-dir") {
			cfg.CacheDir, _ = flags.GetString("cache-dir")
		}
		if flags.Changed("base-url") {
			cfg.BaseURL, _ = flags.GetString("base-url")
		}
		if flags.Changed("accent") {
			accent, _ := flags.GetString("accent")
			if strings.HasPrefix(accent, "#") {
				if err := tui.ValidateHex(accent); err != nil {
					return err
				}
			}
			cfg.AccentColor = accent
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println("✅ Configuration saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Int("year", 0, "Academic year of the course listing")
	configCmd.Flags().String("study-type", "", "Study type of the course listing, e.g. NMgr")
	configCmd.Flags().Int("program", 0, "Study program ID whose specializations are listed")
	configCmd.Flags().Int("concurrency", 0, "Detail pages fetched in parallel")
	configCmd.Flags().String("spec", "", "Default specialization code")
	configCmd.Flags().String("plan-file", "", "Default YAML plan file")
	configCmd.Flags().String("cache-dir", "", "Directory of the course and specialization snapshots")
	configCmd.Flags().String("base-url", "", "Faculty website URL")
	configCmd.Flags().String("accent", "", "Accent color, an ANSI 256 code or #RRGGBB")
}
