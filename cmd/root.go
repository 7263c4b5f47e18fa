package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose      bool
	coursesCache string
	specsCache   string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fitctl",
	Short: "A CLI and TUI for planning FIT BUT master's studies",
	Long: `fitctl scrapes the FIT BUT course listing and study program pages,
caches them locally and checks a study plan against a specialization:
credits per semester, required courses still missing and what they cost.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log fetch progress at debug level")
	rootCmd.PersistentFlags().StringVar(&coursesCache, "courses-cache", "", "Course snapshot path (.json or .db)")
	rootCmd.PersistentFlags().StringVar(&specsCache, "specs-cache", "", "Specialization snapshot path (.json or .db)")
}
