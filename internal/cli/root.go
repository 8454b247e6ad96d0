package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trajlog-project/trajlog/pkg/color"
	"github.com/trajlog-project/trajlog/pkg/config"
	"github.com/trajlog-project/trajlog/pkg/logging"
)

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
	configPath string

	rootCmd = &cobra.Command{
		Use:   "trajlog",
		Short: "trajlog - simulation timestamp logfile tools",
		Long: `trajlog aggregates per-clone trajectory timestamps from a PROJ/RUN/CLONE
simulation hierarchy into a flat logfile, and checks such logfiles for
missing timestamps, duplicate timestamps, and truncated runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
			if verbose {
				logging.SetGlobalLevel(logging.LevelDebug)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to trajlog.yaml (default: <dir>/trajlog.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// loadConfig loads trajlog.yaml from dir unless --config points elsewhere,
// and applies its logging settings (--verbose wins over the config level).
func loadConfig(dir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(dir)
	}
	if err != nil {
		return nil, err
	}
	if !verbose {
		logging.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	}
	if cfg.Logging.Format == string(logging.FormatJSON) {
		logging.SetGlobalFormat(logging.FormatJSON)
	}
	return cfg, nil
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
