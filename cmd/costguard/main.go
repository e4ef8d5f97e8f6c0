package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/costguard/costguard/pkg/config"
)

var version = "dev"

var (
	claudeDirFlag string
	configFlag    string
	debugFlag     bool
)

func main() {
	root := &cobra.Command{
		Use:     "costguard",
		Short:   "Cost Guardrails — monthly spend tracking and budget warnings for Claude Code",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugFlag)
		},
	}

	root.PersistentFlags().StringVar(&claudeDirFlag, "claude-dir", "", "override the ~/.claude directory")
	root.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file")
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	root.AddCommand(
		newHookCmd(),
		newStatusCmd(),
		newStateCmd(),
		newHistoryCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes all diagnostics to stderr. Stdout is reserved
// for the hook output protocol and must stay machine-parseable.
func setupLogging(debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// claudeDir resolves the Claude Code data directory. Failure here is
// the one catastrophic case: without it neither logs nor state can be
// located, so it surfaces as a non-zero exit.
func claudeDir() (string, error) {
	if claudeDirFlag != "" {
		return claudeDirFlag, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".claude"), nil
}

func projectsDir(dir string) string { return filepath.Join(dir, "projects") }
func statePath(dir string) string   { return filepath.Join(dir, "cost_guardrails_state.json") }
func ledgerPath(dir string) string  { return filepath.Join(dir, "cost_guardrails.db") }

func configPath(dir string) string {
	if configFlag != "" {
		return configFlag
	}
	for _, name := range []string{"cost_guardrails.yaml", "cost_guardrails.json"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, "cost_guardrails.yaml")
}

// loadConfig never fails: a broken config document falls back to the
// defaults with a logged warning.
func loadConfig(dir string) config.Config {
	cfg, err := config.Load(configPath(dir))
	if err != nil {
		log.Warn().Err(err).Msg("using default config")
	}
	return cfg
}
