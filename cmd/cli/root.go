// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"password-manager/cmd/tui"
	"password-manager/internal/config"
	"password-manager/internal/keychain"
	"password-manager/internal/logger"
	"password-manager/internal/secret"
	"password-manager/internal/shell"
	"password-manager/internal/vault"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const annotationInteractive = "interactive"

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgCyan)
	dimColor        = color.New(color.Faint)
)

// Flag values and state built by PersistentPreRunE.
var (
	configFlag string
	dataFlag   string

	cfg      config.Config
	store    *vault.Store
	verifier secret.Verifier
)

// reportedError marks an error the shell has already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "pm",
	Short: "Password Manager CLI",
	Long: `A small password manager that keeps website, username or email and
password entries in a JSON file.

Run without a subcommand to start the interactive prompt. The subcommands
perform the same operations one at a time, which is handy for scripts.`,
	Args:              cobra.NoArgs,
	Annotations:       map[string]string{annotationInteractive: "true"},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	RunE: runShell,
}

var shellCmd = &cobra.Command{
	Use:         "shell",
	Short:       "Start the interactive prompt (default)",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationInteractive: "true"},
	RunE:        runShell,
}

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Browse and edit entries in a full-screen interface",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationInteractive: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(store, verifier)
	},
}

// setup loads the configuration, starts logging and opens the store.
func setup(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}
	cfg, err = config.LoadConfigFrom(path)
	if err != nil {
		return err
	}

	logger.InitLogger(logger.Options{
		Interactive: cmd.Annotations[annotationInteractive] == "true",
		Level:       cfg.LogLevel,
	})
	logger.Debug("Command starting.", "command", cmd.CommandPath(), "config", path)

	dataPath, err := resolveDataPath()
	if err != nil {
		return err
	}
	store = vault.NewStore(dataPath)
	verifier = resolveVerifier()
	return nil
}

func configFilePath() (string, error) {
	if configFlag != "" {
		return config.ResolvePath(configFlag)
	}
	return config.DefaultConfigPath()
}

// resolveDataPath gives --data precedence over the configured path.
func resolveDataPath() (string, error) {
	if dataFlag != "" {
		return config.ResolvePath(dataFlag)
	}
	return cfg.EffectiveDataPath()
}

func resolveVerifier() secret.Verifier {
	var kc keychain.Store
	if cfg.MasterSource == config.MasterSourceKeychain {
		var err error
		if kc, err = newKeychainStore(); err != nil {
			logger.Warn("Keychain unavailable, purge is disabled.", "error", err)
		}
	}
	v, err := secret.Resolve(cfg, kc)
	if err != nil {
		logger.Warn("Could not resolve the master password.", "error", err)
	}
	return v
}

func runShell(cmd *cobra.Command, args []string) error {
	sh := shell.New(store, verifier, cmd.OutOrStdout())
	return sh.Run(cmd.InOrStdin())
}

// promptHelp lists the commands understood by the interactive prompt.
func promptHelp() string {
	var b strings.Builder
	b.WriteString("Starts the interactive prompt, which understands these commands:\n")
	for _, c := range shell.Commands() {
		fmt.Fprintf(&b, "\n  %s", c.Usage())
		if len(c.Aliases) > 0 {
			fmt.Fprintf(&b, " (alias: %s)", strings.Join(c.Aliases, ", "))
		}
		fmt.Fprintf(&b, "\n      %s", c.Description)
	}
	return b.String()
}

// RunCLI executes the root command and exits non-zero on failure.
func RunCLI() {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logger.Close()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/password-manager/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", fmt.Sprintf("password data file (default %q or data_path from config)", config.DefaultDataPath))

	shellCmd.Long = promptHelp()
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(tuiCmd)
}
