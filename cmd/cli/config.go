// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bufio"
	"errors"
	"fmt"

	"password-manager/internal/config"
	"password-manager/internal/keychain"
	"password-manager/internal/logger"
	"password-manager/internal/secret"

	"github.com/spf13/cobra"
)

// newKeychainStore opens the system keychain; tests replace it.
var newKeychainStore = keychain.NewSystem

var useKeychain bool

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage password-manager configuration",
	Long: `Provides subcommands to manage the password-manager configuration.
This includes the location of the password data file and the master password
required by purge.`,
}

var configSetDataPathCmd = &cobra.Command{
	Use:   "set-data-path <path>",
	Short: "Set the file where passwords are stored",
	Long: `Sets the JSON file used to store passwords. A path starting with '~/' is
expanded to the home directory. To revert to the default (passwords.json in the
working directory), set the path to an empty string: pm config set-data-path ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.DataPath = args[0]
		if err := saveConfig(); err != nil {
			return err
		}

		if cfg.DataPath == "" {
			successColor.Fprintf(cmd.OutOrStdout(), "Data path reset to default (%s).\n", config.DefaultDataPath)
		} else {
			successColor.Fprintf(cmd.OutOrStdout(), "Data path set to: %s\n", cfg.DataPath)
		}
		return nil
	},
}

var configGetDataPathCmd = &cobra.Command{
	Use:   "get-data-path",
	Short: "Show the configured and effective data file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.DataPath != "" {
			fmt.Fprintf(out, "Configured data path: %s\n", identifierColor.Sprint(cfg.DataPath))
		} else {
			fmt.Fprintln(out, "Data path not explicitly configured.")
			fmt.Fprintf(out, "Default: %s\n", identifierColor.Sprint(config.DefaultDataPath))
		}
		source := "(from config)"
		switch {
		case dataFlag != "":
			source = "(from --data)"
		case cfg.DataPath == "":
			source = "(default)"
		}
		successColor.Fprintf(out, "Effective path being used: %s %s\n", store.Path(), source)
		return nil
	},
}

var configSetMasterCmd = &cobra.Command{
	Use:   "set-master",
	Short: "Set the master password required by purge",
	Long: `Reads a new master password twice without echo and stores its bcrypt hash
in the config file, or in the system keychain with --keychain (macOS only).
Any plaintext master_password in the config file is removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		pw, err := readSecret(cmd, in, "New master password: ")
		if err != nil {
			return err
		}
		again, err := readSecret(cmd, in, "Confirm master password: ")
		if err != nil {
			return err
		}
		if pw != again {
			return errors.New("passwords do not match")
		}

		hash, err := secret.Hash(pw)
		if err != nil {
			return err
		}

		cfg.MasterPassword = ""
		if useKeychain {
			kc, err := newKeychainStore()
			if err != nil {
				return err
			}
			if err := kc.SetMasterHash(hash); err != nil {
				return err
			}
			cfg.MasterPasswordHash = ""
			cfg.MasterSource = config.MasterSourceKeychain
		} else {
			cfg.MasterPasswordHash = hash
			cfg.MasterSource = ""
		}

		if err := saveConfig(); err != nil {
			return err
		}
		logger.Info("Master password changed.", "keychain", useKeychain)
		successColor.Fprintln(cmd.OutOrStdout(), "Master password set.")
		return nil
	},
}

var configClearMasterCmd = &cobra.Command{
	Use:   "clear-master",
	Short: "Remove the master password, disabling purge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.MasterSource == config.MasterSourceKeychain {
			kc, err := newKeychainStore()
			if err != nil {
				return err
			}
			if err := kc.DeleteMasterHash(); err != nil {
				return err
			}
		}
		cfg.MasterPassword = ""
		cfg.MasterPasswordHash = ""
		cfg.MasterSource = ""

		if err := saveConfig(); err != nil {
			return err
		}
		logger.Info("Master password cleared.")
		successColor.Fprintln(cmd.OutOrStdout(), "Master password removed.")
		dimColor.Fprintln(cmd.OutOrStdout(), "purge is disabled until a new one is set.")
		return nil
	},
}

func saveConfig() error {
	path, err := configFilePath()
	if err != nil {
		return err
	}
	if err := config.SaveConfigTo(path, cfg); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}
	return nil
}

func init() {
	configSetMasterCmd.Flags().BoolVar(&useKeychain, "keychain", false, "store the hash in the system keychain")

	configCmd.AddCommand(configSetDataPathCmd)
	configCmd.AddCommand(configGetDataPathCmd)
	configCmd.AddCommand(configSetMasterCmd)
	configCmd.AddCommand(configClearMasterCmd)

	rootCmd.AddCommand(configCmd)
}
