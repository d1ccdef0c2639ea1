// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"password-manager/internal/config"
	"password-manager/internal/vault"

	"github.com/spf13/cobra"
)

// storeForCompletion opens the data file named by the flags or config.
// Completion runs without PersistentPreRunE, so nothing is set up yet.
func storeForCompletion() (*vault.Store, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	c, err := config.LoadConfigFrom(path)
	if err != nil {
		return nil, err
	}
	if dataFlag != "" {
		dataPath, err := config.ResolvePath(dataFlag)
		if err != nil {
			return nil, err
		}
		return vault.NewStore(dataPath), nil
	}
	dataPath, err := c.EffectiveDataPath()
	if err != nil {
		return nil, err
	}
	return vault.NewStore(dataPath), nil
}

// indexCompletionFunc suggests 1-based entry indexes described by website.
func indexCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := storeForCompletion()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	// Loading would create a missing file.
	if _, err := os.Stat(s.Path()); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	entries, err := s.Load()
	// Ignore malformed files during completion
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	suggestions := make([]string, 0, len(entries))
	for i, e := range entries {
		index := strconv.Itoa(i + 1)
		if strings.HasPrefix(index, toComplete) {
			suggestions = append(suggestions, fmt.Sprintf("%s\t%s", index, e.Website))
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}
