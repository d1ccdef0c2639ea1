// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"context"
	"fmt"

	"password-manager/internal/logger"
	"password-manager/internal/secret"
	"password-manager/internal/ui"
	"password-manager/internal/vault"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI initializes and runs the Bubble Tea TUI application over store.
func RunTUI(store *vault.Store, verifier secret.Verifier) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := store.Init(); err != nil {
		logger.Warn("Data file could not be loaded.", "path", store.Path(), "error", err)
	}
	// Reload when another program rewrites the data file.
	changes, err := store.Watch(ctx)
	if err != nil {
		logger.Warn("Not watching the data file for changes.", "error", err)
	}

	m := ui.New(store, verifier, changes)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
