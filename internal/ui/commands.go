// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's commands.go file contains Bubble Tea commands that touch the
// data file. Each command performs one store operation and reports back with
// a message. The model starts no new write until the previous one has
// reported back.

package ui

import (
	"password-manager/internal/logger"
	"password-manager/internal/vault"

	tea "github.com/charmbracelet/bubbletea"
)

func loadEntriesCmd(store *vault.Store) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.Load()
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func addEntryCmd(store *vault.Store, e vault.Entry) tea.Cmd {
	return func() tea.Msg {
		if err := store.Append(e); err != nil {
			logger.Error("Adding entry failed.", "error", err)
			return entrySavedMsg{err: err}
		}
		logger.Info("Entry added.", "identity", e.Kind.Key())
		return entrySavedMsg{status: "Account added successfully!"}
	}
}

func updateEntryCmd(store *vault.Store, index int, e vault.Entry) tea.Cmd {
	return func() tea.Msg {
		if err := store.Replace(index, e); err != nil {
			logger.Error("Updating entry failed.", "index", index+1, "error", err)
			return entrySavedMsg{err: err}
		}
		logger.Info("Entry updated.", "index", index+1)
		return entrySavedMsg{status: "Password updated successfully!"}
	}
}

func removeEntryCmd(store *vault.Store, index int) tea.Cmd {
	return func() tea.Msg {
		if _, err := store.RemoveAt(index); err != nil {
			logger.Error("Removing entry failed.", "index", index+1, "error", err)
			return entrySavedMsg{err: err}
		}
		logger.Info("Entry removed.", "index", index+1)
		return entrySavedMsg{status: "Password removed successfully!"}
	}
}

func purgeEntriesCmd(store *vault.Store) tea.Cmd {
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			logger.Error("Purge failed.", "error", err)
			return entrySavedMsg{err: err}
		}
		logger.Info("All entries purged.")
		return entrySavedMsg{status: "All saved passwords purged successfully!"}
	}
}

// waitForChangeCmd blocks until the watcher reports a change. It returns nil
// when there is no watcher or it has stopped.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return dataFileChangedMsg{}
	}
}
