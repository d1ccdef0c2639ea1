// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *Model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	return nil
}

func handleEntriesLoadedMsg(m *Model, msg entriesLoadedMsg) tea.Cmd {
	m.entries = msg.entries
	if msg.err != nil {
		m.lastError = msg.err
	}

	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}

	switch m.currentState {
	case stateLoading:
		m.currentState = stateEntryList
	case stateRemoveConfirm:
		// The entry under the cursor may have changed on disk.
		m.currentState = stateEntryList
	}
	return nil
}

func handleEntrySavedMsg(m *Model, msg entrySavedMsg) tea.Cmd {
	m.saving = false
	if msg.err != nil {
		m.lastError = msg.err
		m.status = ""
	} else {
		m.status = msg.status
		m.lastError = nil
	}
	return loadEntriesCmd(m.store)
}
