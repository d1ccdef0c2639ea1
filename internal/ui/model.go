// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"password-manager/internal/secret"
	"password-manager/internal/vault"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the Bubble Tea model for the password manager TUI.
type Model struct {
	store    *vault.Store
	verifier secret.Verifier
	changes  <-chan struct{}
	keymap   KeyMap

	currentState state
	entries      []vault.Entry
	cursor       int
	reveal       bool

	// Add/edit form
	formInputs     []textinput.Model
	formFocusIndex int
	formError      error
	editIndex      int

	purgeInput textinput.Model

	// saving is set while a store mutation is in flight.
	saving bool

	status    string
	lastError error
	width     int
	height    int
}

// New returns a model over store. changes may be nil when the data file is
// not watched.
func New(store *vault.Store, verifier secret.Verifier, changes <-chan struct{}) *Model {
	if verifier == nil {
		verifier = secret.Unset{}
	}
	return &Model{
		store:        store,
		verifier:     verifier,
		changes:      changes,
		keymap:       DefaultKeyMap,
		currentState: stateLoading,
		editIndex:    -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadEntriesCmd(m.store), waitForChangeCmd(m.changes))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, handleWindowSizeMsg(m, msg)
	case entriesLoadedMsg:
		return m, handleEntriesLoadedMsg(m, msg)
	case entrySavedMsg:
		return m, handleEntrySavedMsg(m, msg)
	case dataFileChangedMsg:
		return m, tea.Batch(loadEntriesCmd(m.store), waitForChangeCmd(m.changes))
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m, tea.Quit
		}
		switch m.currentState {
		case stateEntryList:
			return m, m.handleEntryListKeys(msg)
		case stateRemoveConfirm:
			return m, m.handleRemoveConfirmKeys(msg)
		case stateAddForm, stateEditForm:
			return m, m.handleFormKeys(msg)
		case statePurgePassword:
			return m, m.handlePurgePasswordKeys(msg)
		case statePurgeConfirm:
			return m, m.handlePurgeConfirmKeys(msg)
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var body, footer string
	switch m.currentState {
	case stateLoading:
		body, footer = m.renderLoadingView()
	case stateEntryList:
		body, footer = m.renderEntryListView()
	case stateRemoveConfirm:
		body, footer = m.renderRemoveConfirmView()
	case stateAddForm, stateEditForm:
		body, footer = m.renderEntryFormView()
	case statePurgePassword:
		body, footer = m.renderPurgePasswordView()
	case statePurgeConfirm:
		body, footer = m.renderPurgeConfirmView()
	}

	header := titleStyle.Render("Password Manager")
	content := body
	if m.width > 0 {
		content = mainContentBorderStyle.Width(m.width - 2).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
