// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	errPurgeDisabled  = errors.New("no master password configured, purge is disabled (set one with 'pm config set-master')")
	errSecretMismatch = errors.New("master password incorrect, purge operation aborted")
)

const (
	statusCanceled = "Operation canceled."
	statusSaving   = "Still saving, try again in a moment."
)

// --- Update Handlers ---
// These methods handle key presses for specific UI states.

func (m *Model) handleEntryListKeys(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	m.lastError = nil

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit
	case m.saving && key.Matches(msg, m.keymap.Add, m.keymap.Edit, m.keymap.Remove, m.keymap.Purge):
		m.status = statusSaving
	case key.Matches(msg, m.keymap.Add):
		m.openForm(stateAddForm, -1)
		return textinput.Blink
	case key.Matches(msg, m.keymap.Edit):
		if m.hasSelection() {
			m.openForm(stateEditForm, m.cursor)
			return textinput.Blink
		}
	case key.Matches(msg, m.keymap.Remove):
		if m.hasSelection() {
			m.currentState = stateRemoveConfirm
		}
	case key.Matches(msg, m.keymap.Purge):
		if !m.verifier.Configured() {
			m.lastError = errPurgeDisabled
			return nil
		}
		m.purgeInput = createPurgeInput()
		m.currentState = statePurgePassword
		return textinput.Blink
	case key.Matches(msg, m.keymap.Reveal):
		m.reveal = !m.reveal
	case key.Matches(msg, m.keymap.Reload):
		return loadEntriesCmd(m.store)
	}
	return nil
}

func (m *Model) handleRemoveConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Yes):
		m.currentState = stateEntryList
		return m.mutate(removeEntryCmd(m.store, m.cursor))
	case key.Matches(msg, m.keymap.No):
		m.currentState = stateEntryList
		m.status = statusCanceled
	}
	return nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc):
		m.closeForm()
		m.status = statusCanceled
		return nil
	case key.Matches(msg, m.keymap.Tab):
		m.focusField((m.formFocusIndex + 1) % fieldCount)
		return nil
	case key.Matches(msg, m.keymap.ShiftTab):
		m.focusField((m.formFocusIndex - 1 + fieldCount) % fieldCount)
		return nil
	case key.Matches(msg, m.keymap.Enter):
		entry, err := entryFromForm(m.formInputs)
		if err != nil {
			m.formError = err
			return nil
		}
		adding := m.currentState == stateAddForm
		index := m.editIndex
		m.closeForm()
		if adding {
			return m.mutate(addEntryCmd(m.store, entry))
		}
		return m.mutate(updateEntryCmd(m.store, index, entry))
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocusIndex], cmd = m.formInputs[m.formFocusIndex].Update(msg)
	return cmd
}

func (m *Model) handlePurgePasswordKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc):
		m.currentState = stateEntryList
		m.status = statusCanceled
		return nil
	case key.Matches(msg, m.keymap.Enter):
		candidate := m.purgeInput.Value()
		m.purgeInput.Reset()
		if !m.verifier.Verify(candidate) {
			m.currentState = stateEntryList
			m.lastError = errSecretMismatch
			return nil
		}
		m.currentState = statePurgeConfirm
		return nil
	}

	var cmd tea.Cmd
	m.purgeInput, cmd = m.purgeInput.Update(msg)
	return cmd
}

func (m *Model) handlePurgeConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Yes):
		m.currentState = stateEntryList
		return m.mutate(purgeEntriesCmd(m.store))
	case key.Matches(msg, m.keymap.No):
		m.currentState = stateEntryList
		m.status = statusCanceled
	}
	return nil
}

// --- Helpers ---

// mutate records that cmd writes the data file. Each write loads the file
// first, so a second one started before the first reports back could lose it.
func (m *Model) mutate(cmd tea.Cmd) tea.Cmd {
	m.saving = true
	return cmd
}

func (m *Model) hasSelection() bool {
	return m.cursor >= 0 && m.cursor < len(m.entries)
}

func (m *Model) openForm(s state, index int) {
	if index >= 0 {
		e := m.entries[index]
		m.formInputs = createEntryForm(&e)
	} else {
		m.formInputs = createEntryForm(nil)
	}
	m.editIndex = index
	m.formFocusIndex = fieldWebsite
	m.formError = nil
	m.currentState = s
}

func (m *Model) closeForm() {
	m.formInputs = nil
	m.formError = nil
	m.editIndex = -1
	m.currentState = stateEntryList
}

func (m *Model) focusField(i int) {
	for j := range m.formInputs {
		m.formInputs[j].Blur()
	}
	m.formFocusIndex = i
	m.formInputs[i].Focus()
	m.formError = nil
}
