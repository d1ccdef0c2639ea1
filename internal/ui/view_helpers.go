// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"password-manager/internal/vault"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// --- View Helpers ---

func (m *Model) renderLoadingView() (string, string) {
	body := statusStyle.Render("Loading entries...")
	footer := "\n" + m.helpLine(m.keymap.ForceQuit)
	return body, footer
}

func (m *Model) renderEntryListView() (string, string) {
	b := strings.Builder{}
	if len(m.entries) == 0 {
		b.WriteString(warningStyle.Render("No passwords saved."))
	} else {
		b.WriteString("Saved Passwords:\n")
		for i, e := range m.entries {
			cursor := "  "
			if m.cursor == i {
				cursor = cursorStyle.Render("> ")
			}
			fmt.Fprintf(&b, "%s%d. Website: %s, %s: %s, Password: %s\n",
				cursor, i+1,
				identifierColor.Render(e.Website),
				e.Kind.Label(),
				identifierColor.Render(e.Identity),
				identifierColor.Render(m.displayPassword(e)))
		}
	}

	footer := strings.Builder{}
	footer.WriteString("\n")
	m.renderMessages(&footer)
	help := m.helpLine(m.keymap.Up, m.keymap.Down, m.keymap.Add, m.keymap.Edit,
		m.keymap.Remove, m.keymap.Purge, m.keymap.Reveal, m.keymap.Reload, m.keymap.Quit)
	footer.WriteString(lipgloss.NewStyle().Width(m.width).Render(help))
	return b.String(), footer.String()
}

func (m *Model) renderRemoveConfirmView() (string, string) {
	b := strings.Builder{}
	if m.hasSelection() {
		e := m.entries[m.cursor]
		b.WriteString(warningStyle.Render("Are you sure you want to remove the password for "))
		b.WriteString(identifierColor.Render(fmt.Sprintf("%s/%s:%s", e.Website, e.Identity, e.MaskedPassword())))
		b.WriteString(warningStyle.Render("?"))
	}
	footer := "\n" + m.helpLine(m.keymap.Yes, m.keymap.No)
	return b.String(), footer
}

func (m *Model) renderEntryFormView() (string, string) {
	b := strings.Builder{}
	if m.currentState == stateAddForm {
		b.WriteString(titleStyle.Render("Add a new account entry") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Update entry %d", m.editIndex+1)) + "\n\n")
	}

	labels := [fieldCount]string{"Website", "Username/Email", "Password"}
	for i, input := range m.formInputs {
		label := labels[i]
		if i == fieldIdentity {
			label = vault.KindOf(input.Value()).Label()
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render(label), input.View())
	}

	if m.formError != nil {
		b.WriteString(errorStyle.Render("Error: "+m.formError.Error()) + "\n")
	}

	footer := "\n" + m.helpLine(m.keymap.Tab, m.keymap.ShiftTab, m.keymap.Enter, m.keymap.Esc)
	return b.String(), footer
}

func (m *Model) renderPurgePasswordView() (string, string) {
	b := strings.Builder{}
	b.WriteString("Enter the master password to purge all saved passwords:\n\n")
	b.WriteString(m.purgeInput.View())
	footer := "\n" + m.helpLine(m.keymap.Enter, m.keymap.Esc)
	return b.String(), footer
}

func (m *Model) renderPurgeConfirmView() (string, string) {
	body := warningStyle.Render("Are you sure you want to purge all saved passwords? This action cannot be undone.")
	footer := "\n" + m.helpLine(m.keymap.Yes, m.keymap.No)
	return body, footer
}

func (m *Model) renderMessages(b *strings.Builder) {
	if m.status != "" {
		b.WriteString(successStyle.Render(m.status) + "\n")
	}
	if m.lastError != nil {
		b.WriteString(errorStyle.Render("Error: "+m.lastError.Error()) + "\n")
	}
}

func (m *Model) displayPassword(e vault.Entry) string {
	if m.reveal {
		return e.Password
	}
	return e.MaskedPassword()
}

// helpLine renders "key: desc | key: desc" for the footer.
func (m *Model) helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerStyle.Render(": "+h.Desc))
	}
	return strings.Join(parts, footerSeparatorStyle.Render(" | "))
}
