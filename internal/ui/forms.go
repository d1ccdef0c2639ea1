// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"
	"strings"

	"password-manager/internal/vault"

	"github.com/charmbracelet/bubbles/textinput"
)

var errFieldsRequired = errors.New("website, username/email and password are all required")

// --- Form Creation ---

// createEntryForm builds the add form, or the edit form when existing is set.
func createEntryForm(existing *vault.Entry) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	var t textinput.Model

	t = textinput.New()
	t.Placeholder = "Website (e.g., github.com)"
	t.Focus() // Initial focus
	t.CharLimit = 200
	t.Width = 40
	inputs[fieldWebsite] = t

	t = textinput.New()
	t.Placeholder = "Username or email"
	t.CharLimit = 200
	t.Width = 40
	inputs[fieldIdentity] = t

	t = textinput.New()
	t.Placeholder = "Password"
	t.EchoMode = textinput.EchoPassword
	t.EchoCharacter = '*'
	t.CharLimit = 200
	t.Width = 40
	inputs[fieldPassword] = t

	if existing != nil {
		inputs[fieldWebsite].SetValue(existing.Website)
		inputs[fieldIdentity].SetValue(existing.Identity)
		inputs[fieldPassword].SetValue(existing.Password)
	}
	return inputs
}

func createPurgeInput() textinput.Model {
	t := textinput.New()
	t.Placeholder = "Master password"
	t.EchoMode = textinput.EchoPassword
	t.EchoCharacter = '*'
	t.CharLimit = 200
	t.Width = 40
	t.Focus()
	return t
}

// --- Form Processing ---

// entryFromForm builds an entry from the form. The identity kind follows the
// same "@" rule as the prompt.
func entryFromForm(inputs []textinput.Model) (vault.Entry, error) {
	website := strings.TrimSpace(inputs[fieldWebsite].Value())
	identity := strings.TrimSpace(inputs[fieldIdentity].Value())
	password := inputs[fieldPassword].Value()

	if website == "" || identity == "" || password == "" {
		return vault.Entry{}, errFieldsRequired
	}
	return vault.NewEntry(website, identity, password), nil
}
