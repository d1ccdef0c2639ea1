// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package shell

import (
	"fmt"
	"io"

	"password-manager/internal/vault"
)

// pendingAction is a destructive operation waiting for confirmation.
type pendingAction interface {
	name() string
	ask(w io.Writer)
	apply(store *vault.Store) (string, error)
}

type removeAction struct {
	index int
	entry vault.Entry
}

func (a removeAction) name() string { return "remove" }

func (a removeAction) ask(w io.Writer) {
	askAbout(w, "remove the password for", a.entry)
}

func (a removeAction) apply(store *vault.Store) (string, error) {
	if _, err := store.RemoveAt(a.index); err != nil {
		return "", err
	}
	return "Password removed successfully!", nil
}

type updateAction struct {
	index int
	old   vault.Entry
	entry vault.Entry
}

func (a updateAction) name() string { return "update" }

func (a updateAction) ask(w io.Writer) {
	askAbout(w, "update the password for", a.old)
}

func (a updateAction) apply(store *vault.Store) (string, error) {
	if err := store.Replace(a.index, a.entry); err != nil {
		return "", err
	}
	return "Password updated successfully!", nil
}

type purgeAction struct{}

func (purgeAction) name() string { return "purge" }

func (purgeAction) ask(w io.Writer) {
	warningColor.Fprintf(w, "%s Are you sure you want to purge all saved passwords? This action cannot be undone.", symbolWarning)
	fmt.Fprint(w, " (yes/no): ")
}

func (purgeAction) apply(store *vault.Store) (string, error) {
	if err := store.Clear(); err != nil {
		return "", err
	}
	return "All saved passwords purged successfully!", nil
}

// askAbout poses the question for an entry, showing its password masked.
func askAbout(w io.Writer, what string, e vault.Entry) {
	warningColor.Fprintf(w, "%s Are you sure you want to %s ", symbolWarning, what)
	identifierColor.Fprintf(w, " %s/%s:%s", e.Website, e.Identity, e.MaskedPassword())
	warningColor.Fprint(w, "? ")
	fmt.Fprint(w, " (yes/no): ")
}
