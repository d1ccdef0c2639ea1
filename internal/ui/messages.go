// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's messages.go file defines the message types used in the Bubble Tea
// Model-View-Update architecture.

package ui

import "password-manager/internal/vault"

// entriesLoadedMsg carries a fresh read of the data file. A malformed file
// still yields an empty entry list alongside err.
type entriesLoadedMsg struct {
	entries []vault.Entry
	err     error
}

// entrySavedMsg reports the outcome of a store mutation.
type entrySavedMsg struct {
	status string
	err    error
}

// dataFileChangedMsg is sent when the watcher sees the data file change.
type dataFileChangedMsg struct{}
