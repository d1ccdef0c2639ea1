// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different views or modes of the TUI.
type state int

const (
	stateLoading state = iota
	stateEntryList
	stateRemoveConfirm
	stateAddForm
	stateEditForm
	statePurgePassword
	statePurgeConfirm
)

// Entry form field positions.
const (
	fieldWebsite = iota
	fieldIdentity
	fieldPassword
	fieldCount
)
