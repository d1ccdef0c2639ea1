// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

//go:build !darwin

package keychain

// NewSystem reports ErrUnsupported outside macOS. A memory store would
// silently lose the master password on exit.
func NewSystem() (Store, error) {
	return nil, ErrUnsupported
}
