// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package keychain keeps the master password hash outside the config file.
//
// Only bcrypt hashes are accepted, so the plaintext master password never
// reaches the keychain. On macOS the hash is a generic password item of the
// "password-manager" service, readable while the device is unlocked and
// excluded from iCloud sync.
package keychain

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNoMasterHash is returned when no master password hash has been stored.
	ErrNoMasterHash = errors.New("no master password hash in keychain")

	// ErrInvalidHash is returned for values that are not bcrypt hashes.
	ErrInvalidHash = errors.New("not a bcrypt hash")

	// ErrUnsupported is returned on platforms without a system keychain.
	ErrUnsupported = errors.New("system keychain is not supported on this platform")
)

// Store holds at most one master password hash.
type Store interface {
	// MasterHash returns the stored hash or ErrNoMasterHash.
	MasterHash() (string, error)
	// SetMasterHash replaces the stored hash.
	SetMasterHash(hash string) error
	// DeleteMasterHash removes the hash. Removing a missing hash succeeds.
	DeleteMasterHash() error
}

func checkHash(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return nil
}
