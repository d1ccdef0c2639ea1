// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package secret resolves the master password that guards purging the data
// file.
package secret

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"password-manager/internal/config"
	"password-manager/internal/keychain"
)

// Verifier checks a candidate master password.
type Verifier interface {
	Verify(candidate string) bool
	// Configured reports whether a master password exists at all.
	Configured() bool
}

// Plain compares against a plaintext master password from the config file.
type Plain string

func (p Plain) Verify(candidate string) bool { return candidate == string(p) }
func (p Plain) Configured() bool             { return true }

// maxPasswordBytes is the longest input bcrypt uses. Longer candidates would
// be compared on their prefix alone.
const maxPasswordBytes = 72

// BcryptHash compares against a bcrypt hash.
type BcryptHash string

func (h BcryptHash) Verify(candidate string) bool {
	if len(candidate) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(candidate)) == nil
}

func (h BcryptHash) Configured() bool { return true }

// Unset rejects every candidate.
type Unset struct{}

func (Unset) Verify(string) bool { return false }
func (Unset) Configured() bool   { return false }

// Hash returns the bcrypt hash stored for a new master password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("master password must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("master password must be at most %d bytes", maxPasswordBytes)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing master password: %w", err)
	}
	return string(h), nil
}

// Resolve picks the verifier for cfg. With master_source "keychain" the hash
// is read from kc, which may be nil on platforms without a keychain. Otherwise
// a configured hash wins over a plaintext password.
func Resolve(cfg config.Config, kc keychain.Store) (Verifier, error) {
	if cfg.MasterSource == config.MasterSourceKeychain {
		if kc == nil {
			return Unset{}, keychain.ErrUnsupported
		}
		h, err := kc.MasterHash()
		if err != nil {
			if errors.Is(err, keychain.ErrNoMasterHash) {
				return Unset{}, nil
			}
			return Unset{}, fmt.Errorf("reading master password from keychain: %w", err)
		}
		return BcryptHash(h), nil
	}

	switch {
	case cfg.MasterPasswordHash != "":
		return BcryptHash(cfg.MasterPasswordHash), nil
	case cfg.MasterPassword != "":
		return Plain(cfg.MasterPassword), nil
	default:
		return Unset{}, nil
	}
}
