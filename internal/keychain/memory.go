// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package keychain

import "sync"

// Memory keeps the hash for the lifetime of the process. Tests use it in
// place of the system keychain.
type Memory struct {
	mu   sync.Mutex
	hash string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) MasterHash() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hash == "" {
		return "", ErrNoMasterHash
	}
	return m.hash, nil
}

func (m *Memory) SetMasterHash(hash string) error {
	if err := checkHash(hash); err != nil {
		return err
	}
	m.mu.Lock()
	m.hash = hash
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeleteMasterHash() error {
	m.mu.Lock()
	m.hash = ""
	m.mu.Unlock()
	return nil
}
