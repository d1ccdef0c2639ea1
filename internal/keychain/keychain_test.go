// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package keychain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestMemory_EmptyHasNoMasterHash(t *testing.T) {
	_, err := NewMemory().MasterHash()
	assert.ErrorIs(t, err, ErrNoMasterHash)
}

func TestMemory_SetReplacesHash(t *testing.T) {
	m := NewMemory()
	first, second := testHash(t, "first"), testHash(t, "second")

	require.NoError(t, m.SetMasterHash(first))
	require.NoError(t, m.SetMasterHash(second))

	got, err := m.MasterHash()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestMemory_RejectsPlaintext(t *testing.T) {
	m := NewMemory()

	err := m.SetMasterHash("hunter2")

	assert.ErrorIs(t, err, ErrInvalidHash)
	_, err = m.MasterHash()
	assert.ErrorIs(t, err, ErrNoMasterHash)
}

func TestMemory_DeleteIsIdempotent(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SetMasterHash(testHash(t, "pw")))

	require.NoError(t, m.DeleteMasterHash())
	require.NoError(t, m.DeleteMasterHash())

	_, err := m.MasterHash()
	assert.ErrorIs(t, err, ErrNoMasterHash)
}
