// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry_IdentityKind(t *testing.T) {
	assert.Equal(t, IdentityEmail, NewEntry("w", "a@b.com", "p").Kind)
	assert.Equal(t, IdentityEmail, NewEntry("w", "@", "p").Kind)
	assert.Equal(t, IdentityUsername, NewEntry("w", "alice", "p").Kind)
	assert.Equal(t, IdentityUsername, NewEntry("w", "", "p").Kind)
}

func TestEntry_MarshalUsesSingleIdentityKey(t *testing.T) {
	data, err := json.Marshal(NewEntry("site", "alice", "pw"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"website":"site","username":"alice","password":"pw"}`, string(data))

	data, err = json.Marshal(NewEntry("site", "a@b.c", "pw"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"website":"site","email":"a@b.c","password":"pw"}`, string(data))
}

func TestEntry_UnmarshalBothKeysPrefersEmail(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"website":"w","email":"a@b.c","username":"old","password":"p"}`), &e))
	assert.Equal(t, IdentityEmail, e.Kind)
	assert.Equal(t, "a@b.c", e.Identity)

	require.NoError(t, json.Unmarshal([]byte(`{"website":"w","email":"","username":"bob","password":"p"}`), &e))
	assert.Equal(t, IdentityUsername, e.Kind)
	assert.Equal(t, "bob", e.Identity)
}

func TestEntry_UnmarshalRejectsNonObject(t *testing.T) {
	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &e))
}

func TestMaskedPassword(t *testing.T) {
	assert.Equal(t, "*******", NewEntry("w", "u", "hunter2").MaskedPassword())
	assert.Equal(t, "***", NewEntry("w", "u", "päß").MaskedPassword())
	assert.Equal(t, "", NewEntry("w", "u", "").MaskedPassword())
	assert.Equal(t, "****", NewEntry("w", "u", "a🔑b").MaskedPassword())
}

func TestIdentityKindLabels(t *testing.T) {
	assert.Equal(t, "email", IdentityEmail.Key())
	assert.Equal(t, "Email", IdentityEmail.Label())
	assert.Equal(t, "username", IdentityUsername.Key())
	assert.Equal(t, "Username", IdentityUsername.Label())
}
