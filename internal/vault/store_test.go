// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "passwords.json"))
}

func readFile(t *testing.T, s *Store) string {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	return string(data)
}

func TestInit_CreatesEmptyFile(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Init()

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "[]", readFile(t, s))

	created, err = s.Init()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoad_MissingFileCreatesIt(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, "[]", readFile(t, s))
}

func TestLoad_MalformedReturnsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[{"website":`), 0600))

	entries, err := s.Load()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoad_NullIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`null`), 0600))

	entries, err := s.Load()

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAppend_WritesCompactJSON(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(NewEntry("example.com", "a@b.com", "hunter2")))

	assert.Equal(t, `[{"website":"example.com","email":"a@b.com","password":"hunter2"}]`, readFile(t, s))

	require.NoError(t, s.Append(NewEntry("github.com", "octocat", "pw")))
	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, IdentityUsername, entries[1].Kind)
	assert.Equal(t, "octocat", entries[1].Identity)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := []Entry{
		NewEntry("a.com", "alice", "p1"),
		NewEntry("b.com", "bob@b.com", "p\"2\\"),
		NewEntry("c.com", "", ""),
	}
	require.NoError(t, s.Save(want))

	first, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(first))
	second, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestReplace(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]Entry{NewEntry("a.com", "alice", "p1"), NewEntry("b.com", "bob", "p2")}))

	require.NoError(t, s.Replace(1, NewEntry("new.com", "new@x.io", "np")))

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, NewEntry("a.com", "alice", "p1"), entries[0])
	assert.Equal(t, NewEntry("new.com", "new@x.io", "np"), entries[1])
}

func TestReplace_OutOfRangeDoesNotWrite(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]Entry{NewEntry("a.com", "alice", "p1")}))
	before := readFile(t, s)

	for _, idx := range []int{-1, 1, 7} {
		err := s.Replace(idx, NewEntry("x", "y", "z"))
		assert.ErrorIs(t, err, ErrInvalidIndex)
	}
	assert.Equal(t, before, readFile(t, s))
}

func TestRemoveAt(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]Entry{
		NewEntry("a.com", "alice", "p1"),
		NewEntry("b.com", "bob", "p2"),
		NewEntry("c.com", "carol", "p3"),
	}))

	removed, err := s.RemoveAt(1)

	require.NoError(t, err)
	assert.Equal(t, "b.com", removed.Website)
	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.com", entries[0].Website)
	assert.Equal(t, "c.com", entries[1].Website)

	_, err = s.RemoveAt(2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]Entry{NewEntry("a.com", "alice", "p1")}))

	require.NoError(t, s.Clear())

	assert.Equal(t, "[]", readFile(t, s))
	assert.Equal(t, 0, s.Len())
}

func TestGet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]Entry{NewEntry("a.com", "alice", "p1")}))

	e, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "alice", e.Identity)

	_, err = s.Get(1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestMutation_PicksUpExternalEdits(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(NewEntry("a.com", "alice", "p1")))

	// Another program rewrites the file between operations.
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[{"website":"x.com","username":"xavier","password":"px"}]`), 0600))
	require.NoError(t, s.Append(NewEntry("b.com", "bob", "p2")))

	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "x.com", entries[0].Website)
	assert.Equal(t, "b.com", entries[1].Website)
}

func TestMutation_MalformedFileDegradesToEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`not json`), 0600))
	var reported []error
	s.LoadErrorHandler = func(err error) { reported = append(reported, err) }

	require.NoError(t, s.Append(NewEntry("a.com", "alice", "p1")))

	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], ErrMalformed)
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "deeper", "passwords.json"))

	require.NoError(t, s.Save(nil))

	assert.Equal(t, "[]", readFile(t, s))
}

func TestSave_UnwritablePathWrapsErrSave(t *testing.T) {
	dir := t.TempDir()
	// The data path is an existing directory, so the write must fail.
	s := NewStore(dir)

	err := s.Save([]Entry{NewEntry("a.com", "alice", "p1")})

	assert.ErrorIs(t, err, ErrSave)
}

func TestSave_DoesNotEscapeHTMLCharacters(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(NewEntry("a&b.com", "<me>", "p&<>")))

	assert.Equal(t, `[{"website":"a&b.com","username":"<me>","password":"p&<>"}]`, readFile(t, s))
}
