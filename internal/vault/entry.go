// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package vault persists saved accounts as a single JSON array on disk.
package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// IdentityKind tells which JSON key holds an entry's identity.
type IdentityKind int

const (
	IdentityUsername IdentityKind = iota
	IdentityEmail
)

// Key returns the JSON key used for the kind.
func (k IdentityKind) Key() string {
	if k == IdentityEmail {
		return "email"
	}
	return "username"
}

// Label returns the human-readable name shown in listings.
func (k IdentityKind) Label() string {
	if k == IdentityEmail {
		return "Email"
	}
	return "Username"
}

// Entry is one saved account.
type Entry struct {
	Website  string
	Identity string
	Kind     IdentityKind
	Password string
}

// NewEntry builds an entry, storing identity as an email when it contains "@".
func NewEntry(website, identity, password string) Entry {
	return Entry{
		Website:  website,
		Identity: identity,
		Kind:     KindOf(identity),
		Password: password,
	}
}

// KindOf reports the identity kind for a raw identity string.
func KindOf(identity string) IdentityKind {
	if strings.Contains(identity, "@") {
		return IdentityEmail
	}
	return IdentityUsername
}

// MaskedPassword returns one asterisk per UTF-16 code unit of the password,
// so characters outside the Basic Multilingual Plane show as two.
func (e Entry) MaskedPassword() string {
	return strings.Repeat("*", len(utf16.Encode([]rune(e.Password))))
}

// MarshalJSON writes the entry with exactly one of "username" or "email".
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"website":`)
	if err := writeJSONString(&buf, e.Website); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, `,%q:`, e.Kind.Key())
	if err := writeJSONString(&buf, e.Identity); err != nil {
		return nil, err
	}
	buf.WriteString(`,"password":`)
	if err := writeJSONString(&buf, e.Password); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either identity key. Objects carrying both keys
// resolve to the non-empty email.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Website  *string `json:"website"`
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Entry{Website: deref(raw.Website), Password: deref(raw.Password)}
	if email := deref(raw.Email); email != "" {
		e.Identity = email
		e.Kind = IdentityEmail
	} else {
		e.Identity = deref(raw.Username)
		e.Kind = IdentityUsername
	}
	return nil
}

// writeJSONString appends s as a JSON string, leaving <, > and & unescaped.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
