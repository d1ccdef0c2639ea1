// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

//go:build darwin

package keychain

import (
	"errors"
	"fmt"

	gokeychain "github.com/keybase/go-keychain"
)

const (
	service           = "password-manager"
	masterHashAccount = "master-password-hash"
	masterHashLabel   = "Password Manager master password"
)

// System stores the hash in the login keychain.
type System struct{}

// NewSystem returns the macOS keychain store.
func NewSystem() (Store, error) {
	return System{}, nil
}

// masterHashQuery matches the single master hash item.
func masterHashQuery() gokeychain.Item {
	q := gokeychain.NewItem()
	q.SetSecClass(gokeychain.SecClassGenericPassword)
	q.SetService(service)
	q.SetAccount(masterHashAccount)
	return q
}

func (System) MasterHash() (string, error) {
	q := masterHashQuery()
	q.SetMatchLimit(gokeychain.MatchLimitOne)
	q.SetReturnData(true)

	results, err := gokeychain.QueryItem(q)
	if errors.Is(err, gokeychain.ErrorItemNotFound) || (err == nil && len(results) == 0) {
		return "", ErrNoMasterHash
	}
	if err != nil {
		return "", fmt.Errorf("reading master hash from keychain: %w", err)
	}
	hash := string(results[0].Data)
	if err := checkHash(hash); err != nil {
		return "", fmt.Errorf("keychain item %s/%s: %w", service, masterHashAccount, err)
	}
	return hash, nil
}

func (System) SetMasterHash(hash string) error {
	if err := checkHash(hash); err != nil {
		return err
	}

	item := masterHashQuery()
	item.SetLabel(masterHashLabel)
	item.SetData([]byte(hash))
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)

	err := gokeychain.AddItem(item)
	if errors.Is(err, gokeychain.ErrorDuplicateItem) {
		update := gokeychain.NewItem()
		update.SetData([]byte(hash))
		err = gokeychain.UpdateItem(masterHashQuery(), update)
	}
	if err != nil {
		return fmt.Errorf("writing master hash to keychain: %w", err)
	}
	return nil
}

func (System) DeleteMasterHash() error {
	err := gokeychain.DeleteItem(masterHashQuery())
	if err != nil && !errors.Is(err, gokeychain.ErrorItemNotFound) {
		return fmt.Errorf("removing master hash from keychain: %w", err)
	}
	return nil
}
