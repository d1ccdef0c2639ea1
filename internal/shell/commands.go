// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package shell

import (
	"fmt"
	"strconv"
	"strings"

	"password-manager/internal/logger"
	"password-manager/internal/vault"
)

const (
	categoryPasswords = "Managing Passwords:"
	categoryOther     = "Other Commands:"
)

type command struct {
	name        string
	aliases     []string
	args        string
	description string
	category    string
	run         func(s *Shell, args []string) error
}

// synopsis renders the command as shown in help, e.g. "remove[rm] <index>".
func (c command) synopsis() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, a := range c.aliases {
		b.WriteString("[" + a + "]")
	}
	if c.args != "" {
		b.WriteString(" " + c.args)
	}
	return b.String()
}

// CommandInfo describes a shell command for other front ends.
type CommandInfo struct {
	Name        string
	Aliases     []string
	Args        string
	Description string
}

// Usage returns the command name followed by its arguments.
func (c CommandInfo) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

var commands []command

func init() {
	commands = []command{
		{name: "add", aliases: []string{"new"}, args: "<website> <username/email> <password>", description: "Add a new account entry.", category: categoryPasswords, run: (*Shell).add},
		{name: "list", aliases: []string{"ls"}, description: "List all saved accounts.", category: categoryPasswords, run: (*Shell).list},
		{name: "remove", aliases: []string{"rm"}, args: "<index>", description: "Remove an account entry by index.", category: categoryPasswords, run: (*Shell).remove},
		{name: "update", aliases: []string{"edit"}, args: "<index> <newWebsite> <newUsername/email> <newPassword>", description: "Update a password entry.", category: categoryPasswords, run: (*Shell).update},
		{name: "purge", aliases: []string{"prune"}, args: "<masterPassword>", description: "Delete all saved passwords with master password verification.", category: categoryPasswords, run: (*Shell).purge},
		{name: "help", description: "Show this help menu.", category: categoryOther, run: func(s *Shell, _ []string) error { s.help(); return nil }},
		{name: "clear", aliases: []string{"cls"}, description: "Clear the screen.", category: categoryOther, run: func(s *Shell, _ []string) error { s.banner(); return nil }},
		{name: "credits", description: "Display the authors links.", category: categoryOther, run: func(s *Shell, _ []string) error { s.credits(); return nil }},
		{name: "exit", description: "Exit the password manager.", category: categoryOther, run: (*Shell).exit},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// Commands returns the command catalogue in help order.
func Commands() []CommandInfo {
	infos := make([]CommandInfo, 0, len(commands))
	for _, c := range commands {
		infos = append(infos, c.info())
	}
	return infos
}

// Describe returns the catalogue entry for name or one of its aliases.
func Describe(name string) (CommandInfo, bool) {
	c, ok := lookup(strings.ToLower(name))
	if !ok {
		return CommandInfo{}, false
	}
	return c.info(), true
}

func (c command) info() CommandInfo {
	return CommandInfo{
		Name:        c.name,
		Aliases:     append([]string(nil), c.aliases...),
		Args:        c.args,
		Description: c.description,
	}
}

// parseIndex converts a 1-based index argument to a 0-based position.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", vault.ErrInvalidIndex, arg)
	}
	return n - 1, nil
}

func (s *Shell) add(args []string) error {
	if len(args) < 3 {
		return s.missing("Missing arguments.", "add <website> <username/email> <password>")
	}
	entry := vault.NewEntry(args[0], args[1], args[2])
	if err := s.store.Append(entry); err != nil {
		s.reportError(err)
		return err
	}
	successColor.Fprintf(s.out, "%s Account added successfully!\n", symbolSuccess)
	logger.Info("Entry added.", "identity", entry.Kind.Key())
	return nil
}

func (s *Shell) list(_ []string) error {
	entries, err := s.store.Load()
	if err != nil {
		s.reportLoadError(err)
	}
	if len(entries) == 0 {
		warningColor.Fprintf(s.out, "%s No passwords saved.\n", symbolWarning)
		return err
	}
	headingColor.Fprintln(s.out, "Saved Passwords:")
	for i, e := range entries {
		fmt.Fprintf(s.out, "%d. Website: %s, %s: %s, Password: %s\n",
			i+1,
			identifierColor.Sprint(e.Website),
			e.Kind.Label(),
			identifierColor.Sprint(e.Identity),
			identifierColor.Sprint(e.Password))
	}
	return nil
}

func (s *Shell) remove(args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	index, err := parseIndex(arg)
	if err != nil {
		s.reportError(err)
		return err
	}
	entry, err := s.store.Get(index)
	if err != nil {
		s.reportError(err)
		return err
	}
	s.confirm(removeAction{index: index, entry: entry})
	return nil
}

func (s *Shell) update(args []string) error {
	if len(args) < 4 {
		return s.missing("Missing arguments.", "update <index> <newWebsite> <newUsername/email> <newPassword>")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		s.reportError(err)
		return err
	}
	old, err := s.store.Get(index)
	if err != nil {
		s.reportError(err)
		return err
	}
	s.confirm(updateAction{index: index, old: old, entry: vault.NewEntry(args[1], args[2], args[3])})
	return nil
}

func (s *Shell) purge(args []string) error {
	if len(args) < 1 {
		return s.missing("Missing master password.", "purge <masterPassword>")
	}
	if !s.verifier.Configured() {
		errorColor.Fprintf(s.out, "%s No master password configured. Purge operation aborted.\n", symbolError)
		dimColor.Fprintln(s.out, "Set one with 'pm config set-master'.")
		logger.Warn("Purge attempted without a master password.")
		return ErrSecretNotConfigured
	}
	if !s.verifier.Verify(args[0]) {
		errorColor.Fprintf(s.out, "%s Master password incorrect. Purge operation aborted.\n", symbolError)
		logger.Warn("Purge rejected, master password incorrect.")
		return ErrSecretMismatch
	}
	s.confirm(purgeAction{})
	return nil
}

func (s *Shell) exit(_ []string) error {
	statusColor.Fprintln(s.out, "Exiting...")
	s.done = true
	return nil
}
