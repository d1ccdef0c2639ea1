// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package shell

import (
	"fmt"

	"github.com/fatih/color"
)

const (
	symbolSuccess = "✔"
	symbolError   = "✘"
	symbolWarning = "▶️"
)

var (
	successColor    = color.New(color.FgGreen)
	errorColor      = color.New(color.FgRed)
	warningColor    = color.New(color.FgYellow)
	statusColor     = color.New(color.FgCyan)
	identifierColor = color.New(color.FgCyan)
	headingColor    = color.New(color.FgWhite, color.Bold)
	titleColor      = color.New(color.FgCyan, color.Bold)
	linkColor       = color.New(color.FgCyan, color.Italic)
	usageColor      = color.New(color.FgHiBlack)
	dimColor        = color.New(color.Faint)
)

func (s *Shell) banner() {
	s.clearScreen(s.out)
	titleColor.Fprintln(s.out, "Welcome to the Password Manager!")
	dimColor.Fprintln(s.out, "Type 'help' to see available commands.")
}

func (s *Shell) showMenu() {
	statusColor.Fprintln(s.out, "\nWhat would you like to do?")
	fmt.Fprint(s.out, "> ")
}

func (s *Shell) missing(what, usage string) error {
	errorColor.Fprintf(s.out, "%s %s", symbolError, what)
	fmt.Fprintf(s.out, "  %s\n", usageColor.Sprint(usage))
	return fmt.Errorf("%w: %s", ErrMissingArguments, usage)
}

func (s *Shell) help() {
	for _, cat := range []string{categoryPasswords, categoryOther} {
		headingColor.Fprintln(s.out, cat)
		for _, c := range commands {
			if c.category != cat {
				continue
			}
			fmt.Fprintf(s.out, "%s - %s\n", identifierColor.Sprint(c.synopsis()), c.description)
		}
	}
}

func (s *Shell) credits() {
	titleColor.Fprint(s.out, "This was coded by meta.")
	linkColor.Fprintln(s.out, "\nhttps://github.com/2cbs\nhttps://metas.codes")
}
