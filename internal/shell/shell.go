// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package shell implements the line-oriented password manager prompt.
//
// A Shell is either idle, waiting for a command, or waiting for the yes/no
// answer that confirms a destructive action. The pending action is kept
// until that answer arrives and is discarded on anything but yes.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"password-manager/internal/logger"
	"password-manager/internal/secret"
	"password-manager/internal/vault"
)

var (
	// ErrMissingArguments is returned when a command lacks required arguments.
	ErrMissingArguments = errors.New("missing arguments")

	// ErrSecretMismatch is returned when the purge password is wrong.
	ErrSecretMismatch = errors.New("master password incorrect")

	// ErrSecretNotConfigured is returned by purge when no master password exists.
	ErrSecretNotConfigured = errors.New("no master password configured")

	// ErrUnknownCommand is returned for empty or unrecognised commands.
	ErrUnknownCommand = errors.New("invalid command")

	// ErrNothingPending is returned by Answer when no confirmation was asked.
	ErrNothingPending = errors.New("no operation awaiting confirmation")
)

type state int

const (
	stateIdle state = iota
	stateAwaitingConfirmation
)

// Shell dispatches commands against a store.
type Shell struct {
	store    *vault.Store
	verifier secret.Verifier
	out      io.Writer

	state   state
	pending pendingAction
	done    bool

	clearScreen func(io.Writer)
}

// New returns an idle shell writing to out. Load failures hit by the store
// during a command are reported on out.
func New(store *vault.Store, verifier secret.Verifier, out io.Writer) *Shell {
	if verifier == nil {
		verifier = secret.Unset{}
	}
	s := &Shell{
		store:    store,
		verifier: verifier,
		out:      out,
		clearScreen: func(w io.Writer) {
			termenv.NewOutput(w).ClearScreen()
		},
	}
	store.LoadErrorHandler = s.reportLoadError
	return s
}

// Tokenize splits a line on single spaces after trimming it. Consecutive
// spaces produce empty arguments.
func Tokenize(line string) []string {
	return strings.Split(strings.TrimSpace(line), " ")
}

// Pending reports whether a yes/no answer is expected.
func (s *Shell) Pending() bool {
	return s.state == stateAwaitingConfirmation
}

// Done reports whether exit was requested.
func (s *Shell) Done() bool {
	return s.done
}

// Run prints the banner and processes lines from in until exit or end of
// input.
func (s *Shell) Run(in io.Reader) error {
	s.banner()
	s.initStore()
	s.showMenu()

	// Lines may exceed bufio.Scanner's 64 KiB token limit.
	reader := bufio.NewReader(in)
	for !s.done {
		line, err := reader.ReadString('\n')
		if line != "" {
			_ = s.Handle(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
	if !s.done {
		// End of input behaves like exit.
		fmt.Fprintln(s.out)
		logger.Info("Input closed, leaving shell.")
		s.done = true
	}
	return nil
}

// Handle processes one input line: an answer when a confirmation is pending,
// otherwise a command. The menu is redisplayed once the shell is idle again.
func (s *Shell) Handle(line string) error {
	var err error
	if s.Pending() {
		err = s.Answer(line)
	} else {
		err = s.Dispatch(Tokenize(line))
	}
	if !s.done && !s.Pending() {
		s.showMenu()
	}
	return err
}

// Dispatch runs the command args[0] with the remaining positional arguments.
// Destructive commands leave the shell pending a confirmation.
func (s *Shell) Dispatch(args []string) error {
	if s.Pending() {
		return fmt.Errorf("%w: answer the pending confirmation first", ErrUnknownCommand)
	}

	name := ""
	if len(args) > 0 {
		name = strings.ToLower(args[0])
		args = args[1:]
	}

	cmd, ok := lookup(name)
	if !ok {
		errorColor.Fprintf(s.out, "%s Invalid command. Type 'help' for assistance.\n", symbolError)
		logger.Debug("Unknown command.", "command", name)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	logger.Debug("Dispatching command.", "command", cmd.name, "args", len(args))
	return cmd.run(s, args)
}

// Answer resolves the pending confirmation. "yes" or "y" in any case applies
// the action; anything else cancels it.
func (s *Shell) Answer(line string) error {
	if !s.Pending() {
		return ErrNothingPending
	}
	action := s.pending
	s.pending = nil
	s.state = stateIdle

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "yes" && answer != "y" {
		warningColor.Fprintf(s.out, "%s Operation canceled.\n", symbolWarning)
		logger.Info("Operation canceled.", "action", action.name())
		return nil
	}

	msg, err := action.apply(s.store)
	if err != nil {
		s.reportError(err)
		logger.Error("Operation failed.", "action", action.name(), "error", err)
		return err
	}
	successColor.Fprintf(s.out, "%s %s\n", symbolSuccess, msg)
	logger.Info("Operation applied.", "action", action.name())
	return nil
}

// confirm parks action and asks the yes/no question.
func (s *Shell) confirm(action pendingAction) {
	s.pending = action
	s.state = stateAwaitingConfirmation
	action.ask(s.out)
}

func (s *Shell) initStore() {
	created, err := s.store.Init()
	if created {
		errorColor.Fprintf(s.out, "%s Data file does not exist. Creating new file...\n", symbolError)
	}
	if err != nil {
		s.reportError(err)
	}
}

func (s *Shell) reportLoadError(err error) {
	errorColor.Fprintf(s.out, "%s Error loading data from file:\n", symbolError)
	fmt.Fprintln(s.out, err)
}

// reportError prints err in the form matching its kind.
func (s *Shell) reportError(err error) {
	switch {
	case errors.Is(err, vault.ErrInvalidIndex):
		errorColor.Fprintf(s.out, "%s Invalid index.\n", symbolError)
	case errors.Is(err, vault.ErrMalformed):
		s.reportLoadError(err)
	case errors.Is(err, vault.ErrSave):
		errorColor.Fprintf(s.out, "%s Error saving data to file:\n", symbolError)
		fmt.Fprintln(s.out, err)
	default:
		errorColor.Fprintf(s.out, "%s %v\n", symbolError, err)
	}
}
