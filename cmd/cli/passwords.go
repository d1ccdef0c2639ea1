// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"password-manager/internal/shell"
	"password-manager/internal/vault"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// List output formats.
const (
	formatSimple = "simple"
	formatTable  = "table"
	formatJSON   = "json"
)

var (
	assumeYes  bool
	listFormat string
)

// shellCommand builds a one-shot command from the shell's catalogue entry.
func shellCommand(name string) *cobra.Command {
	info, ok := shell.Describe(name)
	if !ok {
		panic(fmt.Sprintf("unknown shell command %q", name))
	}
	return &cobra.Command{
		Use:     info.Usage(),
		Aliases: info.Aliases,
		Short:   strings.TrimSuffix(info.Description, "."),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, bufio.NewReader(cmd.InOrStdin()), append([]string{info.Name}, args...))
		},
	}
}

var addCmd = shellCommand("add")

var removeCmd = shellCommand("remove")

var updateCmd = shellCommand("update")

var purgeCmd = func() *cobra.Command {
	c := shellCommand("purge")
	c.Use = "purge [masterPassword]"
	c.Long = `Deletes every saved entry after checking the master password.
When the password is omitted it is read from the terminal without echo.`
	c.Args = cobra.MaximumNArgs(1)
	c.RunE = func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		if len(args) == 0 {
			pw, err := readSecret(cmd, in, "Master password: ")
			if err != nil {
				return err
			}
			args = []string{pw}
		}
		return runOneShot(cmd, in, append([]string{"purge"}, args...))
	}
	return c
}()

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all saved accounts",
	Example: "  pm list\n  pm ls --format table\n  pm list --format json > backup.json",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch listFormat {
		case formatSimple:
			return runOneShot(cmd, nil, []string{"list"})
		case formatTable, formatJSON:
			entries, err := store.Load()
			if err != nil {
				return err
			}
			if listFormat == formatJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			writeTable(cmd.OutOrStdout(), entries)
			return nil
		default:
			return fmt.Errorf("unknown format %q: must be %s, %s or %s", listFormat, formatSimple, formatTable, formatJSON)
		}
	},
}

// runOneShot drives the shell for a single command. A pending confirmation
// is answered from in, or with yes when --yes was given.
func runOneShot(cmd *cobra.Command, in *bufio.Reader, args []string) error {
	out := cmd.OutOrStdout()
	sh := shell.New(store, verifier, out)
	if err := sh.Dispatch(args); err != nil {
		return reportedError{err}
	}
	if !sh.Pending() {
		return nil
	}

	var answer string
	if assumeYes {
		fmt.Fprintln(out, "yes")
		answer = "yes"
	} else {
		line, err := readLine(in)
		if err != nil {
			// No answer means no.
			fmt.Fprintln(out)
		}
		answer = line
	}
	if err := sh.Answer(answer); err != nil {
		return reportedError{err}
	}
	return nil
}

func writeJSON(w io.Writer, entries []vault.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeTable(w io.Writer, entries []vault.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No passwords saved.")
		return
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Website, e.Kind.Label(), e.Identity, e.Password})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Website", "Type", "Identity", "Password").
		Rows(rows...)
	fmt.Fprintln(w, t)
}

func init() {
	for _, c := range []*cobra.Command{removeCmd, updateCmd, purgeCmd} {
		c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to the confirmation")
	}
	removeCmd.ValidArgsFunction = indexCompletionFunc
	updateCmd.ValidArgsFunction = indexCompletionFunc
	listCmd.Flags().StringVarP(&listFormat, "format", "f", formatSimple, "output format: simple, table or json")
	_ = listCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatSimple, formatTable, formatJSON}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(purgeCmd)
}
