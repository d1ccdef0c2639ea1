// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"password-manager/internal/config"
	"password-manager/internal/keychain"
	"password-manager/internal/logger"
	"password-manager/internal/secret"
	"password-manager/internal/shell"
	"password-manager/internal/vault"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type env struct {
	configPath string
	dataPath   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Cleanup(logger.Close)
	return env{
		configPath: filepath.Join(dir, "config.yaml"),
		dataPath:   filepath.Join(dir, "passwords.json"),
	}
}

// run executes the root command with fresh flag values.
func (e env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	assumeYes = false
	listFormat = formatSimple
	useKeychain = false
	configFlag = ""
	dataFlag = ""

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", e.configPath, "--data", e.dataPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e env) writeConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	require.NoError(t, config.SaveConfigTo(e.configPath, cfg))
}

func (e env) readConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadConfigFrom(e.configPath)
	require.NoError(t, err)
	return cfg
}

func (e env) entries(t *testing.T) []vault.Entry {
	t.Helper()
	entries, err := vault.NewStore(e.dataPath).Load()
	require.NoError(t, err)
	return entries
}

func (e env) seed(t *testing.T) {
	t.Helper()
	require.NoError(t, vault.NewStore(e.dataPath).Save([]vault.Entry{
		vault.NewEntry("a.com", "alice", "p1"),
		vault.NewEntry("b.com", "bob@b.com", "p2"),
	}))
}

func TestAddAndList(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "add", "example.com", "a@b.com", "hunter2")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Account added successfully!")

	data, err := os.ReadFile(e.dataPath)
	require.NoError(t, err)
	assert.Equal(t, `[{"website":"example.com","email":"a@b.com","password":"hunter2"}]`, string(data))

	out, err = e.run(t, "", "ls")
	require.NoError(t, err)
	assert.Equal(t, "Saved Passwords:\n1. Website: example.com, Email: a@b.com, Password: hunter2\n", out)
}

func TestAdd_MissingArguments(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "new", "example.com")

	assert.ErrorIs(t, err, shell.ErrMissingArguments)
	assert.Contains(t, out, "Missing arguments.")
}

func TestList_Formats(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out, err := e.run(t, "", "list", "--format", "json")
	require.NoError(t, err)
	var decoded []vault.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, e.entries(t), decoded)

	out, err = e.run(t, "", "list", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "bob@b.com")
	assert.Contains(t, out, "Email")

	_, err = e.run(t, "", "list", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRemove_AnswersFromStdin(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out, err := e.run(t, "no\n", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation canceled.")
	assert.Len(t, e.entries(t), 2)

	out, err = e.run(t, "y\n", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Password removed successfully!")
	entries := e.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.com", entries[0].Website)
}

func TestRemove_NoAnswerCancels(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out, err := e.run(t, "", "remove", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Operation canceled.")
	assert.Len(t, e.entries(t), 2)
}

func TestRemove_YesFlagAndInvalidIndex(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	_, err := e.run(t, "", "remove", "5", "--yes")
	assert.ErrorIs(t, err, vault.ErrInvalidIndex)

	_, err = e.run(t, "", "remove", "2", "-y")
	require.NoError(t, err)
	assert.Len(t, e.entries(t), 1)
}

func TestUpdate(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out, err := e.run(t, "", "edit", "2", "c.com", "carol", "p3", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "update the password for  b.com/bob@b.com:**?")
	assert.Equal(t, vault.NewEntry("c.com", "carol", "p3"), e.entries(t)[1])
}

func TestPurge(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.writeConfig(t, config.Config{MasterPassword: "master"})

	_, err := e.run(t, "", "purge", "wrong", "--yes")
	assert.ErrorIs(t, err, shell.ErrSecretMismatch)
	assert.Len(t, e.entries(t), 2)

	_, err = e.run(t, "no\n", "prune", "master")
	require.NoError(t, err)
	assert.Len(t, e.entries(t), 2)

	out, err := e.run(t, "", "purge", "master", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ All saved passwords purged successfully!")
	assert.Empty(t, e.entries(t))
}

func TestPurge_ReadsPasswordFromStdin(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.writeConfig(t, config.Config{MasterPassword: "master"})

	out, err := e.run(t, "master\nyes\n", "purge")

	require.NoError(t, err)
	assert.Contains(t, out, "Master password: ")
	assert.Empty(t, e.entries(t))
}

func TestPurge_NotConfigured(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	_, err := e.run(t, "", "purge", "anything", "--yes")

	assert.ErrorIs(t, err, shell.ErrSecretNotConfigured)
	assert.Len(t, e.entries(t), 2)
}

func TestConfigSetMaster_Hash(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.writeConfig(t, config.Config{MasterPassword: "old"})

	_, err := e.run(t, "n3w\nn3w\n", "config", "set-master")
	require.NoError(t, err)

	cfg := e.readConfig(t)
	assert.Empty(t, cfg.MasterPassword)
	assert.True(t, secret.BcryptHash(cfg.MasterPasswordHash).Verify("n3w"))

	_, err = e.run(t, "", "purge", "old", "--yes")
	assert.ErrorIs(t, err, shell.ErrSecretMismatch)
	_, err = e.run(t, "", "purge", "n3w", "--yes")
	require.NoError(t, err)
	assert.Empty(t, e.entries(t))
}

func TestConfigSetMaster_Mismatch(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "one\ntwo\n", "config", "set-master")

	assert.ErrorContains(t, err, "do not match")
	assert.Empty(t, e.readConfig(t).MasterPasswordHash)
}

func TestConfigMaster_Keychain(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	kc := keychain.NewMemory()
	orig := newKeychainStore
	newKeychainStore = func() (keychain.Store, error) { return kc, nil }
	t.Cleanup(func() { newKeychainStore = orig })

	_, err := e.run(t, "kc-pass\nkc-pass\n", "config", "set-master", "--keychain")
	require.NoError(t, err)

	cfg := e.readConfig(t)
	assert.Equal(t, config.MasterSourceKeychain, cfg.MasterSource)
	assert.Empty(t, cfg.MasterPasswordHash)
	hash, err := kc.MasterHash()
	require.NoError(t, err)
	assert.True(t, secret.BcryptHash(hash).Verify("kc-pass"))

	_, err = e.run(t, "", "purge", "kc-pass", "--yes")
	require.NoError(t, err)
	assert.Empty(t, e.entries(t))

	_, err = e.run(t, "", "config", "clear-master")
	require.NoError(t, err)
	_, err = kc.MasterHash()
	assert.ErrorIs(t, err, keychain.ErrNoMasterHash)
	assert.Equal(t, config.Config{}, e.readConfig(t))
}

func TestConfigDataPath(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "config", "get-data-path")
	require.NoError(t, err)
	assert.Contains(t, out, "Data path not explicitly configured.")
	assert.Contains(t, out, "(from --data)")

	_, err = e.run(t, "", "config", "set-data-path", "~/vault.json")
	require.NoError(t, err)
	assert.Equal(t, "~/vault.json", e.readConfig(t).DataPath)

	out, err = e.run(t, "", "config", "get-data-path")
	require.NoError(t, err)
	assert.Contains(t, out, "Configured data path: ~/vault.json")
}

func TestShell_IsTheDefaultCommand(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "add a.com alice p1\nexit\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the Password Manager!")
	assert.Contains(t, out, "Exiting...")
	assert.Equal(t, []vault.Entry{vault.NewEntry("a.com", "alice", "p1")}, e.entries(t))
}

func TestShellHelp_ListsPromptCommands(t *testing.T) {
	for _, c := range shell.Commands() {
		assert.Contains(t, shellCmd.Long, c.Usage())
		assert.Contains(t, shellCmd.Long, c.Description)
	}
	assert.Contains(t, shellCmd.Long, "remove <index> (alias: rm)")
	assert.NotContains(t, shellCmd.Long, "help (alias")
}

func TestIndexCompletion(t *testing.T) {
	e := newEnv(t)
	configFlag = e.configPath
	dataFlag = e.dataPath
	t.Cleanup(func() { configFlag, dataFlag = "", "" })

	got, directive := indexCompletionFunc(removeCmd, nil, "")
	assert.Empty(t, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	_, statErr := os.Stat(e.dataPath)
	assert.True(t, os.IsNotExist(statErr), "completion must not create the data file")

	e.seed(t)
	got, _ = indexCompletionFunc(removeCmd, nil, "")
	assert.Equal(t, []string{"1\ta.com", "2\tb.com"}, got)

	got, _ = indexCompletionFunc(removeCmd, []string{"1"}, "")
	assert.Empty(t, got)
}
