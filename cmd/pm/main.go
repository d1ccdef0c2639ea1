// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package main

import "password-manager/cmd/cli"

func main() {
	// Without arguments the root command starts the interactive prompt.
	cli.RunCLI()
}
