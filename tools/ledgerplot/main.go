/*
Copyright 2021 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

// Ledgerplot reads ledger journals and charts the postings to an account.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/samuellwn/ledgerplot/config"
	"github.com/samuellwn/ledgerplot/tools"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	tools.Register(commander)

	configPath := flag.String("config", "", "YAML config `file`.")
	envPath := flag.String("env", "", "Environment `file` to load before reading LEDGERPLOT_* variables.")
	logLevel := flag.String("log-level", "", "Log level, overrides the config file.")
	flag.Parse()

	var envFiles []string
	if *envPath != "" {
		envFiles = append(envFiles, *envPath)
	}
	cfg := tools.HandleErrV(config.Load(*configPath, envFiles...))
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := tools.HandleErrV(tools.NewLogger(cfg.LogLevel))
	status := commander.Execute(context.Background(), cfg, log)
	_ = log.Sync()
	os.Exit(int(status))
}
