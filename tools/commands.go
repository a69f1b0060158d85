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

// Package tools implements the ledgerplot commands and the file handling they share.
package tools

import (
	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/samuellwn/ledgerplot/config"
)

// Register adds all commands to c. Execute must be called with the run's *config.Config and *zap.Logger as
// arguments; missing ones fall back to config.Default() and a no-op logger.
func Register(c *subcommands.Commander) {
	c.Register(&chartCmd{}, "reports")
	c.Register(&seriesCmd{}, "reports")
	c.Register(&accountsCmd{}, "reports")

	c.Register(&fromOFXCmd{}, "import")
	c.Register(&fromCSVCmd{}, "import")
}

func runtimeArgs(args []interface{}) (*config.Config, *zap.Logger) {
	cfg, log := config.Default(), zap.NewNop()
	for _, a := range args {
		switch v := a.(type) {
		case *config.Config:
			cfg = v
		case *zap.Logger:
			log = v
		}
	}
	return cfg, log
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
