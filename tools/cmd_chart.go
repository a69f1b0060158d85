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

package tools

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	ledger "github.com/samuellwn/ledgerplot"
	"github.com/samuellwn/ledgerplot/chart"
	"github.com/samuellwn/ledgerplot/config"
)

type chartCmd struct {
	CommonFlags
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the posting history of an account" }
func (*chartCmd) Usage() string {
	return `chart [-account <name>] [-dest <image>] [-running] <ledger file>...

  Reads every ledger file, in order, and draws the quantities posted to one
  account as a line chart. The image format follows the -dest extension
  (.png or .svg). Account and output default to the config file.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.CommonFlags.SetFlags(f, FlagDestFile|FlagAccountName|FlagRunning)
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, log := runtimeArgs(args)

	account := firstNonEmpty(c.AccountName, cfg.Account)
	if account == "" {
		fmt.Fprintln(os.Stderr, "an account is required, use -account or set account in the config file")
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one ledger file is required")
		return subcommands.ExitUsageError
	}

	j, err := LoadJournal(log, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	s, err := seriesFor(j, account, c.Running || cfg.Running)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	dest := firstNonEmpty(c.DestFile, cfg.Output)
	if err := writeChart(dest, s, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart %q: %v\n", dest, err)
		return subcommands.ExitFailure
	}

	log.Info("chart written",
		zap.String("account", account),
		zap.String("dest", dest),
		zap.Int("postings", len(s.Values)))
	return subcommands.ExitSuccess
}

// seriesFor looks up an account, explaining the failure if it never received a posting.
func seriesFor(j *Journal, account string, running bool) (ledger.Series, error) {
	s, err := j.Accounts.Series(account)
	var nf ledger.ErrAccountNotFound
	if errors.As(err, &nf) {
		return s, fmt.Errorf("%w Known accounts: %d, see the accounts command.", err, len(j.Accounts.Names()))
	}
	if err != nil {
		return s, err
	}
	if running {
		s = s.Running()
	}
	return s, nil
}

func writeChart(dest string, s ledger.Series, cfg *config.Config) error {
	w, err := CreateDest(dest)
	if err != nil {
		return err
	}

	err = chart.Render(w, s, chart.Options{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Padding: cfg.Padding,
		Format:  chart.FormatFor(dest),
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
