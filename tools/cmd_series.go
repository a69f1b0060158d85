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
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	ledger "github.com/samuellwn/ledgerplot"
)

type seriesCmd struct {
	CommonFlags
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print the posting history of an account" }
func (*seriesCmd) Usage() string {
	return `series [-account <name>] [-dest <file>] <ledger file>...

  Prints the quantities posted to one account in processing order, with the
  running balance, followed by the minimum and maximum that a chart would be
  scaled to.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.CommonFlags.SetFlags(f, FlagDestFile|FlagAccountName)
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, log := runtimeArgs(args)

	account := firstNonEmpty(c.AccountName, cfg.Account)
	if account == "" || f.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	j, err := LoadJournal(log, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	s, err := seriesFor(j, account, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	w, err := CreateDest(c.DestFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	if err := printSeries(w, s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printSeries(w io.Writer, s ledger.Series) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%v\tRunning\n", s.Account)

	running := s.Running()
	for i, v := range s.Values {
		fmt.Fprintf(tw, "%d\t%v\t%v\n", i, ledger.FormatValue(v), ledger.FormatValue(running.Values[i]))
	}
	fmt.Fprintf(tw, "min\t%v\t\n", ledger.FormatValue(s.Min))
	fmt.Fprintf(tw, "max\t%v\t\n", ledger.FormatValue(s.Max))
	return tw.Flush()
}
