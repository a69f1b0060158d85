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
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/google/subcommands"

	ledger "github.com/samuellwn/ledgerplot"
)

type accountsCmd struct {
	CommonFlags
	declared bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their balances" }
func (*accountsCmd) Usage() string {
	return `accounts [-dest <file>] [-declared] <ledger file>...

  Prints every account that received a posting as a tree, with the sum of its
  postings. Parent accounts show the total of their children.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	c.CommonFlags.SetFlags(f, FlagDestFile)
	f.BoolVar(&c.declared, "declared", false, "Also list accounts declared with an account directive that have no postings.")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	_, log := runtimeArgs(args)

	if f.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	j, err := LoadJournal(log, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	w, err := CreateDest(c.DestFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	if err := printAccounts(w, j, c.declared, isStdout(c.DestFile) && !color.NoColor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printAccounts writes the balance tree. With colored set, negative balances are drawn in red.
func printAccounts(w io.Writer, j *Journal, declared, colored bool) error {
	rows := ledger.FormatSums(j.Accounts.Balances(), "    ")

	nw, vw := 0, 0
	for _, row := range rows {
		nw = max(nw, utf8.RuneCountInString(row[0]))
		vw = max(vw, len(row[1]))
	}

	red := color.New(color.FgRed)
	for _, row := range rows {
		value := fmt.Sprintf("%*s", vw, row[1])
		if colored && strings.HasPrefix(row[1], "-") {
			value = red.Sprint(value)
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", nw, row[0], value); err != nil {
			return err
		}
	}

	if !declared {
		return nil
	}

	decls, err := j.DeclaredAccounts()
	if err != nil {
		return err
	}
	for _, d := range decls {
		if _, ok := j.Accounts.Get(d.Name); !ok {
			fmt.Fprintf(w, "%v (declared at %v, no postings)\n", d.Name, d.Location)
		}
	}
	return nil
}
