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
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	ledger "github.com/samuellwn/ledgerplot"
)

type fromOFXCmd struct {
	CommonFlags
	other string
	desc  string
}

func (*fromOFXCmd) Name() string     { return "fromofx" }
func (*fromOFXCmd) Synopsis() string { return "convert an OFX statement to ledger transactions" }
func (*fromOFXCmd) Usage() string {
	return `fromofx -account <name> [-other <name>] [-desc name|memo|name+memo] [-master <file>] [-source <file>] [-dest <file>] [-explicit]

  Converts the transactions in an OFX statement to ledger transactions. Each
  one posts the statement amount to -account and leaves the amount of the
  -other posting to be inferred. With -master, transactions already in the
  master file (by FITID) are skipped and the merged file is written.
`
}

func (c *fromOFXCmd) SetFlags(f *flag.FlagSet) {
	c.CommonFlags.SetFlags(f, FlagSourceFile|FlagDestFile|FlagMasterFile|FlagAccountName|FlagExplicit)
	f.StringVar(&c.other, "other", DefaultAccount, "Account that receives the inferred posting.")
	f.StringVar(&c.desc, "desc", "name", "Where to take descriptions from: name, memo, or name+memo.")
}

func (c *fromOFXCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	_, log := runtimeArgs(args)

	if c.AccountName == "" {
		fmt.Fprintln(os.Stderr, "-account is required")
		return subcommands.ExitUsageError
	}
	descSrc, err := ParseOFXDescSrc(c.desc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	journal := &ledger.File{T: []ledger.Transaction{}}
	if c.MasterFile != "" {
		journal, err = LoadLedgerFile(c.MasterFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading master file: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	before := len(journal.T)

	r, err := OpenSource(c.SourceFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	err = MergeOFX(journal, r, c.AccountName, c.other, descSrc)
	r.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading OFX: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info("ofx imported",
		zap.String("account", c.AccountName),
		zap.Int("new", len(journal.T)-before))

	return writeImported(journal, c.DestFile, c.Explicit)
}

type fromCSVCmd struct {
	CommonFlags
	opts CSVOptions
}

func (*fromCSVCmd) Name() string     { return "fromcsv" }
func (*fromCSVCmd) Synopsis() string { return "convert a CSV file to ledger transactions" }
func (*fromCSVCmd) Usage() string {
	return `fromcsv [options] [-source <file>] [-dest <file>] [-explicit]

  Converts a CSV file to ledger transactions. Fields are found by header
  name, or by index with -noheader. -desc may be given more than once to join
  several fields into the description.
`
}

func (c *fromCSVCmd) SetFlags(f *flag.FlagSet) {
	c.CommonFlags.SetFlags(f, FlagSourceFile|FlagDestFile|FlagExplicit)

	def := DefaultCSVOptions()
	f.BoolVar(&c.opts.NoHeader, "noheader", false, "The CSV has no header, fields are given by index.")
	f.StringVar(&c.opts.DateFmt, "datefmt", def.DateFmt, "Jan 2, 2006 written in the file's date format.")
	f.StringVar(&c.opts.DateField, "date", def.DateField, "Name of the date field.")
	f.StringVar(&c.opts.AmountField, "amount", def.AmountField, "Name of the amount field.")
	f.StringVar(&c.opts.AccountFrom, "from", def.AccountFrom, "Positive amounts take from this account.")
	f.StringVar(&c.opts.AccountTo, "to", def.AccountTo, "Positive amounts add to this account.")
	f.Func("desc", "Name of a description field. May be repeated.", func(arg string) error {
		c.opts.DescFields = append(c.opts.DescFields, arg)
		return nil
	})
}

func (c *fromCSVCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	_, log := runtimeArgs(args)

	r, err := OpenSource(c.SourceFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	journal, err := FromCSV(r, c.opts)
	r.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info("csv imported", zap.Int("transactions", len(journal.T)))

	return writeImported(journal, c.DestFile, c.Explicit)
}

func writeImported(journal *ledger.File, dest string, explicit bool) subcommands.ExitStatus {
	if explicit {
		var err error
		journal, err = journal.Explicit()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	if err := WriteLedgerFile(dest, journal); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
