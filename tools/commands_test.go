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
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/samuellwn/ledgerplot/config"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Width = 320
	cfg.Height = 240
	return cfg
}

func run(t *testing.T, cmd subcommands.Command, cfg *config.Config, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs, cfg, zaptest.NewLogger(t))
}

func readLines(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rtn := [][]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		rtn = append(rtn, strings.Fields(line))
	}
	return rtn
}

func TestRegister(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("ledgerplot", flag.ContinueOnError), "ledgerplot")
	Register(c)

	names := []string{}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
	})
	assert.ElementsMatch(t, []string{"chart", "series", "accounts", "fromofx", "fromcsv"}, names)
}

func TestChartCmd(t *testing.T) {
	jan := writeTemp(t, "jan.ledger", janLedger)
	feb := writeTemp(t, "feb.ledger", febLedger)
	dest := filepath.Join(t.TempDir(), "out.png")

	status := run(t, &chartCmd{}, smallConfig(), "-account", "Assets:Checking", "-dest", dest, "-running", jan, feb)
	require.Equal(t, subcommands.ExitSuccess, status)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestChartCmdFromConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Account = "Expenses:Food:Groceries"
	cfg.Output = filepath.Join(t.TempDir(), "out.svg")

	status := run(t, &chartCmd{}, cfg, writeTemp(t, "jan.ledger", janLedger))
	require.Equal(t, subcommands.ExitSuccess, status)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestChartCmdFailures(t *testing.T) {
	jan := writeTemp(t, "jan.ledger", janLedger)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &chartCmd{}, smallConfig(), jan))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &chartCmd{}, smallConfig(), "-account", "Assets:Checking"))
	assert.Equal(t, subcommands.ExitFailure,
		run(t, &chartCmd{}, smallConfig(), "-account", "Assets:Nope", "-dest", filepath.Join(t.TempDir(), "x.png"), jan))
}

func TestSeriesCmd(t *testing.T) {
	jan := writeTemp(t, "jan.ledger", janLedger)
	feb := writeTemp(t, "feb.ledger", febLedger)
	dest := filepath.Join(t.TempDir(), "series.txt")

	status := run(t, &seriesCmd{}, smallConfig(), "-account", "Assets:Checking", "-dest", dest, jan, feb)
	require.Equal(t, subcommands.ExitSuccess, status)

	assert.Equal(t, [][]string{
		{"#", "Assets:Checking", "Running"},
		{"0", "100.00", "100.00"},
		{"1", "-1.00", "99.00"},
		{"2", "-1.00", "98.00"},
		{"min", "-1.00"},
		{"max", "100.00"},
	}, readLines(t, dest))
}

func TestAccountsCmd(t *testing.T) {
	jan := writeTemp(t, "jan.ledger", janLedger)
	feb := writeTemp(t, "feb.ledger", febLedger)
	dest := filepath.Join(t.TempDir(), "accounts.txt")

	status := run(t, &accountsCmd{}, smallConfig(), "-dest", dest, "-declared", jan, feb)
	require.Equal(t, subcommands.ExitSuccess, status)

	lines := readLines(t, dest)
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Assets:Checking", "98.00"}, lines[0])
	assert.Equal(t, []string{"Equity:Opening", "-100.00"}, lines[1])
	assert.Equal(t, []string{"Expenses:Food:Groceries", "2.00"}, lines[2])
	assert.Equal(t, "Assets:Savings", lines[3][0])
	assert.Contains(t, strings.Join(lines[3], " "), "no postings")

	assert.Equal(t, subcommands.ExitUsageError, run(t, &accountsCmd{}, smallConfig()))
}

func TestFromCSVCmd(t *testing.T) {
	src := writeTemp(t, "bank.csv", "Date,Payee,Amount\n01/15/2021,Corner Shop,-4.25\n01/16/2021,Employer,1000\n")
	dest := filepath.Join(t.TempDir(), "bank.ledger")

	status := run(t, &fromCSVCmd{}, smallConfig(),
		"-source", src, "-dest", dest,
		"-date", "Date", "-amount", "Amount", "-desc", "Payee",
		"-to", "Assets:Checking", "-from", "Income:Unknown", "-explicit")
	require.Equal(t, subcommands.ExitSuccess, status)

	f, err := LoadLedgerFile(dest)
	require.NoError(t, err)
	require.Len(t, f.T, 2)
	assert.Equal(t, "Corner Shop", f.T[0].Description)

	q, ok := f.T[0].Postings[1].Amount.Quantity()
	require.True(t, ok, "inferred amount was not written out")
	assert.Equal(t, "4.25", q.String())

	j, err := LoadJournal(zaptest.NewLogger(t), []string{dest})
	require.NoError(t, err)
	assert.Equal(t, []string{"-4.25", "1000"}, quantities(t, j.Accounts, "Assets:Checking"))
}

func TestFromOFXCmdNeedsAccount(t *testing.T) {
	assert.Equal(t, subcommands.ExitUsageError, run(t, &fromOFXCmd{}, smallConfig()))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &fromOFXCmd{}, smallConfig(), "-account", "A", "-desc", "payee"))

	src := writeTemp(t, "bad.ofx", "garbage")
	assert.Equal(t, subcommands.ExitFailure, run(t, &fromOFXCmd{}, smallConfig(), "-account", "A", "-source", src))
}

func TestPrintAccountsColor(t *testing.T) {
	j, err := LoadJournal(zaptest.NewLogger(t), []string{writeTemp(t, "jan.ledger", janLedger)})
	require.NoError(t, err)

	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	buf := new(bytes.Buffer)
	require.NoError(t, printAccounts(buf, j, false, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "\x1b[")
	assert.Contains(t, lines[1], "\x1b[31m")
	assert.Contains(t, lines[1], "-100.00")

	buf.Reset()
	require.NoError(t, printAccounts(buf, j, false, false))
	assert.NotContains(t, buf.String(), "\x1b[")
}
