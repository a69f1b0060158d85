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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	ledger "github.com/samuellwn/ledgerplot"
	"github.com/samuellwn/ledgerplot/parse"
)

const janLedger = `account Assets:Checking
    note Main account

2021/01/01 * Opening
    Assets:Checking      $100.00
    Equity:Opening

2021/01/05 Groceries
    Assets:Checking     $-1
    Expenses:Food:Groceries
`

const febLedger = `account Assets:Savings

2021/02/01 Groceries
    Assets:Checking     $-1
    Expenses:Food:Groceries      $1
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quantities(t *testing.T, a *ledger.Accounts, account string) []string {
	t.Helper()
	qs, ok := a.Get(account)
	require.True(t, ok, "account %q missing", account)
	rtn := []string{}
	for _, q := range qs {
		rtn = append(rtn, q.String())
	}
	return rtn
}

func TestLoadJournal(t *testing.T) {
	jan := writeTemp(t, "jan.ledger", janLedger)
	feb := writeTemp(t, "feb.ledger", febLedger)

	j, err := LoadJournal(zaptest.NewLogger(t), []string{jan, feb})
	require.NoError(t, err)
	require.Len(t, j.Files, 2)

	assert.Equal(t, []string{"100", "-1", "-1"}, quantities(t, j.Accounts, "Assets:Checking"))
	assert.Equal(t, []string{"1", "1"}, quantities(t, j.Accounts, "Expenses:Food:Groceries"))
	assert.Equal(t, []string{"-100"}, quantities(t, j.Accounts, "Equity:Opening"))

	// Argument order decides posting order.
	j, err = LoadJournal(zaptest.NewLogger(t), []string{feb, jan})
	require.NoError(t, err)
	assert.Equal(t, []string{"-1", "100", "-1"}, quantities(t, j.Accounts, "Assets:Checking"))

	decls, err := j.DeclaredAccounts()
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, "Assets:Savings", decls[0].Name)
	assert.Equal(t, "Assets:Checking", decls[1].Name)
	assert.Equal(t, "Main account", decls[1].Note)
}

func TestLoadJournalErrors(t *testing.T) {
	_, err := LoadJournal(zaptest.NewLogger(t), nil)
	assert.Error(t, err)

	_, err = LoadJournal(zaptest.NewLogger(t), []string{filepath.Join(t.TempDir(), "missing.ledger")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeTemp(t, "bad.ledger", "2021/01/01 X\n    A\n    B\n")
	_, err = LoadJournal(zaptest.NewLogger(t), []string{bad})
	var mn ledger.MultipleNullError
	require.ErrorAs(t, err, &mn)
	assert.Equal(t, ledger.MultipleNullError{0, 1}, mn)
	assert.Contains(t, err.Error(), bad)
}

func TestSeriesFor(t *testing.T) {
	j, err := LoadJournal(zaptest.NewLogger(t), []string{writeTemp(t, "jan.ledger", janLedger)})
	require.NoError(t, err)

	s, err := seriesFor(j, "Assets:Checking", true)
	require.NoError(t, err)
	assert.Equal(t, "99", s.Values[1].String())
	assert.Equal(t, "100", s.Max.String())

	_, err = seriesFor(j, "Assets:Nope", false)
	var nf ledger.ErrAccountNotFound
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, err.Error(), "Known accounts: 3")
}

func TestLoadJournalParseError(t *testing.T) {
	bad := writeTemp(t, "bad.ledger", "2021/01/01 X\n    A  $abc\n")
	_, err := LoadJournal(zaptest.NewLogger(t), []string{bad})
	line, ok := parse.LineOf(err)
	require.True(t, ok)
	assert.Equal(t, 2, line)
}
