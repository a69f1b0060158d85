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
	"fmt"

	"go.uber.org/zap"

	ledger "github.com/samuellwn/ledgerplot"
	"github.com/samuellwn/ledgerplot/parse"
)

// Journal is the result of one run over a set of ledger files.
type Journal struct {
	Paths    []string
	Files    []*ledger.File
	Accounts *ledger.Accounts
}

// LoadJournal parses every path and applies its transactions to a single Accounts. Files are processed in the
// order given and transactions in file order, one at a time, so account histories are file order then
// in-file order.
func LoadJournal(log *zap.Logger, paths []string) (*Journal, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no ledger files given")
	}

	j := &Journal{Paths: paths, Accounts: ledger.NewAccounts()}
	for _, path := range paths {
		f, err := LoadLedgerFile(path)
		if err != nil {
			if line, ok := parse.LineOf(err); ok {
				log.Debug("ledger file does not parse", zap.String("path", path), zap.Int("line", line))
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if err := j.Accounts.ApplyFile(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("applied ledger file",
			zap.String("path", path),
			zap.Int("transactions", len(f.T)),
			zap.Int("directives", len(f.D)))

		j.Files = append(j.Files, f)
	}

	log.Info("loaded journal",
		zap.Int("files", len(j.Files)),
		zap.Int("accounts", len(j.Accounts.Names())))
	return j, nil
}

// DeclaredAccounts returns the account directives of all files, in file order.
func (j *Journal) DeclaredAccounts() ([]ledger.AccountDecl, error) {
	rtn := []ledger.AccountDecl{}
	for i, f := range j.Files {
		accts, err := f.DeclaredAccounts()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", j.Paths[i], err)
		}
		rtn = append(rtn, accts...)
	}
	return rtn, nil
}
