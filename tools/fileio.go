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
	"bufio"
	"io"
	"os"

	ledger "github.com/samuellwn/ledgerplot"
	"github.com/samuellwn/ledgerplot/parse"
	"github.com/samuellwn/ledgerplot/parse/lex"
)

// LoadLedgerFile loads a ledger file from the given path. "-" reads standard input.
func LoadLedgerFile(path string) (*ledger.File, error) {
	r, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return parse.ParseLedger(lex.NewRawCharReader(bufio.NewReader(r), 1))
}

// WriteLedgerFile writes out a ledger file to the given path. "-" or "" writes to standard output.
func WriteLedgerFile(path string, d *ledger.File) error {
	w, err := CreateDest(path)
	if err != nil {
		return err
	}

	err = d.Format(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenSource opens a file for reading. "-" is standard input.
func OpenSource(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// CreateDest creates a file for writing. "-" or "" is standard output.
func CreateDest(path string) (io.WriteCloser, error) {
	if isStdout(path) {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func isStdout(path string) bool {
	return path == "-" || path == ""
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
