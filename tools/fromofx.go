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
	"io"

	ledger "github.com/samuellwn/ledgerplot"
)

// DefaultAccount receives the inferred side of imported transactions unless told otherwise.
const DefaultAccount = "Unknown:Account"

// ParseOFXDescSrc parses the name of an OFX description source: "name", "memo", or "name+memo".
func ParseOFXDescSrc(s string) (ledger.OFXDescSrc, error) {
	switch s {
	case "name", "":
		return ledger.OFXDescName, nil
	case "memo":
		return ledger.OFXDescMemo, nil
	case "name+memo":
		return ledger.OFXDescNameMemo, nil
	default:
		return 0, fmt.Errorf("Unknown description source: %q", s)
	}
}

// FromOFX pulls transaction data from an OFX file and converts it to a File.
//
// This function makes a lot of assumptions about the structure of the input OFX file, and will error out if
// they are not met.
func FromOFX(file io.Reader, mainAccount, otherAccount string, descSrc ledger.OFXDescSrc) (*ledger.File, error) {
	journal := &ledger.File{T: []ledger.Transaction{}, D: nil}
	if err := MergeOFX(journal, file, mainAccount, otherAccount, descSrc); err != nil {
		return nil, err
	}
	return journal, nil
}

// MergeOFX adds the transactions from an OFX file that the journal does not have yet.
func MergeOFX(journal *ledger.File, file io.Reader, mainAccount, otherAccount string, descSrc ledger.OFXDescSrc) error {
	if otherAccount == "" {
		otherAccount = DefaultAccount
	}
	return journal.ImportOFX(file, descSrc, mainAccount, otherAccount)
}
