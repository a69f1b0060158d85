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

package ledger

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/samuellwn/ledgerplot/parse/lex"
)

// File hold a parsed ledger file stored as lists of Directives and Transactions.
type File struct {
	T []Transaction
	D []Directive
}

// ErrImproperInterleave is returned by File.Format if the lists do not interleave properly.
// Caused by bad FoundBefore values in the directives.
var ErrImproperInterleave = errors.New("Ledger file transaction and directive lists do not interleave properly.")

// Format writes out a ledger file, interleaving the transactions and directives according to the
// "FoundBefore" values in the directives. The directive list is sorted on the FoundBefore values as
// part of this operation.
func (f *File) Format(w io.Writer) error {
	// Use a stable sort to be minimally disruptive.
	sort.SliceStable(f.D, func(i, j int) bool {
		return f.D[i].FoundBefore < f.D[j].FoundBefore
	})

	ctr, cdr := 0, 0
	for ctr < len(f.T) || cdr < len(f.D) {
		// If we have remaining directives and the next directive goes before the current transaction
		if cdr < len(f.D) && f.D[cdr].FoundBefore <= ctr {
			if _, err := fmt.Fprintf(w, "\n%v", f.D[cdr].String()); err != nil {
				return err
			}
			cdr++
			continue
		}

		// If we have remaining directives and we are out of transactions
		if ctr >= len(f.T) {
			return ErrImproperInterleave
		}

		if _, err := fmt.Fprintf(w, "\n%v", f.T[ctr].String()); err != nil {
			return err
		}
		ctr++
	}
	return nil
}

// Explicit returns a copy of the file where every posting has its amount written out. The receiver is
// not modified.
func (f *File) Explicit() (*File, error) {
	nf := &File{T: make([]Transaction, 0, len(f.T)), D: f.D}
	for i := range f.T {
		tr := f.T[i].CleanCopy()
		err := tr.Canonicalize()
		switch err.(type) {
		case nil:
		case MultipleNullError:
			return nil, MultipleNullError([2]int{i, tr.Line})
		case BalanceError:
			return nil, BalanceError([2]int{i, tr.Line})
		default:
			return nil, err
		}
		nf.T = append(nf.T, *tr)
	}
	return nf, nil
}

// ErrMalformedAccountName is returned by File.DeclaredAccounts if an account name is malformed.
type ErrMalformedAccountName struct {
	Name     string
	Location lex.Location
}

func (err ErrMalformedAccountName) Error() string {
	return fmt.Sprintf("Malformed account name (%s) at %s", err.Name, err.Location)
}

// AccountDecl is a simple type representing an account directive. Subdirectives containing value expressions
// are not included.
type AccountDecl struct {
	Name    string   // The name of this account.
	Note    string   // The contents of the note subdirective.
	Aliases []string // One string for each alias subdirective.
	Default bool     // True if the default subdirective is present.

	FoundBefore int          // The transaction index this account precedes.
	Location    lex.Location // Line number where this account starts.
}

// DeclaredAccounts returns all account directives, in the order they are found in D.
// If any account directives fail to parse, DeclaredAccounts returns an error.
func (f *File) DeclaredAccounts() ([]AccountDecl, error) {
	accts := []AccountDecl{}
	for _, d := range f.D {
		if d.Type != "account" {
			continue
		}

		acct := AccountDecl{
			Name:        d.Argument,
			FoundBefore: d.FoundBefore,
			Location:    d.Location,
		}

		// filter out some things that cause funny behavior
		if acct.Name == "" || strings.Contains(acct.Name, "  ") || strings.ContainsAny(acct.Name, ";\t") {
			return nil, ErrMalformedAccountName{acct.Name, acct.Location}
		}

		for sdIx, sd := range d.Lines {
			switch {
			case strings.HasPrefix(sd, "default"):
				// ledger is lax about directive parsing
				acct.Default = true
			case strings.HasPrefix(sd, "alias"):
				alias := strings.TrimSpace(sd[len("alias"):])
				if alias == "" || strings.Contains(alias, "  ") || strings.ContainsAny(alias, ";\t") {
					return nil, ErrMalformedAccountName{
						Name:     alias,
						Location: d.LineLocation(sdIx),
					}
				}
				acct.Aliases = append(acct.Aliases, alias)
			case strings.HasPrefix(sd, "note"):
				acct.Note = strings.TrimSpace(sd[len("note"):])
			}
		}

		accts = append(accts, acct)
	}
	return accts, nil
}

// OFXDescSrc selects which OFX fields become the transaction description.
type OFXDescSrc int

const (
	OFXDescName OFXDescSrc = iota
	OFXDescMemo
	OFXDescNameMemo
)

// Decimal places kept when converting OFX amounts.
const ofxPlaces = 4

// ImportOFX imports the OFX response/file into this file. Every statement line becomes a transaction with
// a posting of the statement amount to bankAcct and a posting without an amount to defaultAcct. Already
// imported transactions (same FITID for the same bank account) will be skipped.
func (f *File) ImportOFX(ofxFile io.Reader, descSrc OFXDescSrc, bankAcct, defaultAcct string) error {
	ofxd, err := ofxgo.ParseResponse(ofxFile)
	if err != nil {
		return err
	}

	if len(ofxd.Bank) == 0 && len(ofxd.CreditCard) == 0 {
		return errors.New("No banks or credit cards.")
	}

	trns := []ofxgo.Transaction{}
	for _, msg := range append(ofxd.Bank, ofxd.CreditCard...) {
		var list *ofxgo.TransactionList
		switch stmt := msg.(type) {
		case *ofxgo.StatementResponse:
			list = stmt.BankTranList
		case *ofxgo.CCStatementResponse:
			list = stmt.BankTranList
		default:
			return errors.New("Unexpected response type.")
		}
		if list != nil {
			trns = append(trns, list.Transactions...)
		}
	}

	return f.importOFXTransactions(trns, descSrc, bankAcct, defaultAcct)
}

func (f *File) importOFXTransactions(trns []ofxgo.Transaction, descSrc OFXDescSrc, bankAcct, defaultAcct string) error {
	// Load set of seen transaction ids from the existing transactions
	seenIds := map[string]bool{}
	for _, tr := range f.T {
		if tr.KVPairs["FITID"] == "" || tr.KVPairs["Account"] != bankAcct {
			continue
		}
		seenIds[tr.KVPairs["FITID"]] = true
	}

	ltrns := []Transaction{}
	for _, str := range trns {
		if seenIds[string(str.FiTID)] {
			continue
		}
		seenIds[string(str.FiTID)] = true

		v, err := ofxAmount(str.TrnAmt)
		if err != nil {
			return err
		}

		desc := ""
		switch descSrc {
		case OFXDescName:
			desc = string(str.Name)
		case OFXDescMemo:
			desc = string(str.Memo)
		case OFXDescNameMemo: // because some banks output braindead OFX files
			desc = string(str.Name + str.Memo)
		}

		ltrns = append(ltrns, Transaction{
			Description: strings.TrimSpace(desc),
			Date:        str.DtPosted.Time,
			Status:      StatusUndefined,
			KVPairs: map[string]string{
				"ID":      <-IDService,
				"RID":     <-IDService,
				"FITID":   string(str.FiTID),
				"TrnTyp":  str.TrnType.String(),
				"Account": bankAcct,
			},
			Postings: []Posting{
				{
					Account: bankAcct,
					Amount:  Present(v),
				},
				{
					Account: defaultAcct,
					Amount:  Absent(),
				},
			},
		})
	}

	f.T = append(f.T, ltrns...)
	return nil
}

func ofxAmount(a ofxgo.Amount) (decimal.Decimal, error) {
	s := strings.TrimRight(a.FloatString(ofxPlaces), "0")
	return ParseValueNumber(strings.TrimSuffix(s, "."))
}
