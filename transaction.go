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

/*
Package ledger holds the data model for Ledger CLI journals and the per-account aggregation engine
used to chart account balances.

A Transaction is a list of Postings that must sum to zero. At most one posting in a transaction may
leave its amount out, in which case its quantity is whatever makes the transaction balance.
Transaction.Resolve does that inference, and Accounts collects the resolved quantities per account in
the order they were applied.

All quantities are exact decimals. Commodities are kept so journals can be written back out, but the
arithmetic ignores them.
*/
package ledger

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type status int

// Status constants for Transaction.Status and Posting.Status
const (
	StatusUndefined = status(iota)
	StatusPending
	StatusClear
)

// Transaction is a single transaction from a ledger file.
type Transaction struct {
	Date        time.Time // 2020/10/10
	ClearDate   time.Time // =2020/10/10 (optional)
	Status      status    //   | ! | * (optional)
	Code        string    // ( Stuff ) (optional)
	Description string    // Spent monie on stuf

	Postings []Posting

	Comments []string // ; Stuff...

	Tags    map[string]bool   // ; :tag:tag:tag:
	KVPairs map[string]string // ; Key: Value

	Line int // The line number where the transaction starts.
}

// Amount is the value of a posting. It is either present, holding a signed quantity, or absent, in which
// case the posting takes whatever quantity balances its transaction. The zero Amount is absent.
type Amount struct {
	quantity decimal.Decimal
	present  bool
}

// Present returns an Amount holding q.
func Present(q decimal.Decimal) Amount {
	return Amount{quantity: q, present: true}
}

// Absent returns an Amount with no quantity.
func Absent() Amount {
	return Amount{}
}

// Quantity returns the quantity and true, or zero and false for an absent Amount.
func (a Amount) Quantity() (decimal.Decimal, bool) {
	if !a.present {
		return decimal.Zero, false
	}
	return a.quantity, true
}

// IsAbsent reports whether the amount was left out.
func (a Amount) IsAbsent() bool {
	return !a.present
}

// Posting is a single line item in a Transaction.
type Posting struct {
	Status    status // | ! | *  (optional)
	Account   string // Account:Name
	Amount    Amount // $20.00 (optional)
	Commodity string // $, EUR, ... as written. Never used in arithmetic.
	Suffix    bool   // The commodity is written after the quantity.
	Note      string // ; Stuff
}

// ResolvedPosting is a posting with its quantity filled in.
type ResolvedPosting struct {
	Account  string
	Quantity decimal.Decimal
}

// Resolve returns a concrete quantity for every posting in the transaction.
//
// Postings with an amount are returned in their original order. The posting without an amount, if there is
// one, is given the negated sum of all the others and is always returned last, wherever it was in the
// transaction. When every posting has an amount the result is a straight copy and the sum is not checked.
//
// More than one posting without an amount is a MultipleNullError.
func (t *Transaction) Resolve() ([]ResolvedPosting, error) {
	sum := decimal.Zero
	null := -1
	rtn := make([]ResolvedPosting, 0, len(t.Postings))

	for i, p := range t.Postings {
		q, ok := p.Amount.Quantity()
		if !ok {
			if null != -1 {
				return nil, MultipleNullError([2]int{-1, t.Line})
			}
			null = i
			continue
		}
		rtn = append(rtn, ResolvedPosting{Account: p.Account, Quantity: q})
		sum = sum.Sub(q)
	}

	if null != -1 {
		rtn = append(rtn, ResolvedPosting{Account: t.Postings[null].Account, Quantity: sum})
	}
	return rtn, nil
}

// Canonicalize sets the amount of the posting without one (if any) to the value required to make the
// transaction balance. Returns an error if there are multiple such postings or if every posting has an
// amount and the transaction does not balance.
func (t *Transaction) Canonicalize() error {
	bal := decimal.Zero
	null := -1

	for i, p := range t.Postings {
		q, ok := p.Amount.Quantity()
		if !ok {
			if null != -1 {
				return MultipleNullError([2]int{-1, t.Line})
			}
			null = i
			continue
		}
		bal = bal.Add(q)
	}
	if null != -1 {
		t.Postings[null].Amount = Present(bal.Neg())
		return nil
	}
	if !bal.IsZero() {
		return BalanceError([2]int{-1, t.Line})
	}
	return nil
}

// CleanCopy takes a perfect copy of the transaction object, safe for editing without making any changes to the parent.
func (t *Transaction) CleanCopy() *Transaction {
	nt := *t
	nt.Postings = slices.Clone(t.Postings)
	nt.Comments = slices.Clone(t.Comments)
	nt.Tags = maps.Clone(t.Tags)
	nt.KVPairs = maps.Clone(t.KVPairs)
	return &nt
}

func (t *Transaction) String() string {
	buf := new(bytes.Buffer)

	buf.WriteString(t.Date.Format("2006/01/02"))
	if !t.ClearDate.IsZero() {
		fmt.Fprintf(buf, "=%v", t.ClearDate.Format("2006/01/02"))
	}

	switch t.Status {
	case StatusClear:
		buf.WriteString(" * ")
	case StatusPending:
		buf.WriteString(" ! ")
	default:
		buf.WriteString(" ")
	}

	if t.Code != "" {
		fmt.Fprintf(buf, "(%v) ", t.Code)
	}

	fmt.Fprintf(buf, "%v\n", t.Description)

	// We don't know if the comments and postings were interleaved in any way,
	// so canonically we will just do the comments and metadata first.
	for _, line := range t.Comments {
		fmt.Fprintf(buf, "\t; %v\n", line)
	}
	if len(t.Tags) != 0 {
		tags := maps.Keys(t.Tags)
		slices.Sort(tags)
		fmt.Fprint(buf, "\t; ")
		for _, tag := range tags {
			fmt.Fprintf(buf, ":%v", tag)
		}
		fmt.Fprint(buf, ":\n")
	}
	keys := maps.Keys(t.KVPairs)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "\t; %v: %v\n", k, t.KVPairs[k])
	}

	for i := range t.Postings {
		fmt.Fprintf(buf, "\t%v\n", t.Postings[i].String())
	}

	return buf.String()
}

func (p *Posting) String() string {
	buf := new(bytes.Buffer)

	switch p.Status {
	case StatusClear:
		buf.WriteString("* ")
	case StatusPending:
		buf.WriteString("! ")
	}

	if q, ok := p.Amount.Quantity(); ok {
		fmt.Fprintf(buf, "%-50s", p.Account)
		if !q.IsNegative() {
			buf.WriteString(" ")
		}
		buf.WriteString(FormatAmount(q, p.Commodity, p.Suffix))
	} else {
		buf.WriteString(p.Account)
	}

	if p.Note != "" {
		fmt.Fprintf(buf, " ; %v", p.Note)
	}

	return buf.String()
}

// FormatValue formats a quantity for display with at least two decimal places. Quantities with more
// places than that keep all of them.
func FormatValue(q decimal.Decimal) string {
	places := -q.Exponent()
	if places < 2 {
		places = 2
	}
	return q.StringFixed(places)
}

// FormatAmount formats a quantity with its commodity. Prefix commodities are written against the number
// ($-5.00), suffix commodities after a space (-5.00 EUR).
func FormatAmount(q decimal.Decimal, commodity string, suffix bool) string {
	switch {
	case commodity == "":
		return FormatValue(q)
	case suffix:
		return FormatValue(q) + " " + commodity
	default:
		return commodity + FormatValue(q)
	}
}

// ParseValueNumber parses a plain decimal number, allowing "," as a thousands separator.
func ParseValueNumber(v string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", ""))
}

// Error types

// BalanceError is returned by functions that validate transactions in some way when the transaction isn't balanced.
type BalanceError [2]int

func (err BalanceError) Error() string {
	if err[0] < 0 {
		return fmt.Sprintf("Transaction (defined on line %v) does not balance.", err[1])
	}
	return fmt.Sprintf("Transaction %v (defined on line %v) does not balance.", err[0], err[1])
}

// MultipleNullError is returned by functions that resolve or validate transactions when the transaction has
// more than one posting without an amount.
type MultipleNullError [2]int

func (err MultipleNullError) Error() string {
	if err[0] < 0 {
		return fmt.Sprintf("Transaction (defined on line %v) has multiple null postings.", err[1])
	}
	return fmt.Sprintf("Transaction %v (defined on line %v) has multiple null postings.", err[0], err[1])
}
