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
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Accounts maps account names to the quantities posted to them, in the order the postings were applied.
//
// An Accounts value belongs to a single run and is not safe for concurrent use. Sequences only ever grow:
// nothing is removed, merged, or reordered once appended. Account names are matched exactly.
//
// The zero value is ready to use.
type Accounts struct {
	postings map[string][]decimal.Decimal
}

// NewAccounts returns an empty Accounts.
func NewAccounts() *Accounts {
	return &Accounts{postings: map[string][]decimal.Decimal{}}
}

// Apply resolves the transaction and appends each resolved quantity to its account. Two postings to the same
// account give two entries. If the transaction cannot be resolved nothing is appended.
func (a *Accounts) Apply(t *Transaction) error {
	resolved, err := t.Resolve()
	if err != nil {
		return err
	}

	if a.postings == nil {
		a.postings = map[string][]decimal.Decimal{}
	}
	for _, rp := range resolved {
		a.postings[rp.Account] = append(a.postings[rp.Account], rp.Quantity)
	}
	return nil
}

// ApplyFile applies every transaction in f, in order. It stops at the first transaction that cannot be
// resolved; transactions before it stay applied.
func (a *Accounts) ApplyFile(f *File) error {
	for i := range f.T {
		err := a.Apply(&f.T[i])
		if _, ok := err.(MultipleNullError); ok {
			return MultipleNullError([2]int{i, f.T[i].Line})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Get returns the quantities posted to an account, oldest first. The slice is owned by Accounts and must not be
// modified. The bool is false if the account never received a posting.
func (a *Accounts) Get(account string) ([]decimal.Decimal, bool) {
	qs, ok := a.postings[account]
	return qs, ok
}

// Names returns all account names that received at least one posting, sorted.
func (a *Accounts) Names() []string {
	names := maps.Keys(a.postings)
	slices.Sort(names)
	return names
}

// Balances returns the sum of all postings for every account.
func (a *Accounts) Balances() map[string]decimal.Decimal {
	rtn := make(map[string]decimal.Decimal, len(a.postings))
	for account, qs := range a.postings {
		rtn[account] = decimal.Sum(decimal.Zero, qs...)
	}
	return rtn
}

// Series is the ordered list of quantities posted to one account, with the bounds needed to scale a chart.
// The index of a value is its position in processing order, not a date.
type Series struct {
	Account string
	Values  []decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}

// Series returns the posting series for an account, or ErrAccountNotFound.
func (a *Accounts) Series(account string) (Series, error) {
	qs, ok := a.postings[account]
	if !ok {
		return Series{}, ErrAccountNotFound(account)
	}

	// Every entry is created along with its first value, so qs is never empty here.
	return Series{
		Account: account,
		Values:  qs,
		Min:     decimal.Min(qs[0], qs[1:]...),
		Max:     decimal.Max(qs[0], qs[1:]...),
	}, nil
}

// Running returns a new series where each value is the sum of all values up to and including it.
func (s Series) Running() Series {
	if len(s.Values) == 0 {
		return s
	}

	values := make([]decimal.Decimal, len(s.Values))
	sum := decimal.Zero
	for i, v := range s.Values {
		sum = sum.Add(v)
		values[i] = sum
	}
	return Series{
		Account: s.Account,
		Values:  values,
		Min:     decimal.Min(values[0], values[1:]...),
		Max:     decimal.Max(values[0], values[1:]...),
	}
}

type sumTree struct {
	children map[string]*sumTree
	value    decimal.Decimal // Total of this account and everything under it.
	direct   bool            // The account itself received postings.
}

func (st *sumTree) render(name, lvl, pad string, res [][]string) [][]string {
	// Collapse chains of single children into one row (Assets:Bank:Checking). An account with postings of its
	// own keeps its row so its total stays visible.
	if len(st.children) == 1 && !st.direct {
		for key, child := range st.children {
			if name != "" {
				key = name + ":" + key
			}
			return child.render(key, lvl, pad, res)
		}
	}

	padding := ""
	if name != "" {
		padding = pad
		res = append(res, []string{lvl + name, FormatValue(st.value)})
	}

	keys := maps.Keys(st.children)
	slices.Sort(keys)

	for _, key := range keys {
		res = st.children[key].render(key, lvl+padding, pad, res)
	}
	return res
}

// FormatSums takes a map of accounts to sums and turns it into a list of name/value pairs
// with indentation applied to the names. Parent accounts show the total of their children.
func FormatSums(accounts map[string]decimal.Decimal, pad string) [][]string {
	root := &sumTree{}

	for account, value := range accounts {
		level := root
		for _, part := range strings.Split(account, ":") {
			if level.children == nil {
				level.children = map[string]*sumTree{}
			}
			if level.children[part] == nil {
				level.children[part] = &sumTree{}
			}
			level.children[part].value = level.children[part].value.Add(value)
			level = level.children[part]
		}
		level.direct = true
	}

	return root.render("", "", pad, nil)
}

// ErrAccountNotFound is returned when asking for an account that never received a posting.
type ErrAccountNotFound string

func (err ErrAccountNotFound) Error() string {
	return fmt.Sprintf("Account %q could not be found.", string(err))
}
