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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	ledger "github.com/samuellwn/ledgerplot"
)

// CSVOptions describes the layout of a CSV file for FromCSV.
type CSVOptions struct {
	NoHeader bool // The file has no header, fields are given by index.

	DateFmt     string   // Example date for Mon Jan 2, 2006 in the file's date format.
	DateField   string   // Name (or index) of the date field.
	AmountField string   // Name (or index) of the amount field.
	DescFields  []string // Names (or indices) of fields joined to make the description.

	AccountFrom string // Positive amounts take from this account. It gets the inferred posting.
	AccountTo   string // Positive amounts add to this account.
}

// DefaultCSVOptions returns the options fromcsv starts with.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		DateFmt:     "01/02/2006",
		DateField:   "date",
		AmountField: "amount",
		DescFields:  nil,
		AccountFrom: "Account:From",
		AccountTo:   "Account:To",
	}
}

// FromCSV converts CSV records to a ledger file. Every record becomes a cleared transaction with the amount
// posted to AccountTo and a posting without an amount to AccountFrom.
func FromCSV(r io.Reader, opts CSVOptions) (*ledger.File, error) {
	reader := csv.NewReader(r)

	dateIx, amountIx := -1, -1
	descIx := []int{}

	if !opts.NoHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}

		for i, field := range header {
			field = strings.TrimSpace(field)
			if field == opts.DateField {
				dateIx = i
			}
			if field == opts.AmountField {
				amountIx = i
			}
			if slices.Contains(opts.DescFields, field) {
				descIx = append(descIx, i)
			}
		}
	} else {
		var err error
		if dateIx, err = strconv.Atoi(opts.DateField); err != nil {
			return nil, errors.New("-date argument is not a number")
		}
		if amountIx, err = strconv.Atoi(opts.AmountField); err != nil {
			return nil, errors.New("-amount argument is not a number")
		}
		for _, desc := range opts.DescFields {
			ix, err := strconv.Atoi(desc)
			if err != nil {
				return nil, errors.New("-desc argument is not a number")
			}
			if ix < 0 {
				return nil, fmt.Errorf("-desc index %v is negative", ix)
			}
			descIx = append(descIx, ix)
		}
		slices.Sort(descIx)
	}

	if dateIx < 0 {
		return nil, errors.New("date field not found or specified")
	}
	if amountIx < 0 {
		return nil, errors.New("amount field not found or specified")
	}
	if len(descIx) == 0 {
		return nil, errors.New("desc field not found or specified")
	}

	minLen := dateIx
	if amountIx > minLen {
		minLen = amountIx
	}
	if last := descIx[len(descIx)-1]; last > minLen {
		minLen = last
	}
	minLen++

	trs := []ledger.Transaction{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) < minLen {
			return nil, fmt.Errorf("record on line %v has too few fields", line)
		}

		date, err := time.Parse(opts.DateFmt, strings.TrimSpace(record[dateIx]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse date on line %v: %s", line, record[dateIx])
		}

		amount, err := parseCSVAmount(record[amountIx])
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount on line %v: %s", line, record[amountIx])
		}

		desc := make([]string, 0, len(descIx))
		for _, ix := range descIx {
			desc = append(desc, strings.TrimSpace(record[ix]))
		}

		trs = append(trs, ledger.Transaction{
			Description: strings.Join(desc, " "),
			Date:        date,
			Status:      ledger.StatusClear,
			KVPairs: map[string]string{
				"ID":  <-ledger.IDService,
				"RID": <-ledger.IDService,
			},
			Postings: []ledger.Posting{
				{
					Account: opts.AccountTo,
					Amount:  ledger.Present(amount),
				},
				{
					Account: opts.AccountFrom,
					Amount:  ledger.Absent(),
				},
			},
		})
	}

	return &ledger.File{T: trs, D: nil}, nil
}

// parseCSVAmount reads bank style amounts: "$1,234.50", "(12.00)" for negatives, "-3".
func parseCSVAmount(s string) (decimal.Decimal, error) {
	clean := strings.Builder{}
	negate := false
	for _, chr := range s {
		switch chr {
		case '$', ')', ',', ' ':
			// eat all
		case '(':
			negate = true
		default:
			clean.WriteRune(chr)
		}
	}

	amount, err := ledger.ParseValueNumber(clean.String())
	if err != nil {
		return amount, err
	}
	if negate {
		amount = amount.Neg()
	}
	return amount, nil
}
