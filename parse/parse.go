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

// Package parse reads Ledger CLI journals.
package parse

import (
	"strings"
	"time"

	ledger "github.com/samuellwn/ledgerplot"
	"github.com/samuellwn/ledgerplot/parse/lex"
)

/*

Each element is either an xact, a directive, or a comment.

Automated and periodic transactions are not supported. Lines that start with a digit are transactions,
lines that start with a comment character are skipped, anything else at the start of a line is a directive.

*/

// ParseLedger parses a ledger file from a CharReader.
func ParseLedger(cr *lex.CharReader) (*ledger.File, error) {
	f := &ledger.File{T: []ledger.Transaction{}, D: []ledger.Directive{}}
	for !cr.EOF {
		switch {
		case cr.C == '\n':
			cr.Next()

		case cr.Match(" \t"):
			// Blank lines may hold white space. Anything else indented here has no transaction to belong to.
			cr.Eat(" \t")
			if cr.Match(";#") {
				cr.EatUntil("\n")
			}
			if !cr.MatchEOL() {
				return nil, ErrMalformed(cr.L.Line())
			}
			cr.Next()

		case cr.Match(";#%|*"):
			// Consume comments that are not part of the body of a transaction.
			cr.EatUntil("\n")
			cr.Next()

		case cr.MatchNumeric():
			tr, err := parseTransaction(cr)
			if err != nil {
				return nil, err
			}
			f.T = append(f.T, *tr)

		default:
			d := parseDirective(cr)
			d.FoundBefore = len(f.T)
			f.D = append(f.D, *d)
		}
	}
	return f, nil
}

// ParseLedgerString is ParseLedger for input held in a string.
func ParseLedgerString(input string) (*ledger.File, error) {
	return ParseLedger(lex.NewCharReader(input, 1))
}

func parseDirective(cr *lex.CharReader) *ledger.Directive {
	d := &ledger.Directive{Location: cr.L}

	d.Type = string(cr.ReadUntil(" \t\n", nil))
	cr.Eat(" \t")
	d.Argument = readLineTrimmed(cr)

	// Indented lines that follow belong to the directive.
	for cr.Match(" \t") {
		cr.Eat(" \t")
		line := readLineTrimmed(cr)
		if line == "" {
			break
		}
		d.Lines = append(d.Lines, line)
	}
	return d
}

func parseTransaction(cr *lex.CharReader) (*ledger.Transaction, error) {
	current := &ledger.Transaction{
		Tags:    map[string]bool{},
		KVPairs: map[string]string{},
		Line:    int(cr.L.Line()),
	}

	// Parse the leading dates(s)
	date, err := ParseDate(cr)
	if err != nil {
		return nil, err
	}
	current.Date = date
	if cr.Match("=") {
		cr.Next()
		date, err := ParseDate(cr)
		if err != nil {
			return nil, err
		}
		current.ClearDate = date
	}

	cr.Eat(" \t")

	// The optional cleared indicator
	switch {
	case cr.Match("*"):
		current.Status = ledger.StatusClear
		cr.Next()
	case cr.Match("!"):
		current.Status = ledger.StatusPending
		cr.Next()
	default:
		current.Status = ledger.StatusUndefined
	}

	cr.Eat(" \t")

	// An optional "code"
	if cr.Match("(") {
		cr.Next()
		code := strings.TrimSpace(string(cr.ReadUntil(")\n", nil)))
		if !cr.Match(")") {
			return nil, ErrMalformed(cr.L.Line())
		}
		current.Code = code
		cr.Next()
		cr.Eat(" \t")
	}

	// And, to cap the first line off, the description.
	current.Description = readLineTrimmed(cr)

	// Now parse the individual postings or comment lines.
	for cr.Match(" \t") {
		cr.Eat(" \t")

		// A line of nothing but white space ends the transaction.
		if cr.MatchEOL() {
			cr.Next()
			break
		}

		// Is a comment that is attached to the transaction
		if cr.Match(";") {
			cr.Next()
			line := int(cr.L.Line())
			if err := parseComment(current, readLineTrimmed(cr), line); err != nil {
				return nil, err
			}
			continue
		}

		post, err := parsePosting(cr)
		if err != nil {
			return nil, err
		}
		current.Postings = append(current.Postings, *post)
	}

	return current, nil
}

// parseComment files a transaction comment line as tags, a key/value pair, or a plain comment.
func parseComment(tr *ledger.Transaction, text string, line int) error {
	switch {
	case strings.HasPrefix(text, ":"):
		if !strings.HasSuffix(text, ":") || len(text) < 2 {
			return ErrMalformedTagLine(line)
		}
		for _, tag := range strings.Split(text[1:len(text)-1], ":") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				tr.Tags[tag] = true
			}
		}

	case isKVPair(text):
		key, value, _ := strings.Cut(text, ":")
		tr.KVPairs[key] = strings.TrimSpace(value)

	default:
		tr.Comments = append(tr.Comments, text)
	}
	return nil
}

// isKVPair is true for "Key: Value" lines where the key has no white space.
func isKVPair(text string) bool {
	key, value, ok := strings.Cut(text, ":")
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return false
	}
	return value == "" || value[0] == ' ' || value[0] == '\t'
}

func parsePosting(cr *lex.CharReader) (*ledger.Posting, error) {
	post := &ledger.Posting{}

	// The optional cleared indicator
	switch {
	case cr.Match("*"):
		post.Status = ledger.StatusClear
		cr.Next()
	case cr.Match("!"):
		post.Status = ledger.StatusPending
		cr.Next()
	default:
		post.Status = ledger.StatusUndefined
	}

	cr.Eat(" \t")

	// Account names *can* include spaces, but only one in a row. Two or more spaces, a tab, or the end of the
	// line ends the name.
	buf := []rune{}
	for !cr.MatchEOL() && cr.C != '\t' && !(cr.C == ' ' && (cr.NEOF || cr.NMatch(" \n"))) {
		buf = append(buf, cr.C)
		cr.Next()
	}
	if len(buf) == 0 {
		return nil, ErrMalformed(cr.L.Line())
	}
	post.Account = string(buf)

	cr.Eat(" \t")

	if !cr.MatchEOL() && !cr.Match(";") {
		if err := parseAmount(cr, post); err != nil {
			return nil, err
		}
		cr.Eat(" \t")

		// Cost (@, @@) and balance assertions (=) are not tracked.
		if cr.Match("@=") {
			cr.EatUntil(";\n")
		}
	}

	// Optional note
	if cr.Match(";") {
		cr.Next()
		post.Note = readLineTrimmed(cr)
		return post, nil
	}

	if !cr.MatchEOL() {
		return nil, ErrMalformed(cr.L.Line())
	}
	cr.Next()
	return post, nil
}

const (
	numberChars    = "0123456789.,"
	commodityStops = "0123456789.,-+ \t\n;@="
)

// parseAmount reads an amount such as "$20.00", "$-20", "-$20", "20 EUR", or "1,000.5€".
func parseAmount(cr *lex.CharReader, post *ledger.Posting) error {
	line := cr.L.Line()

	neg := false
	switch {
	case cr.Match("-"):
		neg = true
		cr.Next()
	case cr.Match("+"):
		cr.Next()
	}

	// Prefix commodity
	prefix := readCommodity(cr)
	if prefix != "" {
		cr.Eat(" \t")
		if cr.Match("-") {
			neg = !neg
			cr.Next()
		}
	}

	number := string(cr.ReadMatch(numberChars, nil))
	if number == "" {
		return ErrBadAmount(line)
	}
	q, err := ledger.ParseValueNumber(number)
	if err != nil {
		return ErrBadAmount(line)
	}
	if neg {
		q = q.Neg()
	}
	post.Amount = ledger.Present(q)

	if prefix != "" {
		post.Commodity = prefix
		return nil
	}

	// Suffix commodity, possibly after white space
	cr.Eat(" \t")
	if suffix := readCommodity(cr); suffix != "" {
		post.Commodity = suffix
		post.Suffix = true
	}
	return nil
}

// readCommodity reads a quoted commodity or a run of characters that cannot be part of a number.
func readCommodity(cr *lex.CharReader) string {
	if cr.Match("\"") {
		cr.Next()
		c := cr.ReadUntil("\"\n", nil)
		if cr.Match("\"") {
			cr.Next()
		}
		return string(c)
	}
	return string(cr.ReadUntil(commodityStops, nil))
}

// readLineTrimmed reads the rest of the line, consumes the newline, and returns the text with the white space
// trimmed from both ends.
func readLineTrimmed(cr *lex.CharReader) string {
	ln := cr.ReadUntil("\n", nil)
	cr.Next()
	return strings.TrimSpace(string(ln))
}

// ParseDate reads a date (in yyyy/mm/dd format) from the CharReader. The separator may also be "-" or ".",
// and the month and day may be a single digit.
func ParseDate(cr *lex.CharReader) (time.Time, error) {
	var t time.Time
	line := cr.L.Line()

	n, date := cr.ReadMatchLimit("0123456789", nil, 4)
	if n != 4 {
		return t, ErrBadDate(line)
	}

	for i := 0; i < 2; i++ {
		if cr.EOF {
			return t, ErrUnexpectedEnd(line)
		}
		if !cr.Match("/-.") {
			return t, ErrBadDate(line)
		}
		date = append(date, '/')
		cr.Next()

		n, date = cr.ReadMatchLimit("0123456789", date, 2)
		if n == 0 {
			return t, ErrBadDate(line)
		}
	}

	t, err := time.Parse("2006/1/2", string(date))
	if err != nil {
		return t, ErrBadDate(line)
	}
	return t, nil
}
