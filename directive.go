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
	"bytes"

	"github.com/samuellwn/ledgerplot/parse/lex"
)

// Directive is a simple type to represent a partially parsed, but not validated, command directive such as
// "account" or "commodity". Directives never reach Accounts, so they do not affect balances or charts.
//
// The parser stores one entry in Lines per indented line, in order and with no blank lines in between, so
// the n-th sub line always sits n+1 lines below Location. File.DeclaredAccounts relies on this to point
// errors at the offending alias.
type Directive struct {
	Type        string       // The keyword that starts the directive.
	Argument    string       // Any remaining content that was on the first line of the directive.
	Lines       []string     // Subsequent indented lines, trimmed. Stored here unparsed.
	FoundBefore int          // The transaction index this directive precedes.
	Location    lex.Location // Line and column this directive begins at.
}

// LineLocation returns the location of sub line i (an index into Lines). The column is that of the
// directive keyword.
func (d *Directive) LineLocation(i int) lex.Location {
	return d.Location.L(d.Location.Line() + uint64(i) + 1)
}

// String writes the directive back out in journal form, sub lines indented with a tab.
func (d *Directive) String() string {
	buf := new(bytes.Buffer)

	buf.WriteString(d.Type)
	if d.Argument != "" {
		buf.WriteRune(' ')
		buf.WriteString(d.Argument)
	}
	buf.WriteRune('\n')

	for _, line := range d.Lines {
		buf.WriteRune('\t')
		buf.WriteString(line)
		buf.WriteRune('\n')
	}

	return buf.String()
}
