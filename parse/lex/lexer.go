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

// Package lex holds the character reader shared by the journal parser.
package lex

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// CharReader is a simple way to read from a rune source character by character, with location info and lookahead.
type CharReader struct {
	source io.RuneReader

	// The current character
	L   Location // Line and column
	C   rune
	EOF bool // true if current C and L are invalid, at end of input

	// The lookahead (next) character
	NL   Location
	NC   rune
	NEOF bool // true if NC and NL are invalid, will be at end of input with next advance
}

// NewCharReader returns a new CharReader over a string with the input preadvanced so that all fields are valid.
func NewCharReader(source string, line uint) *CharReader {
	return NewRawCharReader(strings.NewReader(source), line)
}

// NewRawCharReader returns a new CharReader with the input preadvanced so that all fields are valid.
// line is the line number of the first character.
func NewRawCharReader(source io.RuneReader, line uint) *CharReader {
	cr := &CharReader{source: source}

	// The first advance moves NL into L, so NL starts one column to the left of the input.
	cr.NL = Location(0).L(uint64(line))

	// prime the pump
	cr.Next()
	cr.Next()

	return cr
}

// Match returns true if C matches one of the chars in the string.
func (cr *CharReader) Match(chars string) bool {
	if cr.EOF {
		return false
	}
	return strings.ContainsRune(chars, cr.C)
}

// NMatch returns true if NC matches one of the chars in the string.
func (cr *CharReader) NMatch(chars string) bool {
	if cr.NEOF {
		return false
	}
	return strings.ContainsRune(chars, cr.NC)
}

// MatchEOL returns true at a newline or at the end of input.
func (cr *CharReader) MatchEOL() bool {
	return cr.EOF || cr.C == '\n'
}

// MatchAlpha returns true if C is an underscore or unicode letter
func (cr *CharReader) MatchAlpha() bool {
	if cr.EOF {
		return false
	}
	return cr.C == '_' || unicode.IsLetter(cr.C)
}

// MatchNumeric returns true if C is a decimal digit.
func (cr *CharReader) MatchNumeric() bool {
	if cr.EOF {
		return false
	}
	return cr.C >= '0' && cr.C <= '9'
}

// Next advances the reader one character position.
// C, L, and EOF gain the previous values of NC, NL, and NEOF, additionally a newly read character becomes NC.
// All carriage returns are simply ignored. A newline is reported on the line it ends, the character
// after it starts the next line at column 1.
func (cr *CharReader) Next() {
	if cr.EOF {
		return
	}
	if cr.NEOF {
		cr.EOF = true
		return
	}

	prev := cr.NC
	cr.C = cr.NC
	cr.L = cr.NL

	var err error
	for {
		cr.NC, _, err = cr.source.ReadRune()
		if err != nil {
			// err should only ever be io.EOF
			cr.NEOF = true
			return
		}
		if cr.NC != '\r' {
			break
		}
	}

	if prev == '\n' {
		cr.NL = cr.NL.LPlus().C(1)
		return
	}
	cr.NL = cr.NL.CPlus()
}

// Eat the given characters until something else is found or EOF.
func (cr *CharReader) Eat(chars string) {
	for cr.Match(chars) {
		cr.Next()
	}
}

// EatUntil eats all characters until one of the given chars are found or EOF.
func (cr *CharReader) EatUntil(chars string) {
	for !cr.EOF && !cr.Match(chars) {
		cr.Next()
	}
}

// ReadMatch reads all matching characters into a buffer until a nonmatching character is found or EOF.
func (cr *CharReader) ReadMatch(chars string, buf []rune) []rune {
	for cr.Match(chars) {
		buf = append(buf, cr.C)
		cr.Next()
	}
	return buf
}

// ReadMatchLimit reads matching characters into a buffer until a nonmatching character is found,
// limit characters were read, or EOF. Returns the number of characters read.
func (cr *CharReader) ReadMatchLimit(chars string, buf []rune, limit int) (int, []rune) {
	i := 0
	for i < limit && cr.Match(chars) {
		buf = append(buf, cr.C)
		cr.Next()
		i++
	}
	return i, buf
}

// ReadUntil reads all characters into a buffer until a matching character is found or EOF.
func (cr *CharReader) ReadUntil(chars string, buf []rune) []rune {
	for !cr.EOF && !cr.Match(chars) {
		buf = append(buf, cr.C)
		cr.Next()
	}
	return buf
}

// Location represents a line and column number for a given character in the lexer input.
type Location uint64

const (
	lineMask   = 0x0000ffffffffffff
	columnMask = 0xffff000000000000
)

// Line returns a 48 bit line number.
func (l Location) Line() uint64 {
	return uint64(l & lineMask)
}

// Column returns a 16 bit column number.
func (l Location) Column() uint16 {
	return uint16((l & columnMask) >> 48)
}

func (l Location) String() string {
	return fmt.Sprintf("%v:%v", l.Line(), l.Column())
}

// L is a composite constructor for a location, setting the line part. If you pass in an integer that is too
// large to fit the 48 bit storage area, 0 will be used instead.
func (l Location) L(i uint64) Location {
	if i&columnMask != 0 {
		i = 0
	}
	return l&columnMask | Location(i)
}

// C is a composite constructor for a location, setting the column part.
func (l Location) C(i uint16) Location {
	return l&lineMask | Location(i)<<48
}

// LPlus increments the line portion of a Location and returns the result.
func (l Location) LPlus() Location {
	return l.L(l.Line() + 1)
}

// CPlus increments the column portion of a Location and returns the result.
func (l Location) CPlus() Location {
	return l.C(l.Column() + 1)
}
