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

package chart

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledger "github.com/samuellwn/ledgerplot"
)

func series(values ...int64) ledger.Series {
	accounts := ledger.NewAccounts()
	for _, v := range values {
		tr := &ledger.Transaction{Postings: []ledger.Posting{
			{Account: "Assets:Checking", Amount: ledger.Present(decimal.NewFromInt(v))},
			{Account: "Equity", Amount: ledger.Absent()},
		}}
		if err := accounts.Apply(tr); err != nil {
			panic(err)
		}
	}
	s, err := accounts.Series("Assets:Checking")
	if err != nil {
		panic(err)
	}
	return s
}

func TestRenderPNG(t *testing.T) {
	buf := new(bytes.Buffer)
	err := Render(buf, series(-1, 5, 3), Options{Width: 640, Height: 480, Padding: 10, Format: PNG})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderSVG(t *testing.T) {
	buf := new(bytes.Buffer)
	err := Render(buf, series(7), Options{Width: 640, Height: 480, Format: SVG})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "Balance for Assets:Checking")
}

func TestRenderEmpty(t *testing.T) {
	err := Render(new(bytes.Buffer), ledger.Series{Account: "A"}, Options{Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestPoints(t *testing.T) {
	xs, ys := points(series(2, -4))
	assert.Equal(t, []float64{0, 1}, xs)
	assert.Equal(t, []float64{2, -4}, ys)

	xs, ys = points(series(3))
	assert.Equal(t, []float64{0, 1}, xs)
	assert.Equal(t, []float64{3, 3}, ys)
}

func TestYRange(t *testing.T) {
	lo, hi := yRange(series(-1, 5), 10)
	assert.Equal(t, -11.0, lo)
	assert.Equal(t, 15.0, hi)

	lo, hi = yRange(series(4, 4), 0)
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, SVG, FormatFor("out/balance.svg"))
	assert.Equal(t, SVG, FormatFor("BALANCE.SVG"))
	assert.Equal(t, PNG, FormatFor("balance.png"))
	assert.Equal(t, PNG, FormatFor("-"))
}
