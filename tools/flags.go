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
	"flag"
)

const (
	FlagDestFile    = 1 << iota // The output file
	FlagSourceFile              // The source data file for imports
	FlagMasterFile              // An existing ledger file to merge imports into
	FlagAccountName             // Account name
	FlagRunning                 // Chart/print the running balance
	FlagExplicit                // Write inferred amounts out
)

// CommonFlags is used to store the results from the common flags. Only the fields for flags that were
// registered are meaningful.
type CommonFlags struct {
	DestFile    string
	SourceFile  string
	MasterFile  string
	AccountName string
	Running     bool
	Explicit    bool
}

// SetFlags registers your choice of several common flags on f.
func (c *CommonFlags) SetFlags(f *flag.FlagSet, flags int) {
	if flags&FlagDestFile != 0 {
		f.StringVar(&c.DestFile, "dest", "", "The output file `path`. \"-\" is standard output.")
	}

	if flags&FlagSourceFile != 0 {
		f.StringVar(&c.SourceFile, "source", "-", "The data source file `path`. \"-\" is standard input.")
	}

	if flags&FlagMasterFile != 0 {
		f.StringVar(&c.MasterFile, "master", "", "An existing ledger file `path` to add new transactions to.")
	}

	if flags&FlagAccountName != 0 {
		f.StringVar(&c.AccountName, "account", "", "The `account` name.")
	}

	if flags&FlagRunning != 0 {
		f.BoolVar(&c.Running, "running", false, "Use the running balance instead of individual postings.")
	}

	if flags&FlagExplicit != 0 {
		f.BoolVar(&c.Explicit, "explicit", false, "Write the inferred amount on postings that left it out.")
	}
}
