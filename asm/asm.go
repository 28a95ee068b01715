package asm

import (
	"errors"
	"strings"

	"c8/diag"
)

// ErrHadErrors is returned by Assemble when scanning or parsing reported
// at least one error. The individual errors were already written through
// the diagnostics handle.
var ErrHadErrors = errors.New("assembly failed")

// Normalize prepares raw source text for scanning: literal tabs become four
// spaces so that columns in diagnostics line up. Mnemonics, register names
// and identifiers match case-insensitively in the scanner itself, which
// keeps string literal bytes intact.
func Normalize(source string) string {
	return strings.ReplaceAll(source, "\t", "    ")
}

// Assemble runs the full pipeline over one source file: normalize, scan,
// parse, generate. Scanner and parser errors are batched (every error in
// the file is reported before giving up); the first codegen error stops the
// run. The returned bytes are the ROM image to load at 0x200.
func Assemble(source string, d *diag.Diagnostics) ([]byte, error) {
	source = Normalize(source)
	d.Init(source)

	tokens := ScanTokens(source, d)
	if d.HadError() {
		return nil, ErrHadErrors
	}

	statements := Parse(tokens, d)
	if d.HadError() {
		return nil, ErrHadErrors
	}

	rom, cerr := Codegen(statements, d)
	if cerr != nil {
		d.Error(cerr.Span, cerr.Error())
		return nil, cerr
	}

	return rom, nil
}
