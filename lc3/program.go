package lc3

import (
	"os"
	"strings"
)

// Program accumulates one complete LC-3 translation unit: the .ORIG
// envelope, code and data sections, and the closing .END.
type Program struct {
	buf strings.Builder
}

// Raw appends pre-rendered assembly text.
func (p *Program) Raw(text string) {
	p.buf.WriteString(text)
}

// Orig appends the .ORIG directive naming the load address.
func (p *Program) Orig(addr string) {
	p.buf.WriteString(Directive(".ORIG", addr))
}

// End appends the closing .END directive. No trailing newline: .END is the
// last token of the unit.
func (p *Program) End() {
	p.buf.WriteString("\t.END")
}

// String returns the assembled text.
func (p *Program) String() string {
	return p.buf.String()
}

// WriteFile commits the program to path. The text is written to a pending
// temporary first and renamed into place, so a partial unit never appears
// under the final name.
func (p *Program) WriteFile(path string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(p.String()), 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
