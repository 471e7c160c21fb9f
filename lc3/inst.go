package lc3

import (
	"strconv"
	"strings"
)

// Line renders one instruction line: a tab, the mnemonic padded with tabs,
// and the comma-joined operands. Mnemonics of up to three characters get a
// second tab so operand columns line up.
func Line(op Op, operands ...string) string {
	var b strings.Builder
	b.WriteByte('\t')
	b.WriteString(string(op))
	if len(operands) > 0 {
		if len(op) <= 3 {
			b.WriteString("\t\t")
		} else {
			b.WriteByte('\t')
		}
		b.WriteString(strings.Join(operands, ", "))
	}
	b.WriteByte('\n')
	return b.String()
}

// Label renders a column-zero label definition line.
func Label(name string) string {
	return name + "\n"
}

// Comment renders a comment line.
func Comment(text string) string {
	return "; " + text + "\n"
}

// Directive renders a tab-prefixed assembler directive line, e.g.
// "\t.ORIG\tx3000".
func Directive(name string, operands ...string) string {
	var b strings.Builder
	b.WriteByte('\t')
	b.WriteString(name)
	if len(operands) > 0 {
		b.WriteByte('\t')
		b.WriteString(strings.Join(operands, ", "))
	}
	b.WriteByte('\n')
	return b.String()
}

// Imm renders a decimal immediate operand, e.g. "#-7".
func Imm(n int) string {
	return "#" + strconv.Itoa(n)
}
