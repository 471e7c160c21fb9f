package compiler

import (
	"strconv"
	"strings"

	"github.com/NERVsystems/golc3/lc3"
)

// pool is the constant pool of one basic block. Each integer or string
// constant the block references gets exactly one VALUE_<id> entry, emitted
// into the pool buffer on first use and reused on later references. Ids
// come from the compiler's module-wide counter so VALUE labels never
// collide across blocks or functions.
//
// Entries are keyed by content, not by IR object identity: the host IR
// library does not unique constants, so two textual occurrences of the
// same literal are distinct objects.
type pool struct {
	comp *Compiler
	ints map[int64]int
	strs map[string]int
	buf  strings.Builder
}

func newPool(c *Compiler) *pool {
	return &pool{
		comp: c,
		ints: make(map[int64]int),
		strs: make(map[string]int),
	}
}

// intEntry returns the VALUE id holding val, emitting its .FILL on first use.
func (p *pool) intEntry(val int64) int {
	if id, ok := p.ints[val]; ok {
		return id
	}
	id := p.comp.nextValueID()
	p.ints[val] = id
	p.buf.WriteString(lc3.Fill(valueLabel(id), "#"+strconv.FormatInt(val, 10)))
	return id
}

// strEntry returns the VALUE id holding s as a .STRINGZ, emitting it on
// first use.
func (p *pool) strEntry(s string) int {
	if id, ok := p.strs[s]; ok {
		return id
	}
	id := p.comp.nextValueID()
	p.strs[s] = id
	p.buf.WriteString(lc3.Stringz(valueLabel(id), s))
	return id
}

// empty reports whether the block referenced no constants.
func (p *pool) empty() bool {
	return p.buf.Len() == 0
}

// text returns the serialized pool, emitted at the end of the block.
func (p *pool) text() string {
	return p.buf.String()
}

func valueLabel(id int) string {
	return "VALUE_" + strconv.Itoa(id)
}
