// Package compiler lowers LLVM IR modules onto the LC-3 instruction set.
//
// The input is an in-memory *ir.Module from llir/llvm; the output is a
// single LC-3 assembly unit. Every SSA value is spilled to a stack-frame
// slot under a fixed register convention (R5 frame pointer, R6 stack
// pointer, R7 link register, R0-R4 scratch), and operations the hardware
// lacks (multiply, divide, shifts, logical or) are expanded into loops over
// the primitive ADD/AND/NOT set.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"

	"github.com/NERVsystems/golc3/lc3"
)

// Config controls emission.
type Config struct {
	StartAddr string // .ORIG operand (default x3000)
	StackBase string // initial stack pointer (default xFE00)
	SignedMul bool   // absolute-value preamble on mul expansion
	NoComment bool   // suppress IR echo comments and register hints
}

// Compiler lowers one module at a time. Block labels and the VALUE/temp
// label counters are module-wide so every emitted label is unique within
// the assembly unit; per-function state lives in funcLowerer.
type Compiler struct {
	cfg Config

	blockLabels map[*ir.Block]string
	blockSeq    int
	valueID     int
	tempID      int
}

// New creates a Compiler, filling in the default start address and stack
// base where cfg leaves them empty.
func New(cfg Config) *Compiler {
	if cfg.StartAddr == "" {
		cfg.StartAddr = "x3000"
	}
	if cfg.StackBase == "" {
		cfg.StackBase = "xFE00"
	}
	return &Compiler{
		cfg:         cfg,
		blockLabels: make(map[*ir.Block]string),
	}
}

// Compile lowers m to a complete LC-3 assembly unit. The input module is
// canonicalized in place. On any unsupported construct the whole unit is
// abandoned: there is no partial output.
func (c *Compiler) Compile(m *ir.Module) (*lc3.Program, error) {
	prog := &lc3.Program{}

	if !c.cfg.NoComment {
		prog.Raw(lc3.Comment("This file is generated automatically by golc3."))
		prog.Raw("\n")
		prog.Raw(lc3.Comment("R6 : stack pointer"))
		prog.Raw(lc3.Comment("R5 : frame pointer"))
		prog.Raw("\n")
	}
	prog.Orig(c.cfg.StartAddr)

	// The boot trampoline: point R6 at the stack base and jump to main's
	// entry block. The STACK_BASE word sits between the trampoline and the
	// function bodies so it is never executed.
	if mainFn := findMain(m); mainFn != nil {
		entry := c.blockLabel(mainFn, mainFn.Blocks[0])
		prog.Raw(lc3.Line(lc3.OpLD, string(lc3.R6), "STACK_BASE"))
		prog.Raw(lc3.Line(lc3.OpBR, entry))
		prog.Raw("\n")
		prog.Raw(lc3.Fill("STACK_BASE", c.cfg.StackBase))
		prog.Raw("\n")
	}

	for _, f := range m.Funcs {
		if len(f.Blocks) == 0 || isIntrinsicName(f.Name()) {
			continue
		}
		text, err := c.compileFunc(f)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name(), err)
		}
		prog.Raw(text)
	}

	prog.End()
	return prog, nil
}

// compileFunc canonicalizes and lowers a single defined function.
func (c *Compiler) compileFunc(f *ir.Func) (string, error) {
	if len(f.Params) > 5 {
		return "", unsupported(f.Ident() + " takes more than five arguments")
	}
	c.canonicalizeFunc(f)
	fl := newFuncLowerer(f, c)
	return fl.lower()
}

func findMain(m *ir.Module) *ir.Func {
	for _, f := range m.Funcs {
		if f.Name() == "main" && len(f.Blocks) > 0 {
			return f
		}
	}
	return nil
}

// blockLabel interns bb, assigning "<func>_<irname>_<seq>" on first use.
// The module-wide sequence number keeps labels unique even when IR-level
// block names collide across functions.
func (c *Compiler) blockLabel(f *ir.Func, bb *ir.Block) string {
	if l, ok := c.blockLabels[bb]; ok {
		return l
	}
	c.blockSeq++
	l := sanitizeName(f.Name()) + "_" + sanitizeName(bb.Name()) + "_" + strconv.Itoa(c.blockSeq)
	c.blockLabels[bb] = l
	return l
}

// funcLabel is the callee-facing label of a function, so JSR resolves by
// name across functions.
func funcLabel(f *ir.Func) string {
	return sanitizeName(f.Name())
}

func (c *Compiler) nextValueID() int {
	c.valueID++
	return c.valueID
}

// nextTemp mints a number for an expansion-internal label. One counter
// serves all prefixes, so every temp label is unique module-wide.
func (c *Compiler) nextTemp() int {
	c.tempID++
	return c.tempID
}

// sanitizeName rewrites an IR identifier into an assembler-safe label:
// anything outside [A-Za-z0-9_] becomes '_'.
func sanitizeName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z',
			ch >= '0' && ch <= '9', ch == '_':
			b.WriteByte(ch)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// constInt extracts the signed value of a constant integer operand.
func constInt(v value.Value) (int64, bool) {
	if ci, ok := v.(*constant.Int); ok {
		return ci.X.Int64(), true
	}
	return 0, false
}

// constString extracts the bytes of a constant-data string operand, a
// global initialized with a character array (possibly behind a constant
// getelementptr), with trailing NULs trimmed.
func constString(v value.Value) (string, bool) {
	g, ok := v.(*ir.Global)
	if !ok {
		ce, okGEP := v.(*constant.ExprGetElementPtr)
		if !okGEP {
			return "", false
		}
		g, ok = ce.Src.(*ir.Global)
		if !ok {
			return "", false
		}
	}
	if g.Init == nil {
		return "", false
	}
	ca, ok := g.Init.(*constant.CharArray)
	if !ok {
		return "", false
	}
	return strings.TrimRight(string(ca.X), "\x00"), true
}
