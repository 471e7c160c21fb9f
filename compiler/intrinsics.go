package compiler

import (
	"github.com/llir/llvm/ir"

	"github.com/NERVsystems/golc3/lc3"
)

// intrinsicNames is the runtime API whose bodies are trap sequences. These
// functions are never emitted; calls to them expand inline and their
// declarations are skipped by the module driver. The *Imm spellings are
// the names from the original C runtime header.
var intrinsicNames = map[string]bool{
	"printStr":        true,
	"printStrImm":     true,
	"printStrAddr":    true,
	"printChar":       true,
	"printCharImm":    true,
	"printCharAddr":   true,
	"integrateLC3Asm": true,
	"loadLabel":       true,
	"loadAddr":        true,
	"storeLabel":      true,
	"storeAddr":       true,
	"readLabelAddr":   true,
}

func isIntrinsicName(name string) bool {
	return intrinsicNames[name]
}

// lowerIntrinsic pattern-matches calls to the runtime API and expands them
// to trap sequences. It reports whether the call was one of the
// intrinsics; a matched intrinsic with the wrong arity, or a non-constant
// string where a label is required, is a hard error.
func (fl *funcLowerer) lowerIntrinsic(inst *ir.InstCall, callee *ir.Func) (bool, error) {
	name := callee.Name()
	if !isIntrinsicName(name) {
		return false, nil
	}

	arity := map[string]int{
		"storeLabel": 2,
		"storeAddr":  2,
	}
	want := arity[name]
	if want == 0 {
		want = 1
	}
	if len(inst.Args) != want {
		return true, unsupported(inst.LLString())
	}

	switch name {
	case "printStr", "printStrImm":
		arg := inst.Args[0]
		if s, ok := constString(arg); ok {
			fl.inst(lc3.OpLEA, "R0", valueLabel(fl.cur.strEntry(s)))
		} else {
			fl.inst(lc3.OpADD, "R0", "R5", lc3.Imm(fl.frame.OffsetOf(arg)))
		}
		fl.inst(lc3.OpPUTS)

	case "printStrAddr":
		fl.materialize(inst.Args[0], "R0")
		fl.inst(lc3.OpPUTS)

	case "printChar", "printCharImm":
		fl.materialize(inst.Args[0], "R0")
		fl.inst(lc3.OpOUT)

	case "printCharAddr":
		fl.materialize(inst.Args[0], "R1")
		fl.inst(lc3.OpLDR, "R0", "R1", lc3.Imm(0))
		fl.inst(lc3.OpOUT)

	case "integrateLC3Asm":
		s, ok := constString(inst.Args[0])
		if !ok || s == "" {
			return true, unsupported(inst.LLString())
		}
		fl.raw(s + "\n")

	case "loadLabel":
		label, ok := constString(inst.Args[0])
		if !ok || label == "" {
			return true, unsupported(inst.LLString())
		}
		fl.inst(lc3.OpLD, "R1", label)
		fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(fl.frame.OffsetOf(inst)))

	case "loadAddr":
		fl.materialize(inst.Args[0], "R1")
		fl.inst(lc3.OpLDR, "R1", "R1", lc3.Imm(0))
		fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(fl.frame.OffsetOf(inst)))

	case "storeLabel":
		label, ok := constString(inst.Args[1])
		if !ok || label == "" {
			return true, unsupported(inst.LLString())
		}
		fl.materialize(inst.Args[0], "R1")
		fl.inst(lc3.OpST, "R1", label)

	case "storeAddr":
		fl.materialize(inst.Args[0], "R1")
		if val, ok := constInt(inst.Args[1]); ok {
			fl.inst(lc3.OpSTI, "R1", valueLabel(fl.cur.intEntry(val)))
		} else {
			fl.inst(lc3.OpLDR, "R2", "R5", lc3.Imm(fl.frame.OffsetOf(inst.Args[1])))
			fl.inst(lc3.OpSTR, "R1", "R2", lc3.Imm(0))
		}

	case "readLabelAddr":
		label, ok := constString(inst.Args[0])
		if !ok || label == "" {
			return true, unsupported(inst.LLString())
		}
		fl.inst(lc3.OpLEA, "R1", label)
		fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(fl.frame.OffsetOf(inst)))
	}
	return true, nil
}
