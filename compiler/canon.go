package compiler

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// canonicalizeFunc rewrites f in place into the shapes the lowering
// handles. Three sweeps: intrinsic expansion, compare/sub normalization,
// then branch and shift rewrites. Each sweep grabs the instruction before
// inspecting it so self-replacement is safe, and every rewrite replaces
// all uses before the old instruction is dropped. Running the
// canonicalizer a second time changes nothing.
func (c *Compiler) canonicalizeFunc(f *ir.Func) {
	c.canonIntrinsics(f)
	c.canonCompares(f)
	c.canonBranches(f)
}

// canonIntrinsics lowers min/max intrinsics to icmp+select and drops
// lifetime markers.
func (c *Compiler) canonIntrinsics(f *ir.Func) {
	for _, b := range f.Blocks {
		var out []ir.Instruction
		for i := 0; i < len(b.Insts); i++ {
			inst := b.Insts[i]
			call, ok := inst.(*ir.InstCall)
			if !ok {
				out = append(out, inst)
				continue
			}
			name := calleeName(call)
			if strings.HasPrefix(name, "llvm.lifetime.") {
				continue
			}
			if pred, ok := minMaxPred(name); ok && len(call.Args) == 2 {
				cmp := ir.NewICmp(pred, call.Args[0], call.Args[1])
				cmp.SetName(call.Name() + ".cmp")
				sel := ir.NewSelect(cmp, call.Args[0], call.Args[1])
				sel.LocalIdent = call.LocalIdent
				out = append(out, cmp, sel)
				replaceUses(f, call, sel)
				continue
			}
			out = append(out, inst)
		}
		b.Insts = out
	}
}

// canonCompares puts constants on the right of every icmp and rewrites
// constant subtraction into addition of the negated constant.
func (c *Compiler) canonCompares(f *ir.Func) {
	for _, b := range f.Blocks {
		for i := 0; i < len(b.Insts); i++ {
			switch inst := b.Insts[i].(type) {
			case *ir.InstICmp:
				if _, ok := constInt(inst.X); ok {
					if _, ok := constInt(inst.Y); !ok {
						inst.X, inst.Y = inst.Y, inst.X
						inst.Pred = swappedPred(inst.Pred)
					}
				}
			case *ir.InstSub:
				k, ok := constInt(inst.Y)
				if !ok {
					continue
				}
				it, ok := inst.Y.Type().(*types.IntType)
				if !ok {
					continue
				}
				add := ir.NewAdd(inst.X, constant.NewInt(it, -k))
				add.LocalIdent = inst.LocalIdent
				b.Insts[i] = add
				replaceUses(f, inst, add)
			}
		}
	}
}

// canonBranches rewrites equality branches into one-case switches, erases
// trunc (the target is 16-bit throughout), turns constant lshr into udiv,
// and turns provably disjoint or into add.
func (c *Compiler) canonBranches(f *ir.Func) {
	for _, b := range f.Blocks {
		for i := 0; i < len(b.Insts); i++ {
			switch inst := b.Insts[i].(type) {
			case *ir.InstTrunc:
				replaceUses(f, inst, inst.From)
				b.Insts = append(b.Insts[:i], b.Insts[i+1:]...)
				i--
			case *ir.InstLShr:
				k, ok := constInt(inst.Y)
				if !ok || k < 0 || k > 15 {
					continue
				}
				it, ok := inst.X.Type().(*types.IntType)
				if !ok {
					continue
				}
				div := ir.NewUDiv(inst.X, constant.NewInt(it, 1<<uint(k)))
				div.LocalIdent = inst.LocalIdent
				b.Insts[i] = div
				replaceUses(f, inst, div)
			case *ir.InstOr:
				if !disjointOr(inst.X, inst.Y) {
					continue
				}
				add := ir.NewAdd(inst.X, inst.Y)
				add.LocalIdent = inst.LocalIdent
				b.Insts[i] = add
				replaceUses(f, inst, add)
			}
		}

		cbr, ok := b.Term.(*ir.TermCondBr)
		if !ok {
			continue
		}
		cmp, ok := cbr.Cond.(*ir.InstICmp)
		if !ok || (cmp.Pred != enum.IPredEQ && cmp.Pred != enum.IPredNE) {
			continue
		}
		k, ok := cmp.Y.(*constant.Int)
		if !ok {
			continue
		}
		tTrue := cbr.TargetTrue.(*ir.Block)
		tFalse := cbr.TargetFalse.(*ir.Block)
		if cmp.Pred == enum.IPredEQ {
			b.Term = ir.NewSwitch(cmp.X, tFalse, ir.NewCase(k, tTrue))
		} else {
			b.Term = ir.NewSwitch(cmp.X, tTrue, ir.NewCase(k, tFalse))
		}
		if !hasUses(f, cmp) {
			removeInst(f, cmp)
		}
	}
}

func calleeName(call *ir.InstCall) string {
	if callee, ok := call.Callee.(*ir.Func); ok {
		return callee.Name()
	}
	return ""
}

// minMaxPred maps a min/max intrinsic name to the predicate that selects
// its first operand.
func minMaxPred(name string) (enum.IPred, bool) {
	switch {
	case strings.HasPrefix(name, "llvm.smax."):
		return enum.IPredSGT, true
	case strings.HasPrefix(name, "llvm.smin."):
		return enum.IPredSLT, true
	case strings.HasPrefix(name, "llvm.umax."):
		return enum.IPredUGT, true
	case strings.HasPrefix(name, "llvm.umin."):
		return enum.IPredULT, true
	}
	return 0, false
}

// swappedPred mirrors a predicate across operand exchange.
func swappedPred(p enum.IPred) enum.IPred {
	switch p {
	case enum.IPredSGT:
		return enum.IPredSLT
	case enum.IPredSGE:
		return enum.IPredSLE
	case enum.IPredSLT:
		return enum.IPredSGT
	case enum.IPredSLE:
		return enum.IPredSGE
	case enum.IPredUGT:
		return enum.IPredULT
	case enum.IPredUGE:
		return enum.IPredULE
	case enum.IPredULT:
		return enum.IPredUGT
	case enum.IPredULE:
		return enum.IPredUGE
	}
	return p // eq and ne are symmetric
}

// disjointOr reports whether x|y is provably equal to x+y: either both
// operands are constants with no common bits, or one is a left shift by k
// and the other a constant that fits below bit k.
func disjointOr(x, y value.Value) bool {
	if kx, ok := constInt(x); ok {
		if ky, ok := constInt(y); ok {
			return kx&ky == 0
		}
	}
	return shlClearsConst(x, y) || shlClearsConst(y, x)
}

func shlClearsConst(shifted, other value.Value) bool {
	shl, ok := shifted.(*ir.InstShl)
	if !ok {
		return false
	}
	k, ok := constInt(shl.Y)
	if !ok || k <= 0 || k > 15 {
		return false
	}
	ko, ok := constInt(other)
	return ok && ko >= 0 && ko < 1<<uint(k)
}

// replaceUses rewrites every operand in f that is old to new.
func replaceUses(f *ir.Func, old, new value.Value) {
	r := func(v *value.Value) {
		if *v == old {
			*v = new
		}
	}
	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			switch inst := inst.(type) {
			case *ir.InstAdd:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstSub:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstMul:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstUDiv:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstURem:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstAnd:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstOr:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstXor:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstShl:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstLShr:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstAShr:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstICmp:
				r(&inst.X)
				r(&inst.Y)
			case *ir.InstSelect:
				r(&inst.Cond)
				r(&inst.ValueTrue)
				r(&inst.ValueFalse)
			case *ir.InstLoad:
				r(&inst.Src)
			case *ir.InstStore:
				r(&inst.Src)
				r(&inst.Dst)
			case *ir.InstCall:
				for i := range inst.Args {
					r(&inst.Args[i])
				}
			case *ir.InstPhi:
				for _, inc := range inst.Incs {
					r(&inc.X)
				}
			case *ir.InstZExt:
				r(&inst.From)
			case *ir.InstSExt:
				r(&inst.From)
			case *ir.InstTrunc:
				r(&inst.From)
			case *ir.InstBitCast:
				r(&inst.From)
			}
		}
		switch term := b.Term.(type) {
		case *ir.TermRet:
			if term.X != nil {
				r(&term.X)
			}
		case *ir.TermCondBr:
			r(&term.Cond)
		case *ir.TermSwitch:
			r(&term.X)
		}
	}
}

// hasUses reports whether v is still an operand anywhere in f.
func hasUses(f *ir.Func, v value.Value) bool {
	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			if iv, ok := any(inst).(value.Value); ok && iv == v {
				continue
			}
			for _, op := range instOperands(inst) {
				if op == v {
					return true
				}
			}
		}
		for _, op := range termOperands(b.Term) {
			if op == v {
				return true
			}
		}
	}
	return false
}

// instOperands lists the value operands of the instruction shapes the
// lowering understands.
func instOperands(inst ir.Instruction) []value.Value {
	switch inst := inst.(type) {
	case *ir.InstAdd:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstSub:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstMul:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstUDiv:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstURem:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstAnd:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstOr:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstXor:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstShl:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstLShr:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstAShr:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstICmp:
		return []value.Value{inst.X, inst.Y}
	case *ir.InstSelect:
		return []value.Value{inst.Cond, inst.ValueTrue, inst.ValueFalse}
	case *ir.InstLoad:
		return []value.Value{inst.Src}
	case *ir.InstStore:
		return []value.Value{inst.Src, inst.Dst}
	case *ir.InstCall:
		return inst.Args
	case *ir.InstPhi:
		ops := make([]value.Value, 0, len(inst.Incs))
		for _, inc := range inst.Incs {
			ops = append(ops, inc.X)
		}
		return ops
	case *ir.InstZExt:
		return []value.Value{inst.From}
	case *ir.InstSExt:
		return []value.Value{inst.From}
	case *ir.InstTrunc:
		return []value.Value{inst.From}
	case *ir.InstBitCast:
		return []value.Value{inst.From}
	}
	return nil
}

func termOperands(term ir.Terminator) []value.Value {
	switch term := term.(type) {
	case *ir.TermRet:
		if term.X != nil {
			return []value.Value{term.X}
		}
	case *ir.TermCondBr:
		return []value.Value{term.Cond}
	case *ir.TermSwitch:
		return []value.Value{term.X}
	}
	return nil
}

// removeInst deletes v from whichever block holds it.
func removeInst(f *ir.Func, v ir.Instruction) {
	for _, b := range f.Blocks {
		for i, inst := range b.Insts {
			if inst == v {
				b.Insts = append(b.Insts[:i], b.Insts[i+1:]...)
				return
			}
		}
	}
}
