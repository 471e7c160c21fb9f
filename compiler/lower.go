package compiler

import (
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/NERVsystems/golc3/lc3"
)

// funcLowerer lowers a single function to LC-3 assembly text. Operand
// expansion follows a fixed register discipline: R1/R2 hold the operands,
// R3/R4 are expansion scratch, R0 carries trap arguments and results.
// Nothing is assumed live in a register across an IR instruction; every
// SSA value round-trips through its frame slot.
type funcLowerer struct {
	fn    *ir.Func
	comp  *Compiler
	frame *Frame
	body  strings.Builder
	cur   *pool // constant pool of the block being lowered
}

func newFuncLowerer(fn *ir.Func, comp *Compiler) *funcLowerer {
	return &funcLowerer{
		fn:    fn,
		comp:  comp,
		frame: NewFrame(),
	}
}

// lower compiles the function: arguments first so they land in slots
// -1..-n, then every block in order. The prologue is rendered last, once
// the final slot count is known, and prepended to the body.
func (fl *funcLowerer) lower() (string, error) {
	for _, p := range fl.fn.Params {
		fl.frame.SlotOf(p)
	}

	for i, b := range fl.fn.Blocks {
		if err := fl.lowerBlock(b, i == 0); err != nil {
			return "", err
		}
	}

	if fl.frame.Count() > MaxSlots {
		return "", &TooManyLocalsError{Func: fl.fn.Name(), Count: fl.frame.Count()}
	}

	var out strings.Builder
	if !fl.comp.cfg.NoComment {
		out.WriteString(lc3.Comment("function " + fl.fn.Name()))
		out.WriteString(lc3.Comment("local variable count: " + strconv.Itoa(fl.frame.Count())))
	}
	out.WriteString(lc3.Label(funcLabel(fl.fn)))
	out.WriteString(lc3.Label(fl.comp.blockLabel(fl.fn, fl.fn.Blocks[0])))
	out.WriteString(fl.prologue())
	out.WriteString(fl.body.String())
	return out.String(), nil
}

// lowerBlock emits the block's label (the entry block's label is emitted
// with the prologue), its instructions, its terminator, and finally the
// block's constant pool.
func (fl *funcLowerer) lowerBlock(b *ir.Block, entry bool) error {
	label := fl.comp.blockLabel(fl.fn, b)
	if !entry {
		fl.comment(b.Ident())
		fl.label(label)
	}

	fl.cur = newPool(fl.comp)
	for _, inst := range b.Insts {
		fl.comment(inst.LLString())
		if err := fl.lowerInst(inst); err != nil {
			return err
		}
	}
	fl.comment(b.Term.LLString())
	if err := fl.lowerTerm(b.Term, label); err != nil {
		return err
	}

	fl.raw("\n")
	if !fl.cur.empty() {
		fl.comment("static value section for " + label)
		fl.raw(fl.cur.text())
		fl.raw("\n")
	}
	return nil
}

func (fl *funcLowerer) lowerInst(inst ir.Instruction) error {
	switch inst := inst.(type) {
	case *ir.InstAdd:
		return fl.lowerAdd(inst)
	case *ir.InstSub:
		return fl.lowerSub(inst)
	case *ir.InstAnd:
		return fl.lowerAnd(inst)
	case *ir.InstOr:
		return fl.lowerOr(inst)
	case *ir.InstMul:
		return fl.lowerMul(inst)
	case *ir.InstShl:
		return fl.lowerShl(inst)
	case *ir.InstLShr:
		return fl.lowerLShr(inst)
	case *ir.InstUDiv:
		return fl.lowerUDiv(inst)
	case *ir.InstURem:
		return fl.lowerURem(inst)
	case *ir.InstICmp:
		return fl.lowerICmp(inst)
	case *ir.InstSelect:
		return fl.lowerSelect(inst)
	case *ir.InstPhi:
		return fl.lowerPhi(inst)
	case *ir.InstLoad:
		return fl.lowerLoad(inst)
	case *ir.InstStore:
		return fl.lowerStore(inst)
	case *ir.InstAlloca:
		// The alloca's own frame slot is the storage; loads and stores
		// through its pointer address that slot directly.
		return nil
	case *ir.InstCall:
		return fl.lowerCall(inst)
	case *ir.InstZExt:
		return fl.lowerCopy(inst, inst.From)
	case *ir.InstSExt:
		return fl.lowerCopy(inst, inst.From)
	case *ir.InstBitCast:
		return fl.lowerCopy(inst, inst.From)
	case *ir.InstTrunc:
		return fl.lowerCopy(inst, inst.From)
	default:
		return unsupported(inst.LLString())
	}
}

// lowerAdd emits dst = X + Y.
func (fl *funcLowerer) lowerAdd(inst *ir.InstAdd) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.materialize(inst.X, "R1")
	fl.inst(lc3.OpADD, "R1", "R1", "R2")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// lowerSub emits dst = X - Y by negating Y. Constant subtrahends never
// reach here: the canonicalizer folds them into add.
func (fl *funcLowerer) lowerSub(inst *ir.InstSub) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.negate("R2")
	fl.materialize(inst.X, "R1")
	fl.inst(lc3.OpADD, "R1", "R1", "R2")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

func (fl *funcLowerer) lowerAnd(inst *ir.InstAnd) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.materialize(inst.X, "R1")
	fl.inst(lc3.OpAND, "R1", "R1", "R2")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// lowerOr synthesizes or from AND and NOT by De Morgan.
func (fl *funcLowerer) lowerOr(inst *ir.InstOr) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.materialize(inst.X, "R1")
	fl.inst(lc3.OpNOT, "R1", "R1")
	fl.inst(lc3.OpNOT, "R2", "R2")
	fl.inst(lc3.OpAND, "R1", "R1", "R2")
	fl.inst(lc3.OpNOT, "R1", "R1")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// lowerMul accumulates X into R3, Y times. The operand order is the one
// case that differs from the other binary ops: Y must be loaded last so
// the condition codes reflect the counter on loop entry. With -signed-mul
// both operands are flipped positive when the counter is negative.
func (fl *funcLowerer) lowerMul(inst *ir.InstMul) error {
	dst := fl.frame.OffsetOf(inst)
	fl.inst(lc3.OpAND, "R3", "R3", lc3.Imm(0))
	fl.materialize(inst.X, "R1")
	fl.materialize(inst.Y, "R2")
	loop := fl.temp("MUL_LOOP_")
	end := fl.temp("MUL_END_")
	if fl.comp.cfg.SignedMul {
		fl.inst(lc3.OpBRzp, loop)
		fl.negate("R1")
		fl.negate("R2")
	}
	fl.label(loop)
	fl.inst(lc3.OpBRz, end)
	fl.inst(lc3.OpADD, "R3", "R3", "R1")
	fl.inst(lc3.OpADD, "R2", "R2", lc3.Imm(-1))
	fl.inst(lc3.OpBR, loop)
	fl.label(end)
	fl.inst(lc3.OpSTR, "R3", "R5", lc3.Imm(dst))
	return nil
}

// lowerShl doubles X, Y times.
func (fl *funcLowerer) lowerShl(inst *ir.InstShl) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.materialize(inst.X, "R1")
	loop := fl.temp("SHL_LOOP_")
	fl.label(loop)
	fl.inst(lc3.OpADD, "R1", "R1", "R1")
	fl.inst(lc3.OpADD, "R2", "R2", lc3.Imm(-1))
	fl.inst(lc3.OpBRp, loop)
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// lowerLShr shifts X right one bit at a time, Y times. LC-3 has no rotate
// or right shift, so each single-bit shift walks the word with a sliding
// source mask in R3 and destination mask in R4, accumulating into R0. The
// remaining count is parked in the result slot while the inner loop needs
// R2 as bit-test scratch.
func (fl *funcLowerer) lowerLShr(inst *ir.InstLShr) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.materialize(inst.X, "R1")
	loop := fl.temp("LSHR_LOOP_")
	bit := fl.temp("LSHR_BIT_")
	skip := fl.temp("LSHR_SKIP_")
	end := fl.temp("LSHR_END_")
	fl.inst(lc3.OpSTR, "R2", "R5", lc3.Imm(dst))
	fl.label(loop)
	fl.inst(lc3.OpLDR, "R2", "R5", lc3.Imm(dst))
	fl.inst(lc3.OpBRnz, end)
	fl.inst(lc3.OpADD, "R2", "R2", lc3.Imm(-1))
	fl.inst(lc3.OpSTR, "R2", "R5", lc3.Imm(dst))
	fl.inst(lc3.OpAND, "R0", "R0", lc3.Imm(0))
	fl.inst(lc3.OpAND, "R3", "R3", lc3.Imm(0))
	fl.inst(lc3.OpADD, "R3", "R3", lc3.Imm(2))
	fl.inst(lc3.OpAND, "R4", "R4", lc3.Imm(0))
	fl.inst(lc3.OpADD, "R4", "R4", lc3.Imm(1))
	fl.label(bit)
	fl.inst(lc3.OpAND, "R2", "R1", "R3")
	fl.inst(lc3.OpBRz, skip)
	fl.inst(lc3.OpADD, "R0", "R0", "R4")
	fl.label(skip)
	fl.inst(lc3.OpADD, "R4", "R4", "R4")
	fl.inst(lc3.OpADD, "R3", "R3", "R3")
	fl.inst(lc3.OpBRnp, bit)
	fl.inst(lc3.OpADD, "R1", "R0", lc3.Imm(0))
	fl.inst(lc3.OpBR, loop)
	fl.label(end)
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// lowerUDiv divides by repeated subtraction: the negated divisor is added
// to the dividend until it goes negative, counting iterations in R3. An
// exit on exact zero still owes one count, patched after the loop.
func (fl *funcLowerer) lowerUDiv(inst *ir.InstUDiv) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.negate("R2")
	fl.materialize(inst.X, "R1")
	fl.inst(lc3.OpAND, "R3", "R3", lc3.Imm(0))
	loop := fl.temp("UDIV_LOOP_")
	end := fl.temp("UDIV_END_")
	post := fl.temp("UDIV_POST_")
	fl.label(loop)
	fl.inst(lc3.OpADD, "R1", "R1", "R2")
	fl.inst(lc3.OpBRnz, end)
	fl.inst(lc3.OpADD, "R3", "R3", lc3.Imm(1))
	fl.inst(lc3.OpBR, loop)
	fl.label(end)
	fl.inst(lc3.OpBRn, post)
	fl.inst(lc3.OpADD, "R3", "R3", lc3.Imm(1))
	fl.label(post)
	fl.inst(lc3.OpSTR, "R3", "R5", lc3.Imm(dst))
	return nil
}

// lowerURem subtracts the divisor until the dividend goes negative, then
// adds it back once.
func (fl *funcLowerer) lowerURem(inst *ir.InstURem) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.Y, "R2")
	fl.negate("R2")
	fl.materialize(inst.X, "R1")
	loop := fl.temp("UREM_LOOP_")
	fl.label(loop)
	fl.inst(lc3.OpADD, "R1", "R1", "R2")
	fl.inst(lc3.OpBRzp, loop)
	fl.inst(lc3.OpNOT, "R2", "R2")
	fl.inst(lc3.OpADD, "R2", "R2", lc3.Imm(1))
	fl.inst(lc3.OpADD, "R1", "R1", "R2")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// icmpSkip maps each predicate to the branch that skips the set-true
// instruction after ADD computes A - B. The condition codes reflect the
// signed sign of the difference, so the unsigned predicates share the
// signed mappings; operands straddling the sign boundary compare wrong.
var icmpSkip = map[enum.IPred]lc3.Op{
	enum.IPredEQ:  lc3.OpBRnp,
	enum.IPredNE:  lc3.OpBRz,
	enum.IPredSGT: lc3.OpBRnz,
	enum.IPredSGE: lc3.OpBRn,
	enum.IPredSLT: lc3.OpBRzp,
	enum.IPredSLE: lc3.OpBRp,
	enum.IPredUGT: lc3.OpBRnz,
	enum.IPredUGE: lc3.OpBRn,
	enum.IPredULT: lc3.OpBRzp,
	enum.IPredULE: lc3.OpBRp,
}

// lowerICmp computes A - B and converts the condition codes into a 0/1
// result. Constant right-hand sides load pre-negated from the pool, so
// only register operands pay the two-instruction negation.
func (fl *funcLowerer) lowerICmp(inst *ir.InstICmp) error {
	skip, ok := icmpSkip[inst.Pred]
	if !ok {
		return unsupported(inst.LLString())
	}
	dst := fl.frame.OffsetOf(inst)
	fl.inst(lc3.OpAND, "R3", "R3", lc3.Imm(0))
	fl.materialize(inst.X, "R1")
	fl.materializeNeg(inst.Y, "R2")
	fl.inst(lc3.OpADD, "R1", "R1", "R2")
	end := fl.temp("ICMP_END_")
	fl.inst(skip, end)
	fl.inst(lc3.OpADD, "R3", "R3", lc3.Imm(1))
	fl.label(end)
	fl.inst(lc3.OpSTR, "R3", "R5", lc3.Imm(dst))
	return nil
}

// lowerSelect loads the true value, then the condition last so its load
// sets the condition codes, and overwrites with the false value unless the
// condition was positive.
func (fl *funcLowerer) lowerSelect(inst *ir.InstSelect) error {
	dst := fl.frame.OffsetOf(inst)
	fl.materialize(inst.ValueTrue, "R2")
	fl.materialize(inst.Cond, "R1")
	end := fl.temp("SELECT_END_")
	fl.inst(lc3.OpBRp, end)
	fl.materialize(inst.ValueFalse, "R2")
	fl.label(end)
	fl.inst(lc3.OpSTR, "R2", "R5", lc3.Imm(dst))
	return nil
}

// lowerPhi resolves the incoming value by the predecessor-identity trick:
// every branch leaves its block's address in R7, so -R7 plus a candidate
// label is zero exactly for the block control came from. The last arm
// needs no guard.
func (fl *funcLowerer) lowerPhi(inst *ir.InstPhi) error {
	dst := fl.frame.OffsetOf(inst)
	fl.inst(lc3.OpNOT, "R0", "R7")
	fl.inst(lc3.OpADD, "R0", "R0", lc3.Imm(1))
	end := fl.temp("PHI_NEXT_")
	n := len(inst.Incs)
	for i, inc := range inst.Incs {
		pred, ok := inc.Pred.(*ir.Block)
		if !ok {
			return unsupported(inst.LLString())
		}
		if i < n-1 {
			next := fl.temp("PHI_NEXT_")
			fl.inst(lc3.OpLEA, "R1", fl.comp.blockLabel(fl.fn, pred))
			fl.inst(lc3.OpADD, "R1", "R1", "R0")
			fl.inst(lc3.OpBRnp, next)
			fl.materialize(inc.X, "R1")
			fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
			fl.inst(lc3.OpBR, end)
			fl.label(next)
		} else {
			fl.materialize(inc.X, "R1")
			fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
		}
	}
	fl.label(end)
	return nil
}

// lowerLoad reads through a pointer that is itself a frame slot.
func (fl *funcLowerer) lowerLoad(inst *ir.InstLoad) error {
	dst := fl.frame.OffsetOf(inst)
	fl.inst(lc3.OpLDR, "R1", "R5", lc3.Imm(fl.frame.OffsetOf(inst.Src)))
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

func (fl *funcLowerer) lowerStore(inst *ir.InstStore) error {
	fl.materialize(inst.Src, "R1")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(fl.frame.OffsetOf(inst.Dst)))
	return nil
}

// lowerCall expands runtime intrinsics inline; everything else goes
// through the register calling convention, up to five scalar arguments in
// R0-R4 with the result returned in R0.
func (fl *funcLowerer) lowerCall(inst *ir.InstCall) error {
	callee, ok := inst.Callee.(*ir.Func)
	if !ok {
		return unsupported(inst.LLString())
	}
	handled, err := fl.lowerIntrinsic(inst, callee)
	if handled || err != nil {
		return err
	}
	if len(inst.Args) > 5 {
		return unsupported(inst.LLString())
	}
	if len(callee.Blocks) == 0 {
		return unsupported(inst.LLString())
	}
	for i, arg := range inst.Args {
		fl.materialize(arg, "R"+strconv.Itoa(i))
	}
	fl.inst(lc3.OpJSR, funcLabel(callee))
	if _, void := inst.Type().(*types.VoidType); !void {
		fl.inst(lc3.OpSTR, "R0", "R5", lc3.Imm(fl.frame.OffsetOf(inst)))
	}
	return nil
}

// lowerCopy handles the width casts, which are all identities on a 16-bit
// target.
func (fl *funcLowerer) lowerCopy(res value.Value, from value.Value) error {
	dst := fl.frame.OffsetOf(res)
	fl.materialize(from, "R1")
	fl.inst(lc3.OpSTR, "R1", "R5", lc3.Imm(dst))
	return nil
}

// lowerTerm emits the block terminator. Every transfer first records this
// block's label in R7 so phi nodes in the successor can identify their
// predecessor.
func (fl *funcLowerer) lowerTerm(term ir.Terminator, blockLabel string) error {
	switch term := term.(type) {
	case *ir.TermBr:
		fl.inst(lc3.OpLEA, "R7", blockLabel)
		fl.inst(lc3.OpBR, fl.targetLabel(term.Target))
		return nil
	case *ir.TermCondBr:
		fl.inst(lc3.OpLEA, "R7", blockLabel)
		fl.materialize(term.Cond, "R1")
		fl.inst(lc3.OpBRz, fl.targetLabel(term.TargetFalse))
		fl.inst(lc3.OpBR, fl.targetLabel(term.TargetTrue))
		return nil
	case *ir.TermSwitch:
		fl.inst(lc3.OpLEA, "R7", blockLabel)
		fl.materialize(term.X, "R1")
		for _, cs := range term.Cases {
			if _, ok := constInt(cs.X); !ok {
				return unsupported(term.LLString())
			}
			fl.materializeNeg(cs.X, "R2")
			fl.inst(lc3.OpADD, "R2", "R1", "R2")
			fl.inst(lc3.OpBRz, fl.targetLabel(cs.Target))
		}
		fl.inst(lc3.OpBR, fl.targetLabel(term.TargetDefault))
		return nil
	case *ir.TermRet:
		fl.epilogue(term)
		return nil
	default:
		return unsupported(term.LLString())
	}
}

func (fl *funcLowerer) targetLabel(target value.Value) string {
	return fl.comp.blockLabel(fl.fn, target.(*ir.Block))
}

// prologue reserves the seven-word save area, points R5 at the saved
// frame pointer, carves out the local slots (two steps past sixteen, to
// stay within the 5-bit immediate), and spills the argument registers.
func (fl *funcLowerer) prologue() string {
	var b strings.Builder
	if !fl.comp.cfg.NoComment {
		b.WriteString(lc3.Comment("init R6, R5, save caller registers"))
	}
	b.WriteString(lc3.Line(lc3.OpADD, "R6", "R6", lc3.Imm(-7)))
	saves := []string{"R0", "R1", "R2", "R3", "R4", "R7", "R5"}
	for i, r := range saves {
		b.WriteString(lc3.Line(lc3.OpSTR, r, "R6", lc3.Imm(6-i)))
	}
	b.WriteString(lc3.Line(lc3.OpADD, "R5", "R6", lc3.Imm(0)))

	n := fl.frame.Count()
	if n > 16 {
		b.WriteString(lc3.Line(lc3.OpADD, "R6", "R6", lc3.Imm(-16)))
		if n-16 > 0 {
			b.WriteString(lc3.Line(lc3.OpADD, "R6", "R6", lc3.Imm(-(n - 16))))
		}
	} else if n > 0 {
		b.WriteString(lc3.Line(lc3.OpADD, "R6", "R6", lc3.Imm(-n)))
	}

	if len(fl.fn.Params) > 0 {
		if !fl.comp.cfg.NoComment {
			b.WriteString(lc3.Comment("store arguments"))
		}
		for i, p := range fl.fn.Params {
			b.WriteString(lc3.Line(lc3.OpSTR, "R"+strconv.Itoa(i), "R5", lc3.Imm(fl.frame.OffsetOf(p))))
		}
	}
	return b.String()
}

// epilogue loads the return value into R0, rewinds the locals, restores
// the saved registers, and returns. R0 is only restored for void
// functions; otherwise it carries the result.
func (fl *funcLowerer) epilogue(term *ir.TermRet) {
	if term.X != nil {
		fl.materialize(term.X, "R0")
	}
	fl.comment("restore R5, R6, R7")
	fl.inst(lc3.OpADD, "R6", "R5", lc3.Imm(0))
	fl.inst(lc3.OpLDR, "R5", "R6", lc3.Imm(0))
	fl.inst(lc3.OpLDR, "R7", "R6", lc3.Imm(1))
	fl.inst(lc3.OpLDR, "R4", "R6", lc3.Imm(2))
	fl.inst(lc3.OpLDR, "R3", "R6", lc3.Imm(3))
	fl.inst(lc3.OpLDR, "R2", "R6", lc3.Imm(4))
	fl.inst(lc3.OpLDR, "R1", "R6", lc3.Imm(5))
	if term.X == nil {
		fl.inst(lc3.OpLDR, "R0", "R6", lc3.Imm(6))
	}
	fl.inst(lc3.OpADD, "R6", "R6", lc3.Imm(7))
	fl.inst(lc3.OpRET)
}

// materialize brings v into dst: constants load from the block pool,
// everything else from its frame slot.
func (fl *funcLowerer) materialize(v value.Value, dst string) {
	if val, ok := constInt(v); ok {
		fl.inst(lc3.OpLD, dst, valueLabel(fl.cur.intEntry(val)))
		return
	}
	fl.inst(lc3.OpLDR, dst, "R5", lc3.Imm(fl.frame.OffsetOf(v)))
}

// materializeNeg brings -v into dst. Constants get a pre-negated pool
// entry; register operands pay the NOT/ADD pair.
func (fl *funcLowerer) materializeNeg(v value.Value, dst string) {
	if val, ok := constInt(v); ok {
		fl.inst(lc3.OpLD, dst, valueLabel(fl.cur.intEntry(-val)))
		return
	}
	fl.materialize(v, dst)
	fl.negate(dst)
}

// negate replaces r with its two's complement.
func (fl *funcLowerer) negate(r string) {
	fl.inst(lc3.OpNOT, r, r)
	fl.inst(lc3.OpADD, r, r, lc3.Imm(1))
}

func (fl *funcLowerer) inst(op lc3.Op, operands ...string) {
	fl.body.WriteString(lc3.Line(op, operands...))
}

func (fl *funcLowerer) label(name string) {
	fl.body.WriteString(lc3.Label(name))
}

func (fl *funcLowerer) raw(s string) {
	fl.body.WriteString(s)
}

func (fl *funcLowerer) comment(text string) {
	if !fl.comp.cfg.NoComment {
		fl.body.WriteString(lc3.Comment(text))
	}
}

// temp mints a fresh expansion label with the given prefix.
func (fl *funcLowerer) temp(prefix string) string {
	return prefix + strconv.Itoa(fl.comp.nextTemp())
}
