package compiler

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
)

func canonFunc(t *testing.T, src string) *ir.Func {
	t.Helper()
	m := parseModule(t, src)
	f := m.Funcs[len(m.Funcs)-1]
	New(Config{}).canonicalizeFunc(f)
	return f
}

func TestCanonSubConstBecomesAdd(t *testing.T) {
	f := canonFunc(t, `
define i32 @f(i32 %x) {
entry:
	%r = sub i32 %x, 5
	ret i32 %r
}
`)
	add, ok := f.Blocks[0].Insts[0].(*ir.InstAdd)
	if !ok {
		t.Fatalf("inst[0] = %T, want *ir.InstAdd", f.Blocks[0].Insts[0])
	}
	k, ok := constInt(add.Y)
	if !ok || k != -5 {
		t.Errorf("add constant = %d (%v), want -5", k, ok)
	}
	// The rewritten result must feed the return.
	ret := f.Blocks[0].Term.(*ir.TermRet)
	if ret.X.(*ir.InstAdd) != add {
		t.Errorf("return does not use the rewritten add")
	}
}

func TestCanonICmpConstMovesRight(t *testing.T) {
	f := canonFunc(t, `
define i1 @f(i32 %x) {
entry:
	%c = icmp sgt i32 2, %x
	ret i1 %c
}
`)
	cmpInst, ok := f.Blocks[0].Insts[0].(*ir.InstICmp)
	if !ok {
		t.Fatalf("inst[0] = %T, want *ir.InstICmp", f.Blocks[0].Insts[0])
	}
	if cmpInst.Pred != enum.IPredSLT {
		t.Errorf("pred = %v, want slt", cmpInst.Pred)
	}
	if _, ok := constInt(cmpInst.X); ok {
		t.Errorf("constant still on the left")
	}
	if k, ok := constInt(cmpInst.Y); !ok || k != 2 {
		t.Errorf("right operand = %d (%v), want 2", k, ok)
	}
}

func TestCanonEqBranchBecomesSwitch(t *testing.T) {
	f := canonFunc(t, `
define i32 @f(i32 %x) {
entry:
	%c = icmp eq i32 %x, 3
	br i1 %c, label %t, label %e

t:
	ret i32 1
e:
	ret i32 0
}
`)
	sw, ok := f.Blocks[0].Term.(*ir.TermSwitch)
	if !ok {
		t.Fatalf("terminator = %T, want *ir.TermSwitch", f.Blocks[0].Term)
	}
	if len(sw.Cases) != 1 {
		t.Fatalf("cases = %d, want 1", len(sw.Cases))
	}
	if k, ok := constInt(sw.Cases[0].X); !ok || k != 3 {
		t.Errorf("case value = %d (%v), want 3", k, ok)
	}
	if sw.Cases[0].Target.(*ir.Block).Name() != "t" {
		t.Errorf("case target = %s, want t", sw.Cases[0].Target.(*ir.Block).Name())
	}
	if sw.TargetDefault.(*ir.Block).Name() != "e" {
		t.Errorf("default target = %s, want e", sw.TargetDefault.(*ir.Block).Name())
	}
	// The compare is dead and must be gone.
	if len(f.Blocks[0].Insts) != 0 {
		t.Errorf("dead compare not erased: %v", f.Blocks[0].Insts)
	}
}

func TestCanonNeBranchBecomesSwitch(t *testing.T) {
	f := canonFunc(t, `
define i32 @f(i32 %x) {
entry:
	%c = icmp ne i32 %x, 0
	br i1 %c, label %t, label %e

t:
	ret i32 1
e:
	ret i32 0
}
`)
	sw, ok := f.Blocks[0].Term.(*ir.TermSwitch)
	if !ok {
		t.Fatalf("terminator = %T, want *ir.TermSwitch", f.Blocks[0].Term)
	}
	// For ne the case edge goes to the false target.
	if sw.Cases[0].Target.(*ir.Block).Name() != "e" {
		t.Errorf("case target = %s, want e", sw.Cases[0].Target.(*ir.Block).Name())
	}
	if sw.TargetDefault.(*ir.Block).Name() != "t" {
		t.Errorf("default target = %s, want t", sw.TargetDefault.(*ir.Block).Name())
	}
}

func TestCanonTruncErased(t *testing.T) {
	f := canonFunc(t, `
define i16 @f(i32 %x) {
entry:
	%r = trunc i32 %x to i16
	ret i16 %r
}
`)
	for _, inst := range f.Blocks[0].Insts {
		if _, ok := inst.(*ir.InstTrunc); ok {
			t.Errorf("trunc survived canonicalization")
		}
	}
	ret := f.Blocks[0].Term.(*ir.TermRet)
	if ret.X != f.Params[0] {
		t.Errorf("return operand = %v, want the parameter", ret.X)
	}
}

func TestCanonLShrConstBecomesUDiv(t *testing.T) {
	f := canonFunc(t, `
define i32 @f(i32 %x) {
entry:
	%r = lshr i32 %x, 3
	ret i32 %r
}
`)
	div, ok := f.Blocks[0].Insts[0].(*ir.InstUDiv)
	if !ok {
		t.Fatalf("inst[0] = %T, want *ir.InstUDiv", f.Blocks[0].Insts[0])
	}
	if k, ok := constInt(div.Y); !ok || k != 8 {
		t.Errorf("divisor = %d (%v), want 8", k, ok)
	}
}

func TestCanonDisjointOrBecomesAdd(t *testing.T) {
	f := canonFunc(t, `
define i32 @f(i32 %x) {
entry:
	%hi = shl i32 %x, 4
	%r = or i32 %hi, 9
	ret i32 %r
}
`)
	if _, ok := f.Blocks[0].Insts[1].(*ir.InstAdd); !ok {
		t.Errorf("inst[1] = %T, want *ir.InstAdd", f.Blocks[0].Insts[1])
	}
}

func TestCanonOverlappingOrKept(t *testing.T) {
	f := canonFunc(t, `
define i32 @f(i32 %x) {
entry:
	%hi = shl i32 %x, 2
	%r = or i32 %hi, 9
	ret i32 %r
}
`)
	// Bit 3 of the constant may overlap the shifted value.
	if _, ok := f.Blocks[0].Insts[1].(*ir.InstOr); !ok {
		t.Errorf("inst[1] = %T, want *ir.InstOr", f.Blocks[0].Insts[1])
	}
}

func TestCanonMinMaxBecomesSelect(t *testing.T) {
	f := canonFunc(t, `
declare i32 @llvm.smax.i32(i32, i32)

define i32 @f(i32 %a, i32 %b) {
entry:
	%m = call i32 @llvm.smax.i32(i32 %a, i32 %b)
	ret i32 %m
}
`)
	insts := f.Blocks[0].Insts
	if len(insts) != 2 {
		t.Fatalf("inst count = %d, want 2 (icmp+select)", len(insts))
	}
	cmpInst, ok := insts[0].(*ir.InstICmp)
	if !ok {
		t.Fatalf("inst[0] = %T, want *ir.InstICmp", insts[0])
	}
	if cmpInst.Pred != enum.IPredSGT {
		t.Fatalf("pred = %v, want sgt", cmpInst.Pred)
	}
	sel, ok := insts[1].(*ir.InstSelect)
	if !ok {
		t.Fatalf("inst[1] = %T, want *ir.InstSelect", insts[1])
	}
	ret := f.Blocks[0].Term.(*ir.TermRet)
	if ret.X != sel {
		t.Errorf("return does not use the select result")
	}
}

func TestCanonLifetimeDropped(t *testing.T) {
	f := canonFunc(t, `
declare void @llvm.lifetime.start.p0i8(i64, i8*)
declare void @llvm.lifetime.end.p0i8(i64, i8*)

define i32 @f() {
entry:
	%p = alloca i32
	%b = bitcast i32* %p to i8*
	call void @llvm.lifetime.start.p0i8(i64 4, i8* %b)
	store i32 1, i32* %p
	%v = load i32, i32* %p
	call void @llvm.lifetime.end.p0i8(i64 4, i8* %b)
	ret i32 %v
}
`)
	for _, inst := range f.Blocks[0].Insts {
		if call, ok := inst.(*ir.InstCall); ok {
			if strings.HasPrefix(calleeName(call), "llvm.lifetime.") {
				t.Errorf("lifetime marker survived: %v", call.LLString())
			}
		}
	}
}

func TestCanonIdempotent(t *testing.T) {
	src := `
declare i32 @llvm.smin.i32(i32, i32)

define i32 @f(i32 %x, i32 %y) {
entry:
	%a = sub i32 %x, 7
	%b = icmp sgt i32 4, %a
	%m = call i32 @llvm.smin.i32(i32 %a, i32 %y)
	%t = trunc i32 %m to i16
	%w = zext i16 %t to i32
	%s = lshr i32 %w, 2
	%c = icmp eq i32 %s, 0
	br i1 %c, label %done, label %more

more:
	br label %done

done:
	%r = phi i32 [ %a, %entry ], [ %s, %more ]
	ret i32 %r
}
`
	m := parseModule(t, src)
	f := m.Funcs[len(m.Funcs)-1]
	c := New(Config{})
	c.canonicalizeFunc(f)
	once := f.LLString()
	c.canonicalizeFunc(f)
	twice := f.LLString()
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("canonicalization is not idempotent (-once +twice):\n%s", diff)
	}
}
