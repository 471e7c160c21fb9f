package compiler

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func TestFrameSlots(t *testing.T) {
	f := NewFrame()
	a := ir.NewParam("a", types.I32)
	b := ir.NewParam("b", types.I32)

	// First slot is 1: index 0 is the "not interned" sentinel and the
	// word at R5+0 holds the saved frame pointer.
	if got := f.SlotOf(a); got != 1 {
		t.Errorf("first slot = %d, want 1", got)
	}
	if got := f.SlotOf(b); got != 2 {
		t.Errorf("second slot = %d, want 2", got)
	}

	// Interning is stable.
	if got := f.SlotOf(a); got != 1 {
		t.Errorf("re-interned slot = %d, want 1", got)
	}
	if got := f.OffsetOf(b); got != -2 {
		t.Errorf("offset = %d, want -2", got)
	}
	if got := f.Count(); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}
