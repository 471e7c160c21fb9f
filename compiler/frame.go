package compiler

import "github.com/llir/llvm/ir/value"

// MaxSlots is the largest frame the prologue can reserve: two ADD #-16
// steps fit the 5-bit immediate range, anything larger cannot be encoded.
const MaxSlots = 32

// Frame tracks the stack-frame layout of a single function. Every SSA
// value that is not a constant lives in exactly one 16-bit slot, addressed
// as a negative offset from R5. Slot 0 is never handed out: the word at
// R5+0 holds the saved frame pointer, and index 0 doubles as the "not
// interned" sentinel.
type Frame struct {
	slots map[value.Value]int
	count int
}

// NewFrame creates an empty frame layout.
func NewFrame() *Frame {
	return &Frame{slots: make(map[value.Value]int)}
}

// SlotOf interns val, allocating the next slot on first reference.
// Returned indices start at 1 and are never reassigned.
func (f *Frame) SlotOf(val value.Value) int {
	if s, ok := f.slots[val]; ok {
		return s
	}
	f.count++
	f.slots[val] = f.count
	return f.count
}

// OffsetOf returns val's R5-relative frame offset, interning it if needed.
func (f *Frame) OffsetOf(val value.Value) int {
	return -f.SlotOf(val)
}

// Count returns the number of allocated slots.
func (f *Frame) Count() int {
	return f.count
}
