// Package lc3 provides the textual model of the LC-3 instruction set:
// mnemonics, registers, assembler directives, and line formatting for
// assembly units consumed by lc3as-compatible assemblers.
package lc3

// Op is an LC-3 mnemonic or assembler directive name.
type Op string

// The LC-3 primitive set. BR carries an optional condition-code suffix;
// the suffixed forms are listed explicitly because the assembler treats
// each spelling as its own mnemonic.
const (
	OpADD Op = "ADD"
	OpAND Op = "AND"
	OpNOT Op = "NOT"

	OpLD  Op = "LD"
	OpLDI Op = "LDI"
	OpLDR Op = "LDR"
	OpLEA Op = "LEA"
	OpST  Op = "ST"
	OpSTI Op = "STI"
	OpSTR Op = "STR"

	OpBR   Op = "BR"
	OpBRn  Op = "BRn"
	OpBRz  Op = "BRz"
	OpBRp  Op = "BRp"
	OpBRnz Op = "BRnz"
	OpBRnp Op = "BRnp"
	OpBRzp Op = "BRzp"

	OpJSR Op = "JSR"
	OpRET Op = "RET"

	// Traps.
	OpOUT  Op = "OUT"
	OpPUTS Op = "PUTS"
	OpHALT Op = "HALT"
)

// Reg is a general-purpose register name.
type Reg string

// The eight architectural registers. R5 is the frame pointer, R6 the
// stack pointer, and R7 the link register; R0 doubles as the trap
// argument and function result.
const (
	R0 Reg = "R0"
	R1 Reg = "R1"
	R2 Reg = "R2"
	R3 Reg = "R3"
	R4 Reg = "R4"
	R5 Reg = "R5"
	R6 Reg = "R6"
	R7 Reg = "R7"
)
