package lc3

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLine(t *testing.T) {
	tests := []struct {
		op       Op
		operands []string
		want     string
	}{
		// Short mnemonics get a second tab so operands line up.
		{OpADD, []string{"R1", "R1", "R2"}, "\tADD\t\tR1, R1, R2\n"},
		{OpLD, []string{"R6", "STACK_BASE"}, "\tLD\t\tR6, STACK_BASE\n"},
		{OpBRp, []string{"SHL_LOOP_1"}, "\tBRp\t\tSHL_LOOP_1\n"},
		{OpBRnp, []string{"PHI_NEXT_2"}, "\tBRnp\tPHI_NEXT_2\n"},
		{OpSTR, []string{"R1", "R5", "#-1"}, "\tSTR\t\tR1, R5, #-1\n"},
		{OpPUTS, nil, "\tPUTS\n"},
		{OpRET, nil, "\tRET\n"},
	}
	for _, tt := range tests {
		got := Line(tt.op, tt.operands...)
		if got != tt.want {
			t.Errorf("Line(%s, %v) = %q, want %q", tt.op, tt.operands, got, tt.want)
		}
	}
}

func TestDirective(t *testing.T) {
	if got := Directive(".ORIG", "x3000"); got != "\t.ORIG\tx3000\n" {
		t.Errorf("Directive = %q", got)
	}
}

func TestImm(t *testing.T) {
	if got := Imm(-7); got != "#-7" {
		t.Errorf("Imm(-7) = %q", got)
	}
	if got := Imm(0); got != "#0" {
		t.Errorf("Imm(0) = %q", got)
	}
}

func TestFill(t *testing.T) {
	if got := Fill("VALUE_3", "#-5"); got != "VALUE_3\n\t.FILL\t#-5\n" {
		t.Errorf("Fill = %q", got)
	}
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hi\n", `Hi\n`},
		{"a\tb", `a\tb`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"nul\x00", `nul\0`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := EscapeString(tt.in); got != tt.want {
			t.Errorf("EscapeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringz(t *testing.T) {
	got := Stringz("VALUE_1", "Hi\n")
	want := "VALUE_1\n\t.STRINGZ\t\"Hi\\n\"\n"
	if got != want {
		t.Errorf("Stringz = %q, want %q", got, want)
	}
}

func TestProgramEnvelope(t *testing.T) {
	var p Program
	p.Orig("x3000")
	p.Raw(Line(OpLD, "R6", "STACK_BASE"))
	p.End()
	text := p.String()
	if !strings.HasPrefix(text, "\t.ORIG\tx3000\n") {
		t.Errorf("program does not start with .ORIG: %q", text)
	}
	if !strings.HasSuffix(text, "\t.END") {
		t.Errorf("program does not end with .END: %q", text)
	}
}

func TestProgramWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.asm")

	var p Program
	p.Orig("x3000")
	p.End()
	if err := p.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != p.String() {
		t.Errorf("file content mismatch: %q", data)
	}

	// No pending temporary left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("pending file still present: %v", err)
	}
}
