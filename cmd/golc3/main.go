// golc3 compiles LLVM IR (.ll) files to LC-3 assembly.
//
// Usage:
//
//	golc3 [flags] file.ll
//
// The output name is the module's source_filename (falling back to the
// input path) with its extension replaced by .asm, written to the current
// directory. Flag defaults can be overridden through the environment
// (LC3_START_ADDR, LC3_STACK_BASE, LC3_SIGNED_MUL, LC3_NO_COMMENT).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/xyproto/env/v2"

	"github.com/NERVsystems/golc3/compiler"
)

func main() {
	startAddr := flag.String("lc3-start-addr", env.Str("LC3_START_ADDR", "x3000"),
		"starting address of the LC-3 assembly unit")
	stackBase := flag.String("lc3-stack-base", env.Str("LC3_STACK_BASE", "xFE00"),
		"base address of the stack")
	signedMul := flag.Bool("signed-mul", env.Bool("LC3_SIGNED_MUL"),
		"use signed multiplication")
	noComment := flag.Bool("no-comment", env.Bool("LC3_NO_COMMENT"),
		"suppress IR comments in the output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: golc3 [flags] file.ll\n")
		os.Exit(1)
	}
	input := flag.Arg(0)

	m, err := asm.ParseFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golc3: %v\n", err)
		os.Exit(1)
	}

	c := compiler.New(compiler.Config{
		StartAddr: *startAddr,
		StackBase: *stackBase,
		SignedMul: *signedMul,
		NoComment: *noComment,
	})
	prog, err := c.Compile(m)
	if err != nil {
		var unsup *compiler.UnsupportedError
		var locals *compiler.TooManyLocalsError
		switch {
		case errors.As(err, &unsup):
			fmt.Fprintf(os.Stderr, "%s\nNo File Generated\n", unsup.Error())
		case errors.As(err, &locals):
			fmt.Fprintf(os.Stderr, "%s\nNo File Generated\n", locals.Error())
		default:
			fmt.Fprintf(os.Stderr, "golc3: %v\n", err)
		}
		os.Exit(1)
	}

	name := outputName(m, input)
	if err := prog.WriteFile(name); err != nil {
		fmt.Fprintf(os.Stderr, "golc3: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "One file generated: %s\n", name)
}

// outputName derives <stem>.asm from the module's source file attribute,
// falling back to the input path.
func outputName(m *ir.Module, input string) string {
	src := m.SourceFilename
	if src == "" {
		src = input
	}
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".asm"
}
