package main

import (
	"fmt"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/checker"
	"github.com/hardik-vala/gopy/codegen"
	"github.com/hardik-vala/gopy/frontend"
)

// compileSource parses, checks and translates one GoLite file.
func compileSource(filename string, src []byte, opts codegen.Options, verbose bool) (string, error) {
	if verbose {
		fmt.Printf("Parsing %s...\n", filename)
	}
	prog, err := frontend.ParseFile(filename, src)
	if err != nil {
		return "", err
	}
	return compileProgram(prog, opts, verbose)
}

// compileDir is compileSource for a package spread over a directory.
func compileDir(dir string, opts codegen.Options, verbose bool) (string, error) {
	if verbose {
		fmt.Printf("Loading package in %s...\n", dir)
	}
	prog, err := frontend.ParseDir(dir)
	if err != nil {
		return "", err
	}
	return compileProgram(prog, opts, verbose)
}

func compileProgram(prog *ast.Program, opts codegen.Options, verbose bool) (string, error) {
	if verbose {
		fmt.Printf("Parsed %d top-level declarations\n", len(prog.Decls))
		fmt.Printf("Type checking...\n")
	}
	info, err := checker.Check(prog)
	if err != nil {
		return "", err
	}
	if verbose {
		fmt.Printf("Annotated %d nodes\n", len(info.Types))
		fmt.Printf("Generating Python...\n")
	}
	return codegen.Generate(prog, info, opts)
}

// stripPreamble returns the part of a generated program after the fixed
// preamble.
func stripPreamble(py string) string {
	return strings.TrimPrefix(py, codegen.Preamble)
}
