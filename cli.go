package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/checker"
	"github.com/hardik-vala/gopy/codegen"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/frontend"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `gopy - a GoLite to Python 3 compiler

Usage:
    gopy <command> [arguments]

Commands:
    build <file>    Compile a GoLite file to Python
    run <file>      Compile a GoLite file and execute it with Python
    check <file>    Parse and type-check a GoLite file
    eval <expr>     Parse and type-check a single expression
    repl            Start an interactive session
    help            Show this help message

Examples:
    gopy build -o fib.py fib.go
    gopy build -pkg ./examples/sort
    gopy run -norm overflow.go
    gopy eval -types '1 + 2 * 3'

Use "gopy <command> -h" for more information about a command.
`)
}

// pythonDefault is the interpreter used by run and the REPL unless -python
// is given.
func pythonDefault() string {
	if p := os.Getenv("GOPY_PYTHON"); p != "" {
		return p
	}
	return "python3"
}

// reportError prints a compilation error, quoting the source line when the
// error carries a position into src.
func reportError(filename string, src []byte, err error) {
	var de *diag.Error
	if src != nil && errors.As(err, &de) {
		diag.Display(os.Stderr, filename, src, de)
		return
	}
	fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.py)")
	pkg := fs.String("pkg", "", "Compile every file of the package in this directory")
	norm := fs.Bool("norm", false, "Wrap int and rune arithmetic to 32 bits")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gopy build [-o output] [-norm] [-v] <file | -pkg dir>\n")
		fmt.Fprintf(os.Stderr, "Compile GoLite source to Python\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	opts := codegen.Options{Normalize: *norm}
	var (
		py, outputFile string
		err            error
	)
	switch {
	case *pkg != "" && fs.NArg() == 0:
		outputFile = filepath.Base(filepath.Clean(*pkg)) + ".py"
		py, err = compileDir(*pkg, opts, *verbose)
		if err != nil {
			reportError(*pkg, nil, err)
			os.Exit(1)
		}
	case *pkg == "" && fs.NArg() == 1:
		filename := fs.Arg(0)
		outputFile = strings.TrimSuffix(filename, ".go") + ".py"
		src, rerr := os.ReadFile(filename)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, rerr)
			os.Exit(1)
		}
		py, err = compileSource(filename, src, opts, *verbose)
		if err != nil {
			reportError(filename, src, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument or -pkg\n")
		fs.Usage()
		os.Exit(1)
	}
	if *output != "" {
		outputFile = *output
	}

	if err := os.WriteFile(outputFile, []byte(py), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing Python file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(py))
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	norm := fs.Bool("norm", false, "Wrap int and rune arithmetic to 32 bits")
	python := fs.String("python", pythonDefault(), "Python interpreter (default from $GOPY_PYTHON)")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gopy run [-norm] [-python path] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a GoLite file and execute it with Python\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	py, err := compileSource(filename, src, codegen.Options{Normalize: *norm}, *verbose)
	if err != nil {
		reportError(filename, src, err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Generated %d bytes of Python\n", len(py))
		fmt.Printf("Executing with %s...\n", *python)
	}

	if err := executePython(*python, py); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gopy check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and type-check a GoLite file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	prog, err := frontend.ParseFile(filename, src)
	if err != nil {
		reportError(filename, src, err)
		os.Exit(1)
	}
	info, err := checker.Check(prog)
	if err != nil {
		reportError(filename, src, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ast.ToSExpr(prog))
		for _, sym := range info.Globals.Symbols() {
			fmt.Printf("%s %s %v\n", sym.Kind, sym.Name, sym.Type)
		}
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	showTypes := fs.Bool("types", false, "Also print the type of the expression")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gopy eval [-types] <expr>\n")
		fmt.Fprintf(os.Stderr, "Parse and type-check a single GoLite expression\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one expression argument\n")
		fs.Usage()
		os.Exit(1)
	}

	code := fs.Arg(0)
	e, err := frontend.ParseExpr(code)
	if err != nil {
		reportError("<expr>", []byte(code), err)
		os.Exit(1)
	}
	fmt.Println(ast.ToSExpr(e))

	info, err := checker.CheckExpr(e)
	if err != nil {
		reportError("<expr>", []byte(code), err)
		os.Exit(1)
	}
	if *showTypes {
		fmt.Printf("type: %v\n", info.TypeOf(e))
	}
}

func replCommand(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	norm := fs.Bool("norm", false, "Wrap int and rune arithmetic to 32 bits")
	python := fs.String("python", pythonDefault(), "Python interpreter for :run")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gopy repl [-norm] [-python path]\n")
		fmt.Fprintf(os.Stderr, "Start an interactive GoLite session\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	os.Exit(repl(codegen.Options{Normalize: *norm}, *python))
}

// executePython runs a generated program with the given interpreter,
// passing through its standard streams.
func executePython(python, py string) error {
	f, err := os.CreateTemp("", "gopy-*.py")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(py); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	cmd := exec.Command(python, f.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "run":
		runCommand(args)
	case "check":
		checkCommand(args)
	case "eval":
		evalCommand(args)
	case "repl":
		replCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
