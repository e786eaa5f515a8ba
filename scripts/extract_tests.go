package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/hardik-vala/gopy/checker"
	"github.com/hardik-vala/gopy/codegen"
	"github.com/hardik-vala/gopy/frontend"
	"github.com/hardik-vala/gopy/sexy"
)

// TestCase is one GoLite sample program with its recorded results.
type TestCase struct {
	Name       string
	Input      string
	Python     string
	PythonNorm string
	Output     string
	Error      string
	SourceFile string
}

// Extractor compiles GoLite sample programs and turns them into Markdown
// test sections for the test/ corpus.
type Extractor struct {
	python string
	norm   bool
	cases  []TestCase
}

func NewExtractor(python string, norm bool) *Extractor {
	return &Extractor{python: python, norm: norm}
}

func (e *Extractor) extractFromFiles(pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %s", pattern)
	}

	for _, file := range files {
		if err := e.visitFile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to process %s: %v\n", file, err)
		}
	}
	return nil
}

func (e *Extractor) visitFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	base := filepath.Base(filename)
	tc := TestCase{
		Name:       e.generateTestName(strings.TrimSuffix(base, ".go")),
		Input:      strings.TrimSpace(string(src)),
		SourceFile: base,
	}

	// A sample that fails to compile becomes a compile-error test.
	prog, err := frontend.ParseFile(base, src)
	if err != nil {
		tc.Error = err.Error()
		e.add(tc)
		return nil
	}
	info, err := checker.Check(prog)
	if err != nil {
		tc.Error = err.Error()
		e.add(tc)
		return nil
	}

	py, err := codegen.Generate(prog, info, codegen.Options{})
	if err != nil {
		return err
	}
	tc.Python = e.cleanPython(py)
	if e.norm {
		norm, err := codegen.Generate(prog, info, codegen.Options{Normalize: true})
		if err != nil {
			return err
		}
		tc.PythonNorm = e.cleanPython(norm)
	}
	if e.python != "" {
		out, err := e.execute(py)
		if err != nil {
			return fmt.Errorf("running generated Python: %w", err)
		}
		tc.Output = strings.TrimRight(out, "\n")
	}

	e.add(tc)
	return nil
}

func (e *Extractor) cleanPython(py string) string {
	return strings.TrimSpace(strings.TrimPrefix(py, codegen.Preamble))
}

func (e *Extractor) execute(py string) (string, error) {
	f, err := os.CreateTemp("", "gopy-*.py")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(py); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	out, err := exec.Command(e.python, f.Name()).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w\n%s", err, out)
	}
	return string(out), nil
}

func (e *Extractor) add(tc TestCase) {
	for _, existing := range e.cases {
		if existing.Input == tc.Input {
			return
		}
	}
	e.cases = append(e.cases, tc)
}

// generateTestName turns a file name like "nested_loops" or "nestedLoops"
// into "nested loops".
func (e *Extractor) generateTestName(name string) string {
	var result []rune
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			result = append(result, ' ')
		case i > 0 && unicode.IsUpper(r):
			result = append(result, ' ', unicode.ToLower(r))
		default:
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}

func (e *Extractor) generateSexyMarkdown() string {
	if len(e.cases) == 0 {
		return "# No test cases found\n"
	}

	sort.Slice(e.cases, func(i, j int) bool {
		return e.cases[i].SourceFile < e.cases[j].SourceFile
	})

	var sb strings.Builder
	sb.WriteString("# Extracted tests\n\n")
	sb.WriteString("Generated from GoLite sample programs.\n\n")

	fence := func(lang, content string) {
		fmt.Fprintf(&sb, "```%s\n%s\n```\n", lang, content)
	}
	for _, tc := range e.cases {
		fmt.Fprintf(&sb, "## Test: %s\n", tc.Name)
		fence(string(sexy.InputTypeProgram), tc.Input)
		if tc.Error != "" {
			fence(string(sexy.AssertionTypeCompileError), tc.Error)
			sb.WriteString("\n")
			continue
		}
		fence(string(sexy.AssertionTypePython), tc.Python)
		if tc.PythonNorm != "" {
			fence(string(sexy.AssertionTypePythonNorm), tc.PythonNorm)
		}
		if e.python != "" {
			fence(string(sexy.AssertionTypeExecute), tc.Output)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func main() {
	norm := flag.Bool("norm", false, "also record python-norm output")
	python := flag.String("python", "", "Python interpreter used to record execute output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: go run ./scripts [-norm] [-python python3] <glob>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	extractor := NewExtractor(*python, *norm)
	if err := extractor.extractFromFiles(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := extractor.generateSexyMarkdown()

	// The corpus runner must be able to read back what was written.
	if _, err := sexy.ExtractTestCases(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: generated Markdown does not parse: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(output)
}
