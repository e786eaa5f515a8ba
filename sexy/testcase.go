package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language of the fence holding a test's GoLite source.
type InputType string

const (
	InputTypeExpr    InputType = "golite-expr"
	InputTypeProgram InputType = "golite-program"
)

// AssertionType is the language of a fence holding an expected result.
type AssertionType string

const (
	// AssertionTypeAST is the S-expression dump of the parsed input.
	AssertionTypeAST AssertionType = "ast"
	// AssertionTypeTypes is the type of an expression, or one
	// "name type" line per package-level symbol of a program.
	AssertionTypeTypes AssertionType = "types"
	// AssertionTypePython is the generated Python after the preamble.
	AssertionTypePython     AssertionType = "python"
	AssertionTypePythonNorm AssertionType = "python-norm"
	// AssertionTypeExecute is the output of running the generated Python.
	AssertionTypeExecute     AssertionType = "execute"
	AssertionTypeExecuteNorm AssertionType = "execute-norm"
	// AssertionTypeCompileError is the first diagnostic, "line:col: msg".
	AssertionTypeCompileError AssertionType = "compile-error"
)

var inputFences = map[string]bool{
	string(InputTypeExpr):    true,
	string(InputTypeProgram): true,
}

var assertionFences = map[string]bool{
	string(AssertionTypeAST):          true,
	string(AssertionTypeTypes):        true,
	string(AssertionTypePython):       true,
	string(AssertionTypePythonNorm):   true,
	string(AssertionTypeExecute):      true,
	string(AssertionTypeExecuteNorm):  true,
	string(AssertionTypeCompileError): true,
}

type Assertion struct {
	Type    AssertionType
	Content string
	// ParsedSexy is set for ast assertions only.
	ParsedSexy *Node
}

// TestCase is one "Test: name" section of a Markdown corpus file.
type TestCase struct {
	Name       string
	Line       int
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and returns its test cases in
// document order.
//
// A test starts at a heading "Test: name" and holds exactly one input
// fence followed by at least one assertion fence. Fences without a language
// are commentary and ignored; any other fence language is an error.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	source := []byte(markdownContent)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validateTestCase(current); err != nil {
			return err
		}
		testCases = append(testCases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractTextFromNode(n, source)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{Name: name, Line: headingLine(n, source)}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			if language == "" {
				return ast.WalkContinue, nil
			}
			lineNum := getLineNumber(n, source)
			known := inputFences[language] || assertionFences[language]

			if current == nil {
				if known {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
				}
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", lineNum, language)
			}
			if !known {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, current.Name)
			}

			content := strings.TrimRight(extractCodeBlockContent(n, source), "\n")
			if inputFences[language] {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, current.Name)
				}
				current.Input = content
				current.InputType = InputType(language)
				return ast.WalkContinue, nil
			}

			assertion := Assertion{Type: AssertionType(language), Content: content}
			if assertion.Type == AssertionTypeAST {
				parsed, err := Parse(content)
				if err != nil {
					return ast.WalkStop, fmt.Errorf("line %d: failed to parse Sexy assertion in test '%s': %w", lineNum, current.Name, err)
				}
				assertion.ParsedSexy = parsed
			}
			current.Assertions = append(current.Assertions, assertion)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return testCases, nil
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func validateTestCase(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

// getLineNumber returns the 1-based line of the first content line of a
// block node.
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	return lineAt(node.Lines().At(0).Start, source)
}

func headingLine(h *ast.Heading, source []byte) int {
	if h.Lines().Len() == 0 {
		return 0
	}
	return lineAt(h.Lines().At(0).Start, source)
}

func lineAt(offset int, source []byte) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
