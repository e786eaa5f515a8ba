package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Binary expressions

## Test: +
` + fence + `golite-expr
1 + 2
` + fence + `
` + fence + `ast
(binary "+" (integer 1) (integer 2))
` + fence + `

## Test: -
` + fence + `golite-expr
1 - 2
` + fence + `
` + fence + `types
int
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "+")
	be.Equal(t, tc1.Line, 3)
	be.Equal(t, tc1.Input, "1 + 2")
	be.Equal(t, tc1.InputType, InputTypeExpr)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc1.Assertions[0].ParsedSexy.String(), `(binary "+" (integer 1) (integer 2))`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "-")
	be.Equal(t, tc2.Assertions[0].Type, AssertionTypeTypes)
	be.Equal(t, tc2.Assertions[0].Content, "int")
	be.True(t, tc2.Assertions[0].ParsedSexy == nil)
}

func TestExtractTestCases_ProgramWithPythonAndExecute(t *testing.T) {
	markdown := `## Test: hello
` + fence + `golite-program
package main

func main() {
	println("hi")
}
` + fence + `
` + fence + `python
def main_1():
    global true_0, false_0
    print("hi")
` + fence + `
` + fence + `execute
hi
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	tc := testCases[0]
	be.Equal(t, tc.InputType, InputTypeProgram)
	be.True(t, strings.HasPrefix(tc.Input, "package main"))
	be.Equal(t, len(tc.Assertions), 2)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypePython)
	be.Equal(t, tc.Assertions[0].Content, "def main_1():\n    global true_0, false_0\n    print(\"hi\")")
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeExecute)
	be.Equal(t, tc.Assertions[1].Content, "hi")
}

func TestExtractTestCases_AllAssertionTypes(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("## Test: everything\n" + fence + "golite-program\npackage main\n" + fence + "\n")
	for _, a := range []string{"python", "python-norm", "execute", "execute-norm", "compile-error"} {
		sb.WriteString(fence + a + "\nx\n" + fence + "\n")
	}
	testCases, err := ExtractTestCases(sb.String())
	be.Err(t, err, nil)
	be.Equal(t, len(testCases[0].Assertions), 5)
	be.Equal(t, testCases[0].Assertions[4].Type, AssertionTypeCompileError)
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_AllowFencesWithoutLanguage(t *testing.T) {
	markdown := "Some prose.\n\n" + fence + "\nnot a test\n" + fence + "\n\n## Test: x\n" +
		fence + "golite-expr\nx\n" + fence + "\n" + fence + "\ncommentary\n" + fence + "\n" +
		fence + "ast\n(ident \"x\")\n" + fence + "\n"
	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, len(testCases[0].Assertions), 1)
}

func TestExtractTestCases_Errors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		contains string
	}{
		{
			"fence outside test",
			fence + "golite-expr\n1\n" + fence + "\n",
			"line 2: golite-expr fence found outside of test case",
		},
		{
			"unknown fence outside test",
			fence + "zong-expr\n1\n" + fence + "\n",
			"unknown fence language 'zong-expr' found outside of test case",
		},
		{
			"unknown fence in test",
			"## Test: a\n" + fence + "golite-expr\n1\n" + fence + "\n" + fence + "wasm\n1\n" + fence + "\n",
			"unknown fence language 'wasm' in test 'a'",
		},
		{
			"missing input",
			"## Test: a\n" + fence + "ast\n(integer 1)\n" + fence + "\n",
			"test 'a' has no input fence",
		},
		{
			"missing assertion",
			"## Test: a\n" + fence + "golite-expr\n1\n" + fence + "\n",
			"test 'a' has no assertion fences",
		},
		{
			"multiple inputs",
			"## Test: a\n" + fence + "golite-expr\n1\n" + fence + "\n" + fence + "golite-expr\n2\n" + fence + "\n",
			"multiple input fences found in test 'a'",
		},
		{
			"bad sexy",
			"## Test: a\n" + fence + "golite-expr\n1\n" + fence + "\n" + fence + "ast\n(integer 1\n" + fence + "\n",
			"failed to parse Sexy assertion in test 'a'",
		},
		{
			"error in second test",
			"## Test: ok\n" + fence + "golite-expr\n1\n" + fence + "\n" + fence + "types\nint\n" + fence + "\n" +
				"## Test: broken\n" + fence + "types\nint\n" + fence + "\n",
			"test 'broken' has no input fence",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), test.contains))
		})
	}
}
