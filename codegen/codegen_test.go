package codegen

import (
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/checker"
	"github.com/hardik-vala/gopy/frontend"
	"github.com/hardik-vala/gopy/types"
)

func compile(t *testing.T, src string, opts Options) string {
	t.Helper()
	prog, err := frontend.ParseFile("test.go", []byte(src))
	be.Err(t, err, nil)
	info, err := checker.Check(prog)
	be.Err(t, err, nil)
	py, err := Generate(prog, info, opts)
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(py, Preamble))
	return strings.TrimPrefix(py, Preamble)
}

// run executes a full generated program, skipping the test when no
// interpreter is installed.
func run(t *testing.T, src string, opts Options) string {
	t.Helper()
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not found")
	}
	file := filepath.Join(t.TempDir(), "prog.py")
	be.Err(t, os.WriteFile(file, []byte(Preamble+compile(t, src, opts)), 0644), nil)
	out, err := exec.Command(python, file).CombinedOutput()
	be.Err(t, err, nil)
	return strings.TrimRight(string(out), "\n")
}

const overflow = `package main

func main() {
	var x int = 2147483647
	x = x + 1
	println(x)
}
`

func TestNormalizeWrapsIntExpressions(t *testing.T) {
	got := compile(t, overflow, Options{Normalize: true})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    x_2 = 2147483647
    x_2 = normalize((normalize(x_2) + 1))
    print(normalize(x_2))

if __name__ == '__main__':
    main_1()
`)

	got = compile(t, overflow, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    x_2 = 2147483647
    x_2 = (x_2 + 1)
    print(x_2)

if __name__ == '__main__':
    main_1()
`)
}

func TestNormalizeOverflowAtRuntime(t *testing.T) {
	be.Equal(t, run(t, overflow, Options{Normalize: true}), "-2147483648")
	be.Equal(t, run(t, overflow, Options{}), "2147483648")
}

func TestNormalizeLiteralsAndOtherTypes(t *testing.T) {
	got := compile(t, `package main

var big = 3000000000
var small = 7
var r = 'a'
var f = 1.5
var s = "s"

func main() {
	r += 'b'
	small /= 2
}
`, Options{Normalize: true})
	be.True(t, strings.Contains(got, "big_1 = normalize(3000000000)\n"))
	be.True(t, strings.Contains(got, "small_1 = 7\n"))
	be.True(t, strings.Contains(got, "r_1 = 97\n"))
	be.True(t, strings.Contains(got, "f_1 = 1.5\n"))
	be.True(t, strings.Contains(got, `s_1 = "s"`+"\n"))
	be.True(t, strings.Contains(got, "    r_1 = normalize((r_1 + 98))\n"))
	be.True(t, strings.Contains(got, "    small_1 = normalize(int_div(small_1, 2))\n"))
}

func TestContinueRepeatsPostStatement(t *testing.T) {
	got := compile(t, `package main

func main() {
	for i := 0; i < 2; i++ {
		continue
	}
}
`, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    i_3 = 0
    while (i_3 < 2):
        i_3 += 1
        continue
        i_3 += 1

if __name__ == '__main__':
    main_1()
`)
	be.Equal(t, strings.Count(got, "i_3 += 1"), 2)
}

func TestContinueUsesInnermostLoop(t *testing.T) {
	got := compile(t, `package main

func main() {
	for i := 0; i < 2; i++ {
		for {
			continue
		}
	}
}
`, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    i_3 = 0
    while (i_3 < 2):
        while True:
            continue
        i_3 += 1

if __name__ == '__main__':
    main_1()
`)
}

func TestLoneDefaultIsUnconditional(t *testing.T) {
	got := compile(t, `package main

func main() {
	switch {
	default:
		println(1)
	}
}
`, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    if True:
        print(1)

if __name__ == '__main__':
    main_1()
`)
}

func TestSwitchLowering(t *testing.T) {
	got := compile(t, `package main

func main() {
	x := 5
	switch x {
	case 1, 2:
		println("low")
	default:
		println("other")
	case 3:
		println("three")
	}
}
`, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    x_2 = 5
    if (x_2 == 1) or (x_2 == 2):
        print("low")
    elif (x_2 == 3):
        print("three")
    else:
        print("other")

if __name__ == '__main__':
    main_1()
`)
}

func TestSwitchTagIsEvaluatedOnce(t *testing.T) {
	got := compile(t, `package main

func next() int {
	return 1
}

func main() {
	switch next() {
	case 1:
	case 2:
	}
	switch next() + 1 {
	case 2:
	}
}
`, Options{})
	be.True(t, strings.Contains(got, "    _tag0 = next_1()\n    if (_tag0 == 1):\n        pass\n    elif (_tag0 == 2):\n        pass\n"))
	be.True(t, strings.Contains(got, "    _tag1 = (next_1() + 1)\n    if (_tag1 == 2):\n"))
}

func TestRenamingByDepth(t *testing.T) {
	got := compile(t, `package main

var x = 1

func main() {
	x := "a"
	{
		x := 2.5
		println(x)
	}
	println(x)
}
`, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0, x_1
    x_2 = "a"
    x_3 = 2.5
    print(x_3)
    print(x_2)

x_1 = 1

if __name__ == '__main__':
    main_1()
`)
}

func TestGlobalListNamesEveryGlobalVariable(t *testing.T) {
	got := compile(t, `package main

type pair struct {
	a, b int
}

var a int
var b = "s"

func f(n int) int {
	return n
}

var p pair

func main() {
	println(a, b)
}
`, Options{})
	be.Equal(t, got, `def f_1(n_2):
    global true_0, false_0, a_1, b_1, p_1
    return n_2

def main_1():
    global true_0, false_0, a_1, b_1, p_1
    print(a_1, b_1)

a_1 = 0
b_1 = "s"
p_1 = {'a': 0, 'b': 0}

if __name__ == '__main__':
    main_1()
`)
}

const initOrder = `package main

var a = f()
var b = 2

func f() int {
	return b
}

func main() {
	println(a)
}
`

func TestGlobalsFollowInitOrder(t *testing.T) {
	got := compile(t, initOrder, Options{})
	be.Equal(t, got, `def f_1():
    global true_0, false_0, a_1, b_1
    return b_1

def main_1():
    global true_0, false_0, a_1, b_1
    print(a_1)

b_1 = 2
a_1 = f_1()

if __name__ == '__main__':
    main_1()
`)
	be.Equal(t, run(t, initOrder, Options{}), "2")
	be.Equal(t, run(t, initOrder, Options{Normalize: true}), "2")
}

func TestInitOrderSplitsOneSpec(t *testing.T) {
	got := compile(t, `package main

var p, q = 1, 2
var x, y = f(), 3

func f() int {
	return y + p
}
`, Options{})
	be.True(t, strings.Contains(got, "\np_1, q_1 = 1, 2\ny_1 = 3\nx_1 = f_1()\n"))
}

func TestAppend(t *testing.T) {
	got := compile(t, `package main

var s []int

func main() {
	s = append(s, 1)
	t := append(s, 2)
	t = append(s, 3)
}
`, Options{})
	be.True(t, strings.Contains(got, "    s_1.append(1)\n"))
	be.True(t, strings.Contains(got, "    t_2 = (s_1 + [2])\n"))
	be.True(t, strings.Contains(got, "    t_2 = (s_1 + [3])\n"))
}

func TestExpressions(t *testing.T) {
	got := compile(t, `package main

type celsius float64

type point struct {
	x int
}

func main() {
	var p point
	var grid [2][2]bool
	c := celsius(3)
	println(7/2, 7%2, 7&^2, -7, ^7, !true)
	println(1.5/2.0, float64(7), int(c), rune(65))
	println(p.x, grid[1][0], "q\"uote")
	print(true, 1, "x")
	println()
	print()
}
`, Options{})
	for _, want := range []string{
		"    p_2 = {'x': 0}\n",
		"    grid_2 = [[False, False], [False, False]]\n",
		"    c_2 = float(3)\n",
		`    print(int_div(7, 2), int_mod(7, 2), (7 & ~2), (-7), (~7), ("true" if (not true_0) else "false"))` + "\n",
		"    print((1.5 / 2.0), float(7), int(c_2), int(65))\n",
		`    print(p_2['x'], ("true" if grid_2[1][0] else "false"), "q\"uote")` + "\n",
		`    print(str(("true" if true_0 else "false")) + str(1) + str("x"), end='')` + "\n",
		"    print()\n",
		"    print(end='')\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestIfElseChains(t *testing.T) {
	got := compile(t, `package main

func main() {
	x := 3
	if x < 0 {
		println(-1)
	} else if x == 0 {
		println(0)
	} else if y := x * 2; y > 4 {
		println(y)
	} else {
		println(1)
	}
}
`, Options{})
	be.Equal(t, got, `def main_1():
    global true_0, false_0
    x_2 = 3
    if (x_2 < 0):
        print((-1))
    elif (x_2 == 0):
        print(0)
    else:
        y_5 = (x_2 * 2)
        if (y_5 > 4):
            print(y_5)
        else:
            print(1)

if __name__ == '__main__':
    main_1()
`)
}

func TestBlankParamsAndEmptyBodies(t *testing.T) {
	got := compile(t, `package main

func f(_ int, _ bool, n int) {
}
`, Options{})
	be.Equal(t, got, `def f_1(_blank0, _blank1, n_2):
    global true_0, false_0

if __name__ == '__main__':
    pass
`)
}

func TestInitRunsBeforeMain(t *testing.T) {
	got := compile(t, "package main\n\nfunc main() {\n}\n\nfunc init() {\n}\n", Options{})
	be.True(t, strings.HasSuffix(got, "if __name__ == '__main__':\n    init_1()\n    main_1()\n"))
}

func TestMissingAnnotationIsAnError(t *testing.T) {
	prog, err := frontend.ParseFile("test.go", []byte("package main\n\nvar x int\n"))
	be.Err(t, err, nil)
	info := &checker.Info{Types: map[ast.Node]types.Type{}}
	_, err = Generate(prog, info, Options{})
	be.True(t, err != nil)
	be.True(t, strings.HasPrefix(err.Error(), "codegen: no type recorded for"))
}

func TestPyFloat(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{1e21, "1e+21"},
		{math.Inf(1), "float('inf')"},
		{math.Inf(-1), "float('-inf')"},
		{math.NaN(), "float('nan')"},
	}
	for _, test := range tests {
		be.Equal(t, pyFloat(test.f), test.want)
	}
}

func TestPyString(t *testing.T) {
	be.Equal(t, pyString("x"), "'x'")
	be.Equal(t, pyString("it's"), `'it\'s'`)
	be.Equal(t, pyString(`a\b`), `'a\\b'`)
}

func TestPyValue(t *testing.T) {
	be.Equal(t, pyValue(false), "False")
	be.Equal(t, pyValue(true), "True")
	be.Equal(t, pyValue(int64(0)), "0")
	be.Equal(t, pyValue(0.0), "0.0")
	be.Equal(t, pyValue(""), `""`)
	be.Equal(t, pyValue([]types.Value{}), "[]")

	point := &types.Struct{Fields: []*types.Field{
		{Name: "x", Type: types.Int},
		{Name: "tags", Type: &types.Slice{Elem: types.String}},
		{Name: "grid", Type: &types.Array{Elem: types.Float64, Len: 2}},
	}}
	be.Equal(t, pyValue(types.DefaultValue(point)), "{'x': 0, 'tags': [], 'grid': [0.0, 0.0]}")
}

func TestIntBinary(t *testing.T) {
	be.Equal(t, intBinary("/", "a", "b"), "int_div(a, b)")
	be.Equal(t, intBinary("%", "a", "b"), "int_mod(a, b)")
	be.Equal(t, intBinary("&^", "a", "b"), "(a & ~b)")
	be.Equal(t, intBinary("<<", "a", "b"), "(a << b)")
}

func TestGeneratedProgramsRun(t *testing.T) {
	got := run(t, `package main

type point struct {
	x, y int
}

var total int

func add(p point) {
	total += p.x * p.y
}

func main() {
	var pts []point
	for i := 1; i <= 3; i++ {
		var p point
		p.x = i
		p.y = -i
		pts = append(pts, p)
	}
	for i := 0; i < 3; i++ {
		add(pts[i])
	}
	println(total, -7/2, -7%2)
	switch {
	case total < 0:
		println("negative")
	}
}
`, Options{Normalize: true})
	be.Equal(t, got, "-14 -3 -1\nnegative")
}
