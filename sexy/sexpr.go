// Package sexy reads the S-expressions used as expected values in the
// Markdown test corpus, and extracts test cases from that corpus.
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

// Node is one datum: an atom or a list.
type Node struct {
	Type NodeType

	// NodeSymbol, NodeString, NodeInteger
	Text string

	// NodeList
	Items []*Node
}

func NewSymbol(name string) *Node  { return &Node{Type: NodeSymbol, Text: name} }
func NewString(value string) *Node { return &Node{Type: NodeString, Text: value} }
func NewInteger(text string) *Node { return &Node{Type: NodeInteger, Text: text} }
func NewEllipsis() *Node           { return &Node{Type: NodeEllipsis} }
func NewList(items ...*Node) *Node { return &Node{Type: NodeList, Items: items} }
func (n *Node) IsAtom() bool       { return n.Type != NodeList }

// String renders the canonical form: single spaces, strings quoted with only
// \" and \\ escaped.
func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
}

// Match reports whether n matches pattern. An ellipsis in a pattern matches
// any single datum; as the last item of a pattern list it matches any
// remaining items.
func Match(pattern, n *Node) bool {
	if pattern.Type == NodeEllipsis {
		return true
	}
	if pattern.Type != n.Type {
		return false
	}
	if pattern.Type != NodeList {
		return pattern.Text == n.Text
	}
	for i, p := range pattern.Items {
		if p.Type == NodeEllipsis && i == len(pattern.Items)-1 {
			return true
		}
		if i >= len(n.Items) || !Match(p, n.Items[i]) {
			return false
		}
	}
	return len(pattern.Items) == len(n.Items)
}

// Parse reads exactly one datum from input. Comments run from ';' to the
// end of the line.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: &lexer{input: []rune(input)}}
	p.next()
	n, err := p.datum()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokenEOF {
		return nil, fmt.Errorf("offset %d: expected EOF but got %s", p.tok.pos, p.tok.typ)
	}
	return n, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenError
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenError:
		return "error"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	}
	return fmt.Sprintf("unknown token %d", int(t))
}

type token struct {
	typ  tokenType
	text string
	pos  int
}

type parser struct {
	lexer *lexer
	tok   token
}

func (p *parser) next() {
	p.tok = p.lexer.next()
}

func (p *parser) datum() (*Node, error) {
	tok := p.tok
	switch tok.typ {
	case tokenError:
		return nil, fmt.Errorf("offset %d: %s", tok.pos, tok.text)
	case tokenSymbol:
		p.next()
		return NewSymbol(tok.text), nil
	case tokenString:
		p.next()
		return NewString(tok.text), nil
	case tokenInteger:
		p.next()
		return NewInteger(tok.text), nil
	case tokenEllipsis:
		p.next()
		return NewEllipsis(), nil
	case tokenLParen:
		p.next()
		list := NewList()
		for p.tok.typ != tokenRParen {
			if p.tok.typ == tokenEOF {
				return nil, fmt.Errorf("offset %d: expected ')' but got EOF", p.tok.pos)
			}
			item, err := p.datum()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		p.next()
		return list, nil
	}
	return nil, fmt.Errorf("offset %d: unexpected token: %s", tok.pos, tok.typ)
}

type lexer struct {
	input []rune
	pos   int
}

func (l *lexer) peek(off int) rune {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

func (l *lexer) next() token {
	for {
		for unicode.IsSpace(l.peek(0)) {
			l.pos++
		}
		if l.peek(0) != ';' {
			break
		}
		for c := l.peek(0); c != '\n' && c != 0; c = l.peek(0) {
			l.pos++
		}
	}

	start := l.pos
	c := l.peek(0)
	switch {
	case c == 0:
		return token{typ: tokenEOF, pos: start}
	case c == '(':
		l.pos++
		return token{typ: tokenLParen, text: "(", pos: start}
	case c == ')':
		l.pos++
		return token{typ: tokenRParen, text: ")", pos: start}
	case c == '"':
		return l.str()
	case c == '.':
		if l.peek(1) == '.' && l.peek(2) == '.' {
			l.pos += 3
			return token{typ: tokenEllipsis, text: "...", pos: start}
		}
		return token{typ: tokenError, text: "unexpected character '.'", pos: start}
	case unicode.IsDigit(c) || ((c == '-' || c == '+') && unicode.IsDigit(l.peek(1))):
		l.pos++
		for unicode.IsDigit(l.peek(0)) {
			l.pos++
		}
		return token{typ: tokenInteger, text: string(l.input[start:l.pos]), pos: start}
	case isSymbolChar(c):
		for isSymbolChar(l.peek(0)) {
			l.pos++
		}
		return token{typ: tokenSymbol, text: string(l.input[start:l.pos]), pos: start}
	}
	return token{typ: tokenError, text: fmt.Sprintf("unexpected character '%c'", c), pos: start}
}

func (l *lexer) str() token {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		c := l.peek(0)
		switch c {
		case 0:
			return token{typ: tokenError, text: "unterminated string", pos: start}
		case '"':
			l.pos++
			return token{typ: tokenString, text: sb.String(), pos: start}
		case '\\':
			esc := l.peek(1)
			if esc != '"' && esc != '\\' {
				return token{typ: tokenError, text: fmt.Sprintf("invalid escape sequence: \\%c", esc), pos: l.pos}
			}
			sb.WriteRune(esc)
			l.pos += 2
		default:
			sb.WriteRune(c)
			l.pos++
		}
	}
}

// Symbols cover names and operators such as op-assign, +, <= and &^.
func isSymbolChar(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune("_-+*/%<>=!&|^", r)
}
