/*
Package parser provides the wisp reader.

	expr    := list | vector | map | '@' <expr> | <term>
	list    := '(' <expr>* ')'
	vector  := '[' <expr>* ']'
	map     := '{' (<expr> <expr>)* '}'
	term    := <number> | <string> | <keyword> | <symbol>
	number  := /[+-]?[0-9]+/
	string  := '"' <content with standard escapes> '"'
	keyword := ':' <symbol>
	symbol  := /[a-zA-Z_+\-*\/=<>!&?%][0-9a-zA-Z_+\-*\/=<>!&?%]*\/

The symbols nil, true, and false read as the corresponding constant values.
A leading '@' reads as a deref form.  Comments run from ';' to end of line.
*/
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"
	"github.com/wisp-lang/wisp/lisp"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeVector
	nodeMap
	nodeDeref
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeVector:  "VECTOR",
	nodeMap:     "MAP",
	nodeDeref:   "DEREF",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return nodeTypeStrings[nodeInvalid]
	}
	return nodeTypeStrings[t]
}

// NewReader returns a lisp.Reader backed by this parser.
func NewReader() lisp.Reader {
	return &reader{}
}

type reader struct{}

// Read parses the full contents of r.  Blank or comment-only input yields no
// expressions and no error.
func (p *reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, complete, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if !complete {
		return nil, fmt.Errorf("%s: %w", name, io.ErrUnexpectedEOF)
	}
	return v, nil
}

// Parse parses expressions from text until it is exhausted.  The returned
// bool reports whether the entire text was consumed; unconsumed trailing
// input typically means an expression is still missing a closing delimiter.
func Parse(text []byte) ([]*lisp.LVal, bool, error) {
	var v []*lisp.LVal
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		lval := getLVal(root)
		if lval != nil {
			if lval.Type == lisp.LError {
				return v, true, lisp.GoError(lval)
			}
			v = append(v, lval)
		}
		root, s = parser(s)
	}
	if !s.Endof() && len(strings.TrimSpace(string(text[s.GetCursor():]))) > 0 {
		return v, false, nil
	}
	return v, true, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("[", "OPENB")
	closeB := parsec.Atom("]", "CLOSEB")
	openC := parsec.Atom("{", "OPENC")
	closeC := parsec.Atom("}", "CLOSEC")
	deref := parsec.Atom("@", "DEREF")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	number := parsec.Token(`[+-]?[0-9]+`, "NUMBER")
	keyword := parsec.Token(`:[0-9a-zA-Z_+\-*/\=<>!&?%]+`, "KEYWORD")
	symbol := parsec.Token(`[a-zA-Z_+\-*/\=<>!&?%][0-9a-zA-Z_+\-*/\=<>!&?%]*`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		parsec.String(),
		number,
		keyword,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, closeP)
	vector := parsec.And(astNode(nodeVector), openB, exprList, closeB)
	mapLit := parsec.And(astNode(nodeMap), openC, exprList, closeC)
	derefExpr := parsec.And(astNode(nodeDeref), deref, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, vector, mapLit, derefExpr)
	return expr
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func newAST(t nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch t {
	case nodeTerm:
		return termLVal(nodes[0])
	case nodeSExpr:
		cells, lerr := childLVals(nodes)
		if lerr != nil {
			return lerr
		}
		return lisp.SExpr(cells)
	case nodeVector:
		cells, lerr := childLVals(nodes)
		if lerr != nil {
			return lerr
		}
		return lisp.Vector(cells)
	case nodeMap:
		cells, lerr := childLVals(nodes)
		if lerr != nil {
			return lerr
		}
		return mapLVal(cells)
	case nodeDeref:
		cells, lerr := childLVals(nodes)
		if lerr != nil {
			return lerr
		}
		if len(cells) != 1 {
			return lisp.Errorf("bad deref form")
		}
		return lisp.SExpr([]*lisp.LVal{lisp.Symbol("deref"), cells[0]})
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", t, t))
	}
}

func termLVal(node parsec.ParsecNode) *lisp.LVal {
	switch term := node.(type) {
	case string:
		s, err := strconv.Unquote(term)
		if err != nil {
			return lisp.Errorf("bad string literal: %s", term)
		}
		return lisp.String(s)
	case *parsec.Terminal:
		switch term.Name {
		case "NUMBER":
			x, err := strconv.Atoi(term.Value)
			if err != nil {
				return lisp.Errorf("bad number: %v (%s)", err, term.Value)
			}
			return lisp.Int(x)
		case "KEYWORD":
			return lisp.Keyword(term.Value[1:])
		case "SYMBOL":
			switch term.Value {
			case "nil":
				return lisp.Nil()
			case "true":
				return lisp.Bool(true)
			case "false":
				return lisp.Bool(false)
			}
			return lisp.Symbol(term.Value)
		}
	}
	return lisp.Errorf("unexpected token: %v", node)
}

func mapLVal(cells []*lisp.LVal) *lisp.LVal {
	if len(cells)%2 != 0 {
		return lisp.Errorf("map literal has an uneven number of forms: %d", len(cells))
	}
	m := lisp.SortedMap()
	for i := 0; i < len(cells); i += 2 {
		lerr := lisp.MapSet(m, cells[i], cells[i+1])
		if lerr.Type == lisp.LError {
			return lerr
		}
	}
	return m
}

// childLVals extracts the LVal children of a composite node, discarding
// delimiter terminals and comments.  A child error short-circuits.
func childLVals(nodes []parsec.ParsecNode) ([]*lisp.LVal, *lisp.LVal) {
	var cells []*lisp.LVal
	for _, n := range nodes {
		if lval, ok := n.(*lisp.LVal); ok {
			if lval.Type == lisp.LError {
				return nil, lval
			}
			cells = append(cells, lval)
		}
	}
	return cells, nil
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// only whitespace remained
		return nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		// only a comment remained
		return nil
	}
	return lval
}
