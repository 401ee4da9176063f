// Package lisp implements the wisp runtime: a tagged value model, lexical
// environments, a tail-call eliminating evaluator, and the builtin function
// library.  Parsing and terminal interaction live in other packages and are
// attached to an environment through its Runtime.
package lisp

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LNil
	LBool
	LInt
	LString
	LSymbol
	LKeyword
	LSExpr
	LVector
	LSortMap
	LAtom
	LFun
	LError
)

var ltypeStrings = []string{
	LInvalid: "INVALID",
	LNil:     "nil",
	LBool:    "bool",
	LInt:     "int",
	LString:  "string",
	LSymbol:  "symbol",
	LKeyword: "keyword",
	LSExpr:   "list",
	LVector:  "vector",
	LSortMap: "sorted-map",
	LAtom:    "atom",
	LFun:     "function",
	LError:   "error",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LBuiltin is a Go function that implements a builtin lisp function.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LVal is a lisp value.  The Type tag determines which fields hold
// meaningful data.
type LVal struct {
	Type LType

	Int  int
	Str  string // string/symbol/keyword text, error condition for LError
	Bool bool

	// Cells hold list and vector elements.  An LAtom stores its slot in
	// Cells[0] and an LError stores its payload in Cells[0].
	Cells []*LVal

	// Map fields are used by LSortMap.  Keys tracks insertion order, which
	// printing preserves but equality ignores.
	Map  map[string]*LVal
	Keys []string

	// Function fields.  A builtin has a non-nil Builtin while a lambda has
	// Env, Formals, and Body.
	FID     string
	Builtin LBuiltin
	Env     *LEnv
	Formals *LVal
	Body    *LVal

	// Native holds an underlying Go error for conditions raised at the I/O
	// boundary.
	Native error
}

// Nil returns an LVal representing nil, the absent value.
func Nil() *LVal {
	return &LVal{Type: LNil}
}

// Bool returns an LVal representing b.
func Bool(b bool) *LVal {
	return &LVal{Type: LBool, Bool: b}
}

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{Type: LInt, Int: x}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{Type: LString, Str: s}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{Type: LSymbol, Str: s}
}

// Keyword returns an LVal representing the keyword s.  The string s does not
// include the leading colon.
func Keyword(s string) *LVal {
	return &LVal{Type: LKeyword, Str: s}
}

// SExpr returns a list with the given cells.  A non-empty list at the head
// of an evaluated expression denotes a function application.
func SExpr(cells []*LVal) *LVal {
	return &LVal{Type: LSExpr, Cells: cells}
}

// QExpr returns a list with the given cells.  It is the constructor used at
// builtin call sites, where the cells are data and never re-evaluated.
func QExpr(cells []*LVal) *LVal {
	return &LVal{Type: LSExpr, Cells: cells}
}

// Vector returns a vector with the given cells.
func Vector(cells []*LVal) *LVal {
	return &LVal{Type: LVector, Cells: cells}
}

// SortedMap returns an empty map.
func SortedMap() *LVal {
	return &LVal{Type: LSortMap, Map: make(map[string]*LVal)}
}

// Atom returns a new reference cell holding v.  Two atoms are never equal,
// even when their contents are.
func Atom(v *LVal) *LVal {
	return &LVal{Type: LAtom, Cells: []*LVal{v}}
}

// Fun returns an LVal representing a builtin function.
func Fun(fid string, fn LBuiltin) *LVal {
	return &LVal{Type: LFun, FID: fid, Builtin: fn}
}

// Lambda returns a function closing over env with the given list of formal
// argument symbols and unevaluated body expression.
func Lambda(env *LEnv, formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:    LFun,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// IsNil returns true if v is nil.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsSeq returns true if v is a list or a vector.
func (v *LVal) IsSeq() bool {
	return v.Type == LSExpr || v.Type == LVector
}

// IsTruthy returns false only for nil and boolean false.  Every other value
// is truthy.
func (v *LVal) IsTruthy() bool {
	if v.Type == LNil {
		return false
	}
	if v.Type == LBool {
		return v.Bool
	}
	return true
}

// Len returns the number of elements in a list or vector and the number of
// keys in a map.  Other types have length 0.
func (v *LVal) Len() int {
	switch v.Type {
	case LSExpr, LVector:
		return len(v.Cells)
	case LSortMap:
		return len(v.Keys)
	}
	return 0
}

func (v *LVal) String() string {
	return PrintString(v, true)
}

// Equal returns true when v and o are structurally equal.  Lists and vectors
// compare cross-compatibly, maps compare by key set regardless of insertion
// order, and atoms and functions compare by identity.
func (v *LVal) Equal(o *LVal) bool {
	if v.IsSeq() && o.IsSeq() {
		if len(v.Cells) != len(o.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(o.Cells[i]) {
				return false
			}
		}
		return true
	}
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case LNil:
		return true
	case LBool:
		return v.Bool == o.Bool
	case LInt:
		return v.Int == o.Int
	case LString, LSymbol, LKeyword:
		return v.Str == o.Str
	case LSortMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, mv := range v.Map {
			ov, ok := o.Map[k]
			if !ok || !mv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		// atoms, functions, and errors have identity equality
		return v == o
	}
}

// Formals builds the list of formal argument symbols for a builtin
// definition.  The VarArgSymbol may appear before the final name to declare
// the remaining arguments variadic.
func Formals(names ...string) *LVal {
	cells := make([]*LVal, len(names))
	for i, name := range names {
		cells[i] = Symbol(name)
	}
	return SExpr(cells)
}

// GoError converts an error LVal into a Go error.  It returns nil when v is
// not an error.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}
