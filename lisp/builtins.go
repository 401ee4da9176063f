package lisp

import (
	"bytes"
	"os"
	"strings"
)

// LBuiltinDef is a builtin function definition.
type LBuiltinDef interface {
	Name() string
	Formals() *LVal
	Eval(env *LEnv, args *LVal) *LVal
}

type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"+", Formals(VarArgSymbol, "x"), builtinAdd},
	{"-", Formals("x", VarArgSymbol, "rest"), builtinSub},
	{"*", Formals(VarArgSymbol, "x"), builtinMul},
	{"/", Formals("x", VarArgSymbol, "rest"), builtinDiv},
	{">", Formals("a", "b"), builtinGT},
	{">=", Formals("a", "b"), builtinGEq},
	{"<", Formals("a", "b"), builtinLT},
	{"<=", Formals("a", "b"), builtinLEq},
	{"=", Formals("a", "b"), builtinEqual},
	{"list", Formals(VarArgSymbol, "args"), builtinList},
	{"list?", Formals("val"), builtinIsList},
	{"empty?", Formals("seq"), builtinIsEmpty},
	{"count", Formals("seq"), builtinCount},
	{"cons", Formals("head", "seq"), builtinCons},
	{"concat", Formals(VarArgSymbol, "seqs"), builtinConcat},
	{"nth", Formals("seq", "index"), builtinNth},
	{"first", Formals("seq"), builtinFirst},
	{"rest", Formals("seq"), builtinRest},
	{"apply", Formals("fn", VarArgSymbol, "args"), builtinApply},
	{"map", Formals("fn", "seq"), builtinMap},
	{"hash-map", Formals(VarArgSymbol, "args"), builtinHashMap},
	{"map?", Formals("val"), builtinIsMap},
	{"assoc", Formals("map", VarArgSymbol, "args"), builtinAssoc},
	{"dissoc", Formals("map", VarArgSymbol, "keys"), builtinDissoc},
	{"get", Formals("map", "key"), builtinGet},
	{"contains?", Formals("map", "key"), builtinContains},
	{"keys", Formals("map"), builtinKeys},
	{"vals", Formals("map"), builtinVals},
	{"sequential?", Formals("val"), builtinIsSequential},
	{"vector?", Formals("val"), builtinIsVector},
	{"symbol?", Formals("val"), builtinIsSymbol},
	{"keyword?", Formals("val"), builtinIsKeyword},
	{"nil?", Formals("val"), builtinIsNil},
	{"true?", Formals("val"), builtinIsTrue},
	{"false?", Formals("val"), builtinIsFalse},
	{"symbol", Formals("name"), builtinSymbol},
	{"keyword", Formals("name"), builtinKeyword},
	{"vector", Formals(VarArgSymbol, "args"), builtinVector},
	{"vec", Formals("seq"), builtinVec},
	{"pr-str", Formals(VarArgSymbol, "args"), builtinPrStr},
	{"str", Formals(VarArgSymbol, "args"), builtinStr},
	{"prn", Formals(VarArgSymbol, "args"), builtinPrn},
	{"println", Formals(VarArgSymbol, "args"), builtinPrintln},
	{"read-string", Formals("source"), builtinReadString},
	{"slurp", Formals("path"), builtinSlurp},
	{"atom", Formals("val"), builtinAtom},
	{"atom?", Formals("val"), builtinIsAtom},
	{"deref", Formals("atom"), builtinDeref},
	{"reset!", Formals("atom", "val"), builtinReset},
	{"swap!", Formals("atom", "fn", VarArgSymbol, "args"), builtinSwap},
	{"throw", Formals("val"), builtinThrow},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, formals *LVal, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	funs := make([]LBuiltinDef, 0, len(langBuiltins)+len(userBuiltins))
	for _, f := range langBuiltins {
		funs = append(funs, f)
	}
	for _, f := range userBuiltins {
		funs = append(funs, f)
	}
	return funs
}

func builtinAdd(env *LEnv, args *LVal) *LVal {
	sum := 0
	for _, c := range args.Cells {
		if c.Type != LInt {
			return ErrorConditionf(ErrorConditionType, "argument is not an int: %s", c.Type)
		}
		sum += c.Int
	}
	return Int(sum)
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	for _, c := range args.Cells {
		if c.Type != LInt {
			return ErrorConditionf(ErrorConditionType, "argument is not an int: %s", c.Type)
		}
	}
	if len(args.Cells) == 1 {
		return Int(-args.Cells[0].Int)
	}
	diff := args.Cells[0].Int
	for _, c := range args.Cells[1:] {
		diff -= c.Int
	}
	return Int(diff)
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	prod := 1
	for _, c := range args.Cells {
		if c.Type != LInt {
			return ErrorConditionf(ErrorConditionType, "argument is not an int: %s", c.Type)
		}
		prod *= c.Int
	}
	return Int(prod)
}

func builtinDiv(env *LEnv, args *LVal) *LVal {
	for _, c := range args.Cells {
		if c.Type != LInt {
			return ErrorConditionf(ErrorConditionType, "argument is not an int: %s", c.Type)
		}
	}
	if len(args.Cells) == 1 {
		return floorDiv(Int(1), args.Cells[0])
	}
	quot := args.Cells[0]
	for _, c := range args.Cells[1:] {
		r := floorDiv(quot, c)
		if r.Type == LError {
			return r
		}
		quot = r
	}
	return quot
}

// floorDiv truncates toward negative infinity rather than toward zero, so
// (/ -7 2) is -4.
func floorDiv(a, b *LVal) *LVal {
	if b.Int == 0 {
		return Errorf("division by zero")
	}
	q := a.Int / b.Int
	if a.Int%b.Int != 0 && (a.Int < 0) != (b.Int < 0) {
		q--
	}
	return Int(q)
}

func intPair(args *LVal) (int, int, *LVal) {
	a, b := args.Cells[0], args.Cells[1]
	if a.Type != LInt {
		return 0, 0, ErrorConditionf(ErrorConditionType, "first argument is not an int: %s", a.Type)
	}
	if b.Type != LInt {
		return 0, 0, ErrorConditionf(ErrorConditionType, "second argument is not an int: %s", b.Type)
	}
	return a.Int, b.Int, nil
}

func builtinGT(env *LEnv, args *LVal) *LVal {
	a, b, lerr := intPair(args)
	if lerr != nil {
		return lerr
	}
	return Bool(a > b)
}

func builtinGEq(env *LEnv, args *LVal) *LVal {
	a, b, lerr := intPair(args)
	if lerr != nil {
		return lerr
	}
	return Bool(a >= b)
}

func builtinLT(env *LEnv, args *LVal) *LVal {
	a, b, lerr := intPair(args)
	if lerr != nil {
		return lerr
	}
	return Bool(a < b)
}

func builtinLEq(env *LEnv, args *LVal) *LVal {
	a, b, lerr := intPair(args)
	if lerr != nil {
		return lerr
	}
	return Bool(a <= b)
}

func builtinEqual(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Equal(args.Cells[1]))
}

func builtinList(env *LEnv, args *LVal) *LVal {
	return QExpr(args.Cells)
}

func builtinIsList(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LSExpr)
}

func builtinIsEmpty(env *LEnv, args *LVal) *LVal {
	seq := args.Cells[0]
	if seq.IsNil() {
		return Bool(true)
	}
	if !seq.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "argument is not a sequence: %s", seq.Type)
	}
	return Bool(len(seq.Cells) == 0)
}

// count tolerates non-sequence arguments and reports their length as 0.
func builtinCount(env *LEnv, args *LVal) *LVal {
	seq := args.Cells[0]
	if !seq.IsSeq() {
		return Int(0)
	}
	return Int(len(seq.Cells))
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	head, seq := args.Cells[0], args.Cells[1]
	if !seq.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "second argument is not a sequence: %s", seq.Type)
	}
	cells := make([]*LVal, 0, len(seq.Cells)+1)
	cells = append(cells, head)
	cells = append(cells, seq.Cells...)
	return QExpr(cells)
}

func builtinConcat(env *LEnv, args *LVal) *LVal {
	var cells []*LVal
	for _, seq := range args.Cells {
		if !seq.IsSeq() {
			return ErrorConditionf(ErrorConditionType, "argument is not a sequence: %s", seq.Type)
		}
		cells = append(cells, seq.Cells...)
	}
	return QExpr(cells)
}

func builtinNth(env *LEnv, args *LVal) *LVal {
	seq, index := args.Cells[0], args.Cells[1]
	if !seq.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "first argument is not a sequence: %s", seq.Type)
	}
	if index.Type != LInt {
		return ErrorConditionf(ErrorConditionType, "second argument is not an int: %s", index.Type)
	}
	if index.Int < 0 || index.Int >= len(seq.Cells) {
		return ErrorConditionf(ErrorConditionIndex,
			"index out of range: %d (length %d)", index.Int, len(seq.Cells))
	}
	return seq.Cells[index.Int]
}

// first is nil-safe: (first nil) is nil, as is the first of an empty
// sequence.
func builtinFirst(env *LEnv, args *LVal) *LVal {
	seq := args.Cells[0]
	if seq.IsNil() {
		return Nil()
	}
	if !seq.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "argument is not a sequence: %s", seq.Type)
	}
	if len(seq.Cells) == 0 {
		return Nil()
	}
	return seq.Cells[0]
}

// rest is nil-safe: (rest nil) is the empty list.
func builtinRest(env *LEnv, args *LVal) *LVal {
	seq := args.Cells[0]
	if seq.IsNil() {
		return QExpr(nil)
	}
	if !seq.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "argument is not a sequence: %s", seq.Type)
	}
	if len(seq.Cells) == 0 {
		return QExpr(nil)
	}
	return QExpr(seq.Cells[1:])
}

// (apply f a b ... seq) calls f with the leading arguments followed by the
// elements of the final sequence.
func builtinApply(env *LEnv, args *LVal) *LVal {
	f := args.Cells[0]
	if f.Type != LFun {
		return ErrorConditionf(ErrorConditionType, "first argument is not a function: %s", f.Type)
	}
	rest := args.Cells[1:]
	if len(rest) == 0 {
		return env.Call(f, nil)
	}
	last := rest[len(rest)-1]
	if !last.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "last argument is not a sequence: %s", last.Type)
	}
	fargs := make([]*LVal, 0, len(rest)-1+len(last.Cells))
	fargs = append(fargs, rest[:len(rest)-1]...)
	fargs = append(fargs, last.Cells...)
	return env.Call(f, fargs)
}

func builtinMap(env *LEnv, args *LVal) *LVal {
	f, seq := args.Cells[0], args.Cells[1]
	if f.Type != LFun {
		return ErrorConditionf(ErrorConditionType, "first argument is not a function: %s", f.Type)
	}
	if !seq.IsSeq() {
		return ErrorConditionf(ErrorConditionType, "second argument is not a sequence: %s", seq.Type)
	}
	cells := make([]*LVal, len(seq.Cells))
	for i, c := range seq.Cells {
		r := env.Call(f, []*LVal{c})
		if r.Type == LError {
			return r
		}
		cells[i] = r
	}
	return QExpr(cells)
}

func builtinHashMap(env *LEnv, args *LVal) *LVal {
	if len(args.Cells)%2 != 0 {
		return ErrorConditionf(ErrorConditionType,
			"uneven number of arguments: %d", len(args.Cells))
	}
	m := SortedMap()
	for i := 0; i < len(args.Cells); i += 2 {
		lerr := mapSet(m, args.Cells[i], args.Cells[i+1])
		if lerr.Type == LError {
			return lerr
		}
	}
	return m
}

func builtinIsMap(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LSortMap)
}

// assoc merges key/value pairs into a copy of the map; the original is
// untouched.
func builtinAssoc(env *LEnv, args *LVal) *LVal {
	m := args.Cells[0]
	if m.Type != LSortMap {
		return ErrorConditionf(ErrorConditionType, "first argument is not a map: %s", m.Type)
	}
	pairs := args.Cells[1:]
	if len(pairs)%2 != 0 {
		return ErrorConditionf(ErrorConditionType,
			"uneven number of arguments: %d", len(pairs))
	}
	cp := mapCopy(m)
	for i := 0; i < len(pairs); i += 2 {
		lerr := mapSet(cp, pairs[i], pairs[i+1])
		if lerr.Type == LError {
			return lerr
		}
	}
	return cp
}

func builtinDissoc(env *LEnv, args *LVal) *LVal {
	m := args.Cells[0]
	if m.Type != LSortMap {
		return ErrorConditionf(ErrorConditionType, "first argument is not a map: %s", m.Type)
	}
	cp := mapCopy(m)
	for _, key := range args.Cells[1:] {
		lerr := mapDel(cp, key)
		if lerr.Type == LError {
			return lerr
		}
	}
	return cp
}

// get tolerates a nil map and a missing key, returning nil for both.
func builtinGet(env *LEnv, args *LVal) *LVal {
	m, key := args.Cells[0], args.Cells[1]
	if m.IsNil() {
		return Nil()
	}
	if m.Type != LSortMap {
		return ErrorConditionf(ErrorConditionType, "first argument is not a map: %s", m.Type)
	}
	return mapGet(m, key)
}

func builtinContains(env *LEnv, args *LVal) *LVal {
	m, key := args.Cells[0], args.Cells[1]
	if m.Type != LSortMap {
		return ErrorConditionf(ErrorConditionType, "first argument is not a map: %s", m.Type)
	}
	return mapContains(m, key)
}

func builtinKeys(env *LEnv, args *LVal) *LVal {
	m := args.Cells[0]
	if m.Type != LSortMap {
		return ErrorConditionf(ErrorConditionType, "first argument is not a map: %s", m.Type)
	}
	cells := make([]*LVal, len(m.Keys))
	for i, k := range m.Keys {
		cells[i] = mapKeyVal(k)
	}
	return QExpr(cells)
}

func builtinVals(env *LEnv, args *LVal) *LVal {
	m := args.Cells[0]
	if m.Type != LSortMap {
		return ErrorConditionf(ErrorConditionType, "first argument is not a map: %s", m.Type)
	}
	cells := make([]*LVal, len(m.Keys))
	for i, k := range m.Keys {
		cells[i] = m.Map[k]
	}
	return QExpr(cells)
}

func builtinIsSequential(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsSeq())
}

func builtinIsVector(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LVector)
}

func builtinIsSymbol(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LSymbol)
}

func builtinIsKeyword(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LKeyword)
}

func builtinIsNil(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsNil())
}

func builtinIsTrue(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	return Bool(v.Type == LBool && v.Bool)
}

func builtinIsFalse(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	return Bool(v.Type == LBool && !v.Bool)
}

func builtinSymbol(env *LEnv, args *LVal) *LVal {
	name := args.Cells[0]
	if name.Type != LString {
		return ErrorConditionf(ErrorConditionType, "argument is not a string: %s", name.Type)
	}
	return Symbol(name.Str)
}

// keyword is idempotent on keywords.
func builtinKeyword(env *LEnv, args *LVal) *LVal {
	name := args.Cells[0]
	switch name.Type {
	case LKeyword:
		return name
	case LString:
		return Keyword(name.Str)
	}
	return ErrorConditionf(ErrorConditionType, "argument is not a string: %s", name.Type)
}

func builtinVector(env *LEnv, args *LVal) *LVal {
	return Vector(args.Cells)
}

func builtinVec(env *LEnv, args *LVal) *LVal {
	seq := args.Cells[0]
	switch seq.Type {
	case LVector:
		return seq
	case LSExpr:
		cells := make([]*LVal, len(seq.Cells))
		copy(cells, seq.Cells)
		return Vector(cells)
	}
	return ErrorConditionf(ErrorConditionType, "argument is not a sequence: %s", seq.Type)
}

func printElems(args *LVal, readable bool, sep string) string {
	elems := make([]string, len(args.Cells))
	for i, c := range args.Cells {
		elems[i] = PrintString(c, readable)
	}
	return strings.Join(elems, sep)
}

func builtinPrStr(env *LEnv, args *LVal) *LVal {
	return String(printElems(args, true, " "))
}

func builtinStr(env *LEnv, args *LVal) *LVal {
	return String(printElems(args, false, ""))
}

func builtinPrn(env *LEnv, args *LVal) *LVal {
	var buf bytes.Buffer
	buf.WriteString(printElems(args, true, " "))
	buf.WriteString("\n")
	buf.WriteTo(env.Runtime.Stdout)
	return Nil()
}

func builtinPrintln(env *LEnv, args *LVal) *LVal {
	var buf bytes.Buffer
	buf.WriteString(printElems(args, false, " "))
	buf.WriteString("\n")
	buf.WriteTo(env.Runtime.Stdout)
	return Nil()
}

// read-string parses one expression from its argument, returning nil for
// text that contains no expression.
func builtinReadString(env *LEnv, args *LVal) *LVal {
	source := args.Cells[0]
	if source.Type != LString {
		return ErrorConditionf(ErrorConditionType, "argument is not a string: %s", source.Type)
	}
	if env.Runtime.Reader == nil {
		return ErrorConditionf(ErrorConditionInternal, "no reader for environment")
	}
	exprs, err := env.Runtime.Reader.Read("read-string", strings.NewReader(source.Str))
	if err != nil {
		return Error(ErrorConditionError, err)
	}
	if len(exprs) == 0 {
		return Nil()
	}
	return exprs[0]
}

func builtinSlurp(env *LEnv, args *LVal) *LVal {
	path := args.Cells[0]
	if path.Type != LString {
		return ErrorConditionf(ErrorConditionType, "argument is not a string: %s", path.Type)
	}
	b, err := os.ReadFile(path.Str)
	if err != nil {
		return Error(ErrorConditionIO, err)
	}
	return String(string(b))
}

func builtinAtom(env *LEnv, args *LVal) *LVal {
	return Atom(args.Cells[0])
}

func builtinIsAtom(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Type == LAtom)
}

func builtinDeref(env *LEnv, args *LVal) *LVal {
	a := args.Cells[0]
	if a.Type != LAtom {
		return ErrorConditionf(ErrorConditionType, "argument is not an atom: %s", a.Type)
	}
	return a.Cells[0]
}

func builtinReset(env *LEnv, args *LVal) *LVal {
	a, v := args.Cells[0], args.Cells[1]
	if a.Type != LAtom {
		return ErrorConditionf(ErrorConditionType, "first argument is not an atom: %s", a.Type)
	}
	a.Cells[0] = v
	return v
}

// swap! replaces the slot with f applied to the old value followed by any
// extra arguments.  The slot is untouched when f fails.
func builtinSwap(env *LEnv, args *LVal) *LVal {
	a, f := args.Cells[0], args.Cells[1]
	if a.Type != LAtom {
		return ErrorConditionf(ErrorConditionType, "first argument is not an atom: %s", a.Type)
	}
	if f.Type != LFun {
		return ErrorConditionf(ErrorConditionType, "second argument is not a function: %s", f.Type)
	}
	fargs := make([]*LVal, 0, len(args.Cells)-1)
	fargs = append(fargs, a.Cells[0])
	fargs = append(fargs, args.Cells[2:]...)
	r := env.Call(f, fargs)
	if r.Type == LError {
		return r
	}
	a.Cells[0] = r
	return r
}

func builtinThrow(env *LEnv, args *LVal) *LVal {
	return ErrorCondition(ErrorConditionUser, args.Cells[0])
}
