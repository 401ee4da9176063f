package lisp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Runtime holds state shared by every environment frame descending from one
// root: the source reader and the writers used by printing builtins.  Trace
// enables a diagnostic line on stderr for every evaluated expression.
type Runtime struct {
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Trace  bool
}

// StandardRuntime returns a Runtime connected to the standard process
// streams.  It has no Reader.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// LEnv is a lisp environment: one frame of lexical scope chained to an
// optional parent.  Frames are shared, never copied.  A closure holds a
// reference to its defining frame so the frame outlives the call that
// created it, and mutation of bindings or atoms reached through the frame is
// visible to every holder.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv initializes and returns a new LEnv.  The root environment has a nil
// parent and receives a standard runtime; child frames share their parent's
// runtime.
func NewEnv(parent *LEnv) *LEnv {
	rt := StandardRuntime()
	if parent != nil {
		rt = parent.Runtime
	}
	return &LEnv{
		ID:      getEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: rt,
	}
}

// NewEnvBind returns a child frame of parent with each formal parameter
// symbol bound positionally to the corresponding argument.  A formal list
// ending with the VarArgSymbol and a rest name binds the rest name to a list
// of the remaining arguments.  An argument count that does not match the
// formals is a type-mismatch error.
func NewEnvBind(parent *LEnv, formals *LVal, args []*LVal) (*LEnv, *LVal) {
	env := NewEnv(parent)
	for i, sym := range formals.Cells {
		if sym.Str == VarArgSymbol {
			if i != len(formals.Cells)-2 {
				return nil, ErrorConditionf(ErrorConditionType,
					"misplaced %s in formal parameters", VarArgSymbol)
			}
			if len(args) < i {
				return nil, ErrorConditionf(ErrorConditionType,
					"function expects at least %d arguments (got %d)", i, len(args))
			}
			rest := make([]*LVal, len(args)-i)
			copy(rest, args[i:])
			env.Scope[formals.Cells[i+1].Str] = QExpr(rest)
			return env, nil
		}
		if i >= len(args) {
			break
		}
		env.Scope[sym.Str] = args[i]
	}
	if len(args) != len(formals.Cells) {
		return nil, ErrorConditionf(ErrorConditionType,
			"function expects %d arguments (got %d)", len(formals.Cells), len(args))
	}
	return env, nil
}

// Get takes a symbol k and returns the value it is bound to in env, checking
// each ancestor frame in order toward the root.  Get fails with an
// unbound-symbol error naming k when no frame binds it.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return ErrorConditionf(ErrorConditionInternal, "not a symbol: %v", k.Type)
	}
	for scope := env; scope != nil; scope = scope.Parent {
		if v, ok := scope.Scope[k.Str]; ok {
			return v
		}
	}
	return ErrorConditionf(ErrorConditionUnbound, "unbound symbol: %s", k.Str)
}

// Put binds k to v in the current frame only, shadowing without modifying
// any ancestor binding.
func (env *LEnv) Put(k, v *LVal) *LVal {
	if k.Type != LSymbol {
		return ErrorConditionf(ErrorConditionInternal, "not a symbol: %v", k.Type)
	}
	env.Scope[k.Str] = v
	return v
}

// PutGlobal binds k to v in the root frame.
func (env *LEnv) PutGlobal(k, v *LVal) *LVal {
	return env.root().Put(k, v)
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		k := Symbol(f.Name())
		if _, ok := env.Scope[k.Str]; ok {
			panic("symbol already defined: " + f.Name())
		}
		fid := fmt.Sprintf("<builtin-function ``%s''>", f.Name())
		v := Fun(fid, f.Eval)
		v.Formals = f.Formals()
		env.Put(k, v)
	}
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Evaluation of expressions in tail position rewrites the working
// (ast, env) pair and continues the loop rather than recursing, so chains of
// tail calls run in constant stack depth.
func (env *LEnv) Eval(v *LVal) *LVal {
	return env.eval(v, env.Runtime.Trace)
}

func (env *LEnv) eval(v *LVal, trace bool) *LVal {
	if trace {
		fmt.Fprintf(env.Runtime.Stderr, ";; eval: %s\n", v)
	}
	for {
		if v.Type != LSExpr {
			return env.evalAST(v)
		}
		if len(v.Cells) == 0 {
			return v
		}
		head := v.Cells[0]
		if head.Type == LSymbol {
			switch head.Str {
			case "def!":
				return env.evalDef(v)
			case "let*":
				letenv, body := env.evalLetSeq(v)
				if body.Type == LError {
					return body
				}
				v = body
				env = letenv
				continue
			case "do":
				last := env.evalDo(v)
				if last == nil {
					return Nil()
				}
				if last.Type == LError {
					return last
				}
				v = last
				continue
			case "if":
				branch := env.evalIf(v)
				if branch == nil {
					return Nil()
				}
				if branch.Type == LError {
					return branch
				}
				v = branch
				continue
			case "fn*":
				return env.evalFn(v)
			}
		}
		f := env.Eval(head)
		if f.Type == LError {
			return f
		}
		if f.Type != LFun {
			return ErrorConditionf(ErrorConditionType,
				"first element of expression is not a function: %s", f.Type)
		}
		args := make([]*LVal, len(v.Cells)-1)
		for i, cell := range v.Cells[1:] {
			args[i] = env.Eval(cell)
			if args[i].Type == LError {
				return args[i]
			}
		}
		if f.Builtin != nil {
			if lerr := checkFormals(f, len(args)); lerr != nil {
				return lerr
			}
			return f.Builtin(env, QExpr(args))
		}
		bound, lerr := NewEnvBind(f.Env, f.Formals, args)
		if lerr != nil {
			return lerr
		}
		v = f.Body
		env = bound
	}
}

// evalAST performs non-tail evaluation: symbols resolve through the scope
// chain, vector elements and map values evaluate left to right, and every
// other value evaluates to itself.
func (env *LEnv) evalAST(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LVector:
		cells := make([]*LVal, len(v.Cells))
		for i, cell := range v.Cells {
			cells[i] = env.Eval(cell)
			if cells[i].Type == LError {
				return cells[i]
			}
		}
		return Vector(cells)
	case LSortMap:
		m := SortedMap()
		for _, k := range v.Keys {
			mv := env.Eval(v.Map[k])
			if mv.Type == LError {
				return mv
			}
			m.Map[k] = mv
			m.Keys = append(m.Keys, k)
		}
		return m
	default:
		return v
	}
}

// (def! sym expr)
func (env *LEnv) evalDef(v *LVal) *LVal {
	if len(v.Cells) != 3 {
		return ErrorConditionf(ErrorConditionType,
			"def!: two arguments expected (got %d)", len(v.Cells)-1)
	}
	sym := v.Cells[1]
	if sym.Type != LSymbol {
		return ErrorConditionf(ErrorConditionType,
			"def!: first argument is not a symbol: %s", sym.Type)
	}
	val := env.Eval(v.Cells[2])
	if val.Type == LError {
		return val
	}
	return env.Put(sym, val)
}

// (let* (sym1 expr1 sym2 expr2 ...) body)
//
// Bindings evaluate sequentially in the new frame so later bindings may
// reference earlier ones.  The returned body is evaluated by the caller in
// tail position.
func (env *LEnv) evalLetSeq(v *LVal) (*LEnv, *LVal) {
	if len(v.Cells) != 3 {
		return nil, ErrorConditionf(ErrorConditionType,
			"let*: two arguments expected (got %d)", len(v.Cells)-1)
	}
	bindlist := v.Cells[1]
	if !bindlist.IsSeq() {
		return nil, ErrorConditionf(ErrorConditionType,
			"let*: first argument is not a list: %s", bindlist.Type)
	}
	if len(bindlist.Cells)%2 != 0 {
		return nil, ErrorConditionf(ErrorConditionType,
			"let*: uneven number of binding forms: %d", len(bindlist.Cells))
	}
	letenv := NewEnv(env)
	for i := 0; i < len(bindlist.Cells); i += 2 {
		sym := bindlist.Cells[i]
		if sym.Type != LSymbol {
			return nil, ErrorConditionf(ErrorConditionType,
				"let*: binding name is not a symbol: %s", sym.Type)
		}
		val := letenv.Eval(bindlist.Cells[i+1])
		if val.Type == LError {
			return nil, val
		}
		letenv.Put(sym, val)
	}
	return letenv, v.Cells[2]
}

// (do e1 e2 ... eN)
//
// Every expression except the last evaluates in order for effect.  The last
// expression is returned for the caller to evaluate in tail position.  A do
// with no body expressions returns nil.
func (env *LEnv) evalDo(v *LVal) *LVal {
	body := v.Cells[1:]
	if len(body) == 0 {
		return nil
	}
	for _, expr := range body[:len(body)-1] {
		r := env.Eval(expr)
		if r.Type == LError {
			return r
		}
	}
	return body[len(body)-1]
}

// (if cond then else?)
//
// Returns the branch to evaluate in tail position, or nil when the condition
// is false and no else branch was given.
func (env *LEnv) evalIf(v *LVal) *LVal {
	if len(v.Cells) < 3 || len(v.Cells) > 4 {
		return ErrorConditionf(ErrorConditionType,
			"if: two or three arguments expected (got %d)", len(v.Cells)-1)
	}
	cond := env.Eval(v.Cells[1])
	if cond.Type == LError {
		return cond
	}
	if cond.IsTruthy() {
		return v.Cells[2]
	}
	if len(v.Cells) == 4 {
		return v.Cells[3]
	}
	return nil
}

// (fn* (p1 p2 ...) body)
func (env *LEnv) evalFn(v *LVal) *LVal {
	if len(v.Cells) != 3 {
		return ErrorConditionf(ErrorConditionType,
			"fn*: two arguments expected (got %d)", len(v.Cells)-1)
	}
	formals := v.Cells[1]
	if !formals.IsSeq() {
		return ErrorConditionf(ErrorConditionType,
			"fn*: first argument is not a list: %s", formals.Type)
	}
	for _, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return ErrorConditionf(ErrorConditionType,
				"fn*: first argument contains a non-symbol: %s", sym.Type)
		}
	}
	return Lambda(env, SExpr(formals.Cells), v.Cells[2])
}

// Call invokes the function f with the given arguments, which have already
// been evaluated.  Unlike the application path inside Eval, Call recurses
// into the evaluator and is intended for builtins that apply functions
// (apply, map, swap!).
func (env *LEnv) Call(f *LVal, args []*LVal) *LVal {
	if f.Type != LFun {
		return ErrorConditionf(ErrorConditionType, "not a function: %s", f.Type)
	}
	if f.Builtin != nil {
		if lerr := checkFormals(f, len(args)); lerr != nil {
			return lerr
		}
		return f.Builtin(env, QExpr(args))
	}
	bound, lerr := NewEnvBind(f.Env, f.Formals, args)
	if lerr != nil {
		return lerr
	}
	return bound.Eval(f.Body)
}

// checkFormals validates an argument count against a function's declared
// formals.  Formals ending with the VarArgSymbol and a rest name accept any
// number of trailing arguments.
func checkFormals(f *LVal, nargs int) *LVal {
	if f.Formals == nil {
		return nil
	}
	required := 0
	variadic := false
	for _, sym := range f.Formals.Cells {
		if sym.Str == VarArgSymbol {
			variadic = true
			break
		}
		required++
	}
	if variadic {
		if nargs < required {
			return ErrorConditionf(ErrorConditionType,
				"function expects at least %d arguments (got %d)", required, nargs)
		}
		return nil
	}
	if nargs != required {
		return ErrorConditionf(ErrorConditionType,
			"function expects %d arguments (got %d)", required, nargs)
	}
	return nil
}

// LoadString parses and evaluates every expression in the source text,
// returning the value of the last one.  The environment's runtime must have
// a Reader.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}

// LoadFile reads, parses, and evaluates the named file.
func (env *LEnv) LoadFile(path string) *LVal {
	f, err := os.Open(path)
	if err != nil {
		return Error(ErrorConditionIO, err)
	}
	defer f.Close()
	return env.Load(path, f)
}

// Load parses the contents of r and evaluates each expression in order,
// returning the value of the last expression.  Loading an empty source
// returns nil.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return ErrorConditionf(ErrorConditionInternal, "no reader for environment")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return Error(ErrorConditionError, err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

func (env *LEnv) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "env%d{", env.ID)
	i := 0
	for k := range env.Scope {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(k)
		i++
	}
	buf.WriteString("}")
	return buf.String()
}
