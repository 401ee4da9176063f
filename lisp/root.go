package lisp

// InitializeUserEnv installs the builtin function library into env,
// evaluates the bootstrap definitions, and applies the given configuration.
// Bootstrap evaluation passes an explicit trace flag of false, so a
// WithTrace configuration only affects code evaluated afterwards.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env.AddBuiltins()
	lerr := env.eval(bootstrapNot(), false)
	if lerr.Type == LError {
		return lerr
	}
	for _, f := range config {
		lerr := f(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// bootstrapNot constructs (def! not (fn* (a) (if a false true))), the one
// library definition expressed in the language itself.
func bootstrapNot() *LVal {
	return SExpr([]*LVal{
		Symbol("def!"),
		Symbol("not"),
		SExpr([]*LVal{
			Symbol("fn*"),
			SExpr([]*LVal{Symbol("a")}),
			SExpr([]*LVal{Symbol("if"), Symbol("a"), Bool(false), Bool(true)}),
		}),
	})
}

// loadFileSource defines load-file in terms of read-string, slurp, and the
// driver-injected eval.
const loadFileSource = `(def! load-file (fn* (f) (eval (read-string (slurp f)))))`

// InitializeDriverEnv installs the bindings that belong to the interactive
// or file-loading driver rather than the core: an eval function bound to the
// evaluator itself, a load-file definition composed from read-string, slurp,
// and eval, and the *ARGV* list holding argv as strings.  The environment's
// runtime must have a Reader.
func InitializeDriverEnv(env *LEnv, argv []string) *LVal {
	env.PutGlobal(Symbol("eval"), evalBuiltin())
	args := make([]*LVal, len(argv))
	for i, arg := range argv {
		args[i] = String(arg)
	}
	env.PutGlobal(Symbol(ArgvSymbol), QExpr(args))
	lerr := env.LoadString("driver-init", loadFileSource)
	if lerr.Type == LError {
		return lerr
	}
	return Nil()
}

// evalBuiltin returns the eval function injected by the driver.  Evaluation
// happens in the root environment so that definitions made by loaded code
// become global.
func evalBuiltin() *LVal {
	fn := func(env *LEnv, args *LVal) *LVal {
		return env.root().Eval(args.Cells[0])
	}
	v := Fun("<builtin-function ``eval''>", fn)
	v.Formals = Formals("expr")
	return v
}
