package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGet(t *testing.T) {
	root := NewEnv(nil)
	root.Put(Symbol("x"), Int(1))
	child := NewEnv(root)

	v := child.Get(Symbol("x"))
	require.NotEqual(t, LError, v.Type)
	assert.Equal(t, 1, v.Int)

	v = child.Get(Symbol("y"))
	require.Equal(t, LError, v.Type)
	assert.Equal(t, ErrorConditionUnbound, v.Str)
}

func TestEnvShadowing(t *testing.T) {
	root := NewEnv(nil)
	root.Put(Symbol("x"), Int(1))
	child := NewEnv(root)
	child.Put(Symbol("x"), Int(2))

	assert.Equal(t, 2, child.Get(Symbol("x")).Int)
	assert.Equal(t, 1, root.Get(Symbol("x")).Int)
}

func TestEnvPutGlobal(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(NewEnv(root))
	child.PutGlobal(Symbol("x"), Int(3))
	assert.Equal(t, 3, root.Get(Symbol("x")).Int)
	_, bound := child.Scope["x"]
	assert.False(t, bound)
}

func TestEnvRuntimeShared(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)
	assert.Equal(t, root.Runtime, child.Runtime)
}

func TestNewEnvBind(t *testing.T) {
	parent := NewEnv(nil)
	env, lerr := NewEnvBind(parent, Formals("a", "b"), []*LVal{Int(1), Int(2)})
	require.Nil(t, lerr)
	assert.Equal(t, 1, env.Get(Symbol("a")).Int)
	assert.Equal(t, 2, env.Get(Symbol("b")).Int)

	_, lerr = NewEnvBind(parent, Formals("a", "b"), []*LVal{Int(1)})
	require.NotNil(t, lerr)
	assert.Equal(t, ErrorConditionType, lerr.Str)

	_, lerr = NewEnvBind(parent, Formals("a"), []*LVal{Int(1), Int(2)})
	require.NotNil(t, lerr)
}

func TestNewEnvBindVariadic(t *testing.T) {
	parent := NewEnv(nil)
	env, lerr := NewEnvBind(parent, Formals("a", VarArgSymbol, "rest"),
		[]*LVal{Int(1), Int(2), Int(3)})
	require.Nil(t, lerr)
	assert.Equal(t, 1, env.Get(Symbol("a")).Int)
	rest := env.Get(Symbol("rest"))
	require.Equal(t, LSExpr, rest.Type)
	assert.Len(t, rest.Cells, 2)

	env, lerr = NewEnvBind(parent, Formals("a", VarArgSymbol, "rest"), []*LVal{Int(1)})
	require.Nil(t, lerr)
	assert.Equal(t, 0, env.Get(Symbol("rest")).Len())

	_, lerr = NewEnvBind(parent, Formals("a", VarArgSymbol, "rest"), nil)
	require.NotNil(t, lerr)
}

func TestCheckFormals(t *testing.T) {
	fixed := Fun("f", func(env *LEnv, args *LVal) *LVal { return Nil() })
	fixed.Formals = Formals("a", "b")
	assert.Nil(t, checkFormals(fixed, 2))
	assert.NotNil(t, checkFormals(fixed, 1))
	assert.NotNil(t, checkFormals(fixed, 3))

	variadic := Fun("f", func(env *LEnv, args *LVal) *LVal { return Nil() })
	variadic.Formals = Formals("a", VarArgSymbol, "rest")
	assert.Nil(t, checkFormals(variadic, 1))
	assert.Nil(t, checkFormals(variadic, 5))
	assert.NotNil(t, checkFormals(variadic, 0))
}
