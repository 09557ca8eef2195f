package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churf-lang/churf/internal/core"
	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/types"
)

func intLit(n int64) *core.ELit { return &core.ELit{Lit: types.Lit{Kind: types.IntLit, Int: n}} }
func charLit(c rune) *core.ELit { return &core.ELit{Lit: types.Lit{Kind: types.CharLit, Char: c}} }

// id without a signature generalizes: its parameter's existential is free
// in the inferred type, so TypecheckBind closes over it as `forall a. a ->
// a` instead of rejecting it as ambiguous.
func TestUnannotatedIdentityGeneralizes(t *testing.T) {
	cx := NewCxt()
	bind := &core.Bind{Name: "id", Args: []string{"x"}, Rhs: &core.EVar{Name: "x"}}
	typed, err := cx.TypecheckBind(bind)
	require.NoError(t, err)
	all, ok := typed.Ty.(*types.TAll)
	require.True(t, ok, "got %s", typed.Ty)
	want := &types.TFun{Arg: &types.TVar{Name: all.Var}, Res: &types.TVar{Name: all.Var}}
	assert.True(t, all.Body.Equals(want), "got %s", typed.Ty)
}

// const x y = x, with no signature, generalizes over both argument
// existentials — the unannotated counterpart of TestSignedConstChecks,
// giving `forall a b. a -> b -> a` with an independent variable per
// argument.
func TestUnannotatedConstGeneralizes(t *testing.T) {
	cx := NewCxt()
	bind := &core.Bind{Name: "const", Args: []string{"x", "y"}, Rhs: &core.EVar{Name: "x"}}
	typed, err := cx.TypecheckBind(bind)
	require.NoError(t, err)

	outer, ok := typed.Ty.(*types.TAll)
	require.True(t, ok, "got %s", typed.Ty)
	inner, ok := outer.Body.(*types.TAll)
	require.True(t, ok, "got %s", typed.Ty)
	fn, ok := inner.Body.(*types.TFun)
	require.True(t, ok, "got %s", typed.Ty)
	res, ok := fn.Res.(*types.TFun)
	require.True(t, ok, "got %s", typed.Ty)

	assert.True(t, fn.Arg.Equals(&types.TVar{Name: outer.Var}), "got %s", typed.Ty)
	assert.True(t, res.Arg.Equals(&types.TVar{Name: inner.Var}), "got %s", typed.Ty)
	assert.True(t, res.Res.Equals(&types.TVar{Name: outer.Var}), "got %s", typed.Ty)
}

// A local binding's own type can go out of scope without its existentials
// ever becoming part of the outer binding's type: `let g = \z. z in 5`
// leaves g's argument existential declared in Γ but unreachable from the
// top-level binding's final type (Int), since g itself is never used. That
// is a genuine ambiguity distinct from let-generalization, which only
// closes over existentials generalization can actually see in the result.
func TestUnusedLocalBindingLeavesGenuineAmbiguity(t *testing.T) {
	cx := NewCxt()
	bind := &core.Bind{
		Name: "wasteful",
		Rhs: &core.ELet{
			Bind: &core.Bind{Name: "g", Args: []string{"z"}, Rhs: &core.EVar{Name: "z"}},
			Body: intLit(5),
		},
	}
	_, err := cx.TypecheckBind(bind)
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.TYC008, rep.Code)
}

// With an explicit rank-1 signature, id checks successfully and keeps its
// polymorphic type.
func TestSignedIdentityChecks(t *testing.T) {
	cx := NewCxt()
	sig := &types.TAll{Var: "a", Body: &types.TFun{Arg: &types.TVar{Name: "a"}, Res: &types.TVar{Name: "a"}}}
	bind := &core.Bind{Name: "id", Args: []string{"x"}, Rhs: &core.EVar{Name: "x"}, Sig: sig}
	typed, err := cx.TypecheckBind(bind)
	require.NoError(t, err)
	assert.True(t, typed.Ty.Equals(sig), "got %s", typed.Ty)
}

// const likewise requires its signature to generalize over two variables.
func TestSignedConstChecks(t *testing.T) {
	cx := NewCxt()
	sig := &types.TAll{Var: "a", Body: &types.TAll{Var: "b", Body: &types.TFun{
		Arg: &types.TVar{Name: "a"},
		Res: &types.TFun{Arg: &types.TVar{Name: "b"}, Res: &types.TVar{Name: "a"}},
	}}}
	bind := &core.Bind{
		Name: "const",
		Args: []string{"x", "y"},
		Rhs:  &core.EVar{Name: "x"},
		Sig:  sig,
	}
	typed, err := cx.TypecheckBind(bind)
	require.NoError(t, err)
	assert.True(t, typed.Ty.Equals(sig), "got %s", typed.Ty)
}

// A Bool data declaration plus a `not` binding that pattern matches on it:
// the monomorphic case exercises LoadDataDecl, Infer's ECase path, and
// checkPattern's PEnum case together, without needing a signature.
func boolData() *core.Data {
	boolTy := &types.TData{Name: "Bool"}
	return &core.Data{
		Name: "Bool",
		Head: boolTy,
		Injs: []core.Inj{
			{Name: "True", Type: boolTy},
			{Name: "False", Type: boolTy},
		},
	}
}

func TestNotOverBoolData(t *testing.T) {
	cx := NewCxt()
	require.NoError(t, cx.LoadDataDecl(boolData()))

	notBind := &core.Bind{
		Name: "not",
		Args: []string{"b"},
		Rhs: &core.ECase{
			Scrutinee: &core.EVar{Name: "b"},
			Branches: []core.Branch{
				{Pattern: &core.PEnum{Name: "True"}, Rhs: &core.EInj{Name: "False"}},
				{Pattern: &core.PEnum{Name: "False"}, Rhs: &core.EInj{Name: "True"}},
			},
		},
	}
	typed, err := cx.TypecheckBind(notBind)
	require.NoError(t, err)

	want := &types.TFun{Arg: &types.TData{Name: "Bool"}, Res: &types.TData{Name: "Bool"}}
	assert.True(t, typed.Ty.Equals(want), "got %s", typed.Ty)
}

// A reference to a name that is neither a local binding, a known
// signature, nor the binding's own name must be rejected outright, not
// silently accepted via auto-extension.
func TestUnresolvedNameIsRejected(t *testing.T) {
	cx := NewCxt()
	bind := &core.Bind{Name: "bad", Rhs: &core.EVar{Name: "y"}}
	_, err := cx.TypecheckBind(bind)
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.TYC004, rep.Code)
}

// Self-application \x. x x has no finite simple type: solving it would
// require an existential to occur inside its own solution.
func TestSelfApplicationFailsOccursCheck(t *testing.T) {
	cx := NewCxt()
	bind := &core.Bind{
		Name: "omega",
		Args: []string{"x"},
		Rhs:  &core.EApp{Fun: &core.EVar{Name: "x"}, Arg: &core.EVar{Name: "x"}},
	}
	_, err := cx.TypecheckBind(bind)
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.TYC005, rep.Code)
}

// 1 + 'a' mixes an Int and a Char operand; EAdd requires both sides
// check against Int.
func TestAddRejectsCharOperand(t *testing.T) {
	cx := NewCxt()
	bind := &core.Bind{
		Name: "bad",
		Rhs:  &core.EAdd{Left: intLit(1), Right: charLit('a')},
	}
	_, err := cx.TypecheckBind(bind)
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.TYC005, rep.Code)
}

// CheckProgram processes data declarations before any binding, so a later
// binding may reference an earlier-declared constructor regardless of
// where in the flat Def list the data declaration appears.
func TestCheckProgramOrdersDataBeforeBinds(t *testing.T) {
	prog := &core.Program{
		Defs: []core.Def{
			&core.Bind{Name: "trueValue", Rhs: &core.EInj{Name: "True"}},
			boolData(),
		},
	}
	typed, _, err := CheckProgram(prog)
	require.NoError(t, err)
	require.Len(t, typed.Binds, 1)
	assert.True(t, typed.Binds[0].Ty.Equals(&types.TData{Name: "Bool"}))
}

// A recursive binding may refer to its own name before its signature is
// known, via the auto-extension restricted to cx.currentBind.
func TestSelfRecursiveBindingWithSignature(t *testing.T) {
	cx := NewCxt()
	intTy := &types.TLit{Name: "Int"}
	sig := &types.TFun{Arg: intTy, Res: intTy}
	// loop n = loop n
	bind := &core.Bind{
		Name: "loop",
		Args: []string{"n"},
		Rhs:  &core.EApp{Fun: &core.EVar{Name: "loop"}, Arg: &core.EVar{Name: "n"}},
		Sig:  sig,
	}
	typed, err := cx.TypecheckBind(bind)
	require.NoError(t, err)
	assert.True(t, typed.Ty.Equals(sig))
}
