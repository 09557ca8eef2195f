package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churf-lang/churf/internal/core"
	"github.com/churf-lang/churf/internal/typedast"
	"github.com/churf-lang/churf/internal/types"
)

// List a = Nil | Cons a (List a), for exercising checkPattern's PInj case:
// a constructor pattern with sub-patterns, instantiated at a ground type.
func listData() *core.Data {
	aVar := &types.TVar{Name: "a"}
	listA := &types.TData{Name: "List", Args: []types.Type{aVar}}
	return &core.Data{
		Name: "List",
		Head: &types.TAll{Var: "a", Body: listA},
		Injs: []core.Inj{
			{Name: "Nil", Type: &types.TAll{Var: "a", Body: listA}},
			{Name: "Cons", Type: &types.TAll{Var: "a", Body: &types.TFun{
				Arg: aVar,
				Res: &types.TFun{Arg: listA, Res: listA},
			}}},
		},
	}
}

// Matching `Cons h t` against `List Int` must instantiate Cons's
// quantified variable to Int, binding h:Int and t:List Int in env.
func TestCheckPatternInjBindsSubPatternsAtInstantiatedType(t *testing.T) {
	cx := NewCxt()
	require.NoError(t, cx.LoadDataDecl(listData()))

	listInt := &types.TData{Name: "List", Args: []types.Type{&types.TLit{Name: "Int"}}}
	pat := &core.PInj{Name: "Cons", Args: []core.Pattern{
		&core.PVar{Name: "h"},
		&core.PVar{Name: "t"},
	}}

	typed, err := cx.checkPattern(pat, listInt)
	require.NoError(t, err)
	require.IsType(t, &typedast.InjPattern{}, typed)

	hTy, ok := types.LookupVar(cx.env, "h")
	require.True(t, ok)
	assert.True(t, hTy.Equals(&types.TLit{Name: "Int"}), "got %s", hTy)

	tTy, ok := types.LookupVar(cx.env, "t")
	require.True(t, ok)
	assert.True(t, tTy.Equals(listInt), "got %s", tTy)
}

// A pattern applying Cons to the wrong number of sub-patterns is an
// arity mismatch, rejected before any sub-pattern is checked.
func TestCheckPatternInjRejectsArityMismatch(t *testing.T) {
	cx := NewCxt()
	require.NoError(t, cx.LoadDataDecl(listData()))

	listInt := &types.TData{Name: "List", Args: []types.Type{&types.TLit{Name: "Int"}}}
	pat := &core.PInj{Name: "Cons", Args: []core.Pattern{&core.PVar{Name: "h"}}}

	_, err := cx.checkPattern(pat, listInt)
	require.Error(t, err)
}

// Matching Nil against a List Char scrutinee instantiates Nil's bound
// variable to Char rather than Int, with no sub-patterns to bind.
func TestCheckPatternEnumInstantiatesAtScrutineeType(t *testing.T) {
	cx := NewCxt()
	require.NoError(t, cx.LoadDataDecl(listData()))

	listChar := &types.TData{Name: "List", Args: []types.Type{&types.TLit{Name: "Char"}}}
	typed, err := cx.checkPattern(&core.PEnum{Name: "Nil"}, listChar)
	require.NoError(t, err)
	assert.True(t, typed.Typ().Equals(listChar), "got %s", typed.Typ())
}
