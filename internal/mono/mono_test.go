package mono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/typedast"
	"github.com/churf-lang/churf/internal/types"
)

func intTy() *types.TLit { return &types.TLit{Name: "Int"} }

func intLit(n int64) *typedast.Lit {
	return &typedast.Lit{Lit: types.Lit{Kind: types.IntLit, Int: n}, Ty: intTy()}
}

func TestMonomorphizeSimpleMain(t *testing.T) {
	prog := &typedast.Program{
		Binds: []*typedast.Bind{
			{Name: "main", Ty: intTy(), Body: intLit(5)},
		},
	}
	result, err := Monomorphize(prog, map[string]types.Type{})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	require.Len(t, result.Binds, 1)
	assert.Equal(t, "main$Int", result.Binds[0].Name)
}

func TestMonomorphizeMissingMain(t *testing.T) {
	prog := &typedast.Program{Binds: []*typedast.Bind{{Name: "notMain", Ty: intTy(), Body: intLit(1)}}}
	_, err := Monomorphize(prog, map[string]types.Type{})
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.MONO003, rep.Code)
}

func TestMonomorphizeUnresolvedGlobal(t *testing.T) {
	prog := &typedast.Program{
		Binds: []*typedast.Bind{
			{Name: "main", Ty: intTy(), Body: &typedast.Var{Name: "ghost", Ty: intTy()}},
		},
	}
	_, err := Monomorphize(prog, map[string]types.Type{})
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.MONO005, rep.Code)
}

func TestMonomorphizeRejectsNestedLet(t *testing.T) {
	prog := &typedast.Program{
		Binds: []*typedast.Bind{
			{Name: "main", Ty: intTy(), Body: &typedast.Let{
				Name: "x", Rhs: intLit(1), Body: intLit(2), Ty: intTy(),
			}},
		},
	}
	_, err := Monomorphize(prog, map[string]types.Type{})
	require.Error(t, err)
	rep, ok := cherrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cherrors.MONO004, rep.Code)
}

// Calling a polymorphic binding at two distinct ground types must produce
// two distinct specializations with distinct mangled names.
func TestMonomorphizeSpecializesEachInstantiationSeparately(t *testing.T) {
	aVar := &types.TVar{Name: "a"}
	idScheme := &types.TAll{Var: "a", Body: &types.TFun{Arg: aVar, Res: aVar}}
	idBind := &typedast.Bind{
		Name: "id",
		Ty:   idScheme,
		Body: &typedast.Abs{
			Param: "x", ParamTy: aVar,
			Body: &typedast.Var{Name: "x", Ty: aVar},
			Ty:   &types.TFun{Arg: aVar, Res: aVar},
		},
	}
	charTy := &types.TLit{Name: "Char"}
	// main = (id 5) + ((\c. 1) (id 'a')), where `id 5` exercises
	// id$Int_Int and `id 'a'`, passed to a lambda, exercises id$Char_Char,
	// so both specializations are reachable from main.
	mainBind := &typedast.Bind{
		Name: "main",
		Ty:   intTy(),
		Body: &typedast.Add{
			Left: &typedast.App{
				Fun: &typedast.Var{Name: "id", Ty: idScheme},
				Arg: intLit(5),
				Ty:  intTy(),
			},
			Right: &typedast.App{
				Fun: &typedast.Abs{
					Param: "c", ParamTy: charTy,
					Body: intLit(1),
					Ty:   &types.TFun{Arg: charTy, Res: intTy()},
				},
				Arg: &typedast.App{
					Fun: &typedast.Var{Name: "id", Ty: idScheme},
					Arg: &typedast.Lit{Lit: types.Lit{Kind: types.CharLit, Char: 'a'}, Ty: charTy},
					Ty:  charTy,
				},
				Ty: intTy(),
			},
			Ty: intTy(),
		},
	}
	prog := &typedast.Program{Binds: []*typedast.Bind{idBind, mainBind}}
	result, err := Monomorphize(prog, map[string]types.Type{})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	names := map[string]bool{}
	for _, b := range result.Binds {
		names[b.Name] = true
	}
	assert.True(t, names["id$Int_Int"], "expected id$Int_Int among %v", names)
	assert.True(t, names["id$Char_Char"], "expected id$Char_Char among %v", names)
}

// Recursive bindings must not loop forever: a reference to the
// binding currently being specialized, at the same instantiation, reuses
// the in-progress name via the Incomplete/Complete bookkeeping.
func TestMonomorphizeBreaksRecursionCycle(t *testing.T) {
	// count n = count n, specialized only at Int from main.
	countBind := &typedast.Bind{
		Name: "count",
		Ty:   &types.TFun{Arg: intTy(), Res: intTy()},
		Body: &typedast.Abs{
			Param: "n", ParamTy: intTy(),
			Body: &typedast.App{
				Fun: &typedast.Var{Name: "count", Ty: &types.TFun{Arg: intTy(), Res: intTy()}},
				Arg: &typedast.Var{Name: "n", Ty: intTy()},
				Ty:  intTy(),
			},
			Ty: &types.TFun{Arg: intTy(), Res: intTy()},
		},
	}
	mainBind := &typedast.Bind{
		Name: "main",
		Ty:   intTy(),
		Body: &typedast.App{
			Fun: &typedast.Var{Name: "count", Ty: countBind.Ty},
			Arg: intLit(0),
			Ty:  intTy(),
		},
	}
	prog := &typedast.Program{Binds: []*typedast.Bind{countBind, mainBind}}
	result, err := Monomorphize(prog, map[string]types.Type{})
	require.NoError(t, err)
	require.NoError(t, result.Validate())
	names := map[string]bool{}
	for _, b := range result.Binds {
		names[b.Name] = true
	}
	assert.True(t, names["count$Int_Int"])
}

// A constructor's specialization key is its ground return type alone, so
// the same constructor reached through an application chain (inside
// makeList) and through a pattern match (inside matchList) mangles to the
// identical name.
func TestConstructorNamingConsistentAcrossAppAndPattern(t *testing.T) {
	aVar := &types.TVar{Name: "a"}
	listOf := func(t types.Type) types.Type { return &types.TData{Name: "List", Args: []types.Type{t}} }
	listInt := listOf(intTy())

	consScheme := &types.TAll{Var: "a", Body: &types.TFun{
		Arg: aVar,
		Res: &types.TFun{Arg: listOf(aVar), Res: listOf(aVar)},
	}}
	nilScheme := &types.TAll{Var: "a", Body: listOf(aVar)}
	ctorTypes := map[string]types.Type{"Cons": consScheme, "Nil": nilScheme}

	makeListBind := &typedast.Bind{
		Name: "makeList",
		Ty:   listInt,
		Body: &typedast.App{
			Fun: &typedast.App{
				Fun: &typedast.Inj{Name: "Cons", Ty: consScheme},
				Arg: intLit(1),
				Ty:  &types.TFun{Arg: listInt, Res: listInt},
			},
			Arg: &typedast.Inj{Name: "Nil", Ty: listInt},
			Ty:  listInt,
		},
	}

	matchListBind := &typedast.Bind{
		Name: "matchList",
		Ty:   intTy(),
		Body: &typedast.Case{
			Scrutinee: &typedast.Var{Name: "makeList", Ty: listInt},
			Branches: []typedast.Branch{
				{
					Pattern: &typedast.InjPattern{
						Name: "Cons",
						Args: []typedast.Pattern{
							&typedast.VarPattern{Name: "h", Ty: intTy()},
							&typedast.VarPattern{Name: "t", Ty: listInt},
						},
						Ty: listInt,
					},
					Rhs: &typedast.Var{Name: "h", Ty: intTy()},
				},
				{
					Pattern: &typedast.EnumPattern{Name: "Nil", Ty: listInt},
					Rhs:     intLit(0),
				},
			},
			Ty: intTy(),
		},
	}

	mainBind := &typedast.Bind{
		Name: "main",
		Ty:   intTy(),
		Body: &typedast.Var{Name: "matchList", Ty: intTy()},
	}

	prog := &typedast.Program{Binds: []*typedast.Bind{makeListBind, matchListBind, mainBind}}
	result, err := Monomorphize(prog, ctorTypes)
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	require.Contains(t, result.Ctors, "Cons$List_Int")
	require.Contains(t, result.Ctors, "Nil$List_Int")
	assert.True(t, result.Ctors["Cons$List_Int"].Equals(listInt))
	assert.True(t, result.Ctors["Nil$List_Int"].Equals(listInt))
	assert.Len(t, result.Ctors, 2, "Cons must mangle identically from both call sites, not fork into two entries")
}
