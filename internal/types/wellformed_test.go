package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellFormedRejectsUnboundTVar(t *testing.T) {
	err := WellFormed(Context{}, &TVar{Name: "a"})
	require.Error(t, err)
}

func TestWellFormedAcceptsTVarBoundByForall(t *testing.T) {
	ty := &TAll{Var: "a", Body: &TFun{Arg: &TVar{Name: "a"}, Res: &TVar{Name: "a"}}}
	assert.NoError(t, WellFormed(Context{}, ty))
}

func TestWellFormedRejectsUnknownExistential(t *testing.T) {
	err := WellFormed(Context{}, &TEVar{Name: "e1"})
	require.Error(t, err)
}

func TestWellFormedAcceptsDeclaredExistential(t *testing.T) {
	c := Context{EnvTEVar{Name: "e1"}}
	assert.NoError(t, WellFormed(c, &TEVar{Name: "e1"}))

	solved := Context{EnvSolved{Name: "e1", Mono: &TLit{Name: "Int"}}}
	assert.NoError(t, WellFormed(solved, &TEVar{Name: "e1"}))
}

func TestApplyRewritesSolvedExistentialToFixedPoint(t *testing.T) {
	// e1 := e2, e2 := Int: applying against e1 must chase through e2.
	c := Context{
		EnvSolved{Name: "e1", Mono: &TEVar{Name: "e2"}},
		EnvSolved{Name: "e2", Mono: &TLit{Name: "Int"}},
	}
	got := Apply(c, &TEVar{Name: "e1"})
	assert.True(t, got.Equals(&TLit{Name: "Int"}), "got %s", got)
}

func TestApplyIsIdempotent(t *testing.T) {
	c := Context{
		EnvSolved{Name: "e1", Mono: &TFun{Arg: &TLit{Name: "Int"}, Res: &TEVar{Name: "e2"}}},
		EnvSolved{Name: "e2", Mono: &TLit{Name: "Char"}},
	}
	once := Apply(c, &TEVar{Name: "e1"})
	twice := Apply(c, once)
	assert.True(t, once.Equals(twice), "Apply should be idempotent once fully resolved: %s vs %s", once, twice)
}

func TestApplyLeavesUnsolvedAndRigidUntouched(t *testing.T) {
	c := Context{EnvTEVar{Name: "e1"}, EnvTVar{Name: "a"}}
	assert.True(t, Apply(c, &TEVar{Name: "e1"}).Equals(&TEVar{Name: "e1"}))
	assert.True(t, Apply(c, &TVar{Name: "a"}).Equals(&TVar{Name: "a"}))
}

func TestApplyDescendsIntoCompoundTypes(t *testing.T) {
	c := Context{EnvSolved{Name: "e1", Mono: &TLit{Name: "Int"}}}
	ty := &TData{Name: "List", Args: []Type{&TEVar{Name: "e1"}}}
	got := Apply(c, ty)
	assert.True(t, got.Equals(&TData{Name: "List", Args: []Type{&TLit{Name: "Int"}}}))
}
