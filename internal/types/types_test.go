package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMonotype(t *testing.T) {
	tests := []struct {
		name string
		t    Type
		want bool
	}{
		{"lit", &TLit{Name: "Int"}, true},
		{"var", &TVar{Name: "a"}, true},
		{"evar", &TEVar{Name: "e1"}, true},
		{"fun of monotypes", &TFun{Arg: &TLit{Name: "Int"}, Res: &TLit{Name: "Char"}}, true},
		{"forall", &TAll{Var: "a", Body: &TVar{Name: "a"}}, false},
		{"fun with forall arg", &TFun{Arg: &TAll{Var: "a", Body: &TVar{Name: "a"}}, Res: &TLit{Name: "Int"}}, false},
		{"data of monotypes", &TData{Name: "List", Args: []Type{&TLit{Name: "Int"}}}, true},
		{"data of a forall", &TData{Name: "List", Args: []Type{&TAll{Var: "a", Body: &TVar{Name: "a"}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMonotype(tt.t))
		})
	}
}

func TestFreeEVarsIgnoresRigidVars(t *testing.T) {
	ty := &TFun{
		Arg: &TVar{Name: "a"},
		Res: &TEVar{Name: "e1"},
	}
	free := FreeEVars(ty)
	assert.True(t, free["e1"])
	assert.False(t, free["a"])
	assert.Len(t, free, 1)
}

func TestOccurs(t *testing.T) {
	selfApplying := &TFun{Arg: &TEVar{Name: "e1"}, Res: &TLit{Name: "Int"}}
	assert.True(t, Occurs("e1", selfApplying))
	assert.False(t, Occurs("e2", selfApplying))
}

func TestSubstVarStopsAtShadowingForall(t *testing.T) {
	// forall a. a -> a, substituting 'a' from the outside must not touch
	// the body, since the inner forall rebinds the same name.
	shadowed := &TAll{Var: "a", Body: &TFun{Arg: &TVar{Name: "a"}, Res: &TVar{Name: "a"}}}
	result := SubstVar("a", &TLit{Name: "Int"}, shadowed)
	require.True(t, result.Equals(shadowed))
}

func TestSubstVarRewritesFreeOccurrences(t *testing.T) {
	ty := &TFun{Arg: &TVar{Name: "a"}, Res: &TVar{Name: "b"}}
	result := SubstVar("a", &TLit{Name: "Int"}, ty)
	want := &TFun{Arg: &TLit{Name: "Int"}, Res: &TVar{Name: "b"}}
	assert.True(t, result.Equals(want), "got %s, want %s", result, want)
}

func TestTypeEqualsDistinguishesShapes(t *testing.T) {
	a := &TData{Name: "List", Args: []Type{&TLit{Name: "Int"}}}
	b := &TData{Name: "List", Args: []Type{&TLit{Name: "Char"}}}
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(&TData{Name: "List", Args: []Type{&TLit{Name: "Int"}}}))
}

func TestLitTypeRoundTrips(t *testing.T) {
	assert.True(t, LitType(Lit{Kind: IntLit, Int: 3}).Equals(&TLit{Name: "Int"}))
	assert.True(t, LitType(Lit{Kind: CharLit, Char: 'x'}).Equals(&TLit{Name: "Char"}))
}

func TestTFunStringParenthesizesHigherRankArg(t *testing.T) {
	fn := &TFun{
		Arg: &TAll{Var: "a", Body: &TFun{Arg: &TVar{Name: "a"}, Res: &TVar{Name: "a"}}},
		Res: &TLit{Name: "Int"},
	}
	assert.Contains(t, fn.String(), "(forall a.")
}
