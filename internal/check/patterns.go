package check

import (
	"github.com/churf-lang/churf/internal/core"
	"github.com/churf-lang/churf/internal/typedast"
	"github.com/churf-lang/churf/internal/types"
)

// inferBranch types a single case branch against the scrutinee's type:
// type the pattern (possibly extending env with variable bindings), then
// infer the branch's right-hand side.
func (cx *Cxt) inferBranch(b core.Branch, scrutTy types.Type) (typedast.Branch, types.Type, error) {
	typedPat, err := cx.checkPattern(b.Pattern, scrutTy)
	if err != nil {
		return typedast.Branch{}, nil, err
	}
	typedRhs, rhsTy, err := cx.Infer(b.Rhs)
	if err != nil {
		return typedast.Branch{}, nil, err
	}
	return typedast.Branch{Pattern: typedPat, Rhs: typedRhs}, rhsTy, nil
}

// checkPattern implements `checkPattern(p, T)`: checks a pattern against
// an expected scrutinee type, extending env with any variables it binds.
func (cx *Cxt) checkPattern(p core.Pattern, t types.Type) (typedast.Pattern, error) {
	switch pat := p.(type) {
	case *core.PVar:
		cx.env = cx.env.Push(types.EnvVar{Name: pat.Name, Ty: t})
		return &typedast.VarPattern{Name: pat.Name, Ty: t}, nil

	case *core.PCatch:
		return &typedast.CatchPattern{Ty: t}, nil

	case *core.PLit:
		litTy := types.LitType(pat.Lit)
		if err := cx.subtype(litTy, t); err != nil {
			return nil, err
		}
		return &typedast.LitPattern{Lit: pat.Lit, Ty: types.Apply(cx.env, t)}, nil

	case *core.PEnum:
		ctorTy, ok := cx.DataInj(pat.Name)
		if !ok {
			return nil, errUnknownConstructor(pat.Name)
		}
		if err := cx.subtype(ctorTy, t); err != nil {
			return nil, err
		}
		return &typedast.EnumPattern{Name: pat.Name, Ty: types.Apply(cx.env, t)}, nil

	case *core.PInj:
		ctorTy, ok := cx.DataInj(pat.Name)
		if !ok {
			return nil, errUnknownConstructor(pat.Name)
		}
		quantVars, argTys, retTy := peelCtorType(ctorTy)
		subst := map[string]types.Type{}
		for _, v := range quantVars {
			name, evar := cx.freshEVar()
			cx.env = cx.env.Push(types.EnvTEVar{Name: name})
			subst[v] = evar
		}
		instRet := substMany(subst, retTy)
		if err := cx.subtype(instRet, t); err != nil {
			return nil, err
		}
		if len(argTys) != len(pat.Args) {
			return nil, errArityMismatch(pat.Name, len(argTys), len(pat.Args))
		}
		typedArgs := make([]typedast.Pattern, len(pat.Args))
		for i, sub := range pat.Args {
			expected := types.Apply(cx.env, substMany(subst, argTys[i]))
			tp, err := cx.checkPattern(sub, expected)
			if err != nil {
				return nil, err
			}
			typedArgs[i] = tp
		}
		return &typedast.InjPattern{Name: pat.Name, Args: typedArgs, Ty: types.Apply(cx.env, t)}, nil
	}
	panic("unreachable pattern form")
}

// peelCtorType decomposes a constructor type TAll*(α⃗). A1 -> .. -> An -> D
// into its quantified variable names, its argument types, and its data
// return type.
func peelCtorType(t types.Type) (quantVars []string, args []types.Type, ret types.Type) {
	cur := t
	for {
		if all, ok := cur.(*types.TAll); ok {
			quantVars = append(quantVars, all.Var)
			cur = all.Body
			continue
		}
		break
	}
	for {
		if fn, ok := cur.(*types.TFun); ok {
			args = append(args, fn.Arg)
			cur = fn.Res
			continue
		}
		break
	}
	return quantVars, args, cur
}

func substMany(subst map[string]types.Type, t types.Type) types.Type {
	for name, with := range subst {
		t = types.SubstVar(name, with, t)
	}
	return t
}
