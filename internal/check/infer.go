package check

import (
	"github.com/churf-lang/churf/internal/core"
	"github.com/churf-lang/churf/internal/typedast"
	"github.com/churf-lang/churf/internal/types"
)

// Check implements `check(e, A)`: bidirectional checking mode.
func (cx *Cxt) Check(e core.Exp, a types.Type) (typedast.Exp, error) {
	if all, ok := a.(*types.TAll); ok {
		cx.env = cx.env.Push(types.EnvTVar{Name: all.Var})
		typed, err := cx.Check(e, all.Body)
		cx.env = types.DropTrailing(cx.env, types.EnvTVar{Name: all.Var})
		return typed, err
	}

	if abs, ok := e.(*core.EAbs); ok {
		if fn, ok := a.(*types.TFun); ok {
			cx.env = cx.env.Push(types.EnvVar{Name: abs.Param, Ty: fn.Arg})
			body, err := cx.Check(abs.Body, fn.Res)
			cx.env = types.DropTrailing(cx.env, types.EnvVar{Name: abs.Param})
			if err != nil {
				return nil, err
			}
			return &typedast.Abs{Param: abs.Param, ParamTy: types.Apply(cx.env, fn.Arg), Body: body, Ty: types.Apply(cx.env, a)}, nil
		}
	}

	typed, inferred, err := cx.Infer(e)
	if err != nil {
		return nil, err
	}
	applied := types.Apply(cx.env, a)
	if err := cx.subtype(types.Apply(cx.env, inferred), applied); err != nil {
		return nil, err
	}
	return typedast.Apply(cx.env, setTyp(typed, types.Apply(cx.env, a))), nil
}

// setTyp rewrites the outermost type annotation of a typed node, used
// after `check`'s final subtype step re-targets the node at the checked
// type A rather than the type infer() happened to produce.
func setTyp(e typedast.Exp, t types.Type) typedast.Exp {
	switch a := e.(type) {
	case *typedast.Lit:
		return &typedast.Lit{Lit: a.Lit, Ty: t}
	case *typedast.Var:
		return &typedast.Var{Name: a.Name, Ty: t}
	case *typedast.Inj:
		return &typedast.Inj{Name: a.Name, Ty: t}
	case *typedast.App:
		return &typedast.App{Fun: a.Fun, Arg: a.Arg, Ty: t}
	case *typedast.Abs:
		return &typedast.Abs{Param: a.Param, ParamTy: a.ParamTy, Body: a.Body, Ty: t}
	case *typedast.Let:
		return &typedast.Let{Name: a.Name, Rhs: a.Rhs, Body: a.Body, Ty: t}
	case *typedast.Add:
		return &typedast.Add{Left: a.Left, Right: a.Right, Ty: t}
	case *typedast.Case:
		return &typedast.Case{Scrutinee: a.Scrutinee, Branches: a.Branches, Ty: t}
	default:
		return e
	}
}

// Infer implements `infer(e)`: bidirectional inference mode, returning the
// typed node and its inferred type.
func (cx *Cxt) Infer(e core.Exp) (typedast.Exp, types.Type, error) {
	switch n := e.(type) {
	case *core.ELit:
		t := types.LitType(n.Lit)
		return &typedast.Lit{Lit: n.Lit, Ty: t}, t, nil

	case *core.EVar:
		if t, ok := types.LookupVar(cx.env, n.Name); ok {
			return &typedast.Var{Name: n.Name, Ty: t}, t, nil
		}
		if t, ok := cx.Sig(n.Name); ok {
			return &typedast.Var{Name: n.Name, Ty: t}, t, nil
		}
		if n.Name == cx.currentBind {
			// A recursive self-reference to the binding currently being
			// checked: its own signature isn't in cx.sig yet when it has
			// none, so invent a fresh existential for this occurrence
			// instead of rejecting it outright.
			evarName, evar := cx.freshEVar()
			cx.env = cx.env.Push(types.EnvTEVar{Name: evarName}, types.EnvVar{Name: n.Name, Ty: evar})
			return &typedast.Var{Name: n.Name, Ty: evar}, evar, nil
		}
		return nil, nil, errUnresolvedName(n.Name)

	case *core.EInj:
		t, ok := cx.DataInj(n.Name)
		if !ok {
			return nil, nil, errUnknownConstructor(n.Name)
		}
		return &typedast.Inj{Name: n.Name, Ty: t}, t, nil

	case *core.EAnn:
		if err := types.WellFormed(cx.env, n.Ty); err != nil {
			return nil, nil, err
		}
		typed, err := cx.Check(n.Exp, n.Ty)
		if err != nil {
			return nil, nil, err
		}
		return typed, n.Ty, nil

	case *core.EApp:
		funTyped, funTy, err := cx.Infer(n.Fun)
		if err != nil {
			return nil, nil, err
		}
		argTyped, resTy, err := cx.applyInfer(types.Apply(cx.env, funTy), n.Arg)
		if err != nil {
			return nil, nil, err
		}
		final := types.Apply(cx.env, resTy)
		return &typedast.App{Fun: typedast.Apply(cx.env, funTyped), Arg: argTyped, Ty: final}, final, nil

	case *core.EAbs:
		argName, argEv := cx.freshEVar()
		resName, resEv := cx.freshEVar()
		cx.env = cx.env.Push(types.EnvTEVar{Name: argName}, types.EnvTEVar{Name: resName}, types.EnvVar{Name: n.Param, Ty: argEv})
		body, err := cx.Check(n.Body, resEv)
		cx.env = types.DropTrailing(cx.env, types.EnvVar{Name: n.Param, Ty: argEv})
		if err != nil {
			return nil, nil, err
		}
		fnTy := &types.TFun{Arg: types.Apply(cx.env, argEv), Res: types.Apply(cx.env, resEv)}
		return &typedast.Abs{Param: n.Param, ParamTy: types.Apply(cx.env, argEv), Body: body, Ty: fnTy}, fnTy, nil

	case *core.ELet:
		rhsTyped, rhsTy, err := cx.Infer(n.Bind.FoldArgs())
		if err != nil {
			return nil, nil, err
		}
		cx.env = cx.env.Push(types.EnvVar{Name: n.Bind.Name, Ty: rhsTy})
		bodyTyped, bodyTy, err := cx.Infer(n.Body)
		left, _, ok := types.SplitOn(cx.env, types.EnvVar{Name: n.Bind.Name, Ty: rhsTy})
		if ok {
			cx.env = left
		}
		if err != nil {
			return nil, nil, err
		}
		final := types.Apply(cx.env, bodyTy)
		return &typedast.Let{Name: n.Bind.Name, Rhs: rhsTyped, Body: bodyTyped, Ty: final}, final, nil

	case *core.EAdd:
		intTy := &types.TLit{Name: "Int"}
		left, err := cx.Check(n.Left, intTy)
		if err != nil {
			return nil, nil, err
		}
		right, err := cx.Check(n.Right, intTy)
		if err != nil {
			return nil, nil, err
		}
		return &typedast.Add{Left: left, Right: right, Ty: intTy}, intTy, nil

	case *core.ECase:
		scrutTyped, scrutTy, err := cx.Infer(n.Scrutinee)
		if err != nil {
			return nil, nil, err
		}
		scrutTy = types.Apply(cx.env, scrutTy)
		var branches []typedast.Branch
		var branchTys []types.Type
		for _, b := range n.Branches {
			typedBranch, branchTy, err := cx.inferBranch(b, types.Apply(cx.env, scrutTy))
			if err != nil {
				return nil, nil, err
			}
			branches = append(branches, typedBranch)
			branchTys = append(branchTys, branchTy)
		}
		for i := 1; i < len(branchTys); i++ {
			if err := cx.subtype(types.Apply(cx.env, branchTys[i]), types.Apply(cx.env, branchTys[0])); err != nil {
				return nil, nil, err
			}
		}
		result := types.Apply(cx.env, branchTys[0])
		return &typedast.Case{Scrutinee: typedast.Apply(cx.env, scrutTyped), Branches: branches, Ty: result}, result, nil
	}
	panic("unreachable expression form")
}

// applyInfer implements `applyInfer(A, e)`: infers the result of applying
// a value of type A to argument e.
func (cx *Cxt) applyInfer(a types.Type, e core.Exp) (typedast.Exp, types.Type, error) {
	switch t := a.(type) {
	case *types.TAll:
		freshName, freshEV := cx.freshEVar()
		cx.env = cx.env.Push(types.EnvTEVar{Name: freshName})
		return cx.applyInfer(types.SubstVar(t.Var, freshEV, t.Body), e)

	case *types.TEVar:
		left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: t.Name})
		if !ok {
			return nil, nil, errNotAFunction(a)
		}
		a1Name, _ := cx.freshEVar()
		a2Name, _ := cx.freshEVar()
		mid := types.Context{
			types.EnvTEVar{Name: a2Name},
			types.EnvTEVar{Name: a1Name},
			types.EnvSolved{Name: t.Name, Mono: &types.TFun{Arg: &types.TEVar{Name: a1Name}, Res: &types.TEVar{Name: a2Name}}},
		}
		cx.env = append(append(append(types.Context{}, left...), mid...), right...)
		typed, err := cx.Check(e, &types.TEVar{Name: a1Name})
		if err != nil {
			return nil, nil, err
		}
		return typed, &types.TEVar{Name: a2Name}, nil

	case *types.TFun:
		typed, err := cx.Check(e, t.Arg)
		if err != nil {
			return nil, nil, err
		}
		return typed, t.Res, nil

	default:
		return nil, nil, errNotAFunction(a)
	}
}

// TypecheckBind implements `typecheckBind`: check or infer a single
// top-level binding, update cx.sig, and reset the local context to empty
// before the next binding runs. Bindings must be supplied to this function
// in dependency order — the checker does not reorder them.
func (cx *Cxt) TypecheckBind(b *core.Bind) (*typedast.Bind, error) {
	cx.env = types.Context{}
	cx.currentBind = b.Name
	folded := b.FoldArgs()

	var bodyTy types.Type
	var typed typedast.Exp
	var err error

	if b.Sig != nil {
		typed, err = cx.Check(folded, b.Sig)
		if err != nil {
			cx.env = types.Context{}
			cx.currentBind = ""
			return nil, err
		}
		bodyTy = b.Sig
		cx.SetSig(b.Name, b.Sig)
	} else {
		typed, bodyTy, err = cx.Infer(folded)
		if err != nil {
			cx.env = types.Context{}
			cx.currentBind = ""
			return nil, err
		}
		applied := types.Apply(cx.env, bodyTy)

		// Generalize over whatever existentials are still free in the
		// inferred type: `const x y = x` leaves both argument existentials
		// unsolved, and without closing over them as `forall a b. a -> b ->
		// a` the binding could never be called at two different types. Any
		// existential left unsolved elsewhere in env that generalization
		// didn't reach (not free in the binding's own type) is a genuine
		// ambiguity, not a polymorphic one.
		subst, order := types.GeneralizationSubst(applied)
		except := make(map[string]bool, len(order))
		for _, name := range order {
			except[name] = true
		}
		if !types.IsCompleteExcept(cx.env, except) {
			cx.env = types.Context{}
			cx.currentBind = ""
			return nil, errAmbiguousPolymorphism(b.Name)
		}
		if subst == nil {
			bodyTy = applied
		} else {
			typed = typedast.ApplySubst(subst, typed)
			bodyTy = types.QuantifyOver(types.ApplyGeneralizationSubst(subst, applied), subst, order)
		}
		cx.SetSig(b.Name, bodyTy)
	}

	typed = typedast.Apply(cx.env, typed)
	cx.env = types.Context{}
	cx.currentBind = ""

	return &typedast.Bind{Name: b.Name, Ty: bodyTy, Args: nil, Body: typed}, nil
}
