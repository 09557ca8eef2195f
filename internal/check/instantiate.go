package check

import "github.com/churf-lang/churf/internal/types"

// instantiateL establishes ά <: A, mutating cx.env. Rules are tried in
// priority order: Solve, then Reach/Arr/AllR by the shape of A.
func (cx *Cxt) instantiateL(evar string, a types.Type) error {
	// Rule 1 (Solve): A is a monotype well-formed in the prefix before ά.
	if types.IsMonotype(a) {
		left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: evar})
		if ok {
			if err := types.WellFormed(left, a); err == nil {
				cx.env = append(append(append(types.Context{}, left...), types.EnvSolved{Name: evar, Mono: a}), right...)
				return nil
			}
		}
	}

	switch b := a.(type) {
	case *types.TEVar:
		// Rule 2 (Reach): solve the existential that comes later to the
		// earlier one, never the other way, preserving left-to-right
		// dependency.
		if types.IndexBefore(cx.env, types.EnvTEVar{Name: evar}, types.EnvTEVar{Name: b.Name}) {
			left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: b.Name})
			if !ok {
				return cx.instantiateLSolveFallback(evar, a)
			}
			cx.env = append(append(append(types.Context{}, left...), types.EnvSolved{Name: b.Name, Mono: &types.TEVar{Name: evar}}), right...)
			return nil
		}
		return cx.instantiateLSolveFallback(evar, a)

	case *types.TFun:
		// Rule 3 (Arr).
		left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: evar})
		if !ok {
			return cx.instantiateLSolveFallback(evar, a)
		}
		a1Name, _ := cx.freshEVar()
		a2Name, _ := cx.freshEVar()
		mid := types.Context{
			types.EnvTEVar{Name: a2Name},
			types.EnvTEVar{Name: a1Name},
			types.EnvSolved{Name: evar, Mono: &types.TFun{Arg: &types.TEVar{Name: a1Name}, Res: &types.TEVar{Name: a2Name}}},
		}
		cx.env = append(append(append(types.Context{}, left...), mid...), right...)
		if err := cx.instantiateR(b.Arg, a1Name); err != nil {
			return err
		}
		return cx.instantiateL(a2Name, types.Apply(cx.env, b.Res))

	case *types.TAll:
		// Rule 4 (AllR, as seen from instantiateL's side): push the bound
		// variable, recurse, then drop it back off.
		cx.env = cx.env.Push(types.EnvTVar{Name: b.Var})
		if err := cx.instantiateL(evar, b.Body); err != nil {
			return err
		}
		cx.env = types.DropTrailing(cx.env, types.EnvTVar{Name: b.Var})
		return nil

	default:
		return cx.instantiateLSolveFallback(evar, a)
	}
}

// instantiateLSolveFallback re-attempts the Solve rule's well-formedness
// check with a clearer error on failure (reached when A is a monotype but
// mentions an existential declared after ά, an occurs-style violation).
func (cx *Cxt) instantiateLSolveFallback(evar string, a types.Type) error {
	left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: evar})
	if !ok {
		return errTypeMismatch(&types.TEVar{Name: evar}, a)
	}
	if err := types.WellFormed(left, a); err != nil {
		return errTypeMismatch(&types.TEVar{Name: evar}, a)
	}
	cx.env = append(append(append(types.Context{}, left...), types.EnvSolved{Name: evar, Mono: a}), right...)
	return nil
}

// instantiateR establishes A <: ά, mutating cx.env. Mirrors instantiateL
// with TFun/TAll handled in the flipped direction.
func (cx *Cxt) instantiateR(a types.Type, evar string) error {
	if types.IsMonotype(a) {
		left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: evar})
		if ok {
			if err := types.WellFormed(left, a); err == nil {
				cx.env = append(append(append(types.Context{}, left...), types.EnvSolved{Name: evar, Mono: a}), right...)
				return nil
			}
		}
	}

	switch b := a.(type) {
	case *types.TEVar:
		if types.IndexBefore(cx.env, types.EnvTEVar{Name: evar}, types.EnvTEVar{Name: b.Name}) {
			left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: b.Name})
			if !ok {
				return cx.instantiateRSolveFallback(a, evar)
			}
			cx.env = append(append(append(types.Context{}, left...), types.EnvSolved{Name: b.Name, Mono: &types.TEVar{Name: evar}}), right...)
			return nil
		}
		return cx.instantiateRSolveFallback(a, evar)

	case *types.TFun:
		left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: evar})
		if !ok {
			return cx.instantiateRSolveFallback(a, evar)
		}
		a1Name, _ := cx.freshEVar()
		a2Name, _ := cx.freshEVar()
		mid := types.Context{
			types.EnvTEVar{Name: a2Name},
			types.EnvTEVar{Name: a1Name},
			types.EnvSolved{Name: evar, Mono: &types.TFun{Arg: &types.TEVar{Name: a1Name}, Res: &types.TEVar{Name: a2Name}}},
		}
		cx.env = append(append(append(types.Context{}, left...), mid...), right...)
		// Flipped back for R: instantiateL on the argument.
		if err := cx.instantiateL(a1Name, b.Arg); err != nil {
			return err
		}
		return cx.instantiateR(types.Apply(cx.env, b.Res), a2Name)

	case *types.TAll:
		// AllL rule as literally specified: allocate a fresh existential
		// έ, push EnvMark(έ), EnvTEVar(έ), substitute [έ/ε]E, recurse,
		// then drop back to the marker.
		freshName, freshEV := cx.freshEVar()
		cx.env = cx.env.Push(types.EnvMark{Name: freshName}, types.EnvTEVar{Name: freshName})
		body := types.SubstVar(b.Var, freshEV, b.Body)
		if err := cx.instantiateR(body, evar); err != nil {
			return err
		}
		cx.env = types.DropTrailing(cx.env, types.EnvMark{Name: freshName})
		return nil

	default:
		return cx.instantiateRSolveFallback(a, evar)
	}
}

func (cx *Cxt) instantiateRSolveFallback(a types.Type, evar string) error {
	left, right, ok := types.SplitOn(cx.env, types.EnvTEVar{Name: evar})
	if !ok {
		return errTypeMismatch(a, &types.TEVar{Name: evar})
	}
	if err := types.WellFormed(left, a); err != nil {
		return errTypeMismatch(a, &types.TEVar{Name: evar})
	}
	cx.env = append(append(append(types.Context{}, left...), types.EnvSolved{Name: evar, Mono: a}), right...)
	return nil
}
