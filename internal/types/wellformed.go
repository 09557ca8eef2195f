package types

// WellFormed checks Γ ⊢ A: every TVar occurring in A must be bound by an
// EnvTVar in Γ, and every TEVar must be declared (solved or unsolved) in Γ.
// Recurses structurally, pushing EnvTVar(α) when descending under a TAll.
func WellFormed(c Context, t Type) error {
	switch a := t.(type) {
	case *TLit:
		return nil
	case *TVar:
		if !HasTVar(c, a.Name) {
			return errUnboundTypeVar(a.Name)
		}
		return nil
	case *TEVar:
		if HasTEVar(c, a.Name) {
			return nil
		}
		if _, solved := FindSolved(c, a.Name); solved {
			return nil
		}
		return errUnknownExistential(a.Name)
	case *TFun:
		if err := WellFormed(c, a.Arg); err != nil {
			return err
		}
		return WellFormed(c, a.Res)
	case *TAll:
		inner := c.Push(EnvTVar{Name: a.Var})
		return WellFormed(inner, a.Body)
	case *TData:
		for _, arg := range a.Args {
			if err := WellFormed(c, arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// Apply computes [Γ]A: every solved existential is rewritten to its
// solution, recursively, iterated to a fixed point since a solution may
// itself mention another solved existential.
func Apply(c Context, t Type) Type {
	cur := t
	for {
		next := applyOnce(c, cur)
		if next.Equals(cur) {
			return next
		}
		cur = next
	}
}

func applyOnce(c Context, t Type) Type {
	switch a := t.(type) {
	case *TLit:
		return a
	case *TVar:
		return a
	case *TEVar:
		if sol, ok := FindSolved(c, a.Name); ok {
			return applyOnce(c, sol)
		}
		return a
	case *TFun:
		return &TFun{Arg: applyOnce(c, a.Arg), Res: applyOnce(c, a.Res)}
	case *TAll:
		return &TAll{Var: a.Var, Body: applyOnce(c, a.Body)}
	case *TData:
		args := make([]Type, len(a.Args))
		for i, arg := range a.Args {
			args[i] = applyOnce(c, arg)
		}
		return &TData{Name: a.Name, Args: args}
	default:
		return t
	}
}
