package check

import "github.com/churf-lang/churf/internal/types"

// subtype establishes A <: B, mutating cx.env.
func (cx *Cxt) subtype(a, b types.Type) error {
	switch x := a.(type) {
	case *types.TLit:
		if y, ok := b.(*types.TLit); ok && y.Name == x.Name {
			return nil
		}
	case *types.TVar:
		if y, ok := b.(*types.TVar); ok && y.Name == x.Name {
			return nil
		}
	case *types.TEVar:
		if y, ok := b.(*types.TEVar); ok && y.Name == x.Name {
			return nil
		}
	}

	if xf, ok := a.(*types.TFun); ok {
		if yf, ok := b.(*types.TFun); ok {
			if err := cx.subtype(yf.Arg, xf.Arg); err != nil {
				return err
			}
			return cx.subtype(types.Apply(cx.env, xf.Res), types.Apply(cx.env, yf.Res))
		}
	}

	if yAll, ok := b.(*types.TAll); ok {
		cx.env = cx.env.Push(types.EnvTVar{Name: yAll.Var})
		if err := cx.subtype(a, yAll.Body); err != nil {
			return err
		}
		cx.env = types.DropTrailing(cx.env, types.EnvTVar{Name: yAll.Var})
		return nil
	}

	if xAll, ok := a.(*types.TAll); ok {
		freshName, freshEV := cx.freshEVar()
		cx.env = cx.env.Push(types.EnvMark{Name: freshName}, types.EnvTEVar{Name: freshName})
		body := types.SubstVar(xAll.Var, freshEV, xAll.Body)
		if err := cx.subtype(body, b); err != nil {
			return err
		}
		cx.env = types.DropTrailing(cx.env, types.EnvMark{Name: freshName})
		return nil
	}

	if xe, ok := a.(*types.TEVar); ok {
		if !types.Occurs(xe.Name, b) {
			return cx.instantiateL(xe.Name, b)
		}
		return errTypeMismatch(a, b)
	}

	if ye, ok := b.(*types.TEVar); ok {
		if !types.Occurs(ye.Name, a) {
			return cx.instantiateR(a, ye.Name)
		}
		return errTypeMismatch(a, b)
	}

	if xd, ok := a.(*types.TData); ok {
		if yd, ok := b.(*types.TData); ok && xd.Name == yd.Name && len(xd.Args) == len(yd.Args) {
			cur := cx.env
			for i := range xd.Args {
				if err := cx.subtype(types.Apply(cur, xd.Args[i]), types.Apply(cur, yd.Args[i])); err != nil {
					return err
				}
				cur = cx.env
			}
			return nil
		}
	}

	return errTypeMismatch(a, b)
}
