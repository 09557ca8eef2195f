package mono

import (
	"strings"

	"github.com/churf-lang/churf/internal/types"
)

// mapTypes structurally pairs a binding's declared type (with any leading
// TAll quantifiers peeled off) against its concrete instantiation, building
// the substitution map from quantified variable name to ground type that
// morphExp consults via mono(). A shape mismatch between the two types is
// an internal-bug condition: the checker already established that every
// use site's type is an instance of the binding's declared type.
func mapTypes(declared, instance types.Type) (map[string]types.Type, error) {
	body := declared
	for {
		all, ok := body.(*types.TAll)
		if !ok {
			break
		}
		body = all.Body
	}
	m := map[string]types.Type{}
	if err := pairTypes(body, instance, m); err != nil {
		return nil, err
	}
	return m, nil
}

func pairTypes(declared, instance types.Type, out map[string]types.Type) error {
	switch d := declared.(type) {
	case *types.TVar:
		if existing, ok := out[d.Name]; ok {
			if !existing.Equals(instance) {
				return errStructuralMismatch(declared, instance)
			}
			return nil
		}
		out[d.Name] = instance
		return nil

	case *types.TLit:
		if i, ok := instance.(*types.TLit); ok && i.Name == d.Name {
			return nil
		}
		return errStructuralMismatch(declared, instance)

	case *types.TFun:
		i, ok := instance.(*types.TFun)
		if !ok {
			return errStructuralMismatch(declared, instance)
		}
		if err := pairTypes(d.Arg, i.Arg, out); err != nil {
			return err
		}
		return pairTypes(d.Res, i.Res, out)

	case *types.TData:
		i, ok := instance.(*types.TData)
		if !ok || i.Name != d.Name || len(i.Args) != len(d.Args) {
			return errStructuralMismatch(declared, instance)
		}
		for idx := range d.Args {
			if err := pairTypes(d.Args[idx], i.Args[idx], out); err != nil {
				return err
			}
		}
		return nil

	case *types.TAll:
		// A higher-rank argument position: pair the bodies directly, the
		// bound variable itself is opaque to the outer specialization.
		i, ok := instance.(*types.TAll)
		if !ok {
			return errStructuralMismatch(declared, instance)
		}
		return pairTypes(d.Body, i.Body, out)

	default:
		return errStructuralMismatch(declared, instance)
	}
}

// mono applies the current specialization mapping to every TVar reachable
// in t, producing a ground type. Any TVar absent from the mapping is an
// internal bug (every TVar reachable from a binding's body is bound by the
// binding's own declared-type quantifiers).
func mono(polys map[string]types.Type, t types.Type) (types.Type, error) {
	switch a := t.(type) {
	case *types.TLit:
		return a, nil
	case *types.TVar:
		g, ok := polys[a.Name]
		if !ok {
			return nil, errUnmappedTypeVar(a.Name)
		}
		return g, nil
	case *types.TEVar:
		// An unsolved existential should never survive into typed IR; if
		// one does, the checker failed to apply a solution somewhere.
		return nil, errUnmappedTypeVar(a.Name)
	case *types.TFun:
		arg, err := mono(polys, a.Arg)
		if err != nil {
			return nil, err
		}
		res, err := mono(polys, a.Res)
		if err != nil {
			return nil, err
		}
		return &types.TFun{Arg: arg, Res: res}, nil
	case *types.TAll:
		body, err := mono(polys, a.Body)
		if err != nil {
			return nil, err
		}
		return &types.TAll{Var: a.Var, Body: body}, nil
	case *types.TData:
		args := make([]types.Type, len(a.Args))
		for i, arg := range a.Args {
			g, err := mono(polys, arg)
			if err != nil {
				return nil, err
			}
			args[i] = g
		}
		return &types.TData{Name: a.Name, Args: args}, nil
	default:
		return t, nil
	}
}

// mangle renders a ground type into a name-safe suffix. TLit mangles to its
// own name; TFun mangles to its argument and result joined by an
// underscore; TData mangles to its head name followed by its mangled type
// arguments, so `List Int` and `List Char` specialize to distinct names.
func mangle(t types.Type) string {
	switch a := t.(type) {
	case *types.TLit:
		return a.Name
	case *types.TFun:
		return mangle(a.Arg) + "_" + mangle(a.Res)
	case *types.TData:
		parts := make([]string, len(a.Args)+1)
		parts[0] = a.Name
		for i, arg := range a.Args {
			parts[i+1] = mangle(arg)
		}
		return strings.Join(parts, "_")
	default:
		// TVar/TEVar should never reach mangle: mono() already rejected
		// or resolved them. A TAll, which mono() keeps, is rendered here.
		return "_" + t.String()
	}
}

// newName builds the specialized name for a top-level binding or
// constructor at a given ground instantiation.
func newName(base string, t types.Type) string {
	return base + "$" + mangle(t)
}
