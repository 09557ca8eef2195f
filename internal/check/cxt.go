// Package check implements the mutually recursive bidirectional
// type-inference/checking judgments — instantiation, subtyping, inference
// & checking, and pattern-match typing — over the Type/Context data model
// in internal/types. These judgments share one explicitly-threaded state
// object, so they live together in a single package.
package check

import (
	"fmt"

	"github.com/churf-lang/churf/internal/core"
	"github.com/churf-lang/churf/internal/types"
)

// Cxt is the top-level checker state. It lives for the whole type-check
// pass; env is transient and is reset to empty between top-level
// bindings. A single *Cxt is threaded explicitly through every mutually
// recursive judgment (check/infer/subtype/instantiate*/checkPattern/
// applyInfer): one shared, explicitly-passed state rather than a hidden
// global.
type Cxt struct {
	env types.Context

	// sig holds user-provided and (after a binding completes) inferred
	// top-level type signatures, growing monotonically.
	sig map[string]types.Type

	// binds holds the untyped right-hand sides, kept for reference; the
	// checker itself never re-reads this map once loaded.
	binds map[string]*core.Bind

	// dataInjs maps a constructor name to its (possibly quantified)
	// constructor type, closed over the data declaration's free type
	// variables by universal quantification.
	dataInjs map[string]types.Type

	// currentBind is the name of the top-level binding currently being
	// checked, so infer's EVar case can tell a genuine self-reference
	// (recursion, permitted via a fresh existential even before the
	// binding's own type is known) apart from a reference to an
	// undeclared name (an error).
	currentBind string

	nextTEVar int
}

// NewCxt creates an empty top-level checker state.
func NewCxt() *Cxt {
	return &Cxt{
		env:      types.Context{},
		sig:      map[string]types.Type{},
		binds:    map[string]*core.Bind{},
		dataInjs: map[string]types.Type{},
	}
}

// Sig returns the (possibly explicit, possibly inferred) signature for a
// top-level name, if any.
func (cx *Cxt) Sig(name string) (types.Type, bool) {
	t, ok := cx.sig[name]
	return t, ok
}

// SetSig records name's signature — called by TypecheckBind both when a
// binding has checked against its explicit signature and when it finishes
// inferring an unannotated binding.
func (cx *Cxt) SetSig(name string, t types.Type) {
	cx.sig[name] = t
}

// LoadBind registers an untyped binding for reference; the checker itself
// never reads this map back once loaded.
func (cx *Cxt) LoadBind(b *core.Bind) {
	cx.binds[b.Name] = b
}

// DataInj returns the (quantified) type of a constructor, if declared.
func (cx *Cxt) DataInj(ctor string) (types.Type, bool) {
	t, ok := cx.dataInjs[ctor]
	return t, ok
}

// Env exposes the current local context, mainly for tests and for
// IsComplete checks from the driver.
func (cx *Cxt) Env() types.Context { return cx.env }

// DataInjs returns a copy of the constructor-name to constructor-type
// table, for consumers (the monomorphizer, the pretty-printer) that need
// to resolve EInj nodes after type checking has finished.
func (cx *Cxt) DataInjs() map[string]types.Type {
	out := make(map[string]types.Type, len(cx.dataInjs))
	for k, v := range cx.dataInjs {
		out[k] = v
	}
	return out
}

// fresh allocates a new, globally-unique existential name from a
// monotonic counter, so collisions are impossible by construction.
func (cx *Cxt) fresh() string {
	cx.nextTEVar++
	return fmt.Sprintf("e%d", cx.nextTEVar)
}

// freshEVar allocates a fresh existential and returns it both as a raw
// name and as a *TEVar node.
func (cx *Cxt) freshEVar() (string, *types.TEVar) {
	n := cx.fresh()
	return n, &types.TEVar{Name: n}
}

// LoadDataDecl validates a data declaration's shape and registers each
// injection's constructor type in dataInjs, closing over the declared
// type's free variables by universal quantification.
func (cx *Cxt) LoadDataDecl(d *core.Data) error {
	headVars, err := validateDataHead(d.Head)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, v := range headVars {
		if seen[v] {
			return errBadDataDefinition(d.Name, "duplicate type parameter "+v)
		}
		seen[v] = true
	}

	for _, inj := range d.Injs {
		retHead, retArgs, err := injReturnShape(inj.Type)
		if err != nil {
			return errBadDataDefinition(d.Name, err.Error())
		}
		if retHead != d.Name {
			return errBadDataDefinition(d.Name, fmt.Sprintf(
				"injection %s returns %s, expected %s", inj.Name, retHead, d.Name))
		}
		if len(retArgs) != len(headVars) {
			return errBadDataDefinition(d.Name, fmt.Sprintf(
				"injection %s returns %d type argument(s), expected %d",
				inj.Name, len(retArgs), len(headVars)))
		}
		for i, a := range retArgs {
			v, ok := a.(*types.TVar)
			if !ok || v.Name != headVars[i] {
				return errBadDataDefinition(d.Name, fmt.Sprintf(
					"injection %s's return type arguments must match the data head's "+
						"bound variables in order", inj.Name))
			}
		}

		// Reject constructor argument types mentioning a type parameter
		// not bound by the data head.
		for _, argTy := range injArgTypes(inj.Type) {
			for fv := range collectTVarsForCheck(argTy) {
				if !seen[fv] {
					return errUnboundDataParams(inj.Name)
				}
			}
		}

		// Close the constructor type over the head's parameters unless the
		// declaration already quantified it.
		injTy := inj.Type
		if _, quantified := injTy.(*types.TAll); !quantified {
			for i := len(headVars) - 1; i >= 0; i-- {
				injTy = &types.TAll{Var: headVars[i], Body: injTy}
			}
		}
		cx.dataInjs[inj.Name] = injTy
	}
	return nil
}

// validateDataHead checks that T is syntactically TAll*(TData name
// [TVar ...]) with distinct bound TVars, and returns the bound variable
// names in order.
func validateDataHead(t types.Type) ([]string, error) {
	var vars []string
	cur := t
	for {
		if all, ok := cur.(*types.TAll); ok {
			vars = append(vars, all.Var)
			cur = all.Body
			continue
		}
		break
	}
	data, ok := cur.(*types.TData)
	if !ok {
		return nil, errBadDataDefinition("<head>", "data head must be TAll*(TData name [TVar...])")
	}
	if len(data.Args) != len(vars) {
		return nil, errBadDataDefinition(data.Name, "data head's TData arguments must be exactly its bound type variables")
	}
	for i, a := range data.Args {
		v, ok := a.(*types.TVar)
		if !ok || v.Name != vars[i] {
			return nil, errBadDataDefinition(data.Name, "data head's TData arguments must be the bound type variables, in order")
		}
	}
	return vars, nil
}

// injReturnShape peels off TAll/TFun layers of a constructor type and
// returns the head name and type arguments of its ultimate TData result.
func injReturnShape(t types.Type) (string, []types.Type, error) {
	cur := t
	for {
		switch a := cur.(type) {
		case *types.TAll:
			cur = a.Body
		case *types.TFun:
			cur = a.Res
		case *types.TData:
			return a.Name, a.Args, nil
		default:
			return "", nil, fmt.Errorf("constructor return type is not a data type")
		}
	}
}

// injArgTypes collects the argument types (A1..An) of a constructor type
// TAll*(a). A1 -> ... -> An -> D.
func injArgTypes(t types.Type) []types.Type {
	var args []types.Type
	cur := t
	for {
		switch a := cur.(type) {
		case *types.TAll:
			cur = a.Body
		case *types.TFun:
			args = append(args, a.Arg)
			cur = a.Res
		default:
			return args
		}
	}
}

func collectTVarsForCheck(t types.Type) map[string]bool {
	out := map[string]bool{}
	var walk func(types.Type)
	walk = func(t types.Type) {
		switch a := t.(type) {
		case *types.TVar:
			out[a.Name] = true
		case *types.TFun:
			walk(a.Arg)
			walk(a.Res)
		case *types.TAll:
			walk(a.Body)
		case *types.TData:
			for _, arg := range a.Args {
				walk(arg)
			}
		}
	}
	walk(t)
	return out
}
