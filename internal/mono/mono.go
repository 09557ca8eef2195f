// Package mono implements the monomorphizer: it takes the typed,
// lambda-lifted IR produced by internal/check and specializes every
// polymorphic top-level binding to the distinct concrete types at which it
// is used, producing a closed set of monomorphic bindings reachable from
// main.
package mono

import (
	"fmt"

	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/typedast"
	"github.com/churf-lang/churf/internal/types"
)

// entryState is the monomorphizer's cycle-breaker: a binding is marked
// Incomplete the instant morphBind starts specializing it, so a
// self-referential (possibly mutually recursive, though churf's core only
// has direct top-level recursion) reference at the same specialization
// returns the in-progress name instead of looping forever.
type entryState int

const (
	incomplete entryState = iota
	complete
)

type outputEntry struct {
	state entryState
	bind  *typedast.Bind // nil while incomplete
}

// Program is the monomorphizer's output: a closed set of bindings in which
// every reachable types.Type is ground (TLit, and TFun/TData built from
// ground types — no TVar/TEVar/TAll), plus the set of constructor specializations
// reachable from main, addressed by mangled name.
type Program struct {
	Binds []*typedast.Bind
	Ctors map[string]types.Type
}

// State is the monomorphizer's working state.
type State struct {
	input  map[string]*typedast.Bind // read-only
	output map[string]*outputEntry   // mutated

	ctors     map[string]types.Type // mangled ctor name -> its ground type
	ctorTypes map[string]types.Type // declared (possibly quantified) ctor type, by name

	// polys and locals are reader-scoped per call to morphBind: they are
	// saved and restored around each recursive specialization so that one
	// bind's specialization mapping never leaks into another's.
	polys  map[string]types.Type
	locals map[string]bool
}

// Monomorphize specializes prog starting from `main`, which must exist and
// is always specialized at type Int — churf programs' `main` has type
// Int, the exit code / result value.
func Monomorphize(prog *typedast.Program, ctorTypes map[string]types.Type) (*Program, error) {
	s := &State{
		input:     map[string]*typedast.Bind{},
		output:    map[string]*outputEntry{},
		ctors:     map[string]types.Type{},
		ctorTypes: ctorTypes,
	}
	for _, b := range prog.Binds {
		s.input[b.Name] = b
	}

	mainBind, ok := s.input["main"]
	if !ok {
		return nil, cherrors.New(cherrors.MONO003, "monomorphize", "no top-level binding named main", nil)
	}

	if _, err := s.morphBind(&types.TLit{Name: "Int"}, mainBind); err != nil {
		return nil, err
	}

	out := &Program{Ctors: s.ctors}
	for name, entry := range s.output {
		if entry.state != complete {
			return nil, cherrors.Errorf("monomorphize", "internal error: binding %s never completed specialization", name)
		}
		out.Binds = append(out.Binds, entry.bind)
	}
	return out, nil
}

// Validate checks the monomorphizer's closure properties: main$Int is
// present, and no binding type or expression type reachable from a body
// contains a TVar, TEVar or TAll. It does not check that a Var names a
// binding in the output, since a bare name may also be a local.
func (p *Program) Validate() error {
	names := map[string]bool{}
	for _, b := range p.Binds {
		names[b.Name] = true
	}
	if !names["main$Int"] {
		return fmt.Errorf("monomorphic program missing main$Int")
	}
	for _, b := range p.Binds {
		if !types.IsMonotype(b.Ty) {
			return fmt.Errorf("binding %s has a non-ground type %s", b.Name, b.Ty)
		}
		if containsRigid(b.Ty) {
			return fmt.Errorf("binding %s has a non-ground type %s", b.Name, b.Ty)
		}
		if err := validateExp(b.Body, names); err != nil {
			return err
		}
	}
	return nil
}

func containsRigid(t types.Type) bool {
	switch a := t.(type) {
	case *types.TVar, *types.TEVar:
		return true
	case *types.TFun:
		return containsRigid(a.Arg) || containsRigid(a.Res)
	case *types.TAll:
		return true
	case *types.TData:
		for _, arg := range a.Args {
			if containsRigid(arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func validateExp(e typedast.Exp, globals map[string]bool) error {
	if containsRigid(e.Typ()) {
		return fmt.Errorf("expression %s has a non-ground type %s", e, e.Typ())
	}
	switch n := e.(type) {
	case *typedast.Var:
		if !globals[n.Name] {
			// Locals (lambda parameters) are not in `globals`; we can't
			// distinguish them here without threading locals through, so
			// this check is intentionally permissive for bare names —
			// local-scope correctness is guaranteed by morphExp itself.
			return nil
		}
	case *typedast.App:
		if err := validateExp(n.Fun, globals); err != nil {
			return err
		}
		return validateExp(n.Arg, globals)
	case *typedast.Abs:
		return validateExp(n.Body, globals)
	case *typedast.Add:
		if err := validateExp(n.Left, globals); err != nil {
			return err
		}
		return validateExp(n.Right, globals)
	case *typedast.Case:
		if err := validateExp(n.Scrutinee, globals); err != nil {
			return err
		}
		for _, br := range n.Branches {
			if err := validateExp(br.Rhs, globals); err != nil {
				return err
			}
		}
	}
	return nil
}
