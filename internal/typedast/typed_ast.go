// Package typedast is the output IR of the type checker: it mirrors
// internal/core's shapes, but every expression, pattern, and branch node
// is paired with its final, fully-applied type. The same node shapes,
// under the additional invariant that every reachable Type is ground,
// double as the monomorphizer's output IR: see internal/mono for the
// Validate() that checks it.
package typedast

import (
	"fmt"
	"strings"

	"github.com/churf-lang/churf/internal/types"
)

// Exp is a typed expression: a node from the closed set below, always
// paired with its Type via the Typ() accessor.
type Exp interface {
	fmt.Stringer
	Typ() types.Type
	isExp()
}

// Lit is a typed literal.
type Lit struct {
	Lit types.Lit
	Ty  types.Type
}

func (e *Lit) isExp()          {}
func (e *Lit) Typ() types.Type { return e.Ty }
func (e *Lit) String() string  { return fmt.Sprintf("%s : %s", e.Lit, e.Ty) }

// Var is a typed variable reference.
type Var struct {
	Name string
	Ty   types.Type
}

func (e *Var) isExp()          {}
func (e *Var) Typ() types.Type { return e.Ty }
func (e *Var) String() string  { return fmt.Sprintf("%s : %s", e.Name, e.Ty) }

// Inj is a typed reference to a data constructor.
type Inj struct {
	Name string
	Ty   types.Type
}

func (e *Inj) isExp()          {}
func (e *Inj) Typ() types.Type { return e.Ty }
func (e *Inj) String() string  { return fmt.Sprintf("%s : %s", e.Name, e.Ty) }

// App is typed function application.
type App struct {
	Fun Exp
	Arg Exp
	Ty  types.Type
}

func (e *App) isExp()          {}
func (e *App) Typ() types.Type { return e.Ty }
func (e *App) String() string  { return fmt.Sprintf("(%s %s) : %s", e.Fun, e.Arg, e.Ty) }

// Abs is a typed lambda abstraction.
type Abs struct {
	Param   string
	ParamTy types.Type
	Body    Exp
	Ty      types.Type
}

func (e *Abs) isExp()          {}
func (e *Abs) Typ() types.Type { return e.Ty }
func (e *Abs) String() string {
	return fmt.Sprintf("(\\%s:%s. %s) : %s", e.Param, e.ParamTy, e.Body, e.Ty)
}

// Let is a typed local binding.
type Let struct {
	Name string
	Rhs  Exp
	Body Exp
	Ty   types.Type
}

func (e *Let) isExp()          {}
func (e *Let) Typ() types.Type { return e.Ty }
func (e *Let) String() string {
	return fmt.Sprintf("let %s : %s = %s in %s", e.Name, e.Rhs.Typ(), e.Rhs, e.Body)
}

// Add is typed integer addition.
type Add struct {
	Left  Exp
	Right Exp
	Ty    types.Type
}

func (e *Add) isExp()          {}
func (e *Add) Typ() types.Type { return e.Ty }
func (e *Add) String() string  { return fmt.Sprintf("(%s + %s) : %s", e.Left, e.Right, e.Ty) }

// Case is typed pattern matching.
type Case struct {
	Scrutinee Exp
	Branches  []Branch
	Ty        types.Type
}

func (e *Case) isExp()          {}
func (e *Case) Typ() types.Type { return e.Ty }
func (e *Case) String() string {
	parts := make([]string, len(e.Branches))
	for i, b := range e.Branches {
		parts[i] = b.String()
	}
	return fmt.Sprintf("case %s of { %s } : %s", e.Scrutinee, strings.Join(parts, " ; "), e.Ty)
}

// Branch is one typed case arm.
type Branch struct {
	Pattern Pattern
	Rhs     Exp
}

func (b Branch) String() string { return fmt.Sprintf("%s => %s", b.Pattern, b.Rhs) }

// Pattern is a typed pattern, carrying the type it was checked against.
type Pattern interface {
	fmt.Stringer
	Typ() types.Type
	isPattern()
}

// VarPattern is a typed variable-binding pattern.
type VarPattern struct {
	Name string
	Ty   types.Type
}

func (p *VarPattern) isPattern()      {}
func (p *VarPattern) Typ() types.Type { return p.Ty }
func (p *VarPattern) String() string  { return p.Name }

// CatchPattern is a typed wildcard pattern.
type CatchPattern struct{ Ty types.Type }

func (p *CatchPattern) isPattern()      {}
func (p *CatchPattern) Typ() types.Type { return p.Ty }
func (p *CatchPattern) String() string  { return "_" }

// LitPattern is a typed literal pattern.
type LitPattern struct {
	Lit types.Lit
	Ty  types.Type
}

func (p *LitPattern) isPattern()      {}
func (p *LitPattern) Typ() types.Type { return p.Ty }
func (p *LitPattern) String() string  { return p.Lit.String() }

// EnumPattern is a typed nullary-constructor pattern.
type EnumPattern struct {
	Name string
	Ty   types.Type
}

func (p *EnumPattern) isPattern()      {}
func (p *EnumPattern) Typ() types.Type { return p.Ty }
func (p *EnumPattern) String() string  { return p.Name }

// InjPattern is a typed constructor-application pattern.
type InjPattern struct {
	Name string
	Args []Pattern
	Ty   types.Type
}

func (p *InjPattern) isPattern()      {}
func (p *InjPattern) Typ() types.Type { return p.Ty }
func (p *InjPattern) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
}

// Bind is a typed top-level (or, pre-lambda-lifting, local) binding.
// After lambda lifting, every Bind is closed: Body contains no free term
// variable beyond Args.
type Bind struct {
	Name string
	Ty   types.Type // the binding's full (possibly polymorphic) type
	Args []string
	Body Exp
}

func (b *Bind) String() string {
	return fmt.Sprintf("%s %s : %s = %s", b.Name, strings.Join(b.Args, " "), b.Ty, b.Body)
}

// Program is a typed program: one Bind per top-level value binding.
// Data declarations do not appear here — their constructors are recorded
// in Cxt.dataInjs and consumed directly by the monomorphizer/codegen.
type Program struct {
	Binds []*Bind
}

// mapTypes rewrites every type annotation reachable from e by running it
// through f, the shared traversal behind Apply and ApplySubst.
func mapTypes(e Exp, f func(types.Type) types.Type) Exp {
	switch a := e.(type) {
	case *Lit:
		return &Lit{Lit: a.Lit, Ty: f(a.Ty)}
	case *Var:
		return &Var{Name: a.Name, Ty: f(a.Ty)}
	case *Inj:
		return &Inj{Name: a.Name, Ty: f(a.Ty)}
	case *App:
		return &App{Fun: mapTypes(a.Fun, f), Arg: mapTypes(a.Arg, f), Ty: f(a.Ty)}
	case *Abs:
		return &Abs{Param: a.Param, ParamTy: f(a.ParamTy), Body: mapTypes(a.Body, f), Ty: f(a.Ty)}
	case *Let:
		return &Let{Name: a.Name, Rhs: mapTypes(a.Rhs, f), Body: mapTypes(a.Body, f), Ty: f(a.Ty)}
	case *Add:
		return &Add{Left: mapTypes(a.Left, f), Right: mapTypes(a.Right, f), Ty: f(a.Ty)}
	case *Case:
		branches := make([]Branch, len(a.Branches))
		for i, b := range a.Branches {
			branches[i] = Branch{Pattern: mapPatternTypes(b.Pattern, f), Rhs: mapTypes(b.Rhs, f)}
		}
		return &Case{Scrutinee: mapTypes(a.Scrutinee, f), Branches: branches, Ty: f(a.Ty)}
	default:
		return e
	}
}

// mapPatternTypes is mapTypes's counterpart for typed patterns.
func mapPatternTypes(p Pattern, f func(types.Type) types.Type) Pattern {
	switch a := p.(type) {
	case *VarPattern:
		return &VarPattern{Name: a.Name, Ty: f(a.Ty)}
	case *CatchPattern:
		return &CatchPattern{Ty: f(a.Ty)}
	case *LitPattern:
		return &LitPattern{Lit: a.Lit, Ty: f(a.Ty)}
	case *EnumPattern:
		return &EnumPattern{Name: a.Name, Ty: f(a.Ty)}
	case *InjPattern:
		args := make([]Pattern, len(a.Args))
		for i, arg := range a.Args {
			args[i] = mapPatternTypes(arg, f)
		}
		return &InjPattern{Name: a.Name, Args: args, Ty: f(a.Ty)}
	default:
		return p
	}
}

// Apply rewrites every type annotation reachable from e through Γ,
// extending types.Apply pointwise over the typed IR.
func Apply(c types.Context, e Exp) Exp {
	return mapTypes(e, func(t types.Type) types.Type { return types.Apply(c, t) })
}

// ApplyPattern is Apply's counterpart for typed patterns.
func ApplyPattern(c types.Context, p Pattern) Pattern {
	return mapPatternTypes(p, func(t types.Type) types.Type { return types.Apply(c, t) })
}

// ApplySubst rewrites every type annotation reachable from e by the
// evar->TVar substitution a generalization step computed, so a binding's
// typed body stays consistent with its newly-quantified signature.
func ApplySubst(subst map[string]types.Type, e Exp) Exp {
	return mapTypes(e, func(t types.Type) types.Type { return types.ApplyGeneralizationSubst(subst, t) })
}
