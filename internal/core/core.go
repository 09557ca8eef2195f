// Package core defines the untyped, already-parsed/desugared/renamed
// program representation that is the inbound interface to the churf
// semantic-analysis core. Lexing, parsing, layout resolution, name
// resolution, desugaring, lambda lifting, and dependency ordering of
// definitions all happen upstream of this package; by the time a Program
// reaches internal/check, every binder already has a globally unique name.
package core

import (
	"fmt"
	"strings"

	"github.com/churf-lang/churf/internal/types"
)

// Def is one top-level definition: either a data-type declaration or a
// value binding (optionally paired with an explicit signature).
type Def interface {
	fmt.Stringer
	isDef()
}

// Data is a data-type declaration: `data T a1 .. an where κ1 : T1 ; ...`.
// Head is the declared type's shape, TAll*(TData Name [TVar a1, ...]),
// checked for well-formedness by Cxt.LoadDataDecl.
type Data struct {
	Name string
	Head types.Type
	Injs []Inj
}

func (d *Data) isDef() {}
func (d *Data) String() string {
	parts := make([]string, len(d.Injs))
	for i, inj := range d.Injs {
		parts[i] = inj.Name + " : " + inj.Type.String()
	}
	return fmt.Sprintf("data %s where %s", d.Name, strings.Join(parts, "; "))
}

// Inj is one constructor (injection) of a data declaration.
type Inj struct {
	Name string
	Type types.Type
}

// Bind is a value binding: `name arg1 .. argn = rhs`.
type Bind struct {
	Name string
	Args []string
	Rhs  Exp

	// Sig is the explicit signature from a companion DSig, or nil if the
	// binding's type must be inferred by TypecheckBind.
	Sig types.Type
}

func (b *Bind) isDef() {}
func (b *Bind) String() string {
	return fmt.Sprintf("%s %s = %s", b.Name, strings.Join(b.Args, " "), b.Rhs)
}

// FoldArgs returns foldr EAbs rhs args: the binding's right-hand side with
// every declared argument re-wrapped as an explicit lambda, the shape
// TypecheckBind actually checks/infers against.
func (b *Bind) FoldArgs() Exp {
	e := b.Rhs
	for i := len(b.Args) - 1; i >= 0; i-- {
		e = &EAbs{Param: b.Args[i], Body: e}
	}
	return e
}

// Program is a flat, already dependency-ordered list of definitions.
type Program struct {
	Defs []Def
}

// Exp is the closed set of expression forms.
type Exp interface {
	fmt.Stringer
	isExp()
}

// ELit is an integer or character literal.
type ELit struct{ Lit types.Lit }

func (e *ELit) isExp()        {}
func (e *ELit) String() string { return e.Lit.String() }

// EVar is a term-variable reference.
type EVar struct{ Name string }

func (e *EVar) isExp()        {}
func (e *EVar) String() string { return e.Name }

// EInj is a reference to a data constructor.
type EInj struct{ Name string }

func (e *EInj) isExp()        {}
func (e *EInj) String() string { return e.Name }

// EAnn is an explicit type annotation `(e : A)`.
type EAnn struct {
	Exp Exp
	Ty  types.Type
}

func (e *EAnn) isExp()        {}
func (e *EAnn) String() string { return fmt.Sprintf("(%s : %s)", e.Exp, e.Ty) }

// EApp is function application `e1 e2`.
type EApp struct {
	Fun Exp
	Arg Exp
}

func (e *EApp) isExp()        {}
func (e *EApp) String() string { return fmt.Sprintf("(%s %s)", e.Fun, e.Arg) }

// EAbs is lambda abstraction `\x. e`.
type EAbs struct {
	Param string
	Body  Exp
}

func (e *EAbs) isExp()        {}
func (e *EAbs) String() string { return fmt.Sprintf("(\\%s. %s)", e.Param, e.Body) }

// ELet is `let x a1 .. an = rhs in body` — a single non-recursive local
// binding, generalized only at the top level.
type ELet struct {
	Bind *Bind
	Body Exp
}

func (e *ELet) isExp() {}
func (e *ELet) String() string {
	return fmt.Sprintf("let %s in %s", e.Bind, e.Body)
}

// EAdd is integer addition `e1 + e2`.
type EAdd struct {
	Left  Exp
	Right Exp
}

func (e *EAdd) isExp()        {}
func (e *EAdd) String() string { return fmt.Sprintf("(%s + %s)", e.Left, e.Right) }

// ECase is pattern-match `case scrutinee of { branches }`.
type ECase struct {
	Scrutinee Exp
	Branches  []Branch
}

func (e *ECase) isExp() {}
func (e *ECase) String() string {
	parts := make([]string, len(e.Branches))
	for i, b := range e.Branches {
		parts[i] = b.String()
	}
	return fmt.Sprintf("case %s of { %s }", e.Scrutinee, strings.Join(parts, " ; "))
}

// Branch is one arm of a case expression.
type Branch struct {
	Pattern Pattern
	Rhs     Exp
}

func (b Branch) String() string { return fmt.Sprintf("%s => %s", b.Pattern, b.Rhs) }

// Pattern is the closed set of pattern forms.
type Pattern interface {
	fmt.Stringer
	isPattern()
}

// PVar binds the scrutinee (or sub-scrutinee) to a fresh name.
type PVar struct{ Name string }

func (p *PVar) isPattern()    {}
func (p *PVar) String() string { return p.Name }

// PCatch is a wildcard pattern `_`.
type PCatch struct{}

func (p *PCatch) isPattern()    {}
func (p *PCatch) String() string { return "_" }

// PLit matches a literal value exactly.
type PLit struct{ Lit types.Lit }

func (p *PLit) isPattern()    {}
func (p *PLit) String() string { return p.Lit.String() }

// PEnum matches a nullary constructor.
type PEnum struct{ Name string }

func (p *PEnum) isPattern()    {}
func (p *PEnum) String() string { return p.Name }

// PInj matches a constructor applied to sub-patterns.
type PInj struct {
	Name string
	Args []Pattern
}

func (p *PInj) isPattern() {}
func (p *PInj) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
}
