// Package types implements the data layer of the churf semantic-analysis
// core: the type data model, the ordered context, well-formedness and
// contextual substitution. The bidirectional inference/checking judgments
// that operate over them live in internal/check.
package types

import (
	"fmt"
	"strings"
)

// Type is the closed set of type-level terms. Every Type can be rendered,
// compared for syntactic equality, and asked whether it is a monotype.
type Type interface {
	fmt.Stringer
	Equals(Type) bool
	isType()
}

// TLit is a primitive type constant: Int, Char, or a nullary user data type.
type TLit struct {
	Name string
}

func (t *TLit) isType() {}
func (t *TLit) String() string { return t.Name }
func (t *TLit) Equals(other Type) bool {
	o, ok := other.(*TLit)
	return ok && o.Name == t.Name
}

// TVar is a universal (rigid) type variable, bound by an enclosing TAll.
type TVar struct {
	Name string
}

func (t *TVar) isType() {}
func (t *TVar) String() string { return t.Name }
func (t *TVar) Equals(other Type) bool {
	o, ok := other.(*TVar)
	return ok && o.Name == t.Name
}

// TEVar is an existential (unification) variable introduced during
// inference. It is solved to a monotype. At the end of an unannotated
// top-level binding, one still free in the binding's type is generalized
// into a TVar; any other still unsolved is an error.
type TEVar struct {
	Name string
}

func (t *TEVar) isType() {}
func (t *TEVar) String() string { return t.Name }
func (t *TEVar) Equals(other Type) bool {
	o, ok := other.(*TEVar)
	return ok && o.Name == t.Name
}

// TFun is a right-associative function type A -> B.
type TFun struct {
	Arg Type
	Res Type
}

func (t *TFun) isType() {}
func (t *TFun) String() string {
	argStr := t.Arg.String()
	if _, isFun := t.Arg.(*TFun); isFun {
		argStr = "(" + argStr + ")"
	}
	if _, isAll := t.Arg.(*TAll); isAll {
		argStr = "(" + argStr + ")"
	}
	return fmt.Sprintf("%s -> %s", argStr, t.Res.String())
}
func (t *TFun) Equals(other Type) bool {
	o, ok := other.(*TFun)
	return ok && o.Arg.Equals(t.Arg) && o.Res.Equals(t.Res)
}

// TAll is a universal quantifier; it may appear at any position, giving
// predicative higher-rank polymorphism.
type TAll struct {
	Var  string
	Body Type
}

func (t *TAll) isType() {}
func (t *TAll) String() string {
	return fmt.Sprintf("forall %s. %s", t.Var, t.Body.String())
}
func (t *TAll) Equals(other Type) bool {
	o, ok := other.(*TAll)
	return ok && o.Var == t.Var && o.Body.Equals(t.Body)
}

// TData is an applied data-type constructor: the head name plus its type
// arguments, e.g. TData("List", []Type{TLit("Int")}) for `List Int`.
type TData struct {
	Name string
	Args []Type
}

func (t *TData) isType() {}
func (t *TData) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s %s", t.Name, strings.Join(parts, " "))
}
func (t *TData) Equals(other Type) bool {
	o, ok := other.(*TData)
	if !ok || o.Name != t.Name || len(o.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// IsMonotype reports whether A contains no TAll anywhere in its structure.
func IsMonotype(t Type) bool {
	switch a := t.(type) {
	case *TLit, *TVar, *TEVar:
		return true
	case *TFun:
		return IsMonotype(a.Arg) && IsMonotype(a.Res)
	case *TAll:
		return false
	case *TData:
		for _, arg := range a.Args {
			if !IsMonotype(arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FreeEVars returns the set of existential-variable names occurring free in
// A. TVar and TLit are ignored, as spec'd: frees(A) tracks only TEVar.
func FreeEVars(t Type) map[string]bool {
	free := make(map[string]bool)
	collectFreeEVars(t, free)
	return free
}

func collectFreeEVars(t Type, out map[string]bool) {
	switch a := t.(type) {
	case *TLit, *TVar:
		// ignored by design
	case *TEVar:
		out[a.Name] = true
	case *TFun:
		collectFreeEVars(a.Arg, out)
		collectFreeEVars(a.Res, out)
	case *TAll:
		collectFreeEVars(a.Body, out)
	case *TData:
		for _, arg := range a.Args {
			collectFreeEVars(arg, out)
		}
	}
}

// FreeEVarOrder returns the existential-variable names occurring free in A,
// in order of first (left-to-right, outside-in) occurrence, deduplicated.
// Generalize relies on this order to decide which quantifier binds
// outermost.
func FreeEVarOrder(t Type) []string {
	var order []string
	seen := map[string]bool{}
	var walk func(Type)
	walk = func(t Type) {
		switch a := t.(type) {
		case *TEVar:
			if !seen[a.Name] {
				seen[a.Name] = true
				order = append(order, a.Name)
			}
		case *TFun:
			walk(a.Arg)
			walk(a.Res)
		case *TAll:
			walk(a.Body)
		case *TData:
			for _, arg := range a.Args {
				walk(arg)
			}
		}
	}
	walk(t)
	return order
}

// GeneralizationSubst computes the evar->TVar substitution needed to close
// t over every existential still free in it, in order of first occurrence,
// using fresh rigid names that don't collide with any TVar already in t.
// order lists the substituted existential names in quantification order
// (outermost first); subst is nil if t has no free existentials.
func GeneralizationSubst(t Type) (subst map[string]Type, order []string) {
	order = FreeEVarOrder(t)
	if len(order) == 0 {
		return nil, nil
	}
	used := map[string]bool{}
	collectTVarNames(t, used)
	subst = make(map[string]Type, len(order))
	next := 0
	for _, evar := range order {
		subst[evar] = &TVar{Name: freshTVarName(&next, used)}
	}
	return subst, order
}

// ApplyGeneralizationSubst rewrites every existential named in subst to its
// paired TVar inside t, leaving everything else untouched. Used to keep a
// binding's typed body annotations in sync with its generalized signature.
func ApplyGeneralizationSubst(subst map[string]Type, t Type) Type {
	for name, with := range subst {
		t = substEVar(name, with, t)
	}
	return t
}

// QuantifyOver wraps t in one TAll per name in order (outermost first),
// using subst to find each name's TVar. Exported so a generalization step
// that also needs to rewrite a typed body (via the matching evar
// substitution) can build the same quantified signature without
// recomputing GeneralizationSubst a second time.
func QuantifyOver(t Type, subst map[string]Type, order []string) Type {
	body := t
	for i := len(order) - 1; i >= 0; i-- {
		body = &TAll{Var: subst[order[i]].(*TVar).Name, Body: body}
	}
	return body
}

// Generalize closes a type over every existential still free in it,
// turning `const`'s inferred `ά -> έ -> ά` into `forall a b. a -> b -> a`:
// each free TEVar, in order of first occurrence, becomes a fresh rigid
// TVar bound by an enclosing TAll (outermost quantifier binds the
// left-most variable). A type with no free existentials is returned
// unchanged. This is the let-generalization step a top-level binding
// without an explicit signature needs: without it, a binding like
// `const x y = x` would report its two argument existentials as
// unsolved instead of generalizing over them.
func Generalize(t Type) Type {
	subst, order := GeneralizationSubst(t)
	if subst == nil {
		return t
	}
	return QuantifyOver(ApplyGeneralizationSubst(subst, t), subst, order)
}

func collectTVarNames(t Type, out map[string]bool) {
	switch a := t.(type) {
	case *TVar:
		out[a.Name] = true
	case *TFun:
		collectTVarNames(a.Arg, out)
		collectTVarNames(a.Res, out)
	case *TAll:
		out[a.Var] = true
		collectTVarNames(a.Body, out)
	case *TData:
		for _, arg := range a.Args {
			collectTVarNames(arg, out)
		}
	}
}

// freshTVarName picks the next unused single-letter-then-suffixed name
// (a, b, ..., z, a1, b1, ...), advancing next past every name it tries.
func freshTVarName(next *int, used map[string]bool) string {
	for {
		name := tvarNameAt(*next)
		*next++
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func tvarNameAt(i int) string {
	letter := rune('a' + i%26)
	suffix := i / 26
	if suffix == 0 {
		return string(letter)
	}
	return fmt.Sprintf("%c%d", letter, suffix)
}

// substEVar replaces every occurrence of the existential `name` with
// `with` inside t, the generalization counterpart of substVar.
func substEVar(name string, with Type, t Type) Type {
	switch a := t.(type) {
	case *TLit, *TVar:
		return a
	case *TEVar:
		if a.Name == name {
			return with
		}
		return a
	case *TFun:
		return &TFun{Arg: substEVar(name, with, a.Arg), Res: substEVar(name, with, a.Res)}
	case *TAll:
		return &TAll{Var: a.Var, Body: substEVar(name, with, a.Body)}
	case *TData:
		args := make([]Type, len(a.Args))
		for i, arg := range a.Args {
			args[i] = substEVar(name, with, arg)
		}
		return &TData{Name: a.Name, Args: args}
	default:
		return t
	}
}

// Occurs reports whether ά occurs free in A, the side condition guarding
// instantiateL/instantiateR and subtype's TEVar cases from building cyclic
// solutions.
func Occurs(name string, t Type) bool {
	return FreeEVars(t)[name]
}

// substVar replaces every occurrence of the rigid type variable `name` with
// `with` inside t. Used by instantiateL/AllR-style rules ([έ/ε]E) and by
// subtype's TAll rules.
func substVar(name string, with Type, t Type) Type {
	switch a := t.(type) {
	case *TLit:
		return a
	case *TVar:
		if a.Name == name {
			return with
		}
		return a
	case *TEVar:
		return a
	case *TFun:
		return &TFun{Arg: substVar(name, with, a.Arg), Res: substVar(name, with, a.Res)}
	case *TAll:
		if a.Var == name {
			return a
		}
		return &TAll{Var: a.Var, Body: substVar(name, with, a.Body)}
	case *TData:
		args := make([]Type, len(a.Args))
		for i, arg := range a.Args {
			args[i] = substVar(name, with, arg)
		}
		return &TData{Name: a.Name, Args: args}
	default:
		return t
	}
}

// SubstVar is the exported form of substVar, used by pattern-matching
// (constructor instantiation) and by the checker's TAll rules
// (subtype, instantiateR, applyInfer) for TVar->TEVar substitutions.
func SubstVar(name string, with Type, t Type) Type {
	return substVar(name, with, t)
}

// LitKind distinguishes the two primitive literal forms churf supports.
type LitKind int

const (
	IntLit LitKind = iota
	CharLit
)

func (k LitKind) String() string {
	switch k {
	case IntLit:
		return "Int"
	case CharLit:
		return "Char"
	default:
		return "?"
	}
}

// Lit is a literal value: an integer or a character.
type Lit struct {
	Kind  LitKind
	Int   int64
	Char  rune
}

func (l Lit) String() string {
	switch l.Kind {
	case IntLit:
		return fmt.Sprintf("%d", l.Int)
	case CharLit:
		return fmt.Sprintf("%q", l.Char)
	default:
		return "<bad-lit>"
	}
}

// LitType returns the primitive type of a literal: Int or Char.
func LitType(l Lit) Type {
	switch l.Kind {
	case IntLit:
		return &TLit{Name: "Int"}
	case CharLit:
		return &TLit{Name: "Char"}
	default:
		panic("unreachable literal kind")
	}
}
