package types

import "fmt"

// Elem is one element of the ordered context Γ.
type Elem interface {
	fmt.Stringer
	isElem()
}

// EnvVar binds a term variable x to type A.
type EnvVar struct {
	Name string
	Ty   Type
}

func (e EnvVar) isElem()        {}
func (e EnvVar) String() string { return fmt.Sprintf("%s : %s", e.Name, e.Ty) }

// EnvTVar brings a universal type variable into scope.
type EnvTVar struct {
	Name string
}

func (e EnvTVar) isElem()        {}
func (e EnvTVar) String() string { return e.Name }

// EnvTEVar declares an unsolved existential variable.
type EnvTEVar struct {
	Name string
}

func (e EnvTEVar) isElem()        {}
func (e EnvTEVar) String() string { return "^" + e.Name }

// EnvSolved records that existential ά has been solved to monotype τ.
type EnvSolved struct {
	Name string
	Mono Type
}

func (e EnvSolved) isElem()        {}
func (e EnvSolved) String() string { return fmt.Sprintf("^%s = %s", e.Name, e.Mono) }

// EnvMark is a scope marker pushed before entering a rank-n quantifier, so
// the local context can be truncated precisely back to this point later.
type EnvMark struct {
	Name string
}

func (e EnvMark) isElem()        {}
func (e EnvMark) String() string { return "▶" + e.Name }

// Context is the ordered, index-addressable sequence Γ. A slice (rather
// than a linked list) is used throughout for cache-friendly scans; the one
// non-tail operation (insertion at a split point) is rare and bounded by
// the number of existentials introduced.
type Context []Elem

// Push appends one or more elements to the end of the context.
func (c Context) Push(elems ...Elem) Context {
	return append(c, elems...)
}

// splitOn finds the first occurrence of an element equal to target and
// returns the elements strictly before it and strictly after it, dropping
// target itself. ok is false if target is not present (precondition
// violation — every caller of splitOn knows target must be in Γ).
func splitOn(c Context, target Elem) (left, right Context, ok bool) {
	for i, e := range c {
		if elemEquals(e, target) {
			return c[:i], c[i+1:], true
		}
	}
	return nil, nil, false
}

// SplitOn is the exported form of splitOn.
func SplitOn(c Context, target Elem) (left, right Context, ok bool) {
	return splitOn(c, target)
}

func elemEquals(a, b Elem) bool {
	switch x := a.(type) {
	case EnvVar:
		y, ok := b.(EnvVar)
		return ok && x.Name == y.Name
	case EnvTVar:
		y, ok := b.(EnvTVar)
		return ok && x.Name == y.Name
	case EnvTEVar:
		y, ok := b.(EnvTEVar)
		return ok && x.Name == y.Name
	case EnvSolved:
		y, ok := b.(EnvSolved)
		return ok && x.Name == y.Name
	case EnvMark:
		y, ok := b.(EnvMark)
		return ok && x.Name == y.Name
	default:
		return false
	}
}

// DropTrailing truncates the context to the prefix strictly before the
// first occurrence of elem, discarding elem and everything after it. Used
// on rule exit to pop a marker or a pushed binding.
func DropTrailing(c Context, elem Elem) Context {
	for i, e := range c {
		if elemEquals(e, elem) {
			return c[:i]
		}
	}
	return c
}

// FindSolved searches Γ from right to left for EnvSolved(ά, τ) and returns
// τ, or (nil, false) if ά is unsolved or unknown.
func FindSolved(c Context, name string) (Type, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if s, ok := c[i].(EnvSolved); ok && s.Name == name {
			return s.Mono, true
		}
	}
	return nil, false
}

// HasTEVar reports whether Γ declares ά as an unsolved existential.
func HasTEVar(c Context, name string) bool {
	for _, e := range c {
		if t, ok := e.(EnvTEVar); ok && t.Name == name {
			return true
		}
	}
	return false
}

// HasTVar reports whether Γ brings α into scope as a universal variable.
func HasTVar(c Context, name string) bool {
	for _, e := range c {
		if t, ok := e.(EnvTVar); ok && t.Name == name {
			return true
		}
	}
	return false
}

// LookupVar searches Γ from right to left (rightmost/innermost binding
// wins) for a term variable's type.
func LookupVar(c Context, name string) (Type, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if v, ok := c[i].(EnvVar); ok && v.Name == name {
			return v.Ty, true
		}
	}
	return nil, false
}

// IsComplete reports that no EnvTEVar element remains unsolved in Γ — the
// invariant required at the end of every top-level binding.
func IsComplete(c Context) bool {
	for _, e := range c {
		if _, ok := e.(EnvTEVar); ok {
			return false
		}
	}
	return true
}

// IsCompleteExcept is IsComplete, ignoring unsolved existentials named in
// except. Used after generalization: the existentials that got closed over
// into fresh TVars no longer need to be solved, but any other existential
// still unsolved elsewhere in Γ indicates a genuinely ambiguous component
// that generalization didn't reach (e.g. the parameter type of an unused
// local binding).
func IsCompleteExcept(c Context, except map[string]bool) bool {
	for _, e := range c {
		if t, ok := e.(EnvTEVar); ok && !except[t.Name] {
			return false
		}
	}
	return true
}

// IndexBefore returns true if element a occurs before element b in Γ
// (both must be present). Used by instantiation rule "Reach" to decide
// solve direction between two existentials.
func IndexBefore(c Context, a, b Elem) bool {
	ai, bi := -1, -1
	for i, e := range c {
		if ai == -1 && elemEquals(e, a) {
			ai = i
		}
		if bi == -1 && elemEquals(e, b) {
			bi = i
		}
	}
	return ai != -1 && bi != -1 && ai < bi
}

func (c Context) String() string {
	s := "["
	for i, e := range c {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}
