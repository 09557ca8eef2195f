package mono

import (
	"github.com/churf-lang/churf/internal/typedast"
	"github.com/churf-lang/churf/internal/types"
)

// morphBind specializes bind at the ground type `expected`, returning the
// specialized name. If a specialization of this (name, type) pair is
// already in flight, the in-progress name is returned immediately without
// recursing again — the Incomplete/Complete states break cycles through
// recursive polymorphic bindings.
func (s *State) morphBind(expected types.Type, bind *typedast.Bind) (string, error) {
	polys, err := mapTypes(bind.Ty, expected)
	if err != nil {
		return "", err
	}
	name := newName(bind.Name, expected)
	if _, seen := s.output[name]; seen {
		return name, nil
	}
	s.output[name] = &outputEntry{state: incomplete}

	savedPolys, savedLocals := s.polys, s.locals
	s.polys, s.locals = polys, map[string]bool{}
	body, err := s.morphExp(expected, bind.Body)
	s.polys, s.locals = savedPolys, savedLocals
	if err != nil {
		return "", err
	}

	s.output[name] = &outputEntry{
		state: complete,
		bind:  &typedast.Bind{Name: name, Ty: expected, Args: nil, Body: body},
	}
	return name, nil
}

// morphExp rewrites e, a node from the polymorphic typed IR, into its
// monomorphic counterpart at the ground type `expected`.
func (s *State) morphExp(expected types.Type, e typedast.Exp) (typedast.Exp, error) {
	switch n := e.(type) {
	case *typedast.Lit:
		return &typedast.Lit{Lit: n.Lit, Ty: n.Ty}, nil

	case *typedast.Var:
		if s.locals[n.Name] {
			return &typedast.Var{Name: n.Name, Ty: expected}, nil
		}
		bind, ok := s.input[n.Name]
		if !ok {
			return nil, errUnresolvedGlobal(n.Name)
		}
		specialized, err := s.morphBind(expected, bind)
		if err != nil {
			return nil, err
		}
		return &typedast.Var{Name: specialized, Ty: expected}, nil

	case *typedast.Inj:
		groundRet, _, err := s.ctorShape(n.Name, expected)
		if err != nil {
			return nil, err
		}
		specialized := newName(n.Name, groundRet)
		s.ctors[specialized] = groundRet
		return &typedast.Inj{Name: specialized, Ty: expected}, nil

	case *typedast.App:
		argTy, err := mono(s.polys, n.Arg.Typ())
		if err != nil {
			return nil, err
		}
		arg, err := s.morphExp(argTy, n.Arg)
		if err != nil {
			return nil, err
		}
		fun, err := s.morphExp(&types.TFun{Arg: argTy, Res: expected}, n.Fun)
		if err != nil {
			return nil, err
		}
		return &typedast.App{Fun: fun, Arg: arg, Ty: expected}, nil

	case *typedast.Abs:
		paramTy, err := mono(s.polys, n.ParamTy)
		if err != nil {
			return nil, err
		}
		var resTy types.Type
		if fn, ok := expected.(*types.TFun); ok {
			resTy = fn.Res
		} else {
			resTy, err = mono(s.polys, n.Body.Typ())
			if err != nil {
				return nil, err
			}
		}

		wasLocal := s.locals[n.Param]
		s.locals[n.Param] = true
		body, err := s.morphExp(resTy, n.Body)
		if !wasLocal {
			delete(s.locals, n.Param)
		}
		if err != nil {
			return nil, err
		}
		return &typedast.Abs{Param: n.Param, ParamTy: paramTy, Body: body, Ty: &types.TFun{Arg: paramTy, Res: resTy}}, nil

	case *typedast.Add:
		intTy := &types.TLit{Name: "Int"}
		left, err := s.morphExp(intTy, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := s.morphExp(intTy, n.Right)
		if err != nil {
			return nil, err
		}
		return &typedast.Add{Left: left, Right: right, Ty: intTy}, nil

	case *typedast.Case:
		scrutTy, err := mono(s.polys, n.Scrutinee.Typ())
		if err != nil {
			return nil, err
		}
		scrut, err := s.morphExp(scrutTy, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		branches := make([]typedast.Branch, len(n.Branches))
		for i, b := range n.Branches {
			pat, bound, err := s.morphPattern(scrutTy, b.Pattern)
			if err != nil {
				return nil, err
			}
			prev := make(map[string]bool, len(bound))
			for _, name := range bound {
				prev[name] = s.locals[name]
				s.locals[name] = true
			}
			rhs, err := s.morphExp(expected, b.Rhs)
			for name, was := range prev {
				if !was {
					delete(s.locals, name)
				}
			}
			if err != nil {
				return nil, err
			}
			branches[i] = typedast.Branch{Pattern: pat, Rhs: rhs}
		}
		return &typedast.Case{Scrutinee: scrut, Branches: branches, Ty: expected}, nil

	case *typedast.Let:
		return nil, errNestedLet()
	}
	panic("unreachable typed expression form")
}

// morphPattern rewrites a typed pattern to a ground type, returning the
// names it binds so the caller can extend locals before morphing the
// branch's right-hand side.
func (s *State) morphPattern(t types.Type, p typedast.Pattern) (typedast.Pattern, []string, error) {
	switch pat := p.(type) {
	case *typedast.VarPattern:
		return &typedast.VarPattern{Name: pat.Name, Ty: t}, []string{pat.Name}, nil

	case *typedast.CatchPattern:
		return &typedast.CatchPattern{Ty: t}, nil, nil

	case *typedast.LitPattern:
		return &typedast.LitPattern{Lit: pat.Lit, Ty: t}, nil, nil

	case *typedast.EnumPattern:
		groundRet, _, err := s.ctorShape(pat.Name, t)
		if err != nil {
			return nil, nil, err
		}
		specialized := newName(pat.Name, groundRet)
		s.ctors[specialized] = groundRet
		return &typedast.EnumPattern{Name: specialized, Ty: t}, nil, nil

	case *typedast.InjPattern:
		groundRet, argTys, err := s.ctorShape(pat.Name, t)
		if err != nil {
			return nil, nil, err
		}
		specialized := newName(pat.Name, groundRet)
		s.ctors[specialized] = groundRet

		if len(argTys) != len(pat.Args) {
			return nil, nil, errStructuralMismatch(t, t)
		}
		args := make([]typedast.Pattern, len(pat.Args))
		var bound []string
		for i, sub := range pat.Args {
			typedSub, subBound, err := s.morphPattern(argTys[i], sub)
			if err != nil {
				return nil, nil, err
			}
			args[i] = typedSub
			bound = append(bound, subBound...)
		}
		return &typedast.InjPattern{Name: specialized, Args: args, Ty: t}, bound, nil
	}
	panic("unreachable typed pattern form")
}

// ctorShape resolves a constructor's declared (possibly quantified) type
// against its occurrence type `occ` — either the full curried function
// type an EInj appears at, or the bare data type a pattern scrutinizes —
// and returns the ground return type and ground argument types. The
// return type alone identifies a constructor specialization, so an EInj
// fully applied through nested App nodes and an InjPattern matching the
// same value always mangle to the same name.
func (s *State) ctorShape(name string, occ types.Type) (ret types.Type, args []types.Type, err error) {
	declared, ok := s.ctorTypes[name]
	if !ok {
		return nil, nil, errUnresolvedGlobal(name)
	}
	body := declared
	for {
		all, ok := body.(*types.TAll)
		if !ok {
			break
		}
		body = all.Body
	}

	var declaredArgs []types.Type
	declaredRet := body
	for {
		fn, ok := declaredRet.(*types.TFun)
		if !ok {
			break
		}
		declaredArgs = append(declaredArgs, fn.Arg)
		declaredRet = fn.Res
	}

	m := map[string]types.Type{}
	if len(declaredArgs) == 0 {
		if err := pairTypes(declaredRet, occ, m); err != nil {
			return nil, nil, err
		}
	} else if occFn, ok := occ.(*types.TFun); ok {
		_ = occFn
		if err := pairTypes(body, occ, m); err != nil {
			return nil, nil, err
		}
	} else {
		// Occurrence already fully applied to the constructor's result
		// (e.g. a pattern scrutinee): pair the return shape alone.
		if err := pairTypes(declaredRet, occ, m); err != nil {
			return nil, nil, err
		}
	}

	groundRet, err := mono(m, declaredRet)
	if err != nil {
		return nil, nil, err
	}
	groundArgs := make([]types.Type, len(declaredArgs))
	for i, a := range declaredArgs {
		g, err := mono(m, a)
		if err != nil {
			return nil, nil, err
		}
		groundArgs[i] = g
	}
	return groundRet, groundArgs, nil
}
