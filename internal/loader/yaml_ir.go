package loader

import (
	"github.com/churf-lang/churf/internal/core"
	"github.com/churf-lang/churf/internal/types"
)

// The YAML schema mirrors internal/types.Type, internal/core.Exp, and
// internal/core.Pattern directly: one tagged field per variant. Only a
// definition's data/bind pair is checked for exclusivity; in a type,
// expression or pattern node with several variant fields set, the first one
// its converter tests is used and the others are ignored. This package takes the place of lexing, parsing,
// layout resolution, name resolution, desugaring, lambda lifting, and
// dependency ordering — a document is already in the shape those stages
// would have produced; churf's own surface syntax is not parsed here.

// document is the top-level shape of a program file.
type document struct {
	Defs []defYAML `yaml:"defs"`
}

type defYAML struct {
	Data *dataYAML `yaml:"data,omitempty"`
	Bind *bindYAML `yaml:"bind,omitempty"`
}

type dataYAML struct {
	Name string     `yaml:"name"`
	Head typeYAML   `yaml:"head"`
	Injs []injYAML  `yaml:"injs"`
}

type injYAML struct {
	Name string   `yaml:"name"`
	Type typeYAML `yaml:"type"`
}

type bindYAML struct {
	Name string    `yaml:"name"`
	Args []string  `yaml:"args,omitempty"`
	Sig  *typeYAML `yaml:"sig,omitempty"`
	Rhs  expYAML   `yaml:"rhs"`
}

type typeYAML struct {
	Lit  *string      `yaml:"lit,omitempty"`
	Var  *string      `yaml:"var,omitempty"`
	EVar *string      `yaml:"evar,omitempty"`
	Fun  *funTyYAML   `yaml:"fun,omitempty"`
	All  *allTyYAML   `yaml:"all,omitempty"`
	Data *dataTyYAML  `yaml:"data,omitempty"`
}

type funTyYAML struct {
	Arg typeYAML `yaml:"arg"`
	Res typeYAML `yaml:"res"`
}

type allTyYAML struct {
	Var  string   `yaml:"var"`
	Body typeYAML `yaml:"body"`
}

type dataTyYAML struct {
	Name string     `yaml:"name"`
	Args []typeYAML `yaml:"args,omitempty"`
}

type litYAML struct {
	Kind string `yaml:"kind"` // "int" or "char"
	Int  *int64 `yaml:"int,omitempty"`
	Char *string `yaml:"char,omitempty"`
}

type expYAML struct {
	Lit  *litYAML   `yaml:"lit,omitempty"`
	Var  *string    `yaml:"var,omitempty"`
	Inj  *string    `yaml:"inj,omitempty"`
	Ann  *annYAML   `yaml:"ann,omitempty"`
	App  *appYAML   `yaml:"app,omitempty"`
	Abs  *absYAML   `yaml:"abs,omitempty"`
	Let  *letYAML   `yaml:"let,omitempty"`
	Add  *addYAML   `yaml:"add,omitempty"`
	Case *caseYAML  `yaml:"case,omitempty"`
}

type annYAML struct {
	Exp  expYAML  `yaml:"exp"`
	Type typeYAML `yaml:"type"`
}

type appYAML struct {
	Fun expYAML `yaml:"fun"`
	Arg expYAML `yaml:"arg"`
}

type absYAML struct {
	Param string  `yaml:"param"`
	Body  expYAML `yaml:"body"`
}

type letYAML struct {
	Bind bindYAML `yaml:"bind"`
	Body expYAML  `yaml:"body"`
}

type addYAML struct {
	Left  expYAML `yaml:"left"`
	Right expYAML `yaml:"right"`
}

type caseYAML struct {
	Scrutinee expYAML      `yaml:"scrutinee"`
	Branches  []branchYAML `yaml:"branches"`
}

type branchYAML struct {
	Pattern patternYAML `yaml:"pattern"`
	Rhs     expYAML     `yaml:"rhs"`
}

type patternYAML struct {
	PVar   *string       `yaml:"pvar,omitempty"`
	PCatch *bool         `yaml:"pcatch,omitempty"`
	PLit   *litYAML      `yaml:"plit,omitempty"`
	PEnum  *string       `yaml:"penum,omitempty"`
	PInj   *pinjYAML     `yaml:"pinj,omitempty"`
}

type pinjYAML struct {
	Name string        `yaml:"name"`
	Args []patternYAML `yaml:"args,omitempty"`
}

// --- conversion to internal/types and internal/core -------------------

func convertType(t typeYAML) (types.Type, error) {
	switch {
	case t.Lit != nil:
		return &types.TLit{Name: *t.Lit}, nil
	case t.Var != nil:
		return &types.TVar{Name: *t.Var}, nil
	case t.EVar != nil:
		return &types.TEVar{Name: *t.EVar}, nil
	case t.Fun != nil:
		arg, err := convertType(t.Fun.Arg)
		if err != nil {
			return nil, err
		}
		res, err := convertType(t.Fun.Res)
		if err != nil {
			return nil, err
		}
		return &types.TFun{Arg: arg, Res: res}, nil
	case t.All != nil:
		body, err := convertType(t.All.Body)
		if err != nil {
			return nil, err
		}
		return &types.TAll{Var: t.All.Var, Body: body}, nil
	case t.Data != nil:
		args := make([]types.Type, len(t.Data.Args))
		for i, a := range t.Data.Args {
			g, err := convertType(a)
			if err != nil {
				return nil, err
			}
			args[i] = g
		}
		return &types.TData{Name: t.Data.Name, Args: args}, nil
	default:
		return nil, errEmptyVariant("type")
	}
}

func convertLit(l litYAML) (types.Lit, error) {
	switch l.Kind {
	case "int":
		if l.Int == nil {
			return types.Lit{}, errMalformedLit("int literal missing int field")
		}
		return types.Lit{Kind: types.IntLit, Int: *l.Int}, nil
	case "char":
		if l.Char == nil || len([]rune(*l.Char)) != 1 {
			return types.Lit{}, errMalformedLit("char literal must have exactly one character")
		}
		return types.Lit{Kind: types.CharLit, Char: []rune(*l.Char)[0]}, nil
	default:
		return types.Lit{}, errMalformedLit("literal kind must be \"int\" or \"char\"")
	}
}

func convertExp(e expYAML) (core.Exp, error) {
	switch {
	case e.Lit != nil:
		l, err := convertLit(*e.Lit)
		if err != nil {
			return nil, err
		}
		return &core.ELit{Lit: l}, nil

	case e.Var != nil:
		return &core.EVar{Name: *e.Var}, nil

	case e.Inj != nil:
		return &core.EInj{Name: *e.Inj}, nil

	case e.Ann != nil:
		inner, err := convertExp(e.Ann.Exp)
		if err != nil {
			return nil, err
		}
		ty, err := convertType(e.Ann.Type)
		if err != nil {
			return nil, err
		}
		return &core.EAnn{Exp: inner, Ty: ty}, nil

	case e.App != nil:
		fun, err := convertExp(e.App.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := convertExp(e.App.Arg)
		if err != nil {
			return nil, err
		}
		return &core.EApp{Fun: fun, Arg: arg}, nil

	case e.Abs != nil:
		body, err := convertExp(e.Abs.Body)
		if err != nil {
			return nil, err
		}
		return &core.EAbs{Param: e.Abs.Param, Body: body}, nil

	case e.Let != nil:
		bind, err := convertBind(e.Let.Bind)
		if err != nil {
			return nil, err
		}
		body, err := convertExp(e.Let.Body)
		if err != nil {
			return nil, err
		}
		return &core.ELet{Bind: bind, Body: body}, nil

	case e.Add != nil:
		left, err := convertExp(e.Add.Left)
		if err != nil {
			return nil, err
		}
		right, err := convertExp(e.Add.Right)
		if err != nil {
			return nil, err
		}
		return &core.EAdd{Left: left, Right: right}, nil

	case e.Case != nil:
		scrut, err := convertExp(e.Case.Scrutinee)
		if err != nil {
			return nil, err
		}
		if len(e.Case.Branches) == 0 {
			return nil, errMalformedLit("case expression must have at least one branch")
		}
		branches := make([]core.Branch, len(e.Case.Branches))
		for i, b := range e.Case.Branches {
			pat, err := convertPattern(b.Pattern)
			if err != nil {
				return nil, err
			}
			rhs, err := convertExp(b.Rhs)
			if err != nil {
				return nil, err
			}
			branches[i] = core.Branch{Pattern: pat, Rhs: rhs}
		}
		return &core.ECase{Scrutinee: scrut, Branches: branches}, nil

	default:
		return nil, errEmptyVariant("expression")
	}
}

func convertPattern(p patternYAML) (core.Pattern, error) {
	switch {
	case p.PVar != nil:
		return &core.PVar{Name: *p.PVar}, nil
	case p.PCatch != nil:
		return &core.PCatch{}, nil
	case p.PLit != nil:
		l, err := convertLit(*p.PLit)
		if err != nil {
			return nil, err
		}
		return &core.PLit{Lit: l}, nil
	case p.PEnum != nil:
		return &core.PEnum{Name: *p.PEnum}, nil
	case p.PInj != nil:
		args := make([]core.Pattern, len(p.PInj.Args))
		for i, a := range p.PInj.Args {
			sub, err := convertPattern(a)
			if err != nil {
				return nil, err
			}
			args[i] = sub
		}
		return &core.PInj{Name: p.PInj.Name, Args: args}, nil
	default:
		return nil, errEmptyVariant("pattern")
	}
}

func convertBind(b bindYAML) (*core.Bind, error) {
	rhs, err := convertExp(b.Rhs)
	if err != nil {
		return nil, err
	}
	var sig types.Type
	if b.Sig != nil {
		sig, err = convertType(*b.Sig)
		if err != nil {
			return nil, err
		}
	}
	return &core.Bind{Name: b.Name, Args: b.Args, Rhs: rhs, Sig: sig}, nil
}

func convertData(d dataYAML) (*core.Data, error) {
	head, err := convertType(d.Head)
	if err != nil {
		return nil, err
	}
	injs := make([]core.Inj, len(d.Injs))
	for i, inj := range d.Injs {
		ty, err := convertType(inj.Type)
		if err != nil {
			return nil, err
		}
		injs[i] = core.Inj{Name: inj.Name, Type: ty}
	}
	return &core.Data{Name: d.Name, Head: head, Injs: injs}, nil
}
