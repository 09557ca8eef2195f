package check

import (
	"github.com/churf-lang/churf/internal/core"
	"github.com/churf-lang/churf/internal/typedast"
)

// CheckProgram runs TypecheckBind over every Bind in prog, in the order
// given: the program is already dependency-ordered by an upstream,
// out-of-scope pass, so this function does not reorder. Data declarations
// are loaded into cx.dataInjs before any binding is checked, since
// constructors may be referenced by any binding regardless of declaration
// order within the flat Def list — name resolution/renaming, upstream of
// this package, already rejected forward references to other *bindings*,
// but data declarations are conventionally hoisted.
func CheckProgram(prog *core.Program) (*typedast.Program, *Cxt, error) {
	cx := NewCxt()

	for _, def := range prog.Defs {
		if data, ok := def.(*core.Data); ok {
			if err := cx.LoadDataDecl(data); err != nil {
				return nil, cx, err
			}
		}
	}

	out := &typedast.Program{}
	for _, def := range prog.Defs {
		bind, ok := def.(*core.Bind)
		if !ok {
			continue
		}
		cx.LoadBind(bind)
		typed, err := cx.TypecheckBind(bind)
		if err != nil {
			return nil, cx, err
		}
		out.Binds = append(out.Binds, typed)
	}
	return out, cx, nil
}
