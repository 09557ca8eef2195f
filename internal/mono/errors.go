package mono

import (
	"fmt"

	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/types"
)

func errStructuralMismatch(declared, instance types.Type) error {
	return cherrors.New(cherrors.MONO001, "monomorphize",
		fmt.Sprintf("cannot pair declared type %s against instantiation %s", declared, instance),
		map[string]any{"declared": declared.String(), "instance": instance.String()})
}

func errUnmappedTypeVar(name string) error {
	return cherrors.New(cherrors.MONO002, "monomorphize",
		fmt.Sprintf("type variable %s has no specialization mapping", name),
		map[string]any{"var": name})
}

func errNestedLet() error {
	return cherrors.New(cherrors.MONO004, "monomorphize",
		"nested let bindings are not supported by the monomorphizer; lambda lifting must remove them first", nil)
}

func errUnresolvedGlobal(name string) error {
	return cherrors.New(cherrors.MONO005, "monomorphize",
		fmt.Sprintf("no top-level binding or constructor named %s", name),
		map[string]any{"name": name})
}
