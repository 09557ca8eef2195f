package check

import (
	"fmt"

	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/types"
)

func errUnknownConstructor(name string) error {
	return cherrors.New(cherrors.TYC003, "typecheck",
		fmt.Sprintf("unknown constructor %s", name),
		map[string]any{"ctor": name})
}

func errUnresolvedName(name string) error {
	return cherrors.New(cherrors.TYC004, "typecheck",
		fmt.Sprintf("unresolved name %s", name),
		map[string]any{"name": name})
}

func errTypeMismatch(actual, expected types.Type) error {
	return cherrors.New(cherrors.TYC005, "typecheck",
		fmt.Sprintf("type mismatch: expected %s, got %s", expected, actual),
		map[string]any{"expected": expected.String(), "actual": actual.String()})
}

func errNotAFunction(t types.Type) error {
	return cherrors.New(cherrors.TYC006, "typecheck",
		fmt.Sprintf("not a function: %s", t),
		map[string]any{"type": t.String()})
}

func errArityMismatch(ctor string, expected, got int) error {
	return cherrors.New(cherrors.TYC007, "typecheck",
		fmt.Sprintf("constructor %s expects %d argument(s), got %d", ctor, expected, got),
		map[string]any{"ctor": ctor, "expected": expected, "got": got})
}

func errAmbiguousPolymorphism(bind string) error {
	return cherrors.New(cherrors.TYC008, "typecheck",
		fmt.Sprintf("ambiguous polymorphism in binding %s: unsolved existentials remain", bind),
		map[string]any{"bind": bind})
}

func errBadDataDefinition(name string, reason string) error {
	return cherrors.New(cherrors.TYC009, "typecheck",
		fmt.Sprintf("bad data definition %s: %s", name, reason),
		map[string]any{"data": name, "reason": reason})
}

func errUnboundDataParams(ctor string) error {
	return cherrors.New(cherrors.TYC010, "typecheck",
		fmt.Sprintf("constructor %s references type parameters not bound by its data declaration", ctor),
		map[string]any{"ctor": ctor})
}
