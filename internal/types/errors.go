package types

import (
	"fmt"

	cherrors "github.com/churf-lang/churf/internal/errors"
)

// errUnboundTypeVar and errUnknownExistential are the two error kinds that
// arise purely from well-formedness/substitution, so they live alongside
// the Type/Context data model rather than in package check. The remaining
// error kinds are constructed in internal/check, where the judgments that
// can raise them (instantiate/subtype/infer/check/checkPattern) actually
// live.

func errUnboundTypeVar(name string) error {
	return cherrors.New(cherrors.TYC001, "typecheck",
		fmt.Sprintf("unbound type variable %s", name),
		map[string]any{"var": name})
}

func errUnknownExistential(name string) error {
	return cherrors.New(cherrors.TYC002, "typecheck",
		fmt.Sprintf("unknown existential variable %s", name),
		map[string]any{"evar": name})
}
