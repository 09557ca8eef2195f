package loader

import (
	"fmt"

	cherrors "github.com/churf-lang/churf/internal/errors"
)

func errEmptyVariant(what string) error {
	return cherrors.New(cherrors.LDR101, "load",
		fmt.Sprintf("%s document has no recognized variant set", what), nil)
}

func errMalformedLit(msg string) error {
	return cherrors.New(cherrors.LDR101, "load", msg, nil)
}

func errDuplicateBind(name string) error {
	return cherrors.New(cherrors.LDR101, "load",
		fmt.Sprintf("duplicate top-level binding %s", name),
		map[string]any{"name": name})
}

func errDuplicateData(name string) error {
	return cherrors.New(cherrors.LDR101, "load",
		fmt.Sprintf("duplicate data declaration %s", name),
		map[string]any{"name": name})
}

func errMissingDefKind() error {
	return cherrors.New(cherrors.LDR101, "load", "definition must set exactly one of \"data\" or \"bind\"", nil)
}
