// Package loader reads a churf program from its YAML interchange format
// into an internal/core.Program, preserving document order. It is the one
// inbound edge of the semantic-analysis core that this module implements
// directly, standing in for the lexer/parser/layout/renamer/desugarer/
// lambda-lifter/dependency-orderer pipeline stages that are out of scope
// here: a document is expected to already be in post-renaming,
// dependency-ordered shape.
package loader

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/churf-lang/churf/internal/core"
)

// Load decodes a single YAML document from r into a core.Program. It
// performs only shape validation — a malformed tagged union, or a
// duplicate top-level name — never type checking; that is CheckProgram's
// job once the program is loaded.
func Load(r io.Reader) (*core.Program, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errMalformedLit(err.Error())
	}

	prog := &core.Program{}
	seenData := map[string]bool{}
	seenBind := map[string]bool{}

	for _, d := range doc.Defs {
		switch {
		case d.Data != nil && d.Bind != nil:
			return nil, errMissingDefKind()
		case d.Data != nil:
			if seenData[d.Data.Name] {
				return nil, errDuplicateData(d.Data.Name)
			}
			seenData[d.Data.Name] = true
			data, err := convertData(*d.Data)
			if err != nil {
				return nil, err
			}
			prog.Defs = append(prog.Defs, data)
		case d.Bind != nil:
			if seenBind[d.Bind.Name] {
				return nil, errDuplicateBind(d.Bind.Name)
			}
			seenBind[d.Bind.Name] = true
			bind, err := convertBind(*d.Bind)
			if err != nil {
				return nil, err
			}
			prog.Defs = append(prog.Defs, bind)
		default:
			return nil, errMissingDefKind()
		}
	}

	return prog, nil
}

// LoadFile is a convenience wrapper around Load for a path on disk.
func LoadFile(path string) (*core.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
