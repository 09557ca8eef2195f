package errors

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"golang.org/x/text/unicode/norm"
)

// NormalizeIdent NFC-normalizes an identifier before it is interpolated
// into a rendered message, so two byte-distinct but canonically-equal
// Unicode identifiers never produce visually different diagnostics.
// Identifier normalization otherwise belongs at the lexing boundary, but
// that stage is a separate, out-of-scope component here, so normalization
// happens at the rendering boundary instead.
func NormalizeIdent(s string) string {
	return norm.NFC.String(s)
}

var (
	codeColor = color.New(color.FgRed, color.Bold)
	dataColor = color.New(color.FgHiBlack)
)

// Render writes a human-readable, colorized rendition of a Report to w.
func Render(w io.Writer, r *Report) {
	fmt.Fprintf(w, "%s %s\n", codeColor.Sprint(r.Code), NormalizeIdent(r.Message))
	if len(r.Data) == 0 {
		return
	}
	keys := make([]string, 0, len(r.Data))
	for k := range r.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\n", dataColor.Sprint(NormalizeIdent(fmt.Sprintf("%s: %v", k, r.Data[k]))))
	}
}
