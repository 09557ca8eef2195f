package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/churf-lang/churf/internal/check"
	"github.com/churf-lang/churf/internal/core"
	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/loader"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive type-checking session",
		RunE: func(cmd *cobra.Command, args []string) error {
			newREPL().start(os.Stdin, os.Stdout)
			return nil
		},
	}
}

// repl is a minimal interactive session: each entry is one YAML binding
// document (there is no surface-syntax parser at this layer — see
// internal/loader's doc comment), terminated by a line containing only
// ".". The binding is type checked against the session's accumulated
// context and, on success, its signature is remembered so later entries
// may reference it.
type repl struct {
	cx *check.Cxt
}

func newREPL() *repl {
	return &repl{cx: check.NewCxt()}
}

func (r *repl) start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".churfc_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, cyan(`churfc repl — enter one YAML binding per entry, end with a line containing "."`))

	for {
		var buf strings.Builder
		for {
			text, err := line.Prompt("churf> ")
			if err != nil {
				return
			}
			if strings.TrimSpace(text) == "." {
				break
			}
			buf.WriteString(text)
			buf.WriteByte('\n')
		}
		entry := buf.String()
		if strings.TrimSpace(entry) == "" {
			continue
		}
		line.AppendHistory(strings.TrimSpace(entry))
		r.eval(entry, out)
	}
}

func (r *repl) eval(yamlDoc string, out io.Writer) {
	doc := "defs:\n  - bind:\n" + indent(yamlDoc, "      ")
	prog, err := loader.Load(strings.NewReader(doc))
	if err != nil {
		printErr(out, err)
		return
	}
	if len(prog.Defs) != 1 {
		fmt.Fprintln(out, "expected exactly one binding")
		return
	}
	bind, ok := prog.Defs[0].(*core.Bind)
	if !ok {
		fmt.Fprintln(out, "expected a value binding, not a data declaration")
		return
	}

	r.cx.LoadBind(bind)
	typed, err := r.cx.TypecheckBind(bind)
	if err != nil {
		printErr(out, err)
		return
	}
	fmt.Fprintf(out, "%s : %s\n", green(typed.Name), typed.Ty)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

func printErr(out io.Writer, err error) {
	if rep, ok := cherrors.AsReport(err); ok {
		cherrors.Render(out, rep)
		return
	}
	fmt.Fprintln(out, err)
}
