// Command churfc drives the churf semantic-analysis core: it loads a
// program from its YAML interchange format, runs bidirectional type
// checking, monomorphizes the result, and reports either the specialized
// program or a structured diagnostic.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/churf-lang/churf/internal/check"
	cherrors "github.com/churf-lang/churf/internal/errors"
	"github.com/churf-lang/churf/internal/loader"
	"github.com/churf-lang/churf/internal/mono"
)

var (
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:   "churfc",
		Short: "The churf semantic-analysis core driver",
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newReplCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.yaml>",
		Short: "Type check and monomorphize a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func runCheck(path string) error {
	prog, err := loader.LoadFile(path)
	if err != nil {
		reportErr(err)
		return err
	}

	typed, cx, err := check.CheckProgram(prog)
	if err != nil {
		reportErr(err)
		return err
	}

	result, err := mono.Monomorphize(typed, cx.DataInjs())
	if err != nil {
		reportErr(err)
		return err
	}

	if err := result.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	fmt.Printf("%s %d specialized binding(s), %d specialized constructor(s)\n",
		bold("OK"), len(result.Binds), len(result.Ctors))
	for _, b := range result.Binds {
		fmt.Printf("  %s\n", b)
	}
	return nil
}

func reportErr(err error) {
	if rep, ok := cherrors.AsReport(err); ok {
		cherrors.Render(os.Stderr, rep)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
