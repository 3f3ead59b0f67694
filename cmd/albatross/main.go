// Command albatross is the front-end driver: it reads a source file,
// runs it through the lexer, parser, resolver, type checker, and
// simplifier, and reports the first staged failure.
package main

import (
	"fmt"
	"os"

	"github.com/eaburns/pretty"
	"github.com/jessevdk/go-flags"

	"github.com/jstankevicius/albatross-jit/compile"
	"github.com/jstankevicius/albatross-jit/diagnostic"
	"github.com/jstankevicius/albatross-jit/token"
)

type options struct {
	Stage string `long:"stage" description:"stop after this stage and dump its trace: lexer, parser, resolve, typecheck"`
	Dump  bool   `long:"dump" description:"pretty-print the final AST to stdout"`

	Args struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}

func main() {
	pretty.Indent = "    "

	var opts options
	parser := flags.NewParser(&opts, flags.Default&^flags.PrintErrors)
	if _, err := parser.Parse(); err != nil && opts.Args.Path != "" {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Args.Path == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file")
		os.Exit(1)
	}

	src, err := os.ReadFile(opts.Args.Path)
	if err != nil {
		diagnostic.PrintIOError(os.Stderr, err.Error())
		os.Exit(1)
	}

	stage, err := parseStage(opts.Stage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result, err := compile.Run(string(src), compile.Options{
		Stage: stage,
		Dump:  os.Stdout,
	})
	if err != nil {
		if cerr, ok := err.(*token.Error); ok {
			diagnostic.Print(os.Stdout, string(src), cerr)
			os.Exit(cerr.Stage.ExitCode())
		}
		diagnostic.PrintIOError(os.Stderr, err.Error())
		os.Exit(1)
	}

	if opts.Dump && result.Prog != nil {
		pretty.Print(result.Prog)
		fmt.Println()
	}
}

func parseStage(s string) (compile.Stage, error) {
	switch compile.Stage(s) {
	case "":
		return "", nil
	case compile.StageLexer, compile.StageParser, compile.StageResolve, compile.StageTypecheck:
		return compile.Stage(s), nil
	default:
		return "", fmt.Errorf("Error: unknown stage %q", s)
	}
}
