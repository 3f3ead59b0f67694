// Package compile wires the lexer, parser, resolver, type checker,
// and simplifier into a single pipeline, gated by a runtime Stage
// flag that stops the pipeline early and dumps that stage's trace.
package compile

import (
	"io"

	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/lexer"
	"github.com/jstankevicius/albatross-jit/parser"
	"github.com/jstankevicius/albatross-jit/resolve"
	"github.com/jstankevicius/albatross-jit/simplify"
	"github.com/jstankevicius/albatross-jit/token"
	"github.com/jstankevicius/albatross-jit/types"
)

// A Stage names how far through the pipeline to run before dumping
// and stopping. Passing no Stage at all runs the full pipeline
// (through the simplifier) with no dump.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageResolve   Stage = "resolve"
	StageTypecheck Stage = "typecheck"
)

// Options configures a Run.
type Options struct {
	// Stage, if non-empty, stops the pipeline after that stage and
	// writes its dump to Dump instead of continuing. StageResolve has
	// no dump: it stops after resolution and writes nothing.
	Stage Stage
	// Dump receives the stage-specific trace output requested by
	// Stage. It is also where the type checker's per-node trace lines
	// go when Stage is StageTypecheck.
	Dump io.Writer
}

// Result carries every artifact the pipeline produced, however far it
// got before Options.Stage stopped it.
type Result struct {
	Tokens []token.Token
	Prog   []ast.Stmt
}

// Run executes the pipeline over src according to opts, or returns
// the first staged error.
func Run(src string, opts Options) (*Result, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	if opts.Stage == StageLexer {
		if opts.Dump != nil {
			dumpTokens(opts.Dump, toks)
		}
		return &Result{Tokens: toks}, nil
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return &Result{Tokens: toks}, err
	}
	if opts.Stage == StageParser {
		if opts.Dump != nil {
			dumpParserStage(opts.Dump, prog)
		}
		return &Result{Tokens: toks, Prog: prog}, nil
	}

	if err := resolve.Resolve(prog); err != nil {
		return &Result{Tokens: toks, Prog: prog}, err
	}
	if opts.Stage == StageResolve {
		return &Result{Tokens: toks, Prog: prog}, nil
	}

	var typeDump io.Writer
	if opts.Stage == StageTypecheck {
		typeDump = opts.Dump
	}
	checker := types.New(typeDump)
	if err := checker.Check(prog); err != nil {
		return &Result{Tokens: toks, Prog: prog}, err
	}
	if opts.Stage == StageTypecheck {
		return &Result{Tokens: toks, Prog: prog}, nil
	}

	simplified, err := simplify.Simplify(prog)
	if err != nil {
		return &Result{Tokens: toks, Prog: prog}, err
	}
	return &Result{Tokens: toks, Prog: simplified}, nil
}
