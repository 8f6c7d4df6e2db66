// Package pipeline wires the scan -> parse -> resolve stages into a single
// entry point shared by the CLI's file-run and REPL-line paths. Grounded on
// the pack's own pipeline abstraction (funvibe-funxy's internal/pipeline:
// a sequence of stages run against a shared context, continuing across
// stages to collect diagnostics from all of them), simplified to this
// repo's three fixed stages.
package pipeline

import (
	"github.com/yuhlearn/goslox/internal/ast"
	"github.com/yuhlearn/goslox/internal/diag"
	"github.com/yuhlearn/goslox/internal/parser"
	"github.com/yuhlearn/goslox/internal/resolver"
	"github.com/yuhlearn/goslox/internal/scanner"
)

// Result is everything the Interpreter needs to execute a program, plus the
// diagnostic sink carrying any scan/parse/resolve errors.
type Result struct {
	Program []ast.Stmt
	Locals  map[int]int
	Sink    *diag.Sink
}

// Run scans, parses, and resolves src. The caller must check
// result.Sink.HadError() before executing result.Program — per spec §4.3's
// "Failure mode", resolution continues best-effort even after an error, so
// Program may be non-nil even when errors were reported.
func Run(src string) Result {
	sink := diag.NewSink()

	s := scanner.New(src, sink)
	tokens := s.ScanTokens()

	p := parser.New(tokens, sink)
	program := p.Parse()

	r := resolver.New(sink)
	r.Resolve(program)

	return Result{Program: program, Locals: r.Locals(), Sink: sink}
}
