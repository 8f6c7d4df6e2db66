package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yuhlearn/goslox/internal/config"
	"github.com/yuhlearn/goslox/internal/diag"
	"github.com/yuhlearn/goslox/internal/interp"
	"github.com/yuhlearn/goslox/internal/pipeline"
	"github.com/yuhlearn/goslox/internal/runtime"
	"github.com/yuhlearn/goslox/pkg/replbuf"
)

// sidecarName is the optional per-directory config file (SPEC_FULL.md §6),
// grounded on the teacher's convention of a dotfile sitting beside the
// script it configures.
const sidecarName = ".goslox.yaml"

type runOptions struct {
	DumpAST bool
	Trace   bool
}

// streams bundles the three I/O handles a run needs, threaded explicitly
// (rather than reaching for os.Stdout/os.Stderr directly) so the execution
// core is exercisable from tests without forking a subprocess.
type streams struct {
	out io.Writer
	err io.Writer
}

// runFile executes a single script to completion, matching spec §6: a
// compile-time error or a runtime error both leave the process exiting
// non-zero (signalled to main.go via the returned error); success returns
// nil.
func runFile(path string, opts runOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goslox: %v\n", err)
		return err
	}

	fileCfg, err := config.LoadFileConfig(filepath.Join(filepath.Dir(path), sidecarName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "goslox: %v\n", err)
		return err
	}

	return executeSource(string(src), streams{out: os.Stdout, err: os.Stderr}, opts, fileCfg)
}

// executeSource runs the scan -> parse -> resolve -> interpret pipeline over
// src once, the core shared by runFile and each REPL line.
func executeSource(src string, s streams, opts runOptions, fileCfg config.FileConfig) error {
	result := pipeline.Run(src)
	if opts.DumpAST {
		printAST(s.out, result)
	}
	if result.Sink.HadError() {
		fmt.Fprint(s.err, result.Sink.Format())
		return errCompile
	}

	it := interp.NewWithNatives(s.out, result.Locals, fileCfg.AllowedNatives)
	it.SetMaxCallDepth(fileCfg.MaxCallDepth)
	if opts.Trace {
		it.SetTracer(tracerTo(s.err))
	}

	if err := it.Interpret(result.Program); err != nil {
		reportRuntimeError(s.err, err)
		return errRuntime
	}
	return nil
}

// runREPL reads one line at a time, running each through the full pipeline
// independently while reusing a single Interpreter (and therefore its
// globals environment) across lines: spec §6/§7 requires state defined on
// one line to persist even after a runtime error on a later line.
func runREPL(opts runOptions) error {
	reader := replbuf.New(os.Stdin, os.Stdout)
	it := interp.New(os.Stdout, nil)
	if opts.Trace {
		it.SetTracer(tracerTo(os.Stderr))
	}

	for {
		line, ok := reader.ReadLine()
		if !ok {
			fmt.Println()
			return nil
		}

		result := pipeline.Run(line)
		if opts.DumpAST {
			printAST(os.Stdout, result)
		}
		if result.Sink.HadError() {
			fmt.Fprint(os.Stderr, result.Sink.Format())
			continue
		}

		it.SetLocals(result.Locals)
		if err := it.Interpret(result.Program); err != nil {
			reportRuntimeError(os.Stderr, err)
		}
	}
}

func tracerTo(w io.Writer) interp.Tracer {
	return func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }
}

func reportRuntimeError(w io.Writer, err error) {
	sink := diag.NewSink()
	if re, ok := err.(*runtime.RuntimeError); ok {
		sink.RuntimeError(re.Line, re.Message)
	} else {
		sink.RuntimeError(0, err.Error())
	}
	fmt.Fprint(w, sink.Format())
}

func printAST(w io.Writer, result pipeline.Result) {
	for _, stmt := range result.Program {
		fmt.Fprintln(w, stmt.String())
	}
}

var (
	errCompile = fmt.Errorf("compile error")
	errRuntime = fmt.Errorf("runtime error")
)
