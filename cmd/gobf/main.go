// Command gobf is a thin file runner: load a source file, run it to
// completion with the default hooks, or hand it to the interactive
// debugger under -debug. It is the composition root, the only place in
// this module allowed to turn a returned error into a process exit.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/xyproto/env/v2"

	"github.com/andreabolognani/bf/bf"
	"github.com/andreabolognani/bf/tui"
)

func main() {
	debug := flag.Bool("debug", env.Bool("GOBF_DEBUG"), "launch the interactive debugger instead of running to completion")
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		glog.Exitf("usage: %s [-debug] <source-file>", os.Args[0])
	}
	path := flag.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		glog.Exitf("gobf: reading %s: %v", path, err)
	}

	program, err := bf.Load(bf.NewBufferFromBytes(src))
	if err != nil {
		glog.Exitf("gobf: loading %s: %v", path, err)
	}

	cfg := bf.DefaultConfiguration()
	cfg.OnEndOfInput = parseEOFPolicy(env.StrAlt("GOBF_EOF_POLICY", "zero"))
	cfg.DebugEnabled = *debug

	if *debug {
		if err := tui.Run(program, cfg); err != nil {
			glog.Exitf("gobf: debugger: %v", err)
		}
		return
	}

	it := bf.NewInterpreter()
	it.SetProgram(program)
	it.SetConfiguration(cfg)
	it.SetInputHook(bf.DefaultInputHook())
	it.SetOutputHook(bf.DefaultOutputHook())
	it.SetDebugHook(bf.DefaultDebugHook())

	if err := it.Run(); err != nil {
		glog.Exitf("gobf: %s: %v", path, err)
	}
}

func parseEOFPolicy(s string) bf.EndOfInputPolicy {
	switch s {
	case "eof":
		return bf.StoreEof
	case "nothing":
		return bf.DoNothing
	default:
		return bf.StoreZero
	}
}
