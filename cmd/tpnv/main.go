// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Command tpnv is the command-line front-end to the verification engine:
// check a query against a model, dump its fully-explored class graph, or
// run a handful of random simulations, the same three operations the
// teacher source exposed through its own demo main, now routed through
// flag-parsed subcommands instead of a hardcoded scenario.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dalzilio/tpnv/internal/vlog"
)

// Exit codes, fixed by the verification-status contract: a decided
// boolean result is 0/1, an inconclusive one is 2, anything that never
// reaches a verdict (bad arguments, a parse error, an unsupported query)
// is 10 or above so scripts can tell "no answer" apart from "answer: no".
const (
	exitVerified   = 0
	exitUnverified = 1
	exitMaybe      = 2
	exitUsage      = 10
	exitError      = 11
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "check":
		return runCheck(rest)
	case "explore":
		return runExplore(rest)
	case "simulate":
		return runSimulate(rest)
	case "-h", "-help", "--help", "help":
		usage()
		return exitVerified
	default:
		fmt.Fprintf(os.Stderr, "tpnv: unknown command %q\n", cmd)
		usage()
		return exitUsage
	}
}

func usage() {
	vlog.Error("usage: tpnv <command> [arguments]")
	fmt.Fprintln(os.Stderr, `
commands:
  check <model> <query>   check a query against a model
  explore <model>         build and dump the model's state-class graph
  simulate <model>        run random simulations of the model

run "tpnv <command> -h" for a command's flags`)
}

// fail prints msg as an error line and returns exitError, the shared tail
// of every subcommand's error paths.
func fail(format string, a ...any) int {
	vlog.Error(fmt.Sprintf(format, a...))
	return exitError
}

// newFlagSet returns a ContinueOnError FlagSet whose usage message names
// the tpnv subcommand and is written to os.Stderr, followed by the flag
// defaults.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: tpnv %s [flags] <model> ...\n", name)
		fs.PrintDefaults()
	}
	return fs
}
