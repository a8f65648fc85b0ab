package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is the module's release version, printed by --version per
// spec.md §6's "one flag --version" CLI surface.
const version = "0.1.0"

// newRootCommand builds the goprolog command tree: a single root command
// with no subcommands, matching the CLI surface in spec.md §6 — an
// input_file positional argument plus flags, not a multi-command tool.
func newRootCommand() *cobra.Command {
	var jobs int
	var trace bool

	cmd := &cobra.Command{
		Use:           "goprolog [input_file] [query...]",
		Short:         "A small Prolog interpreter: loads a rule database and answers queries by SLD resolution.",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(trace)
			if cmd.Flags().Changed("jobs") {
				return runBatch(cmd, args, jobs, log)
			}
			if len(args) != 1 {
				return fmt.Errorf("goprolog: exactly one input_file is required in interactive mode")
			}
			return runREPL(cmd, args[0], log)
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 1, "number of concurrent resolver instances for batch mode (name.pl:query pairs)")
	cmd.Flags().BoolVar(&trace, "trace", false, "emit debug-level resolution tracing (clause entry, cut firing)")
	cmd.SetVersionTemplate("goprolog {{.Version}}\n")

	return cmd
}

// errSilent wraps an error already reported to the user (e.g. a colored
// lex/parse diagnostic printed to stderr by runREPL) so main doesn't print
// it a second time while still propagating a non-zero exit code.
type errSilent struct{ err error }

func (e errSilent) Error() string { return "" }
func (e errSilent) Unwrap() error { return e.err }

// newLogger builds the logrus logger shared by the REPL, batch runner, and
// resolver tracing. Debug level is only enabled under --trace; otherwise
// the logger stays at Info, matching spec.md §4.9's three call sites
// (program load, resolver tracing, batch task completion).
func newLogger(trace bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if trace {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
