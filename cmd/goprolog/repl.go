package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/logicmachine/goprolog/pkg/prolog"
)

var errColor = color.New(color.FgRed, color.Bold)

// runREPL implements spec.md §6's interactive surface: load path as a rule
// database, then repeatedly prompt "?- ", parse one line as a query, and
// print its proofs. A lex/parse failure on the program file is fatal (exit
// 1); a failure on a query line is printed and the prompt re-issued.
func runREPL(cmd *cobra.Command, path string, log *logrus.Logger) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	rules, err := prolog.ParseProgram(string(source))
	if err != nil {
		errColor.Fprintln(cmd.ErrOrStderr(), err)
		return errSilent{err}
	}
	log.WithField("rules", len(rules)).Info("program loaded")

	resolver := prolog.NewResolver(rules)
	if entry := traceEntry(log); entry != nil {
		resolver = resolver.WithLogger(entry)
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	for {
		fmt.Fprint(out, "?- ")
		if !in.Scan() {
			return nil
		}
		line := in.Text()
		if line == "" {
			continue
		}

		query, err := prolog.ParseQuery(line)
		if err != nil {
			errColor.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}

		printProofs(out, resolver, query)
	}
}

// printProofs drains every proof of query against resolver and renders them
// per spec.md §6: "true." for a proof with no free-variable bindings,
// "Name = value" lines (comma-then-newline separated, period-terminated)
// otherwise, or "false." in red if the proof stream is empty.
func printProofs(out io.Writer, resolver *prolog.Resolver, query *prolog.Predicate) {
	found := false
	ch, cancel := resolver.Query(query)
	defer cancel()
	for proof := range ch {
		found = true
		assignments := prolog.VariableAssignments(query, proof)
		if len(assignments) == 0 {
			fmt.Fprintln(out, "true.")
			continue
		}
		for i, a := range assignments {
			sep := ",\n"
			if i == len(assignments)-1 {
				sep = ".\n"
			}
			fmt.Fprintf(out, "%s = %s%s", a.Variable, a.Value, sep)
		}
	}
	if !found {
		errColor.Fprintln(out, "false.")
	}
}

// traceEntry returns a logrus.Entry to pass to Resolver.WithLogger when
// --trace enabled debug level, or nil to leave tracing off (a nil Resolver
// log field is a documented no-op, see pkg/prolog/resolver.go).
func traceEntry(log *logrus.Logger) *logrus.Entry {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return nil
	}
	return logrus.NewEntry(log)
}
