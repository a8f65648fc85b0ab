package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/logicmachine/goprolog/internal/parallel"
	"github.com/logicmachine/goprolog/pkg/prolog"
)

// runBatch implements spec.md §4.8's batch mode: each "file.pl:query" pair
// gets its own freshly-parsed rule database and its own Resolver instance
// (spec.md §5 forbids sharing a resolver across concurrent queries), and
// jobs bounds how many run at once via internal/parallel.WorkerPool. Pairs
// come from the remaining positional arguments, or — if none were given —
// one pair per line of stdin.
func runBatch(cmd *cobra.Command, args []string, jobs int, log *logrus.Logger) error {
	pairs, err := batchPairs(cmd, args)
	if err != nil {
		return err
	}

	pool := parallel.NewWorkerPool(jobs)
	defer pool.Shutdown()

	ctx := context.Background()
	var wg sync.WaitGroup
	var mu sync.Mutex // serializes stdout writes across worker goroutines

	for _, pair := range pairs {
		pair := pair
		wg.Add(1)
		task := func() {
			defer wg.Done()
			runBatchPair(cmd, pair, log, &mu)
		}
		if err := pool.Submit(ctx, task); err != nil {
			wg.Done()
			return err
		}
	}

	wg.Wait()
	return nil
}

// batchPair is one "file.pl:query" unit of batch work.
type batchPair struct {
	file  string
	query string
}

func batchPairs(cmd *cobra.Command, args []string) ([]batchPair, error) {
	lines := args
	if len(lines) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if l := strings.TrimSpace(scanner.Text()); l != "" {
				lines = append(lines, l)
			}
		}
	}

	pairs := make([]batchPair, 0, len(lines))
	for _, l := range lines {
		file, query, ok := strings.Cut(l, ":")
		if !ok {
			return nil, fmt.Errorf("goprolog: malformed batch entry %q, want file.pl:query", l)
		}
		pairs = append(pairs, batchPair{file: file, query: query})
	}
	return pairs, nil
}

// runBatchPair loads file, parses query, drains every proof, and writes the
// rendered result to stdout as a single serialized chunk (mu keeps one
// task's output from interleaving with another's), logging completion at
// info level and any lex/parse failure at warn level, per spec.md §4.9.
func runBatchPair(cmd *cobra.Command, pair batchPair, log *logrus.Logger, mu *sync.Mutex) {
	entry := log.WithField("file", pair.file)

	source, err := os.ReadFile(pair.file)
	if err != nil {
		entry.WithError(err).Warn("failed to read batch input file")
		return
	}

	rules, err := prolog.ParseProgram(string(source))
	if err != nil {
		entry.WithError(err).Warn("failed to parse batch input file")
		return
	}

	query, err := prolog.ParseQuery(pair.query)
	if err != nil {
		entry.WithError(err).Warn("failed to parse batch query")
		return
	}

	resolver := prolog.NewResolver(rules)
	if traceEntry(log) != nil {
		resolver = resolver.WithLogger(entry)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s:%s\n", pair.file, pair.query)
	proofCount := 0
	ch, cancel := resolver.Query(query)
	defer cancel()
	for proof := range ch {
		proofCount++
		assignments := prolog.VariableAssignments(query, proof)
		if len(assignments) == 0 {
			fmt.Fprintln(&buf, "true.")
			continue
		}
		for i, a := range assignments {
			sep := ",\n"
			if i == len(assignments)-1 {
				sep = ".\n"
			}
			fmt.Fprintf(&buf, "%s = %s%s", a.Variable, a.Value, sep)
		}
	}
	if proofCount == 0 {
		fmt.Fprintln(&buf, "false.")
	}

	mu.Lock()
	fmt.Fprint(cmd.OutOrStdout(), buf.String())
	mu.Unlock()

	entry.WithField("proofs", proofCount).Info("batch task completed")
}
