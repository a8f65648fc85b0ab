package prolog

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Proof is one successful derivation: the ordered sequence of substitutions
// accumulated along the branch that emptied the goal stack. Composing them
// left-to-right over a query (see proof.go) yields the query's bindings.
type Proof []Substitution

// activeCuts tracks which Cut identities are currently acting as
// backtracking barriers. It is mutated in place as the search descends and
// restored (entries removed) as it returns, per spec.md §5's requirement
// that sibling branches see a consistent view — the "mutated in place"
// implementation option spec.md §9 explicitly allows.
type activeCuts map[int64]struct{}

func (c activeCuts) has(id int64) bool { _, ok := c[id]; return ok }
func (c activeCuts) add(id int64)      { c[id] = struct{}{} }
func (c activeCuts) remove(id int64)   { delete(c, id) }

// cutsIn collects the Cut identities appearing anywhere in a goal stack.
func cutsIn(stack []Goal) map[int64]struct{} {
	ids := map[int64]struct{}{}
	for _, g := range stack {
		if c, ok := g.(*Cut); ok {
			ids[c.ID()] = struct{}{}
		}
	}
	return ids
}

// barrierActive reports whether any Cut identity in stack is currently an
// active barrier — the resolver's "no more alternatives for this goal"
// check.
func barrierActive(stack []Goal, active activeCuts) bool {
	for _, g := range stack {
		if c, ok := g.(*Cut); ok && active.has(c.ID()) {
			return true
		}
	}
	return false
}

// Resolver performs depth-first SLD resolution with leftmost goal selection
// and source-order clause selection over an immutable rule database. A
// Resolver holds only the rules and an optional trace logger; every Query
// call starts its own goal stack and cut set, so one Resolver can answer
// successive queries (the REPL reuses one) — two concurrent queries must use
// two Resolver instances (spec.md §5).
type Resolver struct {
	rules []*Rule
	log   *logrus.Entry // nil disables tracing; see cmd/goprolog's --trace flag
}

// NewResolver constructs a Resolver over an immutable rule database.
func NewResolver(rules []*Rule) *Resolver {
	return &Resolver{rules: rules}
}

// WithLogger returns a copy of the Resolver that emits debug-level trace
// events (clause entry, cut firing) to log. Passing a nil log disables
// tracing; the zero-value Resolver already has tracing disabled, so this is
// only needed to opt in.
func (r *Resolver) WithLogger(log *logrus.Entry) *Resolver {
	return &Resolver{rules: r.rules, log: log}
}

func (r *Resolver) trace(depth int, format string, args ...interface{}) {
	if r.log == nil {
		return
	}
	r.log.WithField("depth", depth).Debugf(format, args...)
}

// Query returns a channel that yields one Proof per successful derivation of
// q against rules, in the deterministic depth-first, left-to-right,
// source-order traversal order described in spec.md §4.5, plus a
// context.CancelFunc the caller must invoke once it stops draining the
// channel — including after fully draining it. Query is a thin wrapper
// around QueryContext using context.Background() as the parent, matching
// the cancellable-stream pattern the teacher's ResultStream.Take uses
// (stream.go) to avoid leaking the producer goroutine.
func (r *Resolver) Query(q *Predicate) (<-chan Proof, context.CancelFunc) {
	return r.QueryContext(context.Background(), q)
}

// QueryContext is Query with an explicit parent context: cancelling ctx (or
// the returned CancelFunc) stops the search goroutine at its next
// cooperative check point, even mid-derivation, so an abandoned search —
// one where the caller stops pulling proofs before the channel closes, which
// spec.md §5 explicitly permits — never blocks forever on an unbuffered
// send and is free to be garbage collected instead of running forever in
// the background.
func (r *Resolver) QueryContext(ctx context.Context, q *Predicate) (<-chan Proof, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan Proof)
	go func() {
		defer close(out)
		r.search(ctx, []Goal{q}, activeCuts{}, nil, 0, out)
	}()
	return out, cancel
}

// search implements spec.md §4.5 exactly: pop the leftmost goal; a Cut adds
// its id to the barrier set and continues; any other goal tries each clause
// in source order, relabelling, unifying against the head, and recursing
// into the (possibly extended) stack, honoring the barrier and
// skip-alternatives rules around cut. It checks ctx at every entry so a
// cancelled search unwinds promptly instead of continuing to burn CPU (or
// block on a send no one will ever receive) after the caller has moved on.
func (r *Resolver) search(ctx context.Context, stack []Goal, active activeCuts, assignments Proof, depth int, out chan<- Proof) {
	if ctx.Err() != nil {
		return
	}

	if len(stack) == 0 {
		select {
		case out <- append(Proof(nil), assignments...):
		case <-ctx.Done():
		}
		return
	}

	goal, rest := stack[0], stack[1:]

	if cut, ok := goal.(*Cut); ok {
		r.trace(depth, "cut fires id=%d", cut.ID())
		active.add(cut.ID())
		r.search(ctx, rest, active, assignments, depth+1, out)
		return
	}

	predicate, ok := goal.(*Predicate)
	if !ok {
		return
	}

	skipAlternatives := false
	for _, rule := range r.rules {
		if ctx.Err() != nil {
			return
		}
		if barrierActive(rest, active) {
			break
		}
		if skipAlternatives {
			break
		}

		fresh := Relabel(rule)
		sub, ok := UnifyPredicates(predicate, fresh.Head)
		if !ok {
			continue
		}
		r.trace(depth, "enter %s via %s", predicate, fresh.Head)

		newRest := SubstituteGoals(rest, sub)
		nextAssignments := append(append(Proof(nil), assignments...), sub)

		if fresh.IsFact() {
			r.search(ctx, newRest, active, nextAssignments, depth+1, out)
			continue
		}

		body := SubstituteGoals(fresh.Body, sub)
		cuts := cutsIn(body)
		r.search(ctx, append(body, newRest...), active, nextAssignments, depth+1, out)

		fired := false
		for id := range cuts {
			if active.has(id) {
				fired = true
			}
			active.remove(id)
		}
		if fired {
			skipAlternatives = true
		}
	}
}

// Query is a package-level convenience equivalent to NewResolver(rules).Query(q).
func Query(rules []*Rule, q *Predicate) (<-chan Proof, context.CancelFunc) {
	return NewResolver(rules).Query(q)
}
