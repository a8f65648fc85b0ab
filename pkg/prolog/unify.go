package prolog

// Substitution maps a Variable's identity to the Term it is bound to. It is
// the output of a single unification step; the resolver composes a sequence
// of these (see resolver.go) rather than merging them into one map, so that
// backtracking can simply drop the most recent entries.
type Substitution map[int64]Term

// merge returns a new Substitution containing every binding of s and then
// every binding of other, with other's bindings taking precedence on key
// collision. Collisions do not arise for well-formed inputs because the
// occurs-check prevents a variable from being bound twice to different
// terms within one unify call, but a plain union is well-defined regardless.
func (s Substitution) merge(other Substitution) Substitution {
	out := make(Substitution, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// contains reports whether term contains a reference to the variable x —
// the occurs-check. Atoms never contain anything; Functions (and Lists,
// which embed Function) recurse into their args; a Variable contains x iff
// it is x.
func contains(term Term, x *Variable) bool {
	switch t := term.(type) {
	case *Variable:
		return t.Equal(x)
	case *Function:
		for _, a := range t.Args {
			if contains(a, x) {
				return true
			}
		}
		return false
	case *List:
		for _, a := range t.Args {
			if contains(a, x) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unify computes the most general unifier of two terms, or reports failure.
// It returns (Substitution{}, true) for trivial success (e.g. two identical
// atoms), and (nil, false) on failure. Cut never participates in
// unification — it is not a Term and cannot be passed here. Unify is
// symmetric in x and y: a Variable on either side binds to the other side,
// per spec.md §4.3 rule 4, so callers never need to pre-sort their
// arguments before calling it.
func Unify(x, y Term) (Substitution, bool) {
	if xt, ok := x.(*Variable); ok {
		return unifyVariable(xt, y)
	}
	if yt, ok := y.(*Variable); ok {
		return unifyVariable(yt, x)
	}

	switch xt := x.(type) {
	case *Atom:
		if yt, ok := y.(*Atom); ok && xt.Name == yt.Name {
			return Substitution{}, true
		}
		return nil, false

	case *List:
		if yt, ok := y.(*List); ok {
			return unifyArgs(xt.Args, yt.Args)
		}
		return nil, false

	case *Function:
		// A *List also satisfies *Function via type assertion failure above
		// only matching *List explicitly, so this branch is reached solely
		// by genuine (non-list) Functions.
		if yt, ok := y.(*Function); ok && xt.Name == yt.Name && xt.Arity() == yt.Arity() {
			return unifyArgs(xt.Args, yt.Args)
		}
		return nil, false

	default:
		return nil, false
	}
}

// unifyVariable unifies the Variable x against term, covering both the
// x-is-Variable and y-is-Variable branches of Unify — the single home for
// the occurs-check and for variable-to-variable binding, shared regardless
// of which side of the original Unify call x appeared on.
func unifyVariable(x *Variable, term Term) (Substitution, bool) {
	if yt, ok := term.(*Variable); ok {
		if x.Equal(yt) {
			return Substitution{}, true
		}
		return Substitution{x.ID(): yt}, true
	}
	if contains(term, x) {
		return nil, false
	}
	return Substitution{x.ID(): term}, true
}

// UnifyPredicates unifies two Predicates: they must share name and arity,
// then their argument lists unify pairwise.
func UnifyPredicates(x, y *Predicate) (Substitution, bool) {
	if x.Name != y.Name || x.Arity() != y.Arity() {
		return nil, false
	}
	return unifyArgs(x.Args, y.Args)
}

// unifyArgs unifies two equal-length argument lists, folding a running
// substitution left to right: before each pairwise unification both
// operands are resolved against everything unified so far, and successes
// are merged into the running result.
func unifyArgs(xs, ys []Term) (Substitution, bool) {
	// Variables never reach this helper: Unify hands them to unifyVariable.
	// Unify's *List branch passes argument slices of different lengths when
	// an empty list meets a non-empty one, so a length mismatch fails here.
	if len(xs) != len(ys) {
		return nil, false
	}

	current := Substitution{}
	for i := range xs {
		a := substituteTerm(xs[i], current)
		b := substituteTerm(ys[i], current)

		step, ok := Unify(a, b)
		if !ok {
			return nil, false
		}
		current = current.merge(step)
	}
	return current, true
}
