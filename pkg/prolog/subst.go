package prolog

// substituteTerm applies sub to a Term, resolving variable chains and
// recursing into compound structure. It always returns a Term because
// substituting into a Term can only ever replace Variables with Terms.
func substituteTerm(t Term, sub Substitution) Term {
	switch v := t.(type) {
	case *Atom:
		return v
	case *Variable:
		return resolveVariable(v, sub)
	case *List:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, sub)
		}
		return &List{Function{Name: v.Name, Args: args}}
	case *Function:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, sub)
		}
		return &Function{Name: v.Name, Args: args}
	default:
		return t
	}
}

// resolveVariable walks the chain v -> sub[v] -> sub[sub[v]] -> ... while the
// current value is itself a Variable present in sub. If the terminal
// binding is a Function (or List), substitution recurses into it so the
// result is fully resolved rather than partially applied.
func resolveVariable(v *Variable, sub Substitution) Term {
	current := Term(v)
	for {
		cv, ok := current.(*Variable)
		if !ok {
			break
		}
		bound, has := sub[cv.ID()]
		if !has {
			break
		}
		current = bound
	}
	switch t := current.(type) {
	case *Function:
		return substituteTerm(t, sub)
	case *List:
		return substituteTerm(t, sub)
	default:
		return current
	}
}

// SubstituteGoal applies sub to a Goal (Predicate or Cut). Cut is returned
// unchanged — substitution never replaces a Cut, so its identity (and thus
// its role as a cut barrier) survives.
func SubstituteGoal(g Goal, sub Substitution) Goal {
	switch v := g.(type) {
	case *Cut:
		return v
	case *Predicate:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, sub)
		}
		return &Predicate{Name: v.Name, Args: args}
	default:
		return g
	}
}

// SubstituteGoals applies SubstituteGoal across a slice, in order.
func SubstituteGoals(goals []Goal, sub Substitution) []Goal {
	out := make([]Goal, len(goals))
	for i, g := range goals {
		out[i] = SubstituteGoal(g, sub)
	}
	return out
}

// varRenamer maps a source Variable's identity to its freshly-allocated
// replacement, allocating one on first sight so that every occurrence of the
// same source variable within one relabel call maps to the same fresh
// Variable.
type varRenamer struct {
	fresh map[int64]*Variable
}

func newVarRenamer() *varRenamer { return &varRenamer{fresh: map[int64]*Variable{}} }

func (r *varRenamer) rename(v *Variable) *Variable {
	if fv, ok := r.fresh[v.ID()]; ok {
		return fv
	}
	fv := NewVariable(v.Name)
	r.fresh[v.ID()] = fv
	return fv
}

// renameTerm rewrites every Variable occurrence in t via r, reconstructing
// compound terms with the same concrete subtype (so a *List renames to a
// *List, never degrading to a bare *Function).
func renameTerm(t Term, r *varRenamer) Term {
	switch v := t.(type) {
	case *Atom:
		return v
	case *Variable:
		return r.rename(v)
	case *List:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, r)
		}
		return &List{Function{Name: v.Name, Args: args}}
	case *Function:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, r)
		}
		return &Function{Name: v.Name, Args: args}
	default:
		return t
	}
}

func renamePredicate(p *Predicate, r *varRenamer) *Predicate {
	args := make([]Term, len(p.Args))
	for i, a := range p.Args {
		args[i] = renameTerm(a, r)
	}
	return &Predicate{Name: p.Name, Args: args}
}

// renameGoal rewrites a Goal's variables via r. Cut predicates are replaced
// by brand-new Cut instances (new identity) so that this instantiation's
// cuts never alias a sibling or recursive instantiation's cuts.
func renameGoal(g Goal, r *varRenamer) Goal {
	switch v := g.(type) {
	case *Cut:
		return NewCut()
	case *Predicate:
		return renamePredicate(v, r)
	default:
		return g
	}
}

// Relabel produces a new Rule in which every Variable occurrence — in the
// head and every body goal — is replaced by a freshly-allocated Variable
// carrying the same display name but a new identity, and every Cut in the
// body is replaced by a new Cut instance. Occurrences of the same source
// Variable inside the rule all map to the same fresh Variable.
func Relabel(rule *Rule) *Rule {
	r := newVarRenamer()
	head := renamePredicate(rule.Head, r)
	body := make([]Goal, len(rule.Body))
	for i, g := range rule.Body {
		body[i] = renameGoal(g, r)
	}
	return &Rule{Head: head, Body: body}
}
