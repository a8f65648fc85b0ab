package prolog

// Instantiate folds a Proof's substitutions left-to-right across a Symbol,
// returning it with every resolvable variable replaced by its bound term.
// Works for both Terms (a query variable) and Predicates (the query head).
func Instantiate(sym Symbol, proof Proof) Symbol {
	switch s := sym.(type) {
	case Term:
		t := s
		for _, sub := range proof {
			t = substituteTerm(t, sub)
		}
		return t
	case *Predicate:
		p := s
		for _, sub := range proof {
			p = SubstituteGoal(p, sub).(*Predicate)
		}
		return p
	default:
		return sym
	}
}

// FreeVariables returns the distinct Variables appearing in sym, in
// first-seen (left-to-right, depth-first) order. Each distinct identity
// appears once regardless of how many times it occurs.
func FreeVariables(sym Symbol) []*Variable {
	seen := map[int64]struct{}{}
	var order []*Variable

	var walk func(Symbol)
	walk = func(s Symbol) {
		switch v := s.(type) {
		case *Atom:
		case *Variable:
			if _, ok := seen[v.ID()]; !ok {
				seen[v.ID()] = struct{}{}
				order = append(order, v)
			}
		case *Function:
			for _, a := range v.Args {
				walk(a)
			}
		case *List:
			for _, a := range v.Args {
				walk(a)
			}
		case *Predicate:
			for _, a := range v.Args {
				walk(a)
			}
		case *Cut:
		}
	}
	walk(sym)
	return order
}

// VariableAssignment is one query variable's instantiated binding, keeping
// variables in the first-seen order FreeVariables reports.
type VariableAssignment struct {
	Variable *Variable
	Value    Term
}

// VariableAssignments computes the instantiated value of every free
// variable of q under proof, preserving first-seen order. Anonymous ("_")
// variables are excluded from this user-facing view, per spec.md §4.6.
func VariableAssignments(q *Predicate, proof Proof) []VariableAssignment {
	var out []VariableAssignment
	for _, v := range FreeVariables(q) {
		if v.Name == "_" {
			continue
		}
		out = append(out, VariableAssignment{
			Variable: v,
			Value:    Instantiate(v, proof).(Term),
		})
	}
	return out
}
