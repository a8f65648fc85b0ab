// Package prolog implements a small Prolog interpreter: a term model, a
// lexer and recursive-descent parser, a unifier with the occurs-check, a
// substitution/relabelling discipline, and an SLD-resolution proof search
// with cut (!) support.
//
// The package is organized the way a single miniKanren-style engine is: one
// flat package holding the term representation (term.go), the surface
// syntax front end (lexer.go, parser.go), the resolution core (unify.go,
// subst.go, resolver.go), and the caller-facing proof helpers (proof.go).
package prolog

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// listFunctor is the reserved compound name used to represent Prolog lists.
// A List is a Function with this name: either no args (the empty list) or
// exactly two args, [head, tail].
const listFunctor = "<array>"

// cutAtomName is the reserved name for the Cut predicate.
const cutAtomName = "!"

// Symbol is the closed family of values the interpreter manipulates: every
// Term and every Predicate (including Cut) implements it. It exists so that
// FreeVariables and Instantiate (proof.go) can take a query head or any
// nested argument term through a single parameter type.
type Symbol interface {
	// String renders the symbol using the canonical Prolog-like surface
	// syntax described in the term model (§3): atoms print as their name,
	// variables print as their display name, functions/lists/predicates
	// print as name(args) with list sugar for the list functor.
	String() string

	// symbol is unexported so Symbol cannot be implemented outside this
	// package; every variant below closes over it.
	symbol()
}

// Term is the family of values that appear in predicate and function
// argument positions: Atom, Variable, Function (and its List specialization).
type Term interface {
	Symbol
	term()
}

var varIDs int64
var cutIDs int64

// nextVarID and nextCutID hand out process-wide monotonic identities. An
// atomic counter is sufficient because identities are allocated, never
// reused or compared-and-swapped; no mutex is needed for an allocate-only
// counter.
func nextVarID() int64 { return atomic.AddInt64(&varIDs, 1) }
func nextCutID() int64 { return atomic.AddInt64(&cutIDs, 1) }

// Atom is a constant term: a name beginning with a lowercase letter or
// digit, or the single character "!" (reserved for Cut, which is a distinct
// type rather than an Atom — see Cut below).
type Atom struct {
	Name string
}

// NewAtom constructs an Atom. Atom names are immutable once constructed.
func NewAtom(name string) *Atom { return &Atom{Name: name} }

func (a *Atom) symbol()        {}
func (a *Atom) term()          {}
func (a *Atom) String() string { return a.Name }

// Variable is a logical variable. Equality is by identity (the id field),
// never by display name: two Variables created from the same source name in
// different rules — or even the anonymous "_" written twice in the same
// rule — are distinct entities. The display Name exists purely for
// printing; it plays no role in Equal.
type Variable struct {
	Name string
	id   int64
}

// NewVariable allocates a fresh Variable with the given display name and a
// new, process-unique identity.
func NewVariable(name string) *Variable {
	return &Variable{Name: name, id: nextVarID()}
}

func (v *Variable) symbol() {}
func (v *Variable) term()   {}

// String renders the variable's display name. Because identity (not name)
// carries meaning, two distinct variables may print identically; this
// matches the source language, where variable names are scoped per rule and
// only exist for the human reader.
func (v *Variable) String() string { return v.Name }

// Equal reports whether two Variables are the same logical entity.
func (v *Variable) Equal(other *Variable) bool { return v.id == other.id }

// ID exposes the variable's identity for use as a map key (Substitution is
// keyed by this id, not by the Variable pointer, so relabelled copies of the
// "same" variable — which share a display name but never share an id — sort
// correctly into distinct bindings).
func (v *Variable) ID() int64 { return v.id }

// Function is a compound term name(arg1, ..., argN). A bare name in argument
// position parses as an Atom, not a Function; "name()" with an empty
// argument list parses as a Function of arity 0.
type Function struct {
	Name string
	Args []Term
}

// NewFunction constructs a compound term. Arity is len(args).
func NewFunction(name string, args []Term) *Function {
	return &Function{Name: name, Args: args}
}

func (f *Function) symbol() {}
func (f *Function) term()   {}

func (f *Function) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ", "))
}

// Arity returns the number of arguments.
func (f *Function) Arity() int { return len(f.Args) }

// List is a Function specialised to the reserved list functor. It is either
// empty (no args) or has exactly two args, [head, tail]. List.from_sequence
// in the spec corresponds to NewListFromSlice below, which builds the
// right-associated spine [t1, [t2, [... [tn, []]]]].
type List struct {
	Function
}

// NewEmptyList returns the empty list, printed as "[]".
func NewEmptyList() *List {
	return &List{Function{Name: listFunctor, Args: nil}}
}

// NewList builds a single list cell [head|tail]. tail is any Term;
// canonically another *List or a *Variable, but the parser may also produce
// other tails for malformed sources unless it rejects them (see parser.go).
func NewList(head, tail Term) *List {
	return &List{Function{Name: listFunctor, Args: []Term{head, tail}}}
}

// NewListFromSlice builds the right-associated list spine for a sequence of
// terms, e.g. [a, b, c] -> NewList(a, NewList(b, NewList(c, NewEmptyList()))).
func NewListFromSlice(terms []Term) *List {
	if len(terms) == 0 {
		return NewEmptyList()
	}
	return NewList(terms[0], NewListFromSlice(terms[1:]))
}

// IsEmpty reports whether this is the empty list (no args).
func (l *List) IsEmpty() bool { return len(l.Args) == 0 }

// Head returns the list's head term, or nil for the empty list.
func (l *List) Head() Term {
	if l.IsEmpty() {
		return nil
	}
	return l.Args[0]
}

// Tail returns the list's tail term, or nil for the empty list.
func (l *List) Tail() Term {
	if l.IsEmpty() {
		return nil
	}
	return l.Args[1]
}

// String renders list sugar per the term model: "[]" empty, "[h]" when the
// tail is empty, "[h|Var]" when the tail is an unbound variable, "[h,...]"
// when the tail is itself a well-formed (non-empty) list, and "[h|t]" for
// any other (malformed) tail.
func (l *List) String() string {
	if l.IsEmpty() {
		return "[]"
	}
	head, tail := l.Head(), l.Tail()
	switch t := tail.(type) {
	case *List:
		if t.IsEmpty() {
			return fmt.Sprintf("[%s]", head)
		}
		inner := t.String() // "[x,y]" or "[x]" or "[x|Y]"
		inner = strings.TrimPrefix(inner, "[")
		inner = strings.TrimSuffix(inner, "]")
		return fmt.Sprintf("[%s,%s]", head, inner)
	case *Variable:
		return fmt.Sprintf("[%s|%s]", head, t)
	default:
		return fmt.Sprintf("[%s|%s]", head, tail)
	}
}

// Predicate is name(arg1, ..., argN), distinct from Function even when name
// and arity coincide: Predicates appear only in rule heads, rule bodies, and
// queries; Functions appear only inside argument positions.
type Predicate struct {
	Name string
	Args []Term
}

// NewPredicate constructs a Predicate.
func NewPredicate(name string, args []Term) *Predicate {
	return &Predicate{Name: name, Args: args}
}

func (p *Predicate) symbol() {}

// predicate is the marker method that distinguishes the Predicate family
// from Term; Cut also implements it by embedding nothing from Term.
func (p *Predicate) predicate() {}

func (p *Predicate) Arity() int { return len(p.Args) }

func (p *Predicate) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(args, ", "))
}

// Goal is the family of things that can appear in a rule body and on the
// resolver's goal stack: a Predicate or a Cut.
type Goal interface {
	Symbol
	predicate()
}

var _ Goal = (*Predicate)(nil)

// Cut is the singleton-per-occurrence "!" control predicate. Each Cut value
// created — at parse time, or freshly at relabel time — is a distinct
// entity; the resolver keys its active-cut-barrier set by this identity, not
// by the fact that a term "is a Cut".
type Cut struct {
	id int64
}

// NewCut allocates a fresh Cut instance with a new identity.
func NewCut() *Cut { return &Cut{id: nextCutID()} }

func (c *Cut) symbol()        {}
func (c *Cut) predicate()     {}
func (c *Cut) String() string { return cutAtomName }

// ID exposes the cut's identity for use as a set key in the resolver's
// active-cut-barrier tracking.
func (c *Cut) ID() int64 { return c.id }

var _ Goal = (*Cut)(nil)

// Rule is head :- body, where body is an ordered sequence of Goals. A Rule
// with an empty body is a fact.
type Rule struct {
	Head *Predicate
	Body []Goal
}

// NewFact constructs a Rule with an empty body.
func NewFact(head *Predicate) *Rule { return &Rule{Head: head} }

// NewRule constructs a Rule with a non-empty body.
func NewRule(head *Predicate, body []Goal) *Rule { return &Rule{Head: head, Body: body} }

// IsFact reports whether the rule has an empty body.
func (r *Rule) IsFact() bool { return len(r.Body) == 0 }

func (r *Rule) String() string {
	if r.IsFact() {
		return fmt.Sprintf("%s.", r.Head)
	}
	parts := make([]string, len(r.Body))
	for i, g := range r.Body {
		parts[i] = g.String()
	}
	return fmt.Sprintf("%s :- %s.", r.Head, strings.Join(parts, ", "))
}
