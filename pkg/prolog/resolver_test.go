package prolog

import "testing"

func drain(ch <-chan Proof) []Proof {
	var out []Proof
	for p := range ch {
		out = append(out, p)
	}
	return out
}

// queryAll runs q to exhaustion and returns every proof, releasing the
// resolver's search goroutine via cancel once draining completes.
func queryAll(rules []*Rule, q *Predicate) []Proof {
	ch, cancel := Query(rules, q)
	defer cancel()
	return drain(ch)
}

func mustParseProgram(t *testing.T, src string) []*Rule {
	t.Helper()
	rules, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return rules
}

func mustParseQuery(t *testing.T, src string) *Predicate {
	t.Helper()
	q, err := ParseQuery(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return q
}

func bindingString(q *Predicate, proof Proof) map[string]string {
	out := map[string]string{}
	for _, va := range VariableAssignments(q, proof) {
		out[va.Variable.Name] = va.Value.String()
	}
	return out
}

// Scenario 1: lists.
func TestScenarioLists(t *testing.T) {
	rules := mustParseProgram(t, `list([]). list([_|X]) :- list(X).`)

	cases := []struct {
		query     string
		nProofs   int
	}{
		{`list([])`, 1},
		{`list([a])`, 1},
		{`list([a,b,c])`, 1},
		{`list(a)`, 0},
	}
	for _, c := range cases {
		q := mustParseQuery(t, c.query)
		proofs := queryAll(rules, q)
		if len(proofs) != c.nProofs {
			t.Errorf("%s: got %d proofs, want %d", c.query, len(proofs), c.nProofs)
		}
	}
}

// Scenario 2: append.
func TestScenarioAppend(t *testing.T) {
	rules := mustParseProgram(t, `append([], X, [X]). append([H|T], X, [H|R]) :- append(T, X, R).`)

	q := mustParseQuery(t, `append([1,2], 3, [1,2,3])`)
	proofs := queryAll(rules, q)
	if len(proofs) != 1 {
		t.Fatalf("got %d proofs, want 1", len(proofs))
	}

	q = mustParseQuery(t, `append([1], X, [1,2])`)
	proofs = queryAll(rules, q)
	if len(proofs) != 1 {
		t.Fatalf("got %d proofs, want 1", len(proofs))
	}
	if got := bindingString(q, proofs[0])["X"]; got != "2" {
		t.Errorf("X = %s, want 2", got)
	}

	q = mustParseQuery(t, `append([X,Y], 3, [1,2,3])`)
	proofs = queryAll(rules, q)
	if len(proofs) != 1 {
		t.Fatalf("got %d proofs, want 1", len(proofs))
	}
	b := bindingString(q, proofs[0])
	if b["X"] != "1" || b["Y"] != "2" {
		t.Errorf("got %v, want X=1, Y=2", b)
	}

	q = mustParseQuery(t, `append([1,2], 3, X)`)
	proofs = queryAll(rules, q)
	if len(proofs) != 1 {
		t.Fatalf("got %d proofs, want 1", len(proofs))
	}
	if got := bindingString(q, proofs[0])["X"]; got != "[1,2,3]" {
		t.Errorf("X = %s, want [1,2,3]", got)
	}
}

// Scenario 3: transitivity.
func TestScenarioTransitivity(t *testing.T) {
	rules := mustParseProgram(t, `e(a,b). e(b,c). e(c,d). path(X,X). path(X,Y) :- e(X,Z), path(Z,Y).`)

	q := mustParseQuery(t, `path(a,d)`)
	proofs := queryAll(rules, q)
	if len(proofs) < 1 {
		t.Fatalf("expected at least one proof for path(a,d)")
	}

	q = mustParseQuery(t, `path(a,Y)`)
	proofs = queryAll(rules, q)
	var got []string
	for _, p := range proofs {
		got = append(got, bindingString(q, p)["Y"])
	}
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want (in order) %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("proof %d: Y=%s, want Y=%s (full order %v)", i, got[i], want[i], got)
		}
	}
}

// Scenario 4: cut.
func TestScenarioCut(t *testing.T) {
	rules := mustParseProgram(t, `g(1). g(2). h(1). t(X) :- g(X), !, h(X).`)

	if n := len(queryAll(rules, mustParseQuery(t, `t(1)`))); n != 1 {
		t.Errorf("t(1): got %d proofs, want 1 (true)", n)
	}
	if n := len(queryAll(rules, mustParseQuery(t, `t(2)`))); n != 0 {
		t.Errorf("t(2): got %d proofs, want 0 (false)", n)
	}
	if n := len(queryAll(rules, mustParseQuery(t, `t(3)`))); n != 0 {
		t.Errorf("t(3): got %d proofs, want 0 (false)", n)
	}

	q := mustParseQuery(t, `t(X)`)
	proofs := queryAll(rules, q)
	if len(proofs) != 1 {
		t.Fatalf("t(X): got %d proofs, want 1", len(proofs))
	}
	if got := bindingString(q, proofs[0])["X"]; got != "1" {
		t.Errorf("X = %s, want 1", got)
	}
}

// Scenario 5: list membership with cut.
func TestScenarioListMembershipWithCut(t *testing.T) {
	rules := mustParseProgram(t, `list_member(X,[X|_]) :- !. list_member(X,[_|T]) :- list_member(X,T).`)

	q := mustParseQuery(t, `list_member(2, [2,2,2])`)
	if n := len(queryAll(rules, q)); n != 1 {
		t.Errorf("got %d proofs, want exactly 1 (cut suppresses duplicates)", n)
	}

	q = mustParseQuery(t, `list_member(X, [1,2])`)
	proofs := queryAll(rules, q)
	if len(proofs) != 1 {
		t.Fatalf("got %d proofs, want 1", len(proofs))
	}
	if got := bindingString(q, proofs[0])["X"]; got != "1" {
		t.Errorf("X = %s, want 1", got)
	}
}

// Scenario 6: occurs-check.
func TestScenarioOccursCheck(t *testing.T) {
	rules := mustParseProgram(t, `eq(A,A).`)
	q := mustParseQuery(t, `eq(X, f(X))`)
	if n := len(queryAll(rules, q)); n != 0 {
		t.Errorf("got %d proofs, want 0 (occurs-check must reject)", n)
	}
}

func TestQueryIsDeterministicAcrossRuns(t *testing.T) {
	rules := mustParseProgram(t, `e(a,b). e(b,c). e(c,d). path(X,X). path(X,Y) :- e(X,Z), path(Z,Y).`)
	q1 := mustParseQuery(t, `path(a,Y)`)
	first := queryAll(rules, q1)

	q2 := mustParseQuery(t, `path(a,Y)`)
	second := queryAll(rules, q2)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic proof count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a := bindingString(q1, first[i])["Y"]
		b := bindingString(q2, second[i])["Y"]
		if a != b {
			t.Errorf("proof %d: got %s and %s on two runs", i, a, b)
		}
	}
}

func TestQueryAbandonedEarlyDoesNotBlock(t *testing.T) {
	// An infinite family of facts reachable via backtracking: ensure the
	// resolver doesn't need to be fully drained to be usable.
	rules := mustParseProgram(t, `nat(0). nat(s(X)) :- nat(X).`)
	q := mustParseQuery(t, `nat(X)`)
	ch, cancel := Query(rules, q)
	defer cancel()
	_, ok := <-ch
	if !ok {
		t.Fatal("expected at least one proof")
	}
	// Deliberately stop draining without cancel ever running synchronously
	// here; cancel is still deferred so the test process doesn't leak the
	// search goroutine once this test returns.
}
