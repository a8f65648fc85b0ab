package prolog

import "testing"

func TestTokenizeBasics(t *testing.T) {
	tokens, err := Tokenize(`parent(tom, bob).`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		typ   TokenType
		value string
	}{
		{TokenName, "parent"},
		{TokenSpecial, "("},
		{TokenName, "tom"},
		{TokenSpecial, ","},
		{TokenName, "bob"},
		{TokenSpecial, ")"},
		{TokenSpecial, "."},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Value != w.value {
			t.Errorf("token %d: got (%v,%q), want (%v,%q)", i, tokens[i].Type, tokens[i].Value, w.typ, w.value)
		}
	}
}

func TestTokenizeCutAndRuleArrow(t *testing.T) {
	tokens, err := Tokenize(`t(X) :- g(X), !, h(X).`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	foundArrow, foundCut := false, false
	for _, tok := range tokens {
		if tok.Type == TokenSpecial && tok.Value == ":-" {
			foundArrow = true
		}
		if tok.Type == TokenName && tok.Value == "!" {
			foundCut = true
		}
	}
	if !foundArrow || !foundCut {
		t.Fatalf("expected to find ':-' and '!' tokens in %+v", tokens)
	}
}

func TestTokenizeSkipsCommentsAndWhitespace(t *testing.T) {
	src := "# a comment\n  foo(X). # trailing\n"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 5 { // foo ( X ) .
		t.Fatalf("got %d tokens, want 5: %+v", len(tokens), tokens)
	}
}

func TestTokenizeLineColumnTracking(t *testing.T) {
	src := "a(X).\nb(Y)."
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The "b" token should be on line 2, column 1.
	var bTok *Token
	for i := range tokens {
		if tokens[i].Value == "b" {
			bTok = &tokens[i]
		}
	}
	if bTok == nil {
		t.Fatal("expected to find token 'b'")
	}
	if bTok.Line != 2 || bTok.Column != 1 {
		t.Errorf("got line=%d column=%d, want line=2 column=1", bTok.Line, bTok.Column)
	}
}

func TestTokenizeRejectsUnknownCharacter(t *testing.T) {
	_, err := Tokenize("foo(X) $ bar.")
	if err == nil {
		t.Fatal("expected a LexerError")
	}
	lexErr, ok := err.(*LexerError)
	if !ok {
		t.Fatalf("expected *LexerError, got %T", err)
	}
	if lexErr.Line != 1 {
		t.Errorf("got line %d, want 1", lexErr.Line)
	}
}
