package token

import "testing"

func TestTokenizeParensAndAtoms(t *testing.T) {
	toks := Tokenize("(fn add (a b))")
	want := []struct {
		typ Type
		val string
	}{
		{LParen, "("},
		{Atom, "fn"},
		{Atom, "add"},
		{LParen, "("},
		{Atom, "a"},
		{Atom, "b"},
		{RParen, ")"},
		{RParen, ")"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Value != w.val {
			t.Errorf("token %d: got (%v %q), want (%v %q)", i, toks[i].Type, toks[i].Value, w.typ, w.val)
		}
	}
}

func TestTokenizeLineComment(t *testing.T) {
	toks := Tokenize("(a) ; a trailing comment\n(b)")
	if len(toks) != 6 {
		t.Fatalf("got %d tokens, want 6: %+v", len(toks), toks)
	}
	if toks[4].Line != 2 {
		t.Errorf("token after comment: got line %d, want 2", toks[4].Line)
	}
}

func TestTokenizeString(t *testing.T) {
	toks := Tokenize(`(import "env" "log" log ())`)
	var strs []string
	for _, tok := range toks {
		if tok.Type == String {
			strs = append(strs, tok.Value)
		}
	}
	if len(strs) != 2 || strs[0] != "env" || strs[1] != "log" {
		t.Errorf("got strings %v, want [env log]", strs)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks := Tokenize(`"a\"b"`)
	if len(toks) != 1 || toks[0].Type != String {
		t.Fatalf("expected one string token, got %+v", toks)
	}
	if toks[0].Value != `a\"b` {
		t.Errorf("got %q, want %q", toks[0].Value, `a\"b`)
	}
}

func TestTokenizeNegativeNumberIsOneAtom(t *testing.T) {
	toks := Tokenize("(- -5 x)")
	if toks[2].Value != "-5" {
		t.Errorf("got %q, want %q", toks[2].Value, "-5")
	}
}
