package coil

import (
	"io"
	"testing"
)

func lexAll(t *testing.T, doc string) []*token {
	t.Helper()
	l := newLexer(NewLineSourceFromString(doc), "<test>")
	var toks []*token
	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.typ == tEOF {
			return toks
		}
	}
}

func TestLexPunctuationAndLiterals(t *testing.T) {
	toks := lexAll(t, `a: 1 b: 2.5 c: True d: "hi" e: [1 2]`)
	want := []TokenType{tPath, tColon, tInteger, tPath, tColon, tFloat, tPath, tColon, tBoolean, tPath, tColon, tString, tPath, tColon, tLBracket, tInteger, tInteger, tRBracket, tEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.typ != want[i] {
			t.Errorf("token %d: got %s, want %s", i, tok.typ, want[i])
		}
	}
}

func TestLexComment(t *testing.T) {
	toks := lexAll(t, "a: 1 # trailing comment\nb: 2")
	if len(toks) != 7 { // a : 1 b : 2 EOF
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
}

func TestLexTripleQuotedStringSpansLines(t *testing.T) {
	l := newLexer(NewLineSourceFromString("x: '''line one\nline two'''\n"), "<test>")
	for i := 0; i < 2; i++ {
		if _, err := l.next(); err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
	}
	tok, err := l.next()
	if err != nil {
		t.Fatalf("string token: %v", err)
	}
	if tok.typ != tString {
		t.Fatalf("got %s, want tString", tok.typ)
	}
	want := "line one\nline two"
	if tok.text != want {
		t.Errorf("got %q, want %q", tok.text, want)
	}
}

func TestLexUnterminatedSingleQuotedStringIsLexicalError(t *testing.T) {
	l := newLexer(NewLineSourceFromString("x: 'oops\nnext: 1"), "<test>")
	for i := 0; i < 2; i++ { // "x" ":"
		if _, err := l.next(); err != nil {
			t.Fatalf("unexpected error on token %d: %v", i, err)
		}
	}
	_, err := l.next()
	if err == nil {
		t.Fatal("expected a lexical error for the unterminated string")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != Lexical {
		t.Fatalf("got %v, want a Lexical *Error", err)
	}
}

func TestLexPushback(t *testing.T) {
	l := newLexer(NewLineSourceFromString("a: 1"), "<test>")
	first, err := l.next()
	if err != nil {
		t.Fatal(err)
	}
	l.push(first)
	second, err := l.next()
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Fatalf("pushed token was not returned by the next call")
	}
}

func TestLexEOFIsIdempotent(t *testing.T) {
	l := newLexer(NewLineSourceFromString(""), "<test>")
	for i := 0; i < 3; i++ {
		tok, err := l.next()
		if err != nil && err != io.EOF {
			t.Fatal(err)
		}
		if tok.typ != tEOF {
			t.Fatalf("call %d: got %s, want tEOF", i, tok.typ)
		}
	}
}

func TestLexRelativePathSingleDot(t *testing.T) {
	toks := lexAll(t, ".foo")
	if toks[0].typ != tPath || toks[0].text != ".foo" {
		t.Fatalf("got %+v", toks[0])
	}
}

// A key starting with "True"/"False" must lex as one path, not a
// boolean token followed by a stray path token.
func TestLexBooleanPrefixedKeyIsOnePathToken(t *testing.T) {
	for _, key := range []string{"Truename", "Falsey", "True-story"} {
		toks := lexAll(t, key+": 1")
		if toks[0].typ != tPath || toks[0].text != key {
			t.Errorf("%q: got %+v, want a single path token %q", key, toks[0], key)
		}
	}
}

func TestLexBooleanLiteralsStillRecognized(t *testing.T) {
	toks := lexAll(t, "a: True b: False")
	if toks[2].typ != tBoolean || toks[2].value != true {
		t.Errorf("a's value: got %+v, want boolean true", toks[2])
	}
	if toks[5].typ != tBoolean || toks[5].value != false {
		t.Errorf("b's value: got %+v, want boolean false", toks[5])
	}
}

func TestLexEncodingRejectsInvalidUTF8(t *testing.T) {
	l := newLexerWithEncoding(NewLineSourceFromLines([]string{"good: 1", "a: \xff\xfe"}), "<test>", "utf-8")
	for i := 0; i < 3; i++ { // "good" ":" "1", all on the clean first line
		if _, err := l.next(); err != nil {
			t.Fatalf("unexpected error on token %d: %v", i, err)
		}
	}
	_, err := l.next()
	if err == nil {
		t.Fatal("expected a Unicode error for invalid utf-8 input")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != Unicode {
		t.Fatalf("got %v, want a Unicode *Error", err)
	}
}
