/*
Package lexmach adapts timtadh/lexmachine as a gll.Input: the whole input is
scanned up front into a token slice, and Range positions index into that
slice rather than into raw bytes. Patterns are TokenType values; a pattern
matches the single token at the edge of the remaining range if its type
equals the pattern.

Grounded on gorgo's lr/scanner/lexmach.LMAdapter, generalized from producing
a scanner.Tokenizer to producing a gll.Input directly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"strings"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.input.lexmach'.
func tracer() tracing.Trace {
	return tracing.Select("gll.input.lexmach")
}

// TokenType identifies the kind of a scanned token, and doubles as the
// Pattern grammars match against.
type TokenType int

func (t TokenType) String() string { return tokenNames[int(t)] }

var tokenNames = map[int]string{}

// Token is one scanned lexeme.
type Token struct {
	Type   TokenType
	Lexeme string
}

// Adapter compiles a lexmachine DFA from literals, keywords and arbitrary
// additional patterns registered via init, the same three-way split
// gorgo's NewLMAdapter uses.
type Adapter struct {
	lexer *lexmachine.Lexer
}

// NewAdapter builds and compiles a lexmachine DFA. init may register
// further patterns/actions on the lexer before literals and keywords are
// added. NewAdapter returns an error if compiling the DFA fails.
func NewAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*Adapter, error) {
	a := &Adapter{lexer: lexmachine.NewLexer()}
	if init != nil {
		init(a.lexer)
	}
	for _, lit := range literals {
		id := tokenIds[lit]
		tokenNames[id] = lit
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		a.lexer.Add([]byte(r), makeAction(id))
	}
	for _, kw := range keywords {
		id := tokenIds[kw]
		tokenNames[id] = kw
		a.lexer.Add([]byte(strings.ToLower(kw)), makeAction(id))
	}
	if err := a.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return a, nil
}

func makeAction(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// Scan tokenizes text fully and returns a Source ready for parsing.
func (a *Adapter) Scan(text string) (*Source, error) {
	scanner, err := a.lexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		tok, err, eof := scanner.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				tracer().Errorf("unconsumed input at %d", ui.FailTC)
				scanner.TC = ui.FailTC
				continue
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		tokens = append(tokens, Token{Type: TokenType(t.Type), Lexeme: string(t.Lexeme)})
	}
	return &Source{tokens: tokens}, nil
}

// Source is a gll.Input over a pre-scanned token slice; Range positions
// index into that slice.
type Source struct {
	tokens []Token
}

var _ gll.Input = (*Source)(nil)

// Len returns the number of scanned tokens.
func (s *Source) Len() int { return len(s.tokens) }

// Whole returns a Range covering every scanned token.
func (s *Source) Whole() gll.Range { return gll.WholeInput(s) }

// TokenAt returns the token at token index pos.
func (s *Source) TokenAt(pos int) Token { return s.tokens[pos] }

// MatchLeft implements gll.Input: pat (a TokenType) matches if the first
// remaining token has that type.
func (s *Source) MatchLeft(remaining gll.Range, pat gll.Pattern) (gll.Range, bool) {
	tt, ok := pat.(TokenType)
	if !ok || remaining.IsEmpty() {
		return gll.Range{}, false
	}
	if s.tokens[remaining.Start()].Type != tt {
		return gll.Range{}, false
	}
	return gll.NewRange(s, remaining.Start(), remaining.Start()+1), true
}

// MatchRight implements gll.Input: pat (a TokenType) matches if the last
// remaining token has that type.
func (s *Source) MatchRight(remaining gll.Range, pat gll.Pattern) (gll.Range, bool) {
	tt, ok := pat.(TokenType)
	if !ok || remaining.IsEmpty() {
		return gll.Range{}, false
	}
	if s.tokens[remaining.End()-1].Type != tt {
		return gll.Range{}, false
	}
	return gll.NewRange(s, remaining.End()-1, remaining.End()), true
}
