/*
Package input provides the simplest concrete gll.Input: a byte-slice
source matched against two pattern kinds, Literal (exact string) and
Regexp (anchored regular expression). Sub-package lexmach adapts
timtadh/lexmachine instead, for grammars built over a pre-scanned token
stream rather than raw bytes.

Grounded on gorgo's lr/scanner package, generalized from a gorgo.Token
producer into the gll.Input.MatchLeft/MatchRight contract.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package input

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gll.input'.
func tracer() tracing.Trace {
	return tracing.Select("gll.input")
}

// Source is a gll.Input over an in-memory byte slice.
type Source struct {
	text []byte
}

var _ gll.Input = (*Source)(nil)

// NewSource creates a Source from text.
func NewSource(text string) *Source {
	return &Source{text: []byte(text)}
}

// Len returns the number of bytes in the source.
func (s *Source) Len() int { return len(s.text) }

// Whole returns a Range covering the entire source.
func (s *Source) Whole() gll.Range { return gll.WholeInput(s) }

// Text returns the raw bytes covered by r.
func (s *Source) Text(r gll.Range) []byte { return s.text[r.Start():r.End()] }

// MatchLeft implements gll.Input.
func (s *Source) MatchLeft(remaining gll.Range, pat gll.Pattern) (gll.Range, bool) {
	n, ok := s.matchLen(s.text[remaining.Start():remaining.End()], pat, false)
	if !ok {
		return gll.Range{}, false
	}
	return gll.NewRange(s, remaining.Start(), remaining.Start()+n), true
}

// MatchRight implements gll.Input.
func (s *Source) MatchRight(remaining gll.Range, pat gll.Pattern) (gll.Range, bool) {
	n, ok := s.matchLen(s.text[remaining.Start():remaining.End()], pat, true)
	if !ok {
		return gll.Range{}, false
	}
	return gll.NewRange(s, remaining.End()-n, remaining.End()), true
}

func (s *Source) matchLen(window []byte, pat gll.Pattern, fromRight bool) (int, bool) {
	switch p := pat.(type) {
	case Literal:
		lit := []byte(p)
		if len(window) < len(lit) {
			return 0, false
		}
		if fromRight {
			if !bytes.Equal(window[len(window)-len(lit):], lit) {
				return 0, false
			}
		} else if !bytes.Equal(window[:len(lit)], lit) {
			return 0, false
		}
		return len(lit), true
	case Regexp:
		if fromRight {
			// anchor at the end: find the longest suffix match by trying
			// successively shorter windows from the left edge.
			for start := 0; start <= len(window); start++ {
				loc := p.re.FindIndex(window[start:])
				if loc != nil && loc[0] == 0 && start+loc[1] == len(window) {
					return loc[1], true
				}
			}
			return 0, false
		}
		loc := p.re.FindIndex(window)
		if loc == nil || loc[0] != 0 {
			return 0, false
		}
		return loc[1], true
	default:
		tracer().Errorf("unsupported pattern type %T", pat)
		panic(fmt.Sprintf("gll/input: unsupported pattern type %T", pat))
	}
}

// Literal is a Pattern matching an exact byte sequence.
type Literal string

func (l Literal) String() string { return string(l) }

// Regexp is a Pattern matching a regular expression, anchored at the edge
// of the remaining range it is applied to.
type Regexp struct {
	re *regexp.Regexp
}

// MustRegexp compiles expr into a Regexp pattern, panicking on error.
func MustRegexp(expr string) Regexp {
	return Regexp{re: regexp.MustCompile(expr)}
}

func (r Regexp) String() string { return r.re.String() }
