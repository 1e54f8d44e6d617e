// Package input turns free-form text into validated integer sequences for
// the engines. It never calls the engines; rejected tokens are reported
// back to the caller instead of being passed on.
package input

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// maxExactInt is the largest magnitude a float64 token can carry without losing integer precision.
const maxExactInt = 1 << 53

// Rejection describes a token that was dropped during parsing.
type Rejection struct {
	Position int    `json:"position"` // 0-based token position in the input
	Token    string `json:"token"`
	Reason   string `json:"reason"`
}

// Parsed holds the accepted values in input order and every rejected token.
type Parsed struct {
	Values   []int       `json:"values"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// OK reports whether every token was accepted.
func (p Parsed) OK() bool {
	return len(p.Rejected) == 0
}

// Tokenize splits text on commas and whitespace, discarding empty tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// ParseReferences parses a page-reference string. Tokens must be finite,
// integral and non-negative.
func ParseReferences(text string) Parsed {
	return parse(text, 0)
}

// ParseSizes parses region capacities or request sizes. Tokens must be
// finite, integral and positive.
func ParseSizes(text string) Parsed {
	return parse(text, 1)
}

func parse(text string, floor int) Parsed {
	tokens := Tokenize(text)
	out := Parsed{Values: make([]int, 0, len(tokens))}
	for i, tok := range tokens {
		v, reason := parseInt(tok, floor)
		if reason != "" {
			out.Rejected = append(out.Rejected, Rejection{Position: i, Token: tok, Reason: reason})
			continue
		}
		out.Values = append(out.Values, v)
	}
	return out
}

// parseInt accepts anything strconv reads as a number ("12", "1e2", "4.0")
// as long as it denotes an integer >= floor.
func parseInt(tok string, floor int) (int, string) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "not a finite number"
	}
	if f != math.Trunc(f) {
		return 0, "not an integer"
	}
	if math.Abs(f) > maxExactInt {
		return 0, "out of range"
	}
	v := int(f)
	if v < floor {
		if floor == 1 {
			return 0, "must be positive"
		}
		return 0, "must not be negative"
	}
	return v, ""
}
