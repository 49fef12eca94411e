// Package scanner verifies delimiter balance in raw SQL text.
//
// The tokenizing scanner walks the text once, tracking string-literal and
// comment context so that parentheses and quotes inside literals or comments
// never count toward balance. A naive fallback scanner that counts characters
// without any context is available as an explicit strategy for callers that
// want the cruder but simpler behavior.
package scanner

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Strategy selects the balance-checking implementation.
type Strategy int

const (
	// StrategyTokenizing is the literal- and comment-aware scanner.
	StrategyTokenizing Strategy = iota
	// StrategyNaive counts delimiter characters without context tracking.
	StrategyNaive
)

// ParseStrategy parses a strategy name from configuration.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", "tokenizing":
		return StrategyTokenizing, nil
	case "naive":
		return StrategyNaive, nil
	default:
		return StrategyTokenizing, errors.Errorf("unknown scanner strategy: %s", name)
	}
}

// Result reports the balance state of one SQL string.
type Result struct {
	// Empty is true when the input has no content outside whitespace
	// and comments.
	Empty bool
	// MissingClose is the number of unclosed opening parentheses.
	MissingClose int
	// ExtraClose is the number of closing parentheses with no opener.
	ExtraClose int
	// UnclosedQuote is the quote rune left open at end of input, or 0.
	UnclosedQuote rune
	// UnterminatedComment is true when a block comment never closes.
	UnterminatedComment bool
}

// Balanced reports whether all delimiters matched.
func (r Result) Balanced() bool {
	return r.MissingClose == 0 && r.ExtraClose == 0 &&
		r.UnclosedQuote == 0 && !r.UnterminatedComment
}

// Scanner checks delimiter balance for one SQL string.
type Scanner interface {
	Scan(sql string) Result
}

// ForStrategy returns the scanner implementing the given strategy.
func ForStrategy(s Strategy) Scanner {
	if s == StrategyNaive {
		return Naive{}
	}
	return Tokenizing{}
}

// Tokenizing is the literal- and comment-aware scanner.
type Tokenizing struct{}

// Scan runs a single left-to-right pass over sql.
func (Tokenizing) Scan(sql string) Result {
	return scan(sql, nil)
}

// Strip returns a copy of sql with the same length where single-quoted
// string-literal interiors and all comment bytes are replaced by spaces.
// Double-quoted and backtick-quoted runs are identifiers, so their content
// is kept. Quote characters themselves are kept so downstream token walks
// still see literal bounds. Byte offsets into the stripped text are valid
// offsets into the original.
func Strip(sql string) string {
	out := make([]byte, len(sql))
	scan(sql, out)
	return string(out)
}

const (
	stateNone = iota
	stateSingle
	stateDouble
	stateBacktick
	stateLineComment
	stateBlockComment
)

func quoteRune(state int) rune {
	switch state {
	case stateSingle:
		return '\''
	case stateDouble:
		return '"'
	case stateBacktick:
		return '`'
	}
	return 0
}

// scan is the shared pass behind Scan and Strip. When out is non-nil it is
// filled with the stripped text; it must have len(sql) capacity.
func scan(sql string, out []byte) Result {
	var res Result
	state := stateNone
	depth, minDepth := 0, 0
	sawContent := false

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		start := i
		emit := byte(' ')

		switch state {
		case stateNone:
			switch {
			case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
				state = stateLineComment
			case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
				state = stateBlockComment
				i++ // consume '*' so "/*/" does not self-close
				if out != nil {
					out[i] = ' '
				}
			case c == '\'':
				state = stateSingle
				sawContent = true
				emit = c
			case c == '"':
				state = stateDouble
				sawContent = true
				emit = c
			case c == '`':
				state = stateBacktick
				sawContent = true
				emit = c
			case c == '(':
				depth++
				sawContent = true
				emit = c
			case c == ')':
				depth--
				if depth < minDepth {
					minDepth = depth
				}
				sawContent = true
				emit = c
			default:
				if !unicode.IsSpace(rune(c)) {
					sawContent = true
				}
				emit = c
			}
		case stateSingle, stateDouble, stateBacktick:
			q := byte(quoteRune(state))
			if state != stateSingle {
				emit = c // quoted identifiers keep their content
			}
			// Single-character lookback: a backslash right before the
			// quote keeps the literal open. Not full escape decoding.
			if c == q && !(i > 0 && sql[i-1] == '\\') {
				state = stateNone
				emit = c
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNone
				emit = '\n'
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(sql) && sql[i+1] == '/' {
				state = stateNone
				i++
				if out != nil {
					out[i] = ' '
				}
			}
		}

		if out != nil {
			out[start] = emit
		}
	}

	switch state {
	case stateSingle, stateDouble, stateBacktick:
		res.UnclosedQuote = quoteRune(state)
	case stateBlockComment:
		res.UnterminatedComment = true
	}
	if minDepth < 0 {
		res.ExtraClose = -minDepth
	}
	// depth relative to the lowest point counts opens that never closed,
	// so ")(" reports one extra close and one missing close
	if depth > minDepth {
		res.MissingClose = depth - minDepth
	}
	res.Empty = !sawContent
	return res
}

// Naive counts delimiter characters with no literal or comment awareness.
// It exists as the explicit cruder tier of the two-tier strategy; it will
// miscount queries whose literals contain delimiters.
type Naive struct{}

// Scan counts parentheses depth and quote parity over the raw bytes.
func (Naive) Scan(sql string) Result {
	var res Result
	depth, minDepth := 0, 0
	var singles, doubles, backticks int
	for i := 0; i < len(sql); i++ {
		switch sql[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < minDepth {
				minDepth = depth
			}
		case '\'':
			singles++
		case '"':
			doubles++
		case '`':
			backticks++
		}
	}
	if minDepth < 0 {
		res.ExtraClose = -minDepth
	}
	if depth > minDepth {
		res.MissingClose = depth - minDepth
	}
	switch {
	case singles%2 == 1:
		res.UnclosedQuote = '\''
	case doubles%2 == 1:
		res.UnclosedQuote = '"'
	case backticks%2 == 1:
		res.UnclosedQuote = '`'
	}
	res.Empty = strings.TrimSpace(sql) == ""
	return res
}
