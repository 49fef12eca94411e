package extractor

import "strings"

// TokenKind classifies a scanned token.
type TokenKind int

const (
	// TokenIdent is an identifier or keyword (quoting stripped).
	TokenIdent TokenKind = iota
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenString is a single-quoted string literal (content blanked
	// upstream; only the span is meaningful).
	TokenString
	// TokenSymbol is an operator or punctuation, possibly multi-byte.
	TokenSymbol
)

// Token is one lexical unit of the stripped SQL text.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
	// Depth is the parenthesis nesting depth at the token position.
	Depth int
}

// Upper returns the token text uppercased, for keyword comparison.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}

// IsKeyword reports whether the token is the given keyword, case-insensitively.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == TokenIdent && strings.EqualFold(t.Text, kw)
}

// IsSymbol reports whether the token is the given symbol text.
func (t Token) IsSymbol(s string) bool {
	return t.Kind == TokenSymbol && t.Text == s
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// multi-byte operators recognized ahead of single symbols
var twoByteOps = map[string]bool{
	">=": true, "<=": true, "<>": true, "!=": true, "||": true,
}

// Tokenize splits stripped SQL (see scanner.Strip) into tokens. It never
// fails; unrecognized bytes become single-character symbol tokens.
func Tokenize(stripped string) []Token {
	var tokens []Token
	depth := 0
	i := 0
	for i < len(stripped) {
		c := stripped[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(c):
			start := i
			for i < len(stripped) && isIdentPart(stripped[i]) {
				i++
			}
			tokens = append(tokens, Token{
				Kind: TokenIdent, Text: stripped[start:i],
				Start: start, End: i, Depth: depth,
			})
		case isDigit(c):
			start := i
			for i < len(stripped) && (isDigit(stripped[i]) || stripped[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{
				Kind: TokenNumber, Text: stripped[start:i],
				Start: start, End: i, Depth: depth,
			})
		case c == '\'':
			// Literal interior is blanked upstream; consume to the
			// closing quote on this pass.
			start := i
			i++
			for i < len(stripped) && stripped[i] != '\'' {
				i++
			}
			if i < len(stripped) {
				i++
			}
			tokens = append(tokens, Token{
				Kind: TokenString, Start: start, End: i, Depth: depth,
			})
		case c == '"' || c == '`':
			quote := c
			start := i
			i++
			inner := i
			for i < len(stripped) && stripped[i] != quote {
				i++
			}
			text := stripped[inner:i]
			if i < len(stripped) {
				i++
			}
			tokens = append(tokens, Token{
				Kind: TokenIdent, Text: text,
				Start: start, End: i, Depth: depth,
			})
		default:
			if i+1 < len(stripped) && twoByteOps[stripped[i:i+2]] {
				tokens = append(tokens, Token{
					Kind: TokenSymbol, Text: stripped[i : i+2],
					Start: i, End: i + 2, Depth: depth,
				})
				i += 2
				continue
			}
			if c == '(' {
				tokens = append(tokens, Token{
					Kind: TokenSymbol, Text: "(",
					Start: i, End: i + 1, Depth: depth,
				})
				depth++
				i++
				continue
			}
			if c == ')' {
				if depth > 0 {
					depth--
				}
				tokens = append(tokens, Token{
					Kind: TokenSymbol, Text: ")",
					Start: i, End: i + 1, Depth: depth,
				})
				i++
				continue
			}
			tokens = append(tokens, Token{
				Kind: TokenSymbol, Text: string(c),
				Start: i, End: i + 1, Depth: depth,
			})
			i++
		}
	}
	return tokens
}

// clause keywords that terminate the region started by another clause keyword
var clauseBoundaries = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "GROUP": true,
	"ORDER": true, "HAVING": true, "LIMIT": true, "OFFSET": true,
	"UNION": true, "SET": true, "VALUES": true, "RETURNING": true,
}

// ClauseRegion returns the token index range (start exclusive of the keyword,
// end exclusive) of the clause opened by keyword at the statement's top
// nesting level. ok is false when the clause is absent.
func ClauseRegion(tokens []Token, keyword string) (start, end int, ok bool) {
	if len(tokens) == 0 {
		return 0, 0, false
	}
	base := tokens[0].Depth
	for i, tok := range tokens {
		if tok.Depth != base || !tok.IsKeyword(keyword) {
			continue
		}
		j := i + 1
		for j < len(tokens) {
			t := tokens[j]
			if t.Depth == base && t.Kind == TokenIdent && clauseBoundaries[t.Upper()] {
				break
			}
			j++
		}
		return i + 1, j, true
	}
	return 0, 0, false
}

// HasKeyword reports whether any token equals the keyword at the
// statement's top nesting level.
func HasKeyword(tokens []Token, keyword string) bool {
	if len(tokens) == 0 {
		return false
	}
	base := tokens[0].Depth
	for _, tok := range tokens {
		if tok.Depth == base && tok.IsKeyword(keyword) {
			return true
		}
	}
	return false
}

// HasKeywordAnyDepth reports whether any token equals the keyword at any
// nesting level.
func HasKeywordAnyDepth(tokens []Token, keyword string) bool {
	for _, tok := range tokens {
		if tok.IsKeyword(keyword) {
			return true
		}
	}
	return false
}
