package regarray

import (
	"regexp"
	"strconv"
)

// TokenKind classifies a Token.
type TokenKind int

const (
	TokenGroup TokenKind = iota + 1
	TokenQuantifier
	TokenName
)

func (k TokenKind) String() string {
	switch k {
	case TokenGroup:
		return "group"
	case TokenQuantifier:
		return "quantifier"
	case TokenName:
		return "name"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a lexeme of an expression.
//
// Open is set for group tokens, Name and Validator for name tokens.
// Quantity holds the translated range of a quantifier token; after
// folding it holds the quantity attached to any remaining token.
type Token struct {
	Kind      TokenKind
	Offset    int
	Text      string
	Open      bool
	Name      string
	Validator Validator
	Quantity  Quantity
}

// lexRule is one entry of the ordered lexeme table. Rules are tried in
// declaration order and the first match wins. A nil classify discards
// the lexeme.
type lexRule struct {
	pattern  *regexp.Regexp
	classify func(lx *lexer, tok Token, match []string) (Token, error)
}

var (
	whitespaceRule = lexRule{
		pattern: regexp.MustCompile(`^\s+`),
	}

	commentRule = lexRule{
		pattern: regexp.MustCompile(`^#[^\n]*`),
	}

	groupRule = lexRule{
		pattern: regexp.MustCompile(`^[()]`),
		classify: func(lx *lexer, tok Token, match []string) (Token, error) {
			tok.Kind = TokenGroup
			tok.Open = match[0][0] == GroupOpen
			return tok, nil
		},
	}

	quantifierRule = lexRule{
		pattern:  regexp.MustCompile(`^(?:[?+*]|\{\s*(\d+)\s*(?:,\s*(\d+)\s*)?\})`),
		classify: classifyQuantifier,
	}

	nameRule = lexRule{
		pattern: regexp.MustCompile(`^[A-Za-z_$]\w*`),
		classify: func(lx *lexer, tok Token, match []string) (Token, error) {
			fn, ok := lx.validators.Lookup(match[0])
			if !ok {
				return Token{}, tokenError(ErrUnknownValidator, lx.source, tok, "%s", match[0])
			}
			tok.Kind = TokenName
			tok.Name = match[0]
			tok.Validator = fn
			return tok, nil
		},
	}

	lexRules = []lexRule{whitespaceRule, commentRule, groupRule, quantifierRule, nameRule}
)

func classifyQuantifier(lx *lexer, tok Token, match []string) (Token, error) {
	tok.Kind = TokenQuantifier

	switch match[0] {
	case "?":
		tok.Quantity = Quantity{Min: 0, Max: 1}
		return tok, nil
	case "+":
		tok.Quantity = Quantity{Min: 1, Max: Unbounded}
		return tok, nil
	case "*":
		tok.Quantity = Quantity{Min: 0, Max: Unbounded}
		return tok, nil
	}

	lo, err := strconv.Atoi(match[1])
	if err != nil {
		return Token{}, tokenError(ErrRange, lx.source, tok, "bound out of range in %s", match[0])
	}
	hi := lo
	if match[2] != "" {
		hi, err = strconv.Atoi(match[2])
		if err != nil {
			return Token{}, tokenError(ErrRange, lx.source, tok, "bound out of range in %s", match[0])
		}
	}
	if hi < lo {
		return Token{}, tokenError(ErrRange, lx.source, tok, "%s", match[0])
	}

	tok.Quantity = Quantity{Min: lo, Max: hi}
	return tok, nil
}

// lexer holds the immutable inputs of one tokenization. The scan
// position is passed explicitly to next.
type lexer struct {
	source     string
	validators Validators
}

// next matches one lexeme at pos. It returns the token (nil for
// discarded lexemes) and the position just past the lexeme.
func (lx *lexer) next(pos int) (*Token, int, error) {
	rest := lx.source[pos:]
	for _, rule := range lexRules {
		match := rule.pattern.FindStringSubmatch(rest)
		if match == nil {
			continue
		}

		end := pos + len(match[0])
		if rule.classify == nil {
			return nil, end, nil
		}

		tok, err := rule.classify(lx, Token{Offset: pos, Text: match[0]}, match)
		if err != nil {
			return nil, pos, err
		}
		return &tok, end, nil
	}

	return nil, pos, newExpressionError(ErrLex, lx.source, pos, lexContext(rest),
		"%s...", lexContext(rest))
}

func (lx *lexer) tokenize() ([]Token, error) {
	var tokens []Token
	for pos := 0; pos < len(lx.source); {
		tok, end, err := lx.next(pos)
		if err != nil {
			return nil, err
		}
		if tok != nil {
			tokens = append(tokens, *tok)
		}
		pos = end
	}
	return tokens, nil
}

// lexContext returns the first few characters of s for error messages.
func lexContext(s string) string {
	n := 0
	for i := range s {
		if n == lexErrorContextRuneCount {
			return s[:i]
		}
		n++
	}
	return s
}

// Tokenize splits an expression into tokens, resolving validator names
// against the built-ins merged with validators. Whitespace and comments
// are discarded. Quantifiers are returned as separate tokens.
func Tokenize(source string, validators Validators) ([]Token, error) {
	effective, err := effectiveValidators(validators)
	if err != nil {
		return nil, err
	}
	lx := &lexer{source: source, validators: effective}
	return lx.tokenize()
}
