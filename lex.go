package calc

import (
	"strconv"
	"strings"
)

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^!%"

// lexAll converts src into its token sequence. It fails at the first rune
// outside the allowed character set, which is the entire safety boundary of
// the engine: digits, ASCII letters, underscore, operators, parentheses,
// comma, dot, and whitespace.
func lexAll(src string) ([]token, error) {
	l := lexer{src: []rune(src)}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

type lexer struct {
	src []rune
	// i is the index of the next rune to scan. Columns are i+1.
	i int
}

// next scans the next token from the input. At the end of the input the
// result is an EOF token.
func (l *lexer) next() (token, error) {
	for l.i < len(l.src) && isSpace(l.src[l.i]) {
		l.i++
	}
	if l.i >= len(l.src) {
		return token{kind: tokenEOF, pos: l.i + 1}, nil
	}
	r := l.src[l.i]
	tok := token{pos: l.i + 1}
	switch {
	case '0' <= r && r <= '9':
		return l.scanNum()
	case r == '.':
		// A leading dot is not a valid numeric literal.
		return tok, &NumberError{Col: tok.pos, Text: "."}
	case r == '_', isLetter(r):
		return l.scanIdent(), nil
	case r == ',':
		l.i++
		tok.text, tok.kind = ",", tokenSep
		return tok, nil
	case r == '(':
		l.i++
		tok.text, tok.kind = "(", tokenOpen
		return tok, nil
	case r == ')':
		l.i++
		tok.text, tok.kind = ")", tokenClose
		return tok, nil
	case strings.ContainsRune(Operators, r):
		l.i++
		tok.text, tok.kind = string(r), tokenOp
		return tok, nil
	default:
		return tok, &InvalidCharError{Col: tok.pos, Char: r}
	}
}

// scanNum scans a decimal literal with an optional single fractional part.
// Exponent-suffix notation is not part of the grammar; "1e5" scans as the
// number 1 followed by the identifier e5.
func (l *lexer) scanNum() (token, error) {
	tok := token{pos: l.i + 1, kind: tokenNum}
	start := l.i
	for l.i < len(l.src) && isDigit(l.src[l.i]) {
		l.i++
	}
	if l.i < len(l.src) && l.src[l.i] == '.' {
		l.i++
		if l.i >= len(l.src) || !isDigit(l.src[l.i]) {
			return tok, &NumberError{Col: tok.pos, Text: string(l.src[start:l.i])}
		}
		for l.i < len(l.src) && isDigit(l.src[l.i]) {
			l.i++
		}
	}
	tok.text = string(l.src[start:l.i])
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		// The scan above admits only strconv-parseable text.
		panic("calc: invalid number: " + tok.text)
	}
	tok.val = v
	return tok, nil
}

func (l *lexer) scanIdent() token {
	tok := token{pos: l.i + 1, kind: tokenIdent}
	start := l.i
	for l.i < len(l.src) {
		r := l.src[l.i]
		if r != '_' && !isLetter(r) && !isDigit(r) {
			break
		}
		l.i++
	}
	tok.text = string(l.src[start:l.i])
	return tok
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
