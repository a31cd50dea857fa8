package calc

// normalize rewrites the lexed token stream into the canonical form the
// grammar accepts, in a single left-to-right pass:
//
//   - Implied multiplication becomes an explicit * token: between a number or
//     close paren and a following number, name, or open paren, and between a
//     constant name and a following number.
//   - % after a number that is not followed by a numeric operand is a
//     percentage and becomes a percent(...) call. Any other % with an operand
//     on its left is the infix modulo operator. A % with no left operand, or
//     a modulo with no right operand, is a normalization error.
//   - A prefix minus directly attached to the operand of a factorial folds
//     into the literal, so -1! is the factorial of -1 rather than -(1!).
//
// Normalizing an already-canonical stream is a no-op.
func normalize(toks []token) ([]token, error) {
	out := make([]token, 0, len(toks)+4)
	for i, tok := range toks {
		if tok.kind == tokenOp {
			switch tok.text {
			case "%":
				var err error
				out, err = percentModulo(out, tok, peek(toks, i+1))
				if err != nil {
					return nil, err
				}
				continue
			case "!":
				out = foldFactorialSign(out)
				out = append(out, tok)
				continue
			}
		}
		if len(out) > 0 && impliedMul(out[len(out)-1], tok) {
			out = append(out, token{text: "*", kind: tokenOp, pos: tok.pos})
		}
		out = append(out, tok)
	}
	return out, nil
}

// percentModulo resolves a % token by grammatical position. If the
// immediately preceding token is a number and the following token does not
// open a numeric operand, the % is a postfix percentage; otherwise it is the
// infix modulo operator.
func percentModulo(out []token, tok, next token) ([]token, error) {
	if len(out) == 0 || !endsOperand(out[len(out)-1]) {
		return nil, &PercentError{Col: tok.pos, Before: true}
	}
	prev := out[len(out)-1]
	if prev.kind == tokenNum && !opensOperand(next) {
		// 50% -> percent(50)
		out = out[:len(out)-1]
		return append(out,
			token{text: "percent", kind: tokenIdent, pos: prev.pos},
			token{text: "(", kind: tokenOpen, pos: prev.pos},
			prev,
			token{text: ")", kind: tokenClose, pos: tok.pos},
		), nil
	}
	if next.kind == tokenNone || next.kind == tokenEOF {
		return nil, &PercentError{Col: tok.pos}
	}
	return append(out, tok), nil
}

// foldFactorialSign merges a prefix minus into a number literal that is about
// to become a factorial operand: [- 1 !] means (-1)! here, not -(1!).
func foldFactorialSign(out []token) []token {
	if len(out) < 2 {
		return out
	}
	num := out[len(out)-1]
	sign := out[len(out)-2]
	if num.kind != tokenNum || num.text[0] == '-' {
		return out
	}
	if sign.kind != tokenOp || sign.text != "-" {
		return out
	}
	// The minus folds only in prefix position; 3-2! stays a subtraction.
	if len(out) > 2 {
		switch out[len(out)-3].kind {
		case tokenOp, tokenOpen, tokenSep:
		default:
			return out
		}
	}
	num.text = "-" + num.text
	num.val = -num.val
	num.pos = sign.pos
	out = out[:len(out)-2]
	return append(out, num)
}

// impliedMul reports whether an explicit multiplication belongs between two
// adjacent tokens.
func impliedMul(prev, cur token) bool {
	switch prev.kind {
	case tokenNum, tokenClose:
		switch cur.kind {
		case tokenNum, tokenIdent, tokenOpen:
			return true
		}
	case tokenIdent:
		// Only constants multiply implicitly; a function name followed by an
		// open paren is a call.
		return cur.kind == tokenNum && isConstant(prev.text)
	}
	return false
}

// endsOperand reports whether tok can be the last token of an operand.
func endsOperand(tok token) bool {
	switch tok.kind {
	case tokenNum, tokenIdent, tokenClose:
		return true
	}
	return false
}

// opensOperand reports whether tok can begin a numeric operand for modulo.
func opensOperand(tok token) bool {
	switch tok.kind {
	case tokenNum, tokenOpen:
		return true
	}
	return false
}

func peek(toks []token, i int) token {
	if i < len(toks) {
		return toks[i]
	}
	return token{kind: tokenEOF}
}
