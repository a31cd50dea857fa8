package calc

import "unicode/utf8"

// The parser is precedence-climbing over the canonical token stream:
//
//	expr    := term (("+"|"-") term)*
//	term    := unary (("*"|"/"|"%") unary)*
//	unary   := ("-"|"+") unary | power
//	power   := postfix ("^" unary)?      // right-assoc
//	postfix := primary "!"*
//	primary := NUMBER | IDENT | IDENT "(" args ")" | "(" expr ")"
//	args    := expr ("," expr)*
//
// Infix % desugars to a mod(...) call during parsing, so the evaluator only
// ever sees grammar nodes backed by the registry.

// maxDepth bounds parser recursion so hostile nesting fails with a typed
// error instead of exhausting the stack. Evaluation recurses no deeper than
// the parse did.
const maxDepth = 256

// parse builds the expression tree for a canonical token stream. Every name
// is resolved against the registry here; the evaluator never sees an
// undefined identifier.
func parse(toks []token) (*node, error) {
	p := parser{toks: toks}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	end := p.next()
	if end.kind != tokenEOF {
		return nil, endedBadly(end)
	}
	if n == nil {
		return nil, &EmptyInputError{}
	}
	return n, nil
}

type parser struct {
	toks  []token
	i     int
	depth int
}

// next returns the next token, or an EOF token past the end of the stream.
func (p *parser) next() token {
	i := p.i
	p.i++
	if i >= len(p.toks) {
		return token{kind: tokenEOF, pos: p.endpos()}
	}
	return p.toks[i]
}

// back unreads the last token returned from next.
func (p *parser) back() {
	p.i--
}

// endpos is the column just past the final token.
func (p *parser) endpos() int {
	if len(p.toks) == 0 {
		return 1
	}
	last := p.toks[len(p.toks)-1]
	return last.pos + utf8.RuneCountInString(last.text)
}

// parseterm parses a single term. If there is no error, then parseterm leaves
// the token that ended the term unconsumed. If the input is an empty
// subexpression, the result is nil with no error; callers must create an
// error in contexts where empty subexpressions are illegal.
func (p *parser) parseterm(until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		tok := p.next()
		p.back()
		return nil, &DepthError{Col: tok.pos}
	}
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok := p.next()
		switch tok.kind {
		case tokenOp:
			if tok.text == "!" {
				// Postfix factorial binds tighter than any binary operator.
				n = &node{kind: nodeFact, name: "!", left: n}
				continue
			}
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				p.back()
				return n, nil
			}
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := p.next()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			if tok.text == "%" {
				n = &node{kind: nodeCall, name: "mod", fn: lookup("mod"), args: []*node{n, rhs}}
				continue
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// The normalizer inserts explicit multiplications, but adjacent
			// terms parse as a product regardless.
			p.back()
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := p.next()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			p.back()
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func (p *parser) parselhs(until operator) (*node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, name: tok.text, val: tok.val}, nil
	case tokenIdent:
		return p.parsename(tok)
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := p.next()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return &node{kind: prec.op, left: rhs}, nil
	case tokenOpen:
		rhs, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		end := p.next()
		if end.kind != tokenClose {
			return nil, endedInside(end)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	case tokenClose, tokenEOF:
		// Let the caller decide whether an empty subexpression is legal here.
		p.back()
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parsename parses an identifier: either a call with a parenthesized
// argument list or a bare constant. Both resolve against the registry.
func (p *parser) parsename(tok token) (*node, error) {
	fn := lookup(tok.text)
	nxt := p.next()
	if nxt.kind != tokenOpen {
		p.back()
		if fn == nil {
			return nil, &UndefinedError{Col: tok.pos, Name: tok.text}
		}
		if fn.arity != 0 {
			return nil, &CallError{Col: tok.pos, Func: tok.text, Want: fn.arity, Bare: true}
		}
		return &node{kind: nodeConst, name: tok.text, fn: fn}, nil
	}
	args, err := p.parseargs()
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, &UndefinedError{Col: tok.pos, Name: tok.text}
	}
	if fn.arity != len(args) {
		return nil, &CallError{Col: tok.pos, Func: tok.text, Want: fn.arity, Got: len(args)}
	}
	if fn.arity == 0 {
		return &node{kind: nodeConst, name: tok.text, fn: fn}, nil
	}
	return &node{kind: nodeCall, name: tok.text, fn: fn, args: args}, nil
}

// parseargs parses a parenthesized list of zero or more comma-separated
// arguments. The open paren is already consumed; parseargs consumes the
// close.
func (p *parser) parseargs() ([]*node, error) {
	var args []*node
	for {
		n, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		end := p.next()
		switch end.kind {
		case tokenClose:
			if n == nil {
				// f() is allowed, but f(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, n), nil
		case tokenSep:
			if n == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, n)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "("}
		default:
			panic("calc: argument list ended on " + end.String())
		}
	}
}

// endedBadly returns an error appropriate for an unexpected token after a
// complete expression.
func endedBadly(tok token) error {
	switch tok.kind {
	case tokenClose:
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// endedInside returns an error appropriate for a subexpression that ended
// without its close paren.
func endedInside(tok token) error {
	switch tok.kind {
	case tokenEOF:
		return &BracketError{Col: tok.pos, Left: "("}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: subexpression ended on " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		// Desugars to a mod(...) call at the same level as * and /.
		return operator{5, false, nodeCall}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence for adjacent-term multiplication. Its prec
	// matches that of *.
	termprec = operator{5, true, nodeMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
