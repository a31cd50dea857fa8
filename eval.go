package calc

import (
	"math"
	"strings"
)

// Evaluate parses and evaluates a calculator expression. It is a pure
// function of its input and is safe to call concurrently. The result has the
// output formatting rules applied: near-zero snaps to zero and values in
// presentable range are rounded to suppress binary floating-point noise.
//
// Every failure is an Error; KindOf classifies it for callers that map
// failures onto a transport.
func Evaluate(src string) (float64, error) {
	if strings.TrimSpace(src) == "" {
		return 0, &EmptyInputError{}
	}
	toks, err := lexAll(src)
	if err != nil {
		return 0, err
	}
	toks, err = normalize(toks)
	if err != nil {
		return 0, err
	}
	n, err := parse(toks)
	if err != nil {
		return 0, err
	}
	v, err := n.eval()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		// inf-inf and friends; there is no number to report.
		return 0, &DomainError{Reason: "result is not a number"}
	}
	return formatResult(v), nil
}

// eval computes the value of the subtree. It never mutates the tree and
// recurses no deeper than the parser did.
func (n *node) eval() (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeConst:
		return n.fn.value, nil
	case nodeNeg:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeNop:
		return n.left.eval()
	case nodeAdd:
		return n.binary(func(l, r float64) (float64, error) { return l + r, nil })
	case nodeSub:
		return n.binary(func(l, r float64) (float64, error) { return l - r, nil })
	case nodeMul:
		return n.binary(func(l, r float64) (float64, error) { return l * r, nil })
	case nodeDiv:
		return n.binary(func(l, r float64) (float64, error) {
			if math.Abs(r) < zeroTolerance {
				return 0, &DivisionError{Func: "/", Expr: n.right.String()}
			}
			return l / r, nil
		})
	case nodePow:
		return n.binary(func(l, r float64) (float64, error) {
			v := math.Pow(l, r)
			if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
				return 0, &DomainError{Func: "^", X: l}
			}
			return v, nil
		})
	case nodeFact:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return factorial(v)
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval()
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		switch n.fn.arity {
		case 1:
			return n.fn.unary(args[0])
		case 2:
			return n.fn.binary(args[0], args[1])
		default:
			panic("calc: call of " + n.name + " with bad arity")
		}
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

func (n *node) binary(f func(l, r float64) (float64, error)) (float64, error) {
	l, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval()
	if err != nil {
		return 0, err
	}
	return f(l, r)
}
