package calc_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/smartcalc/calc"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"add", "2+2", 4},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "1/4", 0.25},
		{"precedence", "2+3*4", 14},
		{"group", "(2+3)*4", 20},
		{"implied-mul", "2(3)", 6},
		{"implied-mul-groups", "(2)(3)", 6},
		{"implied-mul-const", "2pi", 6.2831853072},
		{"pow", "2^10", 1024},
		{"pow-right-assoc", "2^3^2", 512},
		{"pow-neg-exp", "2^-2", 0.25},
		{"neg-pow", "-2^2", -4},
		{"fact", "5!", 120},
		{"fact-zero", "0!", 1},
		{"percent", "50%", 0.5},
		{"modulo", "10%3", 1},
		{"modulo-call", "mod(10, 3)", 1},
		{"percent-call", "percent(50)", 0.5},
		{"sqrt", "sqrt(16)", 4},
		{"cbrt-neg", "cbrt(-8)", -2},
		{"pow-fn", "pow(2, 10)", 1024},
		{"abs", "abs(-5)", 5},
		{"ln", "ln(e)", 1},
		{"log", "log(1000)", 3},
		{"log2", "log2(8)", 3},
		{"cos", "cos(0)", 1},
		{"near-zero-snap", "sin(pi)", 0},
		{"degrees", "degrees(pi)", 180},
		{"radians", "radians(180)", 3.1415926536},
		{"floor", "floor(2.7)", 2},
		{"round", "round(2.5)", 3},
		{"whitespace", "  2 + 2\t", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calc.Evaluate(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.want, got)
			}
		})
	}
}

func TestEvaluateInf(t *testing.T) {
	got, err := calc.Evaluate("inf")
	if err != nil {
		t.Fatalf("evaluating inf: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("want +Inf, got %g", got)
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind calc.ErrorKind
	}{
		{"empty", "", calc.KindEmptyInput},
		{"blank", "   ", calc.KindEmptyInput},
		{"invalid-char", "2+$2", calc.KindInvalidCharacter},
		{"bare-percent", "%", calc.KindNormalization},
		{"percent-after-op", "5+%2", calc.KindNormalization},
		{"modulo-no-rhs", "(1+2)%", calc.KindNormalization},
		{"unbalanced", "(1+2", calc.KindSyntax},
		{"trailing-garbage", "1+2)", calc.KindSyntax},
		{"bad-number", ".5", calc.KindSyntax},
		{"bad-arity", "sin(1,2)", calc.KindSyntax},
		{"undefined", "foo(1)", calc.KindUndefinedSymbol},
		{"div-zero", "1/0", calc.KindDivisionByZero},
		{"div-near-zero", "1/0.00000000001", calc.KindDivisionByZero},
		{"mod-zero", "mod(1, 0)", calc.KindDivisionByZero},
		{"mod-op-zero", "10%0", calc.KindDivisionByZero},
		{"sqrt-neg", "sqrt(-1)", calc.KindDomain},
		{"log-zero", "log(0)", calc.KindDomain},
		{"asin-range", "asin(2)", calc.KindDomain},
		{"fact-neg", "-1!", calc.KindDomain},
		{"fact-frac", "1.5!", calc.KindDomain},
		{"fact-overflow", "171!", calc.KindDomain},
		{"pow-complex", "(-1)^0.5", calc.KindDomain},
		{"nan-result", "inf-inf", calc.KindDomain},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.Evaluate(c.src)
			if err == nil {
				t.Fatalf("evaluating %q: no error", c.src)
			}
			if k := calc.KindOf(err); k != c.kind {
				t.Errorf("evaluating %q: want kind %v, got %v (%v)", c.src, c.kind, k, err)
			}
		})
	}
}

func TestEvaluateErrorPositions(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"2+$", 3},
		{"1+2)", 4},
		{"5+%", 3},
	}
	for _, c := range cases {
		_, err := calc.Evaluate(c.src)
		if err == nil {
			t.Fatalf("evaluating %q: no error", c.src)
		}
		var ie calc.InputError
		if !errors.As(err, &ie) {
			t.Fatalf("evaluating %q: %#v is not an InputError", c.src, err)
		}
		if ie.Pos() != c.pos {
			t.Errorf("evaluating %q: want pos %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	srcs := []string{"2pi + sin(3)/7", "sqrt(2)^2", "1/3", "e^2"}
	for _, src := range srcs {
		a, err := calc.Evaluate(src)
		if err != nil {
			t.Fatalf("evaluating %q: %v", src, err)
		}
		b, err := calc.Evaluate(src)
		if err != nil {
			t.Fatalf("re-evaluating %q: %v", src, err)
		}
		if a != b {
			t.Errorf("evaluating %q is not stable: %g then %g", src, a, b)
		}
	}
}

func TestEvaluateDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 4096) + "1" + strings.Repeat(")", 4096)
	_, err := calc.Evaluate(deep)
	if err == nil {
		t.Fatal("no error for hostile nesting")
	}
	if k := calc.KindOf(err); k != calc.KindDepthExceeded {
		t.Errorf("want kind %v, got %v (%v)", calc.KindDepthExceeded, k, err)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calc.Evaluate("2+3*4")
		}
	})
	b.Run("calls", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calc.Evaluate("sin(pi/4)^2 + cos(pi/4)^2")
		}
	})
}
