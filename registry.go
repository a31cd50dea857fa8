package calc

import (
	"math"
	"sort"
)

// entry is a single function or constant in the registry. Arity 0 entries are
// constants; arity 1 and 2 entries are unary and binary functions. Exactly
// one of value, unary, and binary is meaningful, selected by arity.
type entry struct {
	name     string
	category string
	arity    int
	value    float64
	unary    func(float64) (float64, error)
	binary   func(float64, float64) (float64, error)
}

// registry is the closed table of names an expression may use. It is the
// single trust boundary for what can be called, built once at process start
// and never mutated afterward.
var registry = map[string]*entry{
	// trigonometric (radians)
	"sin":  unary1("trigonometric", pure(math.Sin)),
	"cos":  unary1("trigonometric", pure(math.Cos)),
	"tan":  unary1("trigonometric", pure(math.Tan)),
	"asin": unary1("trigonometric", within1("asin", math.Asin)),
	"acos": unary1("trigonometric", within1("acos", math.Acos)),
	"atan": unary1("trigonometric", pure(math.Atan)),

	// hyperbolic
	"sinh": unary1("hyperbolic", pure(math.Sinh)),
	"cosh": unary1("hyperbolic", pure(math.Cosh)),
	"tanh": unary1("hyperbolic", pure(math.Tanh)),

	// logarithmic
	"exp":  unary1("logarithmic", pure(math.Exp)),
	"log":  unary1("logarithmic", positive("log", math.Log10)),
	"ln":   unary1("logarithmic", positive("ln", math.Log)),
	"log2": unary1("logarithmic", positive("log2", math.Log2)),

	// roots and powers
	"sqrt": unary1("roots_powers", sqrt),
	"cbrt": unary1("roots_powers", pure(math.Cbrt)),
	"pow":  binary2("roots_powers", pow),

	// rounding
	"ceil":  unary1("rounding", pure(math.Ceil)),
	"floor": unary1("rounding", pure(math.Floor)),
	"trunc": unary1("rounding", pure(math.Trunc)),
	"round": unary1("rounding", pure(math.Round)),

	// special
	"abs":       unary1("special", pure(math.Abs)),
	"factorial": unary1("special", factorial),
	"mod":       binary2("special", mod),

	// constants
	"pi":  constant("constants", math.Pi),
	"e":   constant("constants", math.E),
	"inf": constant("constants", math.Inf(1)),

	// conversion
	"degrees": unary1("conversion", pure(degrees)),
	"radians": unary1("conversion", pure(radians)),
	"percent": unary1("conversion", percent),
}

func init() {
	for name, e := range registry {
		e.name = name
	}
}

// lookup returns the registry entry for a name, or nil.
func lookup(name string) *entry {
	return registry[name]
}

// isConstant reports whether name is a 0-ary registry entry.
func isConstant(name string) bool {
	e := registry[name]
	return e != nil && e.arity == 0
}

func unary1(category string, f func(float64) (float64, error)) *entry {
	return &entry{category: category, arity: 1, unary: f}
}

func binary2(category string, f func(float64, float64) (float64, error)) *entry {
	return &entry{category: category, arity: 2, binary: f}
}

func constant(category string, v float64) *entry {
	return &entry{category: category, arity: 0, value: v}
}

// pure adapts a total math function.
func pure(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}

// positive adapts a function defined only for positive arguments.
func positive(name string, f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if x <= 0 {
			return 0, &DomainError{Func: name, X: x}
		}
		return f(x), nil
	}
}

// within1 adapts a function defined only on [-1, 1].
func within1(name string, f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, &DomainError{Func: name, X: x}
		}
		return f(x), nil
	}
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, &DomainError{Func: "sqrt", X: x}
	}
	return math.Sqrt(x), nil
}

func pow(x, y float64) (float64, error) {
	v := math.Pow(x, y)
	if math.IsNaN(v) && !math.IsNaN(x) && !math.IsNaN(y) {
		return 0, &DomainError{Func: "pow", X: x}
	}
	return v, nil
}

// factorial is defined for non-negative integer-valued arguments up to 170,
// the largest factorial a float64 can hold.
func factorial(x float64) (float64, error) {
	n := math.Round(x)
	if math.Abs(x-n) > zeroTolerance || n < 0 {
		return 0, &DomainError{Func: "factorial", X: x, Reason: "factorial requires a non-negative integer"}
	}
	if n > 170 {
		return 0, &DomainError{Func: "factorial", X: x, Reason: "factorial argument too large"}
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}
	return r, nil
}

// mod is truncated modulo; the result has the sign of the dividend.
func mod(a, b float64) (float64, error) {
	if math.Abs(b) < zeroTolerance {
		return 0, &DivisionError{Func: "mod"}
	}
	return math.Mod(a, b), nil
}

func percent(x float64) (float64, error) {
	return x / 100, nil
}

func degrees(x float64) float64 { return x * 180 / math.Pi }
func radians(x float64) float64 { return x * math.Pi / 180 }

// BasicOperations is the operator surface the grammar itself provides,
// reported alongside the registry by Functions.
var BasicOperations = []string{"+", "-", "*", "/", "^", "%", "!"}

// Functions returns the registry contents grouped by category, plus the
// basic_operations group. The catalog is generated from the registry, so it
// cannot drift from what the parser accepts.
func Functions() map[string][]string {
	m := map[string][]string{
		"basic_operations": append([]string(nil), BasicOperations...),
	}
	for name, e := range registry {
		m[e.category] = append(m[e.category], name)
	}
	for cat, names := range m {
		if cat == "basic_operations" {
			continue
		}
		sort.Strings(names)
	}
	return m
}
