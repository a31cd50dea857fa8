package calc

import (
	"math"
	"testing"
)

func TestRegistryConsistent(t *testing.T) {
	for name, e := range registry {
		if e.name != name {
			t.Errorf("%s: entry name is %q", name, e.name)
		}
		if e.category == "" {
			t.Errorf("%s: no category", name)
		}
		switch e.arity {
		case 0:
			if e.unary != nil || e.binary != nil {
				t.Errorf("%s: constant with an implementation", name)
			}
		case 1:
			if e.unary == nil {
				t.Errorf("%s: unary function with no implementation", name)
			}
		case 2:
			if e.binary == nil {
				t.Errorf("%s: binary function with no implementation", name)
			}
		default:
			t.Errorf("%s: arity %d", name, e.arity)
		}
	}
}

func TestFunctionsCatalog(t *testing.T) {
	m := Functions()
	ops, ok := m["basic_operations"]
	if !ok {
		t.Fatal("catalog has no basic_operations")
	}
	if len(ops) != len(BasicOperations) {
		t.Errorf("want %d basic operations, got %v", len(BasicOperations), ops)
	}
	// Every registry entry appears exactly once, in its own category.
	seen := make(map[string]int)
	for cat, names := range m {
		if cat == "basic_operations" {
			continue
		}
		for _, name := range names {
			seen[name]++
			e := registry[name]
			if e == nil {
				t.Errorf("catalog lists %s, which is not in the registry", name)
				continue
			}
			if e.category != cat {
				t.Errorf("%s listed under %s but registered under %s", name, cat, e.category)
			}
		}
	}
	for name := range registry {
		if seen[name] != 1 {
			t.Errorf("%s appears %d times in the catalog", name, seen[name])
		}
	}
}

func TestFactorial(t *testing.T) {
	cases := []struct {
		x    float64
		want float64
		err  bool
	}{
		{0, 1, false},
		{1, 1, false},
		{5, 120, false},
		{10, 3628800, false},
		{170, math.MaxFloat64, false}, // finite, checked below
		{-1, 0, true},
		{2.5, 0, true},
		{171, 0, true},
	}
	for _, c := range cases {
		got, err := factorial(c.x)
		if c.err {
			if err == nil {
				t.Errorf("factorial(%g): no error", c.x)
			} else if KindOf(err) != KindDomain {
				t.Errorf("factorial(%g): want domain error, got %v", c.x, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("factorial(%g): %v", c.x, err)
			continue
		}
		if c.x == 170 {
			if math.IsInf(got, 0) || math.IsNaN(got) {
				t.Errorf("factorial(170) is not finite: %g", got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("factorial(%g): want %g, got %g", c.x, c.want, got)
		}
	}
}

func TestMod(t *testing.T) {
	if v, err := mod(10, 3); err != nil || v != 1 {
		t.Errorf("mod(10, 3) = %g, %v", v, err)
	}
	if v, err := mod(-10, 3); err != nil || v != -1 {
		t.Errorf("mod(-10, 3) = %g, %v", v, err)
	}
	if _, err := mod(1, 0); err == nil || KindOf(err) != KindDivisionByZero {
		t.Errorf("mod(1, 0) = %v", err)
	}
}

func TestPercent(t *testing.T) {
	if v, err := percent(50); err != nil || v != 0.5 {
		t.Errorf("percent(50) = %g, %v", v, err)
	}
}
