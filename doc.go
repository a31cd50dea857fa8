// Package calc implements a calculator expression engine.
//
// The syntax is intended to be similar to math you'd type into a pocket
// calculator. "2(3)" is a multiplication, "50%" is a percentage, "10%3" is a
// modulo, "5!" is a factorial, and "2^3^2" is a right-associative
// exponentiation. Expressions are evaluated over float64 against a closed
// table of named functions and constants; no caller-supplied code ever runs.
//
// Evaluation is a pure function of the input string. Every failure is a typed
// error carrying a failure kind and, where the input text caused it, the rune
// column of the offending token.
package calc
