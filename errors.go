package calc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies an evaluation failure.
type ErrorKind int

const (
	// KindInternal is any failure the engine did not anticipate. Callers
	// should not show its details to end users.
	KindInternal ErrorKind = iota
	// KindEmptyInput indicates there was nothing to evaluate.
	KindEmptyInput
	// KindInvalidCharacter indicates a rune outside the allowed set.
	KindInvalidCharacter
	// KindNormalization indicates malformed percent or modulo adjacency.
	KindNormalization
	// KindSyntax indicates unbalanced grouping, trailing tokens, a malformed
	// numeric literal, or a call with the wrong number of arguments.
	KindSyntax
	// KindUndefinedSymbol indicates a name that is not in the registry.
	KindUndefinedSymbol
	// KindDomain indicates a mathematically undefined operation.
	KindDomain
	// KindDivisionByZero indicates division or modulo by a zero divisor.
	KindDivisionByZero
	// KindDepthExceeded indicates nesting beyond the recursion guard.
	KindDepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindInternal:
		return "Internal"
	case KindEmptyInput:
		return "EmptyInput"
	case KindInvalidCharacter:
		return "InvalidCharacter"
	case KindNormalization:
		return "Normalization"
	case KindSyntax:
		return "Syntax"
	case KindUndefinedSymbol:
		return "UndefinedSymbol"
	case KindDomain:
		return "Domain"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindDepthExceeded:
		return "DepthExceeded"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is implemented by every failure the engine reports.
type Error interface {
	error
	// Kind returns the failure class.
	Kind() ErrorKind
}

// InputError is an error with position information. Every error caused by
// malformed input text implements InputError.
type InputError interface {
	Error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

// KindOf classifies err. Errors that do not implement Error are internal
// faults.
func KindOf(err error) ErrorKind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindInternal
}

// EmptyInputError is an error indicating there was no expression to evaluate.
type EmptyInputError struct{}

func (*EmptyInputError) Error() string {
	return "empty expression"
}

func (*EmptyInputError) Kind() ErrorKind { return KindEmptyInput }

// InvalidCharError is an error indicating a rune outside the allowed
// character set. It implements InputError.
type InvalidCharError struct {
	// Col is the position of the rune.
	Col int
	// Char is the rune itself.
	Char rune
}

func (err *InvalidCharError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *InvalidCharError) Kind() ErrorKind { return KindInvalidCharacter }
func (err *InvalidCharError) Pos() int        { return err.Col }

// NumberError is an error indicating a malformed numeric literal. It
// implements InputError.
type NumberError struct {
	// Col is the position of the start of the literal.
	Col int
	// Text is the literal scanned so far, including the offending rune.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "malformed number "+strconv.Quote(err.Text))
}

func (err *NumberError) Kind() ErrorKind { return KindSyntax }
func (err *NumberError) Pos() int        { return err.Col }

// PercentError is an error indicating a % with no operand to apply to. It
// implements InputError.
type PercentError struct {
	// Col is the position of the %.
	Col int
	// Before indicates that the missing operand is on the left.
	Before bool
}

func (err *PercentError) Error() string {
	if err.Before {
		return errpos(err.Col, "% with nothing to apply to")
	}
	return errpos(err.Col, "modulo % with no right operand")
}

func (err *PercentError) Kind() ErrorKind { return KindNormalization }
func (err *PercentError) Pos() int        { return err.Col }

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Kind() ErrorKind { return KindSyntax }
func (err *OperatorError) Pos() int        { return err.Col }

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the token that revealed the mismatch.
	Col int
	// Left is the opening parenthesis, or empty for a stray close.
	Left string
	// Right is the closing parenthesis, or empty for an unclosed open.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close paren with no open paren")
	}
	return errpos(err.Col, "open paren with no close paren")
}

func (err *BracketError) Kind() ErrorKind { return KindSyntax }
func (err *BracketError) Pos() int        { return err.Col }

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Kind() ErrorKind { return KindSyntax }
func (err *SeparatorError) Pos() int        { return err.Col }

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Want is the arity the registry declares for Func.
	Want int
	// Got is the number of arguments the call supplied.
	Got int
	// Bare indicates the name was used without an argument list at all.
	Bare bool
}

func (err *CallError) Error() string {
	if err.Bare {
		return errpos(err.Col, err.Func+" requires "+strconv.Itoa(err.Want)+" argument(s)")
	}
	return errpos(err.Col, err.Func+" takes "+strconv.Itoa(err.Want)+" argument(s), got "+strconv.Itoa(err.Got))
}

func (err *CallError) Kind() ErrorKind { return KindSyntax }
func (err *CallError) Pos() int        { return err.Col }

// EmptyExpressionError is an error indicating an empty subexpression. It
// implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or empty at end of
	// input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Kind() ErrorKind { return KindSyntax }
func (err *EmptyExpressionError) Pos() int        { return err.Col }

// UndefinedError is an error indicating a name with no registry entry. It
// implements InputError.
type UndefinedError struct {
	// Col is the position of the name.
	Col int
	// Name is the unknown name.
	Name string
}

func (err *UndefinedError) Error() string {
	return errpos(err.Col, "undefined function or variable: "+err.Name)
}

func (err *UndefinedError) Kind() ErrorKind { return KindUndefinedSymbol }
func (err *UndefinedError) Pos() int        { return err.Col }

// DepthError is an error indicating that the expression nests more deeply
// than the recursion guard allows. It implements InputError.
type DepthError struct {
	// Col is the position at which the guard tripped.
	Col int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested too deeply")
}

func (err *DepthError) Kind() ErrorKind { return KindDepthExceeded }
func (err *DepthError) Pos() int        { return err.Col }

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// Func is a name identifying the function or operator.
	Func string
	// X is the out-of-domain argument.
	X float64
	// Reason overrides the default message when set.
	Reason string
}

func (err *DomainError) Error() string {
	if err.Reason != "" {
		return err.Reason
	}
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err *DomainError) Kind() ErrorKind { return KindDomain }

// DivisionError is an error returned for division or modulo by a numerically
// zero divisor.
type DivisionError struct {
	// Func is the operation: "/" or "mod".
	Func string
	// Expr is the text of the divisor subexpression, when known.
	Expr string
}

func (err *DivisionError) Error() string {
	r := "division by zero"
	if err.Func == "mod" {
		r = "modulo by zero"
	}
	if err.Expr != "" {
		r += ": divisor " + err.Expr
	}
	return r
}

func (err *DivisionError) Kind() ErrorKind { return KindDivisionByZero }

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*InvalidCharError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*PercentError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*UndefinedError)(nil)
	_ InputError = (*DepthError)(nil)
	_ Error      = (*EmptyInputError)(nil)
	_ Error      = (*DomainError)(nil)
	_ Error      = (*DivisionError)(nil)
)
