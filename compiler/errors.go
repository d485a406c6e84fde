package compiler

import (
	"fmt"

	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
)

// Kind is one of the seven error kinds the core ever reports (spec
// §7). Unlike the teacher's errors.Kind (errors/errors.go), there is
// no Phase dimension: the core is a single linear pass with no
// sub-phase a caller would need to distinguish, and no MissingImport
// /component-linking shape since this compiler never links translation
// units.
type Kind string

const (
	KindUndefinedVariable   Kind = "UndefinedVariable"
	KindUndefinedFunction   Kind = "UndefinedFunction"
	KindDuplicateDefinition Kind = "DuplicateDefinition"
	KindTypeMismatch        Kind = "TypeMismatch"
	KindUnsupportedOp       Kind = "UnsupportedOperator"
	KindOverflow            Kind = "Overflow"
	KindOutOfMemory         Kind = "OutOfMemory"
)

// Error is the single tagged error type the core ever returns. It
// bubbles out verbatim: no recovery, no accumulation of multiple
// errors, and any partial output is discarded by the caller.
type Error struct {
	Cause  error
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets callers use errors.Is(err, &compiler.Error{Kind: ...}) to
// match on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func errUndefinedVariable(name string) *Error {
	return newErr(KindUndefinedVariable, "undefined variable %q", name)
}

func errUndefinedFunction(name string) *Error {
	return newErr(KindUndefinedFunction, "undefined function %q", name)
}

func errDuplicateDefinition(name string) *Error {
	return newErr(KindDuplicateDefinition, "%q defined more than once", name)
}

func errTypeMismatch(format string, args ...any) *Error {
	return newErr(KindTypeMismatch, format, args...)
}

func errUnsupportedOperator(format string, args ...any) *Error {
	return newErr(KindUnsupportedOp, format, args...)
}

func errUnsupportedOperatorFor(vt valtype.ValType, op ast.BinOp) *Error {
	return newErr(KindUnsupportedOp, "operator not supported for %s", vt)
}

func errOverflow(format string, args ...any) *Error {
	return newErr(KindOverflow, format, args...)
}
