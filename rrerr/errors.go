// Package rrerr is the engine's internal error taxonomy (§7). Each kind is
// a distinct type so callers can discriminate with errors.As, the way
// sentrie's xerr package distinguishes NotFoundError/ConflictError/etc.
// rrerr also provides the sanitized external surface used by hosts that
// must not leak filesystem paths or internal chain descriptions.
package rrerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// LoadError covers document size/shape violations and I/O during loading.
type LoadError struct{ Reason string }

func (e LoadError) Error() string { return "failed to load law: " + e.Reason }

func ErrLoad(format string, args ...any) error {
	return errors.Wrap(LoadError{Reason: fmt.Sprintf(format, args...)}, "load")
}

// YamlError wraps a YAML parse failure.
type YamlError struct{ Cause error }

func (e YamlError) Error() string { return "yaml parse error: " + e.Cause.Error() }
func (e YamlError) Unwrap() error { return e.Cause }

func ErrYaml(cause error) error {
	return errors.Wrap(YamlError{Cause: cause}, "yaml")
}

// VariableNotFound means no resolver layer provided the named variable.
type VariableNotFound struct{ Name string }

func (e VariableNotFound) Error() string { return "variable not found: " + e.Name }

func ErrVariableNotFound(name string) error {
	return errors.Wrap(VariableNotFound{Name: name}, "resolve")
}

// InvalidOperation covers structurally wrong operands (e.g. empty MAX).
type InvalidOperation struct{ Message string }

func (e InvalidOperation) Error() string { return "invalid operation: " + e.Message }

func ErrInvalidOperation(format string, args ...any) error {
	return errors.Wrap(InvalidOperation{Message: fmt.Sprintf(format, args...)}, "operation")
}

// TypeMismatch means an operand type was incompatible with the operation.
type TypeMismatch struct{ Expected, Actual string }

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func ErrTypeMismatch(expected, actual string) error {
	return errors.Wrap(TypeMismatch{Expected: expected, Actual: actual}, "operand")
}

// DivisionByZero is returned by DIVIDE when the divisor is zero.
type DivisionByZero struct{}

func (e DivisionByZero) Error() string { return "division by zero" }

func ErrDivisionByZero() error { return errors.WithStack(DivisionByZero{}) }

// ArithmeticOverflow is returned when an Int result would exceed 64 bits.
type ArithmeticOverflow struct{ Message string }

func (e ArithmeticOverflow) Error() string { return "arithmetic overflow: " + e.Message }

func ErrArithmeticOverflow(format string, args ...any) error {
	return errors.Wrap(ArithmeticOverflow{Message: fmt.Sprintf(format, args...)}, "arithmetic")
}

// MaxDepthExceeded is returned by operation nesting and property access.
type MaxDepthExceeded struct{ Depth int }

func (e MaxDepthExceeded) Error() string {
	return fmt.Sprintf("maximum depth exceeded: %d levels", e.Depth)
}

func ErrMaxDepthExceeded(depth int) error {
	return errors.WithStack(MaxDepthExceeded{Depth: depth})
}

// InvalidUri covers malformed regelrecht:// or file-path references.
type InvalidUri struct{ Message string }

func (e InvalidUri) Error() string { return "invalid uri: " + e.Message }

func ErrInvalidUri(format string, args ...any) error {
	return errors.Wrap(InvalidUri{Message: fmt.Sprintf(format, args...)}, "uri")
}

// InvalidDate covers a calculation date that doesn't parse as YYYY-MM-DD.
type InvalidDate struct{ Message string }

func (e InvalidDate) Error() string { return "invalid date: " + e.Message }

func ErrInvalidDate(format string, args ...any) error {
	return errors.Wrap(InvalidDate{Message: fmt.Sprintf(format, args...)}, "date")
}

// LawNotFound means no version of the law matched the lookup.
type LawNotFound struct{ LawID string }

func (e LawNotFound) Error() string { return "law not found: " + e.LawID }

func ErrLawNotFound(lawID string) error {
	return errors.Wrap(LawNotFound{LawID: lawID}, "registry")
}

// ArticleNotFound means the requested article number doesn't exist.
type ArticleNotFound struct{ LawID, Article string }

func (e ArticleNotFound) Error() string {
	return fmt.Sprintf("article not found: %s#%s", e.LawID, e.Article)
}

func ErrArticleNotFound(lawID, article string) error {
	return errors.Wrap(ArticleNotFound{LawID: lawID, Article: article}, "registry")
}

// OutputNotFound means no article in the law produces the named output.
type OutputNotFound struct{ LawID, Output string }

func (e OutputNotFound) Error() string {
	return fmt.Sprintf("output %q not found in law %q", e.Output, e.LawID)
}

func ErrOutputNotFound(lawID, output string) error {
	return errors.Wrap(OutputNotFound{LawID: lawID, Output: output}, "registry")
}

// CircularReference is returned when a resolution frame re-enters itself.
type CircularReference struct{ Chain string }

func (e CircularReference) Error() string { return "circular reference detected: " + e.Chain }

func ErrCircularReference(chain string) error {
	return errors.WithStack(CircularReference{Chain: chain})
}

// MissingParameter means a required parameter was absent from the call.
type MissingParameter struct{ Name string }

func (e MissingParameter) Error() string { return "required parameter missing: " + e.Name }

func ErrMissingParameter(name string) error {
	return errors.Wrap(MissingParameter{Name: name}, "parameters")
}

// DelegationError is a generic delegation lookup failure.
type DelegationError struct{ Message string }

func (e DelegationError) Error() string { return "delegation error: " + e.Message }

func ErrDelegation(format string, args ...any) error {
	return errors.Wrap(DelegationError{Message: fmt.Sprintf(format, args...)}, "delegation")
}

// DelegationNotResolved is returned when no delegated regulation matched
// and the granting article declared no defaults.
type DelegationNotResolved struct {
	InputName, LawID, Article, SelectOn string
}

func (e DelegationNotResolved) Error() string {
	return fmt.Sprintf(
		"delegation not resolved: input %q requires delegation lookup (law_id: %s, article: %s, select_on: [%s])",
		e.InputName, e.LawID, e.Article, e.SelectOn,
	)
}

func ErrDelegationNotResolved(inputName, lawID, article, selectOn string) error {
	return errors.WithStack(DelegationNotResolved{
		InputName: inputName, LawID: lawID, Article: article, SelectOn: selectOn,
	})
}

// ExternalReferenceNotResolved is returned when a host cannot satisfy a
// cross-law input and must be told what to pre-resolve.
type ExternalReferenceNotResolved struct {
	InputName, Regulation, Output string
}

func (e ExternalReferenceNotResolved) Error() string {
	return fmt.Sprintf(
		"external reference not resolved: input %q requires resolution from regulation %q output %q",
		e.InputName, e.Regulation, e.Output,
	)
}

func ErrExternalReferenceNotResolved(inputName, regulation, output string) error {
	return errors.WithStack(ExternalReferenceNotResolved{
		InputName: inputName, Regulation: regulation, Output: output,
	})
}
