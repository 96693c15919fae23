package evaluator

import (
	"fmt"
	"strings"

	"github.com/MinBZK/regelrecht-mvp-sub000/constants"
	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/trace"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

// Evaluate resolves av to a concrete Value: a literal is returned as
// is (or resolved through resolver if it's a "$name" reference), a
// nested operation is dispatched recursively. depth starts at 0 for a
// top-level action and is checked against MaxOperationDepth before
// each recursive step.
func Evaluate(av lawdoc.ActionValue, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if depth > constants.MaxOperationDepth {
		return value.Null(), rrerr.ErrMaxDepthExceeded(depth)
	}
	if op, ok := av.AsOperation(); ok {
		return executeOperation(op, resolver, tr, depth+1)
	}
	lit, _ := av.AsLiteral()
	if name, ok := lit.IsVariableRef(); ok {
		return resolver.Resolve(name)
	}
	return lit, nil
}

// EvaluateOperation executes an action-level operation directly — used
// by the article engine when an action specifies `operation` inline
// rather than nesting it under `value`.
func EvaluateOperation(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	return executeOperation(op, resolver, tr, depth)
}

func executeOperation(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if depth > constants.MaxOperationDepth {
		return value.Null(), rrerr.ErrMaxDepthExceeded(depth)
	}

	opName := string(op.Operation)
	done := tr.Push("operation", opName, nil)
	defer done()

	result, err := executeOperationInternal(op, resolver, tr, depth)

	if tr.HasTrace() {
		if err != nil {
			tr.SetErr(err)
			tr.SetMessage(fmt.Sprintf("error in %s: %s", opName, err))
		} else {
			tr.SetResult(result)
			tr.SetMessage(fmt.Sprintf("compute %s(...) = %s", opName, result.String()))
		}
	}
	tr.Pop()
	return result, err
}

func executeOperationInternal(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	switch op.Operation {
	case value.Equals:
		return evalEquality(op, resolver, tr, depth, false)
	case value.NotEquals:
		return evalEquality(op, resolver, tr, depth, true)
	case value.GreaterThan, value.LessThan, value.GreaterThanOrEqual, value.LessThanOrEqual:
		return evalOrdering(op, resolver, tr, depth)
	case value.Add, value.Subtract, value.Multiply, value.Divide:
		return evalArithmetic(op, resolver, tr, depth)
	case value.Max, value.Min:
		return evalAggregate(op, resolver, tr, depth)
	case value.And, value.Or:
		return evalLogical(op, resolver, tr, depth)
	case value.If:
		return evalIf(op, resolver, tr, depth)
	case value.Switch:
		return evalSwitch(op, resolver, tr, depth)
	case value.IsNull, value.NotNull:
		return evalNullCheck(op, resolver, tr, depth)
	case value.In, value.NotIn:
		return evalMembership(op, resolver, tr, depth)
	case value.SubtractDate:
		return evalSubtractDate(op, resolver, tr, depth)
	default:
		return value.Null(), rrerr.ErrInvalidOperation("unhandled operation: %s", op.Operation)
	}
}

func evalChild(av *lawdoc.ActionValue, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if av == nil {
		return value.Null(), nil
	}
	return Evaluate(*av, resolver, tr, depth)
}

func evalEquality(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int, negate bool) (value.Value, error) {
	subject, err := evalChild(op.Subject, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	target, err := evalChild(op.Value, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	eq := subject.Equal(target)
	if negate {
		eq = !eq
	}
	return value.Bool(eq), nil
}

func evalOrdering(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	subject, err := evalChild(op.Subject, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	target, err := evalChild(op.Value, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	ok, err := value.Ordering(op.Operation, subject, target)
	if err != nil {
		return value.Null(), err
	}
	return value.Bool(ok), nil
}

func evalArithmetic(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if len(op.Values) == 0 {
		return value.Null(), rrerr.ErrInvalidOperation("%s requires a non-empty values list", op.Operation)
	}
	acc, err := evalChild(&op.Values[0], resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	for i := 1; i < len(op.Values); i++ {
		next, err := evalChild(&op.Values[i], resolver, tr, depth)
		if err != nil {
			return value.Null(), err
		}
		acc, err = value.Arith(op.Operation, acc, next)
		if err != nil {
			return value.Null(), err
		}
	}
	return acc, nil
}

func evalAggregate(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if len(op.Values) == 0 {
		return value.Null(), rrerr.ErrInvalidOperation("%s requires a non-empty values list", op.Operation)
	}
	evaluated := make([]value.Value, len(op.Values))
	for i := range op.Values {
		v, err := evalChild(&op.Values[i], resolver, tr, depth)
		if err != nil {
			return value.Null(), err
		}
		evaluated[i] = v
	}
	return value.Aggregate(op.Operation, evaluated)
}

func evalLogical(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if len(op.Conditions) == 0 {
		return value.Null(), rrerr.ErrInvalidOperation("%s requires a non-empty conditions list", op.Operation)
	}
	isAnd := op.Operation == value.And
	for i := range op.Conditions {
		v, err := evalChild(&op.Conditions[i], resolver, tr, depth)
		if err != nil {
			return value.Null(), err
		}
		if isAnd && !v.Truthy() {
			return value.Bool(false), nil
		}
		if !isAnd && v.Truthy() {
			return value.Bool(true), nil
		}
	}
	return value.Bool(isAnd), nil
}

func evalIf(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	if op.When == nil {
		return value.Null(), rrerr.ErrInvalidOperation("IF requires a when condition")
	}
	cond, err := evalChild(op.When, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	if cond.Truthy() {
		return evalChild(op.Then, resolver, tr, depth)
	}
	if op.Else == nil {
		return value.Null(), nil
	}
	return evalChild(op.Else, resolver, tr, depth)
}

func evalSwitch(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	for _, c := range op.Cases {
		cond, err := Evaluate(c.When, resolver, tr, depth)
		if err != nil {
			return value.Null(), err
		}
		if cond.Truthy() {
			return Evaluate(c.Then, resolver, tr, depth)
		}
	}
	if op.Default == nil {
		return value.Null(), nil
	}
	return evalChild(op.Default, resolver, tr, depth)
}

func evalNullCheck(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	v, err := evalChild(op.Subject, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	isNull := v.IsNull()
	if op.Operation == value.NotNull {
		isNull = !isNull
	}
	return value.Bool(isNull), nil
}

func evalMembership(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	subject, err := evalChild(op.Subject, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	if len(op.Values) == 0 {
		return value.Null(), rrerr.ErrInvalidOperation("%s requires a non-empty values list", op.Operation)
	}
	found := false
	for i := range op.Values {
		candidate, err := evalChild(&op.Values[i], resolver, tr, depth)
		if err != nil {
			return value.Null(), err
		}
		if subject.Equal(candidate) {
			found = true
			break
		}
	}
	if op.Operation == value.NotIn {
		found = !found
	}
	return value.Bool(found), nil
}

func evalSubtractDate(op *lawdoc.ActionOperation, resolver Resolver, tr *trace.Builder, depth int) (value.Value, error) {
	subject, err := evalChild(op.Subject, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	target, err := evalChild(op.Value, resolver, tr, depth)
	if err != nil {
		return value.Null(), err
	}
	unit := strings.ToLower(op.Unit)
	if unit == "" {
		unit = "days"
	}
	return dateDiff(subject, target, unit)
}
