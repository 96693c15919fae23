package evaluator

import (
	"testing"
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/rulectx"
	"github.com/MinBZK/regelrecht-mvp-sub000/trace"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCtx(params map[string]value.Value) *rulectx.RuleContext {
	return rulectx.New(params, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func lit(v value.Value) lawdoc.ActionValue {
	return lawdoc.NewLiteralActionValue(v)
}

func TestEvaluateLiteral(t *testing.T) {
	ctx := newCtx(nil)
	v, err := Evaluate(lit(value.Int(5)), ctx, nil, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(5), i)
}

func TestEvaluateVariableReference(t *testing.T) {
	ctx := newCtx(map[string]value.Value{"age": value.Int(30)})
	v, err := Evaluate(lit(value.String("$age")), ctx, nil, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(30), i)
}

func makeOp(op value.Operation) *lawdoc.ActionOperation {
	return &lawdoc.ActionOperation{Operation: op}
}

func TestEvalArithmeticValuesListReducesLeftToRight(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.Subtract)
	o.Values = []lawdoc.ActionValue{lit(value.Int(100)), lit(value.Int(50))}
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(50), i)
}

func TestEvalAggregateMax(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.Max)
	o.Values = []lawdoc.ActionValue{lit(value.Int(0)), lit(value.Int(-40))}
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(0), i)
}

func TestEvalComparisonSubjectValue(t *testing.T) {
	ctx := newCtx(map[string]value.Value{"age": value.Int(25), "min_age": value.Int(18)})
	o := makeOp(value.GreaterThanOrEqual)
	o.Subject = ptr(lit(value.String("$age")))
	o.Value = ptr(lit(value.String("$min_age")))
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v.AsBool())
}

func TestEvalIfTakesThenWhenTruthy(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.If)
	o.When = ptr(lit(value.Bool(true)))
	o.Then = ptr(lit(value.String("adult")))
	o.Else = ptr(lit(value.String("minor")))
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "adult", s)
}

func TestEvalIfTakesElseWhenFalsy(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.If)
	o.When = ptr(lit(value.Bool(false)))
	o.Then = ptr(lit(value.String("adult")))
	o.Else = ptr(lit(value.String("minor")))
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "minor", s)
}

func TestEvalIfNoElseDefaultsNull(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.If)
	o.When = ptr(lit(value.Bool(false)))
	o.Then = ptr(lit(value.String("adult")))
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestEvalSwitchFallsBackToDefault(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.Switch)
	o.Cases = []lawdoc.SwitchCase{
		{When: lit(value.Bool(false)), Then: lit(value.String("a"))},
		{When: lit(value.Bool(false)), Then: lit(value.String("b"))},
	}
	o.Default = ptr(lit(value.String("fallback")))
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "fallback", s)
}

func TestEvalAndShortCircuits(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.And)
	o.Conditions = []lawdoc.ActionValue{lit(value.Bool(false)), lit(value.Bool(true))}
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	assert.False(t, v.AsBool())
}

func TestEvalOrShortCircuits(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.Or)
	o.Conditions = []lawdoc.ActionValue{lit(value.Bool(true)), lit(value.Bool(false))}
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v.AsBool())
}

func TestEvalIsNullAndNotNull(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.IsNull)
	o.Subject = ptr(lit(value.Null()))
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v.AsBool())

	o2 := makeOp(value.NotNull)
	o2.Subject = ptr(lit(value.Int(1)))
	v2, err := executeOperation(o2, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v2.AsBool())
}

func TestEvalMembership(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.In)
	o.Subject = ptr(lit(value.Int(2)))
	o.Values = []lawdoc.ActionValue{lit(value.Int(1)), lit(value.Int(2)), lit(value.Int(3))}
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v.AsBool())

	o2 := makeOp(value.NotIn)
	o2.Subject = ptr(lit(value.Int(9)))
	o2.Values = o.Values
	v2, err := executeOperation(o2, ctx, nil, 0)
	require.NoError(t, err)
	assert.True(t, v2.AsBool())
}

func TestEvalSubtractDateDays(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.SubtractDate)
	o.Subject = ptr(lit(value.String("2024-03-10")))
	o.Value = ptr(lit(value.String("2024-03-01")))
	o.Unit = "days"
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(9), i)
}

func TestEvalSubtractDateYearsEndOfMonthClamp(t *testing.T) {
	ctx := newCtx(nil)
	o := makeOp(value.SubtractDate)
	o.Subject = ptr(lit(value.String("2024-02-29")))
	o.Value = ptr(lit(value.String("1990-01-31")))
	o.Unit = "years"
	v, err := executeOperation(o, ctx, nil, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(34), i)
}

func TestMaxDepthExceeded(t *testing.T) {
	ctx := newCtx(nil)
	_, err := Evaluate(lit(value.Int(1)), ctx, nil, 101)
	assert.Error(t, err)
}

func TestTraceRecordsOperationNode(t *testing.T) {
	ctx := newCtx(nil)
	tr := trace.NewBuilder(true)
	o := makeOp(value.Add)
	o.Values = []lawdoc.ActionValue{lit(value.Int(1)), lit(value.Int(2))}
	v, err := executeOperation(o, ctx, tr, 0)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(3), i)

	roots := tr.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "ADD", roots[0].Op)
	assert.Equal(t, int64(3), roots[0].Result)
}

func ptr(av lawdoc.ActionValue) *lawdoc.ActionValue { return &av }
