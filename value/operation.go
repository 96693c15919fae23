package value

import "fmt"

// Operation is the closed catalog of 21 operations in eight groups, per
// §3. Unlike sentrie's AST (which models operators as free-form strings
// on InfixExpression), this engine keeps the operation set closed so the
// evaluator's dispatch switch is exhaustive and a malformed YAML document
// is rejected at parse time rather than at evaluation time.
type Operation string

const (
	// Comparison
	Equals             Operation = "EQUALS"
	NotEquals          Operation = "NOT_EQUALS"
	GreaterThan        Operation = "GREATER_THAN"
	LessThan           Operation = "LESS_THAN"
	GreaterThanOrEqual Operation = "GREATER_THAN_OR_EQUAL"
	LessThanOrEqual    Operation = "LESS_THAN_OR_EQUAL"

	// Arithmetic
	Add      Operation = "ADD"
	Subtract Operation = "SUBTRACT"
	Multiply Operation = "MULTIPLY"
	Divide   Operation = "DIVIDE"

	// Aggregate
	Max Operation = "MAX"
	Min Operation = "MIN"

	// Logical
	And Operation = "AND"
	Or  Operation = "OR"

	// Conditional
	If     Operation = "IF"
	Switch Operation = "SWITCH"

	// Null
	IsNull  Operation = "IS_NULL"
	NotNull Operation = "NOT_NULL"

	// Membership
	In    Operation = "IN"
	NotIn Operation = "NOT_IN"

	// Date
	SubtractDate Operation = "SUBTRACT_DATE"
)

// Valid reports whether op is one of the 21 catalog members.
func (op Operation) Valid() bool {
	switch op {
	case Equals, NotEquals, GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual,
		Add, Subtract, Multiply, Divide,
		Max, Min,
		And, Or,
		If, Switch,
		IsNull, NotNull,
		In, NotIn,
		SubtractDate:
		return true
	default:
		return false
	}
}

// UnmarshalYAML validates the operation name against the closed catalog
// as part of decoding, so an unknown operation fails to load rather than
// silently no-op at evaluation time.
func (op *Operation) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	candidate := Operation(s)
	if !candidate.Valid() {
		return fmt.Errorf("unknown operation: %q", s)
	}
	*op = candidate
	return nil
}
