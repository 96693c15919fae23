package lawdoc

import "github.com/MinBZK/regelrecht-mvp-sub000/value"

// CompetentAuthority is either a bare string reference (e.g.
// "#bevoegd_gezag") or a structured {name: ...} object. yaml.v3 has no
// serde(untagged) equivalent, so both shapes are tried explicitly.
type CompetentAuthority struct {
	asString string
	isString bool
	Name     string `yaml:"name,omitempty"`
}

func (c *CompetentAuthority) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		c.asString = s
		c.isString = true
		return nil
	}
	var structured struct {
		Name string `yaml:"name"`
	}
	if err := unmarshal(&structured); err != nil {
		return err
	}
	c.Name = structured.Name
	return nil
}

// AsString returns the bare-string form, if that's how this authority
// was written.
func (c CompetentAuthority) AsString() (string, bool) {
	return c.asString, c.isString
}

// Definition is either {value: <Value>} or a bare <Value>.
type Definition struct {
	val value.Value
}

func (d *Definition) UnmarshalYAML(unmarshal func(any) error) error {
	var structured struct {
		Value any `yaml:"value"`
	}
	if err := unmarshal(&structured); err == nil && structured.Value != nil {
		d.val = value.FromAny(structured.Value)
		return nil
	}
	var bare any
	if err := unmarshal(&bare); err != nil {
		return err
	}
	d.val = value.FromAny(bare)
	return nil
}

func (d Definition) Value() value.Value { return d.val }

// ActionValue is either a nested ActionOperation or a plain literal
// Value (including a "$var" string reference). The Operation shape is
// tried first: a YAML map carrying a string "operation" key must decode
// as an ActionOperation, and an unrecognized operation name is a load
// error. Anything without such a key falls through to the Literal case.
type ActionValue struct {
	op      *ActionOperation
	literal value.Value
	isOp    bool
}

func (a *ActionValue) UnmarshalYAML(unmarshal func(any) error) error {
	var probe struct {
		Operation string `yaml:"operation"`
	}
	if err := unmarshal(&probe); err == nil && probe.Operation != "" {
		var op ActionOperation
		if err := unmarshal(&op); err != nil {
			return err
		}
		a.op = &op
		a.isOp = true
		return nil
	}
	var bare any
	if err := unmarshal(&bare); err != nil {
		return err
	}
	a.literal = value.FromAny(bare)
	a.isOp = false
	return nil
}

// AsOperation returns the nested operation, if this ActionValue is one.
func (a ActionValue) AsOperation() (*ActionOperation, bool) {
	if a.isOp {
		return a.op, true
	}
	return nil, false
}

// AsLiteral returns the literal Value, if this ActionValue is not a
// nested operation.
func (a ActionValue) AsLiteral() (value.Value, bool) {
	if a.isOp {
		return value.Null(), false
	}
	return a.literal, true
}

// NewLiteralActionValue wraps v as a literal ActionValue — used when
// constructing ActionValues in-process (e.g. in tests) rather than
// decoding them from YAML.
func NewLiteralActionValue(v value.Value) ActionValue {
	return ActionValue{literal: v}
}
