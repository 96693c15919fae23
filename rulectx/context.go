// Package rulectx implements C4: the evaluation-scoped RuleContext that
// resolves "$name" and dotted-property variable references during one
// article evaluation. Grounded on runtime/exec_ctx.go's ExecutionContext
// (rwmu-guarded maps, AttachedChildContext clearing locals while
// inheriting everything else by reference) and on original_source's
// context.rs doc comments, which fix the six-tier resolution order and
// the child-context "clear, don't copy" rule as a deliberate safety
// property rather than an accident.
package rulectx

import (
	"strings"
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/constants"
	"github.com/MinBZK/regelrecht-mvp-sub000/lawdoc"
	"github.com/MinBZK/regelrecht-mvp-sub000/rrerr"
	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

// RuleContext is the evaluation-scoped record threaded through one
// article evaluation. It is not safe for concurrent use by multiple
// goroutines — each evaluation call owns exactly one.
type RuleContext struct {
	contextVars map[string]value.Value
	local       map[string]value.Value
	outputs     map[string]value.Value
	resolved    map[string]value.Value
	definitions map[string]value.Value
	parameters  map[string]value.Value
}

// New constructs a RuleContext seeded with the caller's parameters and
// the calculation date, exposed as the context variable "referencedate".
func New(parameters map[string]value.Value, calculationDate time.Time) *RuleContext {
	return &RuleContext{
		contextVars: map[string]value.Value{
			"referencedate": dateValue(calculationDate),
		},
		local:       map[string]value.Value{},
		outputs:     map[string]value.Value{},
		resolved:    map[string]value.Value{},
		definitions: map[string]value.Value{},
		parameters:  parameters,
	}
}

func dateValue(t time.Time) value.Value {
	return value.String(t.Format("2006-01-02"))
}

// ParseCalculationDate parses a caller-supplied date string as
// YYYY-MM-DD, failing with InvalidDate rather than panicking on a
// malformed caller input.
func ParseCalculationDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, rrerr.ErrInvalidDate("%q is not a valid YYYY-MM-DD date", s)
	}
	return t, nil
}

// InstallDefinitions loads an article's definitions into the context,
// making them resolvable as "$name".
func (c *RuleContext) InstallDefinitions(defs map[string]lawdoc.Definition) {
	for name, def := range defs {
		c.definitions[name] = def.Value()
	}
}

// SetLocal installs a loop-induction variable into local scope.
func (c *RuleContext) SetLocal(name string, v value.Value) {
	c.local[name] = v
}

// SetOutput records a computed output. Per the append-only invariant,
// assigning the same name twice is a caller bug, not a recoverable
// condition the context itself guards against — the article engine
// enforces write-once by construction (each action names a distinct
// output in a well-formed document).
func (c *RuleContext) SetOutput(name string, v value.Value) {
	c.outputs[name] = v
}

func (c *RuleContext) Outputs() map[string]value.Value {
	return c.outputs
}

// SetResolvedInput records a value fetched from a cross-law reference
// or delegation, so subsequent "$name" lookups within this evaluation
// see it without re-resolving.
func (c *RuleContext) SetResolvedInput(name string, v value.Value) {
	c.resolved[name] = v
}

func (c *RuleContext) ResolvedInputs() map[string]value.Value {
	return c.resolved
}

// Child creates a child context for nested evaluation (e.g. a FOREACH
// body). It inherits outputs, resolved inputs, definitions, and
// parameters by reference, but starts with an empty local scope —
// values must cross iterations via outputs or parameters, never via
// ambient local-scope inheritance.
func (c *RuleContext) Child() *RuleContext {
	return &RuleContext{
		contextVars: c.contextVars,
		local:       map[string]value.Value{},
		outputs:     c.outputs,
		resolved:    c.resolved,
		definitions: c.definitions,
		parameters:  c.parameters,
	}
}

// Resolve looks up a (possibly dotted) "$name" reference, applying the
// six-tier resolution order: context vars, local scope, outputs,
// resolved inputs, definitions, parameters.
func (c *RuleContext) Resolve(name string) (value.Value, error) {
	head, rest, hasDotted := strings.Cut(name, ".")

	root, err := c.resolveRoot(head)
	if err != nil {
		return value.Null(), err
	}
	if !hasDotted {
		return root, nil
	}
	return navigate(root, rest)
}

func (c *RuleContext) resolveRoot(head string) (value.Value, error) {
	if v, ok := c.contextVars[head]; ok {
		return v, nil
	}
	if v, ok := c.local[head]; ok {
		return v, nil
	}
	if v, ok := c.outputs[head]; ok {
		return v, nil
	}
	if v, ok := c.resolved[head]; ok {
		return v, nil
	}
	if v, ok := c.definitions[head]; ok {
		return v, nil
	}
	if v, ok := c.parameters[head]; ok {
		return v, nil
	}
	return value.Null(), rrerr.ErrVariableNotFound(head)
}

// navigate walks dotted property accesses on root, including the
// virtual year/month/day properties on date-shaped strings, bounded to
// MaxPropertyDepth.
func navigate(root value.Value, path string) (value.Value, error) {
	cur := root
	depth := 0
	for _, field := range strings.Split(path, ".") {
		depth++
		if depth > constants.MaxPropertyDepth {
			return value.Null(), rrerr.ErrMaxDepthExceeded(depth)
		}
		next, err := step(cur, field)
		if err != nil {
			return value.Null(), err
		}
		cur = next
	}
	return cur, nil
}

func step(cur value.Value, field string) (value.Value, error) {
	if obj, ok := cur.AsObject(); ok {
		v, ok := obj[field]
		if !ok {
			return value.Null(), rrerr.ErrVariableNotFound(field)
		}
		return v, nil
	}
	if s, ok := cur.AsString(); ok {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			switch field {
			case "year":
				return value.Int(int64(t.Year())), nil
			case "month":
				return value.Int(int64(t.Month())), nil
			case "day":
				return value.Int(int64(t.Day())), nil
			}
		}
	}
	return value.Null(), rrerr.ErrTypeMismatch("object or date", cur.Kind().String())
}
