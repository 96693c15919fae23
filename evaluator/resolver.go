// Package evaluator implements C3: the pure operation evaluator. It
// evaluates an ActionValue (literal, "$var" reference, or nested
// operation) against a capability interface rather than against a
// concrete RuleContext type, mirroring sentrie's eval_infix.go
// dispatch-with-trace shape and operations.rs's ValueResolver trait —
// adapted from sentrie's `any`-typed infix dispatch to the closed
// Operation enum over value.Value, and from the trait's resolve-only
// contract to also carrying the trace capability the same call
// threads through.
package evaluator

import "github.com/MinBZK/regelrecht-mvp-sub000/value"

// Resolver is the minimal capability the evaluator needs from its
// caller: resolving a (possibly dotted) "$name" reference to a Value.
// rulectx.RuleContext satisfies this.
type Resolver interface {
	Resolve(name string) (value.Value, error)
}
