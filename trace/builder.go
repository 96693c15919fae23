package trace

import "github.com/MinBZK/regelrecht-mvp-sub000/value"

// Builder is the capability interface the evaluator and article engine
// hold onto: push/pop a frame around each step, and optionally annotate
// the current top frame. A nil *Builder (or one built via NewBuilder(false))
// is safe to call through — every method becomes a no-op — so callers
// never need to branch on whether tracing is on.
type Builder struct {
	enabled bool
	stack   []*Node
	roots   []*Node
}

// NewBuilder constructs a Builder. enabled=false yields a Builder whose methods
// are all no-ops, at the cost of one bool check per call rather than a
// nil-interface check at every call site.
func NewBuilder(enabled bool) *Builder {
	return &Builder{enabled: enabled}
}

func (b *Builder) HasTrace() bool {
	return b != nil && b.enabled
}

// Push starts a new node, nests it under the current top-of-stack (if
// any), and makes it the new top-of-stack. The returned Done must be
// called to stop its timer; it is safe to call even when tracing is
// disabled.
func (b *Builder) Push(kind, op string, meta map[string]any) func() {
	if !b.HasTrace() {
		return func() {}
	}
	n, done := New(kind, op, meta)
	b.stack = append(b.stack, n)
	return done
}

// Pop closes the current top-of-stack node, attaching it to its parent
// (or to the root list, if it was top-level).
func (b *Builder) Pop() {
	if !b.HasTrace() || len(b.stack) == 0 {
		return
	}
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) == 0 {
		b.roots = append(b.roots, n)
		return
	}
	b.stack[len(b.stack)-1].Attach(n)
}

func (b *Builder) SetResult(v value.Value) {
	if !b.HasTrace() || len(b.stack) == 0 {
		return
	}
	b.stack[len(b.stack)-1].SetResult(v)
}

func (b *Builder) SetMessage(msg string) {
	if !b.HasTrace() || len(b.stack) == 0 {
		return
	}
	b.stack[len(b.stack)-1].SetMessage(msg)
}

func (b *Builder) SetErr(err error) {
	if !b.HasTrace() || len(b.stack) == 0 {
		return
	}
	b.stack[len(b.stack)-1].SetErr(err)
}

// Roots returns the top-level nodes recorded so far. Empty when tracing
// is disabled or nothing has been popped back to the root yet.
func (b *Builder) Roots() []*Node {
	if b == nil {
		return nil
	}
	return b.roots
}
