// Package trace implements C8: an optional execution trace that records
// each evaluation step the evaluator and article engine take, so a law
// author can see exactly how an output was derived. Grounded on the
// runtime/trace package: a Node tree with push/pop framing and a
// duration captured via a start-time closure, adapted to carry
// value.Value results instead of a dynamic `any` and to a capability
// interface (has_trace/trace_push/trace_pop) instead of direct struct
// access, so a disabled trace costs nothing beyond the interface check.
package trace

import (
	"time"

	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

// Node captures a single evaluation step: an operation, its resolved
// operands (in Meta), its result, and any error or message attached
// to it.
type Node struct {
	Kind     string         `json:"kind"`
	Op       string         `json:"op,omitempty"`
	Duration time.Duration  `json:"duration,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
	Children []*Node        `json:"children,omitempty"`
	Result   any            `json:"result,omitempty"`
	Message  string         `json:"message,omitempty"`
	Err      string         `json:"err,omitempty"`

	start time.Time
}

// New starts a node's timer and returns it alongside a Done closure
// that stops it. Caller attaches children and a result before or after
// calling Done; Done only records the elapsed duration.
func New(kind, op string, meta map[string]any) (*Node, func()) {
	n := &Node{Kind: kind, Op: op, Meta: meta, start: time.Now()}
	return n, func() {
		n.Duration = time.Since(n.start)
	}
}

func (n *Node) Attach(children ...*Node) *Node {
	if len(children) == 0 {
		return n
	}
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) SetResult(v value.Value) *Node {
	n.Result = v.Export()
	return n
}

func (n *Node) SetMessage(msg string) *Node {
	n.Message = msg
	return n
}

func (n *Node) SetErr(err error) *Node {
	if err != nil {
		n.Err = err.Error()
	}
	return n
}
