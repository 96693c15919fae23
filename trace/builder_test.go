package trace

import (
	"errors"
	"testing"

	"github.com/MinBZK/regelrecht-mvp-sub000/value"
	"github.com/stretchr/testify/assert"
)

func TestDisabledBuilderIsNoOp(t *testing.T) {
	var b *Builder
	assert.False(t, b.HasTrace())
	done := b.Push("operation", "ADD", nil)
	done()
	b.SetResult(value.Int(1))
	b.SetMessage("irrelevant")
	b.Pop()
	assert.Empty(t, b.Roots())

	b2 := NewBuilder(false)
	assert.False(t, b2.HasTrace())
	done2 := b2.Push("operation", "ADD", nil)
	done2()
	b2.Pop()
	assert.Empty(t, b2.Roots())
}

func TestEnabledBuilderNesting(t *testing.T) {
	b := NewBuilder(true)
	assert.True(t, b.HasTrace())

	doneOuter := b.Push("operation", "ADD", nil)
	doneInner := b.Push("literal", "", nil)
	b.SetResult(value.Int(2))
	doneInner()
	b.Pop()

	b.SetResult(value.Int(3))
	doneOuter()
	b.Pop()

	roots := b.Roots()
	assert.Len(t, roots, 1)
	assert.Equal(t, "operation", roots[0].Kind)
	assert.Len(t, roots[0].Children, 1)
	assert.Equal(t, int64(3), roots[0].Result)
	assert.Equal(t, int64(2), roots[0].Children[0].Result)
}

func TestSetErrRecordsMessage(t *testing.T) {
	b := NewBuilder(true)
	done := b.Push("operation", "DIVIDE", nil)
	b.SetErr(errors.New("division by zero"))
	done()
	b.Pop()

	assert.Equal(t, "division by zero", b.Roots()[0].Err)
}

func TestRenderProducesBoxDrawing(t *testing.T) {
	b := NewBuilder(true)
	done := b.Push("operation", "ADD", nil)
	b.SetResult(value.Int(3))
	done()
	b.Pop()

	out := Render(b.Roots())
	assert.Contains(t, out, "└── operation(ADD)")
	assert.Contains(t, out, "=> 3")
}
