package environment

import (
	"testing"

	"github.com/devraj/rlox/value"
	"github.com/stretchr/testify/assert"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	v, err := env.Get("x")
	assert.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func TestGetUndefinedIsError(t *testing.T) {
	env := New()
	_, err := env.Get("missing")
	assert.Error(t, err)
}

func TestChildSeesParentButNotViceVersa(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number(1))
	child := NewChild(parent)

	v, err := child.Get("x")
	assert.NoError(t, err)
	assert.Equal(t, value.Number(1), v)

	child.Define("y", value.Number(2))
	_, err = parent.Get("y")
	assert.Error(t, err)
}

func TestAssignUpdatesNearestScope(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number(1))
	child := NewChild(parent)

	err := child.Assign("x", value.Number(99))
	assert.NoError(t, err)

	v, _ := parent.Get("x")
	assert.Equal(t, value.Number(99), v)
}

func TestAssignUndeclaredIsError(t *testing.T) {
	env := New()
	err := env.Assign("never_declared", value.Number(1))
	assert.Error(t, err)
}

func TestGetAtAndAssignAt(t *testing.T) {
	global := New()
	outer := NewChild(global)
	outer.Define("x", value.Number(1))
	inner := NewChild(outer)

	v, err := inner.GetAt(1, "x")
	assert.NoError(t, err)
	assert.Equal(t, value.Number(1), v)

	err = inner.AssignAt(1, "x", value.Number(7))
	assert.NoError(t, err)
	v, _ = outer.Get("x")
	assert.Equal(t, value.Number(7), v)
}

func TestSelfReferentialClosure(t *testing.T) {
	// A function's closure environment can be defined into after the
	// closure pointer itself has already been captured elsewhere,
	// which is what recursive local functions rely on.
	global := New()
	closure := NewChild(global)

	captured := closure
	closure.Define("self", value.Number(42))

	v, err := captured.Get("self")
	assert.NoError(t, err)
	assert.Equal(t, value.Number(42), v)
}
