package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalint/validate/diagnostics"
)

func TestBagPushAndResult(t *testing.T) {
	bag := diagnostics.NewBag()
	assert.True(t, bag.IsEmpty())
	assert.NoError(t, bag.ToResult())

	d := diagnostics.NewValidationError("boom", diagnostics.NewSpan(0, 3, diagnostics.FileIDZero))
	bag.Push(d)

	assert.True(t, bag.HasErrors())
	require.Error(t, bag.ToResult())
	assert.Equal(t, []diagnostics.Diagnostic{d}, bag.Errors())
}

func TestBagAppendDrainsOther(t *testing.T) {
	outer := diagnostics.NewBag()
	inner := diagnostics.NewBag()
	inner.Push(diagnostics.NewValidationError("first", diagnostics.EmptySpan()))
	inner.PushWarning(diagnostics.NewValidationError("warn", diagnostics.EmptySpan()))

	outer.Append(inner)

	assert.True(t, inner.IsEmpty())
	assert.Len(t, outer.Errors(), 1)
	assert.Len(t, outer.Warnings(), 1)
}

func TestDiagnosticEqualityIsStructural(t *testing.T) {
	span := diagnostics.NewSpan(5, 9, diagnostics.FileIDZero)
	a := diagnostics.NewFieldValidationError("msg", "Model", "field", span)
	b := diagnostics.NewFieldValidationError("msg", "Model", "field", span)
	c := diagnostics.NewFieldValidationError("msg", "Model", "other", span)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
