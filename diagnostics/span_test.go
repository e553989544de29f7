package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemalint/validate/diagnostics"
)

func TestSpanContains(t *testing.T) {
	s := diagnostics.NewSpan(10, 20, diagnostics.FileIDZero)
	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(20))
	assert.True(t, s.Contains(15))
	assert.False(t, s.Contains(9))
	assert.False(t, s.Contains(21))
}

func TestEmptySpanIsZeroWidth(t *testing.T) {
	s := diagnostics.EmptySpan()
	assert.Equal(t, 0, s.Start)
	assert.Equal(t, 0, s.End)
	assert.Equal(t, diagnostics.FileIDZero, s.FileID)
}
