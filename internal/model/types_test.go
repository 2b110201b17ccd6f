package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMetadata(t *testing.T) {
	existing := map[string]interface{}{"a": 1, "keep": "yes"}

	out := MergeMetadata(existing, map[string]interface{}{"b": 2})
	assert.Equal(t, map[string]interface{}{"a": 1, "keep": "yes", "b": 2}, out)

	out = MergeMetadata(out, map[string]interface{}{"a": 3})
	assert.Equal(t, 3, out["a"], "provided keys overwrite")
	assert.Equal(t, "yes", out["keep"], "absent keys are preserved")

	// Inputs are not mutated.
	assert.Equal(t, 1, existing["a"])
	_, ok := existing["b"]
	assert.False(t, ok)

	out = MergeMetadata(nil, map[string]interface{}{"x": 1})
	assert.Equal(t, map[string]interface{}{"x": 1}, out)

	out = MergeMetadata(map[string]interface{}{"x": 1}, nil)
	assert.Equal(t, map[string]interface{}{"x": 1}, out)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusPublished))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestEventUpdate_IsZero(t *testing.T) {
	assert.True(t, EventUpdate{}.IsZero())

	n := 5
	assert.False(t, EventUpdate{Minutes: &n}.IsZero())
	assert.False(t, EventUpdate{Metadata: map[string]interface{}{}}.IsZero(),
		"an explicit empty metadata map still counts as a field")
}
