package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedKeyComparator(t *testing.T) {
	var asc OrderedKeyComparator[int] = AscendingComparator[int]
	assert.Equal(t, int64(-1), asc(1, 2))
	assert.Equal(t, int64(0), asc(2, 2))
	assert.Equal(t, int64(1), asc(3, 2))

	var desc OrderedKeyComparator[string] = DescendingComparator[string]
	assert.Equal(t, int64(1), desc("a", "b"))
	assert.Equal(t, int64(0), desc("b", "b"))
	assert.Equal(t, int64(-1), desc("c", "b"))
}

func TestIsUnorderedKey(t *testing.T) {
	assert.True(t, IsUnorderedKey(math.NaN()))
	assert.True(t, IsUnorderedKey(float32(math.NaN())))
	assert.False(t, IsUnorderedKey(math.Inf(1)))
	assert.False(t, IsUnorderedKey(0.0))
	assert.False(t, IsUnorderedKey(int8(-1)))
	assert.False(t, IsUnorderedKey(""))
}
