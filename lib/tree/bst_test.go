package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBSTree_Degenerate(t *testing.T) {
	tree := NewBSTree[int]()
	for i := 0; i < 100; i++ {
		require.True(t, tree.Add(i))
	}
	require.Equal(t, int32(99), tree.Height())
	require.False(t, tree.IsBalanced())
	// Only the ordering and the size apply to the baseline.
	require.NoError(t, Validate[int](tree))
	require.ErrorIs(t, AVLViolationValidate[int](tree), ErrAVLViolation)

	for i := 99; i >= 0; i-- {
		require.True(t, tree.Remove(i))
		require.Equal(t, int32(max(0, i-1)), tree.Height())
	}
	require.True(t, tree.IsEmpty())
}

func TestBSTree_Remove(t *testing.T) {
	tree := NewBSTree[int]()
	for _, key := range []int{50, 30, 70, 20, 40, 60, 80, 65} {
		require.True(t, tree.Add(key))
	}
	require.Equal(t, int32(3), tree.Height())
	require.True(t, tree.IsBalanced())

	// two children, 60 takes over and its right child moves up
	require.True(t, tree.Remove(50))
	require.Equal(t, []int{60, 30, 20, 40, 70, 65, 80}, collectKeys[int](t, tree, PreOrder))
	// the successor is the right child itself
	require.True(t, tree.Remove(70))
	require.Equal(t, []int{60, 30, 20, 40, 80, 65}, collectKeys[int](t, tree, PreOrder))
	// leaf
	require.True(t, tree.Remove(20))
	require.Equal(t, []int{60, 30, 40, 80, 65}, collectKeys[int](t, tree, PreOrder))
	// one child
	require.True(t, tree.Remove(80))
	require.Equal(t, []int{60, 30, 40, 65}, collectKeys[int](t, tree, PreOrder))
	require.False(t, tree.Remove(20))
	require.Equal(t, int64(4), tree.Len())
	require.NoError(t, Validate[int](tree))
}
