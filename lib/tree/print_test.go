package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	avl := NewAVLTree[int]()
	for _, key := range []int{1, 2, 3} {
		avl.Add(key)
	}
	buf := &bytes.Buffer{}
	require.Equal(t, 2, Print[int](buf, avl.Root()))
	require.Equal(t, ""+
		"       /------+ 3 0/+0\n"+
		"|------+ 2 1/+0\n"+
		"       \\------+ 1 0/+0\n",
		buf.String(),
	)

	llrb := NewLLRBTree[int]()
	for _, key := range []int{1, 2} {
		llrb.Add(key)
	}
	buf.Reset()
	require.Equal(t, 2, Print[int](buf, llrb.Root()))
	require.Equal(t, ""+
		"|------+ 2 B\n"+
		"       \\------+ 1 R\n",
		buf.String(),
	)

	bst := NewBSTree[string]()
	for _, key := range []string{"b", "a", "c", "d"} {
		bst.Add(key)
	}
	buf.Reset()
	require.Equal(t, 3, Print[string](buf, bst.Root()))
	require.Equal(t, ""+
		"              /------+ d\n"+
		"       /------+ c\n"+
		"|------+ b\n"+
		"       \\------+ a\n",
		buf.String(),
	)

	buf.Reset()
	require.Equal(t, 0, Print[int](buf, NewAVLTree[int]().Root()))
	require.Empty(t, buf.String())
}
