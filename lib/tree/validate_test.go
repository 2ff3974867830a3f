package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

func TestValidate_AVLCorrupted(t *testing.T) {
	tree := NewAVLTree[int]()
	for i := 1; i <= 7; i++ {
		require.True(t, tree.Add(i))
	}
	require.NoError(t, Validate[int](tree))

	avl := tree.(*avlTree[int])
	avl.root.left.left.key = 9
	avl.count = 8
	avl.root.right.height = 4
	err := Validate[int](tree)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 3)
	require.ErrorIs(t, err, ErrOrderViolation)
	require.ErrorIs(t, err, ErrSizeViolation)
	require.ErrorIs(t, err, ErrAVLViolation)
	require.NotErrorIs(t, err, ErrRedViolation)

	var es infra.ErrorStack
	require.True(t, errors.As(err, &es))
	require.NotEmpty(t, es.Frames())
	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, es.MarshalLogObject(enc))
	require.Contains(t, enc.Fields["error"], "[tree]")
}

func TestValidate_AVLUnbalanced(t *testing.T) {
	tree := NewAVLTree[int]()
	avl := tree.(*avlTree[int])
	// 1 -> 2 -> 3 chain with consistent cached heights.
	leaf := &avlNode[int]{key: 3}
	mid := &avlNode[int]{key: 2, right: leaf}
	mid.update()
	avl.root = &avlNode[int]{key: 1, right: mid}
	avl.root.update()
	avl.count = 3

	require.False(t, tree.IsBalanced())
	err := AVLViolationValidate[int](tree)
	require.ErrorIs(t, err, ErrAVLViolation)
	require.Contains(t, err.Error(), "balance factor +2")
	require.NoError(t, OrderViolationValidate[int](tree))
	require.NoError(t, SizeViolationValidate[int](tree))
}

func TestValidate_LLRBRedViolation(t *testing.T) {
	type testcase struct {
		name    string
		root    *llrbNode[int]
		message string
	}
	testcases := []testcase{
		{
			name: "red root",
			root: &llrbNode[int]{
				key:   2,
				color: Red,
			},
			message: "root 2 is red",
		},
		{
			name: "right-leaning",
			root: &llrbNode[int]{
				key:   2,
				color: Black,
				left:  &llrbNode[int]{key: 1, color: Black},
				right: &llrbNode[int]{key: 3, color: Red},
			},
			message: "right-leaning",
		},
		{
			name: "double red",
			root: &llrbNode[int]{
				key:   3,
				color: Black,
				left: &llrbNode[int]{
					key:   2,
					color: Red,
					left:  &llrbNode[int]{key: 1, color: Red},
				},
			},
			message: "red node 2 has a red left child",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewLLRBTree[int]()
			tree.(*llrbTree[int]).root = tc.root
			err := RedViolationValidate[int](tree)
			require.ErrorIs(tt, err, ErrRedViolation)
			require.Contains(tt, err.Error(), tc.message)
		})
	}
}

func TestValidate_LLRBBlackViolation(t *testing.T) {
	tree := NewLLRBTree[int]()
	llrb := tree.(*llrbTree[int])
	llrb.root = &llrbNode[int]{
		key:   2,
		color: Black,
		left:  &llrbNode[int]{key: 1, color: Black},
	}
	llrb.count = 2

	require.False(t, tree.IsBalanced())
	require.NoError(t, RedViolationValidate[int](tree))
	err := Validate[int](tree)
	require.ErrorIs(t, err, ErrBlackViolation)
	require.Len(t, multierr.Errors(err), 1)
}

func TestValidate_ColorlessNodes(t *testing.T) {
	tree := NewBSTree[int]()
	tree.Add(2)
	tree.Add(1)
	require.ErrorIs(t, RedViolationValidate[int](tree), ErrRedViolation)
	// Colorless nodes count as black.
	require.ErrorIs(t, BlackViolationValidate[int](tree), ErrBlackViolation)
}
