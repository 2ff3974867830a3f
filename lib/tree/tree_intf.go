package tree

import (
	"errors"

	"github.com/benz9527/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=TraversalOrder
type TraversalOrder uint8

const (
	PreOrder TraversalOrder = iota
	InOrder
)

var (
	ErrConcurrentModification = errors.New("[tree] concurrent structural modification")
	ErrIteratorExhausted      = errors.New("[tree] iterator has no more keys")
	ErrUnknownTraversalOrder  = errors.New("[tree] unknown traversal order")
)

type TreeNode[K infra.OrderedKey] interface {
	Key() K
	Left() TreeNode[K]
	Right() TreeNode[K]
}

type AVLNode[K infra.OrderedKey] interface {
	TreeNode[K]
	// Height is the number of edges on the longest path down to a leaf.
	Height() int32
	// BalanceFactor is height(right) - height(left).
	BalanceFactor() int32
}

type LLRBNode[K infra.OrderedKey] interface {
	TreeNode[K]
	Color() RBColor
}

// Iterator is a fail-fast, non-restartable walk over the keys.
// Once the tree has been mutated after the iterator was created, both
// methods return ErrConcurrentModification. The detection is best-effort,
// it is not a lock.
type Iterator[K infra.OrderedKey] interface {
	HasNext() (bool, error)
	Next() (K, error)
}

// OrderedSet is the container contract shared by every tree variant.
// It is not safe for concurrent use.
type OrderedSet[K infra.OrderedKey] interface {
	Len() int64
	IsEmpty() bool
	Contains(key K) bool
	// Add returns false without any mutation if the key exists already
	// or the key is unordered (NaN).
	Add(key K) bool
	// Remove returns false without any mutation if the key is absent.
	Remove(key K) bool
	Traverse(order TraversalOrder) (Iterator[K], error)
	Foreach(action func(idx int64, key K) bool)
	IsBalanced() bool
	Root() TreeNode[K]
	Release()
}

type AVLTree[K infra.OrderedKey] interface {
	OrderedSet[K]
	// Height returns 0 for both an empty tree and a single node tree.
	Height() int32
}

type LLRBTree[K infra.OrderedKey] interface {
	OrderedSet[K]
}

// BSTree is the unbalanced baseline. It shares the contract but never
// rebalances.
type BSTree[K infra.OrderedKey] interface {
	OrderedSet[K]
	Height() int32
}
