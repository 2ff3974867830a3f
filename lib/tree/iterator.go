package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// Both iterators capture the tree version on creation. Comparing it with
// the live version on every step is a cooperative check, the walk does not
// lock the tree.

type preOrderIterator[K infra.OrderedKey] struct {
	tree            *treeCore[K]
	expectedVersion uint64
	stack           []TreeNode[K]
}

func newPreOrderIterator[K infra.OrderedKey](tree *treeCore[K], root TreeNode[K]) *preOrderIterator[K] {
	it := &preOrderIterator[K]{
		tree:            tree,
		expectedVersion: tree.version,
		stack:           make([]TreeNode[K], 0, 32),
	}
	if root != nil {
		it.stack = append(it.stack, root)
	}
	return it
}

func (it *preOrderIterator[K]) HasNext() (bool, error) {
	if it.tree.version != it.expectedVersion {
		return false, ErrConcurrentModification
	}
	return len(it.stack) > 0, nil
}

func (it *preOrderIterator[K]) Next() (key K, err error) {
	if it.tree.version != it.expectedVersion {
		return key, ErrConcurrentModification
	}
	size := len(it.stack)
	if size <= 0 {
		return key, ErrIteratorExhausted
	}
	node := it.stack[size-1]
	it.stack[size-1] = nil
	it.stack = it.stack[:size-1]
	// Right first, so the left one will be popped first.
	if right := node.Right(); right != nil {
		it.stack = append(it.stack, right)
	}
	if left := node.Left(); left != nil {
		it.stack = append(it.stack, left)
	}
	return node.Key(), nil
}

type inOrderIterator[K infra.OrderedKey] struct {
	tree            *treeCore[K]
	expectedVersion uint64
	stack           []TreeNode[K]
	// rover is the latest node pushed whose left spine has not been
	// pushed yet.
	rover TreeNode[K]
}

func newInOrderIterator[K infra.OrderedKey](tree *treeCore[K], root TreeNode[K]) *inOrderIterator[K] {
	it := &inOrderIterator[K]{
		tree:            tree,
		expectedVersion: tree.version,
		stack:           make([]TreeNode[K], 0, 32),
		rover:           root,
	}
	if root != nil {
		it.stack = append(it.stack, root)
	}
	return it
}

func (it *inOrderIterator[K]) HasNext() (bool, error) {
	if it.tree.version != it.expectedVersion {
		return false, ErrConcurrentModification
	}
	return len(it.stack) > 0, nil
}

func (it *inOrderIterator[K]) Next() (key K, err error) {
	if it.tree.version != it.expectedVersion {
		return key, ErrConcurrentModification
	}
	if len(it.stack) <= 0 {
		return key, ErrIteratorExhausted
	}

	for it.rover != nil {
		left := it.rover.Left()
		if left == nil {
			break
		}
		it.stack = append(it.stack, left)
		it.rover = left
	}

	size := len(it.stack)
	node := it.stack[size-1]
	it.stack[size-1] = nil
	it.stack = it.stack[:size-1]

	if right := node.Right(); right != nil {
		it.stack = append(it.stack, right)
		it.rover = right
	}
	return node.Key(), nil
}
