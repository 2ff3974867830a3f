package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// Unbalanced binary search tree. The baseline the balanced variants are
// measured against, its height degrades to n-1 for sorted input.

type bstNode[K infra.OrderedKey] struct {
	left  *bstNode[K]
	right *bstNode[K]
	key   K
}

func (node *bstNode[K]) Key() K {
	return node.key
}

func (node *bstNode[K]) Left() TreeNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *bstNode[K]) Right() TreeNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *bstNode[K]) minimum() *bstNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

// Same convention as the AVL internal height, empty is -1.
func (node *bstNode[K]) subtreeHeight() int32 {
	if node == nil {
		return -1
	}
	return 1 + max(node.left.subtreeHeight(), node.right.subtreeHeight())
}

type bsTree[K infra.OrderedKey] struct {
	treeCore[K]
	root *bstNode[K]
}

func (tree *bsTree[K]) Root() TreeNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *bsTree[K]) Height() int32 {
	return max(0, tree.root.subtreeHeight())
}

func (tree *bsTree[K]) Contains(key K) bool {
	return tree.search(tree.Root(), key) != nil
}

func (tree *bsTree[K]) Add(key K) bool {
	if infra.IsUnorderedKey(key) || tree.Contains(key) {
		return false
	}
	tree.root = tree.insert(tree.root, key)
	tree.modified(1)
	return true
}

func (tree *bsTree[K]) Remove(key K) bool {
	if infra.IsUnorderedKey(key) || !tree.Contains(key) {
		return false
	}
	tree.root = tree.remove(tree.root, key)
	tree.modified(-1)
	return true
}

func (tree *bsTree[K]) Traverse(order TraversalOrder) (Iterator[K], error) {
	return tree.traverse(order, tree.Root())
}

func (tree *bsTree[K]) Foreach(action func(idx int64, key K) bool) {
	tree.foreach(tree.Root(), action)
}

// IsBalanced is diagnostic only, nothing keeps the baseline balanced.
func (tree *bsTree[K]) IsBalanced() bool {
	_, ok := bstBalancedHeight(tree.root)
	return ok
}

func bstBalancedHeight[K infra.OrderedKey](node *bstNode[K]) (int32, bool) {
	if node == nil {
		return -1, true
	}
	lh, ok := bstBalancedHeight(node.left)
	if !ok {
		return 0, false
	}
	rh, ok := bstBalancedHeight(node.right)
	if !ok || lh-rh > 1 || rh-lh > 1 {
		return 0, false
	}
	return 1 + max(lh, rh), true
}

func (tree *bsTree[K]) Release() {
	tree.root = nil
	tree.reset()
}

func (tree *bsTree[K]) insert(node *bstNode[K], key K) *bstNode[K] {
	if node == nil {
		return &bstNode[K]{
			key: key,
		}
	}
	if tree.keyCompare(key, node.key) < 0 {
		node.left = tree.insert(node.left, key)
	} else {
		node.right = tree.insert(node.right, key)
	}
	return node
}

func (tree *bsTree[K]) remove(node *bstNode[K], key K) *bstNode[K] {
	if node == nil {
		return nil
	}
	res := tree.keyCompare(key, node.key)
	if res < 0 {
		node.left = tree.remove(node.left, key)
	} else if res > 0 {
		node.right = tree.remove(node.right, key)
	} else {
		if node.left == nil {
			return node.right
		} else if node.right == nil {
			return node.left
		}
		succ := node.right.minimum()
		node.key = succ.key
		node.right = tree.remove(node.right, succ.key)
	}
	return node
}

func NewBSTree[K infra.OrderedKey](opts ...TreeOption[K]) BSTree[K] {
	return &bsTree[K]{
		treeCore: newTreeCore[K]("bst", opts...),
	}
}
