package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// AVL tree, a height-balanced binary search tree.
// For every node, |height(left) - height(right)| <= 1.
//
// Height conventions:
//   - Internal, an empty subtree is -1 and a leaf is 0. The cached node
//     height and balance factor are always recomputed with it.
//   - External, Height() of an empty tree is 0, same as a single node tree.

type avlNode[K infra.OrderedKey] struct {
	left   *avlNode[K]
	right  *avlNode[K]
	key    K
	height int32
	factor int32
}

func (node *avlNode[K]) Key() K {
	return node.key
}

func (node *avlNode[K]) Left() TreeNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *avlNode[K]) Right() TreeNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *avlNode[K]) Height() int32 {
	return node.height
}

func (node *avlNode[K]) BalanceFactor() int32 {
	return node.factor
}

func (node *avlNode[K]) subtreeHeight() int32 {
	if node == nil {
		return -1
	}
	return node.height
}

func (node *avlNode[K]) update() {
	lh, rh := node.left.subtreeHeight(), node.right.subtreeHeight()
	node.height = 1 + max(lh, rh)
	node.factor = rh - lh
}

func (node *avlNode[K]) minimum() *avlNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

type avlTree[K infra.OrderedKey] struct {
	treeCore[K]
	root *avlNode[K]
}

func (tree *avlTree[K]) Root() TreeNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *avlTree[K]) Height() int32 {
	if tree.root == nil {
		return 0
	}
	return tree.root.height
}

func (tree *avlTree[K]) Contains(key K) bool {
	return tree.search(tree.Root(), key) != nil
}

func (tree *avlTree[K]) Add(key K) bool {
	if infra.IsUnorderedKey(key) || tree.Contains(key) {
		return false
	}
	tree.root = tree.insert(tree.root, key)
	tree.modified(1)
	return true
}

func (tree *avlTree[K]) Remove(key K) bool {
	if infra.IsUnorderedKey(key) || !tree.Contains(key) {
		return false
	}
	tree.root = tree.remove(tree.root, key)
	tree.modified(-1)
	return true
}

func (tree *avlTree[K]) Traverse(order TraversalOrder) (Iterator[K], error) {
	return tree.traverse(order, tree.Root())
}

func (tree *avlTree[K]) Foreach(action func(idx int64, key K) bool) {
	tree.foreach(tree.Root(), action)
}

func (tree *avlTree[K]) IsBalanced() bool {
	return isAVLBalanced(tree.root)
}

func isAVLBalanced[K infra.OrderedKey](node *avlNode[K]) bool {
	if node == nil {
		return true
	}
	if node.factor > 1 || node.factor < -1 {
		return false
	}
	return isAVLBalanced(node.left) && isAVLBalanced(node.right)
}

func (tree *avlTree[K]) Release() {
	tree.root = nil
	tree.reset()
}

/*
	  |                         |
	  X                         S
	 / \     rotateLeft(X)     / \
	L   S    ============>    X   Sd
	   / \                   / \
	 Sc   Sd                L   Sc
*/
func (tree *avlTree[K]) rotateLeft(x *avlNode[K]) *avlNode[K] {
	s := x.right
	x.right, s.left = s.left, x
	// Child first, the parent height depends on it.
	x.update()
	s.update()
	tree.stats.RecordRotation(leftward)
	return s
}

/*
	    |                         |
	    X                         S
	   / \     rotateRight(X)    / \
	  S   R    ============>    Sd  X
	 / \                           / \
	Sd  Sc                        Sc  R
*/
func (tree *avlTree[K]) rotateRight(x *avlNode[K]) *avlNode[K] {
	s := x.left
	x.left, s.right = s.right, x
	x.update()
	s.update()
	tree.stats.RecordRotation(rightward)
	return s
}

/*
LL: left child is left-heavy or even, single right rotation.

	    C            B
	   /            / \
	  B     ==>    A   C
	 /
	A

LR: left child is right-heavy, rotate it left first.

	  C            C            B
	 /            /            / \
	A     ==>    B     ==>    A   C
	 \          /
	  B        A

RR and RL are the mirrors.
*/
func (tree *avlTree[K]) balance(node *avlNode[K]) *avlNode[K] {
	switch node.factor {
	case -2:
		if /* LL */ node.left.factor <= 0 {
			return tree.rotateRight(node)
		}
		/* LR */
		node.left = tree.rotateLeft(node.left)
		return tree.rotateRight(node)
	case 2:
		if /* RR */ node.right.factor >= 0 {
			return tree.rotateLeft(node)
		}
		/* RL */
		node.right = tree.rotateRight(node.right)
		return tree.rotateLeft(node)
	default:
	}
	return node
}

func (tree *avlTree[K]) insert(node *avlNode[K], key K) *avlNode[K] {
	if node == nil {
		return &avlNode[K]{
			key: key,
		}
	}
	if tree.keyCompare(key, node.key) < 0 {
		node.left = tree.insert(node.left, key)
	} else {
		node.right = tree.insert(node.right, key)
	}
	node.update()
	return tree.balance(node)
}

// A node with at most one child is replaced by that child. Otherwise, the
// key of the in-order successor is copied in and the successor is removed
// from the right subtree instead.
func (tree *avlTree[K]) remove(node *avlNode[K], key K) *avlNode[K] {
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
	node.update()
	return tree.balance(node)
}

func NewAVLTree[K infra.OrderedKey](opts ...TreeOption[K]) AVLTree[K] {
	return &avlTree[K]{
		treeCore: newTreeCore[K]("avl", opts...),
	}
}
