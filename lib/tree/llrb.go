package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://sedgewick.io/wp-content/themes/sedgewick/papers/2008LLRB.pdf
// https://algs4.cs.princeton.edu/33balanced/RedBlackBST.java
//
// Left-leaning red-black tree, a 2-3 tree in binary form.
// The color of a node is the color of the link from its parent.
// p1. The root is black.
// p2. A red link only connects a node to its left child.
// p3. No red node has a red left child. (a 4-node is illegal)
// p4. Every path from a node to any of its empty links crosses the
//   same number of black links. (perfect black-balance)

type llrbNode[K infra.OrderedKey] struct {
	left  *llrbNode[K]
	right *llrbNode[K]
	key   K
	color RBColor
}

func (node *llrbNode[K]) Key() K {
	return node.key
}

func (node *llrbNode[K]) Left() TreeNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *llrbNode[K]) Right() TreeNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *llrbNode[K]) Color() RBColor {
	return node.color
}

// Empty links are black.
func (node *llrbNode[K]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *llrbNode[K]) minimum() *llrbNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (color RBColor) flip() RBColor {
	if color == Red {
		return Black
	}
	return Red
}

type llrbTree[K infra.OrderedKey] struct {
	treeCore[K]
	root *llrbNode[K]
}

func (tree *llrbTree[K]) Root() TreeNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *llrbTree[K]) Contains(key K) bool {
	return tree.search(tree.Root(), key) != nil
}

// The root is painted black after every insertion. It is the only place
// where the black height grows.
func (tree *llrbTree[K]) Add(key K) bool {
	if infra.IsUnorderedKey(key) || tree.Contains(key) {
		return false
	}
	tree.root = tree.insert(tree.root, key)
	tree.root.color = Black
	tree.modified(1)
	return true
}

func (tree *llrbTree[K]) Remove(key K) bool {
	if infra.IsUnorderedKey(key) || !tree.Contains(key) {
		return false
	}
	if /* 2-node root */ !tree.root.left.isRed() && !tree.root.right.isRed() {
		tree.root.color = Red
	}
	tree.root = tree.remove(tree.root, key)
	if tree.root != nil {
		tree.root.color = Black
	}
	tree.modified(-1)
	return true
}

func (tree *llrbTree[K]) Traverse(order TraversalOrder) (Iterator[K], error) {
	return tree.traverse(order, tree.Root())
}

func (tree *llrbTree[K]) Foreach(action func(idx int64, key K) bool) {
	tree.foreach(tree.Root(), action)
}

// IsBalanced counts the black links down the leftmost spine as the
// reference, then every path to an empty link has to consume it exactly.
func (tree *llrbTree[K]) IsBalanced() bool {
	black := 0
	for aux := tree.root; aux != nil; aux = aux.left {
		if !aux.isRed() {
			black++
		}
	}
	return isBlackBalanced(tree.root, black)
}

func isBlackBalanced[K infra.OrderedKey](node *llrbNode[K], black int) bool {
	if node == nil {
		return black == 0
	}
	if !node.isRed() {
		black--
	}
	return isBlackBalanced(node.left, black) && isBlackBalanced(node.right, black)
}

func (tree *llrbTree[K]) Release() {
	tree.root = nil
	tree.reset()
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

The new parent takes over the color of X, X is painted red.

	  {X}                       {S}
	  / \     rotateLeft(X)     / \
	[L] <S>   ============>   <X> [Sd]
	    / \                   / \
	 [Sc] [Sd]              [L] [Sc]
*/
func (tree *llrbTree[K]) rotateLeft(x *llrbNode[K]) *llrbNode[K] {
	s := x.right
	x.right, s.left = s.left, x
	s.color = x.color
	x.color = Red
	tree.stats.RecordRotation(leftward)
	return s
}

/*
	    {X}                       {S}
	    / \     rotateRight(X)    / \
	  <S> [R]   ============>  [Sd] <X>
	  / \                           / \
	[Sd] [Sc]                    [Sc] [R]
*/
func (tree *llrbTree[K]) rotateRight(x *llrbNode[K]) *llrbNode[K] {
	s := x.left
	x.left, s.right = s.right, x
	s.color = x.color
	x.color = Red
	tree.stats.RecordRotation(rightward)
	return s
}

/*
Split a temporary 4-node, or fuse a 2-node with its two children while
removing.

	  [X]             <X>
	  / \    ====>    / \
	<L> <R>         [L] [R]
*/
func (tree *llrbTree[K]) flipColor(x *llrbNode[K]) {
	x.color = x.color.flip()
	x.left.color = x.left.color.flip()
	x.right.color = x.right.color.flip()
	tree.stats.RecordColorFlip()
}

/*
b1: A right-leaning red link, rotate left.

	  [X]             [R]
	  / \             /
	[L] <R>  ====>  <X>
	                /
	              [L]

b2: Two red links in a row on the left, rotate right.

	      [X]
	      /             <L>
	    <L>    ====>    / \
	    /             <LL> <X>
	  <LL>

b3: Both children are red, flip colors to pass the middle key up.
*/
func (tree *llrbTree[K]) balance(node *llrbNode[K]) *llrbNode[K] {
	if /* b1 */ node.right.isRed() && !node.left.isRed() {
		node = tree.rotateLeft(node)
	}
	if /* b2 */ node.left.isRed() && node.left.left.isRed() {
		node = tree.rotateRight(node)
	}
	if /* b3 */ node.left.isRed() && node.right.isRed() {
		tree.flipColor(node)
	}
	return node
}

// New nodes are red. A black one would break the black-balance at once.
func (tree *llrbTree[K]) insert(node *llrbNode[K], key K) *llrbNode[K] {
	if node == nil {
		return &llrbNode[K]{
			key:   key,
			color: Red,
		}
	}
	if tree.keyCompare(key, node.key) < 0 {
		node.left = tree.insert(node.left, key)
	} else {
		node.right = tree.insert(node.right, key)
	}
	return tree.balance(node)
}

/*
Borrow from the right sibling so that the left child is not a 2-node.
Assume the node is red and both node.left and node.left.left are black.

	     <X>                       [X]
	     / \      flipColor(X)     / \
	   [L] [R]    ==========>    <L> <R>
	       /                         /
	     <Rl>                      <Rl>

If R is a 3-node (Rl is red), one key moves from the right to the left.

	     [X]                              [Rl]                  <Rl>
	     / \     rotateRight(R)           /  \    flipColor     /  \
	   <L> <R>   rotateLeft(X)          <X>  <R>  =======>    [X]  [R]
	       /     ============>          /                     /
	     <Rl>                         <L>                   <L>
*/
func (tree *llrbTree[K]) moveRedLeft(node *llrbNode[K]) *llrbNode[K] {
	tree.stats.RecordBorrow(leftward)
	tree.flipColor(node)
	if node.right.left.isRed() {
		node.right = tree.rotateRight(node.right)
		node = tree.rotateLeft(node)
		tree.flipColor(node)
	}
	return node
}

// Mirror of moveRedLeft, borrow from the left sibling so that the right
// child is not a 2-node.
func (tree *llrbTree[K]) moveRedRight(node *llrbNode[K]) *llrbNode[K] {
	tree.stats.RecordBorrow(rightward)
	tree.flipColor(node)
	if node.left.left.isRed() {
		node = tree.rotateRight(node)
		tree.flipColor(node)
	}
	return node
}

// A node without a left child has no right child either.
func (tree *llrbTree[K]) removeMin(node *llrbNode[K]) *llrbNode[K] {
	if node.left == nil {
		return nil
	}
	if !node.left.isRed() && !node.left.left.isRed() {
		node = tree.moveRedLeft(node)
	}
	node.left = tree.removeMin(node.left)
	return tree.balance(node)
}

/*
The key must exist. On the way down the current node is never a 2-node,
so the key is removed from a 3-node or a 4-node at the bottom.

rm1: Go left, if the left child is a 2-node, borrow for it.

rm2: Go right or hit, lean the left red link to the right first.

rm3: Hit at the bottom, remove directly.

rm4: Go right or hit, if the right child is a 2-node, borrow for it.

rm5: Hit in the middle, replace the key with the successor and remove the
successor from the right subtree.
*/
func (tree *llrbTree[K]) remove(node *llrbNode[K], key K) *llrbNode[K] {
	if tree.keyCompare(key, node.key) < 0 {
		if /* rm1 */ !node.left.isRed() && !node.left.left.isRed() {
			node = tree.moveRedLeft(node)
		}
		node.left = tree.remove(node.left, key)
	} else {
		if /* rm2 */ node.left.isRed() {
			node = tree.rotateRight(node)
		}
		if /* rm3 */ tree.keyCompare(key, node.key) == 0 && node.right == nil {
			return nil
		}
		if /* rm4 */ !node.right.isRed() && !node.right.left.isRed() {
			node = tree.moveRedRight(node)
		}
		if /* rm5 */ tree.keyCompare(key, node.key) == 0 {
			node.key = node.right.minimum().key
			node.right = tree.removeMin(node.right)
		} else {
			node.right = tree.remove(node.right, key)
		}
	}
	return tree.balance(node)
}

func NewLLRBTree[K infra.OrderedKey](opts ...TreeOption[K]) LLRBTree[K] {
	return &llrbTree[K]{
		treeCore: newTreeCore[K]("llrb", opts...),
	}
}
