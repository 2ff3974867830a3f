package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Tree rule validation utilities. They walk the exported node accessors
// only, so they also work on trees built by hand in tests.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

var (
	ErrOrderViolation = errors.New("[tree] order violation")
	ErrSizeViolation  = errors.New("[tree] size violation")
	ErrAVLViolation   = errors.New("[tree] avl violation")
	ErrRedViolation   = errors.New("[tree] llrb red violation")
	ErrBlackViolation = errors.New("[tree] llrb black violation")
)

type keyComparer[K infra.OrderedKey] interface {
	keyCompare(k1, k2 K) int64
}

func violation(sentinel error, format string, args ...any) error {
	return infra.WrapErrorStackWithMessage(sentinel, fmt.Sprintf(format, args...))
}

// Inorder traversal to validate the keys are strictly increasing under the
// tree comparator.
func OrderViolationValidate[K infra.OrderedKey](tree OrderedSet[K]) error {
	aux := tree.Root()
	if aux == nil {
		return nil
	}
	var compare infra.OrderedKeyComparator[K] = infra.AscendingComparator[K]
	if cmp, ok := tree.(keyComparer[K]); ok {
		compare = cmp.keyCompare
	}

	stack := make([]TreeNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	var (
		prev    K
		hasPrev bool
	)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		if infra.IsUnorderedKey(aux.Key()) {
			return violation(ErrOrderViolation, "unordered key %v", aux.Key())
		}
		if hasPrev && compare(prev, aux.Key()) >= 0 {
			return violation(ErrOrderViolation, "key %v is not after %v", aux.Key(), prev)
		}
		prev, hasPrev = aux.Key(), true

		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// Preorder traversal to count the reachable nodes.
func SizeViolationValidate[K infra.OrderedKey](tree OrderedSet[K]) error {
	count := int64(0)
	stack := make([]TreeNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()
	if root := tree.Root(); root != nil {
		stack = append(stack, root)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		count++
		if r := aux.Right(); r != nil {
			stack = append(stack, r)
		}
		if l := aux.Left(); l != nil {
			stack = append(stack, l)
		}
	}
	if count != tree.Len() {
		return violation(ErrSizeViolation, "%d nodes reachable, length %d", count, tree.Len())
	}
	return nil
}

// AVLViolationValidate recomputes every height bottom-up. The cached height
// and balance factor of AVL nodes have to agree with it, and no balance
// factor may exceed 1 in magnitude.
func AVLViolationValidate[K infra.OrderedKey](tree OrderedSet[K]) error {
	_, err := avlHeightOf(tree.Root())
	return err
}

func avlHeightOf[K infra.OrderedKey](node TreeNode[K]) (int32, error) {
	if node == nil {
		return -1, nil
	}
	lh, err := avlHeightOf(node.Left())
	if err != nil {
		return 0, err
	}
	rh, err := avlHeightOf(node.Right())
	if err != nil {
		return 0, err
	}
	height, factor := 1+max(lh, rh), rh-lh
	if n, ok := node.(AVLNode[K]); ok {
		if n.Height() != height {
			return 0, violation(ErrAVLViolation, "node %v cached height %d, actual %d", node.Key(), n.Height(), height)
		}
		if n.BalanceFactor() != factor {
			return 0, violation(ErrAVLViolation, "node %v cached balance factor %d, actual %d", node.Key(), n.BalanceFactor(), factor)
		}
	}
	if factor > 1 || factor < -1 {
		return 0, violation(ErrAVLViolation, "node %v balance factor %+d", node.Key(), factor)
	}
	return height, nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	      [10]
	      /  \
	    <7>  [18]
	    / \   / \
	  [3] [8]...

Red links lean left only, and never two in a row.
*/
func RedViolationValidate[K infra.OrderedKey](tree OrderedSet[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if isRedNode[K](root) {
		return violation(ErrRedViolation, "root %v is red", root.Key())
	}

	stack := make([]TreeNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, root)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if _, ok := aux.(LLRBNode[K]); !ok {
			return violation(ErrRedViolation, "node %v has no color", aux.Key())
		}
		l, r := aux.Left(), aux.Right()
		if isRedNode[K](r) {
			return violation(ErrRedViolation, "node %v has a right-leaning red link", aux.Key())
		}
		if isRedNode[K](aux) && isRedNode[K](l) {
			return violation(ErrRedViolation, "red node %v has a red left child", aux.Key())
		}
		if r != nil {
			stack = append(stack, r)
		}
		if l != nil {
			stack = append(stack, l)
		}
	}
	return nil
}

func isRedNode[K infra.OrderedKey](node TreeNode[K]) bool {
	if node == nil {
		return false
	}
	n, ok := node.(LLRBNode[K])
	return ok && n.Color() == Red
}

// BlackViolationValidate checks every path from the root to an empty link
// crosses the same number of black links.
func BlackViolationValidate[K infra.OrderedKey](tree OrderedSet[K]) error {
	_, err := blackHeightOf(tree.Root())
	return err
}

func blackHeightOf[K infra.OrderedKey](node TreeNode[K]) (int, error) {
	if node == nil {
		return 0, nil
	}
	lh, err := blackHeightOf(node.Left())
	if err != nil {
		return 0, err
	}
	rh, err := blackHeightOf(node.Right())
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, violation(ErrBlackViolation, "node %v black height left %d, right %d", node.Key(), lh, rh)
	}
	if !isRedNode[K](node) {
		lh++
	}
	return lh, nil
}

// Validate runs every validator applicable to the tree variant and returns
// all the failures combined.
func Validate[K infra.OrderedKey](tree OrderedSet[K]) error {
	err := multierr.Combine(
		OrderViolationValidate[K](tree),
		SizeViolationValidate[K](tree),
	)
	switch tree.(type) {
	case *avlTree[K]:
		err = multierr.Append(err, AVLViolationValidate[K](tree))
	case *llrbTree[K]:
		err = multierr.Append(err, multierr.Combine(
			RedViolationValidate[K](tree),
			BlackViolationValidate[K](tree),
		))
	default:
	}
	return err
}
