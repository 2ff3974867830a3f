package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// treeCore holds the state shared by every variant. Each variant embeds it
// next to its own typed root.
type treeCore[K infra.OrderedKey] struct {
	count int64
	// version increases on every structural modification and lets the
	// iterators fail fast.
	version        uint64
	isDesc         bool
	isStatsEnabled bool
	statsName      string
	stats          *treeStats
}

func (tree *treeCore[K]) keyCompare(k1, k2 K) int64 {
	if k1 == k2 {
		return 0
	} else if k1 < k2 {
		if !tree.isDesc {
			return -1
		}
		return 1
	} else {
		if !tree.isDesc {
			return 1
		}
		return -1
	}
}

func (tree *treeCore[K]) Len() int64 {
	return tree.count
}

func (tree *treeCore[K]) IsEmpty() bool {
	return tree.count == 0
}

func (tree *treeCore[K]) modified(delta int64) {
	tree.count += delta
	tree.version++
	tree.stats.RecordKeyCount(delta)
}

func (tree *treeCore[K]) reset() {
	tree.stats.RecordKeyCount(-tree.count)
	tree.count = 0
	tree.version++
}

func (tree *treeCore[K]) search(root TreeNode[K], key K) TreeNode[K] {
	if infra.IsUnorderedKey(key) {
		return nil
	}
	for aux := root; aux != nil; {
		res := tree.keyCompare(key, aux.Key())
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.Right()
		} else {
			aux = aux.Left()
		}
	}
	return nil
}

func (tree *treeCore[K]) traverse(order TraversalOrder, root TreeNode[K]) (Iterator[K], error) {
	switch order {
	case PreOrder:
		return newPreOrderIterator[K](tree, root), nil
	case InOrder:
		return newInOrderIterator[K](tree, root), nil
	default:
	}
	return nil, ErrUnknownTraversalOrder
}

// Inorder traversal to implement the DFS.
func (tree *treeCore[K]) foreach(root TreeNode[K], action func(idx int64, key K) bool) {
	if root == nil || action == nil {
		return
	}

	stack := make([]TreeNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for aux := root; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		if !action(idx, aux.Key()) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
}

type TreeOption[K infra.OrderedKey] func(*treeCore[K])

func WithTreeDesc[K infra.OrderedKey]() TreeOption[K] {
	return func(tree *treeCore[K]) {
		tree.isDesc = true
	}
}

// WithTreeStats records rotations, color flips, borrows and the key count
// through the global otel meter provider.
func WithTreeStats[K infra.OrderedKey](name string) TreeOption[K] {
	return func(tree *treeCore[K]) {
		tree.isStatsEnabled = true
		tree.statsName = name
	}
}

func newTreeCore[K infra.OrderedKey](kind string, opts ...TreeOption[K]) treeCore[K] {
	core := treeCore[K]{}
	for _, o := range opts {
		o(&core)
	}
	if core.isStatsEnabled {
		core.stats = newTreeStats(kind, core.statsName)
	}
	return core
}
