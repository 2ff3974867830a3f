package tree

import (
	"math"
	randv2 "math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

type avlCheckData struct {
	key    int
	height int32
	factor int32
}

func avlPreOrderNodes(tree AVLTree[int]) []avlCheckData {
	res := make([]avlCheckData, 0, tree.Len())
	var walk func(node TreeNode[int])
	walk = func(node TreeNode[int]) {
		if node == nil {
			return
		}
		n := node.(AVLNode[int])
		res = append(res, avlCheckData{n.Key(), n.Height(), n.BalanceFactor()})
		walk(node.Left())
		walk(node.Right())
	}
	walk(tree.Root())
	return res
}

func collectKeys[K infra.OrderedKey](t *testing.T, set OrderedSet[K], order TraversalOrder) []K {
	it, err := set.Traverse(order)
	require.NoError(t, err)
	keys := make([]K, 0, set.Len())
	for {
		ok, err := it.HasNext()
		require.NoError(t, err)
		if !ok {
			break
		}
		key, err := it.Next()
		require.NoError(t, err)
		keys = append(keys, key)
	}
	return keys
}

func TestAVLTree_Height(t *testing.T) {
	tree := NewAVLTree[int]()
	require.Equal(t, int32(0), tree.Height())
	tree.Add(9)
	require.Equal(t, int32(0), tree.Height())
	for _, key := range []int{1, 10, 0, 5, 11, -1, 2, 6} {
		require.True(t, tree.Add(key))
	}
	require.Equal(t, int32(3), tree.Height())
	require.True(t, tree.IsBalanced())
	require.Equal(t, int64(9), tree.Len())
	require.Equal(t, []avlCheckData{
		{9, 3, -1},
		{1, 2, 0},
		{0, 1, -1},
		{-1, 0, 0},
		{5, 1, 0},
		{2, 0, 0},
		{6, 0, 0},
		{10, 1, 1},
		{11, 0, 0},
	}, avlPreOrderNodes(tree))
	require.NoError(t, Validate[int](tree))

	// 6 takes over the key of 5
	require.True(t, tree.Remove(5))
	require.Equal(t, []avlCheckData{
		{9, 3, -1},
		{1, 2, 0},
		{0, 1, -1},
		{-1, 0, 0},
		{6, 1, -1},
		{2, 0, 0},
		{10, 1, 1},
		{11, 0, 0},
	}, avlPreOrderNodes(tree))
	require.NoError(t, Validate[int](tree))

	// 10 takes over the root key, then the left-heavy root rotates right
	require.True(t, tree.Remove(9))
	require.Equal(t, []avlCheckData{
		{1, 3, 1},
		{0, 1, -1},
		{-1, 0, 0},
		{10, 2, -1},
		{6, 1, -1},
		{2, 0, 0},
		{11, 0, 0},
	}, avlPreOrderNodes(tree))
	require.NoError(t, Validate[int](tree))
	require.Equal(t, []int{-1, 0, 1, 2, 6, 10, 11}, collectKeys[int](t, tree, InOrder))
}

func TestAVLTree_Rotations(t *testing.T) {
	testcases := []struct {
		name     string
		keys     []int
		expected []int
	}{
		{
			name:     "RR",
			keys:     []int{1, 2, 3},
			expected: []int{2, 1, 3},
		},
		{
			name:     "LL",
			keys:     []int{3, 2, 1},
			expected: []int{2, 1, 3},
		},
		{
			name:     "LR",
			keys:     []int{3, 1, 2},
			expected: []int{2, 1, 3},
		},
		{
			name:     "RL",
			keys:     []int{1, 3, 2},
			expected: []int{2, 1, 3},
		},
		{
			name:     "RR and RL",
			keys:     []int{9, 20, 30, 40, 50, 10},
			expected: []int{20, 9, 10, 40, 30, 50},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewAVLTree[int]()
			for _, key := range tc.keys {
				require.True(tt, tree.Add(key))
				require.True(tt, tree.IsBalanced())
			}
			require.Equal(tt, tc.expected, collectKeys[int](tt, tree, PreOrder))
			require.NoError(tt, Validate[int](tree))
		})
	}
}

func TestAVLTree_RemoveRebalance(t *testing.T) {
	tree := NewAVLTree[int]()
	for i := 1; i <= 7; i++ {
		require.True(t, tree.Add(i))
	}
	require.Equal(t, []int{4, 2, 1, 3, 6, 5, 7}, collectKeys[int](t, tree, PreOrder))
	require.Equal(t, int32(2), tree.Height())

	require.True(t, tree.Remove(4))
	require.Equal(t, []int{5, 2, 1, 3, 6, 7}, collectKeys[int](t, tree, PreOrder))
	require.True(t, tree.Remove(1))
	require.True(t, tree.Remove(3))
	require.Equal(t, []int{5, 2, 6, 7}, collectKeys[int](t, tree, PreOrder))

	// right-right heavy at the root after removing its only left key
	require.True(t, tree.Remove(2))
	require.Equal(t, []int{6, 5, 7}, collectKeys[int](t, tree, PreOrder))
	require.Equal(t, int32(1), tree.Height())
	require.True(t, tree.IsBalanced())
	require.NoError(t, Validate[int](tree))

	require.False(t, tree.Remove(2))
	require.Equal(t, int64(3), tree.Len())
	for _, key := range []int{6, 5, 7} {
		require.True(t, tree.Remove(key))
		require.NoError(t, Validate[int](tree))
	}
	require.True(t, tree.IsEmpty())
	require.Nil(t, tree.Root())
	require.Equal(t, int32(0), tree.Height())
}

func avlHeightBound(n int64) float64 {
	return 1.44*math.Log2(float64(n+2)) - 0.33
}

func avlRandomInsertAndRemoveRunCore(t *testing.T, total int, violationCheck bool) {
	rng := randv2.New(randv2.NewPCG(uint64(total), 0x9e3779b97f4a7c15))
	keys := make([]int, 0, total)
	ref := make(map[int]struct{}, total)
	for len(keys) < total {
		key := rng.IntN(total * 8)
		if _, ok := ref[key]; ok {
			continue
		}
		ref[key] = struct{}{}
		keys = append(keys, key)
	}

	tree := NewAVLTree[int]()
	for _, key := range keys {
		require.True(t, tree.Add(key))
		if violationCheck {
			require.NoError(t, Validate[int](tree))
		}
	}
	require.Equal(t, int64(total), tree.Len())
	require.LessOrEqual(t, float64(tree.Height()), avlHeightBound(tree.Len()))

	rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	removeTotal := total / 5
	for _, key := range keys[:removeTotal] {
		require.True(t, tree.Remove(key))
		require.False(t, tree.Contains(key))
		delete(ref, key)
		if violationCheck {
			require.NoError(t, Validate[int](tree))
			require.LessOrEqual(t, float64(tree.Height()), avlHeightBound(tree.Len()))
		}
	}
	require.Equal(t, int64(total-removeTotal), tree.Len())
	require.True(t, tree.IsBalanced())
	require.LessOrEqual(t, float64(tree.Height()), avlHeightBound(tree.Len()))

	expected := make([]int, 0, len(ref))
	for key := range ref {
		require.True(t, tree.Contains(key))
		expected = append(expected, key)
	}
	sort.Ints(expected)
	tree.Foreach(func(idx int64, key int) bool {
		require.Equal(t, expected[idx], key)
		return true
	})
}

func TestAVLTree_RandomInsertAndRemove(t *testing.T) {
	testcases := []struct {
		name           string
		total          int
		violationCheck bool
	}{
		{
			name:  "100000",
			total: 100000,
		},
		{
			name:           "violation check 1000",
			total:          1000,
			violationCheck: true,
		},
		{
			name:           "violation check 5000",
			total:          5000,
			violationCheck: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			avlRandomInsertAndRemoveRunCore(tt, tc.total, tc.violationCheck)
		})
	}
}

func TestAVLTree_SerialHeight(t *testing.T) {
	tree := NewAVLTree[int64]()
	for i := int64(0); i < 1<<12; i++ {
		require.True(t, tree.Add(i))
	}
	// 2^12 - 1 keys fill the perfect tree of height 11, one more goes below.
	require.Equal(t, int32(12), tree.Height())
	require.True(t, tree.IsBalanced())
	require.NoError(t, Validate[int64](tree))
}

func BenchmarkAVLTree_Random(b *testing.B) {
	b.StopTimer()
	tree := NewAVLTree[int]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Add(rngArr[i])
	}
}

func BenchmarkAVLTree_Serial(b *testing.B) {
	b.StopTimer()
	tree := NewAVLTree[int]()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Add(i)
	}
}
