package infra

import "golang.org/x/exp/constraints"

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	constraints.Integer | constraints.Float | ~string
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (i-j == 0, return 0)
//  2. i > j (i-j > 0, return 1), turn to right part.
//  3. i < j (i-j < 0, return -1), turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

func AscendingComparator[K OrderedKey](i, j K) int64 {
	if i == j {
		return 0
	} else if i < j {
		return -1
	}
	return 1
}

func DescendingComparator[K OrderedKey](i, j K) int64 {
	return -AscendingComparator[K](i, j)
}

// IsUnorderedKey reports whether the key can not take part in a total order.
// Only a floating-point NaN is unequal to itself.
func IsUnorderedKey[K OrderedKey](key K) bool {
	return key != key
}
