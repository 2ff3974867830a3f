package tree

import (
	"fmt"
	"io"

	"github.com/benz9527/xtree/lib/infra"
)

type branch uint8

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Print writes an ASCII graphic of the tree rooted at root, right subtree
// above and left subtree below. It returns the number of levels.
func Print[K infra.OrderedKey](w io.Writer, root TreeNode[K]) int {
	return printTree[K](w, root, "", rootBranch)
}

func printTree[K infra.OrderedKey](w io.Writer, node TreeNode[K], prefix string, br branch) int {
	if node == nil {
		return 0
	}
	rd, ld := 0, 0
	if r := node.Right(); r != nil {
		t := "       "
		if br == leftBranch {
			t = "|      "
		}
		rd = printTree[K](w, r, prefix+t, rightBranch)
	}
	switch br {
	case rootBranch:
		_, _ = fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		_, _ = fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		_, _ = fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	_, _ = fmt.Fprintln(w, nodeLabel[K](node))
	if l := node.Left(); l != nil {
		t := "       "
		if br == rightBranch {
			t = "|      "
		}
		ld = printTree[K](w, l, prefix+t, leftBranch)
	}
	return 1 + max(rd, ld)
}

func nodeLabel[K infra.OrderedKey](node TreeNode[K]) string {
	switch n := node.(type) {
	case AVLNode[K]:
		return fmt.Sprintf("%v %d/%+d", n.Key(), n.Height(), n.BalanceFactor())
	case LLRBNode[K]:
		color := "B"
		if n.Color() == Red {
			color = "R"
		}
		return fmt.Sprintf("%v %s", n.Key(), color)
	default:
	}
	return fmt.Sprintf("%v", node.Key())
}
