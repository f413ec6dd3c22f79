// pkg/node/sort.go
package node

// Sort recursively sorts every Dict in the tree rooted at n by key, ASCII
// byte order, using a stable bubble sort over the Key/value pairs (spec.md
// §4.1). Arrays are descended into but never reordered.
func Sort(n *Node) {
	if n == nil {
		return
	}
	switch n.kind {
	case KindDict:
		pairCount := len(n.children) / 2
		for i := 0; i < pairCount; i++ {
			for j := 0; j < pairCount-i-1; j++ {
				if n.children[2*j].strVal > n.children[2*j+2].strVal {
					n.children[2*j], n.children[2*j+2] = n.children[2*j+2], n.children[2*j]
					n.children[2*j+1], n.children[2*j+3] = n.children[2*j+3], n.children[2*j+1]
				}
			}
		}
		if n.dictIndex != nil {
			n.rebuildDictIndex()
		}
		for i := 1; i < len(n.children); i += 2 {
			Sort(n.children[i])
		}
	case KindArray:
		for _, c := range n.children {
			Sort(c)
		}
	}
}
