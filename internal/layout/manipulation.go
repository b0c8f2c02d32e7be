package layout

import "fmt"

// NextID returns one greater than the maximum id found in the tree by
// pre-order traversal.
func NextID(n *Node) uint64 {
	var max uint64
	Walk(n, func(node *Node) {
		if node.ID > max {
			max = node.ID
		}
	})
	return max + 1
}

// SplitLeaf finds the leaf with targetID and replaces it with a Split whose
// First is the original leaf and whose Second is a new leaf
// {id: newID, name: "leaf-<newID>", command: defaultCommand}. The Split's
// own id is newID+1. Returns whether a replacement occurred.
func SplitLeaf(n *Node, targetID uint64, orientation Orientation, ratio float32, newID uint64, defaultCommand string) bool {
	if n == nil {
		return false
	}
	if n.IsLeaf() {
		if n.ID != targetID {
			return false
		}
		original := NewLeaf(n.ID, n.Name, n.Command)
		replacement := NewLeaf(newID, fmt.Sprintf("leaf-%d", newID), defaultCommand)
		*n = Node{
			ID:          newID + 1,
			Orientation: orientation,
			Ratio:       ClampRatio(ratio),
			First:       original,
			Second:      replacement,
		}
		return true
	}
	return SplitLeaf(n.First, targetID, orientation, ratio, newID, defaultCommand) ||
		SplitLeaf(n.Second, targetID, orientation, ratio, newID, defaultCommand)
}

// DeleteResult is the outcome of DeleteLeaf.
type DeleteResult int

const (
	DeleteOK DeleteResult = iota
	DeleteLastLeaf
	DeleteNotFound
)

// DeleteLeaf removes the leaf identified by targetID, replacing its parent
// Split with the remaining sibling subtree. The id of the promoted subtree
// is preserved; the Split's own id is discarded. Fails DeleteLastLeaf when
// the tree is a single leaf, DeleteNotFound when targetID does not name a
// leaf. Idempotent: calling it again for an already-removed id returns
// DeleteNotFound.
func DeleteLeaf(n *Node, targetID uint64) DeleteResult {
	if n == nil {
		return DeleteNotFound
	}
	if n.IsLeaf() {
		if n.ID == targetID {
			return DeleteLastLeaf
		}
		return DeleteNotFound
	}
	if ok, promoted := deleteFromSplit(n, targetID); ok {
		if promoted == nil {
			return DeleteNotFound
		}
		*n = *promoted
		return DeleteOK
	}
	return DeleteNotFound
}

// deleteFromSplit looks for targetID among n's two children. If a direct
// child is the target leaf, the sibling subtree is returned to be spliced
// into n's place. Otherwise it recurses.
func deleteFromSplit(n *Node, targetID uint64) (bool, *Node) {
	if n.First.IsLeaf() && n.First.ID == targetID {
		return true, n.Second
	}
	if n.Second.IsLeaf() && n.Second.ID == targetID {
		return true, n.First
	}
	if !n.First.IsLeaf() {
		if ok, promoted := deleteFromSplit(n.First, targetID); ok {
			if promoted != nil {
				*n.First = *promoted
			}
			return true, n
		}
	}
	if !n.Second.IsLeaf() {
		if ok, promoted := deleteFromSplit(n.Second, targetID); ok {
			if promoted != nil {
				*n.Second = *promoted
			}
			return true, n
		}
	}
	return false, nil
}

// ResizeFromLeaf finds the innermost ancestor Split whose orientation
// equals orientation and one of whose subtrees contains targetID, and
// updates that ancestor's ratio to ClampRatio(ratio + delta).
func ResizeFromLeaf(n *Node, targetID uint64, orientation Orientation, delta float32) bool {
	if n == nil || n.IsLeaf() {
		return false
	}
	if ResizeFromLeaf(n.First, targetID, orientation, delta) ||
		ResizeFromLeaf(n.Second, targetID, orientation, delta) {
		return true
	}
	if n.Orientation == orientation && containsLeaf(n, targetID) {
		n.Ratio = ClampRatio(n.Ratio + delta)
		return true
	}
	return false
}

// SwapAdjacentLeaves finds the innermost Split with matching orientation
// whose two direct children are both leaves and one of which is targetID,
// and swaps its two subtrees. No-op if neither direct child is a leaf.
func SwapAdjacentLeaves(n *Node, targetID uint64, orientation Orientation) bool {
	if n == nil || n.IsLeaf() {
		return false
	}
	if n.Orientation == orientation && n.First.IsLeaf() && n.Second.IsLeaf() {
		if n.First.ID == targetID || n.Second.ID == targetID {
			n.First, n.Second = n.Second, n.First
			return true
		}
	}
	return SwapAdjacentLeaves(n.First, targetID, orientation) ||
		SwapAdjacentLeaves(n.Second, targetID, orientation)
}

func containsLeaf(n *Node, targetID uint64) bool {
	if n == nil {
		return false
	}
	if n.IsLeaf() {
		return n.ID == targetID
	}
	return containsLeaf(n.First, targetID) || containsLeaf(n.Second, targetID)
}
