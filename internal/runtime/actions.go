package runtime

import (
	"github.com/framegrace/pudding/internal/action"
	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/pane"
	"github.com/framegrace/pudding/internal/ui"
)

// handleAction applies a resolved action to the app's state. Quit is
// intercepted earlier in HandleKey (it takes precedence over an open
// prompt), so this case is unreachable in practice; it is kept for
// completeness since Action.Quit still exists as a bindable action.
func (a *App) handleAction(act action.Action) {
	switch act {
	case action.SplitVertical:
		a.splitActive(layout.Vertical)
	case action.SplitHorizontal:
		a.splitActive(layout.Horizontal)
	case action.ResizeLeft:
		layout.ResizeFromLeaf(a.Template.Root, a.ActiveID, layout.Vertical, -resizeStepRatio)
		a.ResizeAll()
	case action.ResizeRight:
		layout.ResizeFromLeaf(a.Template.Root, a.ActiveID, layout.Vertical, resizeStepRatio)
		a.ResizeAll()
	case action.ResizeUp:
		layout.ResizeFromLeaf(a.Template.Root, a.ActiveID, layout.Horizontal, -resizeStepRatio)
		a.ResizeAll()
	case action.ResizeDown:
		layout.ResizeFromLeaf(a.Template.Root, a.ActiveID, layout.Horizontal, resizeStepRatio)
		a.ResizeAll()
	case action.SwapVertical:
		layout.SwapAdjacentLeaves(a.Template.Root, a.ActiveID, layout.Vertical)
	case action.SwapHorizontal:
		layout.SwapAdjacentLeaves(a.Template.Root, a.ActiveID, layout.Horizontal)
	case action.SaveState:
		a.prompt = &prompt{label: "save as", mode: promptSave}
	case action.RestoreState:
		a.prompt = &prompt{label: "restore", mode: promptRestore}
	case action.FocusNext:
		a.focusNext()
	case action.Quit:
		a.done = true
	}
}

// splitActive splits the active leaf along orientation and spawns a
// process for the newly created leaf. If the spawn fails, the split is
// rolled back so the tree never carries a leaf with no backing process;
// the active leaf is left exactly as it was.
func (a *App) splitActive(orientation layout.Orientation) {
	newID := layout.NextID(a.Template.Root)
	splitID := newID + 1
	if !layout.SplitLeaf(a.Template.Root, a.ActiveID, orientation, 0.5, newID, a.Config.DefaultCommand) {
		return
	}

	main, _ := ui.MainArea(a.screenRect())
	var newRect layout.Rect
	found := false
	for _, r := range layout.LayoutRects(a.Template.Root, main) {
		if r.ID == newID {
			newRect = r.Rect
			found = true
			break
		}
	}
	if !found {
		rollbackSplit(a.Template.Root, splitID)
		return
	}

	leaf := layout.FindLeaf(a.Template.Root, newID)
	if leaf == nil {
		rollbackSplit(a.Template.Root, splitID)
		return
	}

	p, err := pane.Spawn(leaf.Command, paneSize(newRect))
	if err != nil {
		rollbackSplit(a.Template.Root, splitID)
		a.Status = "split failed: " + err.Error()
		return
	}
	a.Panes[newID] = p
	a.ResizeAll()
}

// rollbackSplit undoes a SplitLeaf that produced a Split node with id
// splitID, replacing that node with its First subtree (the original
// leaf, unchanged). Reports whether a matching node was found.
func rollbackSplit(n *layout.Node, splitID uint64) bool {
	if n == nil || n.IsLeaf() {
		return false
	}
	if n.ID == splitID {
		*n = *n.First
		return true
	}
	return rollbackSplit(n.First, splitID) || rollbackSplit(n.Second, splitID)
}

func (a *App) focusNext() {
	leaves := layout.CollectLeaves(a.Template.Root)
	if len(leaves) == 0 {
		return
	}
	for i, id := range leaves {
		if id == a.ActiveID {
			a.ActiveID = leaves[(i+1)%len(leaves)]
			return
		}
	}
	a.ActiveID = leaves[0]
}
