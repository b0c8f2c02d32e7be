package runtime

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/ui"
)

var (
	paneBorder       = tcell.StyleDefault
	activePaneBorder = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusBarStyle   = tcell.StyleDefault
)

// Draw renders one frame: every pane's bordered box with its trailing
// output lines, the active pane highlighted, the status row, and any
// open save/restore prompt.
func (a *App) Draw() {
	a.screen.Clear()
	area := a.screenRect()
	main, status := ui.MainArea(area)

	for _, r := range layout.LayoutRects(a.Template.Root, main) {
		style := paneBorder
		if r.ID == a.ActiveID {
			style = activePaneBorder
		}
		leaf := layout.FindLeaf(a.Template.Root, r.ID)
		title := ""
		if leaf != nil {
			title = leaf.Name
		}
		ui.DrawBox(a.screen, r.Rect, title, style)

		inner := ui.Inner(r.Rect)
		if p, ok := a.Panes[r.ID]; ok && inner.H > 0 {
			for i, line := range p.LastLines(inner.H) {
				ui.DrawText(a.screen, inner.X, inner.Y+i, inner.W, line, tcell.StyleDefault)
			}
		}
	}

	statusText := "[pudding] "
	if leaf := layout.FindLeaf(a.Template.Root, a.ActiveID); leaf != nil {
		statusText += fmt.Sprintf("active: %s  ", leaf.Name)
	}
	statusText += a.Status
	ui.DrawText(a.screen, status.X, status.Y, status.W, statusText, statusBarStyle)

	if a.prompt != nil {
		a.drawPrompt(area)
	}

	a.screen.Show()
}

func (a *App) drawPrompt(area layout.Rect) {
	box := ui.CenteredRect(60, 3, area)
	ui.DrawBox(a.screen, box, "Input", tcell.StyleDefault)
	inner := ui.Inner(box)
	if inner.W <= 0 || inner.H <= 0 {
		return
	}
	line := fmt.Sprintf("%s: %s", a.prompt.label, a.prompt.buffer)
	ui.DrawText(a.screen, inner.X, inner.Y, inner.W, line, tcell.StyleDefault)
	a.screen.ShowCursor(inner.X+len([]rune(line)), inner.Y)
}
