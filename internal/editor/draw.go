package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/ui"
)

var (
	defaultBorder   = tcell.StyleDefault
	selectedBorder  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusBarStyle  = tcell.StyleDefault
	inputPromptText = map[InputKind]string{
		inputName:    "Name: ",
		inputCommand: "Command: ",
	}
)

// Draw renders one frame: the layout rects with a highlighted selected
// border, a single-cell cursor, the status row, and any open input
// prompt.
func (e *Editor) Draw() {
	e.screen.Clear()
	area := e.screenRect()
	main, status := ui.MainArea(area)

	for _, r := range layout.LayoutRects(e.Template.Root, main) {
		style := defaultBorder
		if r.ID == e.SelectedID {
			style = selectedBorder
		}
		leaf := layout.FindLeaf(e.Template.Root, r.ID)
		title := ""
		if leaf != nil {
			title = leaf.Name
		}
		ui.DrawBox(e.screen, r.Rect, title, style)
	}

	if main.W > 0 && main.H > 0 {
		x := clamp(e.CursorX, main.X, main.X+main.W-1)
		y := clamp(e.CursorY, main.Y, main.Y+main.H-1)
		mainc, comb, st, _ := e.screen.GetContent(x, y)
		e.screen.SetContent(x, y, mainc, comb, st.Reverse(true).Foreground(tcell.ColorAqua))
	}

	ui.DrawText(e.screen, status.X, status.Y, status.W, "[editor] "+e.StatusMessage, statusBarStyle)

	if e.inputKind != inputNone {
		e.drawInput(area)
	}

	e.screen.Show()
}

func (e *Editor) drawInput(area layout.Rect) {
	box := ui.CenteredRect(60, 3, area)
	ui.DrawBox(e.screen, box, "Input", tcell.StyleDefault)
	inner := ui.Inner(box)
	if inner.W <= 0 || inner.H <= 0 {
		return
	}
	prompt := inputPromptText[e.inputKind]
	line := fmt.Sprintf("%s%s", prompt, e.inputBuf)
	ui.DrawText(e.screen, inner.X, inner.Y, inner.W, line, tcell.StyleDefault)
	e.screen.ShowCursor(inner.X+len([]rune(line)), inner.Y)
}
