package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/layout"
)

// DrawBox draws a bordered rectangle with an optional title baked into
// the top border, in the given style. Degenerate rects (W or H < 2) are
// skipped rather than drawing a malformed box.
func DrawBox(screen tcell.Screen, rect layout.Rect, title string, style tcell.Style) {
	if rect.W < 2 || rect.H < 2 {
		return
	}
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W-1, rect.Y+rect.H-1

	for x := x0; x <= x1; x++ {
		screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0; y <= y1; y++ {
		screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)

	for i, ch := range title {
		x := x0 + 1 + i
		if x >= x1 {
			break
		}
		screen.SetContent(x, y0, ch, nil, style)
	}
}

// Inner returns the rect inside a box's border, one cell smaller on
// every side.
func Inner(rect layout.Rect) layout.Rect {
	if rect.W < 2 || rect.H < 2 {
		return layout.Rect{X: rect.X, Y: rect.Y, W: 0, H: 0}
	}
	return layout.Rect{X: rect.X + 1, Y: rect.Y + 1, W: rect.W - 2, H: rect.H - 2}
}

// DrawText writes s left-to-right starting at (x, y), clipped to maxWidth
// cells, accounting for double-width runes via go-runewidth.
func DrawText(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) {
	col := 0
	for _, r := range s {
		w := runeWidth(r)
		if col+w > maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col += w
	}
}
