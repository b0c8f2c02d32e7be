// Package ui holds small terminal-rendering helpers shared by the editor
// and the runtime: centered-rect computation, the key-to-bytes wire
// encoding, and tcell box drawing.
package ui

import "github.com/framegrace/pudding/internal/layout"

// MainArea splits area into the main pane region and a one-row status
// bar beneath it.
func MainArea(area layout.Rect) (main, status layout.Rect) {
	if area.H <= 1 {
		return area, layout.Rect{X: area.X, Y: area.Y + area.H, W: area.W, H: 0}
	}
	main = layout.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H - 1}
	status = layout.Rect{X: area.X, Y: area.Y + area.H - 1, W: area.W, H: 1}
	return main, status
}

// CenteredRect returns a width x height rect centered within area,
// saturating to area's bounds when the requested size doesn't fit.
func CenteredRect(width, height int, area layout.Rect) layout.Rect {
	if height > area.H {
		height = area.H
	}
	if width > area.W {
		width = area.W
	}
	y := area.Y + (area.H-height)/2
	x := area.X + (area.W-width)/2
	return layout.Rect{X: x, Y: y, W: width, H: height}
}
