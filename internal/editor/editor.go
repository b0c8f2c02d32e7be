// Package editor implements the standalone layout editor: a pure
// layout-tree editing surface that spawns no child processes.
package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/keybind"
	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/template"
	"github.com/framegrace/pudding/internal/ui"
)

// InputKind distinguishes the two small text-entry prompts the editor
// can open over the layout.
type InputKind int

const (
	inputNone InputKind = iota
	inputName
	inputCommand
)

// Editor is a self-contained TUI for authoring a Template.
type Editor struct {
	Template       *layout.Template
	DefaultCommand string

	CursorX, CursorY int
	SelectedID       uint64
	StatusMessage    string

	inputKind InputKind
	inputBuf  string

	screen tcell.Screen
	done   bool
}

// New builds an editor over t, selecting the first leaf found. New
// leaves created by a split run defaultCommand.
func New(screen tcell.Screen, t *layout.Template, defaultCommand string) *Editor {
	e := &Editor{Template: t, DefaultCommand: defaultCommand, screen: screen}
	leaves := layout.CollectLeaves(t.Root)
	if len(leaves) > 0 {
		e.SelectedID = leaves[0]
	}
	return e
}

// Done reports whether the editor has been asked to quit.
func (e *Editor) Done() bool {
	return e.done
}

func (e *Editor) screenRect() layout.Rect {
	w, h := e.screen.Size()
	return layout.Rect{X: 0, Y: 0, W: w, H: h}
}

// HandleKey dispatches a key event according to whether an input prompt
// is open.
func (e *Editor) HandleKey(ev *tcell.EventKey) {
	if e.inputKind != inputNone {
		e.handleInputKey(ev)
		return
	}

	code, mods, ok := keybind.FromTcellKey(ev)
	if !ok {
		return
	}

	main, _ := ui.MainArea(e.screenRect())

	switch code.Kind {
	case keybind.KindLeft:
		e.moveCursor(main, -1, 0)
	case keybind.KindRight:
		e.moveCursor(main, 1, 0)
	case keybind.KindUp:
		e.moveCursor(main, 0, -1)
	case keybind.KindDown:
		e.moveCursor(main, 0, 1)
	case keybind.KindChar:
		if mods != 0 {
			return
		}
		switch code.Char {
		case 'v':
			e.split(main, layout.Vertical)
		case 'h':
			e.split(main, layout.Horizontal)
		case 'n':
			e.openInput(inputName)
		case 'c':
			e.openInput(inputCommand)
		case 's':
			e.save()
		case 'q':
			e.done = true
		}
	}
}

func (e *Editor) moveCursor(main layout.Rect, dx, dy int) {
	x := clamp(e.CursorX+dx, main.X, main.X+main.W-1)
	y := clamp(e.CursorY+dy, main.Y, main.Y+main.H-1)
	e.CursorX, e.CursorY = x, y
	if id, ok := layout.FindLeafAt(e.Template.Root, main, x, y); ok {
		e.SelectedID = id
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// split splits the selected leaf. The ratio is derived from the cursor's
// relative position within the leaf's own rect along the split axis;
// zero-safe: a zero-sized axis yields 0.5.
func (e *Editor) split(main layout.Rect, orientation layout.Orientation) {
	rects := layout.LayoutRects(e.Template.Root, main)
	var target *layout.LayoutRect
	for i := range rects {
		if rects[i].ID == e.SelectedID {
			target = &rects[i]
			break
		}
	}
	if target == nil {
		return
	}

	ratio := float32(0.5)
	switch orientation {
	case layout.Vertical:
		if target.Rect.W > 0 {
			ratio = float32(e.CursorX-target.Rect.X) / float32(target.Rect.W)
		}
	case layout.Horizontal:
		if target.Rect.H > 0 {
			ratio = float32(e.CursorY-target.Rect.Y) / float32(target.Rect.H)
		}
	}

	newID := layout.NextID(e.Template.Root)
	layout.SplitLeaf(e.Template.Root, e.SelectedID, orientation, ratio, newID, e.DefaultCommand)
	e.SelectedID = newID
}

func (e *Editor) openInput(kind InputKind) {
	e.inputKind = kind
	e.inputBuf = ""
}

func (e *Editor) handleInputKey(ev *tcell.EventKey) {
	code, mods, ok := keybind.FromTcellKey(ev)
	if !ok {
		return
	}

	switch code.Kind {
	case keybind.KindEsc:
		e.inputKind = inputNone
		e.inputBuf = ""
	case keybind.KindEnter:
		e.commitInput()
	case keybind.KindBackspace:
		if len(e.inputBuf) > 0 {
			r := []rune(e.inputBuf)
			e.inputBuf = string(r[:len(r)-1])
		}
	case keybind.KindChar:
		if mods&keybind.ModCtrl != 0 {
			return
		}
		e.inputBuf += string(code.Char)
	}
}

func (e *Editor) commitInput() {
	value := strings.TrimSpace(e.inputBuf)
	kind := e.inputKind
	e.inputKind = inputNone
	e.inputBuf = ""
	if value == "" {
		return
	}

	leaf := layout.FindLeaf(e.Template.Root, e.SelectedID)
	if leaf == nil {
		return
	}
	switch kind {
	case inputName:
		leaf.Name = value
	case inputCommand:
		leaf.Command = value
	}
}

func (e *Editor) save() {
	if err := template.ValidateTree(e.Template.Root); err != nil {
		e.StatusMessage = "save failed: " + err.Error()
		return
	}
	if err := template.SaveTemplate(e.Template); err != nil {
		e.StatusMessage = "save failed: " + err.Error()
		return
	}
	e.StatusMessage = "saved " + e.Template.Name
}
