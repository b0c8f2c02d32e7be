package runtime

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/keybind"
	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/pane"
	"github.com/framegrace/pudding/internal/template"
)

// handlePromptKey consumes a key event while a save/restore prompt is
// open: Enter commits (running save or restore), Esc cancels, Backspace
// deletes, a plain character appends, and a Ctrl-modified character is
// ignored.
func (a *App) handlePromptKey(ev *tcell.EventKey) {
	code, mods, ok := keybind.FromTcellKey(ev)
	if !ok {
		return
	}

	switch code.Kind {
	case keybind.KindEnter:
		a.commitPrompt()
	case keybind.KindEsc:
		a.prompt = nil
	case keybind.KindBackspace:
		if b := a.prompt.buffer; len(b) > 0 {
			r := []rune(b)
			a.prompt.buffer = string(r[:len(r)-1])
		}
	case keybind.KindChar:
		if mods&keybind.ModCtrl != 0 {
			return
		}
		a.prompt.buffer += string(code.Char)
	}
}

func (a *App) commitPrompt() {
	p := a.prompt
	a.prompt = nil
	name := strings.TrimSpace(p.buffer)
	if name == "" {
		return
	}

	switch p.mode {
	case promptSave:
		if err := template.SaveState(name, a.Template.Root); err != nil {
			a.Status = "save failed: " + err.Error()
			return
		}
		a.Status = "saved " + name

	case promptRestore:
		t, err := template.LoadState(name, a.Config.DefaultCommand)
		if err != nil {
			a.Status = "restore failed: " + err.Error()
			return
		}
		a.Close()
		a.Panes = make(map[uint64]*pane.Process)
		a.Template = t
		if leaves := layout.CollectLeaves(t.Root); len(leaves) > 0 {
			a.ActiveID = leaves[0]
		}
		if err := a.SpawnAll(); err != nil {
			a.Status = "restore failed: " + err.Error()
			return
		}
		a.Status = "restored " + name
	}
}
