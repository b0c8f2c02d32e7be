// Package runtime drives the live multiplexer: it spawns a pane process
// per leaf, dispatches keys to semantic actions or forwards them to the
// active pane, and redraws the layout on every tick.
package runtime

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/pudding/internal/action"
	"github.com/framegrace/pudding/internal/config"
	"github.com/framegrace/pudding/internal/keybind"
	"github.com/framegrace/pudding/internal/layout"
	"github.com/framegrace/pudding/internal/pane"
	"github.com/framegrace/pudding/internal/ui"
)

const resizeStepRatio = 0.20

// promptMode distinguishes the two confirmation prompts the runtime can
// open over the layout.
type promptMode int

const (
	promptSave promptMode = iota
	promptRestore
)

// prompt is a small modal text input, open for SaveState/RestoreState.
type prompt struct {
	label  string
	buffer string
	mode   promptMode
}

// App is the live multiplexer: a template, its spawned panes, and the
// action map resolved from config.
type App struct {
	Template *layout.Template
	Config   *config.Config
	Actions  map[keybind.KeyBinding]action.Action

	Panes    map[uint64]*pane.Process
	ActiveID uint64
	Status   string

	prompt *prompt
	screen tcell.Screen
	done   bool
}

// New builds an App over t and cfg and spawns every leaf's process sized
// to screen's current dimensions.
func New(screen tcell.Screen, t *layout.Template, cfg *config.Config) (*App, error) {
	a := &App{
		Template: t,
		Config:   cfg,
		Actions:  action.Build(cfg.Keybinds),
		Panes:    make(map[uint64]*pane.Process),
		ActiveID: t.Root.ID,
		screen:   screen,
	}
	if leaves := layout.CollectLeaves(t.Root); len(leaves) > 0 {
		a.ActiveID = leaves[0]
	}
	if err := a.SpawnAll(); err != nil {
		return nil, err
	}
	return a, nil
}

// Done reports whether the app has been asked to quit.
func (a *App) Done() bool {
	return a.done
}

func (a *App) screenRect() layout.Rect {
	w, h := a.screen.Size()
	return layout.Rect{X: 0, Y: 0, W: w, H: h}
}

func paneSize(rect layout.Rect) pane.Size {
	rows := rect.H - 2
	if rows < 0 {
		rows = 0
	}
	cols := rect.W - 2
	if cols < 0 {
		cols = 0
	}
	return pane.Size{Rows: rows, Cols: cols}
}

// SpawnAll spawns one process per leaf currently in the template and
// stores it in Panes under the leaf's id. Panes already in the map are
// neither closed nor removed. Used both at startup and after restoring a
// saved state (which closes and clears Panes first).
func (a *App) SpawnAll() error {
	main, _ := ui.MainArea(a.screenRect())
	for _, r := range layout.LayoutRects(a.Template.Root, main) {
		leaf := layout.FindLeaf(a.Template.Root, r.ID)
		if leaf == nil {
			continue
		}
		p, err := pane.Spawn(leaf.Command, paneSize(r.Rect))
		if err != nil {
			return fmt.Errorf("runtime: spawn leaf %d: %w", r.ID, err)
		}
		a.Panes[r.ID] = p
	}
	return nil
}

// ResizeAll recomputes every leaf's rectangle against the current screen
// size and propagates it to the matching pane process.
func (a *App) ResizeAll() {
	main, _ := ui.MainArea(a.screenRect())
	for _, r := range layout.LayoutRects(a.Template.Root, main) {
		if p, ok := a.Panes[r.ID]; ok {
			p.Resize(paneSize(r.Rect))
		}
	}
}

// HandleKey is the single entry point for a terminal key event: quit
// takes precedence over an open prompt, then the prompt (if any) consumes
// the key, then a configured action, then forwarding to the active pane.
func (a *App) HandleKey(ev *tcell.EventKey) {
	if a.isQuitKey(ev) {
		a.done = true
		return
	}

	if a.prompt != nil {
		a.handlePromptKey(ev)
		return
	}

	code, mods, ok := keybind.FromTcellKey(ev)
	if !ok {
		return
	}
	for b, act := range a.Actions {
		if b.Matches(code, mods) {
			a.handleAction(act)
			return
		}
	}

	if p, ok := a.Panes[a.ActiveID]; ok {
		if bytes, ok := ui.KeyToBytes(code); ok {
			p.WriteBytes(bytes)
		}
	}
}

func (a *App) isQuitKey(ev *tcell.EventKey) bool {
	code, mods, ok := keybind.FromTcellKey(ev)
	if !ok {
		return false
	}
	for b, act := range a.Actions {
		if act == action.Quit && b.Matches(code, mods) {
			return true
		}
	}
	return false
}

// Close shuts down every spawned pane process. Call once after the event
// loop exits.
func (a *App) Close() {
	for _, p := range a.Panes {
		_ = p.Close()
	}
}
