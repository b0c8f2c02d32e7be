// Package action maps configured key strings onto the multiplexer's
// semantic actions.
package action

import "github.com/framegrace/pudding/internal/keybind"

// Action is a semantic command the runtime and editor resolve keys to.
type Action int

const (
	SplitVertical Action = iota
	SplitHorizontal
	ResizeLeft
	ResizeRight
	ResizeUp
	ResizeDown
	SwapVertical
	SwapHorizontal
	SaveState
	RestoreState
	FocusNext
	Quit
)

// names is the configuration key each action is bound under.
var names = []struct {
	key    string
	action Action
}{
	{"split_vertical", SplitVertical},
	{"split_horizontal", SplitHorizontal},
	{"resize_left", ResizeLeft},
	{"resize_right", ResizeRight},
	{"resize_up", ResizeUp},
	{"resize_down", ResizeDown},
	{"swap_vertical", SwapVertical},
	{"swap_horizontal", SwapHorizontal},
	{"save_state", SaveState},
	{"restore_state", RestoreState},
	{"focus_next", FocusNext},
	{"quit", Quit},
}

// Build parses each configured key string and binds it to its action. An
// action whose configured string fails to parse, or that has no entry in
// keybinds, is simply not bound. Build applies no built-in defaults, even
// for a nil or empty keybinds; the default mapping comes from the config
// package, whose Default carries it when no configuration file exists.
func Build(keybinds map[string]string) map[keybind.KeyBinding]Action {
	out := make(map[keybind.KeyBinding]Action, len(names))
	for _, n := range names {
		value, ok := keybinds[n.key]
		if !ok {
			continue
		}
		binding, ok := keybind.Parse(value)
		if !ok {
			continue
		}
		out[binding] = n.action
	}
	return out
}
