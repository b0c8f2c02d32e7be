// Package keybind parses human-readable key strings ("Ctrl+Alt+X") into
// KeyBinding values and matches them against terminal key events.
package keybind

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Code identifies a key independent of modifiers.
type Code struct {
	// Kind distinguishes Char from every named key.
	Kind Kind
	// Char holds the rune when Kind == KindChar.
	Char rune
	// Func holds n for KindF (F1..F12).
	Func int
}

// Kind enumerates the key classes the spec names.
type Kind int

const (
	KindChar Kind = iota
	KindEnter
	KindEsc
	KindTab
	KindBackTab
	KindBackspace
	KindDelete
	KindHome
	KindEnd
	KindPageUp
	KindPageDown
	KindInsert
	KindLeft
	KindRight
	KindUp
	KindDown
	KindF
)

// Modifiers is a bitset over Ctrl/Alt/Shift.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyBinding is a key code plus the modifiers required to trigger it.
type KeyBinding struct {
	Code      Code
	Modifiers Modifiers
}

// normalize folds BackTab into {Tab, Shift} so Parse and Matches agree.
func (b KeyBinding) normalize() KeyBinding {
	if b.Code.Kind == KindBackTab {
		b.Code = Code{Kind: KindTab}
		b.Modifiers |= ModShift
	}
	return b
}

// Matches reports whether ev triggers b, after BackTab normalization on
// both sides.
func (b KeyBinding) Matches(ev Code, mods Modifiers) bool {
	want := b.normalize()
	got := KeyBinding{Code: ev, Modifiers: mods}.normalize()
	return want.Code == got.Code && want.Modifiers == got.Modifiers
}

var namedKeys = map[string]Code{
	"enter":     {Kind: KindEnter},
	"esc":       {Kind: KindEsc},
	"escape":    {Kind: KindEsc},
	"tab":       {Kind: KindTab},
	"backtab":   {Kind: KindBackTab},
	"backspace": {Kind: KindBackspace},
	"delete":    {Kind: KindDelete},
	"del":       {Kind: KindDelete},
	"home":      {Kind: KindHome},
	"end":       {Kind: KindEnd},
	"pageup":    {Kind: KindPageUp},
	"pagedown":  {Kind: KindPageDown},
	"insert":    {Kind: KindInsert},
	"left":      {Kind: KindLeft},
	"right":     {Kind: KindRight},
	"up":        {Kind: KindUp},
	"down":      {Kind: KindDown},
	"space":     {Kind: KindChar, Char: ' '},
}

// Parse parses a "Mod1+Mod2+Key" string into a KeyBinding. The final
// segment is the key name; prior segments are modifier names (case
// insensitive: ctrl, alt, shift). A single uppercase character implicitly
// adds Shift. Named keys are parsed case-insensitively; "f<n>" (n in
// [1,12]) parses as a function key. An unrecognized key name fails to
// parse (ok == false, no binding produced).
func Parse(input string) (KeyBinding, bool) {
	parts := strings.Split(input, "+")
	if len(parts) == 0 {
		return KeyBinding{}, false
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	var mods Modifiers
	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "shift":
			mods |= ModShift
		}
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		ch := runes[0]
		if unicode.IsUpper(ch) {
			mods |= ModShift
		}
		return KeyBinding{Code: Code{Kind: KindChar, Char: ch}, Modifiers: mods}, true
	}

	lower := strings.ToLower(keyPart)
	if code, ok := namedKeys[lower]; ok {
		return KeyBinding{Code: code, Modifiers: mods}, true
	}
	if strings.HasPrefix(lower, "f") {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 12 {
			return KeyBinding{Code: Code{Kind: KindF, Func: n}, Modifiers: mods}, true
		}
	}
	return KeyBinding{}, false
}

// FromTcellKey converts a tcell key event into (Code, Modifiers, ok).
// ok is false for keys the binding model doesn't represent.
func FromTcellKey(ev *tcell.EventKey) (Code, Modifiers, bool) {
	var mods Modifiers
	m := ev.Modifiers()
	if m&tcell.ModCtrl != 0 {
		mods |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= ModAlt
	}
	if m&tcell.ModShift != 0 {
		mods |= ModShift
	}

	switch ev.Key() {
	case tcell.KeyRune:
		ch := ev.Rune()
		if unicode.IsUpper(ch) {
			mods |= ModShift
		}
		return Code{Kind: KindChar, Char: ch}, mods, true
	case tcell.KeyEnter:
		return Code{Kind: KindEnter}, mods, true
	case tcell.KeyEscape:
		return Code{Kind: KindEsc}, mods, true
	case tcell.KeyTab:
		return Code{Kind: KindTab}, mods, true
	case tcell.KeyBacktab:
		return Code{Kind: KindBackTab}, mods, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Code{Kind: KindBackspace}, mods, true
	case tcell.KeyDelete:
		return Code{Kind: KindDelete}, mods, true
	case tcell.KeyHome:
		return Code{Kind: KindHome}, mods, true
	case tcell.KeyEnd:
		return Code{Kind: KindEnd}, mods, true
	case tcell.KeyPgUp:
		return Code{Kind: KindPageUp}, mods, true
	case tcell.KeyPgDn:
		return Code{Kind: KindPageDown}, mods, true
	case tcell.KeyInsert:
		return Code{Kind: KindInsert}, mods, true
	case tcell.KeyLeft:
		return Code{Kind: KindLeft}, mods, true
	case tcell.KeyRight:
		return Code{Kind: KindRight}, mods, true
	case tcell.KeyUp:
		return Code{Kind: KindUp}, mods, true
	case tcell.KeyDown:
		return Code{Kind: KindDown}, mods, true
	case tcell.KeyCtrlA, tcell.KeyCtrlB, tcell.KeyCtrlC, tcell.KeyCtrlD, tcell.KeyCtrlE,
		tcell.KeyCtrlF, tcell.KeyCtrlG, tcell.KeyCtrlH, tcell.KeyCtrlJ, tcell.KeyCtrlK,
		tcell.KeyCtrlL, tcell.KeyCtrlN, tcell.KeyCtrlO, tcell.KeyCtrlP, tcell.KeyCtrlQ,
		tcell.KeyCtrlR, tcell.KeyCtrlS, tcell.KeyCtrlT, tcell.KeyCtrlU, tcell.KeyCtrlV,
		tcell.KeyCtrlW, tcell.KeyCtrlX, tcell.KeyCtrlY, tcell.KeyCtrlZ:
		// tcell reports Ctrl+<letter> as its own key constant rather than
		// KeyRune+ModCtrl; recover the letter and fold it back into the
		// Char form so Parse("ctrl+s") and a live Ctrl+S event compare equal.
		ch := rune('a' + int(ev.Key()) - int(tcell.KeyCtrlA))
		return Code{Kind: KindChar, Char: ch}, mods | ModCtrl, true
	default:
		if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
			return Code{Kind: KindF, Func: int(ev.Key()-tcell.KeyF1) + 1}, mods, true
		}
	}
	return Code{}, 0, false
}
