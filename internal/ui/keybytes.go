package ui

import "github.com/framegrace/pudding/internal/keybind"

// KeyToBytes encodes a key for forwarding to a child process's stdin.
// Non-ASCII characters and keys with no defined encoding are not
// forwarded (ok == false).
func KeyToBytes(code keybind.Code) ([]byte, bool) {
	switch code.Kind {
	case keybind.KindChar:
		if code.Char > 0x7f {
			return nil, false
		}
		return []byte{byte(code.Char)}, true
	case keybind.KindEnter:
		return []byte{0x0D}, true
	case keybind.KindBackspace:
		return []byte{0x7F}, true
	case keybind.KindTab:
		return []byte{0x09}, true
	case keybind.KindEsc:
		return []byte{0x1B}, true
	case keybind.KindLeft:
		return []byte("\x1b[D"), true
	case keybind.KindRight:
		return []byte("\x1b[C"), true
	case keybind.KindUp:
		return []byte("\x1b[A"), true
	case keybind.KindDown:
		return []byte("\x1b[B"), true
	default:
		return nil, false
	}
}
