package ui

import (
	"testing"

	"github.com/framegrace/pudding/internal/keybind"
	"github.com/framegrace/pudding/internal/layout"
)

func TestMainAreaReservesOneStatusRow(t *testing.T) {
	area := layout.Rect{X: 0, Y: 0, W: 80, H: 24}
	main, status := MainArea(area)
	if main.H != 23 || status.H != 1 {
		t.Fatalf("main/status heights = %d/%d, want 23/1", main.H, status.H)
	}
	if status.Y != 23 {
		t.Fatalf("status row should start at y=23, got %d", status.Y)
	}
}

func TestCenteredRectFitsWithinArea(t *testing.T) {
	area := layout.Rect{X: 0, Y: 0, W: 100, H: 40}
	c := CenteredRect(20, 10, area)
	if c.W != 20 || c.H != 10 {
		t.Fatalf("unexpected size %+v", c)
	}
	if c.X != 40 || c.Y != 15 {
		t.Fatalf("expected centered position, got %+v", c)
	}
}

func TestCenteredRectSaturatesWhenTooLarge(t *testing.T) {
	area := layout.Rect{X: 0, Y: 0, W: 10, H: 4}
	c := CenteredRect(20, 10, area)
	if c.W != 10 || c.H != 4 || c.X != 0 || c.Y != 0 {
		t.Fatalf("expected saturation to area bounds, got %+v", c)
	}
}

func TestKeyToBytesASCIIChar(t *testing.T) {
	b, ok := KeyToBytes(keybind.Code{Kind: keybind.KindChar, Char: 'a'})
	if !ok || string(b) != "a" {
		t.Fatalf("KeyToBytes('a') = (%v, %v)", b, ok)
	}
}

func TestKeyToBytesRejectsNonASCII(t *testing.T) {
	if _, ok := KeyToBytes(keybind.Code{Kind: keybind.KindChar, Char: '日'}); ok {
		t.Fatalf("non-ASCII char should not be forwarded")
	}
}

func TestKeyToBytesNamedKeys(t *testing.T) {
	cases := []struct {
		code keybind.Code
		want string
	}{
		{keybind.Code{Kind: keybind.KindEnter}, "\r"},
		{keybind.Code{Kind: keybind.KindBackspace}, "\x7f"},
		{keybind.Code{Kind: keybind.KindTab}, "\t"},
		{keybind.Code{Kind: keybind.KindEsc}, "\x1b"},
		{keybind.Code{Kind: keybind.KindLeft}, "\x1b[D"},
		{keybind.Code{Kind: keybind.KindRight}, "\x1b[C"},
		{keybind.Code{Kind: keybind.KindUp}, "\x1b[A"},
		{keybind.Code{Kind: keybind.KindDown}, "\x1b[B"},
	}
	for _, c := range cases {
		b, ok := KeyToBytes(c.code)
		if !ok || string(b) != c.want {
			t.Errorf("KeyToBytes(%+v) = (%q, %v), want %q", c.code, b, ok, c.want)
		}
	}
}

func TestKeyToBytesUnmappedKeyFails(t *testing.T) {
	if _, ok := KeyToBytes(keybind.Code{Kind: keybind.KindF, Func: 5}); ok {
		t.Fatalf("F-keys have no defined forwarding encoding")
	}
}

func TestInnerShrinksByOneCellEachSide(t *testing.T) {
	rect := layout.Rect{X: 5, Y: 5, W: 10, H: 6}
	in := Inner(rect)
	if in.X != 6 || in.Y != 6 || in.W != 8 || in.H != 4 {
		t.Fatalf("unexpected inner rect %+v", in)
	}
}

func TestInnerDegenerateRect(t *testing.T) {
	in := Inner(layout.Rect{X: 0, Y: 0, W: 1, H: 1})
	if in.W != 0 || in.H != 0 {
		t.Fatalf("degenerate rect should yield zero inner area, got %+v", in)
	}
}
