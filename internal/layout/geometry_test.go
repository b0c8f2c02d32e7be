package layout

import "testing"

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in   float32
		want float32
	}{
		{0.0, 0.1},
		{0.1, 0.1},
		{0.5, 0.5},
		{0.9, 0.9},
		{1.0, 0.9},
		{-10, 0.1},
		{10, 0.9},
	}
	for _, c := range cases {
		if got := ClampRatio(c.in); got != c.want {
			t.Errorf("ClampRatio(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClampRatioIdempotent(t *testing.T) {
	for _, r := range []float32{-5, 0, 0.1, 0.37, 0.9, 5} {
		once := ClampRatio(r)
		twice := ClampRatio(once)
		if once != twice {
			t.Errorf("ClampRatio not idempotent for %v: %v != %v", r, once, twice)
		}
	}
}

func TestSplitRectWidthOne(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 1, H: 10}
	left, right := SplitRect(rect, Vertical, 0.5)
	if left.W != 1 || right.W != 0 {
		t.Fatalf("split_rect on width 1 should never underflow, got left.W=%d right.W=%d", left.W, right.W)
	}
}

func TestSplitRectHeightOne(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 10, H: 1}
	top, bottom := SplitRect(rect, Horizontal, 0.5)
	if top.H != 1 || bottom.H != 0 {
		t.Fatalf("split_rect on height 1 should never underflow, got top.H=%d bottom.H=%d", top.H, bottom.H)
	}
}

func TestSplitRectClampsExtremeRatios(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 10, H: 10}

	low, lowRight := SplitRect(rect, Vertical, 0.0)
	if low.W != 1 || lowRight.W != 9 {
		t.Fatalf("ratio 0.0 should clamp to 0.1, got %d/%d", low.W, lowRight.W)
	}

	high, highRight := SplitRect(rect, Vertical, 1.0)
	if high.W != 9 || highRight.W != 1 {
		t.Fatalf("ratio 1.0 should clamp to 0.9, got %d/%d", high.W, highRight.W)
	}
}

func TestSplitRectUnionCoversRect(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 100, H: 40}
	first, second := SplitRect(rect, Vertical, 0.5)
	if first.W+second.W != rect.W {
		t.Fatalf("vertical split widths %d+%d != %d", first.W, second.W, rect.W)
	}
	if first.H != rect.H || second.H != rect.H {
		t.Fatalf("vertical split must preserve height")
	}

	first, second = SplitRect(rect, Horizontal, 0.25)
	if first.H+second.H != rect.H {
		t.Fatalf("horizontal split heights %d+%d != %d", first.H, second.H, rect.H)
	}
}

func TestPointInRect(t *testing.T) {
	rect := Rect{X: 5, Y: 5, W: 10, H: 10}
	if !PointInRect(rect, 5, 5) {
		t.Fatalf("top-left corner should be inside")
	}
	if PointInRect(rect, 15, 5) {
		t.Fatalf("right edge (exclusive) should be outside")
	}
	if PointInRect(rect, 4, 5) {
		t.Fatalf("left of rect should be outside")
	}
}
