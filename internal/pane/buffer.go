package pane

import (
	"regexp"
	"strings"
	"sync"
)

const (
	maxLines        = 2000
	maxPendingBytes = 8192
	readChunkSize   = 4096
)

// ansiEscape matches CSI/OSC-style escape sequences well enough to strip
// color and cursor-movement codes from raw PTY output before it is stored
// as plain lines.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\][^\x07]*\x07|\x1b[()][AB012]|\x1b.`)

// OutputBuffer is the bounded, mutex-protected line FIFO a pane's reader
// goroutine appends to and the renderer snapshots from.
type OutputBuffer struct {
	mu      sync.Mutex
	lines   []string
	pending string
}

func newOutputBuffer() *OutputBuffer {
	return &OutputBuffer{}
}

// Append strips ANSI escapes and carriage returns from chunk, folds it
// into the pending fragment, and moves every completed line into the
// bounded line buffer, evicting the oldest lines past the cap.
func (b *OutputBuffer) Append(chunk []byte) {
	clean := ansiEscape.ReplaceAll(chunk, nil)
	clean = []byte(strings.ReplaceAll(string(clean), "\r", ""))

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending += string(clean)
	parts := strings.Split(b.pending, "\n")
	b.pending = parts[len(parts)-1]
	if len(b.pending) > maxPendingBytes {
		b.pending = b.pending[len(b.pending)-maxPendingBytes:]
	}

	complete := parts[:len(parts)-1]
	if len(complete) == 0 {
		return
	}
	b.lines = append(b.lines, complete...)
	if over := len(b.lines) - maxLines; over > 0 {
		b.lines = b.lines[over:]
	}
}

// LastLines returns a snapshot of the last h completed lines, oldest
// first. It never includes the not-yet-newline-terminated pending
// fragment.
func (b *OutputBuffer) LastLines(h int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h <= 0 || len(b.lines) == 0 {
		return nil
	}
	if h > len(b.lines) {
		h = len(b.lines)
	}
	out := make([]string, h)
	copy(out, b.lines[len(b.lines)-h:])
	return out
}
