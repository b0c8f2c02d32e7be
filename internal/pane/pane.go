// Package pane spawns and manages pseudo-terminal-backed child processes,
// the leaves of the layout tree actually run.
package pane

import (
	"log"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a terminal size in character cells.
type Size struct {
	Rows int
	Cols int
}

// Process is a single spawned child attached to a pseudo-terminal, with
// its output continuously drained into a bounded OutputBuffer by a
// detached reader goroutine.
type Process struct {
	cmd    *exec.Cmd
	master *os.File
	buffer *OutputBuffer
	done   chan struct{}
}

// Spawn opens a pseudo-terminal sized to size, starts command attached to
// its slave end, and launches a detached reader goroutine that drains the
// master into a bounded output buffer.
func Spawn(command string, size Size) (*Process, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
	})
	if err != nil {
		return nil, err
	}

	p := &Process{
		cmd:    cmd,
		master: master,
		buffer: newOutputBuffer(),
		done:   make(chan struct{}),
	}
	go p.readLoop()
	return p, nil
}

// readLoop drains the PTY master until EOF or error, then exits silently.
// A deferred recover keeps a malformed chunk or escape sequence from
// crashing the whole process; this is this package's equivalent of
// recovering a poisoned mutex, since Go's sync.Mutex has no such state to
// recover from in the first place.
func (p *Process) readLoop() {
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pane: reader goroutine recovered: %v", r)
		}
	}()

	buf := make([]byte, readChunkSize)
	for {
		n, err := p.master.Read(buf)
		if n > 0 {
			p.buffer.Append(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// Resize propagates a new size to the master; errors are ignored, per
// spec: a resize failing should never interrupt the event loop.
func (p *Process) Resize(size Size) {
	_ = pty.Setsize(p.master, &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
	})
}

// WriteBytes writes b to the master; errors are ignored.
func (p *Process) WriteBytes(b []byte) {
	_, _ = p.master.Write(b)
}

// LastLines returns a snapshot of the last h output lines.
func (p *Process) LastLines(h int) []string {
	return p.buffer.LastLines(h)
}

// Close drops the PTY master, which closes the child's controlling
// terminal and causes it to terminate; the reader goroutine then observes
// EOF and exits on its own. No join is required.
func (p *Process) Close() error {
	return p.master.Close()
}
