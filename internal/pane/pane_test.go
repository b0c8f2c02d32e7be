package pane

import (
	"strings"
	"testing"
	"time"
)

func TestSpawnProducesOutput(t *testing.T) {
	p, err := Spawn("echo hello-pane", Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Spawn error = %v", err)
	}
	defer p.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		lines := p.LastLines(10)
		for _, l := range lines {
			if strings.Contains(l, "hello-pane") {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected spawned command's output to appear in the buffer")
}

func TestWriteBytesReachesChildStdin(t *testing.T) {
	p, err := Spawn("cat", Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Spawn error = %v", err)
	}
	defer p.Close()

	p.WriteBytes([]byte("ping-back\n"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		lines := p.LastLines(10)
		for _, l := range lines {
			if strings.Contains(l, "ping-back") {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected echoed input from cat to appear in the buffer")
}

func TestResizeDoesNotError(t *testing.T) {
	p, err := Spawn("sleep 1", Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Spawn error = %v", err)
	}
	defer p.Close()
	p.Resize(Size{Rows: 40, Cols: 120})
}

func TestCloseCausesReaderToExit(t *testing.T) {
	p, err := Spawn("sleep 5", Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Spawn error = %v", err)
	}
	p.Close()

	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("reader goroutine should exit after Close")
	}
}
