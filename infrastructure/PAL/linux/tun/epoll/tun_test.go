//go:build linux

package epoll

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"
)

func TestTUN_ReadWaitsForData(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() { _ = w.Close() }()

	dev, err := NewTUN(r)
	if err != nil {
		t.Fatalf("NewTUN: %v", err)
	}
	defer func() { _ = dev.Close() }()

	got := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, readErr := dev.Read(buf)
		if readErr != nil {
			got <- "error: " + readErr.Error()
			return
		}
		got <- string(buf[:n])
	}()

	time.Sleep(20 * time.Millisecond)
	if _, err := w.Write([]byte("packet")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case s := <-got:
		if s != "packet" {
			t.Fatalf("got %q, want packet", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("read did not return after data arrived")
	}
}

func TestTUN_CloseUnblocksRead(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() { _ = w.Close() }()

	dev, err := NewTUN(r)
	if err != nil {
		t.Fatalf("NewTUN: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, readErr := dev.Read(make([]byte, 64))
		done <- readErr
	}()

	time.Sleep(20 * time.Millisecond)
	if err := dev.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case readErr := <-done:
		if !errors.Is(readErr, io.ErrClosedPipe) && !errors.Is(readErr, io.EOF) {
			t.Fatalf("unexpected read error: %v", readErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("close did not unblock pending read")
	}

	if err := dev.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := dev.Read(make([]byte, 1)); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("read after close = %v, want ErrClosedPipe", err)
	}
}

func TestNewTUN_NilFile(t *testing.T) {
	if _, err := NewTUN(nil); err == nil {
		t.Fatal("expected error for nil file")
	}
}
