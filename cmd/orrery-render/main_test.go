package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/orrery/pkg/viewer"
)

// failingBar counts calls and always reports an error.
type failingBar struct{ calls int }

func (b *failingBar) Add(int) error {
	b.calls++
	return errors.New("terminal gone")
}

func testViewer(t *testing.T) *viewer.Viewer {
	t.Helper()
	v, err := viewer.New(viewer.Options{Width: 48, Height: 32, SphereStacks: 8, SphereSlices: 16})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestRenderFramesIgnoresProgressErrors(t *testing.T) {
	dir := t.TempDir()
	bar := &failingBar{}

	total, err := renderFrames(context.Background(), testViewer(t), 3, 0.1, dir, 1, bar)
	if err != nil {
		t.Fatal(err)
	}
	if bar.calls != 3 {
		t.Errorf("progress calls = %d, want 3", bar.calls)
	}
	if total.Written == 0 {
		t.Error("nothing drawn")
	}
	for _, name := range []string{"frame0000.png", "frame0001.png", "frame0002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderFramesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bar := &failingBar{}
	if _, err := renderFrames(ctx, testViewer(t), 3, 0.1, t.TempDir(), 1, bar); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if bar.calls != 0 {
		t.Errorf("progress calls = %d, want 0", bar.calls)
	}
}
