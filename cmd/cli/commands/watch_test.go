package commands

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsGridChange(t *testing.T) {
	path := filepath.Join("/tmp", "rules", "rules.csv")

	tests := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{name: "write", evt: fsnotify.Event{Name: path, Op: fsnotify.Write}, want: true},
		{name: "create after rename", evt: fsnotify.Event{Name: path, Op: fsnotify.Create}, want: true},
		{name: "rename", evt: fsnotify.Event{Name: path, Op: fsnotify.Rename}, want: true},
		{name: "chmod only", evt: fsnotify.Event{Name: path, Op: fsnotify.Chmod}, want: false},
		{name: "remove", evt: fsnotify.Event{Name: path, Op: fsnotify.Remove}, want: false},
		{name: "other file", evt: fsnotify.Event{Name: filepath.Join("/tmp", "rules", "notes.txt"), Op: fsnotify.Write}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isGridChange(tt.evt, path))
		})
	}
}

func TestWatchFile_CallsOnChangeAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.csv")
	require.NoError(t, os.WriteFile(path, []byte(rulesCSV), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, zap.NewNop(), func() {
			changes.Add(1)
		})
	}()

	// Give the watcher time to start before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(rulesCSV+",10,,c,<,2\n"), 0644))

	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFile did not stop after cancel")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), filepath.Join(t.TempDir(), "missing", "rules.csv"), time.Millisecond, zap.NewNop(), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
