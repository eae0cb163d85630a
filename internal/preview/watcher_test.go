package preview

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: {}\n"), 0o644))

	var calls atomic.Int32
	w, err := NewConfigWatcher(path, 50*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { require.NoError(t, w.Stop()) }()

	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte("site: {title: v"+string(rune('0'+i))+"}\n"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: {}\n"), 0o644))

	var calls atomic.Int32
	w, err := NewConfigWatcher(path, 20*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	require.Zero(t, calls.Load())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestConfigWatcherStopWaitsForReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: {}\n"), 0o644))

	started := make(chan struct{})
	release := make(chan struct{})
	var (
		once     sync.Once
		finished atomic.Bool
	)
	w, err := NewConfigWatcher(path, 10*time.Millisecond, func(context.Context) error {
		once.Do(func() { close(started) })
		<-release
		finished.Store(true)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("site: {title: x}\n"), 0o644))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("reload did not start")
	}

	stopped := make(chan struct{})
	go func() {
		_ = w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned while a reload was running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	require.True(t, finished.Load())
}
