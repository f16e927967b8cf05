package catalog

import (
	"context"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatcher_RepatchesOnWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}
	defer goleak.VerifyNone(t)

	path := copySample(t)
	logger := zaptest.NewLogger(t)
	r := &Runner{Patcher: NewPatcher(DefaultSummaries()), Logger: logger}

	var runs atomic.Int32
	w := NewWatcher(path, 50*time.Millisecond, logger, func(ctx context.Context) error {
		runs.Add(1)
		_, err := r.Run(path)
		return err
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// let the watch register before touching the file
	time.Sleep(200 * time.Millisecond)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	assert.Eventually(t, func() bool {
		got, err := os.ReadFile(path)
		return err == nil && strings.Contains(string(got), "etcd cluster storage is full")
	}, 5*time.Second, 50*time.Millisecond)
	assert.GreaterOrEqual(t, runs.Load(), int32(1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestNewWatcher_Defaults(t *testing.T) {
	w := NewWatcher("a/../catalog.ts", 0, nil, func(context.Context) error { return nil })
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.Equal(t, "catalog.ts", w.path)
	assert.NotNil(t, w.logger)
}
