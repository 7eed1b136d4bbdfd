package store_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsp-trainer/backend/internal/store"
)

// memKV is an in-memory KV that counts writes.
type memKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	writes   int
	attempts int
	err      error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, namespace, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[namespace+"/"+key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, namespace, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.err != nil {
		return m.err
	}
	m.data[namespace+"/"+key] = value
	m.writes++
	return nil
}

func (m *memKV) snapshot() (map[string]string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = string(v)
	}
	return out, m.writes
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMirror_WritesLocalImmediatelyAndDebouncesRemote(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	m := store.NewMirror(local, remote, 100*time.Millisecond, discardLogger())
	ctx := context.Background()

	for _, v := range []string{"1", "2", "3"} {
		require.NoError(t, m.Put(ctx, "progress:anna", "progress", []byte(v)))
	}

	got, err := m.Get(ctx, "progress:anna", "progress")
	require.NoError(t, err)
	assert.Equal(t, "3", string(got))

	_, writes := remote.snapshot()
	assert.Equal(t, 0, writes, "remote write waits for the debounce interval")
	assert.Equal(t, 1, m.Pending())

	assert.Eventually(t, func() bool {
		data, writes := remote.snapshot()
		return writes == 1 && data["progress:anna/progress"] == "3"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, m.Pending())
}

func TestMirror_Flush(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	m := store.NewMirror(local, remote, time.Hour, discardLogger())
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "progress:anna", "progress", []byte("a")))
	require.NoError(t, m.Put(ctx, "progress:anna", "daily", []byte("b")))
	require.NoError(t, m.Flush(ctx))

	data, writes := remote.snapshot()
	assert.Equal(t, 2, writes)
	assert.Equal(t, "a", data["progress:anna/progress"])
	assert.Equal(t, "b", data["progress:anna/daily"])
	assert.Equal(t, 0, m.Pending())
}

func TestMirror_FlushReportsRemoteErrors(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	remote.err = errors.New("connection refused")
	m := store.NewMirror(local, remote, time.Hour, discardLogger())
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "ns", "k", []byte("v")))
	assert.Error(t, m.Flush(ctx))

	got, err := local.Get(ctx, "ns", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got), "local write survives remote failure")
}

func TestMirror_FailedFlushIsRetried(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	m := store.NewMirror(local, remote, time.Hour, discardLogger())
	ctx := context.Background()

	remote.mu.Lock()
	remote.err = errors.New("connection refused")
	remote.mu.Unlock()

	require.NoError(t, m.Put(ctx, "progress:anna", "progress", []byte("v1")))
	require.Error(t, m.Flush(ctx))
	assert.Equal(t, 1, m.Pending(), "failed write stays pending")

	remote.mu.Lock()
	remote.err = nil
	remote.mu.Unlock()

	require.NoError(t, m.Flush(ctx))
	data, writes := remote.snapshot()
	assert.Equal(t, 1, writes)
	assert.Equal(t, "v1", data["progress:anna/progress"])
	assert.Equal(t, 0, m.Pending())
}

func TestMirror_RetryKeepsNewerWrite(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	m := store.NewMirror(local, remote, time.Hour, discardLogger())
	ctx := context.Background()

	remote.mu.Lock()
	remote.err = errors.New("connection refused")
	remote.mu.Unlock()

	require.NoError(t, m.Put(ctx, "ns", "k", []byte("old")))
	require.Error(t, m.Flush(ctx))
	require.NoError(t, m.Put(ctx, "ns", "k", []byte("new")))

	remote.mu.Lock()
	remote.err = nil
	remote.mu.Unlock()

	require.NoError(t, m.Flush(ctx))
	data, _ := remote.snapshot()
	assert.Equal(t, "new", data["ns/k"])
}

func TestMirror_FailedDebouncedWriteIsRetriedOnFlush(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	m := store.NewMirror(local, remote, 20*time.Millisecond, discardLogger())
	ctx := context.Background()

	remote.mu.Lock()
	remote.err = errors.New("connection refused")
	remote.mu.Unlock()

	require.NoError(t, m.Put(ctx, "ns", "k", []byte("v")))
	// The debounced write fails and is requeued.
	assert.Eventually(t, func() bool {
		remote.mu.Lock()
		attempts := remote.attempts
		remote.mu.Unlock()
		return attempts == 1 && m.Pending() == 1
	}, time.Second, 5*time.Millisecond)

	remote.mu.Lock()
	remote.err = nil
	remote.mu.Unlock()

	require.NoError(t, m.Flush(ctx))
	data, _ := remote.snapshot()
	assert.Equal(t, "v", data["ns/k"])
}

func TestMirror_HydratesFromRemote(t *testing.T) {
	local, remote := newMemKV(), newMemKV()
	ctx := context.Background()
	require.NoError(t, remote.Put(ctx, "progress:anna", "progress", []byte("remote")))

	m := store.NewMirror(local, remote, time.Hour, discardLogger())

	got, err := m.Get(ctx, "progress:anna", "progress")
	require.NoError(t, err)
	assert.Equal(t, "remote", string(got))

	cached, err := local.Get(ctx, "progress:anna", "progress")
	require.NoError(t, err)
	assert.Equal(t, "remote", string(cached))

	_, err = m.Get(ctx, "progress:anna", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMirror_LocalOnly(t *testing.T) {
	local := newMemKV()
	m := store.NewMirror(local, nil, time.Millisecond, discardLogger())
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "ns", "k", []byte("v")))
	assert.Equal(t, 0, m.Pending())
	require.NoError(t, m.Flush(ctx))

	_, err := m.Get(ctx, "ns", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
