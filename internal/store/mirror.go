package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const remoteWriteTimeout = 5 * time.Second

// Mirror is a KV that writes locally at once and copies each key to a
// remote KV after it has been quiet for the debounce interval. Reads prefer
// the local copy and hydrate it from the remote on a miss.
type Mirror struct {
	local    KV
	remote   KV // nil disables mirroring
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[mirrorKey]*pendingWrite
}

// Compile-time check: *Mirror is a KV.
var _ KV = (*Mirror)(nil)

type mirrorKey struct {
	namespace string
	key       string
}

type pendingWrite struct {
	value []byte
	timer *time.Timer
}

func NewMirror(local, remote KV, debounce time.Duration, logger *slog.Logger) *Mirror {
	return &Mirror{
		local:    local,
		remote:   remote,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[mirrorKey]*pendingWrite),
	}
}

func (m *Mirror) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	value, err := m.local.Get(ctx, namespace, key)
	if err == nil || !errors.Is(err, ErrNotFound) || m.remote == nil {
		return value, err
	}

	value, err = m.remote.Get(ctx, namespace, key)
	if err != nil {
		return nil, err
	}
	if err := m.local.Put(ctx, namespace, key, value); err != nil {
		m.logger.Warn("failed to hydrate local store", "namespace", namespace, "key", key, "error", err)
	}
	return value, nil
}

func (m *Mirror) Put(ctx context.Context, namespace, key string, value []byte) error {
	if err := m.local.Put(ctx, namespace, key, value); err != nil {
		return err
	}
	if m.remote == nil {
		return nil
	}

	copied := append([]byte(nil), value...)
	k := mirrorKey{namespace, key}

	m.mu.Lock()
	defer m.mu.Unlock()
	if pw, ok := m.pending[k]; ok {
		pw.value = copied
		pw.timer.Reset(m.debounce)
		return nil
	}
	pw := &pendingWrite{value: copied}
	pw.timer = time.AfterFunc(m.debounce, func() { m.flushKey(k, pw) })
	m.pending[k] = pw
	return nil
}

// Pending is the number of keys waiting for their remote write.
func (m *Mirror) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *Mirror) flushKey(k mirrorKey, pw *pendingWrite) {
	m.mu.Lock()
	if m.pending[k] != pw {
		m.mu.Unlock()
		return
	}
	delete(m.pending, k)
	value := pw.value
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
	defer cancel()
	if err := m.remote.Put(ctx, k.namespace, k.key, value); err != nil {
		m.logger.Error("mirror write failed", "namespace", k.namespace, "key", k.key, "error", err)
		m.requeue(k, value)
	}
}

// requeue keeps a failed write pending for the next Flush, unless a newer
// write for the key is already waiting. The timer stays stopped until the
// next Put re-arms it.
func (m *Mirror) requeue(k mirrorKey, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pending[k]; ok {
		return
	}
	pw := &pendingWrite{value: value}
	pw.timer = time.AfterFunc(time.Hour, func() { m.flushKey(k, pw) })
	pw.timer.Stop()
	m.pending[k] = pw
}

// Flush writes every pending key to the remote now. Keys that fail stay
// pending.
func (m *Mirror) Flush(ctx context.Context) error {
	m.mu.Lock()
	batch := m.pending
	m.pending = make(map[mirrorKey]*pendingWrite)
	for _, pw := range batch {
		pw.timer.Stop()
	}
	m.mu.Unlock()

	var errs []error
	for k, pw := range batch {
		if err := m.remote.Put(ctx, k.namespace, k.key, pw.value); err != nil {
			errs = append(errs, err)
			m.logger.Error("mirror flush failed", "namespace", k.namespace, "key", k.key, "error", err)
			m.requeue(k, pw.value)
		}
	}
	return errors.Join(errs...)
}
