//go:build !integration

package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogService keeps every batch it is asked to persist.
type recordingLogService struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	batches int
	err     error
	block   chan struct{}
}

func (r *recordingLogService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return r.CreateLogs(ctx, []*model.LogEntry{entry})
}

func (r *recordingLogService) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *recordingLogService) AuditTrail(context.Context, string, model.AuditFilter) ([]*model.LogEntry, error) {
	return []*model.LogEntry{}, nil
}

func (r *recordingLogService) snapshot() []*model.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LogEntry(nil), r.entries...)
}

func TestNewLogSink_NilService(t *testing.T) {
	sink := NewLogSink(nil, DefaultLogSinkConfig())
	assert.Nil(t, sink)

	assert.False(t, sink.Write(&model.LogEntry{}))
	assert.Equal(t, LogSinkStats{}, sink.Stats())
	assert.NotPanics(t, sink.Close)
}

func TestLogSink_FlushesOnClose(t *testing.T) {
	svc := &recordingLogService{}
	sink := NewLogSink(svc, LogSinkConfig{Workers: 1, BatchSize: 100, FlushInterval: time.Hour})

	for i := 0; i < 5; i++ {
		require.True(t, sink.Write(&model.LogEntry{Message: "HTTP request"}))
	}
	sink.Close()

	assert.Len(t, svc.snapshot(), 5)
	assert.Equal(t, int64(5), sink.Stats().Written)
	assert.False(t, sink.Write(&model.LogEntry{}), "closed sink rejects writes")
	assert.NotPanics(t, sink.Close)
}

func TestLogSink_FlushesFullBatch(t *testing.T) {
	svc := &recordingLogService{}
	sink := NewLogSink(svc, LogSinkConfig{Workers: 1, BatchSize: 3, FlushInterval: time.Hour})
	defer sink.Close()

	for i := 0; i < 3; i++ {
		sink.Write(&model.LogEntry{})
	}

	assert.Eventually(t, func() bool { return len(svc.snapshot()) == 3 }, time.Second, 10*time.Millisecond)
}

func TestLogSink_FlushesOnInterval(t *testing.T) {
	svc := &recordingLogService{}
	sink := NewLogSink(svc, LogSinkConfig{Workers: 1, BatchSize: 100, FlushInterval: 20 * time.Millisecond})
	defer sink.Close()

	sink.Write(&model.LogEntry{FarmID: "farm-1"})

	assert.Eventually(t, func() bool { return len(svc.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "farm-1", svc.snapshot()[0].FarmID)
}

func TestLogSink_DropsWhenQueueFull(t *testing.T) {
	svc := &recordingLogService{block: make(chan struct{})}
	sink := NewLogSink(svc, LogSinkConfig{QueueSize: 1, Workers: 1, BatchSize: 1, FlushInterval: time.Hour})

	// The worker takes the first entry and blocks; the second fills the queue.
	require.True(t, sink.Write(&model.LogEntry{}))
	assert.Eventually(t, func() bool { return len(sink.queue) == 0 }, time.Second, 5*time.Millisecond)
	require.True(t, sink.Write(&model.LogEntry{}))

	assert.False(t, sink.Write(&model.LogEntry{}))
	assert.Equal(t, int64(1), sink.Stats().Dropped)

	close(svc.block)
	sink.Close()
	assert.Equal(t, int64(2), sink.Stats().Written)
}

func TestLogSink_CountsFailedBatches(t *testing.T) {
	svc := &recordingLogService{err: errors.New("mongo unavailable")}
	sink := NewLogSink(svc, LogSinkConfig{Workers: 1, BatchSize: 10, FlushInterval: time.Hour})

	sink.Write(&model.LogEntry{})
	sink.Write(&model.LogEntry{})
	sink.Close()

	stats := sink.Stats()
	assert.Equal(t, int64(2), stats.Failed)
	assert.Zero(t, stats.Written)
}
