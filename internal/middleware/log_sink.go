package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/guttosm/flock-service/internal/metrics"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/rs/zerolog"
)

const logSinkKey = "log_sink"

// LogSinkConfig sizes the sink's queue and flushing.
type LogSinkConfig struct {
	QueueSize     int
	Workers       int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
}

// DefaultLogSinkConfig returns the production sizing.
func DefaultLogSinkConfig() LogSinkConfig {
	return LogSinkConfig{
		QueueSize:     1024,
		Workers:       2,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// LogSinkStats counts entries by outcome since the sink started.
type LogSinkStats struct {
	Written int64
	Dropped int64
	Failed  int64
}

// LogSink queues log entries and persists them in batches from a fixed pool
// of workers. Write never blocks: when the queue is full the entry is dropped.
// A nil *LogSink discards everything.
type LogSink struct {
	svc   service.LoggingService
	cfg   LogSinkConfig
	queue chan *model.LogEntry
	wg    sync.WaitGroup
	once  sync.Once
	log   zerolog.Logger

	written atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewLogSink starts the workers. It returns nil when svc is nil.
func NewLogSink(svc service.LoggingService, cfg LogSinkConfig) *LogSink {
	if svc == nil {
		return nil
	}
	def := DefaultLogSinkConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	s := &LogSink{
		svc:   svc,
		cfg:   cfg,
		queue: make(chan *model.LogEntry, cfg.QueueSize),
		log:   logger.Component("log_sink"),
	}
	for i := 0; i < cfg.Workers; i++ {
		s.wg.Add(1)
		go s.run()
	}
	return s
}

// Write enqueues entry and reports whether it was accepted.
func (s *LogSink) Write(entry *model.LogEntry) (accepted bool) {
	if s == nil || entry == nil {
		return false
	}
	defer func() {
		// Write after Close.
		if recover() != nil {
			accepted = false
		}
	}()

	select {
	case s.queue <- entry:
		return true
	default:
		s.dropped.Add(1)
		metrics.RecordLogEntries("dropped", 1)
		return false
	}
}

// Close stops accepting entries, flushes what is queued and waits for the
// workers. Calling it more than once is safe.
func (s *LogSink) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		close(s.queue)
		s.wg.Wait()
	})
}

// Stats returns the outcome counters.
func (s *LogSink) Stats() LogSinkStats {
	if s == nil {
		return LogSinkStats{}
	}
	return LogSinkStats{
		Written: s.written.Load(),
		Dropped: s.dropped.Load(),
		Failed:  s.failed.Load(),
	}
}

func (s *LogSink) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, s.cfg.BatchSize)
	for {
		select {
		case entry, ok := <-s.queue:
			if !ok {
				s.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= s.cfg.BatchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *LogSink) flush(batch []*model.LogEntry) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.svc.CreateLogs(ctx, batch); err != nil {
		s.failed.Add(int64(len(batch)))
		metrics.RecordLogEntries("failed", len(batch))
		s.log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to persist log entries")
		return
	}
	s.written.Add(int64(len(batch)))
	metrics.RecordLogEntries("written", len(batch))
}

// AttachLogSink exposes sink to later handlers through the gin context.
func AttachLogSink(sink *LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink != nil {
			c.Set(logSinkKey, sink)
		}
		c.Next()
	}
}

// LogSinkFrom returns the sink attached to the request, or nil.
func LogSinkFrom(c *gin.Context) *LogSink {
	value, ok := c.Get(logSinkKey)
	if !ok {
		return nil
	}
	sink, _ := value.(*LogSink)
	return sink
}
