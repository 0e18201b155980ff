package service

import (
	"context"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoggingService persists access-log lines and audit events and serves a
// farm's audit trail.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	AuditTrail(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error)
}

type logService struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService returns a LoggingService backed by repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &logService{repo: repo, now: time.Now}
}

func (s *logService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	s.stamp(entry)
	return s.repo.Create(ctx, entry)
}

// CreateLogs writes entries in a single insert. An empty slice is a no-op.
func (s *logService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		s.stamp(entry)
	}
	return s.repo.CreateMany(ctx, entries)
}

// AuditTrail returns the farm's audit events, newest first. An inverted
// time window matches nothing.
func (s *logService) AuditTrail(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error) {
	if !filter.Since.IsZero() && !filter.Until.IsZero() && !filter.Since.Before(filter.Until) {
		return []*model.LogEntry{}, nil
	}
	return s.repo.ListAudit(ctx, farmID, filter)
}

func (s *logService) stamp(entry *model.LogEntry) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
}
