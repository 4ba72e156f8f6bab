package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnitrack/alumni-api/internal/repository"
	"github.com/alumnitrack/alumni-api/pkg/logger"
)

// AuditCleanupWorker prunes audit log rows past the retention window.
type AuditCleanupWorker struct {
	repo            repository.AuditRepository
	logger          *logger.Logger
	retentionDays   int
	cleanupInterval time.Duration
}

func NewAuditCleanupWorker(repo repository.AuditRepository, log *logger.Logger, retentionDays int, cleanupInterval time.Duration) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		repo:            repo,
		logger:          log,
		retentionDays:   retentionDays,
		cleanupInterval: cleanupInterval,
	}
}

func (w *AuditCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				w.logger.ZL.Error().Err(err).Msg("audit cleanup failed")
			}
		}
	}
}

func (w *AuditCleanupWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	rows, err := w.repo.Cleanup(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup audit logs: %w", err)
	}

	w.logger.ZL.Info().Int64("rows", rows).Time("cutoff", cutoff).Msg("audit logs pruned")
	return nil
}
