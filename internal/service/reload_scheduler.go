package service

import (
	"context"
	"fmt"

	"robi-be/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ReloadScheduler re-ingests the resource directory on a cron schedule. A run that
// is still going when the next one is due is skipped.
type ReloadScheduler struct {
	cron   *cron.Cron
	logger logger.ILogger
}

func NewReloadScheduler(schedule string, reload func(ctx context.Context) error, log logger.ILogger) (*ReloadScheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() {
		log.Info("SCHEDULER", "Scheduled resource reload", nil)
		if err := reload(context.Background()); err != nil {
			log.Error("SCHEDULER", "Scheduled resource reload failed", map[string]interface{}{"error": err.Error()})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	return &ReloadScheduler{cron: c, logger: log}, nil
}

func (s *ReloadScheduler) Start() {
	s.cron.Start()
}

// Stop prevents further runs and waits for a running reload to finish or ctx to end.
func (s *ReloadScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
