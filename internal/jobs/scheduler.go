package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/blobyeu/statuspage/internal/models"
)

// maintenanceRetention is how long finished maintenance windows are kept
const maintenanceRetention = 90 * 24 * time.Hour

// Scheduler manages background jobs
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	refresher *Refresher
	log       zerolog.Logger
}

// NewScheduler creates a new job scheduler
func NewScheduler(db *gorm.DB, refresher *Refresher, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		db:        db,
		refresher: refresher,
		log:       log,
	}
}

// Start starts the scheduler. refreshInterval is in seconds.
func (s *Scheduler) Start(refreshInterval int) {
	// Refresh the status snapshot on a fixed interval
	s.cron.AddFunc(fmt.Sprintf("@every %ds", refreshInterval), s.refresher.Refresh)

	// Cleanup old maintenance windows daily at 3:14 AM
	s.cron.AddFunc("14 3 * * *", s.cleanupOldMaintenanceWindows)

	s.cron.Start()
	s.log.Info().Int("refresh_interval", refreshInterval).Msg("job scheduler started")

	// Prime the gauges instead of waiting for the first tick
	go s.refresher.Refresh()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("job scheduler stopped")
}

// cleanupOldMaintenanceWindows removes windows that ended long ago
func (s *Scheduler) cleanupOldMaintenanceWindows() {
	cutoff := time.Now().UTC().Add(-maintenanceRetention)

	result := s.db.Where("ends_at < ?", cutoff).Delete(&models.MaintenanceWindow{})
	if result.Error != nil {
		s.log.Error().Err(result.Error).Msg("failed to cleanup old maintenance windows")
		return
	}

	if result.RowsAffected > 0 {
		s.log.Info().Int64("deleted", result.RowsAffected).Msg("cleaned up old maintenance windows")
	}
}
