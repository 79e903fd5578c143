package roster

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const refreshJobName = "roster-refresh"

// RefresherConfig holds configuration for the periodic roster refresh
type RefresherConfig struct {
	Service  Service
	Interval time.Duration

	// Timeout bounds a single refresh, defaults to the interval
	Timeout time.Duration
}

// Refresher runs Service.Refresh on a gocron schedule
type Refresher struct {
	scheduler gocron.Scheduler
	stopOnce  sync.Once
	stopErr   error
}

// NewRefresher registers the refresh job. The first run happens as soon as Start is called.
func NewRefresher(cfg *RefresherConfig) (*Refresher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Service == nil {
		return nil, ErrNilService
	}
	if cfg.Interval <= 0 {
		return nil, ErrInvalidRefresh
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = cfg.Interval
	}

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Scheduler job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	jobLogger := log.With().Str("job_name", refreshJobName).Dur("interval", cfg.Interval).Logger()

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := cfg.Service.Refresh(ctx); err != nil {
				jobLogger.Error().Err(err).Msg("Roster refresh failed, keeping cached roster")
			}
		}),
		gocron.WithName(refreshJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		jobLogger.Error().Err(err).Msg("Failed to register scheduler job")
		return nil, err
	}
	jobLogger.Info().Msg("Scheduler job registered")

	return &Refresher{scheduler: sched}, nil
}

// Start begins running the refresh job
func (r *Refresher) Start() {
	log.Info().Msg("Scheduler starting")
	r.scheduler.Start()
}

// Stop shuts down the scheduler, waiting for a running refresh
func (r *Refresher) Stop() error {
	r.stopOnce.Do(func() {
		log.Info().Msg("Scheduler stopping")
		r.stopErr = r.scheduler.Shutdown()
	})
	return r.stopErr
}
