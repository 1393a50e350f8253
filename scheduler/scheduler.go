package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/services"
	"github.com/rs/zerolog"
)

// VideoRefresher periodically re-checks videos Stream has not finished processing.
type VideoRefresher struct {
	sched    gocron.Scheduler
	videos   services.VideoService
	interval time.Duration
	logger   zerolog.Logger
}

func NewVideoRefresher(videos services.VideoService, interval time.Duration, logger zerolog.Logger) (*VideoRefresher, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	v := &VideoRefresher{
		sched:    sched,
		videos:   videos,
		interval: interval,
		logger:   logger.With().Str("component", "video_refresher").Logger(),
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(v.Refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule video refresh: %w", err)
	}
	return v, nil
}

// Refresh runs one pass over pending videos.
func (v *VideoRefresher) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ExternalAPITimeout)
	defer cancel()
	ctx = v.logger.WithContext(ctx)

	updated, err := v.videos.RefreshPending(ctx)
	if err != nil {
		v.logger.Error().Err(err).Msg("video refresh failed")
		return
	}
	if updated > 0 {
		v.logger.Info().Int("updated", updated).Msg("pending videos refreshed")
	}
}

func (v *VideoRefresher) Start() {
	v.sched.Start()
	v.logger.Info().Dur("interval", v.interval).Msg("video refresher started")
}

func (v *VideoRefresher) Stop() error {
	return v.sched.Shutdown()
}
