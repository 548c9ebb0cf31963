// services/sweeper.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"life-counter-api/models"
)

// StartSweeper runs a background job that finishes abandoned auto-end
// matches: any match still running past MaxMatchDuration is finalized. Status
// queries and decreases catch these too; the sweeper covers matches nobody
// looks at anymore.
func (s *MatchService) StartSweeper(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.SweepStaleMatches(context.Background())
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	s.Log.Infow("stale-match sweeper started", "interval", interval)
	return sched, nil
}

// SweepStaleMatches finishes every auto-end match whose starting time is past
// the one-week cutoff. Returns how many matches it finished.
func (s *MatchService) SweepStaleMatches(ctx context.Context) int {
	cutoff := s.now().Add(-models.MaxMatchDuration)
	matches, err := s.Store.ListStaleAutoEndMatches(ctx, cutoff)
	if err != nil {
		s.Log.Errorw("sweeper: listing stale matches failed", "error", err)
		return 0
	}

	finished := 0
	for i := range matches {
		done, err := s.finalize(ctx, &matches[i])
		if err != nil {
			s.Log.Errorw("sweeper: finishing match failed", "match_id", matches[i].ID, "error", err)
			continue
		}
		if done {
			finished++
		}
	}
	if finished > 0 {
		s.Log.Infow("sweeper finished stale matches", "count", finished)
	}
	return finished
}
