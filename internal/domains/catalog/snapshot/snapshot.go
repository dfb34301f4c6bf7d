// Package snapshot keeps an in-memory copy of each destination's package
// list so catalog reads never hit Postgres on the hot path. Snapshots
// refresh on a fixed interval and are invalidated by admin mutations.
package snapshot

import (
	"context"
	"sync"
	"time"

	"roam/infras/otel"
	"roam/internal/domains/destination"
	"roam/internal/domains/packages/model"
	"roam/internal/domains/packages/repository"
	"roam/shared/constant"
	gDto "roam/shared/dto"

	"github.com/rs/zerolog/log"
)

type entry struct {
	packages  []model.Package
	fetchedAt time.Time
	// generation is bumped on every invalidation. A fetch that started
	// before the bump is discarded instead of overwriting newer state.
	generation uint64
	stale      bool
}

type Store struct {
	repo     repository.Packages
	otel     otel.Otel
	interval time.Duration

	mu      sync.RWMutex
	entries map[string]*entry
}

func NewStore(repo repository.Packages, otl otel.Otel, interval time.Duration) *Store {
	return &Store{
		repo:     repo,
		otel:     otl,
		interval: interval,
		entries:  map[string]*entry{},
	}
}

// Get returns the package list for a destination, refreshing the
// snapshot first when it is stale or older than the refresh interval.
// A failed refresh falls back to the last good snapshot when one exists.
func (s *Store) Get(ctx context.Context, dest string) ([]model.Package, error) {
	s.mu.RLock()
	e, ok := s.entries[dest]
	if ok && !e.stale && time.Since(e.fetchedAt) < s.interval {
		packages := e.packages
		s.mu.RUnlock()

		return packages, nil
	}
	s.mu.RUnlock()

	packages, err := s.Refresh(ctx, dest)
	if err != nil {
		if retained, ok := s.lastGood(dest); ok {
			log.Warn().Err(err).Str("destination", dest).Msg("serving retained snapshot after failed refresh")

			return retained, nil
		}

		return nil, err
	}

	return packages, nil
}

// lastGood returns the most recently stored snapshot, stale or not.
func (s *Store) lastGood(dest string) ([]model.Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[dest]
	if !ok || e.fetchedAt.IsZero() {
		return nil, false
	}

	return e.packages, true
}

// Refresh fetches the destination's packages and stores them unless an
// invalidation arrived while the fetch was in flight. The fetched list
// is returned either way.
func (s *Store) Refresh(ctx context.Context, dest string) (packages []model.Package, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSnapshotScopeName, constant.OtelSnapshotScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	startGeneration := s.generation(dest)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDestination,
				Value:    dest,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	packages, err = s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("destination", dest).Msg("failed to refresh catalog snapshot")

		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[dest]
	if !ok {
		e = &entry{}
		s.entries[dest] = e
	}

	if e.generation != startGeneration {
		log.Info().Str("destination", dest).Msg("discarding stale snapshot fetch")

		return packages, nil
	}

	e.packages = packages
	e.fetchedAt = time.Now()
	e.stale = false

	return packages, nil
}

// Invalidate marks a destination's snapshot stale so the next read
// refetches, and bumps the generation so in-flight fetches cannot win.
func (s *Store) Invalidate(dest string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[dest]
	if !ok {
		e = &entry{stale: true}
		s.entries[dest] = e
	}

	e.generation++
	e.stale = true
}

func (s *Store) generation(dest string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[dest]; ok {
		return e.generation
	}

	return 0
}

// Run refreshes every registered destination on the configured interval
// until the context is cancelled. Intended to run in its own goroutine.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("catalog snapshot refresher started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("catalog snapshot refresher stopped")

			return
		case <-ticker.C:
			for _, dest := range destination.All() {
				if _, err := s.Refresh(ctx, dest.Slug); err != nil {
					log.Error().Err(err).Str("destination", dest.Slug).Msg("scheduled snapshot refresh failed")
				}
			}
		}
	}
}
