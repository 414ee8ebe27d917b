package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"propdastak/internal/domain"
	"propdastak/internal/repository"
	"propdastak/pkg/logger"
	"propdastak/pkg/redis"
)

// recordTimeout bounds how long a close handler may hold a pool connection.
// When the pool is exhausted the write fails fast instead of queueing.
const recordTimeout = 5 * time.Second

// TrackingService converts closed view sessions into persisted view events
// and answers most-viewed rankings over them.
type TrackingService struct {
	events repository.ViewEventRepository
	cache  *redis.Client
	log    *logger.Logger
}

// NewTrackingService creates a new tracking service. cache may be nil, in
// which case rankings are always read from the database.
func NewTrackingService(events repository.ViewEventRepository, cache *redis.Client, log *logger.Logger) *TrackingService {
	return &TrackingService{
		events: events,
		cache:  cache,
		log:    log,
	}
}

// RecordClose persists the finalized session as exactly one view event.
// Sessions that never received a property identifier are skipped. Delivery
// is at most once: a failed write is logged and the event dropped, keeping
// the connection server available regardless of storage health.
//
// The write runs on its own timeout-bound context: closing the originating
// connection never cancels a write already dispatched here.
func (s *TrackingService) RecordClose(session *domain.ViewSession, endTime time.Time) {
	if session.PropertyID() == "" {
		s.log.Debug("Skipping view event with no property id")
		return
	}

	var userID *string
	if u := session.UserID(); u != "" {
		userID = &u
	}

	event := &domain.ViewEvent{
		PropertyID:      session.PropertyID(),
		UserID:          userID,
		DurationSeconds: session.ElapsedSeconds(endTime),
		StartTime:       session.StartTime(),
		EndTime:         endTime,
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := s.events.Insert(ctx, event); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"property_id": event.PropertyID,
			"duration_s":  event.DurationSeconds,
		}).Error("Failed to record view event, dropping")
		return
	}

	s.log.WithFields(map[string]interface{}{
		"property_id": event.PropertyID,
		"user_id":     session.UserID(),
		"duration_s":  event.DurationSeconds,
	}).Debug("View event recorded")
}

// MostClicked returns the top-limit properties by view-event count,
// descending, enriched with listing summaries. A limit below 1 is coerced
// to 1. The result may be shorter than limit when fewer distinct properties
// have been viewed; no events at all yields an empty slice.
//
// Results are cached briefly in Redis; cache failures degrade to a direct
// database read.
func (s *TrackingService) MostClicked(ctx context.Context, limit int) ([]domain.ClickRank, error) {
	if limit < 1 {
		limit = 1
	}

	cacheKey := fmt.Sprintf(redis.KeyMostClicked, limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var ranks []domain.ClickRank
			if err := json.Unmarshal([]byte(cached), &ranks); err == nil {
				return ranks, nil
			}
			s.log.WithError(err).Warn("Discarding undecodable most-clicked cache entry")
		} else if !redis.IsNil(err) {
			s.log.WithError(err).Warn("Most-clicked cache read failed")
		}
	}

	ranks, err := s.events.MostClicked(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank properties: %w", err)
	}

	if s.cache != nil && len(ranks) > 0 {
		if data, err := json.Marshal(ranks); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, redis.TTLMostClicked); err != nil {
				s.log.WithError(err).Warn("Most-clicked cache write failed")
			}
		}
	}

	return ranks, nil
}
