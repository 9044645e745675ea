package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
)

// StatsService computes rollups over a lookback window for the moderation
// dashboard.
type StatsService struct {
	store store.Store
}

func NewStatsService(st store.Store) *StatsService {
	return &StatsService{store: st}
}

func lookback(timeframe string) (string, time.Duration) {
	switch timeframe {
	case "24h":
		return "24h", 24 * time.Hour
	case "30d":
		return "30d", 30 * 24 * time.Hour
	default:
		return "7d", 7 * 24 * time.Hour
	}
}

// Overview aggregates reports created within the window. Review latency is
// averaged only over reports that have been reviewed; pending reports are
// excluded rather than counted as zero.
func (s *StatsService) Overview(ctx context.Context, timeframe string) (*dto.StatsResponse, error) {
	window, duration := lookback(timeframe)
	since := time.Now().UTC().Add(-duration)

	reports, err := s.store.Reports().CreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports for stats: %w", err)
	}

	return aggregate(window, reports), nil
}

func aggregate(window string, reports []models.Report) *dto.StatsResponse {
	stats := &dto.StatsResponse{
		Timeframe:     window,
		TotalReports:  len(reports),
		ByStatus:      make(map[string]int),
		ByReason:      make(map[string]int),
		ByContentType: make(map[string]int),
		ByPriority:    make(map[string]int),
		ByAction:      make(map[string]int),
	}

	var reviewedCount int
	var totalLatency time.Duration

	for _, r := range reports {
		stats.ByStatus[string(r.Status)]++
		stats.ByReason[string(r.Reason)]++
		stats.ByContentType[string(r.ContentType)]++
		stats.ByPriority[string(r.Priority)]++
		if r.Action != nil {
			stats.ByAction[string(*r.Action)]++
		}
		if r.ReviewedAt != nil {
			reviewedCount++
			totalLatency += r.ReviewedAt.Sub(r.CreatedAt)
		}
	}

	if reviewedCount > 0 {
		hours := totalLatency.Hours() / float64(reviewedCount)
		stats.AverageReviewTime = math.Round(hours*100) / 100
	}

	return stats
}
