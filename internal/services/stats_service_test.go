package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewedReport(createdAt time.Time, latency time.Duration, action models.ReviewAction) models.Report {
	reviewedAt := createdAt.Add(latency)
	return models.Report{
		ID:          uuid.New(),
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		ReporterID:  uuid.New(),
		Reason:      models.ReasonSpam,
		Status:      models.StatusReviewed,
		Priority:    models.PriorityMedium,
		Action:      &action,
		ReviewedAt:  &reviewedAt,
		CreatedAt:   createdAt,
	}
}

func TestOverview_AverageLatencyExcludesPending(t *testing.T) {
	st := newMemStore()
	now := time.Now().UTC()
	ctx := context.Background()

	r1 := reviewedReport(now.Add(-10*time.Hour), 2*time.Hour, models.ActionRemove)
	r2 := reviewedReport(now.Add(-20*time.Hour), 6*time.Hour, models.ActionApprove)
	pending := models.Report{
		ID:          uuid.New(),
		ContentID:   "post-2",
		ContentType: models.ContentComment,
		ReporterID:  uuid.New(),
		Reason:      models.ReasonHarassment,
		Status:      models.StatusPending,
		Priority:    models.PriorityCritical,
		CreatedAt:   now.Add(-1 * time.Hour),
	}
	for _, r := range []models.Report{r1, r2, pending} {
		report := r
		require.NoError(t, st.Reports().Create(ctx, &report))
	}

	svc := NewStatsService(st)
	stats, err := svc.Overview(ctx, "7d")
	require.NoError(t, err)

	assert.Equal(t, "7d", stats.Timeframe)
	assert.Equal(t, 3, stats.TotalReports)
	// (2h + 6h) / 2 reviewed reports; the pending one is excluded, not
	// counted as zero.
	assert.InDelta(t, 4.0, stats.AverageReviewTime, 0.001)

	assert.Equal(t, 2, stats.ByStatus["reviewed"])
	assert.Equal(t, 1, stats.ByStatus["pending"])
	assert.Equal(t, 2, stats.ByReason["spam"])
	assert.Equal(t, 1, stats.ByReason["harassment"])
	assert.Equal(t, 2, stats.ByContentType["post"])
	assert.Equal(t, 1, stats.ByContentType["comment"])
	assert.Equal(t, 1, stats.ByPriority["critical"])
	assert.Equal(t, 1, stats.ByAction["remove"])
	assert.Equal(t, 1, stats.ByAction["approve"])
}

func TestOverview_WindowFiltersOldReports(t *testing.T) {
	st := newMemStore()
	now := time.Now().UTC()
	ctx := context.Background()

	recent := reviewedReport(now.Add(-3*time.Hour), time.Hour, models.ActionWarn)
	old := reviewedReport(now.Add(-48*time.Hour), time.Hour, models.ActionRemove)
	for _, r := range []models.Report{recent, old} {
		report := r
		require.NoError(t, st.Reports().Create(ctx, &report))
	}

	svc := NewStatsService(st)

	stats, err := svc.Overview(ctx, "24h")
	require.NoError(t, err)
	assert.Equal(t, "24h", stats.Timeframe)
	assert.Equal(t, 1, stats.TotalReports)
	assert.Equal(t, 1, stats.ByAction["warn"])

	stats, err = svc.Overview(ctx, "30d")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalReports)
}

func TestOverview_UnknownTimeframeDefaultsToWeek(t *testing.T) {
	svc := NewStatsService(newMemStore())

	stats, err := svc.Overview(context.Background(), "90d")
	require.NoError(t, err)
	assert.Equal(t, "7d", stats.Timeframe)
	assert.Equal(t, 0, stats.TotalReports)
	assert.Zero(t, stats.AverageReviewTime)
}
