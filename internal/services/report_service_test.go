package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(st *memStore, contentID string, authorID uuid.UUID) {
	st.addContent(models.Content{
		ID:       contentID,
		Type:     models.ContentPost,
		AuthorID: &authorID,
		Body:     "some post body",
	})
}

func validSubmission(contentID string) *dto.SubmitReportRequest {
	return &dto.SubmitReportRequest{
		ContentID:   contentID,
		ContentType: "post",
		Reason:      "spam",
	}
}

func TestSubmit_CreatesPendingReport(t *testing.T) {
	st := newMemStore()
	authorID := uuid.New()
	seedPost(st, "post-1", authorID)
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)

	resp, err := svc.Submit(context.Background(), uuid.New(), validSubmission("post-1"))
	require.NoError(t, err)

	assert.Equal(t, "submitted", resp.Status)
	assert.Equal(t, "1-2 days", resp.EstimatedReviewTime)

	report, err := st.Reports().GetByID(context.Background(), resp.ReportID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Equal(t, models.PriorityMedium, report.Priority)
	require.NotNil(t, report.ContentAuthorID)
	assert.Equal(t, authorID, *report.ContentAuthorID)
	assert.NotEmpty(t, report.ContentSnapshot)
}

func TestSubmit_ValidationRejectedBeforePersistence(t *testing.T) {
	st := newMemStore()
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)
	reporterID := uuid.New()

	tests := []struct {
		name string
		req  *dto.SubmitReportRequest
	}{
		{"missing content id", &dto.SubmitReportRequest{ContentType: "post", Reason: "spam"}},
		{"bad content type", &dto.SubmitReportRequest{ContentID: "x", ContentType: "video", Reason: "spam"}},
		{"bad reason", &dto.SubmitReportRequest{ContentID: "x", ContentType: "post", Reason: "dislike"}},
		{"short description", &dto.SubmitReportRequest{ContentID: "x", ContentType: "post", Reason: "spam", Description: "too short"}},
		{"bad evidence url", &dto.SubmitReportRequest{ContentID: "x", ContentType: "post", Reason: "spam", Evidence: []string{"ftp://evil"}}},
		{"too many evidence urls", &dto.SubmitReportRequest{ContentID: "x", ContentType: "post", Reason: "spam", Evidence: []string{
			"https://a.example", "https://b.example", "https://c.example",
			"https://d.example", "https://e.example", "https://f.example",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), reporterID, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, st.reports)
}

func TestSubmit_DuplicateOpenReportConflicts(t *testing.T) {
	st := newMemStore()
	seedPost(st, "post-1", uuid.New())
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)
	reporterID := uuid.New()

	first, err := svc.Submit(context.Background(), reporterID, validSubmission("post-1"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), reporterID, validSubmission("post-1"))
	assert.ErrorIs(t, err, ErrDuplicateReport)

	// A different reporter is not blocked.
	_, err = svc.Submit(context.Background(), uuid.New(), validSubmission("post-1"))
	assert.NoError(t, err)

	// Once the first report is closed, the same reporter may file again.
	report, err := st.Reports().GetByID(context.Background(), first.ReportID)
	require.NoError(t, err)
	report.Status = models.StatusReviewed
	require.NoError(t, st.Reports().SaveReview(context.Background(), report))

	_, err = svc.Submit(context.Background(), reporterID, validSubmission("post-1"))
	assert.NoError(t, err)
}

func TestSubmit_DegradedContentLookupStillSucceeds(t *testing.T) {
	st := newMemStore()
	st.failContentGet = true
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)

	resp, err := svc.Submit(context.Background(), uuid.New(), validSubmission("post-1"))
	require.NoError(t, err)

	report, err := st.Reports().GetByID(context.Background(), resp.ReportID)
	require.NoError(t, err)
	assert.Nil(t, report.ContentAuthorID)
	assert.Empty(t, report.ContentSnapshot)
	assert.Nil(t, report.Analysis)
}

func TestSubmit_ClassifierFailureIsSwallowed(t *testing.T) {
	st := newMemStore()
	seedPost(st, "post-1", uuid.New())
	svc := NewReportService(st, stubClassifier{err: context.DeadlineExceeded}, &recordingSink{}, time.Second)

	resp, err := svc.Submit(context.Background(), uuid.New(), validSubmission("post-1"))
	require.NoError(t, err)

	report, err := st.Reports().GetByID(context.Background(), resp.ReportID)
	require.NoError(t, err)
	assert.Nil(t, report.Analysis)
	assert.Equal(t, models.PriorityMedium, report.Priority)
}

func TestSubmit_HighRiskAnalysisHidesContent(t *testing.T) {
	st := newMemStore()
	seedPost(st, "post-1", uuid.New())
	cl := stubClassifier{verdict: &classifier.Verdict{
		RiskLevel:     models.RiskHigh,
		ViolationType: classifier.ViolationSpam,
		Confidence:    0.9,
	}}
	svc := NewReportService(st, cl, &recordingSink{}, time.Second)

	resp, err := svc.Submit(context.Background(), uuid.New(), validSubmission("post-1"))
	require.NoError(t, err)

	report, err := st.Reports().GetByID(context.Background(), resp.ReportID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, report.Priority)

	content, ok := st.getContent(models.ContentPost, "post-1")
	require.True(t, ok)
	assert.True(t, content.Hidden)
}

func TestSubmit_CriticalReportNotifiesAdmins(t *testing.T) {
	st := newMemStore()
	seedPost(st, "post-1", uuid.New())
	sink := &recordingSink{}
	svc := NewReportService(st, stubClassifier{}, sink, time.Second)

	req := validSubmission("post-1")
	req.Reason = "hate_speech"
	resp, err := svc.Submit(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, "1-2 hours", resp.EstimatedReviewTime)

	require.Len(t, sink.messages, 1)
	assert.Equal(t, models.AudienceAdmin, sink.messages[0].Audience)
	assert.Equal(t, "critical_report", sink.messages[0].Kind)

	content, ok := st.getContent(models.ContentPost, "post-1")
	require.True(t, ok)
	assert.True(t, content.Hidden)
}

func TestSubmit_ProfileTextExtraction(t *testing.T) {
	st := newMemStore()
	st.addContent(models.Content{
		ID:   "user-9",
		Type: models.ContentProfile,
		Name: "Some Seller",
		Bio:  "buy followers here",
	})

	var captured string
	cl := classifierFunc(func(_ context.Context, text string) (*classifier.Verdict, error) {
		captured = text
		return nil, nil
	})
	svc := NewReportService(st, cl, &recordingSink{}, time.Second)

	req := validSubmission("user-9")
	req.ContentType = "profile"
	_, err := svc.Submit(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Contains(t, captured, "Some Seller")
	assert.Contains(t, captured, "buy followers here")
}

func TestList_SnapshotNeverLeaksIntoListView(t *testing.T) {
	st := newMemStore()
	seedPost(st, "post-1", uuid.New())
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)

	_, err := svc.Submit(context.Background(), uuid.New(), validSubmission("post-1"))
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), dto.QueueQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Reports, 1)

	raw, err := json.Marshal(resp.Reports[0])
	require.NoError(t, err)
	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &asMap))
	assert.NotContains(t, asMap, "content_snapshot")
}

func TestList_FiltersAndPagination(t *testing.T) {
	st := newMemStore()
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)

	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		status := models.StatusPending
		if i%5 == 0 {
			status = models.StatusReviewed
		}
		report := models.Report{
			ID:          uuid.New(),
			ContentID:   "post-n",
			ContentType: models.ContentPost,
			ReporterID:  uuid.New(),
			Reason:      models.ReasonSpam,
			Status:      status,
			Priority:    models.PriorityMedium,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.Reports().Create(context.Background(), &report))
	}

	// Default filter: pending only, newest first.
	resp, err := svc.List(context.Background(), dto.QueueQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Reports, 10)
	assert.Equal(t, int64(20), resp.Pagination.TotalCount)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasMore)
	assert.True(t, resp.Reports[0].CreatedAt.After(resp.Reports[9].CreatedAt))

	// Last page.
	resp, err = svc.List(context.Background(), dto.QueueQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Reports, 10)
	assert.False(t, resp.Pagination.HasMore)

	// "all" disables the status filter.
	resp, err = svc.List(context.Background(), dto.QueueQuery{Status: "all", Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.Pagination.TotalCount)
}

func TestGet_ResolvesIdentitySummaries(t *testing.T) {
	st := newMemStore()
	authorID := uuid.New()
	reporterID := uuid.New()
	st.addUser(models.User{ID: reporterID, DisplayName: "Reporting User", AvatarURL: "https://cdn.example/r.png"})
	seedPost(st, "post-1", authorID)
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)

	resp, err := svc.Submit(context.Background(), reporterID, validSubmission("post-1"))
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), resp.ReportID)
	require.NoError(t, err)
	require.NotNil(t, detail.ReporterInfo)
	assert.Equal(t, "Reporting User", detail.ReporterInfo.DisplayName)
	// The author has no user record; the summary is nil rather than an error.
	assert.Nil(t, detail.AuthorInfo)
	assert.NotEmpty(t, detail.ContentSnapshot)
}

func TestGet_NotFound(t *testing.T) {
	st := newMemStore()
	svc := NewReportService(st, stubClassifier{}, &recordingSink{}, time.Second)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

// classifierFunc adapts a function to the classifier interface.
type classifierFunc func(ctx context.Context, text string) (*classifier.Verdict, error)

func (f classifierFunc) Classify(ctx context.Context, text string) (*classifier.Verdict, error) {
	return f(ctx, text)
}
