package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"github.com/google/uuid"
)

// memStore is an in-memory store.Store used by the service tests.
type memStore struct {
	mu            sync.Mutex
	reports       map[uuid.UUID]models.Report
	contents      map[string]models.Content
	users         map[uuid.UUID]models.User
	warnings      []models.Warning
	notifications []models.Notification

	failContentGet  bool
	failMarkRemoved bool
	failSuspend     bool
}

func newMemStore() *memStore {
	return &memStore{
		reports:  make(map[uuid.UUID]models.Report),
		contents: make(map[string]models.Content),
		users:    make(map[uuid.UUID]models.User),
	}
}

func contentKey(t models.ContentType, id string) string {
	return string(t) + ":" + id
}

func (m *memStore) Reports() store.ReportStore             { return memReports{m} }
func (m *memStore) Contents() store.ContentStore           { return memContents{m} }
func (m *memStore) Users() store.UserStore                 { return memUsers{m} }
func (m *memStore) Warnings() store.WarningStore           { return memWarnings{m} }
func (m *memStore) Notifications() store.NotificationStore { return memNotifications{m} }

func (m *memStore) Atomic(_ context.Context, fn func(store.Store) error) error {
	return fn(m)
}

// addContent seeds a content record.
func (m *memStore) addContent(content models.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[contentKey(content.Type, content.ID)] = content
}

// addUser seeds a user record.
func (m *memStore) addUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *memStore) getContent(t models.ContentType, id string) (models.Content, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.contents[contentKey(t, id)]
	return content, ok
}

type memReports struct{ m *memStore }

func (r memReports) Create(_ context.Context, report *models.Report) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	r.m.reports[report.ID] = *report
	return nil
}

func (r memReports) GetByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	report, ok := r.m.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &report, nil
}

func (r memReports) HasOpen(_ context.Context, contentID string, reporterID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, report := range r.m.reports {
		if report.ContentID == contentID && report.ReporterID == reporterID && report.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r memReports) List(_ context.Context, filter store.ReportFilter) ([]models.Report, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var matched []models.Report
	for _, report := range r.m.reports {
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && report.Priority != filter.Priority {
			continue
		}
		if filter.ContentType != "" && report.ContentType != filter.ContentType {
			continue
		}
		matched = append(matched, report)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r memReports) SaveReview(_ context.Context, report *models.Report) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.reports[report.ID] = *report
	return nil
}

func (r memReports) CreatedSince(_ context.Context, since time.Time) ([]models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var matched []models.Report
	for _, report := range r.m.reports {
		if !report.CreatedAt.Before(since) {
			matched = append(matched, report)
		}
	}
	return matched, nil
}

type memContents struct{ m *memStore }

func (c memContents) Get(_ context.Context, contentType models.ContentType, id string) (*models.Content, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.failContentGet {
		return nil, errors.New("content store unavailable")
	}
	content, ok := c.m.contents[contentKey(contentType, id)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &content, nil
}

func (c memContents) SetHidden(_ context.Context, contentType models.ContentType, id string, hidden bool) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	key := contentKey(contentType, id)
	if content, ok := c.m.contents[key]; ok {
		content.Hidden = hidden
		c.m.contents[key] = content
	}
	return nil
}

func (c memContents) MarkRemoved(_ context.Context, contentType models.ContentType, id string, at time.Time, reason string) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.failMarkRemoved {
		return errors.New("content store write failed")
	}
	key := contentKey(contentType, id)
	if content, ok := c.m.contents[key]; ok {
		content.Removed = true
		content.Hidden = true
		content.RemovedAt = &at
		content.RemovalReason = reason
		c.m.contents[key] = content
	}
	return nil
}

type memUsers struct{ m *memStore }

func (u memUsers) Get(_ context.Context, id uuid.UUID) (*models.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	user, ok := u.m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (u memUsers) Suspend(_ context.Context, id uuid.UUID, until time.Time, reason string) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	if u.m.failSuspend {
		return errors.New("user store write failed")
	}
	user, ok := u.m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Suspended = true
	user.SuspendedUntil = &until
	user.SuspensionReason = reason
	u.m.users[id] = user
	return nil
}

type memWarnings struct{ m *memStore }

func (w memWarnings) Create(_ context.Context, warning *models.Warning) error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.m.warnings = append(w.m.warnings, *warning)
	return nil
}

type memNotifications struct{ m *memStore }

func (n memNotifications) Create(_ context.Context, notification *models.Notification) error {
	n.m.mu.Lock()
	defer n.m.mu.Unlock()
	n.m.notifications = append(n.m.notifications, *notification)
	return nil
}

// recordingSink captures messages sent through the notify capability.
type recordingSink struct {
	mu       sync.Mutex
	messages []notify.Message
	err      error
}

func (s *recordingSink) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// stubClassifier returns a fixed verdict or error.
type stubClassifier struct {
	verdict *classifier.Verdict
	err     error
}

func (s stubClassifier) Classify(context.Context, string) (*classifier.Verdict, error) {
	return s.verdict, s.err
}
