package service

import (
	"context"

	"github.com/jose-valero/staff-tracker-bot/internal/infra/storage"
)

// Fakes in-memory para testear los services sin Postgres ni gateway vivo.

type fakeActivityRepo struct {
	records   map[string]storage.ActivityRecord
	getErr    error
	getAllErr error
	incErr    error
	resets    int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{records: map[string]storage.ActivityRecord{}}
}

func (f *fakeActivityRepo) Get(_ context.Context, userID string) (storage.ActivityRecord, error) {
	if f.getErr != nil {
		return storage.ActivityRecord{UserID: userID}, f.getErr
	}
	rec, ok := f.records[userID]
	if !ok {
		return storage.ActivityRecord{UserID: userID}, nil
	}
	return rec, nil
}

func (f *fakeActivityRepo) IncrementMessages(_ context.Context, userID string) error {
	if f.incErr != nil {
		return f.incErr
	}
	rec := f.records[userID]
	rec.UserID = userID
	rec.Messages++
	f.records[userID] = rec
	return nil
}

func (f *fakeActivityRepo) IncrementModActions(_ context.Context, userID string) error {
	if f.incErr != nil {
		return f.incErr
	}
	rec := f.records[userID]
	rec.UserID = userID
	rec.ModActions++
	f.records[userID] = rec
	return nil
}

func (f *fakeActivityRepo) GetAll(_ context.Context) (map[string]storage.ActivityRecord, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	out := make(map[string]storage.ActivityRecord, len(f.records))
	for k, v := range f.records {
		out[k] = v
	}
	return out, nil
}

func (f *fakeActivityRepo) ResetAll(_ context.Context) error {
	f.resets++
	f.records = map[string]storage.ActivityRecord{}
	return nil
}

type fakeConfigRepo struct {
	values map[string]string
	setErr error
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{values: map[string]string{}}
}

func (f *fakeConfigRepo) Get(_ context.Context, key, def string) string {
	if v, ok := f.values[key]; ok {
		return v
	}
	return def
}

func (f *fakeConfigRepo) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

type fakeGateway struct {
	entries  []AuditEntry
	auditErr error
	staff    map[string]bool
	names    map[string]string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{staff: map[string]bool{}, names: map[string]string{}}
}

func (f *fakeGateway) AuditEntries(_ context.Context, _ string, _ AuditAction, _ int) ([]AuditEntry, error) {
	if f.auditErr != nil {
		return nil, f.auditErr
	}
	return f.entries, nil
}

func (f *fakeGateway) HasStaffRole(_, userID string) bool { return f.staff[userID] }

func (f *fakeGateway) DisplayName(_, userID string) (string, bool) {
	n, ok := f.names[userID]
	return n, ok
}

type fakePublisher struct {
	boards    []string // títulos publicados
	lines     [][]string
	notices   []string
	boardErr  error
	noticeErr error
}

func (f *fakePublisher) PublishBoard(_ context.Context, title string, lines []string) error {
	if f.boardErr != nil {
		return f.boardErr
	}
	f.boards = append(f.boards, title)
	f.lines = append(f.lines, lines)
	return nil
}

func (f *fakePublisher) PublishNotice(_ context.Context, text string) error {
	if f.noticeErr != nil {
		return f.noticeErr
	}
	f.notices = append(f.notices, text)
	return nil
}
