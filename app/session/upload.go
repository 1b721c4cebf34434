package session

import (
	"sync"

	"github.com/m3rciful/filebot/app/model"
)

// Upload is an in-progress upload session for a single admin.
type Upload struct {
	CategoryID string
	Entries    []model.FileEntry
}

// UploadTracker keeps per-admin upload sessions in memory. Sessions
// survive until finished or cancelled; restarting the process drops them.
type UploadTracker struct {
	mu       sync.Mutex
	sessions map[int64]*Upload
}

// NewUploadTracker returns an empty tracker.
func NewUploadTracker() *UploadTracker {
	return &UploadTracker{sessions: make(map[int64]*Upload)}
}

// Start opens a session targeting the given category. Any previous
// session for the user is replaced.
func (t *UploadTracker) Start(userID int64, categoryID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[userID] = &Upload{CategoryID: categoryID}
}

// InProgress reports whether the user has an open session.
func (t *UploadTracker) InProgress(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sessions[userID]
	return ok
}

// CategoryID returns the target category of the open session.
func (t *UploadTracker) CategoryID(userID int64) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	if !ok {
		return "", false
	}
	return s.CategoryID, true
}

// Add appends a collected entry and returns the new total.
func (t *UploadTracker) Add(userID int64, entry model.FileEntry) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	if !ok {
		return 0, false
	}
	s.Entries = append(s.Entries, entry)
	return len(s.Entries), true
}

// Finish closes the session and returns everything collected so far.
func (t *UploadTracker) Finish(userID int64) (Upload, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	if !ok {
		return Upload{}, false
	}
	delete(t.sessions, userID)
	return *s, true
}

// Cancel drops the session without returning its contents.
func (t *UploadTracker) Cancel(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[userID]; !ok {
		return false
	}
	delete(t.sessions, userID)
	return true
}
