package services

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
)

// ReviewStore is the slice of the report repository the review session needs.
// Narrow so tests can stand in a fake without a Firestore round-trip.
type ReviewStore interface {
	MemberIDs(ctx context.Context, leaderID string) ([]string, error)
	ListWindow(ctx context.Context, memberIDs []string, dayStart, dayEnd time.Time) ([]ReportEntry, error)
	UpdateComment(ctx context.Context, reportID, text string) error
}

type SessionState int

const (
	SessionIdle SessionState = iota
	SessionLoading
	SessionLoaded
	SessionEmpty
	SessionError
)

// ReviewSession holds an admin's day-windowed report listing. Day changes
// re-run the window query; each fetch is tagged with a generation so a
// completion that arrives after a newer selection is discarded instead of
// overwriting the newer day's data.
type ReviewSession struct {
	mu       sync.Mutex
	store    ReviewStore
	leaderID string

	gen     uint64
	day     time.Time
	state   SessionState
	reports []ReportEntry
	lastErr error
}

func NewReviewSession(store ReviewStore, leaderID string) *ReviewSession {
	return &ReviewSession{store: store, leaderID: leaderID, state: SessionIdle}
}

// SelectDay loads the report window for day, scoped to the session's admin.
// The returned entries are the result of this call; the shared session state
// is only updated when no newer SelectDay has superseded it. A chunk failure
// still yields the entries of the chunks that succeeded, alongside the error.
func (s *ReviewSession) SelectDay(ctx context.Context, day time.Time) ([]ReportEntry, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.day = day
	s.state = SessionLoading
	s.mu.Unlock()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	ids, err := s.store.MemberIDs(ctx, s.leaderID)
	if err != nil {
		return s.finish(gen, nil, err)
	}
	if len(ids) == 0 {
		return s.finish(gen, nil, nil)
	}

	entries, err := s.store.ListWindow(ctx, ids, dayStart, dayEnd)
	return s.finish(gen, entries, err)
}

// finish commits a fetch result unless a newer selection superseded it.
func (s *ReviewSession) finish(gen uint64, entries []ReportEntry, err error) ([]ReportEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// Stale completion: hand the result to its caller, leave the
		// session's held data alone.
		return entries, err
	}

	s.reports = entries
	s.lastErr = err
	switch {
	case err != nil:
		s.state = SessionError
	case len(entries) == 0:
		s.state = SessionEmpty
	default:
		s.state = SessionLoaded
	}
	return entries, err
}

// SaveComment writes the comment remotely, then reconciles the held listing
// by replacing the matching entry in place rather than re-fetching the
// window. On failure nothing changes and the caller keeps the typed text for
// retry. Reconciliation is skipped when the window changed while the write
// was in flight.
func (s *ReviewSession) SaveComment(ctx context.Context, reportID, text string) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	if err := s.store.UpdateComment(ctx, reportID, text); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	for i := range s.reports {
		if s.reports[i].ID == reportID {
			s.reports[i].Comments = text
			break
		}
	}
	return nil
}

// Snapshot copies the session's current state.
func (s *ReviewSession) Snapshot() (SessionState, time.Time, []ReportEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]ReportEntry, len(s.reports))
	copy(entries, s.reports)
	return s.state, s.day, entries, s.lastErr
}

// SessionManager keys review sessions by admin uid for the HTTP layer.
type SessionManager struct {
	mu       sync.Mutex
	store    ReviewStore
	sessions map[string]*ReviewSession
}

func NewSessionManager(store ReviewStore) *SessionManager {
	return &SessionManager{store: store, sessions: make(map[string]*ReviewSession)}
}

func (m *SessionManager) Session(adminUID string) *ReviewSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[adminUID]
	if !ok {
		s = NewReviewSession(m.store, adminUID)
		m.sessions[adminUID] = s
	}
	return s
}

// firestoreReviewStore backs a review session with the report repository.
type firestoreReviewStore struct {
	fb    *firestore.Client
	names NameResolver
}

func NewReviewStore(fb *firestore.Client) ReviewStore {
	return &firestoreReviewStore{fb: fb, names: NewNameResolver(fb)}
}

func (s *firestoreReviewStore) MemberIDs(ctx context.Context, leaderID string) ([]string, error) {
	members, err := ListMembers(ctx, s.fb, leaderID)
	if err != nil {
		return nil, err
	}
	return MemberIDs(members), nil
}

func (s *firestoreReviewStore) ListWindow(ctx context.Context, memberIDs []string, dayStart, dayEnd time.Time) ([]ReportEntry, error) {
	reports, winErr := ListReportsByWindow(ctx, s.fb, memberIDs, dayStart, dayEnd)

	entries, err := AttachNames(ctx, s.names, reports)
	if err != nil {
		return nil, err
	}
	// winErr may accompany partial results from the successful chunks.
	return entries, winErr
}

func (s *firestoreReviewStore) UpdateComment(ctx context.Context, reportID, text string) error {
	return UpdateReportComment(ctx, s.fb, reportID, text)
}
