// Package session keeps the live boards of a server process in memory.
// Boards are never written anywhere and disappear with the process.
package session

import (
	crand "crypto/rand"
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minefield/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

// Session is one board and its bookkeeping. Field must only be touched
// inside [Session.Do].
type Session struct {
	ID       int64
	PlayerID *int64

	mu        sync.Mutex
	now       func() time.Time
	field     *mines.Minefield
	startedAt time.Time
	endedAt   *time.Time
	recorded  bool
	touchedAt time.Time
}

// Snapshot is a copy of a session taken under its lock.
type Snapshot struct {
	ID           int64
	PlayerID     *int64
	Grid         mines.Grid
	Rows         int
	Cols         int
	MinesPercent float64
	MineCount    int
	MinesLeft    int
	State        mines.State
	StartedAt    time.Time
	EndedAt      *time.Time
}

// Outcome describes a game that has just ended inside [Session.Do].
type Outcome struct {
	Snapshot
	Won bool
}

// Do runs fn with exclusive access to the board. When fn resets the board,
// the clock restarts. When fn ends the game, the end time is stamped and the
// returned outcome is non-nil; that happens at most once between resets, so
// a game undone and finished again by flagging is not reported twice.
func (s *Session) Do(fn func(m *mines.Minefield) error) (Snapshot, *Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchedAt = s.now()
	generation := s.field.Generation()
	err := fn(s.field)
	after := s.field.State()

	if s.field.Generation() != generation {
		s.startedAt = s.now().UTC()
		s.endedAt = nil
		s.recorded = false
	}

	var outcome *Outcome
	if finished(after) && s.endedAt == nil {
		t := s.now().UTC()
		s.endedAt = &t
	}
	if finished(after) && !s.recorded {
		s.recorded = true
		outcome = &Outcome{Snapshot: s.snapshot(), Won: after == mines.Won}
	}

	return s.snapshot(), outcome, err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:           s.ID,
		PlayerID:     s.PlayerID,
		Grid:         s.field.Grid(),
		Rows:         s.field.Rows(),
		Cols:         s.field.Cols(),
		MinesPercent: s.field.MinesPercent(),
		MineCount:    s.field.MineCount(),
		MinesLeft:    s.field.MinesLeft(),
		State:        s.field.State(),
		StartedAt:    s.startedAt,
		EndedAt:      s.endedAt,
	}
}

func finished(s mines.State) bool {
	return s == mines.Won || s == mines.Lost
}

// Store is a registry of sessions keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	newID    func() int64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		newID:    randomID,
		now:      time.Now,
	}
}

// randomID returns an unguessable id in [1, MaxInt64].
func randomID() int64 {
	n, err := crand.Int(crand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return rand.Int64N(math.MaxInt64) + 1
	}
	return n.Int64() + 1
}

// SetIDSource replaces the generator of session ids; meant for tests.
// Ids that are taken or not positive are drawn again.
func (st *Store) SetIDSource(newID func() int64) {
	st.newID = newID
}

// SetClock replaces the store's clock; meant for tests.
func (st *Store) SetClock(now func() time.Time) {
	st.now = now
}

func (st *Store) Create(field *mines.Minefield, playerID *int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.newID()
	for id <= 0 || st.sessions[id] != nil {
		id = st.newID()
	}

	s := &Session{
		ID:        id,
		PlayerID:  playerID,
		now:       st.now,
		field:     field,
		startedAt: st.now().UTC(),
		touchedAt: st.now(),
	}
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Get(id int64) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Prune drops every session nobody has played for longer than idle and
// returns how many were dropped.
func (st *Store) Prune(idle time.Duration) int {
	cutoff := st.now().Add(-idle)

	st.mu.Lock()
	defer st.mu.Unlock()

	pruned := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		stale := s.touchedAt.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			pruned++
		}
	}
	return pruned
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
