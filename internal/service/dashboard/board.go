package dashboard

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
)

// snapshot is one completed load of a board.
type snapshot struct {
	token    uint64
	days     int
	loc      *time.Location
	result   attendance.LoadResult
	message  string
	loadedAt time.Time
}

// boardKey identifies the board of one viewer for one window. Tabs with
// different days or timezones get separate boards.
type boardKey struct {
	userID string
	days   int
	zone   string
}

func windowKey(userID string, days int, loc *time.Location) boardKey {
	return boardKey{userID: userID, days: days, zone: loc.String()}
}

// Board is the dashboard state of one viewer window. Every load takes a token
// from Begin and its result is applied only when no later load has been applied.
type Board struct {
	mu       sync.Mutex
	issued   uint64
	current  snapshot
	loaded   bool
	lastUsed time.Time
}

// Begin issues the token for a new load.
func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}

// Apply stores snap when its token is newer than the applied one and returns
// the snapshot that is current afterwards.
func (b *Board) Apply(snap snapshot) (snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded && snap.token <= b.current.token {
		return b.current, false
	}
	b.current = snap
	b.loaded = true
	return b.current, true
}

// Current returns the applied snapshot, if any.
func (b *Board) Current() (snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.loaded
}

func (b *Board) touch(now time.Time) {
	b.mu.Lock()
	b.lastUsed = now
	b.mu.Unlock()
}

func (b *Board) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUsed.Before(cutoff)
}

// boardRegistry holds one Board per viewer window.
type boardRegistry struct {
	mu     sync.Mutex
	boards map[boardKey]*Board
}

func newBoardRegistry() *boardRegistry {
	return &boardRegistry{boards: make(map[boardKey]*Board)}
}

func (r *boardRegistry) get(key boardKey) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boards[key]
	if !ok {
		b = &Board{}
		r.boards[key] = b
	}
	return b
}

// boardsOf returns every board of userID.
func (r *boardRegistry) boardsOf(userID string) []*Board {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Board
	for key, b := range r.boards {
		if key.userID == userID {
			out = append(out, b)
		}
	}
	return out
}

// evict drops boards unused since cutoff unless keep reports their viewer as watched.
func (r *boardRegistry) evict(cutoff time.Time, keep func(userID string) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for key, b := range r.boards {
		if keep(key.userID) || !b.idleSince(cutoff) {
			continue
		}
		delete(r.boards, key)
		evicted++
	}
	return evicted
}

func (r *boardRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}
