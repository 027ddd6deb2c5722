package repository

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rdmitr/agentchat/internal/chat"
)

const saveQueueSize = 16

// Storage is the durable store contract the repository persists through.
type Storage interface {
	SaveAll(ctx context.Context, sessions []chat.Session) error
	LoadAll(ctx context.Context) ([]chat.Session, error)
}

type saveJob struct {
	snapshot []chat.Session
	ack      chan struct{} // flush sentinel when non-nil
}

// Repository is the single authoritative in-memory view of all chat sessions.
// Mutations apply synchronously under the lock and enqueue a snapshot of the
// whole collection onto a single-writer save queue, so overlapping saves can
// never clobber each other: the store always converges to the latest mutation.
type Repository struct {
	mu        sync.Mutex
	enqueueMu sync.Mutex // serializes snapshot+enqueue; queue order must match mutation order
	sessions  map[int64]*chat.Session
	activeID  int64 // 0 when no session is active
	memOnly   bool  // set after a persistence failure; saves stop

	store       Storage
	saveTimeout time.Duration
	jobs        chan saveJob
	stopped     chan struct{}
	closeOnce   sync.Once
}

// New creates a Repository backed by the given store and starts its save
// worker. A nil store means in-memory-only operation from the start.
func New(store Storage) *Repository {
	r := &Repository{
		sessions:    make(map[int64]*chat.Session),
		store:       store,
		saveTimeout: 10 * time.Second,
		jobs:        make(chan saveJob, saveQueueSize),
		stopped:     make(chan struct{}),
	}
	if store == nil {
		r.memOnly = true
	}
	go r.saveWorker()
	return r
}

func (r *Repository) saveWorker() {
	defer close(r.stopped)
	for job := range r.jobs {
		if job.ack != nil {
			close(job.ack)
			continue
		}
		if r.inMemoryOnly() {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), r.saveTimeout)
		err := r.store.SaveAll(ctx, job.snapshot)
		cancel()
		if err != nil {
			slog.Error("failed to persist session snapshot, continuing in-memory only", "error", err)
			r.disableSaves()
		}
	}
}

func (r *Repository) inMemoryOnly() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.memOnly
}

func (r *Repository) disableSaves() {
	r.mu.Lock()
	r.memOnly = true
	r.mu.Unlock()
}

// Load installs the stored collection, seeding the default sessions when the
// store is empty. On a persistence failure the repository stays empty but
// usable, with further saves disabled.
func (r *Repository) Load(ctx context.Context) {
	if r.inMemoryOnly() {
		r.installDefaults()
		return
	}

	loaded, err := r.store.LoadAll(ctx)
	if err != nil {
		slog.Error("failed to load sessions, continuing in-memory only", "error", err)
		r.disableSaves()
		return
	}

	if len(loaded) == 0 {
		r.installDefaults()
		return
	}

	r.mu.Lock()
	for i := range loaded {
		sess := loaded[i]
		r.sessions[sess.ID] = &sess
	}
	r.activeID = r.lowestIDLocked()
	r.mu.Unlock()

	slog.Debug("installed stored sessions",
		slog.Int("count", len(loaded)),
	)
}

func (r *Repository) installDefaults() {
	r.mutate(func() {
		for _, sess := range defaultSessions() {
			s := sess
			r.sessions[s.ID] = &s
		}
		r.activeID = r.lowestIDLocked()
	})
	slog.Debug("seeded default sessions")
}

// mutate applies fn under the lock, then schedules persistence of the whole
// collection. Callers never block on the write itself. enqueueMu is held
// across the snapshot and the channel send: without it, two concurrent
// mutations could enqueue their snapshots in the opposite order and the
// worker would persist the older state last. The save worker never takes
// enqueueMu, so a full queue cannot deadlock it.
func (r *Repository) mutate(fn func()) {
	r.enqueueMu.Lock()
	defer r.enqueueMu.Unlock()

	r.mu.Lock()
	fn()
	memOnly := r.memOnly
	var snap []chat.Session
	if !memOnly {
		snap = r.snapshotLocked()
	}
	r.mu.Unlock()

	if !memOnly {
		r.jobs <- saveJob{snapshot: snap}
	}
}

// snapshotLocked deep-copies the collection so in-flight saves never observe
// later mutations.
func (r *Repository) snapshotLocked() []chat.Session {
	snap := make([]chat.Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		snap = append(snap, *sess.Clone())
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i].ID < snap[j].ID })
	return snap
}

func (r *Repository) lowestIDLocked() int64 {
	var lowest int64
	for id := range r.sessions {
		if lowest == 0 || id < lowest {
			lowest = id
		}
	}
	return lowest
}

// NextID allocates the next session id: max(existing)+1, or 1 when the
// collection is empty. Ids count over live sessions only, so deleting the
// highest session can reissue its id.
func (r *Repository) NextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextIDLocked()
}

func (r *Repository) nextIDLocked() int64 {
	var max int64
	for id := range r.sessions {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Create inserts a new session with a freshly allocated id and activates it.
func (r *Repository) Create(title string) *chat.Session {
	var created *chat.Session
	r.mutate(func() {
		sess := chat.NewSession(r.nextIDLocked(), title)
		if sess.Title == "" {
			sess.Title = defaultTitle(sess.ID)
		}
		r.sessions[sess.ID] = sess
		r.activeID = sess.ID
		created = sess.Clone()
	})
	slog.Debug("created session",
		slog.Int64("id", created.ID),
		slog.String("title", created.Title),
	)
	return created
}

// Rename replaces the title of the session with that id. Unknown ids are
// ignored: the caller UI only offers ids it has displayed.
func (r *Repository) Rename(id int64, title string) {
	r.mutate(func() {
		if sess, ok := r.sessions[id]; ok {
			sess.Title = title
		}
	})
}

// AppendMessage appends a message to the session's history. Returns false
// when the session does not exist.
func (r *Repository) AppendMessage(id int64, m chat.Message) bool {
	var ok bool
	r.mutate(func() {
		var sess *chat.Session
		if sess, ok = r.sessions[id]; ok {
			sess.Append(m)
		}
	})
	return ok
}

// SetActive marks the session as active. Returns false for unknown ids,
// leaving the previous active session in place.
func (r *Repository) SetActive(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	r.activeID = id
	return true
}

// Delete removes the session. If it was active, the lowest remaining id
// becomes active.
func (r *Repository) Delete(id int64) bool {
	var ok bool
	r.mutate(func() {
		if _, ok = r.sessions[id]; !ok {
			return
		}
		delete(r.sessions, id)
		if r.activeID == id {
			r.activeID = r.lowestIDLocked()
		}
	})
	return ok
}

// Get returns a copy of the session with that id.
func (r *Repository) Get(id int64) (*chat.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// List returns copies of all sessions ordered by id ascending, independent of
// storage order.
func (r *Repository) List() []chat.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// ActiveID returns the active session id; ok is false when the collection is
// empty.
func (r *Repository) ActiveID() (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activeID == 0 {
		return 0, false
	}
	return r.activeID, true
}

// Flush blocks until every save scheduled before the call has been written.
func (r *Repository) Flush() {
	if r.inMemoryOnly() {
		return
	}
	ack := make(chan struct{})
	r.jobs <- saveJob{ack: ack}
	<-ack
}

// Close drains pending saves and stops the worker.
func (r *Repository) Close() {
	r.closeOnce.Do(func() {
		close(r.jobs)
		<-r.stopped
	})
}
