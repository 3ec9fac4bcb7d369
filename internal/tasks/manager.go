package tasks

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ent0n29/tasktracker/internal/observability"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrInvalidSeed   = errors.New("invalid seed task")
)

const DefaultSyncDelay = 1200 * time.Millisecond

// maxIDAttempts bounds regeneration when the id source returns an id that is
// already taken.
const maxIDAttempts = 8

// Manager owns an ordered collection of tasks. It is the only code path that
// creates, mutates or removes a Task; callers always receive copies.
type Manager struct {
	mu sync.RWMutex

	tasks []Task
	index map[string]int

	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	metrics   *observability.Metrics
	syncDelay time.Duration
}

type Option func(*Manager)

// WithTasks pre-seeds the store. The slice is copied; later writes to it by the
// caller do not reach the store.
func WithTasks(seed []Task) Option {
	return func(m *Manager) {
		m.tasks = make([]Task, len(seed))
		copy(m.tasks, seed)
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		if newID != nil {
			m.newID = newID
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithSyncDelay overrides the simulated sync latency. Non-positive values keep
// DefaultSyncDelay.
func WithSyncDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.syncDelay = d
		}
	}
}

func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		logger:    slog.Default(),
		syncDelay: DefaultSyncDelay,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.index = make(map[string]int, len(m.tasks))
	for i, t := range m.tasks {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := m.index[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidSeed, t.ID)
		}
		m.index[t.ID] = i
	}
	if m.metrics != nil {
		m.metrics.StoreSize.Set(float64(len(m.tasks)))
	}
	return m, nil
}

func (m *Manager) CreateTask(title, description string) (Task, error) {
	if title == "" {
		return Task{}, ErrTitleRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.uniqueIDLocked()
	if err != nil {
		return Task{}, err
	}
	now := m.now()
	task := Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.index[id] = len(m.tasks)
	m.tasks = append(m.tasks, task)

	if m.metrics != nil {
		m.metrics.TasksCreated.Inc()
		m.metrics.StoreSize.Set(float64(len(m.tasks)))
	}
	return task.Clone(), nil
}

// GetTasks returns a snapshot of the stored tasks in insertion order. When a
// status is given only tasks in that status are returned; an empty status
// matches every task and only the first status argument is consulted. The
// result is never nil.
func (m *Manager) GetTasks(status ...TaskStatus) []Task {
	var filter TaskStatus
	if len(status) > 0 {
		filter = status[0]
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if filter != "" && t.Status != filter {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

func (m *Manager) GetTask(id string) (Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return m.tasks[i].Clone(), nil
}

func (m *Manager) UpdateStatus(id string, status TaskStatus) (Task, error) {
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	task := &m.tasks[i]
	now := m.now()
	// keep updated_at monotonic even if the clock steps backwards
	if now.Before(task.UpdatedAt) {
		now = task.UpdatedAt
	}
	task.Status = status
	task.UpdatedAt = now

	if m.metrics != nil {
		m.metrics.ObserveStatusChange(string(status))
	}
	return task.Clone(), nil
}

func (m *Manager) DeleteTask(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return false
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	delete(m.index, id)
	for j := i; j < len(m.tasks); j++ {
		m.index[m.tasks[j].ID] = j
	}

	if m.metrics != nil {
		m.metrics.TasksDeleted.Inc()
		m.metrics.StoreSize.Set(float64(len(m.tasks)))
	}
	return true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// SyncToDatabase simulates pushing the store to an external database. It
// logs the start, waits the configured delay on its own goroutine and then
// logs the number of tasks held at that moment, which may differ from the
// count when the sync was started. It never touches store contents and cannot
// be cancelled once started.
func (m *Manager) SyncToDatabase() *Sync {
	s := newSync()
	startedAt := m.now()
	start := time.Now()
	m.logger.Info("syncing tasks to database")

	go func() {
		timer := time.NewTimer(m.syncDelay)
		defer timer.Stop()
		<-timer.C

		count := m.Len()
		m.logger.Info("tasks synced successfully", "count", count)
		if m.metrics != nil {
			m.metrics.ObserveSync(time.Since(start), count)
		}
		s.finish(SyncResult{
			Count:      count,
			StartedAt:  startedAt,
			FinishedAt: m.now(),
		})
	}()
	return s
}

func (m *Manager) uniqueIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := strings.TrimSpace(m.newID())
		if id == "" {
			continue
		}
		if _, taken := m.index[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique task id after %d attempts", maxIDAttempts)
}
