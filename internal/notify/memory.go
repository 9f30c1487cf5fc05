package notify

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Memory is an in-process Scheduler that never delivers anything. It backs
// tests and headless environments where desktop notifications are unwanted.
type Memory struct {
	mu      sync.Mutex
	granted bool
	seq     int
	pending map[string]string // id -> body

	// FailSchedule forces Schedule to report a scheduling failure even though
	// permission is granted.
	FailSchedule bool
}

func NewMemory(granted bool) *Memory {
	return &Memory{
		granted: granted,
		pending: make(map[string]string),
	}
}

func (m *Memory) HasPermission() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.granted
}

func (m *Memory) RequestPermission() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.granted = true
	return true
}

func (m *Memory) Schedule(body string, delay time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.granted {
		return "", ErrNoPermission
	}
	if m.FailSchedule {
		return "", errors.New("scheduling failed")
	}
	m.seq++
	id := fmt.Sprintf("notif-%d", m.seq)
	m.pending[id] = body
	return id, nil
}

func (m *Memory) Cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, id)
}

func (m *Memory) Pending(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[id]
	return ok
}

// PendingCount reports how many notifications are scheduled.
func (m *Memory) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
