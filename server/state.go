package server

import "sync"

// AppModel is the in-memory state shared by all requests
type AppModel struct {
	mu      sync.Mutex
	counter uint64
}

// NewAppModel creates an empty AppModel
func NewAppModel() *AppModel {
	return &AppModel{}
}

// IncrementCounter adds one to the counter and returns the new value
func (m *AppModel) IncrementCounter() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	return m.counter
}

// Counter returns the current counter value
func (m *AppModel) Counter() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counter
}
