package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered       uint64
	LoginsSucceeded       uint64
	LoginsFailed          uint64
	JobsCreated           uint64
	JobsUpdated           uint64
	JobsDeleted           uint64
	ApplicationsSubmitted uint64
	ApplicationsGated     uint64
	StatusChanges         uint64
}

// InMemoryRecorder stores counters in memory. Snapshot exposes them to
// the metrics endpoint.
type InMemoryRecorder struct {
	usersRegistered       uint64
	loginsSucceeded       uint64
	loginsFailed          uint64
	jobsCreated           uint64
	jobsUpdated           uint64
	jobsDeleted           uint64
	applicationsSubmitted uint64
	applicationsGated     uint64
	statusChanges         uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:       atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:       atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:          atomic.LoadUint64(&m.loginsFailed),
		JobsCreated:           atomic.LoadUint64(&m.jobsCreated),
		JobsUpdated:           atomic.LoadUint64(&m.jobsUpdated),
		JobsDeleted:           atomic.LoadUint64(&m.jobsDeleted),
		ApplicationsSubmitted: atomic.LoadUint64(&m.applicationsSubmitted),
		ApplicationsGated:     atomic.LoadUint64(&m.applicationsGated),
		StatusChanges:         atomic.LoadUint64(&m.statusChanges),
	}
}

func (m *InMemoryRecorder) IncUserRegistered(string) { atomic.AddUint64(&m.usersRegistered, 1) }

func (m *InMemoryRecorder) IncLoginSucceeded() { atomic.AddUint64(&m.loginsSucceeded, 1) }

func (m *InMemoryRecorder) IncLoginFailed() { atomic.AddUint64(&m.loginsFailed, 1) }

func (m *InMemoryRecorder) IncJobCreated() { atomic.AddUint64(&m.jobsCreated, 1) }

func (m *InMemoryRecorder) IncJobUpdated() { atomic.AddUint64(&m.jobsUpdated, 1) }

func (m *InMemoryRecorder) IncJobDeleted() { atomic.AddUint64(&m.jobsDeleted, 1) }

func (m *InMemoryRecorder) IncApplicationSubmitted() {
	atomic.AddUint64(&m.applicationsSubmitted, 1)
}

func (m *InMemoryRecorder) IncApplicationRejectedAtGate(string) {
	atomic.AddUint64(&m.applicationsGated, 1)
}

func (m *InMemoryRecorder) IncApplicationStatusChanged(string) {
	atomic.AddUint64(&m.statusChanges, 1)
}
