// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered(role string)
	IncLoginSucceeded()
	IncLoginFailed()

	// Job management metrics
	IncJobCreated()
	IncJobUpdated()
	IncJobDeleted()

	// Application lifecycle metrics
	IncApplicationSubmitted()
	IncApplicationRejectedAtGate(reason string) // reason: "closed", "deadline", "duplicate"
	IncApplicationStatusChanged(status string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
