package metrics

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncUserRegistered(string) {}

func (NoopRecorder) IncLoginSucceeded() {}

func (NoopRecorder) IncLoginFailed() {}

func (NoopRecorder) IncJobCreated() {}

func (NoopRecorder) IncJobUpdated() {}

func (NoopRecorder) IncJobDeleted() {}

func (NoopRecorder) IncApplicationSubmitted() {}

func (NoopRecorder) IncApplicationRejectedAtGate(string) {}

func (NoopRecorder) IncApplicationStatusChanged(string) {}
