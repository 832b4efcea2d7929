package auditmock

import (
	"context"
	"sync"

	"visitgate/internal/domain/audit"
)

var _ audit.Sink = (*Sink)(nil)

// Sink records every emitted event for assertions.
type Sink struct {
	mu     sync.Mutex
	Events []audit.Event
	Err    error // returned from Emit when set
}

func (s *Sink) Emit(_ context.Context, e audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, e)
	return nil
}

func (s *Sink) Emitted() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Event, len(s.Events))
	copy(out, s.Events)
	return out
}
