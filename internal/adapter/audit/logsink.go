package auditsink

import (
	"context"
	"log"

	"visitgate/internal/domain/audit"
)

var (
	_ audit.Sink = (*AMQPSink)(nil)
	_ audit.Sink = LogSink{}
)

// LogSink writes audit events to the process log. Used when no broker is
// configured; the trail then lives only as long as the log retention does.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (LogSink) Emit(_ context.Context, e audit.Event) error {
	log.Printf("audit: event=%s appointment=%s %s->%s actor=%s(%s) reason=%q",
		e.EventID, e.AppointmentCode, e.FromStatus, e.ToStatus, e.Actor, e.ActorRole, e.Reason)
	return nil
}
