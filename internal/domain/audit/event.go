package audit

import (
	"context"
	"time"

	"visitgate/internal/domain/appointment"
)

// Actor roles as recorded on transition events.
const (
	RoleStaff     = "staff"
	RoleRequester = "requester"
)

// Event describes one committed status transition. The core only emits;
// storage and rendering of the log live behind the Sink.
type Event struct {
	EventID         string             `json:"event_id"`
	AppointmentCode string             `json:"appointment_code"`
	Actor           string             `json:"actor"`
	ActorRole       string             `json:"actor_role"`
	FromStatus      appointment.Status `json:"from_status"`
	ToStatus        appointment.Status `json:"to_status"`
	Reason          string             `json:"reason,omitempty"`
	OccurredAt      time.Time          `json:"occurred_at"`
}

// Sink is the append-only collaborator receiving transition events.
type Sink interface {
	Emit(ctx context.Context, e Event) error
}
