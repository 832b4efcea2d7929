package appointment

import (
	"context"
	"time"
)

// StatusPatch is the set of fields a transition may write alongside the
// status itself. The repository writes the whole patch in one conditional
// UPDATE, or nothing at all.
type StatusPatch struct {
	Status          Status
	RejectReason    string
	CancelReason    string
	DecisionRemarks string
	DecidedBy       string
	DecidedAt       *time.Time
	StatusUpdatedAt time.Time
}

// ListFilter drives the staff listing; zero values mean "no constraint".
// Pagination is server-side: Page starts at 1.
type ListFilter struct {
	Status         Status
	Kind           Kind
	VisitFrom      time.Time
	VisitTo        time.Time
	AppliedFrom    time.Time
	AppliedTo      time.Time
	Page           int
	PageSize       int
	WithCompanions bool
}

// StatusCount is one row of the grouped dashboard counts.
type StatusCount struct {
	Kind   Kind   `json:"kind"`
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByCode(ctx context.Context, code string) (*Appointment, error)
	GetByCodeWithCompanions(ctx context.Context, code string) (*Appointment, error)

	// UpdateStatusIf applies patch only if the stored status still equals
	// expected at commit time. Returns false (and no error) when the guard
	// did not match; the caller decides between not-found and lost-race.
	UpdateStatusIf(ctx context.Context, code string, expected Status, patch StatusPatch) (bool, error)

	List(ctx context.Context, f ListFilter) ([]Appointment, int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type CompanionRepository interface {
	CreateAll(ctx context.Context, cs []Companion) error
	ListByAppointment(ctx context.Context, appointmentID uint64) ([]Companion, error)
}
