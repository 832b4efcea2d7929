// Package pass derives the usability of an entry pass from the appointment's
// visit time and status. Nothing here is stored: the scanning side runs the
// same formula against its own clock, which is what makes the scheme immune
// to drift between an "activation job" and the gate.
package pass

import (
	"time"

	"visitgate/internal/domain/appointment"
)

type State string

const (
	StateInapplicable State = "INAPPLICABLE"
	StateNotYetActive State = "NOT_YET_ACTIVE"
	StateActive       State = "ACTIVE"
	StateExpired      State = "EXPIRED"
)

// Validity window around the visit time, boundaries inclusive.
const (
	WindowBefore = 24 * time.Hour
	WindowAfter  = 6 * time.Hour
)

type Validity struct {
	State       State     `json:"state"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// ComputeValidity is a pure function of its arguments. A pass exists only
// for APPROVED appointments; for every other status the window is still
// reported but the state is INAPPLICABLE.
func ComputeValidity(visitTime, now time.Time, status appointment.Status) Validity {
	v := Validity{
		WindowStart: visitTime.Add(-WindowBefore),
		WindowEnd:   visitTime.Add(WindowAfter),
	}
	switch {
	case status != appointment.StatusApproved:
		v.State = StateInapplicable
	case now.Before(v.WindowStart):
		v.State = StateNotYetActive
	case now.After(v.WindowEnd):
		v.State = StateExpired
	default:
		v.State = StateActive
	}
	return v
}
