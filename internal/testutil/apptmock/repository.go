// Package apptmock provides function-backed test doubles for the
// appointment repositories. Fill in the function fields a test needs;
// unfilled ones return errUnimplemented.
package apptmock

import (
	"context"
	"errors"

	"visitgate/internal/domain/appointment"
)

var errUnimplemented = errors.New("apptmock: method not implemented")

// Ensure compile-time compliance
var (
	_ appointment.Repository          = (*Repo)(nil)
	_ appointment.CompanionRepository = (*CompanionRepo)(nil)
)

type Repo struct {
	CreateFn                  func(ctx context.Context, a *appointment.Appointment) error
	GetByCodeFn               func(ctx context.Context, code string) (*appointment.Appointment, error)
	GetByCodeWithCompanionsFn func(ctx context.Context, code string) (*appointment.Appointment, error)
	UpdateStatusIfFn          func(ctx context.Context, code string, expected appointment.Status, patch appointment.StatusPatch) (bool, error)
	ListFn                    func(ctx context.Context, f appointment.ListFilter) ([]appointment.Appointment, int64, error)
	CountByStatusFn           func(ctx context.Context) ([]appointment.StatusCount, error)
}

func (m *Repo) Create(ctx context.Context, a *appointment.Appointment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return errUnimplemented
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*appointment.Appointment, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByCodeWithCompanions(ctx context.Context, code string) (*appointment.Appointment, error) {
	if m.GetByCodeWithCompanionsFn != nil {
		return m.GetByCodeWithCompanionsFn(ctx, code)
	}
	// fall back to the plain getter so simple tests fill only one field
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateStatusIf(ctx context.Context, code string, expected appointment.Status, patch appointment.StatusPatch) (bool, error) {
	if m.UpdateStatusIfFn != nil {
		return m.UpdateStatusIfFn(ctx, code, expected, patch)
	}
	return false, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f appointment.ListFilter) ([]appointment.Appointment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) CountByStatus(ctx context.Context) ([]appointment.StatusCount, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, errUnimplemented
}

type CompanionRepo struct {
	CreateAllFn         func(ctx context.Context, cs []appointment.Companion) error
	ListByAppointmentFn func(ctx context.Context, appointmentID uint64) ([]appointment.Companion, error)
}

func (m *CompanionRepo) CreateAll(ctx context.Context, cs []appointment.Companion) error {
	if m.CreateAllFn != nil {
		return m.CreateAllFn(ctx, cs)
	}
	return nil
}

func (m *CompanionRepo) ListByAppointment(ctx context.Context, appointmentID uint64) ([]appointment.Companion, error) {
	if m.ListByAppointmentFn != nil {
		return m.ListByAppointmentFn(ctx, appointmentID)
	}
	return nil, errUnimplemented
}
