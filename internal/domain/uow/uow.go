package uow

import (
	"context"

	"visitgate/internal/domain/appointment"
)

type Repos struct {
	Appointments appointment.Repository
	Companions   appointment.CompanionRepository
}

// UnitOfWork runs a function with both repositories bound to one
// transaction; used where an appointment and its companions must be
// written together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
