package appointment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"visitgate/internal/domain/appointment"
	"visitgate/internal/domain/audit"
	"visitgate/internal/domain/uow"
	"visitgate/pkg/id"
)

// Actor identifies who drives a transition: a verified staff member
// (identity supplied by the external authorization layer) or the original
// requester who passed the capability check.
type Actor struct {
	ID   string
	Role string
}

func StaffActor(staffID string) Actor { return Actor{ID: staffID, Role: audit.RoleStaff} }

var RequesterActor = Actor{ID: "requester", Role: audit.RoleRequester}

type Usecase struct {
	repo appointment.Repository
	uow  uow.UnitOfWork
	sink audit.Sink
}

func NewUsecase(repo appointment.Repository, tx uow.UnitOfWork, sink audit.Sink) *Usecase {
	return &Usecase{repo: repo, uow: tx, sink: sink}
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", appointment.ErrValidation, msg)
}

// Create registers a new appointment in PENDING with its companions, all in
// one transaction, and returns the masked view together with the public code.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*View, error) {
	if err := in.validate(time.Now().UTC()); err != nil {
		return nil, err
	}

	a := &appointment.Appointment{
		Code:              id.NewCode(),
		Kind:              in.Kind,
		Status:            appointment.StatusPending,
		RequesterName:     strings.TrimSpace(in.RequesterName),
		RequesterIDNumber: strings.TrimSpace(in.RequesterIDNumber),
		RequesterPhone:    strings.TrimSpace(in.RequesterPhone),
		Organization:      in.Organization,
		Office:            in.Office,
		Title:             in.Title,
		VisitedDept:       in.VisitedDept,
		HostName:          in.HostName,
		VisitTime:         in.VisitTime.UTC(),
		VisitorCount:      in.VisitorCount,
		Purpose:           in.Purpose,
		Remarks:           in.Remarks,
		TransportMode:     in.TransportMode,
		PlateNumber:       in.PlateNumber,
		StatusUpdatedAt:   time.Now().UTC(),
	}
	if a.VisitorCount <= 0 {
		a.VisitorCount = 1 + len(in.Companions)
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Appointments.Create(ctx, a); err != nil {
			return err
		}
		if len(in.Companions) == 0 {
			return nil
		}
		cs := make([]appointment.Companion, 0, len(in.Companions))
		for i, c := range in.Companions {
			cs = append(cs, appointment.Companion{
				AppointmentID: a.ID,
				Position:      i + 1,
				Name:          strings.TrimSpace(c.Name),
				IDNumber:      strings.TrimSpace(c.IDNumber),
				Phone:         strings.TrimSpace(c.Phone),
				Title:         strings.TrimSpace(c.Title),
			})
		}
		if err := r.Companions.CreateAll(ctx, cs); err != nil {
			return err
		}
		a.Companions = cs
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewView(a, false), nil
}

// Approve moves PENDING -> APPROVED, recording the deciding staff member.
func (u *Usecase) Approve(ctx context.Context, code string, actor Actor, remarks string) (*View, error) {
	if actor.Role != audit.RoleStaff || actor.ID == "" {
		return nil, validationErr("staff identity required")
	}
	now := time.Now().UTC()
	patch := appointment.StatusPatch{
		Status:          appointment.StatusApproved,
		DecisionRemarks: strings.TrimSpace(remarks),
		DecidedBy:       actor.ID,
		DecidedAt:       &now,
		StatusUpdatedAt: now,
	}
	return u.transition(ctx, code, actor, appointment.StatusPending, patch, "")
}

// Reject moves PENDING -> REJECTED; the reason is mandatory and stored once.
func (u *Usecase) Reject(ctx context.Context, code string, actor Actor, reason string) (*View, error) {
	if actor.Role != audit.RoleStaff || actor.ID == "" {
		return nil, validationErr("staff identity required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, validationErr("reject reason is required")
	}
	now := time.Now().UTC()
	patch := appointment.StatusPatch{
		Status:          appointment.StatusRejected,
		RejectReason:    reason,
		DecidedBy:       actor.ID,
		DecidedAt:       &now,
		StatusUpdatedAt: now,
	}
	return u.transition(ctx, code, actor, appointment.StatusPending, patch, reason)
}

// Cancel moves PENDING or APPROVED -> CANCELLED. Staff and the original
// requester (capability-checked by the caller) may both invoke it.
func (u *Usecase) Cancel(ctx context.Context, code string, actor Actor, reason string) (*View, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, validationErr("cancel reason is required")
	}

	cur, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, appointment.ErrNotFound
	}
	if cur.Status != appointment.StatusPending && cur.Status != appointment.StatusApproved {
		return nil, appointment.ErrInvalidTransition
	}

	now := time.Now().UTC()
	patch := appointment.StatusPatch{
		Status:          appointment.StatusCancelled,
		CancelReason:    reason,
		StatusUpdatedAt: now,
	}
	// expected status pinned to the one just observed: if another actor
	// commits in between, the CAS loses and the caller re-reads.
	return u.transition(ctx, code, actor, cur.Status, patch, reason)
}

// Complete moves APPROVED -> COMPLETED after the visit took place.
func (u *Usecase) Complete(ctx context.Context, code string, actor Actor, remarks string) (*View, error) {
	if actor.Role != audit.RoleStaff || actor.ID == "" {
		return nil, validationErr("staff identity required")
	}
	now := time.Now().UTC()
	patch := appointment.StatusPatch{
		Status:          appointment.StatusCompleted,
		DecisionRemarks: strings.TrimSpace(remarks),
		StatusUpdatedAt: now,
	}
	return u.transition(ctx, code, actor, appointment.StatusApproved, patch, "")
}

// transition applies one compare-and-set status update. At most one
// transition out of `expected` ever commits per appointment; every loser
// observes ErrInvalidTransition and nothing is written.
func (u *Usecase) transition(ctx context.Context, code string, actor Actor, expected appointment.Status, patch appointment.StatusPatch, reason string) (*View, error) {
	ok, err := u.repo.UpdateStatusIf(ctx, code, expected, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Guard did not match: distinguish unknown code from lost race.
		if _, err := u.repo.GetByCode(ctx, code); err != nil {
			return nil, appointment.ErrNotFound
		}
		return nil, appointment.ErrInvalidTransition
	}

	u.emit(ctx, audit.Event{
		EventID:         uuid.NewString(),
		AppointmentCode: code,
		Actor:           actor.ID,
		ActorRole:       actor.Role,
		FromStatus:      expected,
		ToStatus:        patch.Status,
		Reason:          reason,
		OccurredAt:      patch.StatusUpdatedAt,
	})

	a, err := u.repo.GetByCodeWithCompanions(ctx, code)
	if err != nil {
		return nil, err
	}
	return NewView(a, true), nil
}

// emit is fire-and-forget: the transition is already committed and the sink
// is append-only, so a sink failure is logged, never propagated.
func (u *Usecase) emit(ctx context.Context, e audit.Event) {
	if u.sink == nil {
		return
	}
	if err := u.sink.Emit(ctx, e); err != nil {
		log.Printf("audit: emit %s %s->%s: %v", e.AppointmentCode, e.FromStatus, e.ToStatus, err)
	}
}

// Get returns one appointment; staffView controls whether personal fields
// are masked.
func (u *Usecase) Get(ctx context.Context, code string, staffView bool) (*View, error) {
	a, err := u.repo.GetByCodeWithCompanions(ctx, code)
	if err != nil {
		return nil, appointment.ErrNotFound
	}
	return NewView(a, staffView), nil
}

// List returns one page of appointments for the staff console.
func (u *Usecase) List(ctx context.Context, f appointment.ListFilter) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > maxPageSize {
		f.PageSize = defaultPageSize
	}
	items, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]*View, 0, len(items))
	for i := range items {
		views = append(views, NewView(&items[i], true))
	}
	return &Page{
		Items:      views,
		Page:       f.Page,
		PageSize:   f.PageSize,
		Total:      total,
		TotalPages: (total + int64(f.PageSize) - 1) / int64(f.PageSize),
	}, nil
}

// Stats returns transition-state counts grouped by kind for the dashboard.
func (u *Usecase) Stats(ctx context.Context) ([]appointment.StatusCount, error) {
	return u.repo.CountByStatus(ctx)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)
