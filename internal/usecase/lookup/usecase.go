// Package lookup resolves the public capability pair (appointment code,
// requester phone) into an appointment view. Possession of the pair stands
// in for authentication; no account or session exists on this path.
package lookup

import (
	"context"
	"crypto/subtle"
	"time"

	"visitgate/internal/domain/appointment"
	"visitgate/internal/domain/pass"
	apptuc "visitgate/internal/usecase/appointment"
	"visitgate/pkg/mask"
)

type Usecase struct {
	repo appointment.Repository
	sm   *apptuc.Usecase
}

func NewUsecase(repo appointment.Repository, sm *apptuc.Usecase) *Usecase {
	return &Usecase{repo: repo, sm: sm}
}

// Result is what an unauthenticated caller gets back: the masked
// appointment plus, for APPROVED ones, the pass computed at read time.
type Result struct {
	Appointment *apptuc.View   `json:"appointment"`
	Pass        *pass.Validity `json:"pass,omitempty"`
}

// resolve fetches by code and checks the phone. An unknown code and a
// phone mismatch deliberately share one exit so neither the error shape
// nor its origin reveals which half of the credential was wrong.
func (u *Usecase) resolve(ctx context.Context, code, phone string) (*appointment.Appointment, error) {
	a, err := u.repo.GetByCodeWithCompanions(ctx, code)
	if err != nil {
		return nil, appointment.ErrNotFound
	}
	if subtle.ConstantTimeCompare([]byte(a.RequesterPhone), []byte(phone)) != 1 {
		return nil, appointment.ErrNotFound
	}
	return a, nil
}

func (u *Usecase) Lookup(ctx context.Context, code, phone string) (*Result, error) {
	a, err := u.resolve(ctx, code, phone)
	if err != nil {
		return nil, err
	}
	res := &Result{Appointment: apptuc.NewView(a, false)}
	if a.Status == appointment.StatusApproved {
		v := pass.ComputeValidity(a.VisitTime, time.Now().UTC(), a.Status)
		res.Pass = &v
	}
	return res, nil
}

// PassResult carries the validity, the payload tuple handed to the
// rendering collaborator, and the rendered code when the pass is ACTIVE.
type PassResult struct {
	Validity pass.Validity `json:"validity"`
	Payload  *pass.Payload `json:"payload,omitempty"`
	QR       string        `json:"qr,omitempty"`
}

func (u *Usecase) Pass(ctx context.Context, code, phone string) (*PassResult, error) {
	a, err := u.resolve(ctx, code, phone)
	if err != nil {
		return nil, err
	}

	v := pass.ComputeValidity(a.VisitTime, time.Now().UTC(), a.Status)
	res := &PassResult{Validity: v}
	if v.State == pass.StateInapplicable {
		return res, nil
	}

	res.Payload = &pass.Payload{
		Code:      a.Code,
		VisitTime: a.VisitTime,
		Name:      mask.Name(a.RequesterName),
		IDNumber:  mask.IDNumber(a.RequesterIDNumber),
	}
	if v.State == pass.StateActive {
		qr, err := pass.RenderQR(*res.Payload)
		if err != nil {
			return nil, err
		}
		res.QR = qr
	}
	return res, nil
}

// Cancel lets the original requester withdraw a PENDING or APPROVED
// appointment after passing the capability check.
func (u *Usecase) Cancel(ctx context.Context, code, phone, reason string) (*Result, error) {
	if _, err := u.resolve(ctx, code, phone); err != nil {
		return nil, err
	}
	if _, err := u.sm.Cancel(ctx, code, apptuc.RequesterActor, reason); err != nil {
		return nil, err
	}
	return u.Lookup(ctx, code, phone)
}
