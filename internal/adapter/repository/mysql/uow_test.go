package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	apptDomain "visitgate/internal/domain/appointment"
	"visitgate/internal/domain/uow"
	"visitgate/pkg/id"
)

func TestWithinTx_CommitsBothWrites(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	code := id.NewCode()
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		a := makeAppointment(code)
		if err := r.Appointments.Create(ctx, a); err != nil {
			return err
		}
		return r.Companions.CreateAll(ctx, []apptDomain.Companion{
			{AppointmentID: a.ID, Position: 1, Name: "张三", IDNumber: "110101199001010011"},
		})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	got, err := NewAppointmentRepository(db).GetByCodeWithCompanions(ctx, code)
	if err != nil {
		t.Fatalf("GetByCodeWithCompanions: %v", err)
	}
	if len(got.Companions) != 1 {
		t.Fatalf("companions = %d, want 1", len(got.Companions))
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	code := id.NewCode()
	boom := errors.New("companion insert failed")
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Appointments.Create(ctx, makeAppointment(code)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx err = %v, want %v", err, boom)
	}

	// the appointment insert must have been rolled back with it
	if _, err := NewAppointmentRepository(db).GetByCode(ctx, code); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("appointment survived rollback: err = %v", err)
	}
}
