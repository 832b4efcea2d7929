package mysql

import (
	"context"

	"gorm.io/gorm"

	apptDomain "visitgate/internal/domain/appointment"
)

type AppointmentRepository struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *apptDomain.Appointment) error {
	return r.db.WithContext(ctx).Omit("Companions").Create(a).Error
}

func (r *AppointmentRepository) GetByCode(ctx context.Context, code string) (*apptDomain.Appointment, error) {
	var out apptDomain.Appointment
	res := r.db.WithContext(ctx).Where("appointment_code = ?", code).First(&out)
	return &out, res.Error
}

func (r *AppointmentRepository) GetByCodeWithCompanions(ctx context.Context, code string) (*apptDomain.Appointment, error) {
	var out apptDomain.Appointment
	res := r.db.WithContext(ctx).
		Preload("Companions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("appointment_code = ?", code).
		First(&out)
	return &out, res.Error
}

// UpdateStatusIf is the compare-and-set transition: one conditional UPDATE
// guarded by `status = expected`, affected-row count decides. Status and
// its accompanying reason/decision fields land in the same statement, so a
// transition is never partially applied.
func (r *AppointmentRepository) UpdateStatusIf(ctx context.Context, code string, expected apptDomain.Status, patch apptDomain.StatusPatch) (bool, error) {
	values := map[string]any{
		"status":            patch.Status,
		"status_updated_at": patch.StatusUpdatedAt,
	}
	if patch.RejectReason != "" {
		values["reject_reason"] = patch.RejectReason
	}
	if patch.CancelReason != "" {
		values["cancel_reason"] = patch.CancelReason
	}
	if patch.DecisionRemarks != "" {
		values["decision_remarks"] = patch.DecisionRemarks
	}
	if patch.DecidedBy != "" {
		values["decided_by"] = patch.DecidedBy
	}
	if patch.DecidedAt != nil {
		values["decided_at"] = *patch.DecidedAt
	}

	res := r.db.WithContext(ctx).
		Model(&apptDomain.Appointment{}).
		Where("appointment_code = ? AND status = ?", code, expected).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AppointmentRepository) List(ctx context.Context, f apptDomain.ListFilter) ([]apptDomain.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&apptDomain.Appointment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if !f.VisitFrom.IsZero() {
		q = q.Where("visit_time >= ?", f.VisitFrom)
	}
	if !f.VisitTo.IsZero() {
		q = q.Where("visit_time <= ?", f.VisitTo)
	}
	if !f.AppliedFrom.IsZero() {
		q = q.Where("created_at >= ?", f.AppliedFrom)
	}
	if !f.AppliedTo.IsZero() {
		q = q.Where("created_at <= ?", f.AppliedTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.WithCompanions {
		q = q.Preload("Companions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
	}
	var items []apptDomain.Appointment
	err := q.Order("id DESC").
		Limit(f.PageSize).
		Offset((f.Page - 1) * f.PageSize).
		Find(&items).Error
	return items, total, err
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context) ([]apptDomain.StatusCount, error) {
	var out []apptDomain.StatusCount
	err := r.db.WithContext(ctx).
		Model(&apptDomain.Appointment{}).
		Select("kind, status, COUNT(*) AS count").
		Group("kind").Group("status").
		Order("kind").Order("status").
		Scan(&out).Error
	return out, err
}
