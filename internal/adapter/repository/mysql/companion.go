package mysql

import (
	"context"

	"gorm.io/gorm"

	apptDomain "visitgate/internal/domain/appointment"
)

type CompanionRepository struct{ db *gorm.DB }

func NewCompanionRepository(db *gorm.DB) *CompanionRepository {
	return &CompanionRepository{db: db}
}

func (r *CompanionRepository) CreateAll(ctx context.Context, cs []apptDomain.Companion) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cs).Error
}

func (r *CompanionRepository) ListByAppointment(ctx context.Context, appointmentID uint64) ([]apptDomain.Companion, error) {
	var out []apptDomain.Companion
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("position ASC").
		Find(&out).Error
	return out, err
}
