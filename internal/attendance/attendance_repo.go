package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Reader exposes the worked-minutes records payroll needs for attendance
// shortfall penalties.
//
//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_reader_mock.go -package=mock
type Reader interface {
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}

type reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) Reader {
	return &reader{db: db}
}

func (r *reader) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", start, end).
		Order("attendance_date ASC").
		Find(&records).Error
	return records, err
}
