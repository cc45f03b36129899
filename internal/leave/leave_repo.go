package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Reader exposes approved leave requests overlapping a date range, with the
// leave type preloaded for the paid/unpaid flag.
//
//go:generate mockgen -source=leave_repo.go -destination=mock/leave_reader_mock.go -package=mock
type Reader interface {
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error)
}

type reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) Reader {
	return &reader{db: db}
}

func (r *reader) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}
