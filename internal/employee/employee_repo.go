package employee

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const shiftStatusApproved = "APPROVED"

// Directory is the read-only view of the employee master data consumed by the
// payroll engine. Employee CRUD lives in a separate back-office service.
//
//go:generate mockgen -source=employee_repo.go -destination=mock/employee_directory_mock.go -package=mock
type Directory interface {
	ListAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindApprovedShift returns the approved shift assignment covering
	// [start, end], or nil when the employee has none.
	FindApprovedShift(ctx context.Context, employeeID string, start, end time.Time) (*ShiftAssignment, error)
}

type directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &directory{db: db}
}

// ListAll returns every non-deleted employee regardless of contract status;
// the draft generator decides per employee whether the contract is payable.
func (r *directory) ListAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *directory) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *directory) FindApprovedShift(ctx context.Context, employeeID string, start, end time.Time) (*ShiftAssignment, error) {
	var shift ShiftAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", shiftStatusApproved).
		Where("start_date <= ?", start).
		Where("end_date IS NULL OR end_date >= ?", end).
		Order("start_date DESC").
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}
