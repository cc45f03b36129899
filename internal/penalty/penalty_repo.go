package penalty

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=penalty_repo.go -destination=mock/penalty_reader_mock.go -package=mock
type Reader interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Penalty, error)
}

type reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) Reader {
	return &reader{db: db}
}

func (r *reader) ListByEmployee(ctx context.Context, employeeID string) ([]Penalty, error) {
	var penalties []Penalty
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&penalties).Error
	return penalties, err
}
