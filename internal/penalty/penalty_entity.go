package penalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Penalty is one standing entry in the manual penalty ledger. Every entry an
// employee carries is deducted on each draft pass; there is no date filter.
type Penalty struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Reason     string          `gorm:"type:text;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	IssuedBy   *uuid.UUID      `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Penalty) TableName() string {
	return "employee_penalties"
}
