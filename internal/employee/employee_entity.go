package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract status values stored on the employee row. Anything other than
// ACTIVE or PROBATION is treated by the draft generator as an invalid
// contract and produces an exception record instead of a computed salary.
const (
	StatusActive    = "ACTIVE"
	StatusProbation = "PROBATION"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusExpired   = "EXPIRED"
)

type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName   string     `gorm:"type:varchar(150);not null"`
	Email      string     `gorm:"type:varchar(150);uniqueIndex"`
	Status     string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	PayGradeID *uuid.UUID `gorm:"type:uuid"`

	HireDate        time.Time  `gorm:"type:date;not null"`
	TerminationDate *time.Time `gorm:"type:date"`

	BankName          *string `gorm:"type:varchar(100)"`
	BankAccountNumber *string `gorm:"type:varchar(50)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// HasValidContract reports whether the employee should receive a computed
// salary line rather than a zero-value exception record.
func (e Employee) HasValidContract() bool {
	return e.Status == StatusActive || e.Status == StatusProbation
}

// BankReady reports whether both bank fields are present for disbursement.
func (e Employee) BankReady() bool {
	return e.BankName != nil && *e.BankName != "" &&
		e.BankAccountNumber != nil && *e.BankAccountNumber != ""
}

// ShiftAssignment records the expected daily working hours for an employee
// over a date range. Only APPROVED assignments are consulted by payroll.
type ShiftAssignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index:idx_shift_employee_dates"`
	StartDate  time.Time  `gorm:"type:date;not null;index:idx_shift_employee_dates"`
	EndDate    *time.Time `gorm:"type:date;index:idx_shift_employee_dates"`
	DailyHours float64    `gorm:"type:numeric(4,2);not null;default:8"`
	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}
