package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Run lifecycle. DRAFT, UNDER_REVIEW and REJECTED are the editable states;
// LOCKED freezes the detail set and PaymentStatus tracks disbursement after
// that.
const (
	StatusDraft       = "DRAFT"
	StatusUnderReview = "UNDER_REVIEW"
	StatusRejected    = "REJECTED"
	StatusLocked      = "LOCKED"

	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

func isEditable(status string) bool {
	return status == StatusDraft || status == StatusUnderReview || status == StatusRejected
}

// PayrollRun is one payroll-processing batch for a single period. Runs are
// audit records and are never deleted.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunNumber string    `gorm:"type:varchar(40);not null;uniqueIndex"`
	// Entity is a descriptive legal-unit tag. It never filters the employee
	// population of a draft pass.
	Entity string    `gorm:"type:varchar(100)"`
	Period time.Time `gorm:"type:date;not null;index"` // normalized month-end
	Status string    `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	EmployeeCount  int             `gorm:"type:int;not null;default:0"`
	ExceptionCount int             `gorm:"type:int;not null;default:0"`
	TotalNetPay    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`

	PaymentStatus string `gorm:"type:varchar(20);not null;default:'PENDING'"`

	SpecialistID uuid.UUID  `gorm:"type:uuid;not null"`
	ManagerID    *uuid.UUID `gorm:"type:uuid"`
	FinanceID    *uuid.UUID `gorm:"type:uuid"`

	LockedAt  *time.Time
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRun) TableName() string { return "payroll_runs" }

// PayrollRunDetail is the computed financial line for one employee in one
// run. The set for a run is fully regenerated on every draft pass and frozen
// once the run is LOCKED.
type PayrollRunDetail struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID        uuid.UUID `gorm:"type:uuid;not null;index:idx_detail_run_employee,unique"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_detail_run_employee,unique"`
	EmployeeName string    `gorm:"type:varchar(150);not null"`

	BaseSalary    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"` // post-proration
	Allowances    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	BonusAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	BenefitAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	GrossSalary   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Insurance     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Penalties     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Deductions    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	NetSalary     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	NetPay        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`

	// BreakdownJSON keeps every intermediate calculation line for audit.
	BreakdownJSON []byte `gorm:"type:jsonb"`

	BankReady       bool    `gorm:"not null;default:false"`
	ExceptionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRunDetail) TableName() string { return "payroll_run_details" }

// Payslip is the immutable document produced once per (employee, run) after
// the run is locked and paid.
type Payslip struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID        uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_run_employee,unique"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_run_employee,unique"`
	EmployeeName string    `gorm:"type:varchar(150);not null"`

	EarningsJSON   []byte `gorm:"type:jsonb"`
	DeductionsJSON []byte `gorm:"type:jsonb"`

	GrossTotal    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	NetTotal      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'PAID'"`

	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Payslip) TableName() string { return "payslips" }
