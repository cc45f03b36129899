package payrollconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Approval status shared by config templates and per-employee instances.
// Only APPROVED records influence pay; everything else is invisible to the
// engine except for the HR event report.
const (
	StatusDraft    = "DRAFT"
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// PayGrade maps an employee's grade to a monthly base salary.
type PayGrade struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"type:varchar(100);not null"`
	BaseSalary decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayGrade) TableName() string { return "pay_grades" }

// TaxRule applies its percentage rate to the base salary passed into the
// calculator. All approved rules apply to every employee.
type TaxRule struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"type:varchar(100);not null"`
	RatePercent decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TaxRule) TableName() string { return "tax_rules" }

// InsuranceBracket contributes only when the base salary falls inside
// [MinSalary, MaxSalary].
type InsuranceBracket struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string          `gorm:"type:varchar(100);not null"`
	MinSalary           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	MaxSalary           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	EmployeeRatePercent decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	Status              string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (InsuranceBracket) TableName() string { return "insurance_brackets" }

// Covers reports whether salary falls inside the bracket, both bounds
// inclusive.
func (b InsuranceBracket) Covers(salary decimal.Decimal) bool {
	return salary.GreaterThanOrEqual(b.MinSalary) && salary.LessThanOrEqual(b.MaxSalary)
}

// Allowance is a flat company-wide amount added to every computed salary.
type Allowance struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string          `gorm:"type:varchar(100);not null"`
	Amount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Allowance) TableName() string { return "allowances" }

// SigningBonusTemplate is the reusable signing-bonus configuration referenced
// by per-employee instances.
type SigningBonusTemplate struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string          `gorm:"type:varchar(100);not null"`
	Amount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SigningBonusTemplate) TableName() string { return "signing_bonus_templates" }

type ExitBenefitTemplate struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string          `gorm:"type:varchar(100);not null"`
	Amount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ExitBenefitTemplate) TableName() string { return "exit_benefit_templates" }

// EmployeeSigningBonus is one employee's instance of a signing-bonus
// template. Editing the instance resets it to PENDING upstream; it only
// contributes to pay while both instance and template are APPROVED.
type EmployeeSigningBonus struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:uq_signing_bonus_employee"`
	TemplateID uuid.UUID             `gorm:"type:uuid;not null"`
	Template   *SigningBonusTemplate `gorm:"foreignKey:TemplateID;references:ID"`

	Status      string           `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	GivenAmount *decimal.Decimal `gorm:"type:numeric(18,2)"`
	ApprovedBy  *uuid.UUID       `gorm:"type:uuid"`
	ApprovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (EmployeeSigningBonus) TableName() string { return "employee_signing_bonuses" }

// PayableAmount is the amount the draft generator adds to gross salary:
// the given-amount override when set, otherwise the template amount. Zero
// unless both the instance and its template are APPROVED.
func (b EmployeeSigningBonus) PayableAmount() decimal.Decimal {
	if b.Status != StatusApproved || b.Template == nil || b.Template.Status != StatusApproved {
		return decimal.Zero
	}
	if b.GivenAmount != nil {
		return *b.GivenAmount
	}
	return b.Template.Amount
}

type EmployeeExitBenefit struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uq_exit_benefit_employee"`
	TemplateID uuid.UUID            `gorm:"type:uuid;not null"`
	Template   *ExitBenefitTemplate `gorm:"foreignKey:TemplateID;references:ID"`

	Status      string           `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	GivenAmount *decimal.Decimal `gorm:"type:numeric(18,2)"`
	ApprovedBy  *uuid.UUID       `gorm:"type:uuid"`
	ApprovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (EmployeeExitBenefit) TableName() string { return "employee_exit_benefits" }

func (b EmployeeExitBenefit) PayableAmount() decimal.Decimal {
	if b.Status != StatusApproved || b.Template == nil || b.Template.Status != StatusApproved {
		return decimal.Zero
	}
	if b.GivenAmount != nil {
		return *b.GivenAmount
	}
	return b.Template.Amount
}
