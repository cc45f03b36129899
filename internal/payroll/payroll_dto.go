package payroll

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type CreateRunRequest struct {
	// RunNumber is optional; when empty a PR-<year>-<seq> number is issued.
	RunNumber    string `json:"run_number"`
	Entity       string `json:"entity"`
	Period       string `json:"period" binding:"required"`
	SpecialistID string `json:"specialist_id" binding:"required,uuid"`
}

type UpdatePeriodRequest struct {
	Period string `json:"period" binding:"required"`
}

type StartInitiationRequest struct {
	SpecialistID string `json:"specialist_id" binding:"required,uuid"`
}

type ReviewRequest struct {
	ManagerID string `json:"manager_id" binding:"required,uuid"`
	Reason    string `json:"reason"`
}

type MarkPaidRequest struct {
	FinanceID string `json:"finance_id" binding:"required,uuid"`
}

type RunResponse struct {
	ID             string          `json:"id"`
	RunNumber      string          `json:"run_number"`
	Entity         string          `json:"entity,omitempty"`
	Period         string          `json:"period"`
	Status         string          `json:"status"`
	EmployeeCount  int             `json:"employee_count"`
	ExceptionCount int             `json:"exception_count"`
	TotalNetPay    decimal.Decimal `json:"total_net_pay"`
	PaymentStatus  string          `json:"payment_status"`
	SpecialistID   string          `json:"specialist_id"`
	ManagerID      *string         `json:"manager_id,omitempty"`
	FinanceID      *string         `json:"finance_id,omitempty"`
	LockedAt       *string         `json:"locked_at,omitempty"`
	PaidAt         *string         `json:"paid_at,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type DetailResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	Allowances      decimal.Decimal `json:"allowances"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	BenefitAmount   decimal.Decimal `json:"benefit_amount"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Tax             decimal.Decimal `json:"tax"`
	Insurance       decimal.Decimal `json:"insurance"`
	Penalties       decimal.Decimal `json:"penalties"`
	Deductions      decimal.Decimal `json:"deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	NetPay          decimal.Decimal `json:"net_pay"`
	BankReady       bool            `json:"bank_ready"`
	ExceptionReason *string         `json:"exception_reason,omitempty"`
	Breakdown       json.RawMessage `json:"breakdown,omitempty"`
}

// EmployeeOutcome is one per-employee result line of a draft pass, so
// operators can see exactly who was flagged and why without reading
// individual records.
type EmployeeOutcome struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Status       string          `json:"status"` // computed | exception
	Reason       string          `json:"reason,omitempty"`
	NetPay       decimal.Decimal `json:"net_pay"`
}

const (
	OutcomeComputed  = "computed"
	OutcomeException = "exception"
)

type DraftSummaryResponse struct {
	Run      RunResponse       `json:"run"`
	Outcomes []EmployeeOutcome `json:"outcomes"`
}

// PendingInstanceReport describes a bonus/benefit instance awaiting human
// approval, with the amount it would contribute once approved.
type PendingInstanceReport struct {
	InstanceID   string          `json:"instance_id"`
	TemplateName string          `json:"template_name"`
	Amount       decimal.Decimal `json:"amount"`
}

type HREventItem struct {
	EmployeeID          string                 `json:"employee_id"`
	EmployeeName        string                 `json:"employee_name"`
	NewHireProbation    bool                   `json:"new_hire_probation"`
	Terminating         bool                   `json:"terminating"`
	PendingSigningBonus *PendingInstanceReport `json:"pending_signing_bonus,omitempty"`
	PendingExitBenefit  *PendingInstanceReport `json:"pending_exit_benefit,omitempty"`
}

type HREventsResponse struct {
	RunNumber string        `json:"run_number"`
	Items     []HREventItem `json:"items"`
}

type PayslipOutcome struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"` // generated | already_generated
}

const (
	PayslipGenerated        = "generated"
	PayslipAlreadyGenerated = "already_generated"
)

type PayslipGenerationResponse struct {
	RunNumber string           `json:"run_number"`
	Generated int              `json:"generated"`
	Skipped   int              `json:"skipped"`
	Outcomes  []PayslipOutcome `json:"outcomes"`
}

type PayslipResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	Earnings      json.RawMessage `json:"earnings"`
	Deductions    json.RawMessage `json:"deductions"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentStatus string          `json:"payment_status"`
	GeneratedAt   string          `json:"generated_at"`
}
