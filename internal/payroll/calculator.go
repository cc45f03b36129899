package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/shared/period"
)

// DefaultDailyHours applies when an employee has no approved shift
// assignment covering the period.
var DefaultDailyHours = decimal.NewFromInt(8)

var minutesPerHour = decimal.NewFromInt(60)

const (
	LineEarning   = "EARNING"
	LinePenalty   = "PENALTY"
	LineLeave     = "LEAVE"
	LineTax       = "TAX"
	LineInsurance = "INSURANCE"
	// LineInfo lines carry no ledger weight; paid-leave value is reported
	// this way.
	LineInfo = "INFO"
)

// AttendanceDay is one captured day of worked minutes.
type AttendanceDay struct {
	Date          time.Time
	WorkedMinutes int
}

// LeaveSpan is one approved leave request with its type's paid flag.
type LeaveSpan struct {
	Start    time.Time
	End      time.Time
	Paid     bool
	TypeName string
}

// PenaltyEntry is one standing manual penalty ledger entry.
type PenaltyEntry struct {
	Reason string
	Amount decimal.Decimal
}

// CalculatorInput carries everything the salary calculation needs,
// pre-fetched by the draft generator. BaseSalary and Allowances arrive
// already prorated; tax and insurance apply to BaseSalary exactly as passed.
type CalculatorInput struct {
	Period            time.Time // normalized month-end
	BaseSalary        decimal.Decimal
	Allowances        decimal.Decimal
	BonusAmount       decimal.Decimal
	ExitBenefitAmount decimal.Decimal

	HireDate           *time.Time
	TerminationDate    *time.Time
	ExpectedDailyHours decimal.Decimal // zero means no approved shift: default 8

	Attendance []AttendanceDay
	Leaves     []LeaveSpan
	Penalties  []PenaltyEntry

	TaxRules          []payrollconfig.TaxRule
	InsuranceBrackets []payrollconfig.InsuranceBracket
}

// BreakdownLine is one auditable intermediate amount. Deduction lines carry
// positive amounts; the Kind tells the reader which side of the ledger they
// sit on.
type BreakdownLine struct {
	Kind   string          `json:"kind"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date,omitempty"`
}

// Breakdown is the full result of one salary calculation, totals plus every
// intermediate line.
type Breakdown struct {
	BaseSalary        decimal.Decimal `json:"base_salary"`
	Allowances        decimal.Decimal `json:"allowances"`
	BonusAmount       decimal.Decimal `json:"bonus_amount"`
	ExitBenefitAmount decimal.Decimal `json:"exit_benefit_amount"`
	GrossSalary       decimal.Decimal `json:"gross_salary"`

	ManualPenalties      decimal.Decimal `json:"manual_penalties"`
	AttendancePenalty    decimal.Decimal `json:"attendance_penalty"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduction"`
	PaidLeaveValue       decimal.Decimal `json:"paid_leave_value"` // informational only
	TotalPenalties       decimal.Decimal `json:"total_penalties"`

	Tax             decimal.Decimal `json:"tax"`
	Insurance       decimal.Decimal `json:"insurance"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Refunds         decimal.Decimal `json:"refunds"`

	NetSalary decimal.Decimal `json:"net_salary"`
	NetPay    decimal.Decimal `json:"net_pay"`

	Lines []BreakdownLine `json:"lines"`
}

// Calculate produces the full salary breakdown for one employee in one
// period. It is pure: no persistence, no clock, and business conditions such
// as absent config never produce an error, only zero contributions.
func Calculate(in CalculatorInput) Breakdown {
	out := Breakdown{
		BaseSalary:        in.BaseSalary,
		Allowances:        in.Allowances,
		BonusAmount:       in.BonusAmount,
		ExitBenefitAmount: in.ExitBenefitAmount,
	}

	// 1. Gross.
	out.GrossSalary = in.BaseSalary.Add(in.Allowances).Add(in.BonusAmount).Add(in.ExitBenefitAmount)
	out.Lines = append(out.Lines,
		BreakdownLine{Kind: LineEarning, Label: "Base salary", Amount: in.BaseSalary},
		BreakdownLine{Kind: LineEarning, Label: "Allowances", Amount: in.Allowances},
	)
	if !in.BonusAmount.IsZero() {
		out.Lines = append(out.Lines, BreakdownLine{Kind: LineEarning, Label: "Signing bonus", Amount: in.BonusAmount})
	}
	if !in.ExitBenefitAmount.IsZero() {
		out.Lines = append(out.Lines, BreakdownLine{Kind: LineEarning, Label: "Exit benefit", Amount: in.ExitBenefitAmount})
	}

	// 2. Manual penalties: every standing ledger entry, no date filter.
	out.ManualPenalties = decimal.Zero
	for _, p := range in.Penalties {
		amount := p.Amount.Round(2)
		out.ManualPenalties = out.ManualPenalties.Add(amount)
		out.Lines = append(out.Lines, BreakdownLine{Kind: LinePenalty, Label: p.Reason, Amount: amount})
	}

	effStart, effEnd, active := period.Clip(period.MonthStart(in.Period), period.MonthEnd(in.Period), in.HireDate, in.TerminationDate)
	effWorkingDays := 0
	if active {
		effWorkingDays = period.WorkingDays(effStart, effEnd)
	}

	// 3. Attendance shortfall, working days only. No attendance capture at
	// all means no signal: contributes zero rather than a full-month penalty.
	out.AttendancePenalty = decimal.Zero
	expectedHours := in.ExpectedDailyHours
	if expectedHours.LessThanOrEqual(decimal.Zero) {
		expectedHours = DefaultDailyHours
	}
	if active && effWorkingDays > 0 && len(in.Attendance) > 0 {
		hourlyRate := in.BaseSalary.Div(decimal.NewFromInt(int64(effWorkingDays)).Mul(expectedHours))
		worked := make(map[string]int, len(in.Attendance))
		for _, day := range in.Attendance {
			worked[day.Date.Format("2006-01-02")] += day.WorkedMinutes
		}
		for d := effStart; !d.After(effEnd); d = d.AddDate(0, 0, 1) {
			if !period.IsWorkingDay(d) {
				continue
			}
			workedHours := decimal.NewFromInt(int64(worked[d.Format("2006-01-02")])).Div(minutesPerHour)
			shortfall := expectedHours.Sub(workedHours)
			if shortfall.LessThanOrEqual(decimal.Zero) {
				continue
			}
			day := d
			amount := shortfall.Mul(hourlyRate).Round(2)
			out.AttendancePenalty = out.AttendancePenalty.Add(amount)
			out.Lines = append(out.Lines, BreakdownLine{
				Kind:   LinePenalty,
				Label:  "Attendance shortfall",
				Amount: amount,
				Date:   &day,
			})
		}
	}

	// 4. Leave adjustment: unpaid leave deducts at the daily rate, paid
	// leave is reported as informational value only.
	out.UnpaidLeaveDeduction = decimal.Zero
	out.PaidLeaveValue = decimal.Zero
	if active && effWorkingDays > 0 {
		dailyRate := in.BaseSalary.Div(decimal.NewFromInt(int64(effWorkingDays)))
		for _, lv := range in.Leaves {
			os, oe, ok := period.Overlap(lv.Start, lv.End, effStart, effEnd)
			if !ok {
				continue
			}
			days := period.WorkingDays(os, oe)
			if days == 0 {
				continue
			}
			amount := dailyRate.Mul(decimal.NewFromInt(int64(days))).Round(2)
			label := lv.TypeName
			if label == "" {
				label = "Leave"
			}
			if lv.Paid {
				out.PaidLeaveValue = out.PaidLeaveValue.Add(amount)
				out.Lines = append(out.Lines, BreakdownLine{Kind: LineInfo, Label: label + " (paid)", Amount: amount})
			} else {
				out.UnpaidLeaveDeduction = out.UnpaidLeaveDeduction.Add(amount)
				out.Lines = append(out.Lines, BreakdownLine{Kind: LineLeave, Label: label + " (unpaid)", Amount: amount})
			}
		}
	}

	// 5. Tax: every approved rule applies to the base salary as passed.
	out.Tax = decimal.Zero
	for _, rule := range in.TaxRules {
		amount := in.BaseSalary.Mul(rule.RatePercent).Div(decimal.NewFromInt(100)).Round(2)
		out.Tax = out.Tax.Add(amount)
		out.Lines = append(out.Lines, BreakdownLine{Kind: LineTax, Label: rule.Name, Amount: amount})
	}

	// 6. Insurance: only brackets whose salary range covers the base.
	out.Insurance = decimal.Zero
	for _, bracket := range in.InsuranceBrackets {
		if !bracket.Covers(in.BaseSalary) {
			continue
		}
		amount := in.BaseSalary.Mul(bracket.EmployeeRatePercent).Div(decimal.NewFromInt(100)).Round(2)
		out.Insurance = out.Insurance.Add(amount)
		out.Lines = append(out.Lines, BreakdownLine{Kind: LineInsurance, Label: bracket.Name, Amount: amount})
	}

	// 7. Refunds: reserved extension point.
	out.Refunds = decimal.Zero

	// 8. Totals.
	out.TotalPenalties = out.ManualPenalties.Add(out.AttendancePenalty).Add(out.UnpaidLeaveDeduction)
	out.TotalDeductions = out.TotalPenalties.Add(out.Tax).Add(out.Insurance)
	out.NetSalary = out.GrossSalary.Sub(out.TotalDeductions)
	out.NetPay = out.NetSalary.Add(out.Refunds)

	return out
}
