package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/payroll"
	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/shared/period"
)

// June 2026 runs Monday the 1st through Tuesday the 30th: 22 working days.
var june2026 = time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// fullAttendance fabricates a complete capture of workedMinutes for every
// working day of the period.
func fullAttendance(p time.Time, workedMinutes int) []payroll.AttendanceDay {
	var days []payroll.AttendanceDay
	start, end := period.MonthStart(p), period.MonthEnd(p)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !period.IsWorkingDay(day) {
			continue
		}
		days = append(days, payroll.AttendanceDay{Date: day, WorkedMinutes: workedMinutes})
	}
	return days
}

func assertConservation(t *testing.T, b payroll.Breakdown) {
	t.Helper()
	assert.True(t, b.GrossSalary.Sub(b.TotalDeductions).Equal(b.NetSalary),
		"net salary must equal gross minus deductions")
	assert.True(t, b.NetSalary.Add(b.Refunds).Equal(b.NetPay),
		"net pay must equal net salary plus refunds")
	assert.True(t,
		b.TotalPenalties.Equal(b.ManualPenalties.Add(b.AttendancePenalty).Add(b.UnpaidLeaveDeduction)),
		"penalty total must match its parts")
}

func TestCalculate_GrossAndTax(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("10000"),
		Allowances: d("500"),
		Attendance: fullAttendance(june2026, 480),
		TaxRules: []payrollconfig.TaxRule{
			{Name: "Income tax", RatePercent: d("10")},
		},
	})

	assert.True(t, b.GrossSalary.Equal(d("10500")))
	assert.True(t, b.Tax.Equal(d("1000")), "tax applies to base salary only, got %s", b.Tax)
	assert.True(t, b.AttendancePenalty.IsZero())
	assert.True(t, b.NetPay.Equal(d("9500")))
	assertConservation(t, b)
}

func TestCalculate_MultipleTaxRulesAndInsurance(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("8000"),
		TaxRules: []payrollconfig.TaxRule{
			{Name: "Income tax", RatePercent: d("10")},
			{Name: "Solidarity levy", RatePercent: d("2.5")},
		},
		InsuranceBrackets: []payrollconfig.InsuranceBracket{
			{Name: "Health A", MinSalary: d("0"), MaxSalary: d("9000"), EmployeeRatePercent: d("3")},
			{Name: "Health B", MinSalary: d("9000.01"), MaxSalary: d("99999"), EmployeeRatePercent: d("5")},
		},
	})

	// 800 + 200 tax, 240 for the covering bracket only.
	assert.True(t, b.Tax.Equal(d("1000")))
	assert.True(t, b.Insurance.Equal(d("240")))
	assert.True(t, b.NetPay.Equal(d("6760")))
	assertConservation(t, b)
}

func TestCalculate_AttendanceShortfall(t *testing.T) {
	// 8800 over 22 working days of 8 hours gives an hourly rate of 50.
	attendance := fullAttendance(june2026, 480)
	for i := range attendance {
		if attendance[i].Date.Day() == 3 {
			attendance[i].WorkedMinutes = 360 // two hours short
		}
	}

	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("8800"),
		Attendance: attendance,
	})

	assert.True(t, b.AttendancePenalty.Equal(d("100")), "got %s", b.AttendancePenalty)
	assert.True(t, b.NetPay.Equal(d("8700")))
	assertConservation(t, b)
}

func TestCalculate_OvertimeNeverPenalized(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("8800"),
		Attendance: fullAttendance(june2026, 600),
	})

	assert.True(t, b.AttendancePenalty.IsZero())
	assert.True(t, b.NetPay.Equal(d("8800")))
}

func TestCalculate_NoAttendanceCaptureMeansNoPenalty(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("8800"),
	})

	assert.True(t, b.AttendancePenalty.IsZero())
	assert.True(t, b.NetPay.Equal(d("8800")))
}

func TestCalculate_WeekendNeverPenalized(t *testing.T) {
	// Only weekend capture: zero worked minutes on Saturday must not
	// generate a shortfall, but its presence means working days with no
	// record are fully short.
	saturday := time.Date(2026, time.June, 6, 0, 0, 0, 0, time.UTC)
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("8800"),
		Attendance: []payroll.AttendanceDay{{Date: saturday, WorkedMinutes: 0}},
	})

	// All 22 working days are fully short: 22 * 8h * 50 = 8800.
	assert.True(t, b.AttendancePenalty.Equal(d("8800")), "got %s", b.AttendancePenalty)
	assertConservation(t, b)
}

func TestCalculate_LeaveAdjustment(t *testing.T) {
	// Daily rate 2200/22 = 100.
	attendance := fullAttendance(june2026, 480)

	t.Run("unpaid leave deducts", func(t *testing.T) {
		b := payroll.Calculate(payroll.CalculatorInput{
			Period:     june2026,
			BaseSalary: d("2200"),
			Attendance: attendance,
			Leaves: []payroll.LeaveSpan{
				{
					Start:    time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC),
					End:      time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
					Paid:     false,
					TypeName: "Unpaid sabbatical",
				},
			},
		})

		assert.True(t, b.UnpaidLeaveDeduction.Equal(d("200")), "got %s", b.UnpaidLeaveDeduction)
		assert.True(t, b.NetPay.Equal(d("2000")))
		assertConservation(t, b)
	})

	t.Run("paid leave is informational", func(t *testing.T) {
		b := payroll.Calculate(payroll.CalculatorInput{
			Period:     june2026,
			BaseSalary: d("2200"),
			Attendance: attendance,
			Leaves: []payroll.LeaveSpan{
				{
					Start:    time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC),
					End:      time.Date(2026, time.June, 9, 0, 0, 0, 0, time.UTC),
					Paid:     true,
					TypeName: "Annual leave",
				},
			},
		})

		assert.True(t, b.PaidLeaveValue.Equal(d("200")))
		assert.True(t, b.UnpaidLeaveDeduction.IsZero())
		assert.True(t, b.NetPay.Equal(d("2200")), "paid leave must not reduce pay")

		var infoLines int
		for _, line := range b.Lines {
			if line.Kind == payroll.LineInfo {
				infoLines++
			}
		}
		assert.Equal(t, 1, infoLines)
	})

	t.Run("weekend-only leave span is neutral", func(t *testing.T) {
		b := payroll.Calculate(payroll.CalculatorInput{
			Period:     june2026,
			BaseSalary: d("2200"),
			Attendance: attendance,
			Leaves: []payroll.LeaveSpan{
				{
					Start: time.Date(2026, time.June, 6, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2026, time.June, 7, 0, 0, 0, 0, time.UTC),
					Paid:  false,
				},
			},
		})

		assert.True(t, b.UnpaidLeaveDeduction.IsZero())
		assert.True(t, b.NetPay.Equal(d("2200")))
	})
}

func TestCalculate_ManualPenalties(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("5000"),
		Attendance: fullAttendance(june2026, 480),
		Penalties: []payroll.PenaltyEntry{
			{Reason: "Damaged equipment", Amount: d("150")},
			{Reason: "Policy violation", Amount: d("75.50")},
		},
	})

	assert.True(t, b.ManualPenalties.Equal(d("225.50")))
	assert.True(t, b.NetPay.Equal(d("4774.50")))
	assertConservation(t, b)
}

func TestCalculate_BonusAndBenefitInGross(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:            june2026,
		BaseSalary:        d("6000"),
		BonusAmount:       d("1200"),
		ExitBenefitAmount: d("800"),
		TaxRules: []payrollconfig.TaxRule{
			{Name: "Income tax", RatePercent: d("10")},
		},
	})

	assert.True(t, b.GrossSalary.Equal(d("8000")))
	// Tax stays on the base, not on bonus or benefit.
	assert.True(t, b.Tax.Equal(d("600")))
	assert.True(t, b.NetPay.Equal(d("7400")))
	assertConservation(t, b)
}

func TestCalculate_EmptyConfigDegradesToZero(t *testing.T) {
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:     june2026,
		BaseSalary: d("3000"),
	})

	assert.True(t, b.Tax.IsZero())
	assert.True(t, b.Insurance.IsZero())
	assert.True(t, b.TotalDeductions.IsZero())
	assert.True(t, b.NetPay.Equal(d("3000")))
}

func TestCalculate_TerminationMidMonthShrinksWorkingDays(t *testing.T) {
	// Terminated Friday June 12: working days June 1-12 = 10, so the daily
	// rate for leave deduction is base/10.
	termination := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
	b := payroll.Calculate(payroll.CalculatorInput{
		Period:          june2026,
		BaseSalary:      d("1000"),
		TerminationDate: &termination,
		Leaves: []payroll.LeaveSpan{
			{
				Start: time.Date(2026, time.June, 11, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.June, 11, 0, 0, 0, 0, time.UTC),
				Paid:  false,
			},
		},
	})

	assert.True(t, b.UnpaidLeaveDeduction.Equal(d("100")), "got %s", b.UnpaidLeaveDeduction)
	assertConservation(t, b)
}
