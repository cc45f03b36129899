package payroll

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/period"
)

// Exception reasons recorded on individual detail records. These never abort
// a draft pass; they roll into the run's exception counter.
const (
	ReasonContractInvalid = "Contract inactive or invalid"
	ReasonPayGradeMissing = "Pay grade missing or unresolved"
	ReasonBankMissing     = "Bank details missing"
)

// GenerateDraft recomputes the full detail set for a DRAFT run. Per-employee
// computation runs on a bounded worker pool; the delete-then-insert of the
// detail set plus the aggregate update commit in one transaction, so a
// cancelled or failed pass leaves the previous set intact.
func (s *service) GenerateDraft(ctx context.Context, ref string) (DraftSummaryResponse, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("payroll.draft")

	run, err := s.findRun(ctx, ref)
	if err != nil {
		return DraftSummaryResponse{}, err
	}
	if run.Status != StatusDraft {
		return DraftSummaryResponse{}, payrollerrors.ErrRunNotDraft
	}

	// The entity tag on the run is descriptive only; the population is
	// always company-wide.
	employees, err := s.directory.ListAll(ctx)
	if err != nil {
		return DraftSummaryResponse{}, err
	}

	// Company-wide config is shared by every employee; fetch it once.
	allowances, err := s.config.ListApprovedAllowances(ctx)
	if err != nil {
		return DraftSummaryResponse{}, err
	}
	allowanceTotal := decimal.Zero
	for _, a := range allowances {
		allowanceTotal = allowanceTotal.Add(a.Amount)
	}
	taxRules, err := s.config.ListApprovedTaxRules(ctx)
	if err != nil {
		return DraftSummaryResponse{}, err
	}
	brackets, err := s.config.ListApprovedInsuranceBrackets(ctx)
	if err != nil {
		return DraftSummaryResponse{}, err
	}

	details := make([]PayrollRunDetail, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range employees {
		i := i
		g.Go(func() error {
			detail, err := s.computeEmployeeDetail(gctx, run, employees[i], allowanceTotal, taxRules, brackets)
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DraftSummaryResponse{}, err
	}

	employeeCount := len(details)
	exceptionCount := 0
	totalNetPay := decimal.Zero
	outcomes := make([]EmployeeOutcome, len(details))
	for i, d := range details {
		totalNetPay = totalNetPay.Add(d.NetPay)
		outcome := EmployeeOutcome{
			EmployeeID:   d.EmployeeID.String(),
			EmployeeName: d.EmployeeName,
			Status:       OutcomeComputed,
			NetPay:       d.NetPay,
		}
		if d.ExceptionReason != nil {
			exceptionCount++
			outcome.Status = OutcomeException
			outcome.Reason = *d.ExceptionReason
		}
		outcomes[i] = outcome
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DraftSummaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ReplaceDetails(ctx, run.ID, details); err != nil {
		return DraftSummaryResponse{}, err
	}
	if err := qtx.UpdateRunAggregates(ctx, run.ID, employeeCount, exceptionCount, totalNetPay); err != nil {
		return DraftSummaryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DraftSummaryResponse{}, err
	}

	run.EmployeeCount = employeeCount
	run.ExceptionCount = exceptionCount
	run.TotalNetPay = totalNetPay

	log.Info("draft generated",
		zap.String("run_number", run.RunNumber),
		zap.Int("employees", employeeCount),
		zap.Int("exceptions", exceptionCount),
		zap.String("total_net_pay", totalNetPay.String()),
	)

	return DraftSummaryResponse{Run: mapRunToResponse(*run), Outcomes: outcomes}, nil
}

func (s *service) computeEmployeeDetail(
	ctx context.Context,
	run *PayrollRun,
	emp employee.Employee,
	allowanceTotal decimal.Decimal,
	taxRules []payrollconfig.TaxRule,
	brackets []payrollconfig.InsuranceBracket,
) (PayrollRunDetail, error) {
	if !emp.HasValidContract() {
		return s.exceptionDetail(run, emp, ReasonContractInvalid), nil
	}

	if emp.PayGradeID == nil {
		return s.exceptionDetail(run, emp, ReasonPayGradeMissing), nil
	}
	grade, err := s.config.FindPayGrade(ctx, emp.PayGradeID.String())
	if err != nil {
		return PayrollRunDetail{}, err
	}
	if grade == nil {
		return s.exceptionDetail(run, emp, ReasonPayGradeMissing), nil
	}

	monthStart := period.MonthStart(run.Period)
	monthEnd := period.MonthEnd(run.Period)
	totalDays := period.DaysInMonth(run.Period)

	// Proration by calendar days active in the month, endpoints inclusive.
	// Clip also zeroes out employees hired after or terminated before the
	// period.
	effStart, effEnd, active := period.Clip(monthStart, monthEnd, &emp.HireDate, emp.TerminationDate)
	activeDays := 0
	if active {
		activeDays = period.CalendarDays(effStart, effEnd)
	}
	factorNum := decimal.NewFromInt(int64(activeDays))
	factorDen := decimal.NewFromInt(int64(totalDays))
	baseSalary := grade.BaseSalary.Mul(factorNum).Div(factorDen).Round(2)
	allowances := allowanceTotal.Mul(factorNum).Div(factorDen).Round(2)

	bonusAmount := decimal.Zero
	if bonus, err := s.config.FindSigningBonus(ctx, emp.ID.String()); err != nil {
		return PayrollRunDetail{}, err
	} else if bonus != nil {
		bonusAmount = bonus.PayableAmount()
	}
	benefitAmount := decimal.Zero
	if benefit, err := s.config.FindExitBenefit(ctx, emp.ID.String()); err != nil {
		return PayrollRunDetail{}, err
	} else if benefit != nil {
		benefitAmount = benefit.PayableAmount()
	}

	expectedHours := decimal.Zero
	if shift, err := s.directory.FindApprovedShift(ctx, emp.ID.String(), monthStart, monthEnd); err != nil {
		return PayrollRunDetail{}, err
	} else if shift != nil {
		expectedHours = decimal.NewFromFloat(shift.DailyHours)
	}

	attendanceDays, err := s.loadAttendance(ctx, emp.ID.String(), monthStart, monthEnd)
	if err != nil {
		return PayrollRunDetail{}, err
	}
	leaveSpans, err := s.loadLeaves(ctx, emp.ID.String(), monthStart, monthEnd)
	if err != nil {
		return PayrollRunDetail{}, err
	}
	penaltyEntries, err := s.loadPenalties(ctx, emp.ID.String())
	if err != nil {
		return PayrollRunDetail{}, err
	}

	breakdown := Calculate(CalculatorInput{
		Period:             run.Period,
		BaseSalary:         baseSalary,
		Allowances:         allowances,
		BonusAmount:        bonusAmount,
		ExitBenefitAmount:  benefitAmount,
		HireDate:           &emp.HireDate,
		TerminationDate:    emp.TerminationDate,
		ExpectedDailyHours: expectedHours,
		Attendance:         attendanceDays,
		Leaves:             leaveSpans,
		Penalties:          penaltyEntries,
		TaxRules:           taxRules,
		InsuranceBrackets:  brackets,
	})

	detail := s.detailFromBreakdown(run, emp, breakdown)
	if !emp.BankReady() {
		// Warning, not a blocking error: the breakdown is kept.
		reason := ReasonBankMissing
		detail.ExceptionReason = &reason
		detail.BankReady = false
	}
	return detail, nil
}

// exceptionDetail is the zero-value record for an employee the engine could
// not compute.
func (s *service) exceptionDetail(run *PayrollRun, emp employee.Employee, reason string) PayrollRunDetail {
	return PayrollRunDetail{
		ID:              detailID(run.ID, emp.ID),
		RunID:           run.ID,
		EmployeeID:      emp.ID,
		EmployeeName:    emp.FullName,
		BaseSalary:      decimal.Zero,
		Allowances:      decimal.Zero,
		BonusAmount:     decimal.Zero,
		BenefitAmount:   decimal.Zero,
		GrossSalary:     decimal.Zero,
		Tax:             decimal.Zero,
		Insurance:       decimal.Zero,
		Penalties:       decimal.Zero,
		Deductions:      decimal.Zero,
		NetSalary:       decimal.Zero,
		NetPay:          decimal.Zero,
		BankReady:       emp.BankReady(),
		ExceptionReason: &reason,
	}
}

func (s *service) detailFromBreakdown(run *PayrollRun, emp employee.Employee, b Breakdown) PayrollRunDetail {
	lines, _ := json.Marshal(b.Lines)
	return PayrollRunDetail{
		ID:            detailID(run.ID, emp.ID),
		RunID:         run.ID,
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName,
		BaseSalary:    b.BaseSalary,
		Allowances:    b.Allowances,
		BonusAmount:   b.BonusAmount,
		BenefitAmount: b.ExitBenefitAmount,
		GrossSalary:   b.GrossSalary,
		Tax:           b.Tax,
		Insurance:     b.Insurance,
		Penalties:     b.TotalPenalties,
		Deductions:    b.TotalDeductions,
		NetSalary:     b.NetSalary,
		NetPay:        b.NetPay,
		BreakdownJSON: lines,
		BankReady:     emp.BankReady(),
	}
}

// detailID derives the detail primary key from (run, employee) so repeated
// draft passes reproduce identical records.
func detailID(runID, employeeID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(runID, []byte(employeeID.String()))
}

func (s *service) loadAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceDay, error) {
	records, err := s.attendance.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	days := make([]AttendanceDay, len(records))
	for i, rec := range records {
		days[i] = AttendanceDay{Date: rec.AttendanceDate, WorkedMinutes: rec.WorkedMinutes}
	}
	return days, nil
}

func (s *service) loadLeaves(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveSpan, error) {
	records, err := s.leaves.ListApprovedOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	spans := make([]LeaveSpan, len(records))
	for i, rec := range records {
		span := LeaveSpan{Start: rec.StartDate, End: rec.EndDate, Paid: true}
		if rec.LeaveType != nil {
			span.Paid = rec.LeaveType.IsPaid
			span.TypeName = rec.LeaveType.Name
		}
		spans[i] = span
	}
	return spans, nil
}

func (s *service) loadPenalties(ctx context.Context, employeeID string) ([]PenaltyEntry, error) {
	records, err := s.penalties.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	entries := make([]PenaltyEntry, len(records))
	for i, rec := range records {
		entries[i] = PenaltyEntry{Reason: rec.Reason, Amount: rec.Amount}
	}
	return entries, nil
}
