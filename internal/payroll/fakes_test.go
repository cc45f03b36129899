package payroll_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/penalty"
)

type fakeRunRepository struct {
	withTxFn              func(tx *sql.Tx) payroll.Repository
	createRunFn           func(ctx context.Context, run *payroll.PayrollRun) error
	updateRunFn           func(ctx context.Context, run *payroll.PayrollRun) error
	findRunByRefFn        func(ctx context.Context, ref string) (*payroll.PayrollRun, error)
	listRunsFn            func(ctx context.Context) ([]payroll.PayrollRun, error)
	replaceDetailsFn      func(ctx context.Context, runID uuid.UUID, details []payroll.PayrollRunDetail) error
	updateRunAggregatesFn func(ctx context.Context, runID uuid.UUID, employeeCount, exceptionCount int, totalNetPay decimal.Decimal) error
	listDetailsFn         func(ctx context.Context, runID uuid.UUID) ([]payroll.PayrollRunDetail, error)
	createPayslipFn       func(ctx context.Context, slip *payroll.Payslip) error
	findPayslipFn         func(ctx context.Context, runID, employeeID uuid.UUID) (*payroll.Payslip, error)
	listPayslipsFn        func(ctx context.Context, runID uuid.UUID) ([]payroll.Payslip, error)
}

func (f *fakeRunRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRunRepository) CreateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createRunFn != nil {
		return f.createRunFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) UpdateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.updateRunFn != nil {
		return f.updateRunFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) FindRunByRef(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
	if f.findRunByRefFn != nil {
		return f.findRunByRefFn(ctx, ref)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	if f.listRunsFn != nil {
		return f.listRunsFn(ctx)
	}
	return nil, nil
}

func (f *fakeRunRepository) ReplaceDetails(ctx context.Context, runID uuid.UUID, details []payroll.PayrollRunDetail) error {
	if f.replaceDetailsFn != nil {
		return f.replaceDetailsFn(ctx, runID, details)
	}
	return nil
}

func (f *fakeRunRepository) UpdateRunAggregates(ctx context.Context, runID uuid.UUID, employeeCount, exceptionCount int, totalNetPay decimal.Decimal) error {
	if f.updateRunAggregatesFn != nil {
		return f.updateRunAggregatesFn(ctx, runID, employeeCount, exceptionCount, totalNetPay)
	}
	return nil
}

func (f *fakeRunRepository) ListDetails(ctx context.Context, runID uuid.UUID) ([]payroll.PayrollRunDetail, error) {
	if f.listDetailsFn != nil {
		return f.listDetailsFn(ctx, runID)
	}
	return nil, nil
}

func (f *fakeRunRepository) CreatePayslip(ctx context.Context, slip *payroll.Payslip) error {
	if f.createPayslipFn != nil {
		return f.createPayslipFn(ctx, slip)
	}
	return nil
}

func (f *fakeRunRepository) FindPayslip(ctx context.Context, runID, employeeID uuid.UUID) (*payroll.Payslip, error) {
	if f.findPayslipFn != nil {
		return f.findPayslipFn(ctx, runID, employeeID)
	}
	return nil, nil
}

func (f *fakeRunRepository) ListPayslips(ctx context.Context, runID uuid.UUID) ([]payroll.Payslip, error) {
	if f.listPayslipsFn != nil {
		return f.listPayslipsFn(ctx, runID)
	}
	return nil, nil
}

type fakeDirectory struct {
	listAllFn           func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn          func(ctx context.Context, id string) (*employee.Employee, error)
	findApprovedShiftFn func(ctx context.Context, employeeID string, start, end time.Time) (*employee.ShiftAssignment, error)
}

func (f *fakeDirectory) ListAll(ctx context.Context) ([]employee.Employee, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &employee.Employee{ID: uuid.MustParse(id), Status: employee.StatusActive}, nil
}

func (f *fakeDirectory) FindApprovedShift(ctx context.Context, employeeID string, start, end time.Time) (*employee.ShiftAssignment, error) {
	if f.findApprovedShiftFn != nil {
		return f.findApprovedShiftFn(ctx, employeeID, start, end)
	}
	return nil, nil
}

type fakeConfigStore struct {
	findPayGradeFn                  func(ctx context.Context, id string) (*payrollconfig.PayGrade, error)
	listApprovedAllowancesFn        func(ctx context.Context) ([]payrollconfig.Allowance, error)
	listApprovedTaxRulesFn          func(ctx context.Context) ([]payrollconfig.TaxRule, error)
	listApprovedInsuranceBracketsFn func(ctx context.Context) ([]payrollconfig.InsuranceBracket, error)
	findSigningBonusFn              func(ctx context.Context, employeeID string) (*payrollconfig.EmployeeSigningBonus, error)
	findExitBenefitFn               func(ctx context.Context, employeeID string) (*payrollconfig.EmployeeExitBenefit, error)
}

func (f *fakeConfigStore) FindPayGrade(ctx context.Context, id string) (*payrollconfig.PayGrade, error) {
	if f.findPayGradeFn != nil {
		return f.findPayGradeFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeConfigStore) ListApprovedAllowances(ctx context.Context) ([]payrollconfig.Allowance, error) {
	if f.listApprovedAllowancesFn != nil {
		return f.listApprovedAllowancesFn(ctx)
	}
	return nil, nil
}

func (f *fakeConfigStore) ListApprovedTaxRules(ctx context.Context) ([]payrollconfig.TaxRule, error) {
	if f.listApprovedTaxRulesFn != nil {
		return f.listApprovedTaxRulesFn(ctx)
	}
	return nil, nil
}

func (f *fakeConfigStore) ListApprovedInsuranceBrackets(ctx context.Context) ([]payrollconfig.InsuranceBracket, error) {
	if f.listApprovedInsuranceBracketsFn != nil {
		return f.listApprovedInsuranceBracketsFn(ctx)
	}
	return nil, nil
}

func (f *fakeConfigStore) FindSigningBonus(ctx context.Context, employeeID string) (*payrollconfig.EmployeeSigningBonus, error) {
	if f.findSigningBonusFn != nil {
		return f.findSigningBonusFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeConfigStore) FindExitBenefit(ctx context.Context, employeeID string) (*payrollconfig.EmployeeExitBenefit, error) {
	if f.findExitBenefitFn != nil {
		return f.findExitBenefitFn(ctx, employeeID)
	}
	return nil, nil
}

type fakeAttendanceReader struct {
	listFn func(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceReader) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	if f.listFn != nil {
		return f.listFn(ctx, employeeID, start, end)
	}
	return nil, nil
}

type fakeLeaveReader struct {
	listFn func(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error)
}

func (f *fakeLeaveReader) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	if f.listFn != nil {
		return f.listFn(ctx, employeeID, start, end)
	}
	return nil, nil
}

type fakePenaltyReader struct {
	listFn func(ctx context.Context, employeeID string) ([]penalty.Penalty, error)
}

func (f *fakePenaltyReader) ListByEmployee(ctx context.Context, employeeID string) ([]penalty.Penalty, error) {
	if f.listFn != nil {
		return f.listFn(ctx, employeeID)
	}
	return nil, nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}
