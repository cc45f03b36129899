package payroll

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists runs, details and payslips. Reads go through GORM;
// writes run through raw SQL so they can ride an explicit *sql.Tx, which is
// what makes the delete-then-insert of a detail set atomic.
//
//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRun(ctx context.Context, run *PayrollRun) error
	UpdateRun(ctx context.Context, run *PayrollRun) error
	// FindRunByRef resolves a run by business run number first, falling back
	// to the internal id when ref parses as a UUID.
	FindRunByRef(ctx context.Context, ref string) (*PayrollRun, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)

	ReplaceDetails(ctx context.Context, runID uuid.UUID, details []PayrollRunDetail) error
	UpdateRunAggregates(ctx context.Context, runID uuid.UUID, employeeCount, exceptionCount int, totalNetPay decimal.Decimal) error
	ListDetails(ctx context.Context, runID uuid.UUID) ([]PayrollRunDetail, error)

	CreatePayslip(ctx context.Context, slip *Payslip) error
	FindPayslip(ctx context.Context, runID, employeeID uuid.UUID) (*Payslip, error)
	ListPayslips(ctx context.Context, runID uuid.UUID) ([]Payslip, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type execer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return failingExecer{err: err}
	}
	return sqlDB
}

type failingExecer struct{ err error }

func (f failingExecer) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, f.err
}

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	query := `
        INSERT INTO payroll_runs (
            id, run_number, entity, period, status,
            employee_count, exception_count, total_net_pay,
            payment_status, specialist_id, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		run.ID, run.RunNumber, run.Entity, run.Period, run.Status,
		run.EmployeeCount, run.ExceptionCount, run.TotalNetPay,
		run.PaymentStatus, run.SpecialistID,
	)
	return err
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	query := `
        UPDATE payroll_runs SET
            entity = $2,
            period = $3,
            status = $4,
            employee_count = $5,
            exception_count = $6,
            total_net_pay = $7,
            payment_status = $8,
            specialist_id = $9,
            manager_id = $10,
            finance_id = $11,
            locked_at = $12,
            paid_at = $13,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		run.ID, run.Entity, run.Period, run.Status,
		run.EmployeeCount, run.ExceptionCount, run.TotalNetPay,
		run.PaymentStatus, run.SpecialistID, run.ManagerID, run.FinanceID,
		run.LockedAt, run.PaidAt,
	)
	return err
}

func (r *repository) FindRunByRef(ctx context.Context, ref string) (*PayrollRun, error) {
	var run PayrollRun
	q := r.db.WithContext(ctx)
	if _, err := uuid.Parse(ref); err == nil {
		q = q.Where("run_number = ? OR id = ?", ref, ref)
	} else {
		q = q.Where("run_number = ?", ref)
	}
	if err := q.First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) ListRuns(ctx context.Context) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Order("period DESC, run_number DESC").
		Find(&runs).Error
	return runs, err
}

// ReplaceDetails drops the run's whole detail set and inserts the new one.
// Callers must run it inside a transaction so readers never observe a run
// with a partially replaced set.
func (r *repository) ReplaceDetails(ctx context.Context, runID uuid.UUID, details []PayrollRunDetail) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx, `DELETE FROM payroll_run_details WHERE run_id = $1`, runID); err != nil {
		return err
	}

	insert := `
        INSERT INTO payroll_run_details (
            id, run_id, employee_id, employee_name,
            base_salary, allowances, bonus_amount, benefit_amount, gross_salary,
            tax, insurance, penalties, deductions, net_salary, net_pay,
            breakdown_json, bank_ready, exception_reason, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
    `
	for i := range details {
		d := &details[i]
		if _, err := exec.ExecContext(
			ctx, insert,
			d.ID, d.RunID, d.EmployeeID, d.EmployeeName,
			d.BaseSalary, d.Allowances, d.BonusAmount, d.BenefitAmount, d.GrossSalary,
			d.Tax, d.Insurance, d.Penalties, d.Deductions, d.NetSalary, d.NetPay,
			d.BreakdownJSON, d.BankReady, d.ExceptionReason,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) UpdateRunAggregates(ctx context.Context, runID uuid.UUID, employeeCount, exceptionCount int, totalNetPay decimal.Decimal) error {
	query := `
        UPDATE payroll_runs SET
            employee_count = $2,
            exception_count = $3,
            total_net_pay = $4,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.execer().ExecContext(ctx, query, runID, employeeCount, exceptionCount, totalNetPay)
	return err
}

func (r *repository) ListDetails(ctx context.Context, runID uuid.UUID) ([]PayrollRunDetail, error) {
	var details []PayrollRunDetail
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("employee_name ASC, employee_id ASC").
		Find(&details).Error
	return details, err
}

func (r *repository) CreatePayslip(ctx context.Context, slip *Payslip) error {
	query := `
        INSERT INTO payslips (
            id, run_id, employee_id, employee_name,
            earnings_json, deductions_json, gross_total, net_total,
            payment_status, generated_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		slip.ID, slip.RunID, slip.EmployeeID, slip.EmployeeName,
		slip.EarningsJSON, slip.DeductionsJSON, slip.GrossTotal, slip.NetTotal,
		slip.PaymentStatus, slip.GeneratedAt,
	)
	return err
}

func (r *repository) FindPayslip(ctx context.Context, runID, employeeID uuid.UUID) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Where("run_id = ? AND employee_id = ?", runID, employeeID).
		First(&slip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

func (r *repository) ListPayslips(ctx context.Context, runID uuid.UUID) ([]Payslip, error) {
	var slips []Payslip
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("employee_name ASC").
		Find(&slips).Error
	return slips, err
}
