package payroll_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
)

func paidRun() *payroll.PayrollRun {
	now := time.Now().UTC()
	run := draftRun()
	run.Status = payroll.StatusLocked
	run.PaymentStatus = payroll.PaymentPaid
	run.LockedAt = &now
	run.PaidAt = &now
	return run
}

func detailWithBreakdown(t *testing.T, runID uuid.UUID, name string) payroll.PayrollRunDetail {
	t.Helper()
	lines := []payroll.BreakdownLine{
		{Kind: payroll.LineEarning, Label: "Base salary", Amount: d("9000")},
		{Kind: payroll.LineTax, Label: "Income tax", Amount: d("900")},
		{Kind: payroll.LineInfo, Label: "Annual leave (paid)", Amount: d("409.09")},
	}
	raw, err := json.Marshal(lines)
	assert.NoError(t, err)
	return payroll.PayrollRunDetail{
		ID:            uuid.New(),
		RunID:         runID,
		EmployeeID:    uuid.New(),
		EmployeeName:  name,
		GrossSalary:   d("9000"),
		NetPay:        d("8100"),
		BreakdownJSON: raw,
		BankReady:     true,
	}
}

func TestGeneratePayslips_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("not locked", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		run := draftRun()
		deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
			return run, nil
		}

		_, err := deps.service.GeneratePayslips(ctx, run.RunNumber)
		assert.ErrorIs(t, err, payrollerrors.ErrRunNotLocked)
	})

	t.Run("locked but unpaid", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		run := draftRun()
		run.Status = payroll.StatusLocked
		deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
			return run, nil
		}

		_, err := deps.service.GeneratePayslips(ctx, run.RunNumber)
		assert.ErrorIs(t, err, payrollerrors.ErrRunNotPaid)
	})
}

func TestGeneratePayslips_SnapshotsBreakdown(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	run := paidRun()
	deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
		return run, nil
	}
	detail := detailWithBreakdown(t, run.ID, "Nora Otis")
	deps.repo.listDetailsFn = func(ctx context.Context, runID uuid.UUID) ([]payroll.PayrollRunDetail, error) {
		return []payroll.PayrollRunDetail{detail}, nil
	}

	expectTx(t, deps.sqlMock, true)
	var created *payroll.Payslip
	deps.repo.createPayslipFn = func(ctx context.Context, slip *payroll.Payslip) error {
		created = slip
		return nil
	}

	resp, err := deps.service.GeneratePayslips(ctx, run.RunNumber)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
	assert.Equal(t, 0, resp.Skipped)
	assert.NotNil(t, created)
	assert.Equal(t, run.ID, created.RunID)
	assert.Equal(t, detail.EmployeeID, created.EmployeeID)
	assert.True(t, created.GrossTotal.Equal(d("9000")))
	assert.True(t, created.NetTotal.Equal(d("8100")))
	assert.Equal(t, payroll.PaymentPaid, created.PaymentStatus)

	var earnings, deductions []payroll.BreakdownLine
	assert.NoError(t, json.Unmarshal(created.EarningsJSON, &earnings))
	assert.NoError(t, json.Unmarshal(created.DeductionsJSON, &deductions))
	assert.Len(t, earnings, 1)
	assert.Len(t, deductions, 1)
	assert.Equal(t, "Income tax", deductions[0].Label)
	// Informational paid-leave lines belong to neither side.
	for _, line := range append(earnings, deductions...) {
		assert.NotEqual(t, payroll.LineInfo, line.Kind)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGeneratePayslips_SkipsExisting(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	run := paidRun()
	deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
		return run, nil
	}
	existing := detailWithBreakdown(t, run.ID, "Omar Pitt")
	fresh := detailWithBreakdown(t, run.ID, "Pia Quinn")
	deps.repo.listDetailsFn = func(ctx context.Context, runID uuid.UUID) ([]payroll.PayrollRunDetail, error) {
		return []payroll.PayrollRunDetail{existing, fresh}, nil
	}
	deps.repo.findPayslipFn = func(ctx context.Context, runID, employeeID uuid.UUID) (*payroll.Payslip, error) {
		if employeeID == existing.EmployeeID {
			return &payroll.Payslip{ID: uuid.New(), RunID: runID, EmployeeID: employeeID}, nil
		}
		return nil, nil
	}

	expectTx(t, deps.sqlMock, true)
	var createdFor []uuid.UUID
	deps.repo.createPayslipFn = func(ctx context.Context, slip *payroll.Payslip) error {
		createdFor = append(createdFor, slip.EmployeeID)
		return nil
	}

	resp, err := deps.service.GeneratePayslips(ctx, run.RunNumber)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, []uuid.UUID{fresh.EmployeeID}, createdFor)

	byStatus := map[string]int{}
	for _, outcome := range resp.Outcomes {
		byStatus[outcome.Status]++
	}
	assert.Equal(t, 1, byStatus[payroll.PayslipGenerated])
	assert.Equal(t, 1, byStatus[payroll.PayslipAlreadyGenerated])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestDownloadPayslip(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	run := paidRun()
	deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
		return run, nil
	}

	employeeID := uuid.New()
	earnings, _ := json.Marshal([]payroll.BreakdownLine{
		{Kind: payroll.LineEarning, Label: "Base salary", Amount: d("9000")},
	})
	deductions, _ := json.Marshal([]payroll.BreakdownLine{
		{Kind: payroll.LineTax, Label: "Income tax", Amount: d("900")},
	})

	t.Run("renders pdf", func(t *testing.T) {
		deps.repo.findPayslipFn = func(ctx context.Context, runID, empID uuid.UUID) (*payroll.Payslip, error) {
			return &payroll.Payslip{
				ID:             uuid.New(),
				RunID:          runID,
				EmployeeID:     empID,
				EmployeeName:   "Raj Singh",
				EarningsJSON:   earnings,
				DeductionsJSON: deductions,
				GrossTotal:     d("9000"),
				NetTotal:       d("8100"),
				PaymentStatus:  payroll.PaymentPaid,
				GeneratedAt:    time.Now().UTC(),
			}, nil
		}

		pdf, name, err := deps.service.DownloadPayslip(ctx, run.RunNumber, employeeID.String())

		assert.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
		assert.Contains(t, string(pdf), "%%EOF")
		assert.Contains(t, name, run.RunNumber)
		assert.Contains(t, name, ".pdf")
	})

	t.Run("missing slip", func(t *testing.T) {
		deps.repo.findPayslipFn = func(ctx context.Context, runID, empID uuid.UUID) (*payroll.Payslip, error) {
			return nil, nil
		}

		_, _, err := deps.service.DownloadPayslip(ctx, run.RunNumber, employeeID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
	})

	t.Run("bad employee id", func(t *testing.T) {
		_, _, err := deps.service.DownloadPayslip(ctx, run.RunNumber, "not-a-uuid")

		assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
	})
}
