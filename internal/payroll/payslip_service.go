package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
)

// GeneratePayslips freezes one payslip per detail record of a locked, paid
// run. Already-generated slips are left untouched, so the operation can be
// retried after a partial failure without duplicating documents.
func (s *service) GeneratePayslips(ctx context.Context, ref string) (PayslipGenerationResponse, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("payroll.payslip")

	run, err := s.findRun(ctx, ref)
	if err != nil {
		return PayslipGenerationResponse{}, err
	}
	if run.Status != StatusLocked {
		return PayslipGenerationResponse{}, payrollerrors.ErrRunNotLocked
	}
	if run.PaymentStatus != PaymentPaid {
		return PayslipGenerationResponse{}, payrollerrors.ErrRunNotPaid
	}

	details, err := s.repo.ListDetails(ctx, run.ID)
	if err != nil {
		return PayslipGenerationResponse{}, err
	}

	resp := PayslipGenerationResponse{
		RunNumber: run.RunNumber,
		Outcomes:  make([]PayslipOutcome, 0, len(details)),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipGenerationResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	now := time.Now().UTC()
	for _, detail := range details {
		existing, err := s.repo.FindPayslip(ctx, run.ID, detail.EmployeeID)
		if err != nil {
			return PayslipGenerationResponse{}, err
		}
		if existing != nil {
			resp.Skipped++
			resp.Outcomes = append(resp.Outcomes, PayslipOutcome{
				EmployeeID:   detail.EmployeeID.String(),
				EmployeeName: detail.EmployeeName,
				Status:       PayslipAlreadyGenerated,
			})
			continue
		}

		slip, err := buildPayslip(run, detail, now)
		if err != nil {
			return PayslipGenerationResponse{}, err
		}
		if err := qtx.CreatePayslip(ctx, slip); err != nil {
			return PayslipGenerationResponse{}, err
		}
		resp.Generated++
		resp.Outcomes = append(resp.Outcomes, PayslipOutcome{
			EmployeeID:   detail.EmployeeID.String(),
			EmployeeName: detail.EmployeeName,
			Status:       PayslipGenerated,
		})
	}

	if err := tx.Commit(); err != nil {
		return PayslipGenerationResponse{}, err
	}

	log.Info("payslips generated",
		zap.String("run_number", run.RunNumber),
		zap.Int("generated", resp.Generated),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

// buildPayslip snapshots the detail's breakdown into earnings and deductions.
// Informational lines (paid-leave value) are reporting-only and stay out of
// both sides.
func buildPayslip(run *PayrollRun, detail PayrollRunDetail, generatedAt time.Time) (*Payslip, error) {
	var lines []BreakdownLine
	if len(detail.BreakdownJSON) > 0 {
		if err := json.Unmarshal(detail.BreakdownJSON, &lines); err != nil {
			return nil, err
		}
	}

	earnings := make([]BreakdownLine, 0, len(lines))
	deductions := make([]BreakdownLine, 0, len(lines))
	for _, line := range lines {
		switch line.Kind {
		case LineEarning:
			earnings = append(earnings, line)
		case LinePenalty, LineLeave, LineTax, LineInsurance:
			deductions = append(deductions, line)
		}
	}

	earningsJSON, err := json.Marshal(earnings)
	if err != nil {
		return nil, err
	}
	deductionsJSON, err := json.Marshal(deductions)
	if err != nil {
		return nil, err
	}

	return &Payslip{
		ID:             uuid.NewSHA1(run.ID, []byte("payslip:"+detail.EmployeeID.String())),
		RunID:          run.ID,
		EmployeeID:     detail.EmployeeID,
		EmployeeName:   detail.EmployeeName,
		EarningsJSON:   earningsJSON,
		DeductionsJSON: deductionsJSON,
		GrossTotal:     detail.GrossSalary,
		NetTotal:       detail.NetPay,
		PaymentStatus:  run.PaymentStatus,
		GeneratedAt:    generatedAt,
	}, nil
}

// DownloadPayslip renders the stored payslip as a PDF document. The second
// return value is the suggested file name.
func (s *service) DownloadPayslip(ctx context.Context, ref, employeeID string) ([]byte, string, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, "", payrollerrors.ErrPayslipNotFound
	}
	slip, err := s.repo.FindPayslip(ctx, run.ID, empID)
	if err != nil {
		return nil, "", err
	}
	if slip == nil {
		return nil, "", payrollerrors.ErrPayslipNotFound
	}

	pdf, err := renderPayslipPDF(run, slip)
	if err != nil {
		return nil, "", err
	}
	name := "payslip-" + run.RunNumber + "-" + slip.EmployeeID.String() + ".pdf"
	return pdf, name, nil
}

func (s *service) enqueueRunPaidEvent(ctx context.Context, tx *sql.Tx, run *PayrollRun) error {
	financeID := ""
	if run.FinanceID != nil {
		financeID = run.FinanceID.String()
	}
	payload, err := json.Marshal(events.PayrollRunPaidEvent{
		EventType:  "payroll.run.paid",
		RunID:      run.ID.String(),
		RunNumber:  run.RunNumber,
		Period:     run.Period.Format("2006-01-02"),
		FinanceID:  financeID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   run.ID.String(),
		EventType:     "payroll.run.paid",
		Topic:         events.PayrollRunPaidTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
