package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/penalty"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/period"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CreateRun(ctx context.Context, req CreateRunRequest) (RunResponse, error)
	ListRuns(ctx context.Context) ([]RunResponse, error)
	GetRun(ctx context.Context, ref string) (RunResponse, error)
	UpdatePeriod(ctx context.Context, ref string, req UpdatePeriodRequest) (RunResponse, error)
	StartInitiation(ctx context.Context, ref string, req StartInitiationRequest) (RunResponse, error)
	SubmitForReview(ctx context.Context, ref string, req ReviewRequest) (RunResponse, error)
	Reject(ctx context.Context, ref string, req ReviewRequest) (RunResponse, error)
	Lock(ctx context.Context, ref string, req ReviewRequest) (RunResponse, error)
	MarkPaid(ctx context.Context, ref string, req MarkPaidRequest) (RunResponse, error)

	GenerateDraft(ctx context.Context, ref string) (DraftSummaryResponse, error)
	ProcessHREvents(ctx context.Context, ref string) (HREventsResponse, error)
	GeneratePayslips(ctx context.Context, ref string) (PayslipGenerationResponse, error)

	ListDetails(ctx context.Context, ref string) ([]DetailResponse, error)
	ListPayslips(ctx context.Context, ref string) ([]PayslipResponse, error)
	DownloadPayslip(ctx context.Context, ref, employeeID string) ([]byte, string, error)
}

type service struct {
	db   *sql.DB
	repo Repository

	directory  employee.Directory
	config     payrollconfig.Store
	attendance attendance.Reader
	leaves     leave.Reader
	penalties  penalty.Reader
	counter    counter.Repository
	outbox     kafka.OutboxRepository

	// workers bounds the draft generator's per-employee fan-out; sized for
	// the data-store connection budget rather than CPU.
	workers int
}

type Collaborators struct {
	Directory  employee.Directory
	Config     payrollconfig.Store
	Attendance attendance.Reader
	Leaves     leave.Reader
	Penalties  penalty.Reader
	Counter    counter.Repository
}

const defaultDraftWorkers = 8

func NewService(db *sql.DB, repo Repository, collab Collaborators) Service {
	return &service{
		db:         db,
		repo:       repo,
		directory:  collab.Directory,
		config:     collab.Config,
		attendance: collab.Attendance,
		leaves:     collab.Leaves,
		penalties:  collab.Penalties,
		counter:    collab.Counter,
		workers:    defaultDraftWorkers,
	}
}

// NewServiceWithOutbox additionally emits a run-paid event through the
// transactional outbox when a run is marked paid.
func NewServiceWithOutbox(db *sql.DB, repo Repository, collab Collaborators, outbox kafka.OutboxRepository) Service {
	svc := NewService(db, repo, collab).(*service)
	svc.outbox = outbox
	return svc
}

func (s *service) CreateRun(ctx context.Context, req CreateRunRequest) (RunResponse, error) {
	if _, err := uuid.Parse(req.SpecialistID); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidSpecialistID
	}
	specialist, err := s.directory.FindByID(ctx, req.SpecialistID)
	if err != nil {
		if isRecordNotFound(err) {
			return RunResponse{}, payrollerrors.ErrSpecialistNotFound
		}
		return RunResponse{}, err
	}

	periodEnd, err := s.normalizePeriod(req.Period)
	if err != nil {
		return RunResponse{}, err
	}

	runNumber := strings.TrimSpace(req.RunNumber)
	if runNumber == "" {
		seq, err := s.counter.GetNextValue(ctx, counter.TypePayrollRun)
		if err != nil {
			return RunResponse{}, err
		}
		runNumber = fmt.Sprintf("PR-%d-%04d", periodEnd.Year(), seq)
	}

	run := &PayrollRun{
		ID:            uuid.New(),
		RunNumber:     runNumber,
		Entity:        req.Entity,
		Period:        periodEnd,
		Status:        StatusDraft,
		TotalNetPay:   decimal.Zero,
		PaymentStatus: PaymentPending,
		SpecialistID:  specialist.ID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		if isUniqueViolation(err) {
			return RunResponse{}, payrollerrors.ErrRunNumberExists
		}
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	return mapRunToResponse(*run), nil
}

func (s *service) ListRuns(ctx context.Context) ([]RunResponse, error) {
	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]RunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run)
	}
	return resp, nil
}

func (s *service) GetRun(ctx context.Context, ref string) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

func (s *service) UpdatePeriod(ctx context.Context, ref string, req UpdatePeriodRequest) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	if !isEditable(run.Status) {
		return RunResponse{}, payrollerrors.ErrRunNotEditable
	}

	periodEnd, err := s.normalizePeriod(req.Period)
	if err != nil {
		return RunResponse{}, err
	}
	run.Period = periodEnd

	if err := s.saveRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

// StartInitiation resets counters and re-asserts DRAFT: the explicit signal
// that draft (re)generation is about to happen.
func (s *service) StartInitiation(ctx context.Context, ref string, req StartInitiationRequest) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	if !isEditable(run.Status) {
		return RunResponse{}, payrollerrors.ErrRunNotEditable
	}

	specialistID, err := uuid.Parse(req.SpecialistID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidSpecialistID
	}
	if _, err := s.directory.FindByID(ctx, req.SpecialistID); err != nil {
		if isRecordNotFound(err) {
			return RunResponse{}, payrollerrors.ErrSpecialistNotFound
		}
		return RunResponse{}, err
	}

	run.Status = StatusDraft
	run.SpecialistID = specialistID
	run.EmployeeCount = 0
	run.ExceptionCount = 0
	run.TotalNetPay = decimal.Zero

	if err := s.saveRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

func (s *service) SubmitForReview(ctx context.Context, ref string, req ReviewRequest) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusDraft && run.Status != StatusRejected {
		return RunResponse{}, payrollerrors.ErrRunNotDraft
	}

	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidSpecialistID
	}
	run.Status = StatusUnderReview
	run.ManagerID = &managerID

	if err := s.saveRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

func (s *service) Reject(ctx context.Context, ref string, req ReviewRequest) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusUnderReview {
		return RunResponse{}, payrollerrors.ErrRunNotUnderReview
	}

	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidSpecialistID
	}
	run.Status = StatusRejected
	run.ManagerID = &managerID

	if err := s.saveRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

func (s *service) Lock(ctx context.Context, ref string, req ReviewRequest) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusUnderReview {
		return RunResponse{}, payrollerrors.ErrRunNotUnderReview
	}

	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidSpecialistID
	}
	now := time.Now().UTC()
	run.Status = StatusLocked
	run.ManagerID = &managerID
	run.LockedAt = &now

	if err := s.saveRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

// MarkPaid flips payment status and, when an outbox is wired, emits the
// run-paid event in the same transaction so payslip finalization can follow
// automatically.
func (s *service) MarkPaid(ctx context.Context, ref string, req MarkPaidRequest) (RunResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusLocked {
		return RunResponse{}, payrollerrors.ErrRunNotLocked
	}
	if run.PaymentStatus == PaymentPaid {
		return RunResponse{}, payrollerrors.ErrRunAlreadyPaid
	}

	financeID, err := uuid.Parse(req.FinanceID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidSpecialistID
	}
	now := time.Now().UTC()
	run.PaymentStatus = PaymentPaid
	run.FinanceID = &financeID
	run.PaidAt = &now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueRunPaidEvent(ctx, tx, run); err != nil {
			return RunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

func (s *service) ListDetails(ctx context.Context, ref string) ([]DetailResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return nil, err
	}
	details, err := s.repo.ListDetails(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]DetailResponse, len(details))
	for i, d := range details {
		resp[i] = mapDetailToResponse(d)
	}
	return resp, nil
}

func (s *service) ListPayslips(ctx context.Context, ref string) ([]PayslipResponse, error) {
	run, err := s.findRun(ctx, ref)
	if err != nil {
		return nil, err
	}
	slips, err := s.repo.ListPayslips(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]PayslipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapPayslipToResponse(slip)
	}
	return resp, nil
}

// --- helpers ---

func (s *service) findRun(ctx context.Context, ref string) (*PayrollRun, error) {
	run, err := s.repo.FindRunByRef(ctx, ref)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, payrollerrors.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *service) saveRun(ctx context.Context, run *PayrollRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateRun(ctx, run); err != nil {
		return err
	}
	return tx.Commit()
}

// normalizePeriod parses the requested period, normalizes it to month-end
// and rejects anything before the current month-end.
func (s *service) normalizePeriod(v string) (time.Time, error) {
	periodEnd, err := period.Parse(v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	if periodEnd.Before(period.CurrentMonthEnd(time.Now())) {
		return time.Time{}, payrollerrors.ErrPeriodInPast
	}
	return periodEnd, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func mapRunToResponse(run PayrollRun) RunResponse {
	resp := RunResponse{
		ID:             run.ID.String(),
		RunNumber:      run.RunNumber,
		Entity:         run.Entity,
		Period:         run.Period.Format("2006-01-02"),
		Status:         run.Status,
		EmployeeCount:  run.EmployeeCount,
		ExceptionCount: run.ExceptionCount,
		TotalNetPay:    run.TotalNetPay,
		PaymentStatus:  run.PaymentStatus,
		SpecialistID:   run.SpecialistID.String(),
		CreatedAt:      run.CreatedAt.UTC().Format(time.RFC3339),
	}
	if run.ManagerID != nil {
		v := run.ManagerID.String()
		resp.ManagerID = &v
	}
	if run.FinanceID != nil {
		v := run.FinanceID.String()
		resp.FinanceID = &v
	}
	if run.LockedAt != nil {
		v := run.LockedAt.UTC().Format(time.RFC3339)
		resp.LockedAt = &v
	}
	if run.PaidAt != nil {
		v := run.PaidAt.UTC().Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapDetailToResponse(d PayrollRunDetail) DetailResponse {
	return DetailResponse{
		ID:              d.ID.String(),
		EmployeeID:      d.EmployeeID.String(),
		EmployeeName:    d.EmployeeName,
		BaseSalary:      d.BaseSalary,
		Allowances:      d.Allowances,
		BonusAmount:     d.BonusAmount,
		BenefitAmount:   d.BenefitAmount,
		GrossSalary:     d.GrossSalary,
		Tax:             d.Tax,
		Insurance:       d.Insurance,
		Penalties:       d.Penalties,
		Deductions:      d.Deductions,
		NetSalary:       d.NetSalary,
		NetPay:          d.NetPay,
		BankReady:       d.BankReady,
		ExceptionReason: d.ExceptionReason,
		Breakdown:       json.RawMessage(d.BreakdownJSON),
	}
}

func mapPayslipToResponse(slip Payslip) PayslipResponse {
	return PayslipResponse{
		ID:            slip.ID.String(),
		EmployeeID:    slip.EmployeeID.String(),
		EmployeeName:  slip.EmployeeName,
		Earnings:      json.RawMessage(slip.EarningsJSON),
		Deductions:    json.RawMessage(slip.DeductionsJSON),
		GrossTotal:    slip.GrossTotal,
		NetTotal:      slip.NetTotal,
		PaymentStatus: slip.PaymentStatus,
		GeneratedAt:   slip.GeneratedAt.UTC().Format(time.RFC3339),
	}
}
