package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payrollconfig"
)

func TestProcessHREvents_RequiresDraftStatus(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	run := draftRun()
	run.Status = payroll.StatusLocked
	deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
		return run, nil
	}

	_, err := deps.service.ProcessHREvents(ctx, run.RunNumber)

	assert.ErrorIs(t, err, payrollerrors.ErrRunNotDraft)
}

func TestProcessHREvents_FlagsHiresAndTerminations(t *testing.T) {
	ctx := context.Background()
	gradeID := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	run := draftRun()
	deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
		return run, nil
	}

	newHire := activeEmployee("June Kim", gradeID)
	newHire.HireDate = time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	newHire.Status = employee.StatusProbation

	leaver := activeEmployee("Kai Lund", gradeID)
	termination := time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC)
	leaver.TerminationDate = &termination

	steady := activeEmployee("Lea Moss", gradeID)

	deps.directory.listAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{newHire, leaver, steady}, nil
	}

	bonusTemplate := &payrollconfig.SigningBonusTemplate{
		ID: uuid.New(), Name: "Standard signing", Amount: d("1500"),
		Status: payrollconfig.StatusApproved,
	}
	deps.config.findSigningBonusFn = func(ctx context.Context, employeeID string) (*payrollconfig.EmployeeSigningBonus, error) {
		if employeeID != newHire.ID.String() {
			return nil, nil
		}
		return &payrollconfig.EmployeeSigningBonus{
			ID:         uuid.New(),
			EmployeeID: newHire.ID,
			TemplateID: bonusTemplate.ID,
			Template:   bonusTemplate,
			Status:     payrollconfig.StatusPending,
		}, nil
	}

	benefitTemplate := &payrollconfig.ExitBenefitTemplate{
		ID: uuid.New(), Name: "Severance", Amount: d("4000"),
		Status: payrollconfig.StatusApproved,
	}
	override := d("5250")
	deps.config.findExitBenefitFn = func(ctx context.Context, employeeID string) (*payrollconfig.EmployeeExitBenefit, error) {
		if employeeID != leaver.ID.String() {
			return nil, nil
		}
		return &payrollconfig.EmployeeExitBenefit{
			ID:          uuid.New(),
			EmployeeID:  leaver.ID,
			TemplateID:  benefitTemplate.ID,
			Template:    benefitTemplate,
			Status:      payrollconfig.StatusPending,
			GivenAmount: &override,
		}, nil
	}

	resp, err := deps.service.ProcessHREvents(ctx, run.RunNumber)

	assert.NoError(t, err)
	assert.Equal(t, run.RunNumber, resp.RunNumber)
	assert.Len(t, resp.Items, 2, "steady employee must not appear")

	byID := map[string]payroll.HREventItem{}
	for _, item := range resp.Items {
		byID[item.EmployeeID] = item
	}

	hire := byID[newHire.ID.String()]
	assert.True(t, hire.NewHireProbation)
	assert.False(t, hire.Terminating)
	assert.NotNil(t, hire.PendingSigningBonus)
	assert.Equal(t, "Standard signing", hire.PendingSigningBonus.TemplateName)
	assert.True(t, hire.PendingSigningBonus.Amount.Equal(d("1500")))

	exit := byID[leaver.ID.String()]
	assert.True(t, exit.Terminating)
	assert.False(t, exit.NewHireProbation)
	assert.NotNil(t, exit.PendingExitBenefit)
	assert.True(t, exit.PendingExitBenefit.Amount.Equal(d("5250")), "override amount wins")
}

func TestProcessHREvents_ApprovedInstancesNotReported(t *testing.T) {
	ctx := context.Background()
	gradeID := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	run := draftRun()
	deps.repo.findRunByRefFn = func(ctx context.Context, ref string) (*payroll.PayrollRun, error) {
		return run, nil
	}

	newHire := activeEmployee("Mia Nash", gradeID)
	newHire.HireDate = time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC)
	deps.directory.listAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{newHire}, nil
	}

	template := &payrollconfig.SigningBonusTemplate{
		ID: uuid.New(), Name: "Standard signing", Amount: d("1500"),
		Status: payrollconfig.StatusApproved,
	}
	deps.config.findSigningBonusFn = func(ctx context.Context, employeeID string) (*payrollconfig.EmployeeSigningBonus, error) {
		return &payrollconfig.EmployeeSigningBonus{
			ID:         uuid.New(),
			EmployeeID: newHire.ID,
			TemplateID: template.ID,
			Template:   template,
			Status:     payrollconfig.StatusApproved,
		}, nil
	}

	resp, err := deps.service.ProcessHREvents(ctx, run.RunNumber)

	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].NewHireProbation)
	assert.Nil(t, resp.Items[0].PendingSigningBonus, "approved instances need no review")
}
