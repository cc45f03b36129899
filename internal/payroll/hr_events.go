package payroll

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/period"
)

// ProcessHREvents scans the workforce for hire and termination activity
// inside the run's month and reports bonus and benefit instances still
// awaiting approval. It is a read-only review aid: nothing is approved or
// paid here, the amounts only flow into pay once a human approves the
// instance and the draft is regenerated.
func (s *service) ProcessHREvents(ctx context.Context, ref string) (HREventsResponse, error) {
	log := contextutil.GetLogger(ctx, zap.L()).Named("payroll.hrevents")

	run, err := s.findRun(ctx, ref)
	if err != nil {
		return HREventsResponse{}, err
	}
	if run.Status != StatusDraft {
		return HREventsResponse{}, payrollerrors.ErrRunNotDraft
	}

	employees, err := s.directory.ListAll(ctx)
	if err != nil {
		return HREventsResponse{}, err
	}

	monthStart := period.MonthStart(run.Period)
	monthEnd := period.MonthEnd(run.Period)

	resp := HREventsResponse{RunNumber: run.RunNumber}
	for _, emp := range employees {
		hired := !emp.HireDate.Before(monthStart) && !emp.HireDate.After(monthEnd)
		terminating := emp.TerminationDate != nil &&
			!emp.TerminationDate.Before(monthStart) && !emp.TerminationDate.After(monthEnd)
		if !hired && !terminating {
			continue
		}

		item := HREventItem{
			EmployeeID:       emp.ID.String(),
			EmployeeName:     emp.FullName,
			NewHireProbation: hired,
			Terminating:      terminating,
		}

		if hired {
			bonus, err := s.config.FindSigningBonus(ctx, emp.ID.String())
			if err != nil {
				return HREventsResponse{}, err
			}
			if bonus != nil && bonus.Status != payrollconfig.StatusApproved {
				amount := decimal.Zero
				if bonus.GivenAmount != nil {
					amount = *bonus.GivenAmount
				} else if bonus.Template != nil {
					amount = bonus.Template.Amount
				}
				item.PendingSigningBonus = &PendingInstanceReport{
					InstanceID:   bonus.ID.String(),
					TemplateName: signingTemplateName(bonus.Template),
					Amount:       amount,
				}
			}
		}
		if terminating {
			benefit, err := s.config.FindExitBenefit(ctx, emp.ID.String())
			if err != nil {
				return HREventsResponse{}, err
			}
			if benefit != nil && benefit.Status != payrollconfig.StatusApproved {
				amount := decimal.Zero
				if benefit.GivenAmount != nil {
					amount = *benefit.GivenAmount
				} else if benefit.Template != nil {
					amount = benefit.Template.Amount
				}
				item.PendingExitBenefit = &PendingInstanceReport{
					InstanceID:   benefit.ID.String(),
					TemplateName: exitTemplateName(benefit.Template),
					Amount:       amount,
				}
			}
		}

		resp.Items = append(resp.Items, item)
	}

	log.Info("hr events scanned",
		zap.String("run_number", run.RunNumber),
		zap.Int("items", len(resp.Items)),
	)
	return resp, nil
}

func signingTemplateName(t *payrollconfig.SigningBonusTemplate) string {
	if t == nil {
		return ""
	}
	return t.Name
}

func exitTemplateName(t *payrollconfig.ExitBenefitTemplate) string {
	if t == nil {
		return ""
	}
	return t.Name
}
