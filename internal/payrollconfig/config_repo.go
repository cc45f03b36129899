package payrollconfig

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store is the read-only view of approved payroll configuration. Authoring
// and approval of these records happen in the configuration back office.
//
//go:generate mockgen -source=config_repo.go -destination=mock/config_store_mock.go -package=mock
type Store interface {
	FindPayGrade(ctx context.Context, id string) (*PayGrade, error)
	ListApprovedAllowances(ctx context.Context) ([]Allowance, error)
	ListApprovedTaxRules(ctx context.Context) ([]TaxRule, error)
	ListApprovedInsuranceBrackets(ctx context.Context) ([]InsuranceBracket, error)
	// FindSigningBonus and FindExitBenefit return the employee's instance
	// with its template preloaded, or nil when the employee has none.
	FindSigningBonus(ctx context.Context, employeeID string) (*EmployeeSigningBonus, error)
	FindExitBenefit(ctx context.Context, employeeID string) (*EmployeeExitBenefit, error)
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) FindPayGrade(ctx context.Context, id string) (*PayGrade, error) {
	var grade PayGrade
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		First(&grade, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (s *store) ListApprovedAllowances(ctx context.Context) ([]Allowance, error) {
	var allowances []Allowance
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Order("name ASC").
		Find(&allowances).Error
	return allowances, err
}

func (s *store) ListApprovedTaxRules(ctx context.Context) ([]TaxRule, error) {
	var rules []TaxRule
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Order("name ASC").
		Find(&rules).Error
	return rules, err
}

func (s *store) ListApprovedInsuranceBrackets(ctx context.Context) ([]InsuranceBracket, error) {
	var brackets []InsuranceBracket
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Order("min_salary ASC").
		Find(&brackets).Error
	return brackets, err
}

func (s *store) FindSigningBonus(ctx context.Context, employeeID string) (*EmployeeSigningBonus, error) {
	var bonus EmployeeSigningBonus
	err := s.db.WithContext(ctx).
		Preload("Template").
		First(&bonus, "employee_id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bonus, nil
}

func (s *store) FindExitBenefit(ctx context.Context, employeeID string) (*EmployeeExitBenefit, error) {
	var benefit EmployeeExitBenefit
	err := s.db.WithContext(ctx).
		Preload("Template").
		First(&benefit, "employee_id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &benefit, nil
}
