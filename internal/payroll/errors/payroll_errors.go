package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidSpecialistID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid specialist id",
		http.StatusBadRequest,
	)
	ErrSpecialistNotFound = apperror.New(
		apperror.CodeNotFound,
		"specialist does not resolve to a known employee",
		http.StatusNotFound,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM or YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPeriodInPast = apperror.New(
		apperror.CodeInvalidInput,
		"period must not be before the current month-end",
		http.StatusBadRequest,
	)
	ErrRunNumberExists = apperror.New(
		apperror.CodeConflict,
		"payroll run number already exists",
		http.StatusConflict,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrRunNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be modified while DRAFT, UNDER_REVIEW or REJECTED",
		http.StatusConflict,
	)
	ErrRunNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run must be in DRAFT status for this operation",
		http.StatusConflict,
	)
	ErrRunNotUnderReview = apperror.New(
		apperror.CodeInvalidState,
		"payroll run must be UNDER_REVIEW for this operation",
		http.StatusConflict,
	)
	ErrRunNotLocked = apperror.New(
		apperror.CodeInvalidState,
		"payroll run must be LOCKED for this operation",
		http.StatusConflict,
	)
	ErrRunAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"payroll run is already marked as paid",
		http.StatusConflict,
	)
	ErrRunNotPaid = apperror.New(
		apperror.CodeInvalidState,
		"payroll run payment must be PAID before payslips can be generated",
		http.StatusConflict,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found for this run and employee",
		http.StatusNotFound,
	)
)
