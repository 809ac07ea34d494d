package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	id "rtwgate/pkg/domain"
	dErrors "rtwgate/pkg/domain-errors"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// EligibilityRequest asks for a verdict on one document type. Date defaults
// to today.
type EligibilityRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	Nationality  string `json:"nationality"`
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type VerifyShareCodeRequest struct {
	ShareCode   string `json:"share_code" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
}

// AddCheckRequest mirrors models.AddCheckInput. Field-level rules live in the
// service so a rejected check reports every problem in one Validation.
type AddCheckRequest struct {
	EmployeeID     string `json:"employee_id" validate:"omitempty,uuid"`
	StaffName      string `json:"staff_name" validate:"max=200"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number" validate:"max=64"`
	Nationality    string `json:"nationality" validate:"max=100"`
	VisaType       string `json:"visa_type" validate:"max=100"`
	VisaExpiry     string `json:"visa_expiry"`
	ShareCode      string `json:"share_code" validate:"max=16"`
	CheckDate      string `json:"check_date"`
	EvidencePath   string `json:"evidence_path" validate:"max=512"`
	Notes          string `json:"notes" validate:"max=2000"`
	VerificationID string `json:"verification_id" validate:"omitempty,uuid"`
}

func (r *AddCheckRequest) toInput() (models.AddCheckInput, error) {
	in := models.AddCheckInput{
		StaffName:      r.StaffName,
		DocumentType:   r.DocumentType,
		DocumentNumber: r.DocumentNumber,
		Nationality:    r.Nationality,
		VisaType:       r.VisaType,
		VisaExpiry:     r.VisaExpiry,
		ShareCode:      r.ShareCode,
		CheckDate:      r.CheckDate,
		EvidencePath:   r.EvidencePath,
		Notes:          r.Notes,
	}
	if r.EmployeeID != "" {
		employeeID, err := id.ParseEmployeeID(r.EmployeeID)
		if err != nil {
			return models.AddCheckInput{}, dErrors.New(dErrors.CodeBadRequest, "employee_id must be a UUID")
		}
		in.EmployeeID = &employeeID
	}
	if r.VerificationID != "" {
		verificationID, err := id.ParseVerificationID(r.VerificationID)
		if err != nil {
			return models.AddCheckInput{}, dErrors.New(dErrors.CodeBadRequest, "verification_id must be a UUID")
		}
		in.VerificationID = &verificationID
	}
	return in, nil
}

func (r *EligibilityRequest) date() (*eligibility.Date, error) {
	if r.Date == "" {
		return nil, nil
	}
	d, err := eligibility.ParseDate(r.Date)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "date must be YYYY-MM-DD")
	}
	return &d, nil
}

// validateRequest runs struct tags and returns a bad_request error naming
// each failing field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return dErrors.New(dErrors.CodeBadRequest, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "uuid":
		return field + " must be a UUID"
	case "datetime":
		return field + " must be YYYY-MM-DD"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
