package http

import (
	"github.com/go-playground/validator/v10"

	"gatepass-backend/internal/domain/workflow"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// acting role must belong to the closed workflow set
	_ = v.RegisterValidation("wfrole", func(fl validator.FieldLevel) bool {
		return workflow.KnownRole(workflow.Role(fl.Field().String()))
	})
	// safety/submitter forward target
	_ = v.RegisterValidation("officer_target", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || s == "officer1" || s == "officer2"
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "wfrole":
			out = append(out, FieldError{Field: field, Message: "is not a known workflow role"})
		case "officer_target":
			out = append(out, FieldError{Field: field, Message: "must be officer1 or officer2"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must have at least " + e.Param() + " item(s)"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must match " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
