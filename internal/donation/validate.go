package donation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rqsn/donasi/internal/apperr"
)

var phonePattern = regexp.MustCompile(`^\+?62[0-9]{9,11}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("idphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("method", func(fl validator.FieldLevel) bool {
		return Method(fl.Field().String()).Valid()
	})

	return v
}

// createInput is CreateParams after normalization, tagged for the validator.
type createInput struct {
	DonorName string `validate:"required"`
	Phone     string `validate:"idphone"`
	Amount    int64  `validate:"gte=2000"`
	Method    string `validate:"method"`
}

var fieldNames = map[string]string{
	"DonorName": "donor_name",
	"Phone":     "phone",
	"Amount":    "amount",
	"Method":    "method",
}

var fieldMessages = map[string]string{
	"DonorName": "donor name is required",
	"Phone":     "phone must be an Indonesian mobile number, e.g. +6281234567890",
	"Amount":    fmt.Sprintf("amount must be at least %d", MinimumAmount),
	"Method":    "method must be one of qris, transfer, trypay",
}

// Validate checks params and returns an *apperr.ValidationError listing every
// rejected field, or nil.
func (p CreateParams) Validate() error {
	in := createInput{
		DonorName: strings.TrimSpace(p.DonorName),
		Phone:     strings.TrimSpace(p.Phone),
		Amount:    p.Amount,
		Method:    string(p.Method),
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating donation: %w", err)
	}

	ve := apperr.NewValidationError()
	for _, fe := range fieldErrs {
		ve.Add(fieldNames[fe.StructField()], fieldMessages[fe.StructField()])
	}

	return ve.OrNil()
}
