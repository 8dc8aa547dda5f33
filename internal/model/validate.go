package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// InvalidInputError identifies the record and field that failed validation.
// These are caller bugs, rejected before the run starts.
type InvalidInputError struct {
	Record string // e.g. `part "Leg"` or "parameters"
	Field  string
	Detail string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s field %q: %s", e.Record, e.Field, e.Detail)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// structErr converts the first validator violation into an InvalidInputError.
func structErr(record string, err error) error {
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		v := verrs[0]
		return &InvalidInputError{
			Record: record,
			Field:  v.Field(),
			Detail: fmt.Sprintf("failed %q check (value %v)", v.Tag(), v.Value()),
		}
	}
	return err
}

// ValidateInputs checks an optimization input set. It fails fast on the
// first offending record so the caller gets a precise report.
func ValidateInputs(inventory []LumberStock, parts []Part, params CuttingParameters) error {
	for _, s := range inventory {
		if err := structErr(fmt.Sprintf("stock %q", s.Name), validate.Struct(s)); err != nil {
			return err
		}
	}
	for _, p := range parts {
		if err := structErr(fmt.Sprintf("part %q", p.Name), validate.Struct(p)); err != nil {
			return err
		}
		if p.Rotations&^RotateAll != 0 {
			return &InvalidInputError{
				Record: fmt.Sprintf("part %q", p.Name),
				Field:  "Rotations",
				Detail: fmt.Sprintf("unknown rotation bits %#x", uint8(p.Rotations&^RotateAll)),
			}
		}
	}
	if err := structErr("parameters", validate.Struct(params)); err != nil {
		return err
	}
	switch params.Priority {
	case PriorityEfficiency, PriorityCost, PrioritySpeed:
	default:
		return &InvalidInputError{
			Record: "parameters",
			Field:  "Priority",
			Detail: fmt.Sprintf("unknown optimization priority %q", params.Priority),
		}
	}
	if params.AllowPlaning && params.MaxPlaning <= 0 {
		return &InvalidInputError{
			Record: "parameters",
			Field:  "MaxPlaning",
			Detail: "planing enabled but max planing depth is not positive",
		}
	}
	return nil
}
