package form

import (
	"recruitment-form/internal/common/validation"
)

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

const (
	msgFillOut   = "Please fill out this field."
	msgSelect    = "Please select an item in the list."
	msgEmail     = "Please enter a valid email address."
	msgDate      = "Please enter a valid date."
	msgCheckBox  = "Please check this box if you want to proceed."
	msgBadValue  = "Please enter a valid value."
	msgUnknownFd = "Unknown field."
)

// ConstraintSchema derives the validator schema from the field schema.
func ConstraintSchema(s *Schema) validation.JSONSchema {
	js := validation.JSONSchema{
		Type:       "object",
		Properties: make(map[string]validation.Property),
	}
	for _, f := range s.Fields() {
		var p validation.Property
		switch f.Kind {
		case KindBoolean:
			p.Type = "boolean"
			if f.Required {
				p.Const = true
			}
		case KindChoice:
			p.Type = "string"
			if !f.Required {
				p.Enum = append(p.Enum, "")
			}
			for _, o := range f.Options {
				p.Enum = append(p.Enum, o.Value)
			}
			if f.Required {
				p.MinLength = validation.IntPtr(1)
			}
		default:
			p.Type = "string"
			switch f.InputType {
			case InputEmail:
				p.Format = validation.FormatEmail
			case InputDate:
				p.Format = validation.FormatDate
			}
			if f.Required {
				p.MinLength = validation.IntPtr(1)
			}
		}
		p.Description = f.Label
		js.Properties[f.Name] = p
		if f.Required {
			js.Required = append(js.Required, f.Name)
		}
	}
	return js
}

// Validate checks values against the field constraints. It returns nil when
// everything passes. Only the first problem per field is kept.
func Validate(s *Schema, values map[string]interface{}) FieldErrors {
	result := validation.ValidateInput(values, ConstraintSchema(s))
	if result.Valid {
		return nil
	}

	errs := make(FieldErrors, len(result.Violations))
	for _, ve := range result.Violations {
		if _, seen := errs[ve.Field]; seen {
			continue
		}
		errs[ve.Field] = message(s, ve)
	}
	return errs
}

func message(s *Schema, ve validation.Violation) string {
	f, ok := s.Field(ve.Field)
	if !ok {
		return msgUnknownFd
	}
	switch ve.Code {
	case validation.CodeRequiredMissing, validation.CodeMinLength:
		switch f.Kind {
		case KindChoice:
			return msgSelect
		case KindBoolean:
			return msgCheckBox
		}
		return msgFillOut
	case validation.CodeEnum:
		return msgSelect
	case validation.CodeConst:
		return msgCheckBox
	case validation.CodeFormat:
		if f.InputType == InputDate {
			return msgDate
		}
		return msgEmail
	}
	return msgBadValue
}
