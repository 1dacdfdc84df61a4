package validation

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"time"
)

// Formats understood by Property.Format.
const (
	FormatEmail = "email"
	FormatDate  = "date"
)

// Violation codes.
const (
	CodeRequiredMissing = "REQUIRED_FIELD_MISSING"
	CodeExtraField      = "EXTRA_FIELD"
	CodeInvalidType     = "INVALID_TYPE"
	CodeMinLength       = "MIN_LENGTH_VIOLATION"
	CodeEnum            = "INVALID_ENUM_VALUE"
	CodeFormat          = "INVALID_FORMAT"
	CodeConst           = "CONST_MISMATCH"
)

// JSONSchema describes a flat record of string and boolean properties.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	MinLength   *int        `json:"minLength,omitempty"`
	Format      string      `json:"format,omitempty"` // empty strings skip the format check
	Const       interface{} `json:"const,omitempty"`
}

type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type Result struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Messages renders every violation as "field: message".
func (r *Result) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.String())
	}
	return out
}

// rule inspects one value. A stop result skips the remaining rules for
// that field.
type rule func(value interface{}, prop Property) (v *Violation, stop bool)

var rules = []rule{checkType, checkConst, checkMinLength, checkEnum, checkFormat}

// emailPattern is the WHATWG "valid e-mail address" production used by
// <input type=email>. Dotless hosts such as localhost are accepted.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_\x60{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// ValidateInput checks input against schema. Violations are ordered by
// field name.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *Result {
	var found []Violation

	for _, name := range schema.Required {
		if _, ok := input[name]; !ok {
			found = append(found, Violation{Field: name, Code: CodeRequiredMissing, Message: "required field missing"})
		}
	}

	for name, value := range input {
		prop, ok := schema.Properties[name]
		if !ok {
			if !schema.AdditionalProperties {
				found = append(found, Violation{Field: name, Code: CodeExtraField, Message: "field not allowed in schema"})
			}
			continue
		}
		for _, check := range rules {
			v, stop := check(value, prop)
			if v != nil {
				v.Field = name
				found = append(found, *v)
			}
			if stop {
				break
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].Field < found[j].Field })
	return &Result{Valid: len(found) == 0, Violations: found}
}

func checkType(value interface{}, prop Property) (*Violation, bool) {
	var ok bool
	switch prop.Type {
	case "string":
		_, ok = value.(string)
	case "boolean":
		_, ok = value.(bool)
	default:
		return nil, false
	}
	if ok {
		return nil, false
	}
	return &Violation{Code: CodeInvalidType, Message: fmt.Sprintf("expected %s, got %T", prop.Type, value)}, true
}

func checkConst(value interface{}, prop Property) (*Violation, bool) {
	if prop.Const == nil || value == prop.Const {
		return nil, false
	}
	return &Violation{Code: CodeConst, Message: fmt.Sprintf("value must be %v", prop.Const)}, false
}

// checkMinLength stops the chain: an empty value would only add noise.
func checkMinLength(value interface{}, prop Property) (*Violation, bool) {
	s, ok := value.(string)
	if !ok || prop.MinLength == nil || len(s) >= *prop.MinLength {
		return nil, false
	}
	return &Violation{Code: CodeMinLength, Message: fmt.Sprintf("value must be at least %d characters", *prop.MinLength)}, true
}

func checkEnum(value interface{}, prop Property) (*Violation, bool) {
	s, ok := value.(string)
	if !ok || len(prop.Enum) == 0 || slices.Contains(prop.Enum, s) {
		return nil, false
	}
	return &Violation{Code: CodeEnum, Message: fmt.Sprintf("value must be one of %v", prop.Enum)}, false
}

func checkFormat(value interface{}, prop Property) (*Violation, bool) {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil, false
	}
	switch prop.Format {
	case FormatEmail:
		if !ValidateEmail(s) {
			return &Violation{Code: CodeFormat, Message: "value must be an email address"}, false
		}
	case FormatDate:
		if !ValidateDate(s) {
			return &Violation{Code: CodeFormat, Message: "value must be a date in YYYY-MM-DD form"}, false
		}
	}
	return nil, false
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateDate accepts calendar dates as produced by a date input.
func ValidateDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// IntPtr is a helper for building Property literals.
func IntPtr(n int) *int { return &n }
