// Package render turns form fields into HTML and decodes posted values back
// into field values.
package render

import (
	"bytes"
	"html/template"
	"net/url"

	apperrors "recruitment-form/internal/common/errors"
	"recruitment-form/internal/form"
)

// ChoicePlaceholder is the disabled first option of every choice field.
const ChoicePlaceholder = "Select an option"

// FieldRenderer is the capability every field variant shares: it renders the
// current value and relays a posted value back to the record unchanged.
type FieldRenderer interface {
	Name() string
	// Render is pure: the same value and error message produce the same HTML.
	Render(value interface{}, errMsg string) (template.HTML, error)
	// Decode extracts the field's raw value from a posted form. ok is false
	// when the post does not carry the field.
	Decode(values url.Values) (value interface{}, ok bool)
}

type textView struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Required    bool
	Value       string
	Error       string
}

type choiceView struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
	Value       string
	Options     []form.Option
	Error       string
}

type checkboxView struct {
	Name     string
	Label    string
	Required bool
	Checked  bool
	Error    string
}

// Text renders a single-line input. The field's InputType is passed through
// as the input type hint.
type Text struct {
	field form.Field
}

func NewText(f form.Field) *Text { return &Text{field: f} }

func (t *Text) Name() string { return t.field.Name }

func (t *Text) Render(value interface{}, errMsg string) (template.HTML, error) {
	s, ok := value.(string)
	if !ok {
		return "", apperrors.NewInvalidFieldValueError(t.field.Name, "string", value)
	}
	typ := t.field.InputType
	if typ == "" {
		typ = form.InputText
	}
	return execute("text", textView{
		Name:        t.field.Name,
		Label:       t.field.Label,
		Type:        typ,
		Placeholder: t.field.Placeholder,
		Required:    t.field.Required,
		Value:       s,
		Error:       errMsg,
	})
}

func (t *Text) Decode(values url.Values) (interface{}, bool) {
	return decodeString(values, t.field.Name)
}

// Choice renders a select with a fixed, ordered option list.
type Choice struct {
	field form.Field
}

func NewChoice(f form.Field) *Choice { return &Choice{field: f} }

func (c *Choice) Name() string { return c.field.Name }

func (c *Choice) Render(value interface{}, errMsg string) (template.HTML, error) {
	s, ok := value.(string)
	if !ok {
		return "", apperrors.NewInvalidFieldValueError(c.field.Name, "string", value)
	}
	return execute("choice", choiceView{
		Name:        c.field.Name,
		Label:       c.field.Label,
		Placeholder: ChoicePlaceholder,
		Required:    c.field.Required,
		Value:       s,
		Options:     c.field.Options,
		Error:       errMsg,
	})
}

func (c *Choice) Decode(values url.Values) (interface{}, bool) {
	return decodeString(values, c.field.Name)
}

// Checkbox renders a boolean field. Browsers omit unchecked boxes from a
// post, so Decode always reports a value.
type Checkbox struct {
	field form.Field
}

func NewCheckbox(f form.Field) *Checkbox { return &Checkbox{field: f} }

func (c *Checkbox) Name() string { return c.field.Name }

func (c *Checkbox) Render(value interface{}, errMsg string) (template.HTML, error) {
	b, ok := value.(bool)
	if !ok {
		return "", apperrors.NewInvalidFieldValueError(c.field.Name, "bool", value)
	}
	return execute("checkbox", checkboxView{
		Name:     c.field.Name,
		Label:    c.field.Label,
		Required: c.field.Required,
		Checked:  b,
		Error:    errMsg,
	})
}

func (c *Checkbox) Decode(values url.Values) (interface{}, bool) {
	v := values.Get(c.field.Name)
	return v == "on" || v == "true", true
}

// For picks the renderer variant for a field.
func For(f form.Field) FieldRenderer {
	switch f.Kind {
	case form.KindChoice:
		return NewChoice(f)
	case form.KindBoolean:
		return NewCheckbox(f)
	default:
		return NewText(f)
	}
}

// ForSchema returns renderers for every field, keyed by name.
func ForSchema(s *form.Schema) map[string]FieldRenderer {
	out := make(map[string]FieldRenderer)
	for _, f := range s.Fields() {
		out[f.Name] = For(f)
	}
	return out
}

func decodeString(values url.Values, name string) (interface{}, bool) {
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

func execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fieldTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
