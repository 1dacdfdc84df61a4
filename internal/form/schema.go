// Package form holds the application record and the field schema it is
// built from.
package form

// FieldKind is the storage kind of a field value.
type FieldKind int

const (
	KindText FieldKind = iota
	KindChoice
	KindBoolean
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindChoice:
		return "choice"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Input type hints for text fields.
const (
	InputText  = "text"
	InputDate  = "date"
	InputEmail = "email"
)

// Option is one (label, value) pair of a choice field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field describes one named entry of the record.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	InputType   string    `json:"inputType,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
}

// Default returns the zero value a fresh record holds for the field.
func (f Field) Default() interface{} {
	if f.Kind == KindBoolean {
		return false
	}
	return ""
}

// HasOption reports whether v is one of the field's option values.
func (f Field) HasOption(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Section groups fields under a heading.
type Section struct {
	ID     string
	Title  string
	Fields []string
}

// Schema is the fixed, ordered set of fields and sections.
type Schema struct {
	fields   []Field
	index    map[string]int
	sections []Section
}

// NewSchema indexes fields. Duplicate names panic: a schema is static data.
func NewSchema(fields []Field, sections []Section) *Schema {
	s := &Schema{
		fields:   fields,
		index:    make(map[string]int, len(fields)),
		sections: sections,
	}
	for i, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			panic("form: duplicate field " + f.Name)
		}
		s.index[f.Name] = i
	}
	for _, sec := range sections {
		for _, name := range sec.Fields {
			if _, ok := s.index[name]; !ok {
				panic("form: section " + sec.ID + " references unknown field " + name)
			}
		}
	}
	return s
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

func (s *Schema) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Defaults returns a fresh map holding every field's default value.
func (s *Schema) Defaults() map[string]interface{} {
	out := make(map[string]interface{}, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = f.Default()
	}
	return out
}
