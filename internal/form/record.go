package form

import (
	"sync"

	apperrors "recruitment-form/internal/common/errors"
)

// Change describes a single field update.
type Change struct {
	Field string
	Old   interface{}
	New   interface{}
}

// Listener is notified after each Set. Reset sends one Change per field
// whose value moved back to its default.
type Listener func(Change)

// RecordOption configures a Record.
type RecordOption func(*Record)

// WithStrict makes unknown field names and kind mismatches panic instead
// of returning an error.
func WithStrict(strict bool) RecordOption {
	return func(r *Record) { r.strict = strict }
}

// Record is the flat, in-memory application record. It is safe for
// concurrent use; listeners run on the caller's goroutine after the lock
// is released.
type Record struct {
	schema *Schema
	strict bool

	mu        sync.RWMutex
	values    map[string]interface{}
	listeners map[int]Listener
	nextID    int
}

// NewRecord returns a record holding the schema defaults.
func NewRecord(schema *Schema, opts ...RecordOption) *Record {
	r := &Record{
		schema:    schema,
		values:    schema.Defaults(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Record) Schema() *Schema { return r.schema }

// Get returns the current value of a field.
func (r *Record) Get(name string) (interface{}, error) {
	if _, ok := r.schema.Field(name); !ok {
		return nil, r.fail(apperrors.NewUnknownFieldError(name))
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name], nil
}

// GetString returns a text or choice field value, "" on error.
func (r *Record) GetString(name string) string {
	v, err := r.Get(name)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Set replaces exactly one field. Values are stored as given.
func (r *Record) Set(name string, value interface{}) error {
	field, ok := r.schema.Field(name)
	if !ok {
		return r.fail(apperrors.NewUnknownFieldError(name))
	}
	if err := checkKind(field, value); err != nil {
		return r.fail(err)
	}

	r.mu.Lock()
	old := r.values[name]
	r.values[name] = value
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	change := Change{Field: name, Old: old, New: value}
	for _, l := range listeners {
		l(change)
	}
	return nil
}

// Reset restores every field to its default.
func (r *Record) Reset() {
	defaults := r.schema.Defaults()

	r.mu.Lock()
	var changes []Change
	for _, name := range r.schema.Names() {
		if old := r.values[name]; old != defaults[name] {
			changes = append(changes, Change{Field: name, Old: old, New: defaults[name]})
		}
	}
	r.values = defaults
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	for _, c := range changes {
		for _, l := range listeners {
			l(c)
		}
	}
}

// Snapshot returns a copy of the current values.
func (r *Record) Snapshot() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Subscribe registers l and returns a function that removes it.
func (r *Record) Subscribe(l Listener) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// caller holds mu
func (r *Record) snapshotListeners() []Listener {
	if len(r.listeners) == 0 {
		return nil
	}
	out := make([]Listener, 0, len(r.listeners))
	for i := 0; i < r.nextID; i++ {
		if l, ok := r.listeners[i]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (r *Record) fail(err *apperrors.StandardError) error {
	if r.strict {
		panic(err)
	}
	return err
}

// Check reports whether value may be stored under name, without panicking.
// Use it for values that arrive from outside the program.
func (s *Schema) Check(name string, value interface{}) error {
	field, ok := s.Field(name)
	if !ok {
		return apperrors.NewUnknownFieldError(name)
	}
	if err := checkKind(field, value); err != nil {
		return err
	}
	return nil
}

func checkKind(field Field, value interface{}) *apperrors.StandardError {
	switch field.Kind {
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return apperrors.NewInvalidFieldValueError(field.Name, "bool", value)
		}
	default:
		if _, ok := value.(string); !ok {
			return apperrors.NewInvalidFieldValueError(field.Name, "string", value)
		}
	}
	return nil
}
