package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "recruitment-form/internal/common/errors"
)

// ==========================
// Schema
// ==========================

func TestApplicationSchema_Shape(t *testing.T) {
	s := ApplicationSchema()

	assert.Len(t, s.Fields(), 26)

	var titles []string
	total := 0
	for _, sec := range s.Sections() {
		titles = append(titles, sec.Title)
		total += len(sec.Fields)
	}
	assert.Equal(t, []string{
		"Basic Information", "Contact Details", "Job Details",
		"Education Details", "Experience Details", "Declaration",
	}, titles)
	assert.Equal(t, 26, total)

	var required []string
	for _, f := range s.Fields() {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	assert.ElementsMatch(t, []string{
		FieldFullName, FieldPrimaryMobile, FieldPrimaryEmail, FieldRoleApplyingFor,
		FieldHighestQualification, FieldTotalExperience, FieldKeySkills,
		FieldNoticePeriod, FieldConfirmed,
	}, required)
}

func TestApplicationSchema_Options(t *testing.T) {
	s := ApplicationSchema()

	notice, ok := s.Field(FieldNoticePeriod)
	require.True(t, ok)
	assert.Equal(t, Option{Label: "15 Days", Value: "15"}, notice.Options[1])
	assert.True(t, notice.HasOption("immediate"))
	assert.False(t, notice.HasOption(""))

	exp, _ := s.Field(FieldTotalExperience)
	assert.Equal(t, "0–1 Years", exp.Options[1].Label)

	email, _ := s.Field(FieldPrimaryEmail)
	assert.Equal(t, InputEmail, email.InputType)
}

func TestNewSchema_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema([]Field{{Name: "a"}, {Name: "a"}}, nil)
	})
	assert.Panics(t, func() {
		NewSchema([]Field{{Name: "a"}}, []Section{{ID: "s", Fields: []string{"b"}}})
	})
}

// ==========================
// Record
// ==========================

func TestNewRecord_Defaults(t *testing.T) {
	r := NewRecord(ApplicationSchema())

	snap := r.Snapshot()
	assert.Len(t, snap, 26)
	for name, v := range snap {
		if name == FieldConfirmed {
			assert.Equal(t, false, v)
			continue
		}
		assert.Equal(t, "", v, name)
	}
}

func TestSet_ChangesExactlyOneField(t *testing.T) {
	r := NewRecord(ApplicationSchema())
	before := r.Snapshot()

	require.NoError(t, r.Set(FieldFullName, "Jane Doe"))

	after := r.Snapshot()
	assert.Equal(t, "Jane Doe", after[FieldFullName])
	for name := range before {
		if name == FieldFullName {
			continue
		}
		assert.Equal(t, before[name], after[name], name)
	}
}

func TestSet_StoresVerbatim(t *testing.T) {
	r := NewRecord(ApplicationSchema())
	require.NoError(t, r.Set(FieldKeySkills, "  Go,  SQL ,"))
	assert.Equal(t, "  Go,  SQL ,", r.GetString(FieldKeySkills))

	require.NoError(t, r.Set(FieldFullName, "A"))
	require.NoError(t, r.Set(FieldFullName, "B"))
	assert.Equal(t, "B", r.GetString(FieldFullName))
}

func TestReset_RestoresDefaults(t *testing.T) {
	s := ApplicationSchema()
	r := NewRecord(s)

	require.NoError(t, r.Set(FieldFullName, "Jane Doe"))
	require.NoError(t, r.Set(FieldNoticePeriod, "30"))
	require.NoError(t, r.Set(FieldConfirmed, true))

	r.Reset()
	assert.Equal(t, s.Defaults(), r.Snapshot())
}

func TestSnapshot_IsACopy(t *testing.T) {
	r := NewRecord(ApplicationSchema())
	snap := r.Snapshot()
	snap[FieldFullName] = "mutated"
	assert.Equal(t, "", r.GetString(FieldFullName))
}

func TestSet_Errors(t *testing.T) {
	r := NewRecord(ApplicationSchema())

	err := r.Set("nickname", "JD")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownField))

	err = r.Set(FieldConfirmed, "yes")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFieldValue))

	err = r.Set(FieldFullName, 42)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFieldValue))

	_, err = r.Get("nickname")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownField))

	assert.Equal(t, NewRecord(ApplicationSchema()).Snapshot(), r.Snapshot())
}

func TestStrictMode_Panics(t *testing.T) {
	r := NewRecord(ApplicationSchema(), WithStrict(true))

	assert.Panics(t, func() { _ = r.Set("nickname", "JD") })
	assert.Panics(t, func() { _ = r.Set(FieldConfirmed, "true") })
	assert.Panics(t, func() { _, _ = r.Get("nickname") })
	assert.NotPanics(t, func() { _ = r.Set(FieldFullName, "Jane") })
}

func TestRecordOptions_CoexistWithChoiceOptions(t *testing.T) {
	opts := []RecordOption{WithStrict(false)}
	r := NewRecord(ApplicationSchema(), opts...)

	gender, ok := r.Schema().Field(FieldGender)
	require.True(t, ok)
	assert.Equal(t, []Option{
		{Label: "Male", Value: "male"},
		{Label: "Female", Value: "female"},
		{Label: "Other", Value: "other"},
		{Label: "Prefer not to say", Value: "prefer-not-to-say"},
	}, gender.Options)

	assert.NotPanics(t, func() {
		assert.Error(t, r.Set("nickname", "JD"))
	})
}

func TestSubscribe(t *testing.T) {
	r := NewRecord(ApplicationSchema())

	var got []Change
	unsubscribe := r.Subscribe(func(c Change) { got = append(got, c) })

	require.NoError(t, r.Set(FieldFullName, "Jane"))
	require.NoError(t, r.Set(FieldConfirmed, true))
	r.Reset()

	require.Len(t, got, 4)
	assert.Equal(t, Change{Field: FieldFullName, Old: "", New: "Jane"}, got[0])
	assert.Equal(t, Change{Field: FieldConfirmed, Old: false, New: true}, got[1])

	unsubscribe()
	require.NoError(t, r.Set(FieldFullName, "Other"))
	assert.Len(t, got, 4)
}

func TestSchemaCheck(t *testing.T) {
	s := ApplicationSchema()

	assert.NoError(t, s.Check(FieldFullName, "Jane"))
	assert.NoError(t, s.Check(FieldConfirmed, true))
	assert.True(t, errors.Is(s.Check("nickname", "x"), apperrors.ErrUnknownField))
	assert.True(t, errors.Is(s.Check(FieldConfirmed, "true"), apperrors.ErrInvalidFieldValue))
}
