package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRecord(t *testing.T) *Record {
	t.Helper()
	r := NewRecord(ApplicationSchema())
	for name, v := range map[string]interface{}{
		FieldFullName:             "Jane Doe",
		FieldPrimaryMobile:        "+91 98765 43210",
		FieldPrimaryEmail:         "jane@example.com",
		FieldRoleApplyingFor:      "Site Engineer",
		FieldHighestQualification: "graduation",
		FieldTotalExperience:      "1-3",
		FieldKeySkills:            "AutoCAD, Surveying",
		FieldNoticePeriod:         "30",
		FieldConfirmed:            true,
	} {
		require.NoError(t, r.Set(name, v))
	}
	return r
}

func TestValidate_Complete(t *testing.T) {
	r := completeRecord(t)
	assert.Nil(t, Validate(r.Schema(), r.Snapshot()))
}

func TestValidate_Defaults(t *testing.T) {
	s := ApplicationSchema()
	errs := Validate(s, s.Defaults())

	assert.Len(t, errs, 9)
	assert.Equal(t, msgFillOut, errs[FieldFullName])
	assert.Equal(t, msgSelect, errs[FieldNoticePeriod])
	assert.Equal(t, msgCheckBox, errs[FieldConfirmed])
}

func TestValidate_Cases(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
		want  string
	}{
		{"declaration unchecked", FieldConfirmed, false, msgCheckBox},
		{"bad primary email", FieldPrimaryEmail, "jane.example.com", msgEmail},
		{"bad alternate email", FieldAlternateEmail, "nope", msgEmail},
		{"bad date", FieldDOB, "31/12/1999", msgDate},
		{"unknown option", FieldGender, "robot", msgSelect},
		{"required choice cleared", FieldHighestQualification, "", msgSelect},
		{"required text cleared", FieldKeySkills, "", msgFillOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := completeRecord(t)
			require.NoError(t, r.Set(tt.field, tt.value))

			errs := Validate(r.Schema(), r.Snapshot())
			require.Len(t, errs, 1, errs)
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}

func TestValidate_OptionalEmptyValuesPass(t *testing.T) {
	r := completeRecord(t)
	require.NoError(t, r.Set(FieldGender, ""))
	require.NoError(t, r.Set(FieldDOB, ""))
	require.NoError(t, r.Set(FieldAlternateEmail, ""))
	assert.Nil(t, Validate(r.Schema(), r.Snapshot()))
}

func TestValidate_AcceptsDotlessEmailHost(t *testing.T) {
	r := completeRecord(t)
	require.NoError(t, r.Set(FieldPrimaryEmail, "recruiter@localhost"))
	assert.Nil(t, Validate(r.Schema(), r.Snapshot()))
}
