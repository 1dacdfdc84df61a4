package form

// Field names of the job application record.
const (
	FieldFullName             = "fullName"
	FieldGender               = "gender"
	FieldDOB                  = "dob"
	FieldCurrentCity          = "currentCity"
	FieldCurrentState         = "currentState"
	FieldCountry              = "country"
	FieldPrimaryMobile        = "primaryMobile"
	FieldAlternateMobile      = "alternateMobile"
	FieldPrimaryEmail         = "primaryEmail"
	FieldAlternateEmail       = "alternateEmail"
	FieldRoleApplyingFor      = "roleApplyingFor"
	FieldPreferredJobLocation = "preferredJobLocation"
	FieldEmploymentType       = "employmentType"
	FieldHighestQualification = "highestQualification"
	FieldDegreeName           = "degreeName"
	FieldSpecialization       = "specialization"
	FieldCollegeName          = "collegeName"
	FieldYearOfPassing        = "yearOfPassing"
	FieldTotalExperience      = "totalExperience"
	FieldCurrentCompany       = "currentCompany"
	FieldCurrentJobRole       = "currentJobRole"
	FieldKeySkills            = "keySkills"
	FieldCurrentCTC           = "currentCTC"
	FieldExpectedCTC          = "expectedCTC"
	FieldNoticePeriod         = "noticePeriod"
	FieldConfirmed            = "confirmed"
)

// DeclarationText is the statement the applicant confirms.
const DeclarationText = "I confirm that the information provided above is true and correct to the best of my knowledge. " +
	"I understand that any misrepresentation may lead to disqualification."

func text(name, label string, required bool) Field {
	return Field{Name: name, Label: label, Kind: KindText, InputType: InputText, Required: required}
}

func choice(name, label string, required bool, opts ...Option) Field {
	return Field{Name: name, Label: label, Kind: KindChoice, Required: required, Options: opts}
}

// ApplicationSchema returns the job application schema.
func ApplicationSchema() *Schema {
	fullName := text(FieldFullName, "Full Name", true)
	fullName.Placeholder = "As per legal documents"

	dob := text(FieldDOB, "Date of Birth", false)
	dob.InputType = InputDate

	primaryEmail := text(FieldPrimaryEmail, "Primary Email Address", true)
	primaryEmail.InputType = InputEmail
	alternateEmail := text(FieldAlternateEmail, "Alternate Email Address", false)
	alternateEmail.InputType = InputEmail

	location := text(FieldPreferredJobLocation, "Preferred Job Location", false)
	location.Placeholder = "Remote / City Preference"

	skills := text(FieldKeySkills, "Key Skills", true)
	skills.Placeholder = "Comma separated"

	fields := []Field{
		fullName,
		choice(FieldGender, "Gender", false,
			Option{"Male", "male"},
			Option{"Female", "female"},
			Option{"Other", "other"},
			Option{"Prefer not to say", "prefer-not-to-say"},
		),
		dob,
		text(FieldCurrentCity, "Current City", false),
		text(FieldCurrentState, "Current State", false),
		text(FieldCountry, "Country", false),

		text(FieldPrimaryMobile, "Primary Mobile Number", true),
		text(FieldAlternateMobile, "Alternate Mobile Number", false),
		primaryEmail,
		alternateEmail,

		text(FieldRoleApplyingFor, "Role Applying For", true),
		location,
		choice(FieldEmploymentType, "Employment Type", false,
			Option{"Full Time", "full-time"},
			Option{"Contract", "contract"},
			Option{"Internship", "internship"},
		),

		choice(FieldHighestQualification, "Highest Qualification", true,
			Option{"10th", "10th"},
			Option{"12th", "12th"},
			Option{"Diploma", "diploma"},
			Option{"Graduation", "graduation"},
			Option{"Post Graduation", "post-graduation"},
			Option{"Other", "other"},
		),
		text(FieldDegreeName, "Degree / Course Name", false),
		text(FieldSpecialization, "Specialization", false),
		text(FieldCollegeName, "College / University Name", false),
		text(FieldYearOfPassing, "Year of Passing", false),

		choice(FieldTotalExperience, "Total Years of Experience", true,
			Option{"Fresher", "fresher"},
			Option{"0–1 Years", "0-1"},
			Option{"1–3 Years", "1-3"},
			Option{"3–5 Years", "3-5"},
			Option{"5+ Years", "5+"},
		),
		text(FieldCurrentCompany, "Current Company Name", false),
		text(FieldCurrentJobRole, "Current Job Role", false),
		skills,
		text(FieldCurrentCTC, "Current CTC", false),
		text(FieldExpectedCTC, "Expected CTC", false),
		choice(FieldNoticePeriod, "Notice Period", true,
			Option{"Immediate", "immediate"},
			Option{"15 Days", "15"},
			Option{"30 Days", "30"},
			Option{"60 Days", "60"},
			Option{"90 Days", "90"},
		),

		{Name: FieldConfirmed, Label: DeclarationText, Kind: KindBoolean, Required: true},
	}

	sections := []Section{
		{ID: "basic", Title: "Basic Information", Fields: []string{
			FieldFullName, FieldGender, FieldDOB, FieldCurrentCity, FieldCurrentState, FieldCountry,
		}},
		{ID: "contact", Title: "Contact Details", Fields: []string{
			FieldPrimaryMobile, FieldAlternateMobile, FieldPrimaryEmail, FieldAlternateEmail,
		}},
		{ID: "job", Title: "Job Details", Fields: []string{
			FieldRoleApplyingFor, FieldPreferredJobLocation, FieldEmploymentType,
		}},
		{ID: "education", Title: "Education Details", Fields: []string{
			FieldHighestQualification, FieldDegreeName, FieldSpecialization, FieldCollegeName, FieldYearOfPassing,
		}},
		{ID: "experience", Title: "Experience Details", Fields: []string{
			FieldTotalExperience, FieldCurrentCompany, FieldCurrentJobRole, FieldKeySkills,
			FieldCurrentCTC, FieldExpectedCTC, FieldNoticePeriod,
		}},
		{ID: "declaration", Title: "Declaration", Fields: []string{FieldConfirmed}},
	}

	return NewSchema(fields, sections)
}
