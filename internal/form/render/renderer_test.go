package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-form/internal/form"
)

func field(t *testing.T, name string) form.Field {
	t.Helper()
	f, ok := form.ApplicationSchema().Field(name)
	require.True(t, ok, name)
	return f
}

// ==========================
// Text
// ==========================

func TestText_Render(t *testing.T) {
	r := NewText(field(t, form.FieldFullName))

	html, err := r.Render("Jane <Doe>", "")
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<label for="fullName">Full Name <span class="required">*</span></label>`)
	assert.Contains(t, out, `type="text"`)
	assert.Contains(t, out, `value="Jane &lt;Doe&gt;"`)
	assert.Contains(t, out, `placeholder="As per legal documents"`)
	assert.Contains(t, out, ` required>`)
	assert.NotContains(t, out, "field-error")
}

func TestText_RenderTypeHintAndError(t *testing.T) {
	r := NewText(field(t, form.FieldPrimaryEmail))

	html, err := r.Render("x", "Please enter a valid email address.")
	require.NoError(t, err)
	assert.Contains(t, string(html), `type="email"`)
	assert.Contains(t, string(html), `Please enter a valid email address.`)

	optional := NewText(field(t, form.FieldCountry))
	html, err = optional.Render("", "")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "required")
}

func TestText_RenderWrongKind(t *testing.T) {
	_, err := NewText(field(t, form.FieldFullName)).Render(true, "")
	assert.Error(t, err)
}

func TestRender_IsPure(t *testing.T) {
	for _, r := range ForSchema(form.ApplicationSchema()) {
		var value interface{} = "value"
		if _, ok := r.(*Checkbox); ok {
			value = true
		}
		a, err := r.Render(value, "msg")
		require.NoError(t, err)
		b, err := r.Render(value, "msg")
		require.NoError(t, err)
		assert.Equal(t, a, b, r.Name())
	}
}

// ==========================
// Choice
// ==========================

func TestChoice_Render(t *testing.T) {
	r := NewChoice(field(t, form.FieldNoticePeriod))

	html, err := r.Render("30", "")
	require.NoError(t, err)
	out := string(html)

	placeholder := strings.Index(out, `<option value="" disabled>Select an option</option>`)
	immediate := strings.Index(out, `<option value="immediate">Immediate</option>`)
	thirty := strings.Index(out, `<option value="30" selected>30 Days</option>`)
	ninety := strings.Index(out, `<option value="90">90 Days</option>`)

	require.NotEqual(t, -1, placeholder, out)
	require.NotEqual(t, -1, immediate, out)
	require.NotEqual(t, -1, thirty, out)
	require.NotEqual(t, -1, ninety, out)
	assert.True(t, placeholder < immediate && immediate < thirty && thirty < ninety)
}

func TestChoice_RenderEmptySelectsPlaceholder(t *testing.T) {
	html, err := NewChoice(field(t, form.FieldGender)).Render("", "")
	require.NoError(t, err)
	assert.Contains(t, string(html), `<option value="" disabled selected>Select an option</option>`)
	assert.NotContains(t, string(html), " required")
}

// ==========================
// Decode
// ==========================

func TestDecode(t *testing.T) {
	posted := url.Values{
		form.FieldFullName:    {"  Jane  "},
		form.FieldNoticePeriod: {"15"},
	}

	v, ok := NewText(field(t, form.FieldFullName)).Decode(posted)
	assert.True(t, ok)
	assert.Equal(t, "  Jane  ", v)

	v, ok = NewChoice(field(t, form.FieldNoticePeriod)).Decode(posted)
	assert.True(t, ok)
	assert.Equal(t, "15", v)

	_, ok = NewText(field(t, form.FieldCountry)).Decode(posted)
	assert.False(t, ok)

	box := NewCheckbox(field(t, form.FieldConfirmed))
	v, ok = box.Decode(posted)
	assert.True(t, ok)
	assert.Equal(t, false, v)

	v, _ = box.Decode(url.Values{form.FieldConfirmed: {"true"}})
	assert.Equal(t, true, v)
}

func TestCheckbox_Render(t *testing.T) {
	box := NewCheckbox(field(t, form.FieldConfirmed))

	html, err := box.Render(true, "")
	require.NoError(t, err)
	assert.Contains(t, string(html), " checked")
	assert.Contains(t, string(html), "I confirm that the information provided above is true")

	html, err = box.Render(false, "")
	require.NoError(t, err)
	assert.NotContains(t, string(html), " checked")
}
