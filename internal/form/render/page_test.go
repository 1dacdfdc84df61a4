package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-form/internal/form"
)

func TestPage_RenderEditing(t *testing.T) {
	s := form.ApplicationSchema()
	p := NewPage(s, "")

	out, err := p.Render(s.Defaults(), PageState{})
	require.NoError(t, err)
	html := string(out)

	last := -1
	for _, title := range []string{
		"Basic Information", "Contact Details", "Job Details",
		"Education Details", "Experience Details", "Declaration",
	} {
		i := strings.Index(html, "<legend>"+title+"</legend>")
		require.NotEqual(t, -1, i, title)
		assert.Greater(t, i, last)
		last = i
	}
	assert.Contains(t, html, ">Submit Application</button>")
	assert.NotContains(t, html, "alertdialog")
	assert.NotContains(t, html, "Application Received")
}

func TestPage_RenderSubmittingAndNotice(t *testing.T) {
	s := form.ApplicationSchema()
	p := NewPage(s, "")

	out, err := p.Render(s.Defaults(), PageState{Submitting: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), `<button type="submit" disabled>Processing Application...</button>`)

	out, err = p.Render(s.Defaults(), PageState{Notice: `Duplicate "application"`})
	require.NoError(t, err)
	assert.Contains(t, string(out), `role="alertdialog"`)
	assert.Contains(t, string(out), `Duplicate &#34;application&#34;`)
	assert.Contains(t, string(out), `window.alert(`)
}

func TestPage_RenderFieldErrors(t *testing.T) {
	s := form.ApplicationSchema()
	p := NewPage(s, "")

	out, err := p.Render(s.Defaults(), PageState{Errors: form.Validate(s, s.Defaults())})
	require.NoError(t, err)
	assert.Equal(t, 9, strings.Count(string(out), `class="field-error"`))
}

func TestPage_RenderSubmitted(t *testing.T) {
	s := form.ApplicationSchema()
	p := NewPage(s, "ACC Group")

	out, err := p.Render(s.Defaults(), PageState{Submitted: true})
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Application Received")
	assert.Contains(t, html, "Thank you for applying to ACC Group.")
	assert.Contains(t, html, "Submit Another Application")
	assert.NotContains(t, html, "<fieldset")
}

func TestPage_RenderRejectsBadValue(t *testing.T) {
	s := form.ApplicationSchema()
	values := s.Defaults()
	values[form.FieldConfirmed] = "yes"

	_, err := NewPage(s, "").Render(values, PageState{})
	assert.Error(t, err)
}

func TestPage_Decode(t *testing.T) {
	p := NewPage(form.ApplicationSchema(), "")

	got := p.Decode(url.Values{
		form.FieldFullName: {"Jane"},
		"nickname":         {"JD"},
	})
	assert.Equal(t, map[string]interface{}{
		form.FieldFullName:  "Jane",
		form.FieldConfirmed: false,
	}, got)
}
